// Package display is the engine's view of the kiosk screen. The engine never
// renders anything itself: it emits commands (markers, route geometry,
// notifications, forced navigation) that the kiosk shell executes against the
// interactive map widget.
package display

// Marker is one placemark on the facility map.
type Marker struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Floor       string  `json:"floor,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Preset      string  `json:"preset"`
	Color       string  `json:"color"`
}

// Route describes the geometry request handed to the map widget: the widget
// computes and draws the actual polyline between the two points.
type Route struct {
	From [2]float64 `json:"from"`
	To   [2]float64 `json:"to"`
	Mode string     `json:"mode"`
}

// Renderer places markers and route geometry on the map surface.
// SetMarkers is a full clear-and-redraw; catalogs are small.
type Renderer interface {
	SetMarkers(markers []Marker)
	DrawRoute(route Route)
	ClearRoute()
}

// Notifier surfaces transient human-readable messages on the kiosk screen.
type Notifier interface {
	Notify(title, message string)
	NotifyError(title, message string)
}

// Navigator forces the kiosk shell onto another page.
type Navigator interface {
	NavigateHome()
}

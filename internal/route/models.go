package route

import "time"

// Endpoint is one end of a route request: a display name plus [lat, lng].
type Endpoint struct {
	Name   string     `json:"name"`
	Coords [2]float64 `json:"coords"`
}

// Leg is what the routing provider returns for a pedestrian route. Either
// property may be absent; absent means unknown, never zero.
type Leg struct {
	DistanceMeters  *float64 `json:"distanceMeters"`
	DurationSeconds *float64 `json:"durationSeconds"`
}

// Result is the outcome of a successful route build: normalized metrics,
// display strings, the phone deep link and its barcode image.
type Result struct {
	Seq             uint64   `json:"-"`
	From            Endpoint `json:"from"`
	To              Endpoint `json:"to"`
	DistanceMeters  *float64 `json:"distanceMeters"`
	DurationSeconds *float64 `json:"durationSeconds"`
	DistanceDisplay string   `json:"distanceDisplay,omitempty"`
	DurationDisplay string   `json:"durationDisplay,omitempty"`
	DeepLink        string   `json:"deepLink"`
	QRPNG           []byte   `json:"qrPng"`
}

// RecentRoute is the lightweight history entry persisted per build.
type RecentRoute struct {
	From       string     `json:"from"`
	To         string     `json:"to"`
	FromCoords [2]float64 `json:"fromCoords"`
	ToCoords   [2]float64 `json:"toCoords"`
	Timestamp  time.Time  `json:"timestamp"`
}

// History keeps at most this many entries, newest first.
const historyLimit = 5

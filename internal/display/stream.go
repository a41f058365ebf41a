package display

import (
	"encoding/json"
	"log"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/stream"
)

// Stream sends display commands to the kiosk shell over the websocket hub.
// It implements Renderer, Notifier and Navigator.
type Stream struct {
	hub     *stream.Hub
	kioskID string
}

func NewStream(hub *stream.Hub, kioskID string) *Stream {
	return &Stream{hub: hub, kioskID: kioskID}
}

type command struct {
	Cmd     string   `json:"cmd"`
	Markers []Marker `json:"markers,omitempty"`
	Route   *Route   `json:"route,omitempty"`
	Title   string   `json:"title,omitempty"`
	Message string   `json:"message,omitempty"`
	Variant string   `json:"variant,omitempty"`
	Path    string   `json:"path,omitempty"`
	Online  *bool    `json:"online,omitempty"`
	Marker  *Marker  `json:"marker,omitempty"`
}

func (s *Stream) send(c command) {
	payload, err := json.Marshal(c)
	if err != nil {
		log.Printf("display command marshal error: %v", err)
		return
	}
	s.hub.Broadcast(s.kioskID, payload)
}

func (s *Stream) SetMarkers(markers []Marker) {
	s.send(command{Cmd: "markers", Markers: markers})
}

func (s *Stream) DrawRoute(route Route) {
	s.send(command{Cmd: "route", Route: &route})
}

func (s *Stream) ClearRoute() {
	s.send(command{Cmd: "clearRoute"})
}

func (s *Stream) Notify(title, message string) {
	s.send(command{Cmd: "notify", Title: title, Message: message})
}

func (s *Stream) NotifyError(title, message string) {
	s.send(command{Cmd: "notify", Title: title, Message: message, Variant: "destructive"})
}

func (s *Stream) NavigateHome() {
	s.send(command{Cmd: "navigate", Path: "/"})
}

// Banner toggles the offline indicator on the kiosk shell.
func (s *Stream) Banner(online bool) {
	s.send(command{Cmd: "banner", Online: &online})
}

// Selected mirrors a point-of-interest selection to the details panel.
func (s *Stream) Selected(marker Marker) {
	s.send(command{Cmd: "selected", Marker: &marker})
}

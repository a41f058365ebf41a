package poi

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/catalog"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/display"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("poi: not found")

// Registry is the in-memory projection of the catalog store's object
// collection. All mutations flow through it so the map markers stay in sync.
type Registry struct {
	store    *catalog.Store
	renderer display.Renderer

	mu       sync.RWMutex
	pois     []PointOfInterest
	onSelect func(PointOfInterest)
}

func NewRegistry(store *catalog.Store, renderer display.Renderer) *Registry {
	return &Registry{store: store, renderer: renderer}
}

// SetOnSelect installs the callback invoked when a marker or list entry is
// chosen on the kiosk.
func (r *Registry) SetOnSelect(fn func(PointOfInterest)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onSelect = fn
}

// Load reads the object collection from the store. An empty store is seeded
// with the default catalog and written back; malformed or unreachable data
// logs and falls back to the defaults in memory without rewriting. Load never
// fails: the kiosk always has a catalog to show.
func (r *Registry) Load(ctx context.Context) {
	var stored []PointOfInterest
	err := r.store.GetJSON(ctx, catalog.ObjectsKey, &stored)

	switch {
	case err == nil:
		for i := range stored {
			stored[i].Category = ParseCategory(string(stored[i].Category))
		}
	case errors.Is(err, catalog.ErrNotFound):
		stored = DefaultCatalog()
		if werr := r.store.SetJSON(ctx, catalog.ObjectsKey, stored); werr != nil {
			log.Printf("seed catalog write error: %v", werr)
		}
	default:
		log.Printf("catalog load error, using defaults: %v", err)
		stored = DefaultCatalog()
	}

	r.mu.Lock()
	r.pois = stored
	r.mu.Unlock()

	r.syncMarkers()
}

// All returns the catalog in registry (insertion) order.
func (r *Registry) All() []PointOfInterest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PointOfInterest, len(r.pois))
	copy(out, r.pois)
	return out
}

// Get returns the object with the given id.
func (r *Registry) Get(id string) (PointOfInterest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.pois {
		if p.ID == id {
			return p, true
		}
	}
	return PointOfInterest{}, false
}

// Search filters by case-insensitive substring over name and description.
// A category of "all" (or empty) skips category filtering. Order is registry
// order, not relevance.
func (r *Registry) Search(query, category string) []PointOfInterest {
	q := strings.ToLower(query)
	filterCategory := category != "" && category != "all"

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []PointOfInterest
	for _, p := range r.pois {
		if filterCategory && string(p.Category) != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Upsert validates and persists an object, then resynchronizes the markers.
// A missing id means create. Object ids are immutable once assigned.
func (r *Registry) Upsert(ctx context.Context, p PointOfInterest) (PointOfInterest, error) {
	if err := p.Validate(); err != nil {
		return PointOfInterest{}, err
	}
	p.Category = ParseCategory(string(p.Category))

	r.mu.Lock()
	if p.ID == "" {
		p.ID = uuid.NewString()
		r.pois = append(r.pois, p)
	} else {
		found := false
		for i := range r.pois {
			if r.pois[i].ID == p.ID {
				r.pois[i] = p
				found = true
				break
			}
		}
		if !found {
			r.pois = append(r.pois, p)
		}
	}
	snapshot := make([]PointOfInterest, len(r.pois))
	copy(snapshot, r.pois)
	r.mu.Unlock()

	if err := r.store.SetJSON(ctx, catalog.ObjectsKey, snapshot); err != nil {
		return PointOfInterest{}, err
	}
	r.syncMarkers()
	return p, nil
}

// Remove deletes an object and resynchronizes the markers.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	idx := -1
	for i := range r.pois {
		if r.pois[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return ErrNotFound
	}
	r.pois = append(r.pois[:idx], r.pois[idx+1:]...)
	snapshot := make([]PointOfInterest, len(r.pois))
	copy(snapshot, r.pois)
	r.mu.Unlock()

	if err := r.store.SetJSON(ctx, catalog.ObjectsKey, snapshot); err != nil {
		return err
	}
	r.syncMarkers()
	return nil
}

// Select dispatches a marker/list selection to the installed callback.
func (r *Registry) Select(id string) {
	p, ok := r.Get(id)
	if !ok {
		return
	}
	r.mu.RLock()
	fn := r.onSelect
	r.mu.RUnlock()
	if fn != nil {
		fn(p)
	}
}

// syncMarkers pushes the full marker set to the renderer. Clear-and-redraw,
// no diffing; catalogs are tens of entries.
func (r *Registry) syncMarkers() {
	if r.renderer == nil {
		return
	}

	r.mu.RLock()
	markers := make([]display.Marker, 0, len(r.pois))
	for _, p := range r.pois {
		m := Marker(p)
		markers = append(markers, m)
	}
	r.mu.RUnlock()

	r.renderer.SetMarkers(markers)
}

// Marker converts an object to its display marker, applying the category
// style unless the object carries visual overrides.
func Marker(p PointOfInterest) display.Marker {
	style := p.Category.Style()
	preset := style.Preset
	color := style.Color
	if p.CustomIcon != "" {
		preset = p.CustomIcon
	}
	if p.IconColor != "" {
		color = p.IconColor
	}
	return display.Marker{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Floor:       p.Floor,
		Lat:         p.Coordinates[0],
		Lng:         p.Coordinates[1],
		Preset:      preset,
		Color:       color,
	}
}

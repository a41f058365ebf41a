package poi

import (
	"context"
	"reflect"
	"testing"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/catalog"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/display"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeRenderer struct {
	markers     []display.Marker
	setCalls    int
	routeDrawn  bool
	routeCleans int
}

func (f *fakeRenderer) SetMarkers(markers []display.Marker) {
	f.markers = markers
	f.setCalls++
}
func (f *fakeRenderer) DrawRoute(display.Route) { f.routeDrawn = true }
func (f *fakeRenderer) ClearRoute()             { f.routeCleans++ }

func newTestRegistry(t *testing.T) (*Registry, *fakeRenderer, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	renderer := &fakeRenderer{}
	return NewRegistry(catalog.NewStore(client), renderer), renderer, s
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	reg, renderer, mr := newTestRegistry(t)
	ctx := context.Background()

	reg.Load(ctx)

	pois := reg.All()
	if len(pois) != 5 {
		t.Fatalf("expected 5 seeded objects, got %d", len(pois))
	}
	if !reflect.DeepEqual(pois, DefaultCatalog()) {
		t.Fatalf("seeded catalog differs from defaults")
	}
	if renderer.setCalls != 1 {
		t.Fatalf("expected one marker sync, got %d", renderer.setCalls)
	}
	if !mr.Exists(catalog.ObjectsKey) {
		t.Fatalf("expected seed to be written back")
	}

	// A second load right after must return the identical catalog without
	// rewriting the stored value.
	before, _ := mr.Get(catalog.ObjectsKey)
	reg.Load(ctx)
	after, _ := mr.Get(catalog.ObjectsKey)
	if before != after {
		t.Fatalf("second load rewrote the catalog")
	}
	if !reflect.DeepEqual(reg.All(), pois) {
		t.Fatalf("second load changed the catalog")
	}
}

func TestLoadFallsBackOnGarbage(t *testing.T) {
	reg, _, mr := newTestRegistry(t)
	mr.Set(catalog.ObjectsKey, "{definitely not json")

	reg.Load(context.Background())

	if len(reg.All()) != 5 {
		t.Fatalf("expected default catalog fallback")
	}
	// Fallback is in-memory only; the stored value is left alone.
	raw, _ := mr.Get(catalog.ObjectsKey)
	if raw != "{definitely not json" {
		t.Fatalf("fallback must not rewrite the store")
	}
}

func TestLoadNormalizesUnknownCategory(t *testing.T) {
	reg, _, mr := newTestRegistry(t)
	mr.Set(catalog.ObjectsKey, `[{"id":"9","name":"Вход","coordinates":[55.75,37.61],"type":"entrance"}]`)

	reg.Load(context.Background())

	p, ok := reg.Get("9")
	if !ok {
		t.Fatalf("expected object loaded")
	}
	if p.Category != CategoryOther {
		t.Fatalf("expected unknown category to normalize to other, got %s", p.Category)
	}
}

func TestSearchSubstringCaseInsensitive(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()
	reg.Load(ctx)
	if _, err := reg.Upsert(ctx, PointOfInterest{
		Name:        "Склад материалов",
		Description: "Хранение сырья",
		Coordinates: [2]float64{55.7545, 37.6160},
		Category:    CategoryWarehouse,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got := reg.Search("склад материалов", "all")
	if len(got) != 1 || got[0].Name != "Склад материалов" {
		t.Fatalf("expected exactly the one matching entry, got %v", got)
	}

	// Matches in description too, registry order preserved.
	got = reg.Search("производство", "")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected description match, got %v", got)
	}
}

func TestSearchCategoryFilter(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	reg.Load(context.Background())

	if got := reg.Search("", "parking"); len(got) != 1 || got[0].Category != CategoryParking {
		t.Fatalf("expected single parking entry, got %v", got)
	}
	if got := reg.Search("", "all"); len(got) != 5 {
		t.Fatalf("expected all entries for category all, got %d", len(got))
	}
}

func TestUpsertValidates(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	reg.Load(context.Background())

	if _, err := reg.Upsert(context.Background(), PointOfInterest{Name: ""}); err == nil {
		t.Fatalf("expected name validation error")
	}
	if _, err := reg.Upsert(context.Background(), PointOfInterest{
		Name:        "Плохая точка",
		Coordinates: [2]float64{91, 37.61},
	}); err == nil {
		t.Fatalf("expected coordinate range error")
	}
}

func TestUpsertRemoveResyncMarkers(t *testing.T) {
	reg, renderer, _ := newTestRegistry(t)
	ctx := context.Background()
	reg.Load(ctx)

	created, err := reg.Upsert(ctx, PointOfInterest{
		Name:        "КПП",
		Description: "Пост охраны",
		Coordinates: [2]float64{55.7550, 37.6170},
		Category:    CategorySecurity,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if len(renderer.markers) != 6 {
		t.Fatalf("expected 6 markers after upsert, got %d", len(renderer.markers))
	}

	if err := reg.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(renderer.markers) != 5 {
		t.Fatalf("expected 5 markers after remove, got %d", len(renderer.markers))
	}

	if err := reg.Remove(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSelectDispatch(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	reg.Load(context.Background())

	var selected PointOfInterest
	reg.SetOnSelect(func(p PointOfInterest) { selected = p })

	reg.Select("3")
	if selected.Name != "Склад" {
		t.Fatalf("expected selection callback, got %+v", selected)
	}

	reg.Select("missing") // no callback, no panic
	if selected.ID != "3" {
		t.Fatalf("missing id must not fire the callback")
	}
}

func TestMarkerStyleOverrides(t *testing.T) {
	m := Marker(PointOfInterest{
		ID:          "x",
		Name:        "Офис продаж",
		Coordinates: [2]float64{55.75, 37.61},
		Category:    CategoryOffice,
	})
	want := CategoryOffice.Style()
	if m.Preset != want.Preset || m.Color != want.Color {
		t.Fatalf("expected category style, got %+v", m)
	}

	m = Marker(PointOfInterest{
		ID:          "y",
		Name:        "Особая точка",
		Coordinates: [2]float64{55.75, 37.61},
		Category:    CategoryOther,
		CustomIcon:  "islands#violetIcon",
		IconColor:   "#AA00AA",
	})
	if m.Preset != "islands#violetIcon" || m.Color != "#AA00AA" {
		t.Fatalf("expected visual overrides to win, got %+v", m)
	}
}

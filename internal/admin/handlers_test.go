package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/catalog"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/poi"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func newTestApp(t *testing.T) (*fiber.App, *poi.Registry) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	registry := poi.NewRegistry(catalog.NewStore(client), nil)
	registry.Load(context.Background())

	app := fiber.New()
	passthrough := func(c *fiber.Ctx) error { return c.Next() }
	RegisterRoutes(app.Group("/admin"), registry, passthrough)
	return app, registry
}

func TestCreateObject(t *testing.T) {
	app, registry := newTestApp(t)

	payload := `{"name":"Склад материалов","description":"Хранение сырья","coordinates":[55.7545,37.616],"type":"warehouse","floor":"1"}`
	req := httptest.NewRequest("POST", "/admin/pois", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var created poi.PointOfInterest
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if _, ok := registry.Get(created.ID); !ok {
		t.Fatalf("expected object in registry")
	}
}

func TestCreateObjectValidation(t *testing.T) {
	app, _ := newTestApp(t)

	for _, payload := range []string{
		`{"name":"","coordinates":[55.75,37.61],"type":"building"}`,
		`{"name":"Плохая точка","coordinates":[95,37.61],"type":"building"}`,
		`{"name":"Плохая точка","coordinates":[55.75,181],"type":"building"}`,
	} {
		req := httptest.NewRequest("POST", "/admin/pois", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		if resp.StatusCode != 400 {
			t.Fatalf("expected 400 for %s, got %d", payload, resp.StatusCode)
		}
	}
}

func TestUpdateObject(t *testing.T) {
	app, registry := newTestApp(t)

	payload := `{"name":"Главное здание","description":"Обновлено","coordinates":[55.7558,37.6173],"type":"building"}`
	req := httptest.NewRequest("PUT", "/admin/pois/1", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	p, _ := registry.Get("1")
	if p.Description != "Обновлено" {
		t.Fatalf("expected update applied, got %+v", p)
	}

	req = httptest.NewRequest("PUT", "/admin/pois/missing", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 for unknown id, got %d", resp.StatusCode)
	}
}

func TestDeleteObject(t *testing.T) {
	app, registry := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/admin/pois/5", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if _, ok := registry.Get("5"); ok {
		t.Fatalf("expected object removed")
	}

	resp, _ = app.Test(httptest.NewRequest("DELETE", "/admin/pois/5", nil))
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 for repeat delete, got %d", resp.StatusCode)
	}
}

package poi

import (
	"math"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

type listItem struct {
	PointOfInterest
	// Straight-line distance from the kiosk, for the search panel.
	DistanceM float64 `json:"distanceM"`
}

func RegisterRoutes(r fiber.Router, reg *Registry, kioskLat, kioskLng float64) {
	r.Get("/", func(c *fiber.Ctx) error {
		query := c.Query("query")
		category := c.Query("category", "all")

		results := reg.Search(query, category)
		items := make([]listItem, 0, len(results))
		for _, p := range results {
			distKm := geo.HaversineKm(kioskLat, kioskLng, p.Coordinates[0], p.Coordinates[1])
			items = append(items, listItem{
				PointOfInterest: p,
				DistanceM:       math.Round(distKm * 1000),
			})
		}
		return c.JSON(fiber.Map{"items": items})
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		p, ok := reg.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "object not found")
		}
		return c.JSON(p)
	})

	r.Post("/:id/select", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, ok := reg.Get(id); !ok {
			return fiber.NewError(fiber.StatusNotFound, "object not found")
		}
		reg.Select(id)
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

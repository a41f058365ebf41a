package route

import (
	"errors"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/poi"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, registry *poi.Registry) {
	r.Post("/", func(c *fiber.Ctx) error {
		var body struct {
			DestinationID string `json:"destinationId"`
		}
		if err := c.BodyParser(&body); err != nil || body.DestinationID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "destinationId required")
		}

		dest, ok := registry.Get(body.DestinationID)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "object not found")
		}

		result, err := svc.BuildRoute(c.Context(), Endpoint{Name: dest.Name, Coords: dest.Coordinates})
		switch {
		case errors.Is(err, ErrSuperseded):
			return fiber.NewError(fiber.StatusConflict, "superseded by a newer request")
		case errors.Is(err, ErrMissingEndpoint):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusBadGateway, "route build failed")
		}
		return c.JSON(result)
	})

	r.Delete("/", func(c *fiber.Ctx) error {
		svc.ClearRoute()
		return c.JSON(fiber.Map{"status": "ok"})
	})

	r.Get("/current", func(c *fiber.Ctx) error {
		result, ok := svc.Current()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no route built")
		}
		return c.JSON(result)
	})

	r.Get("/recent", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"items": svc.Recent(c.Context())})
	})

	r.Post("/downloaded", func(c *fiber.Ctx) error {
		svc.NotifyDownloaded()
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

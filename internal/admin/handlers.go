package admin

import (
	"errors"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/poi"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes exposes the administrative object editor. All mutations run
// through the registry so persistence and marker redraw stay in one place.
func RegisterRoutes(r fiber.Router, registry *poi.Registry, authMiddleware fiber.Handler) {
	r.Post("/pois", authMiddleware, func(c *fiber.Ctx) error {
		var body poi.PointOfInterest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		body.ID = "" // ids are assigned by the registry

		created, err := registry.Upsert(c.Context(), body)
		if err != nil {
			return validationError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Put("/pois/:id", authMiddleware, func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, ok := registry.Get(id); !ok {
			return fiber.NewError(fiber.StatusNotFound, "object not found")
		}

		var body poi.PointOfInterest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		body.ID = id // the id in the path wins, ids are immutable

		updated, err := registry.Upsert(c.Context(), body)
		if err != nil {
			return validationError(err)
		}
		return c.JSON(updated)
	})

	r.Delete("/pois/:id", authMiddleware, func(c *fiber.Ctx) error {
		err := registry.Remove(c.Context(), c.Params("id"))
		if errors.Is(err, poi.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "object not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func validationError(err error) error {
	switch {
	case errors.Is(err, poi.ErrNameRequired):
		return fiber.NewError(fiber.StatusBadRequest, "Заполните все обязательные поля")
	case errors.Is(err, poi.ErrCoordsOutOfRange):
		return fiber.NewError(fiber.StatusBadRequest, "Некорректные координаты")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

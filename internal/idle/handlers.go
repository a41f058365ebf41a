package idle

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, ctrl *Controller, timeout time.Duration) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"armed":          ctrl.Armed(),
			"path":           ctrl.Path(),
			"lastActivityAt": ctrl.LastActivity(),
			"timeoutMs":      timeout.Milliseconds(),
		})
	})

	// Manual rearm for containing pages, e.g. after a modal closes without a
	// raw input event reaching the document.
	r.Post("/reset", func(c *fiber.Ctx) error {
		ctrl.Reset()
		return c.JSON(fiber.Map{"armed": ctrl.Armed()})
	})
}

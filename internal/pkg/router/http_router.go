package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ndiayelabs/terangapay/app/controllers"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Provider webhooks are signature-verified in the controller and stay
	// outside the rate-limited /api group so provider retries are never
	// throttled.
	app.Post("/webhooks/paydunya", controllers.HandlePaymentWebhook)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

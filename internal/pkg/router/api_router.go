package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ndiayelabs/terangapay/app/controllers"
	"github.com/ndiayelabs/terangapay/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Public auth endpoints
	v1.Post("/auth/register", controllers.HandleRegister)
	v1.Post("/auth/login", controllers.HandleLogin)

	// Endpoints requiring a user API key
	authed := v1.Group("", middleware.APIKeyAuthMiddleware())
	authed.Post("/checkout", controllers.HandleCreateCheckout)
	authed.Get("/payments", controllers.HandleListPayments)
	authed.Get("/payments/:token/status", controllers.HandlePaymentStatus)
	authed.Get("/user/account", controllers.HandleGetUserAccount)

	// Admin endpoints
	admin := authed.Group("/admin", middleware.RequireAdmin)
	admin.Get("/audit", controllers.HandleAdminListAuditEvents)
	admin.Get("/payments/:id/audit", controllers.HandleAdminPaymentAudit)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

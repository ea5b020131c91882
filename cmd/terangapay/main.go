package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ndiayelabs/terangapay/app/controllers"
	"github.com/ndiayelabs/terangapay/app/repository"
	"github.com/ndiayelabs/terangapay/internal/pkg/cache"
	"github.com/ndiayelabs/terangapay/internal/pkg/database"
	"github.com/ndiayelabs/terangapay/internal/pkg/env"
	"github.com/ndiayelabs/terangapay/internal/pkg/jobqueue"
	"github.com/ndiayelabs/terangapay/internal/pkg/payments"
	"github.com/ndiayelabs/terangapay/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	provider, err := payments.NewPayDunyaClientFromEnv()
	if err != nil {
		log.Fatalf("PayDunya client setup failed: %v", err)
	}
	webhookSecret := env.GetEnv("PAYMENT_WEBHOOK_SECRET", "")
	if webhookSecret == "" {
		log.Fatal("PAYMENT_WEBHOOK_SECRET must be set")
	}

	svc := payments.NewServiceFromDB(database.GetDB(), provider)
	controllers.InitializePaymentController(svc, webhookSecret)

	// Background confirm sweep for payments whose webhook never arrived
	manager := jobqueue.GetManager()
	jobqueue.SetStatusResolver(svc)
	manager.SetPendingLister(svc)
	manager.Start()

	app := fiber.New(fiber.Config{
		AppName: "TerangaPay",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}

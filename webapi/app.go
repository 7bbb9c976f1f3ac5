// Package webapi assembles the Fiber application: middleware, error handling
// and route registration.
package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tripmena/backend/pkg/config"
	"github.com/tripmena/backend/pkg/exchange"
	"github.com/tripmena/backend/pkg/repository"
	cartsvc "github.com/tripmena/backend/pkg/service/cart"
	checkoutsvc "github.com/tripmena/backend/pkg/service/checkout"
	paymentsvc "github.com/tripmena/backend/pkg/service/payment"
	"github.com/tripmena/backend/pkg/service/pricing"
	"github.com/tripmena/backend/webapi/booking"
	"github.com/tripmena/backend/webapi/cart"
	"github.com/tripmena/backend/webapi/catalog"
	"github.com/tripmena/backend/webapi/common"
	currencyapi "github.com/tripmena/backend/webapi/currency"
)

// Deps is the dependency set the HTTP layer consumes.
type Deps struct {
	Cfg        *config.App
	Logger     *slog.Logger
	UoW        repository.UnitOfWork
	Rates      *exchange.Cache
	Normalizer *pricing.Normalizer
	Carts      *cartsvc.Service
	Checkout   *checkoutsvc.Orchestrator
	Payments   *paymentsvc.Handler
}

// New builds the Fiber application with all routes registered.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "tripmena",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        d.Cfg.RateLimit.MaxRequests,
		Expiration: d.Cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests,
				"Too Many Requests", "Rate limit exceeded")
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	cart.Routes(app, d.Carts, d.Checkout, d.Payments, d.Normalizer, d.Cfg.Checkout, d.Logger)
	catalog.Routes(app, d.UoW, d.Normalizer)
	currencyapi.Routes(app, d.Rates)
	booking.Routes(app, d.Payments, d.Logger)

	return app
}

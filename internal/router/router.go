package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/llmath/problems-api/internal/config"
	"github.com/llmath/problems-api/internal/handler"
	"github.com/llmath/problems-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ProblemHandler *handler.ProblemHandler
	TaggingHandler *handler.TaggingHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.ProblemHandler != nil {
		deps.ProblemHandler.Register(api.Group("/problems"))
	}

	// Tagging routes hang directly off /api (assign_type, types, debug, ...).
	if deps.TaggingHandler != nil {
		deps.TaggingHandler.Register(api)
	}
}

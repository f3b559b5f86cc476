package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-sync/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Status *handlers.StatusHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/healthz", cfg.Health.Live)
	app.Get("/status", cfg.Status.Status)
}

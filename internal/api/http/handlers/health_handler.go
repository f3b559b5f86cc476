package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-sync/internal/persistence"
)

// HealthHandler responds to liveness probes while a sync run is in flight.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres}
}

// Live reports process liveness and database reachability.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	status := fiber.StatusOK
	if err := h.postgres.Ping(ctx); err != nil {
		dbStatus = err.Error()
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   "alive",
		"service":  h.serviceName,
		"version":  h.version,
		"postgres": dbStatus,
	})
}

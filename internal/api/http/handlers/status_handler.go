package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-sync/internal/observability"
	"github.com/spec-kit/asset-sync/internal/syncer"
)

// StatusHandler exposes the progress of the current sync run.
type StatusHandler struct {
	orchestrator *syncer.Orchestrator
	metrics      *observability.Metrics
}

// NewStatusHandler returns a new handler instance.
func NewStatusHandler(orchestrator *syncer.Orchestrator, metrics *observability.Metrics) *StatusHandler {
	return &StatusHandler{orchestrator: orchestrator, metrics: metrics}
}

// Status reports per-stage state and the run counters.
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"stages":   h.orchestrator.Snapshot(),
		"counters": h.metrics.Snapshot(),
	})
}

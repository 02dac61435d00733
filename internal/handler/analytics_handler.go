package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/service"
)

// AnalyticsHandler accepts fire-and-forget beacons and serves the
// insights summary.
type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// PostEvent enqueues one analytics event. The response never waits on
// the counter write; a full buffer silently drops the event.
// @Summary Submit analytics event
// @Tags analytics
// @Accept json
// @Param event body service.Event true "Event beacon"
// @Success 202
// @Failure 400 {object} ErrorResponse
// @Router /analytics/events [post]
func (h *AnalyticsHandler) PostEvent(c fiber.Ctx) error {
	var event service.Event
	if err := c.Bind().Body(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "malformed event"})
	}
	if event.Kind == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "missing event kind", Field: "kind"})
	}

	h.svc.Track(event)
	return c.SendStatus(fiber.StatusAccepted)
}

// Summary returns today's usage counters.
// @Summary Analytics summary
// @Tags analytics
// @Produce json
// @Success 200 {object} service.AnalyticsSummary
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c fiber.Ctx) error {
	summary, err := h.svc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

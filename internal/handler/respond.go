package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/apperr"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/models"
)

// ErrorResponse is the standard error response format for reads.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps the error taxonomy onto HTTP statuses for read
// endpoints. Upstream details never leak to the caller; they go to the
// log instead.
func respondError(c fiber.Ctx, err error) error {
	status, body := classify(err)
	return c.Status(status).JSON(body)
}

// respondMutation wraps a failed mutation in the structured result
// payload. Mutations never return a bare error body.
func respondMutation(c fiber.Ctx, id string, err error) error {
	status, body := classify(err)
	return c.Status(status).JSON(models.MutationResult{
		Success: false,
		ID:      id,
		Message: body.Error,
	})
}

func classify(err error) (int, ErrorResponse) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, ErrorResponse{Error: ve.Error(), Field: ve.Field}
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return fiber.StatusNotFound, ErrorResponse{Error: "movie not found"}
	}
	if errors.Is(err, apperr.ErrVersionConflict) {
		return fiber.StatusConflict, ErrorResponse{Error: "record was modified concurrently, re-read and retry"}
	}

	var qe *apperr.QuerySyntaxError
	if errors.As(err, &qe) {
		// Generated-query rejection is a query builder defect, not a
		// caller mistake. Log loudly, answer generically.
		slog.Error("query builder produced invalid query", "query", qe.Query, "error", qe.Err)
		return fiber.StatusInternalServerError, ErrorResponse{Error: "internal search error"}
	}

	var ue *apperr.UpstreamError
	if errors.As(err, &ue) {
		slog.Error("index store unavailable", "op", ue.Op, "error", ue.Err)
		return fiber.StatusServiceUnavailable, ErrorResponse{Error: "search backend temporarily unavailable, retry shortly"}
	}

	slog.Error("unhandled error", "error", err)
	return fiber.StatusInternalServerError, ErrorResponse{Error: "internal error"}
}

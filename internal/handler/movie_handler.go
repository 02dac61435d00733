package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/models"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/service"
)

// MovieHandler handles HTTP requests for the movie library.
type MovieHandler struct {
	svc       *service.SearchService
	dashboard *service.DashboardService
	analytics *service.AnalyticsService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.SearchService, dashboard *service.DashboardService, analytics *service.AnalyticsService) *MovieHandler {
	return &MovieHandler{svc: svc, dashboard: dashboard, analytics: analytics}
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *MovieHandler) Health(c fiber.Ctx) error {
	if err := h.svc.Health(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "degraded",
			"service": "movie-library-explorer",
		})
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-library-explorer",
	})
}

// SearchMovies runs a paginated, optionally faceted search.
// @Summary Search movies
// @Tags movies
// @Produce json
// @Param q query string false "Free-text query" default(*)
// @Param genre query string false "Comma-separated genres"
// @Param year_from query number false "Minimum year (inclusive)"
// @Param year_to query number false "Maximum year (inclusive)"
// @Param rating_min query number false "Minimum rating (inclusive)"
// @Param rating_max query number false "Maximum rating (inclusive)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Param sort_by query string false "Sort field" Enums(relevance,title,year,rating,popularity,created_at,updated_at) default(relevance)
// @Param order query string false "Sort order" Enums(asc,desc) default(desc)
// @Param facets query bool false "Include facet counts" default(false)
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /movies [get]
func (h *MovieHandler) SearchMovies(c fiber.Ctx) error {
	params := models.SearchParams{
		Query: c.Query("q", "*"),
		Filters: models.Filters{
			Genres:           splitCSV(c.Query("genre")),
			Subgenres:        splitCSV(c.Query("subgenre")),
			Languages:        splitCSV(c.Query("language")),
			Countries:        splitCSV(c.Query("country")),
			ProductionHouses: splitCSV(c.Query("production_house")),
			Sources:          splitCSV(c.Query("source")),
			YearRange:        rangeParam(c, "year_from", "year_to"),
			RatingRange:      rangeParam(c, "rating_min", "rating_max"),
			PopularityRange:  rangeParam(c, "popularity_min", "popularity_max"),
		},
		Page:          fiber.Query(c, "page", 1),
		PageSize:      fiber.Query(c, "page_size", 20),
		SortField:     c.Query("sort_by", "relevance"),
		SortDirection: c.Query("order", "desc"),
		IncludeFacets: fiber.Query(c, "facets", false),
	}

	result, err := h.svc.Search(c.Context(), params)
	if err != nil {
		return respondError(c, err)
	}

	h.analytics.Track(service.Event{
		Kind:  service.EventSearch,
		Query: params.Query,
		Hits:  result.TotalCount,
	})
	return c.JSON(result)
}

// GetMovie returns one movie by its opaque ID.
// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.MovieRecord
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovie(c fiber.Ctx) error {
	movie, err := h.svc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movie)
}

// CreateMovie creates a new record.
// @Summary Create movie
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body models.MovieInput true "Movie fields"
// @Success 201 {object} models.MutationResult
// @Failure 400 {object} models.MutationResult
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c fiber.Ctx) error {
	var input models.MovieInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.MutationResult{
			Success: false,
			Message: "malformed request body",
		})
	}

	rec, err := h.svc.Create(c.Context(), input)
	if err != nil {
		return respondMutation(c, "", err)
	}

	h.dashboard.Invalidate()
	return c.Status(fiber.StatusCreated).JSON(models.MutationResult{
		Success: true,
		ID:      rec.ID,
		Message: "movie created",
	})
}

// UpdateMovie fully replaces the mutable fields of a record. The
// optional expected_version query parameter enables the
// optimistic-concurrency check.
// @Summary Update movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param expected_version query int false "Stored version the update expects"
// @Param movie body models.MovieInput true "Replacement fields"
// @Success 200 {object} models.MutationResult
// @Failure 404 {object} models.MutationResult
// @Failure 409 {object} models.MutationResult
// @Router /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c fiber.Ctx) error {
	id := c.Params("id")

	var input models.MovieInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.MutationResult{
			Success: false,
			ID:      id,
			Message: "malformed request body",
		})
	}

	expectedVersion := int64(fiber.Query(c, "expected_version", -1))
	if _, err := h.svc.Update(c.Context(), id, input, expectedVersion); err != nil {
		return respondMutation(c, id, err)
	}

	h.dashboard.Invalidate()
	return c.JSON(models.MutationResult{
		Success: true,
		ID:      id,
		Message: "movie updated",
	})
}

// DeleteMovie hard-deletes a record.
// @Summary Delete movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.MutationResult
// @Failure 404 {object} models.MutationResult
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return respondMutation(c, id, err)
	}

	h.dashboard.Invalidate()
	return c.JSON(models.MutationResult{
		Success: true,
		ID:      id,
		Message: "movie deleted",
	})
}

// Suggestions returns autocomplete candidates for a prefix.
// @Summary Autocomplete suggestions
// @Tags movies
// @Produce json
// @Param q query string true "Prefix, at least two characters"
// @Success 200 {object} models.Suggestions
// @Router /movies/suggestions [get]
func (h *MovieHandler) Suggestions(c fiber.Ctx) error {
	result, err := h.svc.Suggestions(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// FilterOptions lists the available filter values per field.
// @Summary Filter options
// @Tags movies
// @Produce json
// @Success 200 {object} models.FilterOptions
// @Router /movies/filters [get]
func (h *MovieHandler) FilterOptions(c fiber.Ctx) error {
	result, err := h.svc.FilterOptions(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// DashboardStats returns the global aggregation, with the yearly
// breakdown paginated like any other listing.
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Param page query int false "Yearly breakdown page" default(1)
// @Param page_size query int false "Yearly breakdown page size" default(20)
// @Param sort_by query string false "Yearly sort field" Enums(year,count,average_rating) default(year)
// @Param order query string false "Sort order" Enums(asc,desc) default(desc)
// @Success 200 {object} models.DashboardStats
// @Router /dashboard/stats [get]
func (h *MovieHandler) DashboardStats(c fiber.Ctx) error {
	stats, err := h.dashboard.Stats(
		c.Context(),
		fiber.Query(c, "page", 1),
		fiber.Query(c, "page_size", 20),
		c.Query("sort_by", "year"),
		c.Query("order", "desc"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// IndexStats summarizes the search index.
// @Summary Index statistics
// @Tags index
// @Produce json
// @Success 200 {object} models.IndexStats
// @Router /index/stats [get]
func (h *MovieHandler) IndexStats(c fiber.Ctx) error {
	stats, err := h.svc.IndexStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// rangeParam reads a numeric range from a query parameter pair; an
// absent side stays open.
func rangeParam(c fiber.Ctx, minKey, maxKey string) *models.NumericRange {
	var r models.NumericRange
	if c.Query(minKey) != "" {
		v := fiber.Query(c, minKey, 0.0)
		r.Min = &v
	}
	if c.Query(maxKey) != "" {
		v := fiber.Query(c, maxKey, 0.0)
		r.Max = &v
	}
	if r.Min == nil && r.Max == nil {
		return nil
	}
	return &r
}

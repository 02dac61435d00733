package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/apperr"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/config"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/models"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/repository"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/search"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/sliceutil"
)

// SearchService owns the search, lookup and mutation paths. It is
// stateless: every request stands alone and the index store is the only
// authority.
type SearchService struct {
	repo *repository.MovieRepository
	cfg  config.SearchConfig
}

// NewSearchService creates a SearchService.
func NewSearchService(repo *repository.MovieRepository, cfg config.SearchConfig) *SearchService {
	return &SearchService{repo: repo, cfg: cfg}
}

// buildExpr translates the closed filter schema plus free text into one
// query expression. An empty request compiles to match-all.
func buildExpr(query string, f models.Filters) search.Expr {
	parts := []search.Expr{search.Text(query)}

	tagFilters := []struct {
		field  string
		values []string
	}{
		{"genre", f.Genres},
		{"subgenre", f.Subgenres},
		{"language", f.Languages},
		{"country", f.Countries},
		{"production_house", f.ProductionHouses},
		{"source", f.Sources},
	}
	for _, t := range tagFilters {
		if len(t.values) > 0 {
			parts = append(parts, search.Tag(t.field, t.values...))
		}
	}

	rangeFilters := []struct {
		field string
		rng   *models.NumericRange
	}{
		{"year", f.YearRange},
		{"rating", f.RatingRange},
		{"popularity", f.PopularityRange},
	}
	for _, r := range rangeFilters {
		if r.rng != nil {
			parts = append(parts, search.NumRange(r.field, r.rng.Min, r.rng.Max))
		}
	}

	return search.And(parts...)
}

// Search executes one paginated, optionally faceted search.
func (s *SearchService) Search(ctx context.Context, params models.SearchParams) (*models.SearchResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	expr := buildExpr(params.Query, params.Filters)
	page := search.NewPage(params.Page, params.PageSize, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)
	sortSpec := search.ResolveSort(params.SortField, params.SortDirection, s.repo.Schema().SortableFields())

	total, records, err := s.repo.Search(ctx, expr, sortSpec, page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}

	resp := &models.SearchResponse{
		Records: records,
		Info:    page.Paginate(total),
	}
	if params.IncludeFacets {
		resp.Facets = s.facets(ctx, expr)
	}
	resp.QueryTimeMs = float64(time.Since(start).Microseconds()) / 1000.0

	slog.Info("search completed",
		"query", search.Compile(expr),
		"hits", total,
		"page", page.Number,
		"took_ms", resp.QueryTimeMs)
	return resp, nil
}

// facets computes the per-field value counts over the filtered set.
// Best-effort: a field whose aggregation fails is logged and omitted,
// never failing the search itself.
func (s *SearchService) facets(ctx context.Context, expr search.Expr) []models.Facet {
	var out []models.Facet
	for _, field := range s.repo.Schema().TagFields() {
		values, err := s.repo.Facet(ctx, expr, field, s.cfg.FacetLimit)
		if err != nil {
			slog.Warn("facet aggregation skipped", "field", field, "error", err)
			continue
		}
		if len(values) > 0 {
			out = append(out, models.Facet{Field: field, Values: values})
		}
	}
	return out
}

// GetByID fetches one record.
func (s *SearchService) GetByID(ctx context.Context, id string) (*models.MovieRecord, error) {
	if id == "" {
		return nil, apperr.Invalid("id", "must not be empty")
	}
	return s.repo.Get(ctx, id)
}

// Create validates the input and writes a new record. The identifier is
// minted here and opaque to callers.
func (s *SearchService) Create(ctx context.Context, in models.MovieInput) (*models.MovieRecord, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	rec := &models.MovieRecord{
		ID:        s.cfg.KeyPrefix + uuid.NewString(),
		Source:    "manual_entry",
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(rec)

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}
	slog.Info("movie created", "id", rec.ID, "title", rec.Title)
	return rec, nil
}

// Update fully replaces the mutable fields of an existing record.
// expectedVersion < 0 skips the optimistic-concurrency check.
func (s *SearchService) Update(ctx context.Context, id string, in models.MovieInput, expectedVersion int64) (int64, error) {
	if id == "" {
		return 0, apperr.Invalid("id", "must not be empty")
	}
	if err := in.Validate(); err != nil {
		return 0, err
	}

	rec := &models.MovieRecord{UpdatedAt: time.Now().Unix()}
	in.Apply(rec)

	newVersion, err := s.repo.Replace(ctx, id, expectedVersion, rec.Fields())
	if err != nil {
		return 0, err
	}
	slog.Info("movie updated", "id", id, "version", newVersion)
	return newVersion, nil
}

// Delete hard-deletes a record from the index.
func (s *SearchService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Invalid("id", "must not be empty")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("movie deleted", "id", id)
	return nil
}

// Suggestions returns autocomplete candidates grouped by category for a
// prefix of at least two characters.
func (s *SearchService) Suggestions(ctx context.Context, prefix string) (*models.Suggestions, error) {
	out := &models.Suggestions{}
	if len(prefix) < 2 {
		return out, nil
	}

	limit := s.cfg.SuggestLimit
	collect := func(e search.Expr, pick func(models.MovieRecord) []string) []string {
		_, records, err := s.repo.Search(ctx, e, search.Relevance, 0, limit)
		if err != nil {
			slog.Warn("suggestion lookup skipped", "error", err)
			return nil
		}
		var vals []string
		for _, rec := range records {
			vals = append(vals, pick(rec)...)
		}
		vals = sliceutil.Unique(vals)
		if len(vals) > limit {
			vals = vals[:limit]
		}
		return vals
	}

	out.Titles = collect(search.Prefix("title", prefix), func(m models.MovieRecord) []string {
		return []string{m.Title}
	})
	out.Genres = collect(search.TagPrefix("genre", prefix), func(m models.MovieRecord) []string {
		return []string{m.Genre}
	})
	out.Directors = collect(search.Prefix("director", prefix), func(m models.MovieRecord) []string {
		return []string{m.Director}
	})
	out.Actors = collect(search.Prefix("stars", prefix), func(m models.MovieRecord) []string {
		return m.Stars
	})
	return out, nil
}

// FilterOptions lists the distinct values per filterable field by
// faceting the whole collection.
func (s *SearchService) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	opts := &models.FilterOptions{}
	targets := map[string]*[]string{
		"genre":            &opts.Genres,
		"subgenre":         &opts.Subgenres,
		"language":         &opts.Languages,
		"country":          &opts.Countries,
		"production_house": &opts.ProductionHouses,
		"source":           &opts.Sources,
	}

	for _, field := range s.repo.Schema().TagFields() {
		dst, ok := targets[field]
		if !ok {
			continue
		}
		values, err := s.repo.Facet(ctx, search.MatchAll(), field, s.cfg.FacetLimit)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(values))
		for _, v := range values {
			names = append(names, v.Value)
		}
		sort.Strings(names)
		*dst = names
	}
	return opts, nil
}

// IndexStats summarizes the index from FT.INFO.
func (s *SearchService) IndexStats(ctx context.Context) (*models.IndexStats, error) {
	info, err := s.repo.Info(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.IndexStats{Indexing: info["indexing"]}
	if n, err := strconv.ParseInt(info["num_docs"], 10, 64); err == nil {
		stats.TotalMovies = n
	}
	inverted, _ := strconv.ParseFloat(info["inverted_sz_mb"], 64)
	docTable, _ := strconv.ParseFloat(info["doc_table_size_mb"], 64)
	stats.IndexSizeMB = roundTo(inverted+docTable, 2)
	return stats, nil
}

// Health pings the index store.
func (s *SearchService) Health(ctx context.Context) error {
	if _, err := s.repo.Info(ctx); err != nil {
		var ue *apperr.UpstreamError
		if errors.As(err, &ue) {
			return ue
		}
		return fmt.Errorf("index health check failed: %w", err)
	}
	return nil
}

func roundTo(v float64, places int) float64 {
	shift := 1.0
	for i := 0; i < places; i++ {
		shift *= 10
	}
	return float64(int64(v*shift+0.5)) / shift
}

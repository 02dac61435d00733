package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/config"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/models"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/repository"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/search"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/sliceutil"
)

const (
	yearTopGenres  = 3
	yearTopMovies  = 3
	globalTopRated = 10
)

// DashboardService computes the global aggregation over the whole
// collection, independent of any search filter. The result is cached in
// process for a short TTL: the dashboard is read-heavy and write-light,
// and callers accept staleness up to the configured TTL.
type DashboardService struct {
	repo      *repository.MovieRepository
	cfg       config.DashboardConfig
	searchCfg config.SearchConfig

	mu       sync.Mutex
	cached   *snapshot
	cachedAt time.Time
}

// snapshot is one full aggregation pass. YearlyStats arrives sorted year
// descending; Stats re-sorts a copy per request.
type snapshot struct {
	totalMovies   int
	totalGenres   int
	averageRating float64
	latestYear    int
	topGenre      string
	topGenres     []models.GenreCount
	yearlyStats   []models.YearStats
	topRated      []models.RatedMovie
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(repo *repository.MovieRepository, cfg config.DashboardConfig, searchCfg config.SearchConfig) *DashboardService {
	return &DashboardService{repo: repo, cfg: cfg, searchCfg: searchCfg}
}

// Stats returns the dashboard aggregation with the yearly breakdown
// sorted and page-sliced per the standard pagination contract.
func (s *DashboardService) Stats(ctx context.Context, page, pageSize int, sortField, sortDirection string) (*models.DashboardStats, error) {
	snap, err := s.snapshotCached(ctx)
	if err != nil {
		return nil, err
	}

	yearly := sortedYearly(snap.yearlyStats, sortField, sortDirection)
	pg := search.NewPage(page, pageSize, s.searchCfg.DefaultPageSize, s.searchCfg.MaxPageSize)
	info := pg.Paginate(int64(len(yearly)))

	start := pg.Offset()
	if start > len(yearly) {
		start = len(yearly)
	}
	end := start + pg.Size
	if end > len(yearly) {
		end = len(yearly)
	}

	return &models.DashboardStats{
		TotalMovies:   snap.totalMovies,
		TotalGenres:   snap.totalGenres,
		AverageRating: snap.averageRating,
		LatestYear:    snap.latestYear,
		TopGenre:      snap.topGenre,
		TopGenres:     snap.topGenres,
		YearlyStats:   yearly[start:end],
		YearlyPages:   info,
		TopRated:      snap.topRated,
	}, nil
}

// Invalidate drops the cached aggregation, forcing the next call to
// recompute. Called after mutations.
func (s *DashboardService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *DashboardService) snapshotCached(ctx context.Context) (*snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.cachedAt) < s.cfg.CacheTTL {
		return s.cached, nil
	}

	start := time.Now()
	snap, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.cached = snap
	s.cachedAt = time.Now()
	slog.Info("dashboard aggregation recomputed",
		"movies", snap.totalMovies,
		"took_ms", time.Since(start).Milliseconds())
	return snap, nil
}

// compute scans the full collection in pages and folds the records into
// the summary structures.
func (s *DashboardService) compute(ctx context.Context) (*snapshot, error) {
	var all []models.MovieRecord
	for offset := 0; ; offset += s.cfg.ScanPageSize {
		total, batch, err := s.repo.Search(ctx, search.MatchAll(), search.Relevance, offset, s.cfg.ScanPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) == 0 || int64(len(all)) >= total {
			break
		}
	}

	snap := &snapshot{totalMovies: len(all)}
	if len(all) == 0 {
		return snap, nil
	}

	type yearBucket struct {
		genreCounts map[string]int
		ratings     []float64
		movies      []models.RatedMovie
	}

	genreCounts := make(map[string]int)
	years := make(map[int]*yearBucket)
	var ratings []float64
	var yearList []int

	for _, m := range all {
		genre := m.Genre
		if genre == "" {
			genre = models.GenreUnknown
		}
		genreCounts[genre]++

		if m.Rating > 0 {
			ratings = append(ratings, m.Rating)
		}
		if m.Year <= 0 {
			continue
		}

		b := years[m.Year]
		if b == nil {
			b = &yearBucket{genreCounts: make(map[string]int)}
			years[m.Year] = b
			yearList = append(yearList, m.Year)
		}
		b.genreCounts[genre]++
		if m.Rating > 0 {
			b.ratings = append(b.ratings, m.Rating)
		}
		b.movies = append(b.movies, models.RatedMovie{
			ID:       m.ID,
			Title:    m.Title,
			Year:     m.Year,
			Genre:    genre,
			Rating:   m.Rating,
			Director: m.Director,
		})
	}

	snap.totalGenres = len(genreCounts)
	if len(ratings) > 0 {
		snap.averageRating = roundTo(sliceutil.Sum(ratings)/float64(len(ratings)), 1)
	}
	snap.latestYear = sliceutil.Max(yearList)

	snap.topGenres = sliceutil.Head(rankGenres(genreCounts), s.cfg.TopGenres)
	if len(snap.topGenres) > 0 {
		snap.topGenre = snap.topGenres[0].Name
	}

	sort.Sort(sort.Reverse(sort.IntSlice(yearList)))
	for _, year := range yearList {
		b := years[year]
		ys := models.YearStats{
			Year:      year,
			Count:     len(b.movies),
			TopGenres: sliceutil.Head(rankGenres(b.genreCounts), yearTopGenres),
			TopMovies: sliceutil.Head(rankMovies(b.movies), yearTopMovies),
		}
		if len(b.ratings) > 0 {
			ys.AverageRating = roundTo(sliceutil.Sum(b.ratings)/float64(len(b.ratings)), 1)
		}
		snap.yearlyStats = append(snap.yearlyStats, ys)
	}

	var rated []models.RatedMovie
	for _, m := range all {
		if m.Rating > 0 && m.Title != "" {
			rated = append(rated, models.RatedMovie{
				ID:       m.ID,
				Title:    m.Title,
				Year:     m.Year,
				Genre:    m.Genre,
				Rating:   m.Rating,
				Director: m.Director,
			})
		}
	}
	snap.topRated = sliceutil.Head(rankMovies(rated), globalTopRated)

	return snap, nil
}

// rankGenres orders counts descending, ties broken by name ascending.
func rankGenres(counts map[string]int) []models.GenreCount {
	out := make([]models.GenreCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, models.GenreCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// rankMovies orders by rating descending, ties broken by title ascending.
func rankMovies(movies []models.RatedMovie) []models.RatedMovie {
	out := make([]models.RatedMovie, len(movies))
	copy(out, movies)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// sortedYearly re-orders a copy of the yearly breakdown. Default and
// fallback is year descending.
func sortedYearly(stats []models.YearStats, field, direction string) []models.YearStats {
	out := make([]models.YearStats, len(stats))
	copy(out, stats)

	asc := direction == "asc"
	less := func(i, j int) bool { return out[i].Year < out[j].Year }
	switch field {
	case "count":
		less = func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count < out[j].Count
			}
			return out[i].Year < out[j].Year
		}
	case "average_rating":
		less = func(i, j int) bool {
			if out[i].AverageRating != out[j].AverageRating {
				return out[i].AverageRating < out[j].AverageRating
			}
			return out[i].Year < out[j].Year
		}
	case "", "year":
		if direction == "" {
			asc = false
		}
	default:
		asc = false
	}

	if asc {
		sort.Slice(out, less)
	} else {
		sort.Slice(out, func(i, j int) bool { return less(j, i) })
	}
	return out
}

package models

import (
	"fmt"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/apperr"
)

// NumericRange is an inclusive bound pair; a nil side is open.
type NumericRange struct {
	Min *float64 `json:"min" query:"min"`
	Max *float64 `json:"max" query:"max"`
}

// Filters is the closed filter schema. Tag filters OR within a field and
// AND across fields; unknown fields are rejected at the handler boundary
// because nothing else can be expressed here.
type Filters struct {
	Genres           []string `json:"genres" query:"genre"`
	Subgenres        []string `json:"subgenres" query:"subgenre"`
	Languages        []string `json:"languages" query:"language"`
	Countries        []string `json:"countries" query:"country"`
	ProductionHouses []string `json:"production_houses" query:"production_house"`
	Sources          []string `json:"sources" query:"source"`

	YearRange       *NumericRange `json:"year_range"`
	RatingRange     *NumericRange `json:"rating_range"`
	PopularityRange *NumericRange `json:"popularity_range"`
}

// Empty reports whether no filter is set.
func (f *Filters) Empty() bool {
	if f == nil {
		return true
	}
	return len(f.Genres) == 0 && len(f.Subgenres) == 0 && len(f.Languages) == 0 &&
		len(f.Countries) == 0 && len(f.ProductionHouses) == 0 && len(f.Sources) == 0 &&
		f.YearRange == nil && f.RatingRange == nil && f.PopularityRange == nil
}

// SearchParams is one search request as it leaves the handler layer.
type SearchParams struct {
	Query         string
	Filters       Filters
	Page          int
	PageSize      int
	SortField     string
	SortDirection string
	IncludeFacets bool
}

// Validate rejects malformed numeric ranges before any index call.
// Page and size are clamped later, not rejected; sort fails closed.
func (p *SearchParams) Validate() error {
	for _, r := range []struct {
		name string
		rng  *NumericRange
	}{
		{"year_range", p.Filters.YearRange},
		{"rating_range", p.Filters.RatingRange},
		{"popularity_range", p.Filters.PopularityRange},
	} {
		if r.rng == nil {
			continue
		}
		if r.rng.Min != nil && r.rng.Max != nil && *r.rng.Min > *r.rng.Max {
			return apperr.Invalid(r.name, fmt.Sprintf("min %.1f exceeds max %.1f", *r.rng.Min, *r.rng.Max))
		}
	}
	if p.SortDirection != "" && p.SortDirection != "asc" && p.SortDirection != "desc" {
		return apperr.Invalid("sort_direction", "must be asc or desc")
	}
	return nil
}

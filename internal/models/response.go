package models

import "github.com/mahisadi/netflix-movie-library-explorer/internal/search"

// FacetValue is one distinct value of a facet field with its count in
// the current result set.
type FacetValue struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Facet is the count breakdown of one field.
type Facet struct {
	Field  string       `json:"field"`
	Values []FacetValue `json:"values"`
}

// SearchResponse is the combined search payload.
type SearchResponse struct {
	Records []MovieRecord `json:"records"`
	search.Info
	Facets      []Facet `json:"facets,omitempty"`
	QueryTimeMs float64 `json:"query_time_ms"`
}

// MutationResult is the structured outcome of create/update/delete.
// Mutations never surface a bare error payload.
type MutationResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// GenreCount pairs a genre with its record count.
type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RatedMovie is a compact top-rated list entry.
type RatedMovie struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Year     int     `json:"year"`
	Genre    string  `json:"genre"`
	Rating   float64 `json:"rating"`
	Director string  `json:"director"`
}

// YearStats is one entry of the per-year breakdown.
type YearStats struct {
	Year          int          `json:"year"`
	Count         int          `json:"count"`
	AverageRating float64      `json:"average_rating"`
	TopGenres     []GenreCount `json:"top_genres"`
	TopMovies     []RatedMovie `json:"top_movies"`
}

// DashboardStats is the global aggregation payload. YearlyStats is
// itself page-sliced under the standard pagination contract.
type DashboardStats struct {
	TotalMovies   int          `json:"total_movies"`
	TotalGenres   int          `json:"total_genres"`
	AverageRating float64      `json:"average_rating"`
	LatestYear    int          `json:"latest_year"`
	TopGenre      string       `json:"top_genre"`
	TopGenres     []GenreCount `json:"top_genres"`
	YearlyStats   []YearStats  `json:"yearly_stats"`
	YearlyPages   search.Info  `json:"yearly_pages"`
	TopRated      []RatedMovie `json:"top_rated"`
}

// Suggestions groups autocomplete candidates by category.
type Suggestions struct {
	Titles    []string `json:"titles"`
	Genres    []string `json:"genres"`
	Directors []string `json:"directors"`
	Actors    []string `json:"actors"`
}

// FilterOptions lists the distinct values available per filterable
// field, for populating the search UI.
type FilterOptions struct {
	Genres           []string `json:"genres"`
	Subgenres        []string `json:"subgenres"`
	Languages        []string `json:"languages"`
	Countries        []string `json:"countries"`
	ProductionHouses []string `json:"production_houses"`
	Sources          []string `json:"sources"`
}

// IndexStats summarizes the index itself.
type IndexStats struct {
	TotalMovies int64   `json:"total_movies"`
	IndexSizeMB float64 `json:"index_size_mb"`
	Indexing    string  `json:"indexing"`
}

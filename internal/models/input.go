package models

import (
	"fmt"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/apperr"
)

// Year bounds considered plausible for a movie record. The lower bound is
// the year of the first motion picture.
const (
	MinYear = 1888
	MaxYear = 2100
)

// MovieInput carries the mutable fields of a create or full-replace
// update.
type MovieInput struct {
	Title           string   `json:"title"`
	Plot            string   `json:"plot"`
	Content         string   `json:"content"`
	Director        string   `json:"director"`
	Writer          string   `json:"writer"`
	Stars           []string `json:"stars"`
	Awards          []string `json:"awards"`
	Genre           string   `json:"genre"`
	Subgenre        string   `json:"subgenre"`
	Language        string   `json:"language"`
	Country         string   `json:"country"`
	ProductionHouse string   `json:"production_house"`
	Year            int      `json:"year"`
	Rating          float64  `json:"rating"`
	Popularity      int64    `json:"popularity"`
}

// Validate checks the write-time invariants and normalizes defaults.
// It runs before any index call so a bad input never reaches the store.
func (in *MovieInput) Validate() error {
	if in.Title == "" {
		return apperr.Invalid("title", "must not be empty")
	}
	if in.Director == "" {
		return apperr.Invalid("director", "must not be empty")
	}
	if in.Rating < 0 || in.Rating > 10 {
		return apperr.Invalid("rating", fmt.Sprintf("must be in [0.0, 10.0], got %.1f", in.Rating))
	}
	if in.Year < MinYear || in.Year > MaxYear {
		return apperr.Invalid("year", fmt.Sprintf("must be a plausible year (%d-%d), got %d", MinYear, MaxYear, in.Year))
	}
	if in.Genre == "" {
		in.Genre = GenreUnknown
	}
	if in.Subgenre == "" {
		in.Subgenre = GenreUnknown
	}
	if in.Language == "" {
		in.Language = "English"
	}
	return nil
}

// Apply copies the mutable fields onto a record, preserving identity and
// lifecycle fields.
func (in *MovieInput) Apply(rec *MovieRecord) {
	rec.Title = in.Title
	rec.Plot = in.Plot
	rec.Content = in.Content
	rec.Director = in.Director
	rec.Writer = in.Writer
	rec.Stars = in.Stars
	rec.Awards = in.Awards
	rec.Genre = in.Genre
	rec.Subgenre = in.Subgenre
	rec.Language = in.Language
	rec.Country = in.Country
	rec.ProductionHouse = in.ProductionHouse
	rec.Year = in.Year
	rec.Rating = in.Rating
	rec.Popularity = in.Popularity
}

package models

import (
	"errors"
	"testing"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/apperr"
)

func validInput() MovieInput {
	return MovieInput{
		Title:    "Inception",
		Director: "Christopher Nolan",
		Genre:    "Sci-Fi",
		Year:     2010,
		Rating:   8.8,
	}
}

func TestMovieInputValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*MovieInput)
		wantField string
	}{
		{"valid", func(in *MovieInput) {}, ""},
		{"missing title", func(in *MovieInput) { in.Title = "" }, "title"},
		{"missing director", func(in *MovieInput) { in.Director = "" }, "director"},
		{"rating too high", func(in *MovieInput) { in.Rating = 10.1 }, "rating"},
		{"rating negative", func(in *MovieInput) { in.Rating = -0.5 }, "rating"},
		{"rating at bounds", func(in *MovieInput) { in.Rating = 10.0 }, ""},
		{"year zero", func(in *MovieInput) { in.Year = 0 }, "year"},
		{"year before cinema", func(in *MovieInput) { in.Year = 1565 }, "year"},
		{"year five digits", func(in *MovieInput) { in.Year = 20100 }, "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestValidateDefaultsGenre(t *testing.T) {
	in := validInput()
	in.Genre = ""
	in.Subgenre = ""

	if err := in.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if in.Genre != GenreUnknown {
		t.Errorf("Genre = %q, want %q", in.Genre, GenreUnknown)
	}
	if in.Subgenre != GenreUnknown {
		t.Errorf("Subgenre = %q, want %q", in.Subgenre, GenreUnknown)
	}
}

func TestApplyPreservesIdentity(t *testing.T) {
	rec := &MovieRecord{
		ID:        "movie:abc",
		Version:   3,
		CreatedAt: 111,
		UpdatedAt: 222,
	}

	in := validInput()
	in.Apply(rec)

	if rec.ID != "movie:abc" || rec.Version != 3 || rec.CreatedAt != 111 {
		t.Errorf("Apply() touched identity fields: %+v", rec)
	}
	if rec.Title != "Inception" || rec.Year != 2010 {
		t.Errorf("Apply() did not copy mutable fields: %+v", rec)
	}
}

package index

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestMovieSchemaFieldSets(t *testing.T) {
	s := MovieSchema("movie_library", "movie:")

	wantTags := []string{"genre", "subgenre", "language", "country", "production_house", "source"}
	if got := s.TagFields(); !reflect.DeepEqual(got, wantTags) {
		t.Errorf("TagFields() = %v, want %v", got, wantTags)
	}

	wantSortable := []string{"title", "year", "rating", "popularity", "created_at", "updated_at"}
	if got := s.SortableFields(); !reflect.DeepEqual(got, wantSortable) {
		t.Errorf("SortableFields() = %v, want %v", got, wantSortable)
	}
}

func TestCreateArgs(t *testing.T) {
	s := Schema{
		Name:      "idx",
		KeyPrefix: "doc:",
		Language:  "english",
		Fields: []Field{
			{Name: "title", Kind: Text, Weight: 5.0, Sortable: true},
			{Name: "genre", Kind: Tag},
			{Name: "year", Kind: Numeric, Sortable: true},
		},
	}

	want := []interface{}{
		"FT.CREATE", "idx", "ON", "HASH",
		"PREFIX", "1", "doc:",
		"LANGUAGE", "english",
		"SCHEMA",
		"title", "TEXT", "WEIGHT", "5.0", "SORTABLE",
		"genre", "TAG",
		"year", "NUMERIC", "SORTABLE",
	}
	if got := s.CreateArgs(); !reflect.DeepEqual(got, want) {
		t.Errorf("CreateArgs() = %v, want %v", got, want)
	}
}

type stubExec struct{ err error }

func (s stubExec) Do(ctx context.Context, args ...interface{}) (any, error) {
	return nil, s.err
}

func TestEnsureTolerateExisting(t *testing.T) {
	s := MovieSchema("movie_library", "movie:")

	if err := Ensure(context.Background(), stubExec{}, s); err != nil {
		t.Errorf("Ensure() on fresh index = %v", err)
	}
	if err := Ensure(context.Background(), stubExec{err: errors.New("Index already exists")}, s); err != nil {
		t.Errorf("Ensure() on existing index = %v", err)
	}
	if err := Ensure(context.Background(), stubExec{err: errors.New("connection refused")}, s); err == nil {
		t.Error("Ensure() should surface store failures")
	}
}

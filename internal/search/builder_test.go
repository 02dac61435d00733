package search

import (
	"reflect"
	"testing"
)

func TestResolveSort(t *testing.T) {
	allowed := []string{"title", "year", "rating"}

	tests := []struct {
		name      string
		field     string
		direction string
		want      Sort
	}{
		{"empty field", "", "desc", Relevance},
		{"relevance", "relevance", "asc", Relevance},
		{"allowed desc", "year", "desc", Sort{Field: "year", Desc: true}},
		{"allowed asc", "rating", "asc", Sort{Field: "rating", Desc: false}},
		{"unknown fails closed", "file_id", "asc", Relevance},
		{"missing direction defaults desc", "title", "", Sort{Field: "title", Desc: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSort(tt.field, tt.direction, allowed); got != tt.want {
				t.Errorf("ResolveSort() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSearchArgs(t *testing.T) {
	got := SearchArgs("movie_library", Tag("genre", "Drama"), Sort{Field: "year", Desc: true}, 40, 20)
	want := []interface{}{
		"FT.SEARCH", "movie_library", "@genre:{Drama}",
		"SORTBY", "year", "DESC",
		"LIMIT", "40", "20",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchArgs() = %v, want %v", got, want)
	}
}

func TestSearchArgsRelevance(t *testing.T) {
	got := SearchArgs("movie_library", nil, Relevance, 0, 10)
	want := []interface{}{"FT.SEARCH", "movie_library", "*", "LIMIT", "0", "10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchArgs() = %v, want %v", got, want)
	}
}

func TestCountArgs(t *testing.T) {
	got := CountArgs("movie_library", MatchAll())
	want := []interface{}{"FT.SEARCH", "movie_library", "*", "LIMIT", "0", "0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountArgs() = %v, want %v", got, want)
	}
}

func TestFacetArgs(t *testing.T) {
	got := FacetArgs("movie_library", Tag("language", "English"), "genre", 100)
	want := []interface{}{
		"FT.AGGREGATE", "movie_library", "@language:{English}",
		"GROUPBY", "1", "@genre",
		"REDUCE", "COUNT", "0", "AS", "count",
		"LIMIT", "0", "100",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FacetArgs() = %v, want %v", got, want)
	}
}

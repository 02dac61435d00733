package models

import (
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestSearchParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  SearchParams
		wantErr bool
	}{
		{"empty", SearchParams{}, false},
		{"valid range", SearchParams{Filters: Filters{YearRange: &NumericRange{Min: fptr(1990), Max: fptr(2000)}}}, false},
		{"open min", SearchParams{Filters: Filters{RatingRange: &NumericRange{Max: fptr(8)}}}, false},
		{"inverted year range", SearchParams{Filters: Filters{YearRange: &NumericRange{Min: fptr(2010), Max: fptr(1990)}}}, true},
		{"inverted rating range", SearchParams{Filters: Filters{RatingRange: &NumericRange{Min: fptr(9), Max: fptr(2)}}}, true},
		{"equal bounds", SearchParams{Filters: Filters{PopularityRange: &NumericRange{Min: fptr(5), Max: fptr(5)}}}, false},
		{"sort asc", SearchParams{SortDirection: "asc"}, false},
		{"sort desc", SearchParams{SortDirection: "desc"}, false},
		{"sort garbage", SearchParams{SortDirection: "sideways"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFiltersEmpty(t *testing.T) {
	var nilFilters *Filters
	if !nilFilters.Empty() {
		t.Error("nil Filters should be empty")
	}
	if !(&Filters{}).Empty() {
		t.Error("zero Filters should be empty")
	}
	if (&Filters{Genres: []string{"Drama"}}).Empty() {
		t.Error("Filters with a genre should not be empty")
	}
	if (&Filters{YearRange: &NumericRange{}}).Empty() {
		t.Error("Filters with a range should not be empty")
	}
}

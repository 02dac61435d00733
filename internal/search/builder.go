package search

import (
	"strconv"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/sliceutil"
)

// Sort is a validated sort specification. A zero Sort means relevance
// order (no SORTBY clause).
type Sort struct {
	Field string
	Desc  bool
}

// Relevance is the default sort: the index's own scoring order.
var Relevance = Sort{}

// ResolveSort validates a caller-supplied sort against the allow-list of
// sortable fields. Unknown fields fail closed to relevance, never to an
// error.
func ResolveSort(field, direction string, allowed []string) Sort {
	if field == "" || field == "relevance" {
		return Relevance
	}
	if sliceutil.Contains(allowed, field) {
		return Sort{Field: field, Desc: direction != "asc"}
	}
	return Relevance
}

// SearchArgs assembles the complete FT.SEARCH command for a compiled
// query, sort spec and page slice.
func SearchArgs(indexName string, e Expr, sort Sort, offset, limit int) []interface{} {
	args := []interface{}{"FT.SEARCH", indexName, Compile(e)}
	if sort.Field != "" {
		dir := "ASC"
		if sort.Desc {
			dir = "DESC"
		}
		args = append(args, "SORTBY", sort.Field, dir)
	}
	args = append(args, "LIMIT", strconv.Itoa(offset), strconv.Itoa(limit))
	return args
}

// CountArgs assembles an FT.SEARCH that returns only the total match
// count (LIMIT 0 0).
func CountArgs(indexName string, e Expr) []interface{} {
	return []interface{}{"FT.SEARCH", indexName, Compile(e), "LIMIT", "0", "0"}
}

// FacetArgs assembles the FT.AGGREGATE used for one facet field: group
// the current filtered result set by the field and count per value.
func FacetArgs(indexName string, e Expr, field string, limit int) []interface{} {
	return []interface{}{
		"FT.AGGREGATE", indexName, Compile(e),
		"GROUPBY", "1", "@" + field,
		"REDUCE", "COUNT", "0", "AS", "count",
		"LIMIT", "0", strconv.Itoa(limit),
	}
}

// Package index defines the static RediSearch schema for the movie
// library and bootstraps the index on startup.
package index

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/redisearch"
)

// FieldKind is the RediSearch field type.
type FieldKind string

const (
	Text    FieldKind = "TEXT"
	Tag     FieldKind = "TAG"
	Numeric FieldKind = "NUMERIC"
)

// Field describes one indexed attribute.
type Field struct {
	Name     string
	Kind     FieldKind
	Weight   float64 // TEXT only, 0 means default
	Sortable bool
}

// Schema is an ordered field list plus the key binding.
type Schema struct {
	Name      string
	KeyPrefix string
	Language  string
	Fields    []Field
}

// MovieSchema returns the schema for the movie library index. Tag fields
// double as facet fields; numeric sortable fields back range filters and
// sorting.
func MovieSchema(name, keyPrefix string) Schema {
	return Schema{
		Name:      name,
		KeyPrefix: keyPrefix,
		Language:  "english",
		Fields: []Field{
			{Name: "title", Kind: Text, Weight: 5.0, Sortable: true},
			{Name: "director", Kind: Text, Weight: 3.0},
			{Name: "writer", Kind: Text, Weight: 2.0},
			{Name: "stars", Kind: Text, Weight: 3.0},
			{Name: "plot", Kind: Text, Weight: 1.0},
			{Name: "content", Kind: Text, Weight: 1.0},
			{Name: "awards", Kind: Text, Weight: 1.0},

			{Name: "genre", Kind: Tag},
			{Name: "subgenre", Kind: Tag},
			{Name: "language", Kind: Tag},
			{Name: "country", Kind: Tag},
			{Name: "production_house", Kind: Tag},
			{Name: "source", Kind: Tag},

			{Name: "year", Kind: Numeric, Sortable: true},
			{Name: "rating", Kind: Numeric, Sortable: true},
			{Name: "popularity", Kind: Numeric, Sortable: true},
			{Name: "version", Kind: Numeric},
			{Name: "created_at", Kind: Numeric, Sortable: true},
			{Name: "updated_at", Kind: Numeric, Sortable: true},
		},
	}
}

// TagFields returns the facet-eligible field names in schema order.
func (s Schema) TagFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Kind == Tag {
			out = append(out, f.Name)
		}
	}
	return out
}

// SortableFields returns the names valid in a SORTBY clause.
func (s Schema) SortableFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Sortable {
			out = append(out, f.Name)
		}
	}
	return out
}

// CreateArgs assembles the full FT.CREATE command.
func (s Schema) CreateArgs() []interface{} {
	args := []interface{}{"FT.CREATE", s.Name, "ON", "HASH",
		"PREFIX", "1", s.KeyPrefix}
	if s.Language != "" {
		args = append(args, "LANGUAGE", s.Language)
	}
	args = append(args, "SCHEMA")
	for _, f := range s.Fields {
		args = append(args, f.Name, string(f.Kind))
		if f.Kind == Text && f.Weight > 0 {
			args = append(args, "WEIGHT", strconv.FormatFloat(f.Weight, 'f', 1, 64))
		}
		if f.Sortable {
			args = append(args, "SORTABLE")
		}
	}
	return args
}

// Ensure creates the index if it does not exist. Safe to call
// concurrently: an "Index already exists" reply is not an error.
func Ensure(ctx context.Context, exec redisearch.Executor, s Schema) error {
	if _, err := exec.Do(ctx, s.CreateArgs()...); err != nil &&
		!strings.Contains(err.Error(), "Index already exists") {
		return fmt.Errorf("index: FT.CREATE %s failed: %w", s.Name, err)
	}
	return nil
}

// Drop removes the index and its documents. Used by maintenance tooling
// only.
func Drop(ctx context.Context, exec redisearch.Executor, name string) error {
	if _, err := exec.Do(ctx, "FT.DROPINDEX", name, "DD"); err != nil {
		return fmt.Errorf("index: FT.DROPINDEX %s failed: %w", name, err)
	}
	return nil
}

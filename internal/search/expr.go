// Package search translates structured search requests into RediSearch
// query strings and owns the pagination contract. Expressions form a
// small AST; compile logic lives in the nodes so a query is built in one
// pass over a strings.Builder.
package search

import (
	"strconv"
	"strings"
)

// Wildcard is the sentinel query meaning "match all documents".
const Wildcard = "*"

// Expr is a compilable query fragment.
type Expr interface {
	compile(*strings.Builder)
}

// Text produces a free-text clause. Terms are whitespace-split, escaped
// individually and AND-ed by the index grammar across all TEXT fields.
// An empty or wildcard input compiles to the match-all query.
func Text(query string) Expr { return textExpr(query) }

// Tag produces `@field:{v1|v2}`. Multiple values OR inside one brace
// group; values for the same field always land in one clause.
func Tag(field string, values ...string) Expr { return &tagExpr{field, values} }

// NumRange produces `@field:[min max]`. A nil bound falls back to the
// index infinity sentinel for that side.
func NumRange(field string, min, max *float64) Expr { return &rangeExpr{field, min, max} }

// Prefix produces `@field:value*`, matching terms starting with the
// escaped prefix. Used by autocomplete.
func Prefix(field, prefix string) Expr { return &prefixExpr{field, prefix} }

// TagPrefix produces `@field:{value*}`, matching tag values starting
// with the escaped prefix.
func TagPrefix(field, prefix string) Expr { return &tagPrefixExpr{field, prefix} }

// And space-joins clauses (the grammar's implicit intersection). Empty
// and match-all children are skipped.
func And(xs ...Expr) Expr { return &andExpr{xs} }

// MatchAll returns the wildcard expression.
func MatchAll() Expr { return matchAll{} }

// Compile renders an expression tree. A nil or empty tree renders the
// wildcard so the caller always holds a valid query.
func Compile(e Expr) string {
	if e == nil {
		return Wildcard
	}
	var sb strings.Builder
	e.compile(&sb)
	if sb.Len() == 0 {
		return Wildcard
	}
	return sb.String()
}

type (
	textExpr  string
	tagExpr   struct {
		field  string
		values []string
	}
	rangeExpr struct {
		field    string
		min, max *float64
	}
	prefixExpr struct {
		field  string
		prefix string
	}
	tagPrefixExpr struct {
		field  string
		prefix string
	}
	andExpr  struct{ xs []Expr }
	matchAll struct{}
)

func (t textExpr) compile(sb *strings.Builder) {
	q := strings.TrimSpace(string(t))
	if q == "" || q == Wildcard {
		return
	}
	first := true
	for _, term := range strings.Fields(q) {
		esc := EscapeToken(term)
		if esc == "" {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		sb.WriteString(esc)
		first = false
	}
}

func (t *tagExpr) compile(sb *strings.Builder) {
	vals := make([]string, 0, len(t.values))
	for _, v := range t.values {
		if esc := EscapeToken(v); esc != "" {
			vals = append(vals, esc)
		}
	}
	if len(vals) == 0 {
		return
	}
	sb.WriteByte('@')
	sb.WriteString(t.field)
	sb.WriteString(":{")
	sb.WriteString(strings.Join(vals, "|"))
	sb.WriteByte('}')
}

func (r *rangeExpr) compile(sb *strings.Builder) {
	if r.min == nil && r.max == nil {
		return
	}
	sb.WriteByte('@')
	sb.WriteString(r.field)
	sb.WriteString(":[")
	sb.WriteString(bound(r.min, "-inf"))
	sb.WriteByte(' ')
	sb.WriteString(bound(r.max, "+inf"))
	sb.WriteByte(']')
}

func (p *prefixExpr) compile(sb *strings.Builder) {
	esc := EscapeToken(strings.TrimSpace(p.prefix))
	if esc == "" {
		return
	}
	sb.WriteByte('@')
	sb.WriteString(p.field)
	sb.WriteByte(':')
	sb.WriteString(esc)
	sb.WriteByte('*')
}

func (t *tagPrefixExpr) compile(sb *strings.Builder) {
	esc := EscapeToken(strings.TrimSpace(t.prefix))
	if esc == "" {
		return
	}
	sb.WriteByte('@')
	sb.WriteString(t.field)
	sb.WriteString(":{")
	sb.WriteString(esc)
	sb.WriteString("*}")
}

func (a *andExpr) compile(sb *strings.Builder) {
	for _, x := range a.xs {
		if x == nil {
			continue
		}
		var part strings.Builder
		x.compile(&part)
		if part.Len() == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(part.String())
	}
}

func (matchAll) compile(sb *strings.Builder) {}

func bound(v *float64, inf string) string {
	if v == nil {
		return inf
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// specials are the characters the RediSearch query grammar assigns
// meaning to. Any of them inside a raw value must be backslash-escaped
// before interpolation or the generated query is malformed.
const specials = ",.<>{}[]\"':;!@#$%^&*()-+=~|/\\ "

// EscapeToken escapes every grammar-special character in a raw value so
// it matches literally.
func EscapeToken(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r < 128 && strings.ContainsRune(specials, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

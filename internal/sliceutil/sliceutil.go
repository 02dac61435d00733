// Package sliceutil holds the small generic slice helpers shared by the
// aggregation paths. All functions are pure and never modify the input.
package sliceutil

import "golang.org/x/exp/constraints"

// Contains reports whether v is an element of xs.
func Contains[T comparable](xs []T, v T) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// Unique dedups while preserving first-seen order.
func Unique[T comparable](xs []T) []T {
	seen := make(map[T]struct{}, len(xs))
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; !ok {
			seen[x] = struct{}{}
			out = append(out, x)
		}
	}
	return out
}

// Max returns the largest element, or the zero value for an empty slice.
func Max[T constraints.Ordered](xs []T) T {
	var m T
	if len(xs) == 0 {
		return m
	}
	m = xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// Sum accumulates numeric values.
func Sum[T constraints.Integer | constraints.Float](xs []T) T {
	var total T
	for _, x := range xs {
		total += x
	}
	return total
}

// Head returns at most the first n elements.
func Head[T any](xs []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(xs) <= n {
		return xs
	}
	return xs[:n]
}

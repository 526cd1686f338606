// Package sliceutil holds membership helpers over slices of comparable values.
package sliceutil

import "slices"

// ContainsAny reports whether haystack holds at least one of needles.
// It is false when needles is empty.
func ContainsAny[T comparable](haystack []T, needles ...T) bool {
	for _, n := range needles {
		if slices.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// FirstMissing returns the first element of needles that haystack lacks.
func FirstMissing[T comparable](haystack, needles []T) (T, bool) {
	for _, n := range needles {
		if !slices.Contains(haystack, n) {
			return n, true
		}
	}
	var zero T
	return zero, false
}

// FirstOutside returns the first element of items that is not in allowed.
func FirstOutside[T comparable](items, allowed []T) (T, bool) {
	return FirstMissing(allowed, items)
}

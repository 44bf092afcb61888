// Package sliceutil provides small generic slice helpers.
package sliceutil

import "slices"

// Contains reports whether item is in slice.
func Contains(slice []string, item string) bool {
	return slices.Contains(slice, item)
}

// Deduplicate returns the distinct elements of items in first-seen order.
func Deduplicate[T comparable](items []T) []T {
	if len(items) == 0 {
		return items
	}
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

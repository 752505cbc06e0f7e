// Package view derives what the admin screen shows from a fetched
// participant list: the search/filter/sort pipeline, the pagination slicer,
// and List, which keeps both in step with user events.
package view

import "slices"

// DefaultPageSize is the number of participants shown per page.
const DefaultPageSize = 6

// Page is one slice of an ordered sequence.
type Page[T any] struct {
	TotalPages int
	Items      []T
}

// Paginate returns the items of currentPage (1-based) and the page count.
// A page outside [1, TotalPages] yields no items rather than an error; the
// caller keeps currentPage in range. Items shares storage with items and is
// clipped so appending to it cannot overwrite the next page.
func Paginate[T any](items []T, pageSize, currentPage int) Page[T] {
	if pageSize <= 0 {
		return Page[T]{}
	}
	total := (len(items) + pageSize - 1) / pageSize
	if currentPage < 1 || currentPage > total {
		return Page[T]{TotalPages: total}
	}

	start := (currentPage - 1) * pageSize
	end := min(start+pageSize, len(items))
	return Page[T]{
		TotalPages: total,
		Items:      slices.Clip(items[start:end]),
	}
}

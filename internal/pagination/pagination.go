// Package pagination derives page counts and next/prev availability for list
// screens, either from the server's pagination envelope or from item counts.
package pagination

import "strings"

// DefaultItemsPerPage is the fixed page size of the admin list screens.
const DefaultItemsPerPage = 10

// Info is the pagination descriptor kept next to every list.
type Info struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// Envelope is the pagination metadata as received from the server.
// Nil fields were omitted by the server.
type Envelope struct {
	TotalItems   *int  `json:"totalItems"`
	TotalPages   *int  `json:"totalPages"`
	CurrentPage  *int  `json:"currentPage"`
	ItemsPerPage *int  `json:"itemsPerPage"`
	HasNextPage  *bool `json:"hasNextPage"`
	HasPrevPage  *bool `json:"hasPrevPage"`
}

// Complete reports whether the server supplied all five authoritative fields.
func (e Envelope) Complete() bool {
	return e.TotalItems != nil && e.TotalPages != nil && e.CurrentPage != nil &&
		e.HasNextPage != nil && e.HasPrevPage != nil
}

// Empty reports whether the server supplied no pagination field at all.
func (e Envelope) Empty() bool {
	return e.TotalItems == nil && e.TotalPages == nil && e.CurrentPage == nil &&
		e.ItemsPerPage == nil && e.HasNextPage == nil && e.HasPrevPage == nil
}

// TotalPages returns ceil(totalItems / perPage).
func TotalPages(totalItems, perPage int) int {
	if perPage < 1 {
		perPage = DefaultItemsPerPage
	}
	if totalItems <= 0 {
		return 0
	}
	return (totalItems + perPage - 1) / perPage
}

// Compute builds an Info from a total count.
func Compute(totalItems, currentPage, perPage int) Info {
	if perPage < 1 {
		perPage = DefaultItemsPerPage
	}
	if totalItems < 0 {
		totalItems = 0
	}
	if currentPage < 1 {
		currentPage = 1
	}
	totalPages := TotalPages(totalItems, perPage)
	return Info{
		CurrentPage:  currentPage,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: perPage,
		HasNextPage:  currentPage < totalPages,
		HasPrevPage:  currentPage > 1,
	}
}

// Resolve turns whatever the server sent into a consistent Info.
//
// A complete envelope is used verbatim. A partial one is completed from
// totalItems. When the server sent nothing (flat array responses) the
// degraded defaults apply: a single page holding every returned item.
func Resolve(env Envelope, itemCount, requestedPage, perPage int) Info {
	if perPage < 1 {
		perPage = DefaultItemsPerPage
	}
	if requestedPage < 1 {
		requestedPage = 1
	}

	if env.Complete() {
		info := Info{
			CurrentPage:  *env.CurrentPage,
			TotalPages:   *env.TotalPages,
			TotalItems:   *env.TotalItems,
			ItemsPerPage: perPage,
			HasNextPage:  *env.HasNextPage,
			HasPrevPage:  *env.HasPrevPage,
		}
		if env.ItemsPerPage != nil {
			info.ItemsPerPage = *env.ItemsPerPage
		}
		return info
	}

	if env.ItemsPerPage != nil && *env.ItemsPerPage > 0 {
		perPage = *env.ItemsPerPage
	}
	current := requestedPage
	if env.CurrentPage != nil && *env.CurrentPage > 0 {
		current = *env.CurrentPage
	}

	if env.TotalItems != nil {
		info := Compute(*env.TotalItems, current, perPage)
		if env.TotalPages != nil {
			info.TotalPages = *env.TotalPages
			info.HasNextPage = current < info.TotalPages
		}
		if env.HasNextPage != nil {
			info.HasNextPage = *env.HasNextPage
		}
		if env.HasPrevPage != nil {
			info.HasPrevPage = *env.HasPrevPage
		}
		return info
	}

	return Info{
		CurrentPage:  current,
		TotalPages:   1,
		TotalItems:   itemCount,
		ItemsPerPage: perPage,
		HasNextPage:  false,
		HasPrevPage:  false,
	}
}

// AfterMutation adjusts totalItems by delta after a local create or delete and
// recomputes the derived fields so "page N of M" stays consistent until the
// next authoritative fetch.
func AfterMutation(info Info, delta int) Info {
	total := info.TotalItems + delta
	if total < 0 {
		total = 0
	}
	perPage := info.ItemsPerPage
	if perPage < 1 {
		perPage = DefaultItemsPerPage
	}
	current := Clamp(info.CurrentPage, TotalPages(total, perPage))
	return Compute(total, current, perPage)
}

// Clamp keeps page within [1, totalPages]. An empty or not yet loaded list
// has one page. It never fails.
func Clamp(page, totalPages int) int {
	last := max(totalPages, 1)
	if page < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}

// Offset returns the index of the first item of page.
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultItemsPerPage
	}
	return (page - 1) * perPage
}

// Slice returns the items of page. Pages beyond the end yield an empty slice.
func Slice[T any](items []T, page, perPage int) []T {
	if perPage < 1 {
		perPage = DefaultItemsPerPage
	}
	start := Offset(page, perPage)
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// ClientSide reports whether a search-filtered list should be paged locally:
// the server returned everything in one page for a non-empty search term.
func ClientSide(info Info, search string) bool {
	return strings.TrimSpace(search) != "" && info.TotalPages <= 1
}

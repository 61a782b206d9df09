package readmodel

import (
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when the requested page is missing or invalid.
	DefaultPage = 1
	// DefaultLimit is used when the requested limit is missing or invalid.
	DefaultLimit = 10
	// MaxLimit caps limits parsed from client input.
	MaxLimit = 100
)

// PageRequest selects one page of an ordered result. Page is 1-indexed.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize replaces invalid values with the defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset is the index of the first item on the page.
func (p PageRequest) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// ParsePageParams reads page and limit from raw query values. Missing or
// malformed values fall back to the defaults and limit is capped at MaxLimit.
func ParsePageParams(page, limit string) PageRequest {
	req := PageRequest{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n > 0 {
		req.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && n > 0 {
		req.Limit = min(n, MaxLimit)
	}
	return req
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// Paginate returns the page of items selected by page and limit. Items is
// copied; the input slice and its order are left untouched.
func Paginate[T any](items []T, page, limit int) Page[T] {
	req := PageRequest{Page: page, Limit: limit}.Normalize()
	total := len(items)

	start := total
	if req.Page-1 <= total/req.Limit {
		start = min((req.Page-1)*req.Limit, total)
	}
	end := min(start+req.Limit, total)

	out := make([]T, end-start)
	copy(out, items[start:end])
	return newPage(out, req, total)
}

// NewPage wraps items that were already sliced by the store, given the total
// size of the unpaginated result.
func NewPage[T any](items []T, req PageRequest, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return newPage(items, req.Normalize(), total)
}

func newPage[T any](items []T, req PageRequest, total int) Page[T] {
	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    req.Page > 1,
		HasNext:    req.Page <= totalPages-1,
	}
}

// SortStable returns a sorted copy of items. cmp orders two items by the
// caller's key; desc reverses that order. Items with equal keys are ordered by
// ascending id so repeated calls over the same snapshot agree.
func SortStable[T any](items []T, cmp func(a, b T) int, desc bool, id func(T) string) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		c := cmp(a, b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(id(a), id(b))
	})
	return out
}

// Package pagination implements page-number pagination with absolute next/previous links.
package pagination

import (
	"errors"
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 20
	ReviewPageSize  = 30

	pageParam = "page"
)

var ErrInvalidPage = errors.New("invalid page")

// Page is the envelope of every paginated list
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Params selects one 1-based page
type Params struct {
	Number int
	Size   int
}

// Parse reads the page number from raw. An empty value means the first page.
func Parse(raw string, size int) (Params, error) {
	if raw == "" {
		return Params{Number: 1, Size: size}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return Params{}, ErrInvalidPage
	}
	return Params{Number: n, Size: size}, nil
}

func (p Params) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Params) Limit() int {
	return p.Size
}

// New builds the page for results, which must be the window selected by p.
// Pages past the last one are rejected; the first page is always valid.
func New[T any](u *url.URL, p Params, total int64, results []T) (Page[T], error) {
	if p.Number > 1 && int64(p.Offset()) >= total {
		return Page[T]{}, ErrInvalidPage
	}
	if results == nil {
		results = []T{}
	}

	page := Page[T]{Count: total, Results: results}
	if int64(p.Number*p.Size) < total {
		next := link(u, p.Number+1)
		page.Next = &next
	}
	if p.Number > 1 {
		prev := link(u, p.Number-1)
		page.Previous = &prev
	}
	return page, nil
}

func link(u *url.URL, number int) string {
	ref := *u
	q := ref.Query()
	if number == 1 {
		q.Del(pageParam)
	} else {
		q.Set(pageParam, strconv.Itoa(number))
	}
	ref.RawQuery = q.Encode()
	return ref.String()
}

// Map converts items with fn, for pages whose results are projections of rows
func Map[S, T any](items []S, fn func(S) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

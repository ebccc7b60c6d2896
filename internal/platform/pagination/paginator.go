package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

// Page is one slice of a sorted list with its navigation cursors.
type Page[T any] struct {
	Items      []T
	Total      int
	NextCursor string
	PrevCursor string
	LinkHeader string
}

// Request describes which page to cut and how to link its neighbours.
type Request struct {
	Cursor  Cursor
	Limit   int
	BaseURL string     // path used in Link header targets, e.g. "/youth-profiles"
	Query   url.Values // filters to carry over into links
}

// Paginate cuts the page following req.Cursor out of items, which must be in
// a stable order. A cursor naming an item no longer in items fails with
// ErrInvalidCursor.
func Paginate[T any](items []T, req Request, id func(T) string) (Page[T], error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	total := len(items)

	start := 0
	if req.Cursor.Value != "" {
		found := false
		for i, item := range items {
			if id(item) == req.Cursor.Value {
				start, found = i+1, true
				break
			}
		}
		if !found {
			return Page[T]{}, fmt.Errorf("%w: position no longer exists", ErrInvalidCursor)
		}
	}
	end := min(start+limit, total)

	page := Page[T]{Items: items[start:end], Total: total}
	if end < total {
		page.NextCursor = Cursor{Kind: req.Cursor.Kind, Value: id(items[end-1])}.Encode()
	}
	if start > 0 {
		prev := Cursor{Kind: req.Cursor.Kind}
		if start > limit {
			prev.Value = id(items[start-limit-1])
		}
		page.PrevCursor = prev.Encode()
	}

	q := cloneValues(req.Query)
	q.Set("limit", strconv.Itoa(limit))
	page.LinkHeader = BuildLinkHeader(req.BaseURL, q, page.NextCursor, page.PrevCursor)
	return page, nil
}

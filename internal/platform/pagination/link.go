package pagination

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// BuildLinkHeader constructs an RFC 8288 Link header for the given cursors,
// keeping the other query parameters of the request.
func BuildLinkHeader(baseURL string, query url.Values, nextCursor, prevCursor string) string {
	var links []string
	for _, l := range []struct{ rel, cursor string }{
		{"next", nextCursor},
		{"prev", prevCursor},
	} {
		if l.cursor == "" {
			continue
		}
		q := cloneValues(query)
		q.Set("cursor", l.cursor)
		links = append(links, fmt.Sprintf("<%s?%s>; rel=%q", baseURL, q.Encode(), l.rel))
	}
	return strings.Join(links, ", ")
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = slices.Clone(vals)
	}
	return out
}

package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCursor indicates the cursor could not be decoded or does not
// belong to the listed collection.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is an opaque list position: the ID of the last item of the
// previous page. An empty Value points before the first item.
type Cursor struct {
	Kind  string
	Value string
}

// Encode returns a URL-safe Base64 representation.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Kind + ":" + c.Value))
}

// DecodeCursor parses s and checks that it was issued for kind.
// An empty string decodes to the zero position of kind.
func DecodeCursor(s, kind string) (Cursor, error) {
	if s == "" {
		return Cursor{Kind: kind}, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	k, v, ok := strings.Cut(string(b), ":")
	if !ok || k != kind {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Kind: k, Value: v}, nil
}

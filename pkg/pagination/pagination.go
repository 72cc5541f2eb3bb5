// Package pagination implements the keyset cursors the storefront's product
// and order listings page with. Listings walk newest first, so a cursor pins
// the (created_at, id) pair of the last row already served and the next page
// starts strictly below it.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the listing page size when the client sends none.
	DefaultLimit = 25
	// MaxLimit caps a single listing request, admin endpoints included.
	MaxLimit = 100

	cursorSeparator = "|"
)

// Params carries the raw limit and cursor taken from the query string.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor pins a keyset position inside a created_at DESC, id DESC listing.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps a requested page size into the allowed range.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// LimitWithBuffer adds the sentinel row queries fetch to detect whether a
// further page exists.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// Encode serializes the cursor into an opaque query-string token. The
// URL-safe alphabet keeps it usable in links without escaping.
func (c Cursor) Encode() string {
	payload := c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSeparator + c.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// Parse rebuilds a cursor from its query-string token. An empty value means
// the first page and yields nil without error.
func Parse(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	createdAt, id, ok := strings.Cut(string(raw), cursorSeparator)
	if !ok {
		return nil, fmt.Errorf("malformed cursor payload")
	}

	at, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor timestamp: %w", err)
	}
	rowID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor id: %w", err)
	}

	return &Cursor{CreatedAt: at, ID: rowID}, nil
}

// Package cursor encodes and decodes the opaque keyset-pagination cursor.
//
// A cursor is the full ordering key of the last row returned on the previous
// page, serialized as JSON and base64url-encoded so it is URL-safe and
// carries no caller-interpretable meaning. Encoding is deterministic and
// Decode(Encode(k)) == k for every valid key.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/relist-app/relist/internal/domain"
)

// Mode tags which ordering the cursor belongs to. A cursor replayed against
// a query of the other mode must not be resumed from.
type Mode string

const (
	// Recency orders by (CreatedAt, ID) descending.
	Recency Mode = "recency"
	// Similarity orders by (Score, CreatedAt, ID) descending.
	Similarity Mode = "similarity"
)

// Key is the ordering tuple that fully determines where a page resumes.
// ID is always the final tie-breaker, guaranteeing a strict total order.
type Key struct {
	Mode      Mode
	Score     float64 // similarity mode only, zero otherwise
	CreatedAt int64   // unix milliseconds
	ID        string
}

// Compare orders keys by the ascending (Score, CreatedAt, ID) tuple.
// Pages traverse keys in descending order, so "strictly after the cursor"
// means Compare(candidate, cursor) < 0.
func (k Key) Compare(o Key) int {
	switch {
	case k.Score < o.Score:
		return -1
	case k.Score > o.Score:
		return 1
	}
	switch {
	case k.CreatedAt < o.CreatedAt:
		return -1
	case k.CreatedAt > o.CreatedAt:
		return 1
	}
	return strings.Compare(k.ID, o.ID)
}

// payload is the wire shape of an encoded cursor.
type payload struct {
	Mode      Mode    `json:"m"`
	Score     float64 `json:"s,omitempty"`
	CreatedAt int64   `json:"t"`
	ID        string  `json:"id"`
}

// Encode serializes a key into an opaque URL-safe token.
func Encode(k Key) string {
	data, _ := json.Marshal(payload{Mode: k.Mode, Score: k.Score, CreatedAt: k.CreatedAt, ID: k.ID})
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode parses an opaque token back into a key.
// Malformed tokens and unknown modes yield domain.ErrInvalidCursor.
func Decode(token string) (Key, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %w", domain.ErrInvalidCursor, err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Key{}, fmt.Errorf("%w: %w", domain.ErrInvalidCursor, err)
	}
	if p.Mode != Recency && p.Mode != Similarity {
		return Key{}, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidCursor, p.Mode)
	}
	if p.ID == "" {
		return Key{}, fmt.Errorf("%w: missing id", domain.ErrInvalidCursor)
	}

	return Key{Mode: p.Mode, Score: p.Score, CreatedAt: p.CreatedAt, ID: p.ID}, nil
}

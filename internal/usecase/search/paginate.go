package search

import (
	"fmt"
	"iter"

	"github.com/relist-app/relist/internal/domain/listing"
	"github.com/relist-app/relist/internal/domain/search/cursor"
	"github.com/relist-app/relist/internal/domain/search/result"
)

// Candidate is a listing plus its similarity score (zero in recency mode).
// Exists only transiently while a page is assembled.
type Candidate struct {
	Listing listing.Listing
	Score   float64
}

// Key returns the candidate's full ordering key for the given mode.
func (c Candidate) Key(m cursor.Mode) cursor.Key {
	k := cursor.Key{
		Mode:      m,
		CreatedAt: c.Listing.CreatedAt().UnixMilli(),
		ID:        c.Listing.ID(),
	}
	if m == cursor.Similarity {
		k.Score = c.Score
	}
	return k
}

// paginate assembles one page from a candidate stream that is already
// ordered by the full key descending.
//
// Keyset semantics: every candidate whose key is >= after (the key of the
// last row the caller already has) is skipped, so concurrent inserts and
// deletes of unrelated rows can never duplicate or drop a previously
// returned row. The stream is pulled for at most limit+1 qualifying rows:
// the extra look-ahead row only proves a next page exists and is never
// returned. The next cursor is the key of the last row actually returned.
func paginate(
	candidates iter.Seq2[Candidate, error], m cursor.Mode, after *cursor.Key, limit int,
) (result.Page, error) {
	page := result.Page{
		Items: make([]result.Result, 0, limit),
		Limit: limit,
	}

	var lastKey cursor.Key
	for c, err := range candidates {
		if err != nil {
			return result.Page{}, fmt.Errorf("stream candidates: %w", err)
		}

		key := c.Key(m)
		if after != nil && key.Compare(*after) >= 0 {
			continue
		}

		if len(page.Items) == limit {
			page.HasNextPage = true
			break
		}

		page.Items = append(page.Items, result.New(c.Listing, c.Score))
		lastKey = key
	}

	if page.HasNextPage {
		page.NextCursor = cursor.Encode(lastKey)
	}
	return page, nil
}

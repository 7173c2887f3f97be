package result

import "github.com/relist-app/relist/internal/domain/listing"

// Result is a single search hit: a listing plus its similarity score.
// The score is zero in recency mode.
type Result struct {
	listing listing.Listing
	score   float64
}

// New creates a search result.
func New(l listing.Listing, score float64) Result {
	return Result{listing: l, score: score}
}

// Listing returns the matched listing.
func (r *Result) Listing() listing.Listing { return r.listing }

// Score returns the similarity score (zero in recency mode).
func (r *Result) Score() float64 { return r.score }

// Page is one page of search results.
// NextCursor is empty exactly when HasNextPage is false.
type Page struct {
	Items       []Result
	Limit       int
	NextCursor  string
	HasNextPage bool
}

package search

import (
	"context"
	"iter"

	"github.com/relist-app/relist/internal/domain/listing"
)

// CandidateSource streams searchable listings from the store.
// Streams are lazy: the paginator stops pulling once it has its page plus
// the look-ahead row, and cancelling ctx aborts the underlying store reads.
type CandidateSource interface {
	// Recent streams listings ordered by (CreatedAt, ID) descending.
	Recent(ctx context.Context) iter.Seq2[listing.Listing, error]
	// All streams every listing in unspecified order (in-process ranking).
	All(ctx context.Context) iter.Seq2[listing.Listing, error]
}

// Scorer computes text similarity between a query and a candidate's
// searchable text, in [0,1]. Must be case-insensitive and pure.
type Scorer interface {
	Score(query, text string) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(query, text string) float64

// Score implements Scorer.
func (f ScorerFunc) Score(query, text string) float64 { return f(query, text) }

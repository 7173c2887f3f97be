package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/relist-app/relist/internal/domain/search/cursor"
)

// rank scores every candidate against the normalized query, drops the ones
// below the minimum similarity entirely, and sorts the rest by
// (Score, CreatedAt, ID) descending -- the similarity-mode ordering key.
func (s *Service) rank(ctx context.Context, queryText string) ([]Candidate, error) {
	var ranked []Candidate
	for item, err := range s.source.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("stream candidates: %w", err)
		}
		score := s.scorer.Score(queryText, item.SearchText())
		if score < s.minScore {
			continue
		}
		ranked = append(ranked, Candidate{Listing: item, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Key(cursor.Similarity).Compare(ranked[j].Key(cursor.Similarity)) > 0
	})

	return ranked, nil
}

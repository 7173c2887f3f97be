package search

import (
	"context"
	"iter"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/relist-app/relist/internal/domain/listing"
	"github.com/relist-app/relist/internal/domain/search/cursor"
	"github.com/relist-app/relist/internal/domain/search/query"
	"github.com/relist-app/relist/internal/domain/search/request"
	"github.com/relist-app/relist/internal/domain/search/result"
	"github.com/relist-app/relist/internal/domain/search/trigram"
)

// Service drives a search request through the whole pipeline:
// normalize -> (rank | recency stream) -> paginate -> encode next cursor.
// Stateless; every invocation is a pure function of its inputs plus the
// current store contents, so it is safe under arbitrary concurrency.
type Service struct {
	source   CandidateSource
	scorer   Scorer
	minScore float64
	requests *prometheus.CounterVec
	logger   *zap.Logger
}

// New creates a search service with the default minimum similarity.
func New(source CandidateSource, scorer Scorer, logger *zap.Logger) *Service {
	return &Service{
		source:   source,
		scorer:   scorer,
		minScore: trigram.DefaultMinScore,
		logger:   logger,
	}
}

// WithMinScore overrides the minimum similarity threshold.
func (s *Service) WithMinScore(v float64) *Service {
	if v > 0 {
		s.minScore = v
	}
	return s
}

// WithMetrics attaches a per-mode request counter.
func (s *Service) WithMetrics(requests *prometheus.CounterVec) *Service {
	s.requests = requests
	return s
}

// Search executes one paginated search request.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Page, error) {
	q := query.Normalize(req.Query())

	mode := cursor.Similarity
	if q.IsBlank() {
		mode = cursor.Recency
	}
	if s.requests != nil {
		s.requests.WithLabelValues(string(mode)).Inc()
	}

	after := s.resumeKey(req.Cursor(), mode)

	var candidates iter.Seq2[Candidate, error]
	if q.IsBlank() {
		candidates = recencyCandidates(s.source.Recent(ctx))
	} else {
		ranked, err := s.rank(ctx, q.Text())
		if err != nil {
			return result.Page{}, err
		}
		candidates = sliceCandidates(ranked)
	}

	return paginate(candidates, mode, after, req.Limit())
}

// resumeKey decodes the cursor leniently: a malformed token, or one minted
// for the other search mode, restarts from the first page instead of
// failing the request. Cursors are opaque and stale links are normal.
func (s *Service) resumeKey(token string, mode cursor.Mode) *cursor.Key {
	if token == "" {
		return nil
	}

	key, err := cursor.Decode(token)
	if err != nil {
		s.logger.Warn("ignoring undecodable cursor", zap.Error(err))
		return nil
	}
	if key.Mode != mode {
		s.logger.Warn("ignoring cursor from different search mode",
			zap.String("cursor_mode", string(key.Mode)),
			zap.String("query_mode", string(mode)),
		)
		return nil
	}
	return &key
}

// recencyCandidates wraps the store's recency stream as zero-score candidates.
func recencyCandidates(seq iter.Seq2[listing.Listing, error]) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		for item, err := range seq {
			if !yield(Candidate{Listing: item}, err) {
				return
			}
		}
	}
}

// sliceCandidates exposes an already-ranked slice as a stream.
func sliceCandidates(ranked []Candidate) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		for _, c := range ranked {
			if !yield(c, nil) {
				return
			}
		}
	}
}

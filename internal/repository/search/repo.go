package search

import (
	"context"
	"fmt"
	"iter"

	domlisting "github.com/relist-app/relist/internal/domain/listing"
	listingrepo "github.com/relist-app/relist/internal/repository/listing"
)

// DefaultChunkSize is how many candidates one store round-trip fetches.
const DefaultChunkSize = 100

// store is the consumer interface for candidate streaming (ISP).
type store interface {
	ZRangeRev(ctx context.Context, key string, start, stop int64) ([]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo implements usecase/search.CandidateSource.
//
// The recency sorted set is scored by creation time; ZRANGE REV returns
// descending scores with ties broken by descending member, which is exactly
// the engine's (CreatedAt, ID) descending ordering key. Streams are chunked
// so the paginator can stop after limit+1 rows without materializing the
// whole index.
type Repo struct {
	store store
	chunk int64
}

// New creates a search candidate repository.
func New(s store) *Repo {
	return &Repo{store: s, chunk: DefaultChunkSize}
}

// WithChunkSize overrides the stream chunk size.
func (r *Repo) WithChunkSize(n int) *Repo {
	if n > 0 {
		r.chunk = int64(n)
	}
	return r
}

// Recent streams listings ordered by (CreatedAt, ID) descending.
func (r *Repo) Recent(ctx context.Context) iter.Seq2[domlisting.Listing, error] {
	return r.stream(ctx)
}

// All streams every listing. Order is unspecified for callers; the
// implementation reuses the recency index as the enumeration source.
func (r *Repo) All(ctx context.Context) iter.Seq2[domlisting.Listing, error] {
	return r.stream(ctx)
}

func (r *Repo) stream(ctx context.Context) iter.Seq2[domlisting.Listing, error] {
	return func(yield func(domlisting.Listing, error) bool) {
		for start := int64(0); ; start += r.chunk {
			if err := ctx.Err(); err != nil {
				yield(domlisting.Listing{}, fmt.Errorf("stream aborted: %w", err))
				return
			}

			ids, err := r.store.ZRangeRev(ctx, listingrepo.IndexKey(), start, start+r.chunk-1)
			if err != nil {
				yield(domlisting.Listing{}, fmt.Errorf("zrange recency index: %w", err))
				return
			}
			if len(ids) == 0 {
				return
			}

			keys := make([]string, len(ids))
			for i, id := range ids {
				keys[i] = listingrepo.ListingKey(id)
			}
			hashes, err := r.store.HGetAllMulti(ctx, keys)
			if err != nil {
				yield(domlisting.Listing{}, fmt.Errorf("hydrate candidates: %w", err))
				return
			}

			for i, fields := range hashes {
				// Empty hash: the listing was deleted between the index
				// read and the fetch. Skip, never fail the stream.
				if len(fields) == 0 {
					continue
				}
				l, err := listingrepo.FromHash(ids[i], fields)
				if err != nil {
					continue
				}
				if !yield(l, nil) {
					return
				}
			}

			if int64(len(ids)) < r.chunk {
				return
			}
		}
	}
}

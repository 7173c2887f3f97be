package listing

import (
	"context"
	"fmt"

	"github.com/relist-app/relist/internal/domain"
	domlisting "github.com/relist-app/relist/internal/domain/listing"
)

// store is the consumer interface for listing persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRem(ctx context.Context, key, member string) error
}

// Repo implements usecase/listing.Repository.
// Each listing lives in a hash; a sorted set scored by creation time keeps
// the recency index the search candidate stream reads from.
type Repo struct {
	store store
}

// New creates a listing repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or replaces a listing. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, l domlisting.Listing) (bool, error) {
	key := ListingKey(l.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, ToHash(l)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.ZAdd(ctx, IndexKey(), float64(l.CreatedAt().UnixMilli()), l.ID()); err != nil {
		return false, fmt.Errorf("zadd %s: %w", l.ID(), err)
	}

	return !exists, nil
}

// Get returns a listing by ID.
func (r *Repo) Get(ctx context.Context, id string) (domlisting.Listing, error) {
	key := ListingKey(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domlisting.Listing{}, domain.ErrListingNotFound
	}
	return FromHash(id, fields)
}

// Delete removes a listing and its recency index entry.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := ListingKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrListingNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := r.store.ZRem(ctx, IndexKey(), id); err != nil {
		return fmt.Errorf("zrem %s: %w", id, err)
	}
	return nil
}

// ListingKey returns the hash key of a listing.
func ListingKey(id string) string {
	return domain.KeyPrefix + "listing:" + id
}

// IndexKey returns the key of the recency sorted set.
func IndexKey() string {
	return domain.KeyPrefix + "listings:by_created"
}

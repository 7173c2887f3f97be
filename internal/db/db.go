package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers declare narrow sub-interfaces (ISP); only the composition root
// sees the whole thing.
type Store interface {
	Pinger
	HashStore
	SortedSetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SortedSetStore provides sorted-set operations for the recency index.
type SortedSetStore interface {
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRem(ctx context.Context, key, member string) error
	// ZRangeRev returns members by reverse rank range [start, stop]:
	// descending score, then descending member for equal scores.
	ZRangeRev(ctx context.Context, key string, start, stop int64) ([]string, error)
}

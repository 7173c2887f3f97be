package listing

import (
	"context"

	domlisting "github.com/relist-app/relist/internal/domain/listing"
)

// Repository defines the storage contract for listings.
type Repository interface {
	Upsert(ctx context.Context, l domlisting.Listing) (created bool, err error)
	Get(ctx context.Context, id string) (domlisting.Listing, error)
	Delete(ctx context.Context, id string) error
}

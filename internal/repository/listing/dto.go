package listing

import (
	"fmt"
	"strconv"
	"time"

	domlisting "github.com/relist-app/relist/internal/domain/listing"
)

// Hash field names of a stored listing.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldCreatedAt   = "created_at" // unix milliseconds
)

// ToHash flattens a listing into its stored hash fields.
func ToHash(l domlisting.Listing) map[string]string {
	return map[string]string{
		fieldTitle:       l.Title(),
		fieldDescription: l.Description(),
		fieldPrice:       strconv.FormatFloat(l.Price(), 'f', -1, 64),
		fieldCreatedAt:   strconv.FormatInt(l.CreatedAt().UnixMilli(), 10),
	}
}

// FromHash hydrates a listing from its stored hash fields.
func FromHash(id string, fields map[string]string) (domlisting.Listing, error) {
	price, err := strconv.ParseFloat(fields[fieldPrice], 64)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("listing %s: parse price %q: %w", id, fields[fieldPrice], err)
	}
	createdMs, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("listing %s: parse created_at %q: %w", id, fields[fieldCreatedAt], err)
	}

	return domlisting.Reconstruct(
		id,
		fields[fieldTitle],
		fields[fieldDescription],
		price,
		time.UnixMilli(createdMs).UTC(),
	), nil
}

package domain

import "errors"

var (
	// ErrListingNotFound signals a missing listing.
	ErrListingNotFound = errors.New("listing not found")
	// ErrInvalidListing signals a listing that fails validation.
	ErrInvalidListing = errors.New("invalid listing")
	// ErrInvalidCursor signals a pagination cursor that fails to decode.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrStoreUnavailable signals that the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

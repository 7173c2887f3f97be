package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/relist-app/relist/internal/domain"
	domlisting "github.com/relist-app/relist/internal/domain/listing"
)

// Service handles the listing ingest surface the search index is fed from.
// The wider marketplace lifecycle (moderation, images, seller profiles)
// belongs to other services.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a listing service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the timestamp source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create stores a new listing under a generated ID.
func (s *Service) Create(ctx context.Context, title, description string, price float64) (domlisting.Listing, error) {
	l, err := domlisting.New(uuid.NewString(), title, description, price, s.now())
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("%w: %w", domain.ErrInvalidListing, err)
	}

	if _, err := s.repo.Upsert(ctx, l); err != nil {
		return domlisting.Listing{}, fmt.Errorf("upsert listing: %w", err)
	}
	return l, nil
}

// Upsert creates or replaces a listing under a caller-chosen ID.
// An existing listing keeps its original creation timestamp so its position
// in the recency ordering is stable across edits. Returns true if created.
func (s *Service) Upsert(ctx context.Context, id, title, description string, price float64) (
	domlisting.Listing, bool, error,
) {
	createdAt := s.now()
	existing, err := s.repo.Get(ctx, id)
	switch {
	case err == nil:
		createdAt = existing.CreatedAt()
	case errors.Is(err, domain.ErrListingNotFound):
		// first write
	default:
		return domlisting.Listing{}, false, fmt.Errorf("get listing %s: %w", id, err)
	}

	l, err := domlisting.New(id, title, description, price, createdAt)
	if err != nil {
		return domlisting.Listing{}, false, fmt.Errorf("%w: %w", domain.ErrInvalidListing, err)
	}

	created, err := s.repo.Upsert(ctx, l)
	if err != nil {
		return domlisting.Listing{}, false, fmt.Errorf("upsert listing: %w", err)
	}
	return l, created, nil
}

// Get returns a listing by ID.
func (s *Service) Get(ctx context.Context, id string) (domlisting.Listing, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("get listing %s: %w", id, err)
	}
	return l, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	return nil
}

package listing

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Field size limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 10000
)

// Listing is the searchable listing aggregate (immutable value object).
// Only the fields relevant to search are carried; seller profile, images
// and the rest of the marketplace record live with other services.
type Listing struct {
	id          string
	title       string
	description string
	price       float64
	createdAt   time.Time
}

// New validates and creates a Listing.
// ID: ^[a-zA-Z0-9_-]+$, 1-64 chars. Title: non-empty, max 200 chars.
// Description may be empty, max 10000 chars. Price must not be negative.
func New(id, title, description string, price float64, createdAt time.Time) (Listing, error) {
	if id == "" {
		return Listing{}, fmt.Errorf("listing ID is required")
	}
	if len(id) > 64 {
		return Listing{}, fmt.Errorf("listing ID too long (max 64)")
	}
	if !idRegex.MatchString(id) {
		return Listing{}, fmt.Errorf("listing ID must be alphanumeric with underscores and hyphens")
	}
	if strings.TrimSpace(title) == "" {
		return Listing{}, fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return Listing{}, fmt.Errorf("title too long (max %d chars)", MaxTitleLength)
	}
	if len(description) > MaxDescriptionLength {
		return Listing{}, fmt.Errorf("description too long (max %d chars)", MaxDescriptionLength)
	}
	if price < 0 {
		return Listing{}, fmt.Errorf("price must not be negative")
	}
	if createdAt.IsZero() {
		return Listing{}, fmt.Errorf("created_at is required")
	}

	return Listing{
		id:          id,
		title:       title,
		description: description,
		price:       price,
		createdAt:   createdAt.UTC(),
	}, nil
}

// Reconstruct creates a Listing without validation (storage hydration).
func Reconstruct(id, title, description string, price float64, createdAt time.Time) Listing {
	return Listing{id: id, title: title, description: description, price: price, createdAt: createdAt.UTC()}
}

// ID returns the listing identifier.
func (l *Listing) ID() string { return l.id }

// Title returns the listing title.
func (l *Listing) Title() string { return l.title }

// Description returns the listing description.
func (l *Listing) Description() string { return l.description }

// Price returns the asking price.
func (l *Listing) Price() float64 { return l.price }

// CreatedAt returns the creation timestamp.
func (l *Listing) CreatedAt() time.Time { return l.createdAt }

// SearchText returns the text the similarity ranker matches against.
// Always derived from title and description, never stored independently.
func (l *Listing) SearchText() string {
	if l.description == "" {
		return l.title
	}
	return l.title + " " + l.description
}

// WithCreatedAt returns a copy with the given creation timestamp.
// Used by upserts that must preserve the original timestamp.
func (l *Listing) WithCreatedAt(t time.Time) Listing {
	return Listing{
		id: l.id, title: l.title, description: l.description,
		price: l.price, createdAt: t.UTC(),
	}
}

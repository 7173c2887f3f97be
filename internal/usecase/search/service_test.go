package search

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/relist-app/relist/internal/domain/listing"
	"github.com/relist-app/relist/internal/domain/search/request"
	"github.com/relist-app/relist/internal/domain/search/result"
	"github.com/relist-app/relist/internal/domain/search/trigram"
)

// --- Mocks ---

type mockSource struct {
	recentFn func(ctx context.Context) iter.Seq2[listing.Listing, error]
	allFn    func(ctx context.Context) iter.Seq2[listing.Listing, error]
}

func (m *mockSource) Recent(ctx context.Context) iter.Seq2[listing.Listing, error] {
	return m.recentFn(ctx)
}

func (m *mockSource) All(ctx context.Context) iter.Seq2[listing.Listing, error] {
	return m.allFn(ctx)
}

func listingSeq(items ...listing.Listing) iter.Seq2[listing.Listing, error] {
	return func(yield func(listing.Listing, error) bool) {
		for _, l := range items {
			if !yield(l, nil) {
				return
			}
		}
	}
}

// --- Fixtures ---

func mustListing(t *testing.T, id, title, description string, offsetSec int) listing.Listing {
	t.Helper()
	created := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC).Add(time.Duration(offsetSec) * time.Second)
	l, err := listing.New(id, title, description, 25, created)
	if err != nil {
		t.Fatalf("fixture listing %s: %v", id, err)
	}
	return l
}

// seededService wires three marketplace listings: two about shoes/sneakers
// and one hoodie that no footwear query should ever match.
func seededService(t *testing.T) *Service {
	t.Helper()
	l1 := mustListing(t, "l1", "Nike Air Max shoes", "Great running sneakers size 10", 1)
	l2 := mustListing(t, "l2", "Adidas sweatshirt", "Cozy hoodie, like new", 2)
	l3 := mustListing(t, "l3", "Converse sneakers", "Classic shoes, white, size 9", 3)

	src := &mockSource{
		recentFn: func(context.Context) iter.Seq2[listing.Listing, error] {
			return listingSeq(l3, l2, l1) // (CreatedAt, ID) descending
		},
		allFn: func(context.Context) iter.Seq2[listing.Listing, error] {
			return listingSeq(l1, l2, l3)
		},
	}
	return New(src, ScorerFunc(trigram.Score), zap.NewNop())
}

func resultIDs(page result.Page) []string {
	out := make([]string, len(page.Items))
	for i := range page.Items {
		l := page.Items[i].Listing()
		out[i] = l.ID()
	}
	return out
}

// --- Tests ---

func TestSearch_BlankQueryRecencyOrder(t *testing.T) {
	svc := seededService(t)

	page, err := svc.Search(context.Background(), request.New("", "", 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := resultIDs(page); len(got) != 2 || got[0] != "l3" || got[1] != "l2" {
		t.Errorf("items = %v, want [l3 l2]", got)
	}
	if !page.HasNextPage {
		t.Error("expected HasNextPage")
	}
	if page.Items[0].Score() != 0 {
		t.Errorf("expected zero score in recency mode, got %v", page.Items[0].Score())
	}

	// Follow the cursor: the remaining listing, then the end.
	page2, err := svc.Search(context.Background(), request.New("", page.NextCursor, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultIDs(page2); len(got) != 1 || got[0] != "l1" {
		t.Errorf("second page = %v, want [l1]", got)
	}
	if page2.HasNextPage {
		t.Error("expected last page")
	}
}

func TestSearch_TypoMatchesAndFiltersNoise(t *testing.T) {
	svc := seededService(t)

	page, err := svc.Search(context.Background(), request.New("sneakrs", "", 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := resultIDs(page)
	if len(got) != 2 {
		t.Fatalf("items = %v, want the two sneaker listings", got)
	}
	for _, id := range got {
		if id == "l2" {
			t.Error("hoodie listing must not match a sneaker query")
		}
	}
	if page.Items[0].Score() < page.Items[1].Score() {
		t.Error("expected results ordered by score descending")
	}
	for i := range page.Items {
		if page.Items[i].Score() < trigram.DefaultMinScore {
			t.Errorf("item %d below minimum score: %v", i, page.Items[i].Score())
		}
	}
}

func TestSearch_SimilarityPagesAreDisjointAndComplete(t *testing.T) {
	svc := seededService(t)

	page1, err := svc.Search(context.Background(), request.New("shoes", "", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page1.Items) != 1 || !page1.HasNextPage {
		t.Fatalf("expected one item plus next page, got %v", resultIDs(page1))
	}

	page2, err := svc.Search(context.Background(), request.New("shoes", page1.NextCursor, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page2.Items) != 1 {
		t.Fatalf("expected one item on page 2, got %v", resultIDs(page2))
	}
	if page2.HasNextPage {
		t.Error("expected no third page")
	}

	seen := map[string]bool{resultIDs(page1)[0]: true, resultIDs(page2)[0]: true}
	if !seen["l1"] || !seen["l3"] {
		t.Errorf("pages must cover both shoe listings exactly once, saw %v", seen)
	}
}

func TestSearch_MultiWordQuery(t *testing.T) {
	svc := seededService(t)

	// The query is matched as one text blob, so "Nike shoes" still finds
	// the listing titled "Nike Air Max shoes".
	page, err := svc.Search(context.Background(), request.New("Nike shoes", "", 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, id := range resultIDs(page) {
		if id == "l1" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the Nike listing in %v", resultIDs(page))
	}
	if page.HasNextPage {
		t.Error("expected a single page")
	}
}

func TestSearch_InvalidCursorRestartsFirstPage(t *testing.T) {
	svc := seededService(t)

	clean, err := svc.Search(context.Background(), request.New("", "", 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page, err := svc.Search(context.Background(), request.New("", "not%a%cursor", 2))
	if err != nil {
		t.Fatalf("malformed cursor must not fail the request: %v", err)
	}

	a, b := resultIDs(clean), resultIDs(page)
	if len(a) != len(b) {
		t.Fatalf("expected first page replay, got %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("expected first page replay, got %v vs %v", a, b)
		}
	}
}

func TestSearch_ModeMismatchedCursorRestartsFirstPage(t *testing.T) {
	svc := seededService(t)

	recency, err := svc.Search(context.Background(), request.New("", "", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recency.NextCursor == "" {
		t.Fatal("fixture must produce a recency cursor")
	}

	// A recency cursor replayed against a fuzzy query is ignored.
	page, err := svc.Search(context.Background(), request.New("shoes", recency.NextCursor, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstPage, err := svc.Search(context.Background(), request.New("shoes", "", 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != len(firstPage.Items) {
		t.Errorf("expected first similarity page, got %v", resultIDs(page))
	}
}

func TestSearch_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	src := &mockSource{
		recentFn: func(context.Context) iter.Seq2[listing.Listing, error] {
			return func(yield func(listing.Listing, error) bool) {
				yield(listing.Listing{}, storeErr)
			}
		},
		allFn: func(context.Context) iter.Seq2[listing.Listing, error] {
			return func(yield func(listing.Listing, error) bool) {
				yield(listing.Listing{}, storeErr)
			}
		},
	}
	svc := New(src, ScorerFunc(trigram.Score), zap.NewNop())

	if _, err := svc.Search(context.Background(), request.New("", "", 5)); !errors.Is(err, storeErr) {
		t.Errorf("recency search: expected store error, got %v", err)
	}
	if _, err := svc.Search(context.Background(), request.New("shoes", "", 5)); !errors.Is(err, storeErr) {
		t.Errorf("similarity search: expected store error, got %v", err)
	}
}

func TestSearch_EqualScoresBreakTiesByRecency(t *testing.T) {
	old := mustListing(t, "old", "same title", "", 1)
	mid := mustListing(t, "mid", "same title", "", 2)
	fresh := mustListing(t, "new", "same title", "", 3)

	src := &mockSource{
		allFn: func(context.Context) iter.Seq2[listing.Listing, error] {
			return listingSeq(old, fresh, mid)
		},
	}
	svc := New(src, ScorerFunc(func(string, string) float64 { return 0.5 }), zap.NewNop())

	page, err := svc.Search(context.Background(), request.New("anything", "", 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := resultIDs(page); len(got) != 3 || got[0] != "new" || got[1] != "mid" || got[2] != "old" {
		t.Errorf("items = %v, want [new mid old]", got)
	}
}

func TestSearch_MinScoreOverride(t *testing.T) {
	l := mustListing(t, "l1", "some title", "", 1)
	src := &mockSource{
		allFn: func(context.Context) iter.Seq2[listing.Listing, error] {
			return listingSeq(l)
		},
	}
	svc := New(src, ScorerFunc(func(string, string) float64 { return 0.5 }), zap.NewNop()).
		WithMinScore(0.9)

	page, err := svc.Search(context.Background(), request.New("anything", "", 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("expected all candidates filtered, got %v", resultIDs(page))
	}
}

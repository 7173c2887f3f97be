package search

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	domlisting "github.com/relist-app/relist/internal/domain/listing"
	listingrepo "github.com/relist-app/relist/internal/repository/listing"
)

// --- Mocks ---

type mockStore struct {
	zrangeFn func(ctx context.Context, key string, start, stop int64) ([]string, error)
	hmultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
}

func (m *mockStore) ZRangeRev(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return m.zrangeFn(ctx, key, start, stop)
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	return m.hmultiFn(ctx, keys)
}

var baseTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// fixtureStore serves the given ids in order, hydrating each from hashes.
// A nil hash entry simulates a listing deleted between index read and fetch.
func fixtureStore(t *testing.T, ids []string, hashes map[string]map[string]string) *mockStore {
	t.Helper()
	return &mockStore{
		zrangeFn: func(_ context.Context, key string, start, stop int64) ([]string, error) {
			if key != listingrepo.IndexKey() {
				t.Errorf("zrange key = %q, want %q", key, listingrepo.IndexKey())
			}
			if start > int64(len(ids))-1 {
				return nil, nil
			}
			end := stop + 1
			if end > int64(len(ids)) {
				end = int64(len(ids))
			}
			return ids[start:end], nil
		},
		hmultiFn: func(_ context.Context, keys []string) ([]map[string]string, error) {
			out := make([]map[string]string, len(keys))
			for i, k := range keys {
				out[i] = hashes[k]
			}
			return out, nil
		},
	}
}

func hashFor(t *testing.T, id string, offsetSec int) map[string]string {
	t.Helper()
	l, err := domlisting.New(id, "title "+id, "", 10, baseTime.Add(time.Duration(offsetSec)*time.Second))
	if err != nil {
		t.Fatalf("fixture %s: %v", id, err)
	}
	return listingrepo.ToHash(l)
}

func collect(t *testing.T, repo *Repo) []domlisting.Listing {
	t.Helper()
	var out []domlisting.Listing
	for l, err := range repo.Recent(context.Background()) {
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		out = append(out, l)
	}
	return out
}

// --- Tests ---

func TestStream_ChunkedInIndexOrder(t *testing.T) {
	ids := []string{"e", "d", "c", "b", "a"}
	hashes := make(map[string]map[string]string, len(ids))
	for i, id := range ids {
		hashes[listingrepo.ListingKey(id)] = hashFor(t, id, len(ids)-i)
	}

	repo := New(fixtureStore(t, ids, hashes)).WithChunkSize(2)
	got := collect(t, repo)

	if len(got) != 5 {
		t.Fatalf("streamed %d listings, want 5", len(got))
	}
	for i, l := range got {
		if l.ID() != ids[i] {
			t.Errorf("position %d: got %q, want %q", i, l.ID(), ids[i])
		}
	}
}

func TestStream_SkipsDeletedHashes(t *testing.T) {
	ids := []string{"c", "b", "a"}
	hashes := map[string]map[string]string{
		listingrepo.ListingKey("c"): hashFor(t, "c", 3),
		// "b" deleted between index read and hydration
		listingrepo.ListingKey("a"): hashFor(t, "a", 1),
	}

	repo := New(fixtureStore(t, ids, hashes)).WithChunkSize(10)
	got := collect(t, repo)

	if len(got) != 2 || got[0].ID() != "c" || got[1].ID() != "a" {
		idsGot := make([]string, len(got))
		for i, l := range got {
			idsGot[i] = l.ID()
		}
		t.Errorf("streamed %v, want [c a]", idsGot)
	}
}

func TestStream_ZRangeErrorYielded(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &mockStore{
		zrangeFn: func(context.Context, string, int64, int64) ([]string, error) {
			return nil, storeErr
		},
	}

	for _, err := range New(store).Recent(context.Background()) {
		if !errors.Is(err, storeErr) {
			t.Errorf("expected store error, got %v", err)
		}
		return
	}
	t.Error("expected one yielded error")
}

func TestStream_HydrateErrorYielded(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &mockStore{
		zrangeFn: func(context.Context, string, int64, int64) ([]string, error) {
			return []string{"a"}, nil
		},
		hmultiFn: func(context.Context, []string) ([]map[string]string, error) {
			return nil, storeErr
		},
	}

	for _, err := range New(store).Recent(context.Background()) {
		if !errors.Is(err, storeErr) {
			t.Errorf("expected store error, got %v", err)
		}
		return
	}
	t.Error("expected one yielded error")
}

func TestStream_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &mockStore{
		zrangeFn: func(context.Context, string, int64, int64) ([]string, error) {
			t.Fatal("must not hit the store after cancellation")
			return nil, nil
		},
	}

	for _, err := range New(store).Recent(ctx) {
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		return
	}
	t.Error("expected one yielded error")
}

func TestStream_EarlyBreakStopsFetching(t *testing.T) {
	calls := 0
	store := &mockStore{
		zrangeFn: func(_ context.Context, _ string, start, stop int64) ([]string, error) {
			calls++
			out := make([]string, 0, stop-start+1)
			for i := start; i <= stop; i++ {
				out = append(out, "id"+strconv.FormatInt(i, 10))
			}
			return out, nil
		},
		hmultiFn: func(_ context.Context, keys []string) ([]map[string]string, error) {
			out := make([]map[string]string, len(keys))
			for i := range keys {
				out[i] = hashFor(t, "id"+strconv.Itoa(i), 1)
			}
			return out, nil
		},
	}

	repo := New(store).WithChunkSize(2)
	for range repo.Recent(context.Background()) {
		break // consumer stops after the first listing
	}

	if calls != 1 {
		t.Errorf("store round-trips = %d, want 1", calls)
	}
}

package store

import (
	"testing"
	"time"

	"github.com/blackwell-systems/uvpick/internal/search"
)

func setupTestStore(t *testing.T) *Store {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return s
}

func TestReplaceIndex_RoundTripPreservesOrder(t *testing.T) {
	s := setupTestStore(t)

	records := []search.Record{
		{Project: "boto3", DownloadCount: 1000000000},
		{Project: "requests", DownloadCount: 900000000},
		{Project: "urllib3", DownloadCount: 950000000},
	}
	fetchedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	if err := s.ReplaceIndex(records, fetchedAt); err != nil {
		t.Fatalf("ReplaceIndex failed: %v", err)
	}

	got, err := s.ListIndex()
	if err != nil {
		t.Fatalf("ListIndex failed: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	// Delivered order, not download order.
	for i, r := range records {
		if got[i] != r {
			t.Errorf("position %d: got %+v, want %+v", i, got[i], r)
		}
	}
}

func TestReplaceIndex_ReplacesWholesale(t *testing.T) {
	s := setupTestStore(t)

	first := []search.Record{{Project: "old-package", DownloadCount: 1}}
	if err := s.ReplaceIndex(first, time.Now()); err != nil {
		t.Fatalf("first ReplaceIndex failed: %v", err)
	}

	second := []search.Record{{Project: "new-package", DownloadCount: 2}}
	if err := s.ReplaceIndex(second, time.Now()); err != nil {
		t.Fatalf("second ReplaceIndex failed: %v", err)
	}

	got, err := s.ListIndex()
	if err != nil {
		t.Fatalf("ListIndex failed: %v", err)
	}
	if len(got) != 1 || got[0].Project != "new-package" {
		t.Errorf("expected wholesale replacement, got %v", got)
	}
}

func TestFetchedAt(t *testing.T) {
	s := setupTestStore(t)

	// Unpopulated cache: zero time, no error.
	got, err := s.FetchedAt()
	if err != nil {
		t.Fatalf("FetchedAt on empty cache failed: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("expected zero time for empty cache, got %v", got)
	}

	fetchedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := s.ReplaceIndex(nil, fetchedAt); err != nil {
		t.Fatalf("ReplaceIndex failed: %v", err)
	}

	got, err = s.FetchedAt()
	if err != nil {
		t.Fatalf("FetchedAt failed: %v", err)
	}
	if !got.Equal(fetchedAt) {
		t.Errorf("expected %v, got %v", fetchedAt, got)
	}
}

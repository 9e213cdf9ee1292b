package provider

import (
	"errors"
	"testing"
	"time"
)

func TestCachedFetcher_ServesFromCacheWithinTTL(t *testing.T) {
	mock := &MockFetcher{Price: 300.00}
	cached := NewCachedFetcher(mock, 12*time.Hour)

	if _, err := cached.FetchDailyHistory("AVGO", 730); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := cached.FetchDailyHistory("AVGO", 730); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if mock.HistoryCalls != 1 {
		t.Errorf("expected 1 upstream call, got %d", mock.HistoryCalls)
	}

	if _, err := cached.FetchLatestPrice("AVGO"); err != nil {
		t.Fatalf("price fetch: %v", err)
	}
	if _, err := cached.FetchLatestPrice("AVGO"); err != nil {
		t.Fatalf("price refetch: %v", err)
	}
	if mock.PriceCalls != 1 {
		t.Errorf("expected 1 upstream price call, got %d", mock.PriceCalls)
	}
}

func TestCachedFetcher_ExpiresAfterTTL(t *testing.T) {
	mock := &MockFetcher{Price: 155.00}
	cached := NewCachedFetcher(mock, 12*time.Hour)

	current := time.Now()
	cached.now = func() time.Time { return current }

	if _, err := cached.FetchDailyHistory("VTSAX", 730); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	current = current.Add(13 * time.Hour)
	if _, err := cached.FetchDailyHistory("VTSAX", 730); err != nil {
		t.Fatalf("post-expiry fetch: %v", err)
	}
	if mock.HistoryCalls != 2 {
		t.Errorf("expected expired entry to refetch, got %d upstream calls", mock.HistoryCalls)
	}
}

func TestCachedFetcher_ClearForcesRefetch(t *testing.T) {
	mock := &MockFetcher{Price: 300.00}
	cached := NewCachedFetcher(mock, 12*time.Hour)

	if _, err := cached.FetchDailyHistory("AVGO", 730); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	cached.Clear()
	if _, err := cached.FetchDailyHistory("AVGO", 730); err != nil {
		t.Fatalf("fetch after clear: %v", err)
	}
	if mock.HistoryCalls != 2 {
		t.Errorf("expected refetch after Clear, got %d upstream calls", mock.HistoryCalls)
	}
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	mock := &MockFetcher{HistoryErr: errors.New("provider down")}
	cached := NewCachedFetcher(mock, 12*time.Hour)

	if _, err := cached.FetchDailyHistory("AVGO", 730); err == nil {
		t.Fatal("expected error from upstream")
	}
	mock.HistoryErr = nil
	mock.Price = 300.00
	if _, err := cached.FetchDailyHistory("AVGO", 730); err != nil {
		t.Fatalf("expected recovery once upstream is healthy: %v", err)
	}
	if mock.HistoryCalls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", mock.HistoryCalls)
	}
}

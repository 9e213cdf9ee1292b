package engine

import (
	"testing"
	"time"

	"StockDuel/internal/model"
)

func barsFromCloses(closes ...float64) []model.Bar {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Time: start.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func TestResolvePrices_HistoryOnly(t *testing.T) {
	bars := barsFromCloses(290.00, 295.00, 300.00)

	current, prevClose, err := ResolvePrices(bars, 0)
	if err != nil {
		t.Fatalf("ResolvePrices: %v", err)
	}
	if current != 300.00 {
		t.Errorf("expected current 300.00, got %.2f", current)
	}
	if prevClose != 295.00 {
		t.Errorf("expected prev close 295.00, got %.2f", prevClose)
	}
}

func TestResolvePrices_LiveQuoteNewer(t *testing.T) {
	// Live quote differs from the last bar by more than the tolerance:
	// the quote is newer, so the last bar becomes previous close.
	bars := barsFromCloses(154.00, 154.90)

	current, prevClose, err := ResolvePrices(bars, 155.00)
	if err != nil {
		t.Fatalf("ResolvePrices: %v", err)
	}
	if current != 155.00 {
		t.Errorf("expected current 155.00, got %.2f", current)
	}
	if prevClose != 154.90 {
		t.Errorf("expected prev close 154.90, got %.2f", prevClose)
	}
}

func TestResolvePrices_LiveQuoteAbsorbed(t *testing.T) {
	// Live quote matches the last bar within tolerance: the series already
	// has today's move, so previous close comes from two bars back.
	bars := barsFromCloses(154.00, 154.90, 155.00)

	current, prevClose, err := ResolvePrices(bars, 155.005)
	if err != nil {
		t.Fatalf("ResolvePrices: %v", err)
	}
	if current != 155.005 {
		t.Errorf("expected current 155.005, got %.4f", current)
	}
	if prevClose != 154.90 {
		t.Errorf("expected prev close 154.90, got %.2f", prevClose)
	}
}

func TestResolvePrices_SingleSample(t *testing.T) {
	bars := barsFromCloses(120.00)

	current, prevClose, err := ResolvePrices(bars, 0)
	if err != nil {
		t.Fatalf("ResolvePrices: %v", err)
	}
	if current != 120.00 || prevClose != 120.00 {
		t.Errorf("expected fallback to current price, got current=%.2f prev=%.2f", current, prevClose)
	}
}

func TestResolvePrices_EmptySeries(t *testing.T) {
	if _, _, err := ResolvePrices(nil, 155.00); err == nil {
		t.Error("expected error for empty series even with a live quote")
	}
}

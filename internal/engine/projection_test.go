package engine

import (
	"math"
	"testing"
	"time"

	"StockDuel/internal/model"
)

func linearBars(start time.Time, days int, base, perDay float64) []model.Bar {
	bars := make([]model.Bar, days)
	for i := 0; i < days; i++ {
		c := base + perDay*float64(i)
		bars[i] = model.Bar{Time: start.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func TestProject_ExactLinearFit(t *testing.T) {
	// Closes increase by exactly 1.0 per calendar day over a 2-year window.
	// Ten days past the last sample must project exactly last_close + 10.
	start := time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)
	bars := linearBars(start, 730, 100.0, 1.0)
	lastClose := bars[len(bars)-1].Close

	target := bars[len(bars)-1].Time.AddDate(0, 0, 10)
	got, err := Project(bars, target)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	want := lastClose + 10
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %.6f, got %.6f", want, got)
	}
}

func TestProject_Deterministic(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := []model.Bar{
		{Time: start, Close: 294.30},
		{Time: start.AddDate(0, 0, 1), Close: 297.15},
		{Time: start.AddDate(0, 0, 2), Close: 295.80},
		{Time: start.AddDate(0, 0, 5), Close: 301.22},
	}
	target := start.AddDate(1, 0, 0)

	first, err := Project(bars, target)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := Project(bars, target)
		if err != nil {
			t.Fatalf("Project (repeat %d): %v", i, err)
		}
		if again != first {
			t.Fatalf("projection not reproducible: %.12f vs %.12f", first, again)
		}
	}
}

func TestProject_InsufficientData(t *testing.T) {
	target := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)

	if _, err := Project(nil, target); err == nil {
		t.Error("expected error for empty series")
	}
	one := []model.Bar{{Time: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Close: 100}}
	if _, err := Project(one, target); err == nil {
		t.Error("expected error for single-sample series")
	}
}

func TestFitLine_Slope(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	bars := linearBars(start, 50, 200.0, 0.5)

	slope, _, err := FitLine(bars)
	if err != nil {
		t.Fatalf("FitLine: %v", err)
	}
	if math.Abs(slope-0.5) > 1e-9 {
		t.Errorf("expected slope 0.5, got %.9f", slope)
	}
}

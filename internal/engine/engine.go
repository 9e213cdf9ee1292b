// Package engine computes gain, comparison, and projection metrics for a pair
// of tracked instruments. All functions are pure: no I/O, no retained state.
package engine

import (
	"fmt"
	"time"

	"StockDuel/internal/model"
)

// BuildReport derives all per-instrument metrics from a fetched snapshot.
// An error means the instrument did not resolve a current price and must be
// excluded from the pairwise comparison.
func BuildReport(inst model.Instrument, snap *model.SeriesSnapshot, target time.Time) (*model.InstrumentReport, error) {
	current, prevClose, err := ResolvePrices(snap.Bars, snap.LatestPrice)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", inst.Ticker, err)
	}

	r := &model.InstrumentReport{
		Instrument:   inst,
		CurrentPrice: current,
		PrevClose:    prevClose,
		History:      snap.Bars,
	}
	r.TotalGainPct = TotalGainPct(current, inst.BaselinePrice)
	r.DailyChangeAmt, r.DailyChangePct = DailyChange(current, prevClose)

	if projected, err := Project(snap.Bars, target); err == nil {
		r.ProjectedPrice = projected
		r.ProjectedGainPct = TotalGainPct(projected, inst.BaselinePrice)
		r.HasProjection = true
	}
	return r, nil
}

// Compare produces the full pairwise comparison. Both reports must have
// resolved; match prices are inherently pairwise, so each side needs the
// other's total gain before either can be filled in.
func Compare(a, b *model.InstrumentReport, target, now time.Time) *model.Comparison {
	a.MatchPrice = MatchPrice(a.BaselinePrice, b.TotalGainPct)
	a.RivalTicker = b.Ticker
	b.MatchPrice = MatchPrice(b.BaselinePrice, a.TotalGainPct)
	b.RivalTicker = a.Ticker

	return &model.Comparison{
		A:           a,
		B:           b,
		Verdict:     JudgeDaily(a, b),
		TargetDate:  target,
		GeneratedAt: now,
	}
}

package engine

import (
	"math"

	"StockDuel/internal/model"
)

// TotalGainPct computes the percentage gain of current over baseline.
// Baselines are validated strictly positive at configuration time.
func TotalGainPct(current, baseline float64) float64 {
	return (current - baseline) / baseline * 100
}

// DailyChange computes the absolute and percentage move since previous close.
func DailyChange(current, prevClose float64) (amt, pct float64) {
	amt = current - prevClose
	if prevClose != 0 {
		pct = amt / prevClose * 100
	}
	return amt, pct
}

// MatchPrice returns the price an instrument must reach to have matched the
// other instrument's percentage gain since their respective baselines.
func MatchPrice(baseline, otherGainPct float64) float64 {
	return baseline * (1 + otherGainPct/100)
}

// drawEpsilon absorbs binary representation error when a difference lands
// exactly on Tolerance: 1.01 - 1.00 evaluates slightly above 0.01 in float64.
const drawEpsilon = 1e-9

// JudgeDaily decides today's winner between the two instruments by daily
// percentage change. A difference within Tolerance is a draw.
func JudgeDaily(a, b *model.InstrumentReport) model.Verdict {
	diff := a.DailyChangePct - b.DailyChangePct
	if math.Abs(diff)-Tolerance <= drawEpsilon {
		return model.Verdict{Draw: true}
	}
	if diff > 0 {
		return model.Verdict{Winner: a.Ticker, Loser: b.Ticker, MarginPct: diff}
	}
	return model.Verdict{Winner: b.Ticker, Loser: a.Ticker, MarginPct: -diff}
}

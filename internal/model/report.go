package model

import "time"

// InstrumentReport holds all derived metrics for one instrument in a cycle.
// It is recomputed on every refresh and never persisted as state.
type InstrumentReport struct {
	Instrument

	CurrentPrice   float64
	PrevClose      float64
	TotalGainPct   float64
	DailyChangeAmt float64
	DailyChangePct float64

	// MatchPrice is the price this instrument must reach to have matched the
	// rival's percentage gain since their respective baselines. Filled in only
	// when both instruments resolved.
	MatchPrice  float64
	RivalTicker string

	ProjectedPrice   float64
	ProjectedGainPct float64
	HasProjection    bool

	// History keeps the fetched bars for chart rendering.
	History []Bar
}

// Verdict is the daily battle outcome between the two instruments.
type Verdict struct {
	Draw      bool
	Winner    string
	Loser     string
	MarginPct float64
}

// Comparison is the full pairwise result for one refresh cycle.
type Comparison struct {
	A           *InstrumentReport
	B           *InstrumentReport
	Verdict     Verdict
	TargetDate  time.Time
	GeneratedAt time.Time
}

// Reports returns both instrument reports in configured order.
func (c *Comparison) Reports() []*InstrumentReport {
	return []*InstrumentReport{c.A, c.B}
}

// CycleResult is what one refresh cycle produces. Comparison is nil when fewer
// than two instruments resolved; Failures then carries a user-visible message
// per failing ticker.
type CycleResult struct {
	Comparison  *Comparison
	Failures    []string
	GeneratedAt time.Time
}

// Degraded reports whether the pairwise comparison had to be withheld.
func (r *CycleResult) Degraded() bool {
	return r.Comparison == nil
}

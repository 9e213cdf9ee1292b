package model

// Instrument is one tracked ticker with its fixed baseline price.
// The baseline is set at configuration time and never changes during a run.
type Instrument struct {
	Ticker        string
	Name          string
	BaselinePrice float64
}

package recorder

import "StockDuel/internal/model"

// Recorder persists refresh-cycle history for later analysis. The recorded
// rows are a log, never the source of truth: every cycle recomputes from
// provider data.
type Recorder interface {
	RecordComparison(cmp *model.Comparison) error
	RecordFetchError(ticker, message string) error
	Close() error
}

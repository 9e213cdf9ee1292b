package recorder

import "StockDuel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordComparison(_ *model.Comparison) error { return nil }
func (n *NoopRecorder) RecordFetchError(_, _ string) error         { return nil }
func (n *NoopRecorder) Close() error                               { return nil }

package model

import "time"

// Bar represents a single daily candlestick bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// SeriesSnapshot holds raw price data fetched for one instrument.
type SeriesSnapshot struct {
	Symbol      string
	Bars        []Bar
	LatestPrice float64
	FetchedAt   time.Time
}

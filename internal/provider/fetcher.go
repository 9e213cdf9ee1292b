package provider

import (
	"time"

	"StockDuel/internal/model"
)

// Fetcher defines the interface for fetching price data for one ticker.
type Fetcher interface {
	// FetchDailyHistory returns up to `days` daily bars in chronological order.
	FetchDailyHistory(symbol string, days int) ([]model.Bar, error)
	// FetchLatestPrice returns the most recent quoted price, which may be
	// newer than the last daily bar.
	FetchLatestPrice(symbol string) (float64, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price        float64
	History      []model.Bar
	HistoryErr   error
	PriceErr     error
	HistoryCalls int
	PriceCalls   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(_ string, days int) ([]model.Bar, error) {
	m.HistoryCalls++
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	if m.History != nil {
		return m.History, nil
	}
	return generateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchLatestPrice(_ string) (float64, error) {
	m.PriceCalls++
	if m.PriceErr != nil {
		return 0, m.PriceErr
	}
	return m.Price, nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

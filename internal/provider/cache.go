package provider

import (
	"sync"
	"time"

	"StockDuel/internal/model"
)

type historyEntry struct {
	bars      []model.Bar
	fetchedAt time.Time
}

type priceEntry struct {
	price     float64
	fetchedAt time.Time
}

// CachedFetcher wraps a Fetcher with a per-symbol TTL cache. A manual refresh
// clears every entry so the next cycle hits the upstream provider again.
// Errors are never cached.
type CachedFetcher struct {
	upstream Fetcher
	ttl      time.Duration

	mu      sync.Mutex
	history map[string]historyEntry
	prices  map[string]priceEntry
	now     func() time.Time
}

// NewCachedFetcher creates a TTL cache around the given fetcher.
func NewCachedFetcher(upstream Fetcher, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		upstream: upstream,
		ttl:      ttl,
		history:  make(map[string]historyEntry),
		prices:   make(map[string]priceEntry),
		now:      time.Now,
	}
}

func (c *CachedFetcher) Name() string { return c.upstream.Name() + "+cache" }

func (c *CachedFetcher) FetchDailyHistory(symbol string, days int) ([]model.Bar, error) {
	c.mu.Lock()
	if e, ok := c.history[symbol]; ok && c.now().Before(e.fetchedAt.Add(c.ttl)) {
		bars := e.bars
		c.mu.Unlock()
		return bars, nil
	}
	c.mu.Unlock()

	bars, err := c.upstream.FetchDailyHistory(symbol, days)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.history[symbol] = historyEntry{bars: bars, fetchedAt: c.now()}
	c.mu.Unlock()
	return bars, nil
}

func (c *CachedFetcher) FetchLatestPrice(symbol string) (float64, error) {
	c.mu.Lock()
	if e, ok := c.prices[symbol]; ok && c.now().Before(e.fetchedAt.Add(c.ttl)) {
		price := e.price
		c.mu.Unlock()
		return price, nil
	}
	c.mu.Unlock()

	price, err := c.upstream.FetchLatestPrice(symbol)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.prices[symbol] = priceEntry{price: price, fetchedAt: c.now()}
	c.mu.Unlock()
	return price, nil
}

// Clear drops all cached entries, forcing the next fetch to hit upstream.
func (c *CachedFetcher) Clear() {
	c.mu.Lock()
	c.history = make(map[string]historyEntry)
	c.prices = make(map[string]priceEntry)
	c.mu.Unlock()
}

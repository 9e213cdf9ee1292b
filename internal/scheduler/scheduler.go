package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"StockDuel/internal/engine"
	"StockDuel/internal/model"
	"StockDuel/internal/notifier"
	"StockDuel/internal/provider"
	"StockDuel/internal/recorder"
	"StockDuel/internal/report"
)

// Scheduler runs refresh cycles on a cron cadence and serves the latest
// result to the HTTP and Telegram surfaces.
type Scheduler struct {
	Cron        *cron.Cron
	Fetcher     *provider.CachedFetcher
	Instruments []model.Instrument
	TargetDate  time.Time
	Lookback    int
	Notifier    *notifier.TelegramNotifier // nil when Telegram is not configured
	Recorder    recorder.Recorder
	Ctx         context.Context

	mu     sync.RWMutex
	latest *model.CycleResult
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, fetcher *provider.CachedFetcher, instruments []model.Instrument,
	targetDate time.Time, lookback int, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Fetcher:     fetcher,
		Instruments: instruments,
		TargetDate:  targetDate,
		Lookback:    lookback,
		Notifier:    tn,
		Recorder:    rec,
		Ctx:         ctx,
	}
}

// Register schedules the periodic refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// Latest returns the most recent cycle result, or nil before the first run.
func (s *Scheduler) Latest() *model.CycleResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Run executes one refresh cycle: fetch both instruments independently,
// compute reports, and compare only when both resolved.
func (s *Scheduler) Run() *model.CycleResult {
	now := time.Now()
	res := &model.CycleResult{GeneratedAt: now}

	reports := make([]*model.InstrumentReport, 0, len(s.Instruments))
	for _, inst := range s.Instruments {
		// One failing ticker must not block the other.
		r, err := s.buildReport(inst)
		if err != nil {
			msg := fmt.Sprintf("Error fetching %s: %v", inst.Ticker, err)
			log.Printf("[ERROR] %s", msg)
			res.Failures = append(res.Failures, msg)
			if recErr := s.Recorder.RecordFetchError(inst.Ticker, err.Error()); recErr != nil {
				log.Printf("[ERROR] record fetch error: %v", recErr)
			}
			continue
		}
		reports = append(reports, r)
	}

	// The pairwise comparison is all-or-nothing: never show a partial one.
	if len(reports) == 2 {
		res.Comparison = engine.Compare(reports[0], reports[1], s.TargetDate, now)
		if err := s.Recorder.RecordComparison(res.Comparison); err != nil {
			log.Printf("[ERROR] record comparison: %v", err)
		}
	}

	s.mu.Lock()
	s.latest = res
	s.mu.Unlock()
	return res
}

// Refresh clears the provider cache and recomputes (the manual refresh trigger).
func (s *Scheduler) Refresh() *model.CycleResult {
	log.Println("[INFO] manual refresh: clearing provider cache")
	s.Fetcher.Clear()
	return s.Run()
}

func (s *Scheduler) buildReport(inst model.Instrument) (*model.InstrumentReport, error) {
	bars, err := s.Fetcher.FetchDailyHistory(inst.Ticker, s.Lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	// The live quote is best-effort: daily-priced funds may not have one, and
	// the engine falls back to the last close.
	latest, err := s.Fetcher.FetchLatestPrice(inst.Ticker)
	if err != nil {
		log.Printf("[WARN] fetch latest price for %s failed, using last close: %v", inst.Ticker, err)
		latest = 0
	}

	snap := &model.SeriesSnapshot{
		Symbol:      inst.Ticker,
		Bars:        bars,
		LatestPrice: latest,
		FetchedAt:   time.Now(),
	}
	return engine.BuildReport(inst, snap, s.TargetDate)
}

// ChartFor renders the chart PNG for one ticker from the latest cycle.
func (s *Scheduler) ChartFor(ticker string) ([]byte, error) {
	res := s.Latest()
	if res == nil || res.Degraded() {
		return nil, fmt.Errorf("no comparison available for %s", ticker)
	}
	for _, r := range res.Comparison.Reports() {
		if r.Ticker == ticker {
			return report.RenderChart(r, s.TargetDate)
		}
	}
	return nil, fmt.Errorf("unknown ticker %q", ticker)
}

// RunNow executes a cycle immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running refresh cycle")
	res := s.Run()
	s.publish(res)
}

func (s *Scheduler) publish(res *model.CycleResult) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, report.FormatDuelReport(res), 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}

// ReportText returns the latest duel report, computing a cycle if none ran yet.
func (s *Scheduler) ReportText() string {
	res := s.Latest()
	if res == nil {
		res = s.Run()
	}
	return report.FormatDuelReport(res)
}

// RefreshText clears the provider cache, recomputes, and reports.
func (s *Scheduler) RefreshText() string {
	return report.FormatDuelReport(s.Refresh())
}

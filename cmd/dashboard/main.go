package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"StockDuel/internal/config"
	"StockDuel/internal/notifier"
	"StockDuel/internal/provider"
	"StockDuel/internal/recorder"
	"StockDuel/internal/scheduler"
	"StockDuel/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockDuel starting...")

	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] no .env file found, using environment as-is")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	targetDate, err := cfg.TargetTime()
	if err != nil {
		log.Fatalf("[FATAL] parse target date: %v", err)
	}

	// Init fetcher with TTL cache
	var upstream provider.Fetcher
	if cfg.DataSource.BaseURL != "" {
		upstream = provider.NewRestFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		upstream = provider.NewYahooFetcher(cfg.Proxy)
	}
	fetcher := provider.NewCachedFetcher(upstream, cfg.CacheTTL())
	log.Printf("[INFO] data source: %s (TTL %s)", fetcher.Name(), cfg.CacheTTL())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init Telegram notifier (optional)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, fetcher, cfg.TrackedInstruments(), targetDate,
		cfg.DataSource.LookbackDays, tn, rec)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start HTTP dashboard
	mux := server.NewMux(sched)
	go func() {
		if err := server.ListenAndServe(cfg.Server.ListenAddr, mux); err != nil {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing refresh cycle now")
		go sched.RunNow()
	}

	log.Println("[INFO] StockDuel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockDuel stopped")
}

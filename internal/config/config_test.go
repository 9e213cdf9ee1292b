package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validYAML = `
target_date: "2026-07-04"
instruments:
  - ticker: AVGO
    name: Broadcom Inc.
    baseline_price: 294.30
  - ticker: VTSAX
    name: Vanguard Total Stock Market
    baseline_price: 152.64
`

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.LookbackDays != 730 {
		t.Errorf("expected default lookback 730, got %d", cfg.DataSource.LookbackDays)
	}
	if cfg.Cache.TTLHours != 12 {
		t.Errorf("expected default TTL 12h, got %d", cfg.Cache.TTLHours)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("expected default listen addr, got %q", cfg.Server.ListenAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"one instrument", func(c *Config) { c.Instruments = c.Instruments[:1] }},
		{"zero baseline", func(c *Config) { c.Instruments[0].BaselinePrice = 0 }},
		{"negative baseline", func(c *Config) { c.Instruments[1].BaselinePrice = -152.64 }},
		{"duplicate tickers", func(c *Config) { c.Instruments[1].Ticker = c.Instruments[0].Ticker }},
		{"empty ticker", func(c *Config) { c.Instruments[0].Ticker = "" }},
		{"missing target date", func(c *Config) { c.TargetDate = "" }},
		{"malformed target date", func(c *Config) { c.TargetDate = "July 4th 2026" }},
		{"token without chat id", func(c *Config) { c.Telegram.BotToken = "tok" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, validYAML))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTrackedInstruments(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	insts := cfg.TrackedInstruments()
	if len(insts) != 2 {
		t.Fatalf("expected 2 instruments, got %d", len(insts))
	}
	if insts[0].Ticker != "AVGO" || insts[0].BaselinePrice != 294.30 {
		t.Errorf("unexpected first instrument: %+v", insts[0])
	}
	if insts[1].Ticker != "VTSAX" || insts[1].Name != "Vanguard Total Stock Market" {
		t.Errorf("unexpected second instrument: %+v", insts[1])
	}
}

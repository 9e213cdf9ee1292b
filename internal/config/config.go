package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"StockDuel/internal/model"
)

// InstrumentConfig describes one tracked instrument.
type InstrumentConfig struct {
	Ticker        string  `yaml:"ticker"`
	Name          string  `yaml:"name"`
	BaselinePrice float64 `yaml:"baseline_price"`
}

// Config holds all application configuration.
type Config struct {
	TargetDate  string             `yaml:"target_date"`
	Instruments []InstrumentConfig `yaml:"instruments"`
	DataSource  struct {
		BaseURL      string `yaml:"base_url"`
		APIKey       string `yaml:"api_key"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"data_source"`
	Cache struct {
		TTLHours int `yaml:"ttl_hours"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TARGET_DATE"); v != "" {
		cfg.TargetDate = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CACHE_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLHours = hours
		}
	}

	// Defaults
	if cfg.DataSource.LookbackDays == 0 {
		cfg.DataSource.LookbackDays = 730
	}
	if cfg.Cache.TTLHours == 0 {
		cfg.Cache.TTLHours = 12
	}
	if cfg.Schedule.RefreshCron == "" {
		// Twice a day, matching the cache TTL
		cfg.Schedule.RefreshCron = "0 0 7,19 * * *"
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockduel.db"
	}

	return cfg, nil
}

// Validate checks that the configuration satisfies all preconditions.
// Baseline positivity is a configuration precondition, not a runtime error:
// the engine divides by it unguarded.
func (c *Config) Validate() error {
	if len(c.Instruments) != 2 {
		return fmt.Errorf("exactly 2 instruments are required, got %d", len(c.Instruments))
	}
	seen := make(map[string]bool)
	for i, inst := range c.Instruments {
		if inst.Ticker == "" {
			return fmt.Errorf("instruments[%d]: ticker is required", i)
		}
		if seen[inst.Ticker] {
			return fmt.Errorf("instruments[%d]: duplicate ticker %q", i, inst.Ticker)
		}
		seen[inst.Ticker] = true
		if inst.BaselinePrice <= 0 {
			return fmt.Errorf("instruments[%d] (%s): baseline_price must be positive", i, inst.Ticker)
		}
	}
	if c.TargetDate == "" {
		return fmt.Errorf("target_date is required")
	}
	if _, err := c.TargetTime(); err != nil {
		return fmt.Errorf("target_date: %w", err)
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	return nil
}

// TargetTime parses the projection target date.
func (c *Config) TargetTime() (time.Time, error) {
	return time.Parse("2006-01-02", c.TargetDate)
}

// TrackedInstruments converts the configured pair into model instruments.
func (c *Config) TrackedInstruments() []model.Instrument {
	out := make([]model.Instrument, len(c.Instruments))
	for i, inst := range c.Instruments {
		out[i] = model.Instrument{
			Ticker:        inst.Ticker,
			Name:          inst.Name,
			BaselinePrice: inst.BaselinePrice,
		}
	}
	return out
}

// CacheTTL returns the provider cache time-to-live.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

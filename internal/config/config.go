// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and FAIRWAGE_ environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// BaseYear is the constant-dollar year for real figures.
	BaseYear int `koanf:"base_year"`

	// MedianCacheTTLSeconds is how long a market median lookup is reused.
	MedianCacheTTLSeconds int `koanf:"median_cache_ttl_seconds"`

	// MedianCacheSize bounds the market median cache.
	MedianCacheSize int `koanf:"median_cache_size"`

	// CPILiveEnabled turns on the BLS price index fetch.
	CPILiveEnabled bool   `koanf:"cpi_live_enabled"`
	CPILiveURL     string `koanf:"cpi_live_url"`
	CPISeriesID    string `koanf:"cpi_series_id"`
	CPIAPIKey      string `koanf:"cpi_api_key"`

	// CPIFetchTimeoutMS bounds one live fetch before falling back.
	CPIFetchTimeoutMS int `koanf:"cpi_fetch_timeout_ms"`

	// HoursPerYear annualizes hourly wages.
	HoursPerYear float64 `koanf:"hours_per_year"`

	// CareerLengthYears, WageGrowthRate and InvestmentReturnRate drive the
	// worth gap lifetime projection.
	CareerLengthYears    int     `koanf:"career_length_years"`
	WageGrowthRate       float64 `koanf:"wage_growth_rate"`
	InvestmentReturnRate float64 `koanf:"investment_return_rate"`

	// MaxBodyBytes bounds API request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// BatchWorkers and BatchQueueSize size the batch worker pool.
	BatchWorkers   int `koanf:"batch_workers"`
	BatchQueueSize int `koanf:"batch_queue_size"`

	// ShutdownTimeoutSeconds bounds graceful HTTP shutdown.
	ShutdownTimeoutSeconds int `koanf:"shutdown_timeout_seconds"`

	// MetricsPrefix, MetricsBuckets and MetricsLabels shape the exported
	// Prometheus series. Empty values keep the built-in defaults.
	MetricsPrefix  string            `koanf:"metrics_prefix"`
	MetricsBuckets []float64         `koanf:"metrics_buckets"`
	MetricsLabels  map[string]string `koanf:"metrics_labels"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		BaseYear:               2024,
		MedianCacheTTLSeconds:  86_400,
		MedianCacheSize:        10_000,
		CPILiveEnabled:         false,
		CPILiveURL:             "https://api.bls.gov/publicAPI/v2/timeseries/data/",
		CPISeriesID:            "CUUR0000SA0",
		CPIFetchTimeoutMS:      3_000,
		HoursPerYear:           2080,
		CareerLengthYears:      40,
		WageGrowthRate:         0.03,
		InvestmentReturnRate:   0.05,
		MaxBodyBytes:           64 << 10,
		BatchWorkers:           runtime.NumCPU(),
		BatchQueueSize:         1024,
		ShutdownTimeoutSeconds: 10,
	}
}

// MedianCacheTTL returns the market median TTL.
func (c *Config) MedianCacheTTL() time.Duration {
	return time.Duration(c.MedianCacheTTLSeconds) * time.Second
}

// CPIFetchTimeout returns the live fetch timeout.
func (c *Config) CPIFetchTimeout() time.Duration {
	return time.Duration(c.CPIFetchTimeoutMS) * time.Millisecond
}

// ShutdownTimeout returns the graceful shutdown bound.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !validLevel(c.LogLevel):
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	case c.BaseYear < 1975:
		return fmt.Errorf("%w: base_year %d before 1975", ErrInvalidConfig, c.BaseYear)
	case c.MedianCacheTTLSeconds <= 0:
		return fmt.Errorf("%w: median_cache_ttl_seconds must be positive", ErrInvalidConfig)
	case c.MedianCacheSize <= 0:
		return fmt.Errorf("%w: median_cache_size must be positive", ErrInvalidConfig)
	case c.CPILiveEnabled && c.CPILiveURL == "":
		return fmt.Errorf("%w: cpi_live_url required when cpi_live_enabled", ErrInvalidConfig)
	case c.CPIFetchTimeoutMS <= 0:
		return fmt.Errorf("%w: cpi_fetch_timeout_ms must be positive", ErrInvalidConfig)
	case c.HoursPerYear <= 0:
		return fmt.Errorf("%w: hours_per_year must be positive", ErrInvalidConfig)
	case c.CareerLengthYears <= 0:
		return fmt.Errorf("%w: career_length_years must be positive", ErrInvalidConfig)
	case c.WageGrowthRate < 0 || c.InvestmentReturnRate < 0:
		return fmt.Errorf("%w: growth and return rates must not be negative", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	case c.BatchWorkers <= 0 || c.BatchQueueSize <= 0:
		return fmt.Errorf("%w: batch_workers and batch_queue_size must be positive", ErrInvalidConfig)
	case c.ShutdownTimeoutSeconds <= 0:
		return fmt.Errorf("%w: shutdown_timeout_seconds must be positive", ErrInvalidConfig)
	case !sort.Float64sAreSorted(c.MetricsBuckets):
		return fmt.Errorf("%w: metrics_buckets must increase", ErrInvalidConfig)
	}
	return nil
}

func validLevel(l string) bool {
	switch strings.ToLower(l) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

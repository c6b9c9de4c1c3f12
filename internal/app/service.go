// Package service provides the valuation service that implements the
// dependencies required by the HTTP API, the CLI and the batch pool.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/fairwage/internal/adapters/cache"
	"github.com/okian/fairwage/internal/adapters/cpi"
	"github.com/okian/fairwage/internal/domain/benefits"
	"github.com/okian/fairwage/internal/domain/career"
	"github.com/okian/fairwage/internal/domain/decompose"
	"github.com/okian/fairwage/internal/domain/fairvalue"
	"github.com/okian/fairwage/internal/domain/reference"
	"github.com/okian/fairwage/internal/domain/regional"
	"github.com/okian/fairwage/internal/domain/sector"
	"github.com/okian/fairwage/internal/domain/worthgap"
	"github.com/okian/fairwage/pkg/logger"
	"github.com/okian/fairwage/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultCacheSize = 10000
)

// Service implements the API dependencies for the impact model.
type Service struct {
	mu sync.RWMutex

	// Reference data, shared read-only
	tables *reference.Tables

	// Core components, built on Start
	sectors    *sector.Resolver
	simulator  *career.Simulator
	engine     *fairvalue.Engine
	regional   *regional.Adjuster
	decomposer *decompose.Decomposer
	benefits   *benefits.Multiplier
	analyzer   *worthgap.Analyzer
	markets    *marketCache
	cpi        cpi.Provider

	// Configuration
	baseYear     int
	hoursPerYear float64
	blendHorizon int
	cacheSize    int
	cacheTTL     time.Duration
	careerLength int
	wageGrowth   float64
	returnRate   float64
	cpiOptions   []cpi.Option

	// State
	started   bool
	startedAt time.Time
	impacts   atomic.Int64
	worths    atomic.Int64
	scripts   atomic.Int64
	failures  atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTables replaces the default reference tables.
func WithTables(t *reference.Tables) Option {
	return func(s *Service) {
		if t != nil {
			s.tables = t
		}
	}
}

// WithBaseYear sets the constant-dollar year.
func WithBaseYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.baseYear = year
		}
	}
}

// WithHoursPerYear sets the hours used to annualize hourly wages.
func WithHoursPerYear(h float64) Option {
	return func(s *Service) {
		if h > 0 {
			s.hoursPerYear = h
		}
	}
}

// WithBlendHorizon sets the career length at which the absolute ratio
// takes full weight.
func WithBlendHorizon(years int) Option {
	return func(s *Service) {
		if years > 0 {
			s.blendHorizon = years
		}
	}
}

// WithMedianCache sets the size and TTL of the market median cache.
func WithMedianCache(size int, ttl time.Duration) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithProjection sets the worth gap projection parameters.
func WithProjection(careerLength int, wageGrowth, returnRate float64) Option {
	return func(s *Service) {
		if careerLength > 0 {
			s.careerLength = careerLength
		}
		if wageGrowth >= 0 {
			s.wageGrowth = wageGrowth
		}
		if returnRate >= 0 {
			s.returnRate = returnRate
		}
	}
}

// WithCPIOptions configures the price level source.
func WithCPIOptions(opts ...cpi.Option) Option {
	return func(s *Service) {
		s.cpiOptions = append(s.cpiOptions, opts...)
	}
}

// WithCPIProvider replaces the price level source entirely.
func WithCPIProvider(p cpi.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.cpi = p
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		tables:       reference.Default(),
		baseYear:     reference.DeflatorBaseYear,
		hoursPerYear: reference.HoursPerYear,
		blendHorizon: fairvalue.DefaultBlendHorizon,
		cacheSize:    defaultCacheSize,
		cacheTTL:     worthgap.DefaultMedianTTL,
		careerLength: worthgap.DefaultCareerLength,
		wageGrowth:   worthgap.DefaultWageGrowthRate,
		returnRate:   worthgap.DefaultReturnRate,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting impact model service...",
		logger.String("tables", reference.Version))

	s.sectors = sector.NewResolver(s.tables)
	s.simulator = career.NewSimulator(s.tables)
	s.engine = fairvalue.NewEngine(s.tables,
		fairvalue.WithBlendHorizon(s.blendHorizon),
		fairvalue.WithHoursPerYear(s.hoursPerYear),
	)
	s.regional = regional.NewAdjuster(s.tables)
	s.decomposer = decompose.New(s.tables)
	s.benefits = benefits.New(s.tables)
	s.markets = newMarketCache(cache.NewMemory[worthgap.Market](cache.WithMaxSize(s.cacheSize)))
	s.analyzer = worthgap.NewAnalyzer(s.tables,
		worthgap.WithCache(s.markets, s.cacheTTL),
		worthgap.WithHoursPerYear(s.hoursPerYear),
		worthgap.WithProjection(s.careerLength, s.wageGrowth, s.returnRate),
	)
	if s.cpi == nil {
		opts := append([]cpi.Option{cpi.WithLogger(s.logger.Named("cpi"))}, s.cpiOptions...)
		s.cpi = cpi.NewFetcher(s.tables.CPILevels(), s.tables.LatestYear(), opts...)
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "impact model service started",
		logger.Int("baseYear", s.baseYear),
		logger.Int("cacheSize", s.cacheSize),
		logger.Duration("cacheTTL", s.cacheTTL),
	)

	return nil
}

// Stop releases the service components.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping impact model service...")

	if s.markets != nil {
		s.markets.purge()
	}

	s.started = false
	s.logger.Info(context.Background(), "impact model service stopped",
		logger.Any("impacts", s.impacts.Load()),
		logger.Any("worthGaps", s.worths.Load()),
	)
}

// running reports whether Start has completed.
func (s *Service) running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":       s.started,
		"tablesVersion": reference.Version,
		"sectors":       s.tables.SectorKeys(),
		"baseYear":      s.baseYear,
		"impacts":       s.impacts.Load(),
		"worthGaps":     s.worths.Load(),
		"scripts":       s.scripts.Load(),
		"failures":      s.failures.Load(),
	}

	if s.started {
		hits, misses := s.markets.stats()
		size := s.markets.size()
		stats["cacheSize"] = size
		stats["cacheHits"] = hits
		stats["cacheMisses"] = misses
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())

		metrics.UpdateCacheSize(size)
		metrics.UpdateSystemMetrics()
	}

	return stats
}

// Size returns the current number of entries in the market median cache.
func (s *Service) Size() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.markets == nil {
		return 0
	}
	return s.markets.size()
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/okian/fairwage/internal/adapters/cpi"
	service "github.com/okian/fairwage/internal/app"
	"github.com/okian/fairwage/internal/config"
	"github.com/okian/fairwage/pkg/logger"
	"github.com/okian/fairwage/pkg/metrics"
)

// setup initializes logging on w and loads configuration.
func setup(ctx context.Context, w io.Writer) (*config.Config, logger.Logger, error) {
	if err := logger.Init(logger.WithWriter(w), logger.WithFormat(logFormat)); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	if err := metrics.Configure(
		metrics.WithMetricPrefix(cfg.MetricsPrefix),
		metrics.WithHistogramBuckets(cfg.MetricsBuckets),
		metrics.WithCustomLabels(cfg.MetricsLabels),
	); err != nil {
		return nil, nil, fmt.Errorf("failed to configure metrics: %w", err)
	}
	return cfg, log, nil
}

// newService builds a started service from configuration.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger, extra ...service.Option) (*service.Service, error) {
	opts := []service.Option{
		service.WithLogger(log.Named("service")),
		service.WithBaseYear(cfg.BaseYear),
		service.WithHoursPerYear(cfg.HoursPerYear),
		service.WithMedianCache(cfg.MedianCacheSize, cfg.MedianCacheTTL()),
		service.WithProjection(cfg.CareerLengthYears, cfg.WageGrowthRate, cfg.InvestmentReturnRate),
		service.WithCPIOptions(
			cpi.WithLive(cfg.CPILiveEnabled, cfg.CPILiveURL),
			cpi.WithSeriesID(cfg.CPISeriesID),
			cpi.WithAPIKey(cfg.CPIAPIKey),
			cpi.WithTimeout(cfg.CPIFetchTimeout()),
			cpi.WithLogger(log.Named("cpi")),
		),
	}
	svc := service.New(append(opts, extra...)...)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start service: %w", err)
	}
	return svc, nil
}

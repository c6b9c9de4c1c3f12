package config_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/fairwage/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.BaseYear, convey.ShouldEqual, 2024)
			convey.So(cfg.CPILiveEnabled, convey.ShouldBeFalse)
			convey.So(cfg.CPISeriesID, convey.ShouldEqual, "CUUR0000SA0")
			convey.So(cfg.HoursPerYear, convey.ShouldEqual, 2080.0)
			convey.So(cfg.BatchWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.MedianCacheTTL(), convey.ShouldEqual, 24*time.Hour)
			convey.So(cfg.CPIFetchTimeout(), convey.ShouldEqual, 3*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }},
			{"early base year", func(c *config.Config) { c.BaseYear = 1900 }},
			{"zero ttl", func(c *config.Config) { c.MedianCacheTTLSeconds = 0 }},
			{"live without url", func(c *config.Config) { c.CPILiveEnabled, c.CPILiveURL = true, "" }},
			{"zero timeout", func(c *config.Config) { c.CPIFetchTimeoutMS = 0 }},
			{"zero hours", func(c *config.Config) { c.HoursPerYear = 0 }},
			{"negative growth", func(c *config.Config) { c.WageGrowthRate = -0.01 }},
			{"zero body limit", func(c *config.Config) { c.MaxBodyBytes = 0 }},
			{"zero workers", func(c *config.Config) { c.BatchWorkers = 0 }},
			{"zero career years", func(c *config.Config) { c.CareerLengthYears = 0 }},
			{"unsorted metric buckets", func(c *config.Config) { c.MetricsBuckets = []float64{5, 1} }},
		}
		for _, tc := range cases {
			convey.Convey("When "+tc.name, func() {
				tc.mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}

package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/fairwage/internal/config"
)

var configEnvVars = []string{
	"FAIRWAGE_CONFIG",
	"FAIRWAGE_ADDR",
	"FAIRWAGE_LOG_LEVEL",
	"FAIRWAGE_BASE_YEAR",
	"FAIRWAGE_CPI_LIVE_ENABLED",
	"FAIRWAGE_CPI_FETCH_TIMEOUT_MS",
	"FAIRWAGE_WAGE_GROWTH_RATE",
	"FAIRWAGE_BATCH_WORKERS",
	"FAIRWAGE_MAX_BODY_BYTES",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "fairwage.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.BaseYear, convey.ShouldEqual, 2024)
				convey.So(cfg.WageGrowthRate, convey.ShouldEqual, 0.03)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("FAIRWAGE_ADDR", ":8080")
			_ = os.Setenv("FAIRWAGE_BASE_YEAR", "2020")
			_ = os.Setenv("FAIRWAGE_CPI_LIVE_ENABLED", "true")
			_ = os.Setenv("FAIRWAGE_WAGE_GROWTH_RATE", "0.025")
			_ = os.Setenv("FAIRWAGE_MAX_BODY_BYTES", "2048")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.BaseYear, convey.ShouldEqual, 2020)
				convey.So(cfg.CPILiveEnabled, convey.ShouldBeTrue)
				convey.So(cfg.WageGrowthRate, convey.ShouldEqual, 0.025)
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, int64(2048))
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := createTempConfigFile(t, `
addr: ":9090"
log_level: debug
cpi_fetch_timeout_ms: 500
batch_workers: 3
metrics_prefix: api_
metrics_buckets: [1, 10, 100]
metrics_labels:
  region: us-east
`)
			_ = os.Setenv("FAIRWAGE_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.CPIFetchTimeoutMS, convey.ShouldEqual, 500)
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.BaseYear, convey.ShouldEqual, 2024)
				convey.So(cfg.MetricsPrefix, convey.ShouldEqual, "api_")
				convey.So(cfg.MetricsBuckets, convey.ShouldResemble, []float64{1, 10, 100})
				convey.So(cfg.MetricsLabels, convey.ShouldResemble, map[string]string{"region": "us-east"})
			})

			convey.Convey("And env vars take precedence over the file", func() {
				_ = os.Setenv("FAIRWAGE_ADDR", ":7070")
				_ = os.Setenv("FAIRWAGE_BATCH_WORKERS", "5")

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, 5)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("FAIRWAGE_CONFIG", "/non/existent/fairwage.yaml")

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail to load", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML is malformed", func() {
			path := createTempConfigFile(t, "addr: [unterminated\n")
			_ = os.Setenv("FAIRWAGE_CONFIG", path)

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail to load", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a setting is invalid", func() {
			_ = os.Setenv("FAIRWAGE_LOG_LEVEL", "chatty")

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a number cannot be parsed", func() {
			_ = os.Setenv("FAIRWAGE_BATCH_WORKERS", "many")

			_, err := config.Load(ctx)

			convey.Convey("Then unmarshal fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

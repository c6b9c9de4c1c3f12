package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("x_"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.sectorFallbacks.Inc()

			Convey("Then collectors are registered under the configured names", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_x_sector_fallbacks_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty values are given", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""), WithSubsystem(""), WithMetricPrefix(""),
				WithHistogramBuckets(nil), WithCustomLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "fairwage")
				So(manager.subsystem, ShouldEqual, "model")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
				So(manager.constLabels, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording calculations", func() {
			before := testutil.ToFloat64(mgr().calculations.WithLabelValues("impact", "ok"))
			RecordCalculation("impact", "ok", 1.5)
			RecordCalculation("impact", "ok", 2.5)

			Convey("Then the counter advances", func() {
				after := testutil.ToFloat64(mgr().calculations.WithLabelValues("impact", "ok"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording cache lookups", func() {
			hits := testutil.ToFloat64(mgr().cacheLookups.WithLabelValues("hit"))
			misses := testutil.ToFloat64(mgr().cacheLookups.WithLabelValues("miss"))
			RecordCacheLookup(true)
			RecordCacheLookup(false)
			RecordCacheLookup(false)
			UpdateCacheSize(7)

			Convey("Then hits, misses and size are tracked", func() {
				So(testutil.ToFloat64(mgr().cacheLookups.WithLabelValues("hit"))-hits, ShouldEqual, 1)
				So(testutil.ToFloat64(mgr().cacheLookups.WithLabelValues("miss"))-misses, ShouldEqual, 2)
				So(testutil.ToFloat64(mgr().cacheSize), ShouldEqual, 7)
			})
		})

		Convey("When recording fallbacks", func() {
			before := testutil.ToFloat64(mgr().deflatorMissing)
			RecordDeflatorMissing(3)
			RecordDeflatorMissing(0)
			RecordSectorFallback()
			RecordRoleFallback()
			RecordCeilingCapped(2)
			RecordCPISource("LOCAL_FALLBACK")
			RecordCPIFetchLatency(12)

			Convey("Then non-positive counts are ignored", func() {
				So(testutil.ToFloat64(mgr().deflatorMissing)-before, ShouldEqual, 3)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			So(func() {
				RecordHTTPRequest("/api/impact-calculator", "POST", "200")
				RecordHTTPRequestDuration("/api/impact-calculator", "POST", "200", 0.004)
				RecordErrorByComponent("api", "invalid_range")
				RecordErrorByEndpoint("/api/worth-gap-analyzer", "POST", "invalid_wage")
				RecordBatchJob("ok", 3)
				UpdateBatchWorkers(4)
				RecordCareerYears(15)
				UpdateSystemMetrics()
			}, ShouldNotPanic)
			So(testutil.ToFloat64(mgr().systemGoroutineCount), ShouldBeGreaterThan, 0)
		})

		Convey("When recording is disabled", func() {
			SetEnabled(false)
			defer SetEnabled(true)
			before := testutil.ToFloat64(mgr().sectorFallbacks)
			RecordSectorFallback()

			Convey("Then nothing is recorded", func() {
				So(testutil.ToFloat64(mgr().sectorFallbacks), ShouldEqual, before)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		before := testutil.ToFloat64(mgr().httpRequests.WithLabelValues("/concurrent", "GET", "200"))
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					RecordHTTPRequest("/concurrent", "GET", "200")
					RecordCalculation("worth", "ok", float64(j))
				}
			}()
		}
		wg.Wait()

		Convey("Then every increment is counted", func() {
			after := testutil.ToFloat64(mgr().httpRequests.WithLabelValues("/concurrent", "GET", "200"))
			So(after-before, ShouldEqual, 1000)
		})
	})
}

func TestRegistryExposition(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordSectorFallback()
		n, err := testutil.GatherAndCount(GetRegistry(), "fairwage_model_sector_fallbacks_total")

		Convey("Then service metrics are exposed without Go runtime collectors", func() {
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "go_"), ShouldBeFalse)
			}
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given process-wide metrics reconfigured from settings", t, func() {
		defer func() { _ = Configure() }()

		err := Configure(
			WithMetricPrefix("api_"),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithCustomLabels(map[string]string{"region": "us-east"}),
		)
		So(err, ShouldBeNil)
		RecordSectorFallback()
		RecordCalculation("impact", "ok", 5)

		Convey("Then recorded metrics use the prefix, labels and buckets", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := map[string]bool{}
			for _, f := range families {
				names[f.GetName()] = true
				if f.GetName() == "fairwage_model_api_sector_fallbacks_total" {
					So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "region")
					So(f.GetMetric()[0].GetCounter().GetValue(), ShouldEqual, 1)
				}
				if f.GetName() == "fairwage_model_api_calculation_latency_milliseconds" {
					So(len(f.GetMetric()[0].GetHistogram().GetBucket()), ShouldEqual, 3)
				}
			}
			So(names["fairwage_model_api_sector_fallbacks_total"], ShouldBeTrue)
		})
	})

	Convey("Given options Prometheus would reject", t, func() {
		before := GetRegistry()
		bad := [][]Option{
			{WithMetricPrefix("bad-prefix")},
			{WithHistogramBuckets([]float64{10, 1})},
			{WithCustomLabels(map[string]string{"kind": "x"})},
			{WithCustomLabels(map[string]string{"__reserved": "x"})},
		}

		Convey("Then each is refused and the current collectors stay", func() {
			for _, opts := range bad {
				So(errors.Is(Configure(opts...), ErrInvalidOption), ShouldBeTrue)
			}
			So(GetRegistry(), ShouldPointTo, before)
		})
	})
}

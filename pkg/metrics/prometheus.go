// Package metrics provides Prometheus metrics for the fairwage service.
package metrics

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrInvalidOption is returned by Configure for options Prometheus would reject.
var ErrInvalidOption = errors.New("invalid metrics option")

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          atomic.Bool
	constLabels      map[string]string
	metricPrefix     string
	registry         prometheus.Registerer
	gatherer         *prometheus.Registry

	// Valuation
	calculations       *prometheus.CounterVec
	calculationLatency *prometheus.HistogramVec
	careerYears        prometheus.Histogram
	sectorFallbacks    prometheus.Counter
	roleFallbacks      prometheus.Counter
	deflatorMissing    prometheus.Counter
	ceilingCapped      prometheus.Counter

	// Reference data
	cpiSource       *prometheus.CounterVec
	cpiFetchLatency prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
	cacheSize       prometheus.Gauge

	// Batch
	batchJobs        *prometheus.CounterVec
	batchWorkers     prometheus.Gauge
	batchJobsLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var current atomic.Pointer[Manager] //nolint:gochecknoglobals // process-wide metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	if err := Configure(); err != nil {
		panic(err)
	}
}

var metricNameRe = regexp.MustCompile(`^[a-zA-Z0-9_]*$`)

var labelNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// variableLabels are the label names collectors already use; a constant
// label may not reuse one.
var variableLabels = map[string]bool{
	"kind": true, "outcome": true, "source": true, "result": true, "endpoint": true,
	"method": true, "status_code": true, "component": true, "error_type": true, "le": true,
}

// Configure replaces the process-wide collectors with a fresh set built from
// opts on a new registry. Call it before serving /metrics; values recorded
// earlier are discarded.
func Configure(opts ...Option) error {
	reg := prometheus.NewRegistry()
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithPrometheusRegistry(reg))

	m := newManager(all...)
	if err := m.validate(); err != nil {
		return err
	}
	m.initializeMetrics()
	m.gatherer = reg
	current.Store(m)
	return nil
}

func mgr() *Manager { return current.Load() }

func (m *Manager) validate() error {
	if !metricNameRe.MatchString(m.metricPrefix) {
		return fmt.Errorf("%w: metric prefix %q", ErrInvalidOption, m.metricPrefix)
	}
	for i := 1; i < len(m.histogramBuckets); i++ {
		if m.histogramBuckets[i] <= m.histogramBuckets[i-1] {
			return fmt.Errorf("%w: histogram buckets must increase: %v", ErrInvalidOption, m.histogramBuckets)
		}
	}
	for name := range m.constLabels {
		if !labelNameRe.MatchString(name) || strings.HasPrefix(name, "__") || variableLabels[name] {
			return fmt.Errorf("%w: label %q", ErrInvalidOption, name)
		}
	}
	return nil
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := newManager(opts...)
	m.initializeMetrics()
	return m
}

func newManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fairwage",
		subsystem:        "model",
		histogramBuckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	m.enabled.Store(true)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.metricPrefix + name,
		Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.metricPrefix + name,
		Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.HistogramOpts {
	if buckets == nil {
		buckets = m.histogramBuckets
	}
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.metricPrefix + name,
		Help: help, ConstLabels: m.constLabels, Buckets: buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.calculations = auto.NewCounterVec(
		m.counter("calculations_total", "Calculations by kind and outcome"),
		[]string{"kind", "outcome"},
	)
	m.calculationLatency = auto.NewHistogramVec(
		m.histogram("calculation_latency_milliseconds", "Calculation latency in milliseconds", nil),
		[]string{"kind"},
	)
	m.careerYears = auto.NewHistogram(
		m.histogram("career_years", "Number of simulated years per impact calculation",
			[]float64{1, 2, 5, 10, 15, 20, 30, 40, 50}),
	)
	m.sectorFallbacks = auto.NewCounter(
		m.counter("sector_fallbacks_total", "Industry labels resolved to the national average"),
	)
	m.roleFallbacks = auto.NewCounter(
		m.counter("role_fallbacks_total", "Declared roles unknown to their sector"),
	)
	m.deflatorMissing = auto.NewCounter(
		m.counter("deflator_missing_years_total", "Years left in nominal dollars for lack of a price index"),
	)
	m.ceilingCapped = auto.NewCounter(
		m.counter("ceiling_capped_years_total", "Years whose fair value was capped by the value-added ceiling"),
	)

	m.cpiSource = auto.NewCounterVec(
		m.counter("cpi_source_total", "Price index lookups by source"),
		[]string{"source"},
	)
	m.cpiFetchLatency = auto.NewHistogram(
		m.histogram("cpi_fetch_latency_milliseconds", "Live CPI fetch latency in milliseconds",
			[]float64{10, 50, 100, 250, 500, 1000, 2500, 5000}),
	)
	m.cacheLookups = auto.NewCounterVec(
		m.counter("median_cache_lookups_total", "Market median cache lookups by result"),
		[]string{"result"},
	)
	m.cacheSize = auto.NewGauge(
		m.gauge("median_cache_entries", "Entries in the market median cache"),
	)

	m.batchJobs = auto.NewCounterVec(
		m.counter("batch_jobs_total", "Batch jobs by outcome"),
		[]string{"outcome"},
	)
	m.batchWorkers = auto.NewGauge(
		m.gauge("batch_workers_active", "Batch workers currently running"),
	)
	m.batchJobsLatency = auto.NewHistogram(
		m.histogram("batch_job_latency_milliseconds", "Batch job latency in milliseconds", nil),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counter("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogram("http_request_duration_seconds", "HTTP request duration in seconds", prometheus.DefBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counter("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counter("errors_by_endpoint_total", "Errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gauge("system_memory_usage_bytes", "Heap memory in use in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gauge("system_goroutine_count", "Number of goroutines"),
	)
}

// RecordCalculation counts one calculation and its latency.
func RecordCalculation(kind, outcome string, latencyMs float64) {
	if !on() {
		return
	}
	mgr().calculations.WithLabelValues(kind, outcome).Inc()
	mgr().calculationLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordCareerYears observes the length of a simulated career.
func RecordCareerYears(years int) {
	if !on() {
		return
	}
	mgr().careerYears.Observe(float64(years))
}

// RecordSectorFallback counts an unknown industry label.
func RecordSectorFallback() {
	if !on() {
		return
	}
	mgr().sectorFallbacks.Inc()
}

// RecordRoleFallback counts an unknown role.
func RecordRoleFallback() {
	if !on() {
		return
	}
	mgr().roleFallbacks.Inc()
}

// RecordDeflatorMissing counts years left nominal.
func RecordDeflatorMissing(years int) {
	if !on() || years <= 0 {
		return
	}
	mgr().deflatorMissing.Add(float64(years))
}

// RecordCeilingCapped counts years capped by the value-added ceiling.
func RecordCeilingCapped(years int) {
	if !on() || years <= 0 {
		return
	}
	mgr().ceilingCapped.Add(float64(years))
}

// RecordCPISource counts a price index lookup by source.
func RecordCPISource(source string) {
	if !on() {
		return
	}
	mgr().cpiSource.WithLabelValues(source).Inc()
}

// RecordCPIFetchLatency observes a live CPI fetch.
func RecordCPIFetchLatency(latencyMs float64) {
	if !on() {
		return
	}
	mgr().cpiFetchLatency.Observe(latencyMs)
}

// RecordCacheLookup counts a median cache hit or miss.
func RecordCacheLookup(hit bool) {
	if !on() {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	mgr().cacheLookups.WithLabelValues(result).Inc()
}

// UpdateCacheSize sets the median cache entry count.
func UpdateCacheSize(size int64) {
	if !on() {
		return
	}
	mgr().cacheSize.Set(float64(size))
}

// RecordBatchJob counts a batch job and its latency.
func RecordBatchJob(outcome string, latencyMs float64) {
	if !on() {
		return
	}
	mgr().batchJobs.WithLabelValues(outcome).Inc()
	mgr().batchJobsLatency.Observe(latencyMs)
}

// UpdateBatchWorkers sets the number of running batch workers.
func UpdateBatchWorkers(count int) {
	if !on() {
		return
	}
	mgr().batchWorkers.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !on() {
		return
	}
	mgr().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !on() {
		return
	}
	mgr().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !on() {
		return
	}
	mgr().errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !on() {
		return
	}
	mgr().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMetrics samples heap usage and goroutine count.
func UpdateSystemMetrics() {
	if !on() {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	mgr().systemMemoryUsage.Set(float64(ms.HeapAlloc))
	mgr().systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
}

// SetEnabled turns recording on or off process-wide.
func SetEnabled(enabled bool) {
	mgr().enabled.Store(enabled)
}

func on() bool { return mgr().enabled.Load() }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return mgr().gatherer
}

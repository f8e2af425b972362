package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "argo_indicators"

// Metrics holds all Prometheus metrics for the indicator engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Calculator metrics
	CalculationsTotal   *prometheus.CounterVec   // labels: indicator, status
	CalculationDuration *prometheus.HistogramVec // labels: indicator
	PointsTotal         *prometheus.CounterVec   // labels: indicator

	// Result cache
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Batch runner
	JobsTotal *prometheus.CounterVec // labels: status

	// WebAssembly host module
	HostCallsTotal *prometheus.CounterVec // labels: function, status
}

// NewMetrics creates the metrics on a private registry, so several instances
// can coexist in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		CalculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Indicator calculations by indicator and outcome",
		}, []string{"indicator", "status"}),
		CalculationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Kernel latency per calculation",
			Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}, []string{"indicator"}),
		PointsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_total",
			Help:      "Input points processed by successful calculations",
		}, []string{"indicator"}),

		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Calculations served from the result cache",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Calculations that had to run a kernel",
		}),

		JobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Batch jobs by outcome",
		}, []string{"status"}),

		HostCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "host_calls_total",
			Help:      "Host ABI calls made by WebAssembly guests",
		}, []string{"function", "status"}),
	}

	m.registry.MustRegister(
		m.CalculationsTotal,
		m.CalculationDuration,
		m.PointsTotal,
		m.CacheHits,
		m.CacheMisses,
		m.JobsTotal,
		m.HostCallsTotal,
		collectors.NewGoCollector(),
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCalculation records one kernel run.
func (m *Metrics) ObserveCalculation(indicator string, points int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	m.CalculationsTotal.WithLabelValues(indicator, status(err)).Inc()

	if err != nil {
		return
	}

	m.CalculationDuration.WithLabelValues(indicator).Observe(elapsed.Seconds())
	m.PointsTotal.WithLabelValues(indicator).Add(float64(points))
}

// ObserveCache records a cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}

	if hit {
		m.CacheHits.Inc()
	} else {
		m.CacheMisses.Inc()
	}
}

// ObserveJob records the outcome of a batch job ("ok", "error" or "skipped").
func (m *Metrics) ObserveJob(outcome string) {
	if m == nil {
		return
	}

	m.JobsTotal.WithLabelValues(outcome).Inc()
}

// ObserveHostCall records one host function invocation.
func (m *Metrics) ObserveHostCall(function string, err error) {
	if m == nil {
		return
	}

	m.HostCallsTotal.WithLabelValues(function, status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	barsIngested       prometheus.Counter
	barsStored         prometheus.Gauge
	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
	signalsGenerated   *prometheus.CounterVec
	snapshotsWritten   prometheus.Counter
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.barsIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "finsig_bars_ingested_total",
			Help: "Total number of OHLCV bars ingested",
		},
	)
	r.barsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "finsig_bars_stored",
			Help: "Number of bars currently in the store",
		},
	)
	r.evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finsig_evaluations_total",
			Help: "Total number of strategy evaluations",
		},
		[]string{"status"},
	)
	r.evaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "finsig_evaluation_duration_seconds",
			Help:    "Strategy evaluation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.signalsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finsig_signals_generated_total",
			Help: "Total number of trading signals generated",
		},
		[]string{"kind"},
	)
	r.snapshotsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "finsig_snapshots_written_total",
			Help: "Total number of dataset snapshots archived",
		},
	)

	reg.MustRegister(r.barsIngested)
	reg.MustRegister(r.barsStored)
	reg.MustRegister(r.evaluationsTotal)
	reg.MustRegister(r.evaluationDuration)
	reg.MustRegister(r.signalsGenerated)
	reg.MustRegister(r.snapshotsWritten)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordBarsIngested records newly ingested bars.
func (r *Registry) RecordBarsIngested(count int) {
	r.barsIngested.Add(float64(count))
}

// SetBarsStored sets the current size of the bar store.
func (r *Registry) SetBarsStored(count int) {
	r.barsStored.Set(float64(count))
}

// RecordEvaluation records a strategy evaluation completion.
func (r *Registry) RecordEvaluation(status string, duration float64) {
	r.evaluationsTotal.WithLabelValues(status).Inc()
	r.evaluationDuration.Observe(duration)
}

// RecordSignal records a generated signal.
func (r *Registry) RecordSignal(kind string) {
	r.signalsGenerated.WithLabelValues(kind).Inc()
}

// RecordSnapshot records an archived dataset snapshot.
func (r *Registry) RecordSnapshot() {
	r.snapshotsWritten.Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}

// Package metrics exposes Prometheus collectors for the HTTP layer, grocery
// list generation and database snapshots.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flexidiet"

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	listsGeneratedTotal   prometheus.Counter
	listGenerateDuration  prometheus.Histogram
	listItems             prometheus.Histogram
	ingredientLookupsMiss prometheus.Counter

	snapshotsTotal    *prometheus.CounterVec
	snapshotSizeBytes prometheus.Gauge
}

// New registers all collectors on a fresh registry, plus the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		listsGeneratedTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "grocery_lists_generated_total",
				Help:      "Total number of grocery lists generated",
			},
		),
		listGenerateDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "grocery_list_generate_duration_seconds",
				Help:      "Time spent consolidating recipes into a grocery list",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
		listItems: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "grocery_list_items",
				Help:      "Number of consolidated items per generated list",
				Buckets:   prometheus.LinearBuckets(0, 10, 10),
			},
		),
		ingredientLookupsMiss: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingredient_verification_misses_total",
				Help:      "Ingredient names not found in the food catalog",
			},
		),
		snapshotsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshots_total",
				Help:      "Database snapshots by outcome",
			},
			[]string{"status"},
		),
		snapshotSizeBytes: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "snapshot_last_size_bytes",
				Help:      "Size of the last completed snapshot",
			},
		),
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ListGenerated(items int, d time.Duration) {
	if m == nil {
		return
	}
	m.listsGeneratedTotal.Inc()
	m.listGenerateDuration.Observe(d.Seconds())
	m.listItems.Observe(float64(items))
}

func (m *Metrics) VerificationMisses(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ingredientLookupsMiss.Add(float64(n))
}

func (m *Metrics) SnapshotFinished(status string, sizeBytes int64) {
	if m == nil {
		return
	}
	m.snapshotsTotal.WithLabelValues(status).Inc()
	if sizeBytes > 0 {
		m.snapshotSizeBytes.Set(float64(sizeBytes))
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

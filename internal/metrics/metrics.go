// Package metrics exposes analysis counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "feedback"

// Recorder receives analysis events.
type Recorder interface {
	AnalysisCompleted(path string, d time.Duration)
	PrimaryFailed(reason string)
	RecordsClassified(sentiment string, n int)
}

// NoOp discards everything.
type NoOp struct{}

func (NoOp) AnalysisCompleted(string, time.Duration) {}
func (NoOp) PrimaryFailed(string) {}
func (NoOp) RecordsClassified(string, int) {}

// Metrics holds the Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	PrimaryFailures  *prometheus.CounterVec
	RecordsTotal     *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed analyses by classification path",
		}, []string{"path"}),
		PrimaryFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "primary_failures_total",
			Help:      "Model classification failures that fell back to the heuristic path",
		}, []string{"reason"}),
		RecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_classified_total",
			Help:      "Classified feedback records by sentiment",
		}, []string{"sentiment"}),
		AnalysisDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one analysis",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"path"}),
	}
}

// Handler serves the registry for /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) AnalysisCompleted(path string, d time.Duration) {
	m.AnalysesTotal.WithLabelValues(path).Inc()
	m.AnalysisDuration.WithLabelValues(path).Observe(d.Seconds())
}

func (m *Metrics) PrimaryFailed(reason string) {
	m.PrimaryFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordsClassified(sentiment string, n int) {
	if n > 0 {
		m.RecordsTotal.WithLabelValues(sentiment).Add(float64(n))
	}
}

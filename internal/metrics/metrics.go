package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "insightdesk"

// Metrics groups the application collectors.
type Metrics struct {
	FeedbackLabeled   *prometheus.CounterVec
	ScenarioBuilds    *prometheus.CounterVec
	ScenarioCacheHits prometheus.Counter
	UploadWarnings    *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// New creates and registers the application collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FeedbackLabeled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_labeled_total",
			Help:      "Feedback records labeled, by sentiment.",
		}, []string{"label"}),
		ScenarioBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenario_builds_total",
			Help:      "Scenario table requests, by result.",
		}, []string{"result"}),
		ScenarioCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenario_cache_hits_total",
			Help:      "Scenario tables served from the last snapshot.",
		}),
		UploadWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_warnings_total",
			Help:      "Optional uploads that could not be read.",
		}, []string{"kind"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.FeedbackLabeled, m.ScenarioBuilds, m.ScenarioCacheHits, m.UploadWarnings, m.RequestDuration)
	return m
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

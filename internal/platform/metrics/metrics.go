package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	pendingRequests *prometheus.GaugeVec
	emailJobsTotal  *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hrportal_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hrportal_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		pendingRequests: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hrportal_pending_requests",
			Help: "Requests currently awaiting review, by kind.",
		}, []string{"kind"}),
		emailJobsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hrportal_email_jobs_total",
			Help: "Email jobs by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) RecordRequest(method, route string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) SetPending(kind string, n int) {
	m.pendingRequests.WithLabelValues(kind).Set(float64(n))
}

func (m *Metrics) EmailJob(outcome string) {
	m.emailJobsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the scrape endpoint for this registry only.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package metrics holds the Prometheus collectors for the club directory API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "poker_club"

// Metrics groups the collectors registered on one registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	listedClubs    prometheus.Histogram
	listedRatio    prometheus.Histogram
	liveUpdates    prometheus.Counter
	loginsRejected *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		listedClubs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "directory_listed_clubs",
			Help:      "Number of clubs returned by a directory listing after filtering.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		listedRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "directory_match_ratio",
			Help:      "Share of approved clubs that survived the filters of a listing.",
			Buckets:   []float64{0.1, 0.25, 0.5, 0.75, 1},
		}),
		liveUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_updates_total",
			Help:      "Live status updates published by clubs.",
		}),
		loginsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "club_logins_rejected_total",
			Help:      "Rejected club logins by reason.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.listedClubs,
		m.listedRatio,
		m.liveUpdates,
		m.loginsRejected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveListing records one directory listing of total clubs narrowed to matched.
func (m *Metrics) ObserveListing(total, matched int) {
	if m == nil {
		return
	}
	m.listedClubs.Observe(float64(matched))
	if total > 0 {
		m.listedRatio.Observe(float64(matched) / float64(total))
	}
}

func (m *Metrics) IncLiveUpdate() {
	if m == nil {
		return
	}
	m.liveUpdates.Inc()
}

func (m *Metrics) IncLoginRejected(reason string) {
	if m == nil {
		return
	}
	m.loginsRejected.WithLabelValues(reason).Inc()
}

// Middleware records request counts and latency keyed by the matched route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

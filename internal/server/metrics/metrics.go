// Package metrics provides prometheus collectors for HTTP requests, gateway calls and uploads.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"strconv"
	"time"
)

// Collector owns a private registry so several collectors can coexist (e.g., in tests).
type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	gatewayRequestsTotal   *prometheus.CounterVec
	gatewayRequestDuration *prometheus.HistogramVec

	uploadBytes        *prometheus.HistogramVec
	uploadCleanupTotal *prometheus.CounterVec
}

// NewCollector creates a Collector whose metric names are prefixed with namespace.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	c := &Collector{registry: reg}

	c.httpRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	c.httpRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	c.gatewayRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_requests_total",
			Help:      "Total number of generative model calls",
		},
		[]string{"provider", "kind", "status"},
	)
	c.gatewayRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Generative model call duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider", "kind"},
	)
	c.uploadBytes = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_size_bytes",
			Help:      "Size of transient uploads in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		},
		[]string{"field"},
	)
	c.uploadCleanupTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_cleanup_total",
			Help:      "Transient upload deletions by result",
		},
		[]string{"result"},
	)

	return c
}

// RecordHTTPRequest records one served HTTP request.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGatewayCall records one call to the generative model.
func (c *Collector) RecordGatewayCall(provider, kind string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.gatewayRequestsTotal.WithLabelValues(provider, kind, status).Inc()
	c.gatewayRequestDuration.WithLabelValues(provider, kind).Observe(duration.Seconds())
}

// RecordUpload records the size of a stored upload.
func (c *Collector) RecordUpload(field string, size int64) {
	c.uploadBytes.WithLabelValues(field).Observe(float64(size))
}

// RecordCleanup records the outcome of an upload deletion: deleted, missing or failed.
func (c *Collector) RecordCleanup(result string) {
	c.uploadCleanupTotal.WithLabelValues(result).Inc()
}

// Handler exposes the collector's registry in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

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

const namespace = "eshop"

// ServerMetrics holds the HTTP request collectors of one service.
type ServerMetrics struct {
	registry  *prometheus.Registry
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewServerMetrics registers request collectors plus the Go and process collectors on a private registry.
func NewServerMetrics(service string) *ServerMetrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler", "method"})

	registry.MustRegister(
		requests,
		latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &ServerMetrics{registry: registry, Requests: requests, LatencyMS: latency}
}

// Middleware records one request sample per handled route. Unmatched routes are labelled "unmatched".
func (m *ServerMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		method := c.Request.Method
		m.Requests.WithLabelValues(handler, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler, method).Observe(float64(time.Since(start).Microseconds()) / 1000)
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

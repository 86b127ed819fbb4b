package report

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides reporting service metrics
type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// MakeCollector builds Collector with metrics registered under namespace
func MakeCollector(namespace string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"endpoint"},
		),
	}
}

// observe records one served request. Safe to call on a nil Collector so
// handlers can be exercised without a metrics registry.
func (c *Collector) observe(endpoint string, status int, started time.Time) {
	if c == nil {
		return
	}
	c.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	c.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}

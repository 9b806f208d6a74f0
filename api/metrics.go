package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mint"

type Metrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	proofs          *prometheus.CounterVec
	proveDuration   prometheus.Histogram
	verifications   *prometheus.CounterVec
	verifyDuration  prometheus.Histogram
}

// NewMetrics registers the service metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "path"},
		),
		proofs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "proofs_total",
				Help:      "Proof generation attempts by result",
			},
			[]string{"result"},
		),
		proveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "prove_duration_seconds",
				Help:      "Time spent generating a proof",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
		verifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verifications_total",
				Help:      "Proof verifications by result",
			},
			[]string{"result"},
		),
		verifyDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "verify_duration_seconds",
				Help:      "Time spent verifying a proof",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
			},
		),
	}
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.requestCounter.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"method", "endpoint"},
	)

	SessionsOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_sessions_opened_total",
			Help: "Catalog tiles opened",
		},
		[]string{"exercise"},
	)

	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Submit attempts by outcome (graded or incomplete)",
		},
		[]string{"exercise", "outcome"},
	)

	Scores = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quiz_score_percent",
			Help:    "Scores of graded submissions",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"exercise"},
	)

	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_analytics_events_total",
			Help: "Analytics events handed to a sink, by result",
		},
		[]string{"sink", "event_name", "result"},
	)

	EventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_analytics_events_dropped_total",
			Help: "Analytics events dropped because the publish buffer was full",
		},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry. Safe to call more
// than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			SessionsOpened,
			Submissions,
			Scores,
			EventsPublished,
			EventsDropped,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

package monitoring

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
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	ModulesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "humaniq_modules_completed_total",
		Help: "Module completion calls that added a new module",
	})

	EvaluationsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "humaniq_evaluations_submitted_total",
			Help: "Final evaluation attempts by result",
		},
		[]string{"result"},
	)

	CertificatesIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "humaniq_certificates_issued_total",
		Help: "Certificates minted",
	})

	CertificateValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "humaniq_certificate_validations_total",
			Help: "Public certificate lookups by outcome",
		},
		[]string{"outcome"},
	)

	// FollowUpFailures counts failed auto-lock attempts. stage is "queued" or "dead_letter".
	FollowUpFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "humaniq_followup_failures_total",
			Help: "Failed availability auto-lock follow-ups",
		},
		[]string{"stage"},
	)

	AvailabilityReleased = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "humaniq_availability_released_total",
		Help: "Courses re-released by the scheduler",
	})
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			ModulesCompleted,
			EvaluationsSubmitted,
			CertificatesIssued,
			CertificateValidations,
			FollowUpFailures,
			AvailabilityReleased,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

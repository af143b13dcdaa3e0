package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shido"

// Outcome labels for completion attempts.
const (
	OutcomeRecorded         = "recorded"
	OutcomeAlreadyCompleted = "already_completed"
	OutcomeNotFound         = "not_found"
	OutcomeError            = "error"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	completions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "completions_total",
			Help:      "Habit completion attempts by habit type and outcome.",
		},
		[]string{"habit_type", "outcome"},
	)

	pointsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "points_applied_total",
			Help:      "Absolute points applied by recorded completions.",
		},
		[]string{"habit_type"},
	)

	goalAdjustments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "goals",
			Name:      "adjustments_total",
			Help:      "Goal point adjustments by result.",
		},
		[]string{"result"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route"},
	)
)

func init() {
	Registry.MustRegister(
		completions,
		pointsApplied,
		goalAdjustments,
		httpRequests,
		httpDuration,
	)
}

// Handler exposes the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordCompletion(habitType, outcome string, points int) {
	completions.WithLabelValues(habitType, outcome).Inc()
	if outcome == OutcomeRecorded {
		if points < 0 {
			points = -points
		}
		pointsApplied.WithLabelValues(habitType).Add(float64(points))
	}
}

// RecordGoalAdjustment counts committed adjustments; result is "applied" or
// "skipped" (goal gone).
func RecordGoalAdjustment(result string) {
	goalAdjustments.WithLabelValues(result).Inc()
}

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Package metrics exposes the prometheus collectors shared by the decoder,
// dispatcher, analytics providers and the mock API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sdui"

var (
	// Registry holds the go-sdui collectors.
	Registry = prometheus.NewRegistry()

	actionsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_dispatched_total",
			Help:      "Total number of actions dispatched.",
		},
		[]string{"type", "event"},
	)

	actionPanics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_panics_total",
			Help:      "Total number of recovered action handler panics.",
		},
		[]string{"type"},
	)

	unknownVariants = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_variants_total",
			Help:      "Total number of nodes decoded into an unknown variant.",
		},
		[]string{"kind"},
	)

	decodeErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Total number of screen payloads rejected by the decoder.",
		},
	)

	analyticsRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analytics_records_total",
			Help:      "Total number of analytics records created.",
		},
		[]string{"type"},
	)

	imageLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "image",
			Name:      "loads_total",
			Help:      "Total number of remote image loads.",
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
		[]string{"method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method"},
	)
)

func init() {
	Registry.MustRegister(
		actionsDispatched,
		actionPanics,
		unknownVariants,
		decodeErrors,
		analyticsRecords,
		imageLoads,
		httpRequests,
		httpDuration,
	)
}

// Handler returns an HTTP handler exposing the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordActionDispatched counts one executed action.
func RecordActionDispatched(actionType, event string) {
	actionsDispatched.WithLabelValues(actionType, event).Inc()
}

// RecordActionPanic counts one recovered handler panic.
func RecordActionPanic(actionType string) {
	actionPanics.WithLabelValues(actionType).Inc()
}

// RecordUnknownVariant counts a node decoded into the unknown fallback. kind
// is "component" or "action".
func RecordUnknownVariant(kind string) {
	unknownVariants.WithLabelValues(kind).Inc()
}

// RecordDecodeError counts a rejected payload.
func RecordDecodeError() {
	decodeErrors.Inc()
}

// RecordAnalytics counts a created analytics record.
func RecordAnalytics(recordType string) {
	analyticsRecords.WithLabelValues(recordType).Inc()
}

// RecordImageLoad counts a remote image load outcome.
func RecordImageLoad(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	imageLoads.WithLabelValues(result).Inc()
}

// InstrumentHandler wraps next with request count and duration collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		httpRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

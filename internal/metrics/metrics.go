package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RentalMetrics holds the Prometheus metrics for the reservation engine.
type RentalMetrics struct {
	BookingsTotal    prometheus.Counter
	BookingConflicts prometheus.Counter
	SlotClaimsTotal  *prometheus.CounterVec
	ApprovalsTotal   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewRentalMetrics initializes and registers the Prometheus metrics.
func NewRentalMetrics() *RentalMetrics {
	return &RentalMetrics{
		BookingsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "rentals",
			Subsystem: "booking",
			Name:      "bookings_total",
			Help:      "Total number of tenancies successfully booked.",
		}),
		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "rentals",
			Subsystem: "booking",
			Name:      "conflicts_total",
			Help:      "Total number of bookings rejected for overlapping an existing tenancy.",
		}),
		SlotClaimsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentals",
			Subsystem: "viewing",
			Name:      "slot_claims_total",
			Help:      "Total number of viewing slot claim attempts by outcome.",
		}, []string{"outcome"}), // outcome: won, lost
		ApprovalsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentals",
			Subsystem: "listing",
			Name:      "reviews_total",
			Help:      "Total number of listing reviews by decision.",
		}, []string{"decision"}), // decision: approved, rejected
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rentals",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// InstrumentHandler wraps an http.Handler with request duration recording.
func (m *RentalMetrics) InstrumentHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.RequestDuration.
			WithLabelValues(route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

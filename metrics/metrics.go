package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AllocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocator_allocations_total",
			Help: "Total allocation attempts",
		},
		[]string{"outcome"}, // success|conflict|no_candidates|validation|failure
	)

	AllocationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "allocator_allocation_duration_seconds",
			Help:    "Duration of allocation processing",
			Buckets: prometheus.DefBuckets,
		},
	)

	DelayLookupFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "allocator_delay_lookup_failures_total",
			Help: "Travel delay lookups that failed or timed out",
		},
	)

	ReservationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocator_reservation_attempts_total",
			Help: "Bed reservation attempts by result",
		},
		[]string{"result"}, // success|failure|error
	)
)

func init() {
	prometheus.MustRegister(AllocationsTotal)
	prometheus.MustRegister(AllocationDuration)
	prometheus.MustRegister(DelayLookupFailures)
	prometheus.MustRegister(ReservationAttempts)
}

func Register(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.Handler())
}

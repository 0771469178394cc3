package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors exposed by the planning service.
// It is constructed once at startup and passed to whatever layer emits
// measurements (currently the HTTP handlers).
type Metrics struct {
	PlanRequestsTotal   *prometheus.CounterVec
	PlanDurationSeconds *prometheus.HistogramVec
	RoutesGenerated     prometheus.Histogram
}

// NewMetrics registers the service's collectors against reg and returns the
// handle used to record measurements.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PlanRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "irp_plan_requests_total",
			Help: "Total number of planning requests handled, labeled by outcome.",
		}, []string{"outcome"}),
		PlanDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "irp_plan_duration_seconds",
			Help:    "Wall-clock time spent inside the horizon planner per request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
		RoutesGenerated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "irp_plan_routes_generated",
			Help:    "Number of routes produced per planning request.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
	}

	reg.MustRegister(m.PlanRequestsTotal, m.PlanDurationSeconds, m.RoutesGenerated)
	return m
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the weather engine.
type Metrics struct {
	TransitionsRequested prometheus.Counter
	HopsTraversed        prometheus.Counter
	DegradedTransitions  prometheus.Counter
	SchedulerResamples   prometheus.Counter
	InTransition         prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.TransitionsRequested,
		m.HopsTraversed,
		m.DegradedTransitions,
		m.SchedulerResamples,
		m.InTransition,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// parallel tests do not trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		TransitionsRequested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weathervane",
			Name:      "transitions_requested_total",
			Help:      "State-change requests accepted by the controller.",
		}),
		HopsTraversed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weathervane",
			Name:      "hops_traversed_total",
			Help:      "Individual hops completed while walking transition plans.",
		}),
		DegradedTransitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weathervane",
			Name:      "transitions_degraded_total",
			Help:      "Forbidden pairs that fell back to a direct hop because no route is registered.",
		}),
		SchedulerResamples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weathervane",
			Name:      "scheduler_resamples_total",
			Help:      "Dwell-timer expiries that drew a new target state.",
		}),
		InTransition: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weathervane",
			Name:      "in_transition",
			Help:      "1 while a transition plan is being walked, 0 at steady state.",
		}),
	}
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision module.
type Metrics struct {
	// Component evaluation latencies (compliance, ethics, explanation)
	ComponentLatency *prometheus.HistogramVec

	// Decision outcomes by decision and compliance status
	DecisionOutcome *prometheus.CounterVec

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates a new Metrics instance with all decision module metrics registered.
func New() *Metrics {
	return &Metrics{
		ComponentLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fairgate_decision_component_duration_seconds",
			Help:    "Duration of decision pipeline components",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"component"}), // component: "compliance", "ethics", "explanation"

		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fairgate_decision_outcomes_total",
			Help: "Total decision outcomes by decision and compliance status",
		}, []string{"decision", "compliance_status"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fairgate_decision_evaluate_duration_seconds",
			Help:    "Duration of full decision evaluation including explanation",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
	}
}

// ObserveComponentLatency records the duration of one pipeline component.
func (m *Metrics) ObserveComponentLatency(component string, d time.Duration) {
	if m != nil {
		m.ComponentLatency.WithLabelValues(component).Observe(d.Seconds())
	}
}

// IncrementOutcome records a decision outcome.
func (m *Metrics) IncrementOutcome(decision, complianceStatus string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(decision, complianceStatus).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

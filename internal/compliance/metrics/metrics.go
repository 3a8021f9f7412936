package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the compliance engine's Prometheus collectors.
type Metrics struct {
	Evaluations        prometheus.Counter
	EvaluationFailures prometheus.Counter
	Transitions        *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	Dispatches         *prometheus.CounterVec
	AlertsEmailed      prometheus.Counter
	BatchTravelers     prometheus.Gauge
	ConflictRetries    prometheus.Counter
}

// New creates and registers the collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers on reg; tests pass a fresh prometheus.NewRegistry().
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Evaluations: factory.NewCounter(prometheus.CounterOpts{
			Name: "staywatch_evaluations_total",
			Help: "Total number of traveler evaluations completed",
		}),
		EvaluationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "staywatch_evaluation_failures_total",
			Help: "Total number of traveler evaluations that returned an error",
		}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "staywatch_alert_transitions_total",
			Help: "Alert state transitions by kind",
		}, []string{"transition"}),
		EvaluationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "staywatch_evaluation_duration_seconds",
			Help:    "Time taken to evaluate one traveler",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		Dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "staywatch_dispatch_cycles_total",
			Help: "Dispatch cycles by outcome",
		}, []string{"outcome"}),
		AlertsEmailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "staywatch_alerts_emailed_total",
			Help: "Total number of alerts marked emailed after a successful send",
		}),
		BatchTravelers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "staywatch_batch_travelers",
			Help: "Number of travelers in the most recent batch evaluation",
		}),
		ConflictRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "staywatch_alert_conflict_retries_total",
			Help: "Evaluations retried after the store rejected a concurrent write",
		}),
	}
}

// ObserveEvaluation records one evaluation outcome. Safe on a nil receiver.
func (m *Metrics) ObserveEvaluation(transition string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.EvaluationDuration.Observe(d.Seconds())
	if err != nil {
		m.EvaluationFailures.Inc()
		return
	}
	m.Evaluations.Inc()
	m.Transitions.WithLabelValues(transition).Inc()
}

func (m *Metrics) IncrementConflictRetries() {
	if m == nil {
		return
	}
	m.ConflictRetries.Inc()
}

func (m *Metrics) SetBatchTravelers(n int) {
	if m == nil {
		return
	}
	m.BatchTravelers.Set(float64(n))
}

// ObserveDispatch records a dispatch cycle outcome: sent, empty, failed or skipped.
func (m *Metrics) ObserveDispatch(outcome string, marked int) {
	if m == nil {
		return
	}
	m.Dispatches.WithLabelValues(outcome).Inc()
	m.AlertsEmailed.Add(float64(marked))
}

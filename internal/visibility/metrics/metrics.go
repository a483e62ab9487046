package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for profile visibility resolution and view
// recording. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Redaction decisions by the rule that produced them
	Decisions *prometheus.CounterVec

	// Fact lookups that failed closed, by fact and cause
	FactFailures *prometheus.CounterVec

	// Fact lookup latency by fact
	FactLatency *prometheus.HistogramVec

	// End-to-end resolution latency by surface
	ResolveLatency *prometheus.HistogramVec

	// View recording outcomes: counted, deduped, skipped_owner, skipped_bot, failed
	Views *prometheus.CounterVec
}

// New registers the visibility metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "talentnet_visibility_decisions_total",
			Help: "Total redaction decisions by precedence rule",
		}, []string{"rule"}),

		FactFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "talentnet_visibility_fact_failures_total",
			Help: "Fact lookups that failed closed, by fact and cause",
		}, []string{"fact", "cause"}), // cause: "error", "circuit_open"

		FactLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talentnet_visibility_fact_duration_seconds",
			Help:    "Duration of fact lookups by fact",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"fact"}),

		ResolveLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talentnet_visibility_resolve_duration_seconds",
			Help:    "Duration of profile resolution including fact lookups",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"surface"}),

		Views: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "talentnet_profile_views_total",
			Help: "Profile view recording outcomes",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncrementDecision(rule string) {
	if m != nil {
		m.Decisions.WithLabelValues(rule).Inc()
	}
}

func (m *Metrics) IncrementFactFailure(fact, cause string) {
	if m != nil {
		m.FactFailures.WithLabelValues(fact, cause).Inc()
	}
}

func (m *Metrics) ObserveFactLatency(fact string, d time.Duration) {
	if m != nil {
		m.FactLatency.WithLabelValues(fact).Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveResolveLatency(surface string, d time.Duration) {
	if m != nil {
		m.ResolveLatency.WithLabelValues(surface).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementView(result string) {
	if m != nil {
		m.Views.WithLabelValues(result).Inc()
	}
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Interactions        *prometheus.CounterVec
	Recommendations     *prometheus.CounterVec
	InteractionDuration prometheus.Histogram
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on the given registerer; tests pass a
// fresh registry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Interactions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "targetonchain_frame_interactions_total",
			Help: "Frame interactions by outcome",
		}, []string{"outcome"}),
		Recommendations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "targetonchain_recommendations_total",
			Help: "Recommendations by criteria and rule (criteria match or random fallback)",
		}, []string{"criteria", "rule"}),
		InteractionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "targetonchain_frame_interaction_duration_seconds",
			Help:    "End-to-end duration of frame interaction handling",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) IncrementInteraction(outcome string) {
	m.Interactions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementRecommendation(criteria, rule string) {
	m.Recommendations.WithLabelValues(criteria, rule).Inc()
}

func (m *Metrics) ObserveInteraction(start time.Time) {
	m.InteractionDuration.Observe(time.Since(start).Seconds())
}

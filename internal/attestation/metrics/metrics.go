package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FetchDuration  prometheus.Histogram
	UpstreamErrors prometheus.Counter
	BreakerOpened  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		FetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "targetonchain_attestation_fetch_duration_seconds",
			Help:    "Duration of attestation index queries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		UpstreamErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "targetonchain_attestation_upstream_errors_total",
			Help: "Total attestation index call failures (network or malformed body)",
		}),
		BreakerOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "targetonchain_attestation_breaker_opened_total",
			Help: "Times the attestation index circuit breaker tripped open",
		}),
	}
}

func (m *Metrics) ObserveFetch(start time.Time) {
	m.FetchDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementUpstreamError() {
	m.UpstreamErrors.Inc()
}

func (m *Metrics) IncrementBreakerOpened() {
	m.BreakerOpened.Inc()
}

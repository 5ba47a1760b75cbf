package checkout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSucceeded        = "succeeded"
	outcomeFailed           = "failed"
	outcomeNotAuthenticated = "not_authenticated"
)

type Metrics struct {
	checkouts  *prometheus.CounterVec
	submission *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		checkouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "checkout_total",
			Help:      "Number of checkouts by outcome.",
		}, []string{"outcome"}),
		submission: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storefront",
			Name:      "checkout_submission_duration_seconds",
			Help:      "Duration of order submissions.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observe(outcome string, seconds float64) {
	m.checkouts.WithLabelValues(outcome).Inc()
	if outcome != outcomeNotAuthenticated {
		m.submission.WithLabelValues(outcome).Observe(seconds)
	}
}

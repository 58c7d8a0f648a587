package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
)

const resultOK = "ok"

// Metrics counts service requests by outcome and times simulations.
type Metrics struct {
	requests           *prometheus.CounterVec
	simulationDuration *prometheus.HistogramVec
}

// NewMetrics creates the service collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vault_quoter_requests_total",
				Help: "Total number of quote and build requests by operation and result",
			},
			[]string{"operation", "result"},
		),
		simulationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vault_quoter_simulation_duration_seconds",
				Help:    "Duration of query simulations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(m.requests, m.simulationDuration)

	return m
}

func (m *Metrics) request(operation string, err error) {
	result := resultOK
	if err != nil {
		result = apperrors.Kind(err)
	}
	m.requests.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) simulation(operation string, start time.Time) {
	m.simulationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

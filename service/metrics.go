package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const metricsNamespace = "election"

// Metrics counts registry operations. Every instance owns its own
// prometheus registry.
type Metrics struct {
	registry              *prometheus.Registry
	Registrations         *prometheus.CounterVec
	RegistrationsRejected *prometheus.CounterVec
	VotesCast             prometheus.Counter
	VotesRejected         *prometheus.CounterVec
	Clears                *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "registrations_total",
				Help:      "Total number of successful registrations",
			},
			[]string{"kind"},
		),
		RegistrationsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "registrations_rejected_total",
				Help:      "Total number of rejected registrations",
			},
			[]string{"kind"},
		),
		VotesCast: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "votes_cast_total",
				Help:      "Total number of counted votes",
			},
		),
		VotesRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "votes_rejected_total",
				Help:      "Total number of rejected votes by cause",
			},
			[]string{"cause"},
		),
		Clears: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "clears_total",
				Help:      "Total number of bulk clear operations",
			},
			[]string{"target"},
		),
	}
}

func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}

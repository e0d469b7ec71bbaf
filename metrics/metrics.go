// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels
const (
	OpFetch  = "fetch"
	OpSubmit = "submit"
)

// Result labels
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the Prometheus collectors for one voting session.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlight        *prometheus.GaugeVec
	VoteChanges     *prometheus.CounterVec
	PersistFailures prometheus.Counter
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quickly_vote_requests_total",
				Help: "Polling API requests issued by the session controller, by operation and result.",
			},
			[]string{"op", "result"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quickly_vote_request_duration_seconds",
				Help:    "Duration of question fetches and vote submissions in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quickly_vote_requests_in_flight",
				Help: "Outstanding polling API requests, by operation.",
			},
			[]string{"op"},
		),
		VoteChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quickly_vote_vote_changes_total",
				Help: "Vote change intents, by whether a question matched.",
			},
			[]string{"changed"},
		),
		PersistFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quickly_vote_persist_failures_total",
				Help: "Failed writes of the vote collection to the local store.",
			},
		),
	}

	reg.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.InFlight,
		m.VoteChanges,
		m.PersistFailures,
	)
	return m
}

// Started marks a request as in flight
func (m *Metrics) Started(op string) {
	if m == nil {
		return
	}
	m.InFlight.WithLabelValues(op).Inc()
}

// Finished records the outcome of a request started with Started
func (m *Metrics) Finished(op string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.InFlight.WithLabelValues(op).Dec()
	m.Requests.WithLabelValues(op, result).Inc()
	m.RequestDuration.WithLabelValues(op).Observe(d.Seconds())
}

// VoteChanged records a vote change intent
func (m *Metrics) VoteChanged(changed bool) {
	if m == nil {
		return
	}
	label := "false"
	if changed {
		label = "true"
	}
	m.VoteChanges.WithLabelValues(label).Inc()
}

// PersistFailed records a failed store write
func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

// Package metrics defines the Prometheus collectors recorded by the
// authentication services and the gate.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK        = "ok"
	ResultDuplicate = "duplicate"
	ResultInvalid   = "invalid"
	ResultRejected  = "rejected"
	ResultFault     = "fault"
)

// Metrics holds the chronos collectors. All methods are safe on a nil
// receiver so services can be built without metrics in tests.
type Metrics struct {
	SignupsTotal       *prometheus.CounterVec
	LoginsTotal        *prometheus.CounterVec
	GateDecisionsTotal *prometheus.CounterVec
	HashDuration       *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a private registry with the Go and process collectors and
// registers the chronos metrics on it.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := NewMetrics(registry)
	m.registry = registry

	return m
}

// NewMetrics creates the chronos collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SignupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chronos_signups_total",
				Help: "Total number of signup attempts by result",
			},
			[]string{"result"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chronos_logins_total",
				Help: "Total number of credential checks by result",
			},
			[]string{"result"},
		),
		GateDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chronos_gate_decisions_total",
				Help: "Total number of authorization gate decisions",
			},
			[]string{"decision"},
		),
		HashDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chronos_password_hash_duration_seconds",
				Help:    "Time spent in bcrypt by operation",
				Buckets: []float64{.01, .025, .05, .1, .2, .3, .5, 1, 2},
			},
			[]string{"op"},
		),
	}

	reg.MustRegister(m.SignupsTotal, m.LoginsTotal, m.GateDecisionsTotal, m.HashDuration)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) RecordSignup(result string) {
	if m == nil {
		return
	}
	m.SignupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}

// RecordGateDecision counts an allow or a redirect.
func (m *Metrics) RecordGateDecision(allowed bool) {
	if m == nil {
		return
	}
	decision := "redirect"
	if allowed {
		decision = "allow"
	}
	m.GateDecisionsTotal.WithLabelValues(decision).Inc()
}

// ObserveHash implements crypto.DurationObserver.
func (m *Metrics) ObserveHash(op string, d time.Duration) {
	if m == nil {
		return
	}
	m.HashDuration.WithLabelValues(op).Observe(d.Seconds())
}

// Package metrics holds the prometheus instruments exported on /metrics
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every instrument name
const Namespace = "taxkaki"

// Metrics groups all instruments used by the service
// A nil *Metrics is valid and records nothing
type Metrics struct {
	reg *prometheus.Registry

	AuthOutcomes      *prometheus.CounterVec
	HistoryOps        *prometheus.CounterVec
	CompletionLatency prometheus.Histogram
	CompletionErrors  prometheus.Counter
}

// New registers the instruments on a fresh registry together with the go and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		AuthOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "auth_outcomes_total",
			Help:      "Authentication attempts by outcome.",
		}, []string{"outcome"}),
		HistoryOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "history_ops_total",
			Help:      "Chat log operations by op and result.",
		}, []string{"op", "result"}),
		CompletionLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "completion_latency_ms",
			Help:      "Language model call latency in milliseconds.",
			Buckets:   []float64{250, 500, 1000, 2000, 4000, 8000, 15000, 30000, 60000},
		}),
		CompletionErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "completion_errors_total",
			Help:      "Failed or malformed language model calls.",
		}),
	}
}

// Auth counts one authentication outcome
func (m *Metrics) Auth(outcome string) {
	if m == nil {
		return
	}
	m.AuthOutcomes.WithLabelValues(outcome).Inc()
}

// History counts one chat log operation, op is "append" or "read"
func (m *Metrics) History(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.HistoryOps.WithLabelValues(op, result).Inc()
}

// Completion records the latency of one model call and counts failures
func (m *Metrics) Completion(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.CompletionLatency.Observe(float64(d.Milliseconds()))
	if err != nil {
		m.CompletionErrors.Inc()
	}
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Chat turn paths.
const (
	PathProvider  = "provider"
	PathDegraded  = "degraded"
	PathHeuristic = "heuristic"
)

// Provider attempt outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeUnparsable = "unparsable"
	OutcomeError      = "error"
)

// Metrics groups the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	chatTurns        *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	providerAttempts *prometheus.CounterVec
	recommendations  prometheus.Counter
	catalogCards     *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		chatTurns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardxpert",
			Name:      "chat_turns_total",
			Help:      "Chat turns served, by resolution path.",
		}, []string{"path"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cardxpert",
			Name:      "provider_latency_seconds",
			Help:      "Latency of completion provider calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"status"}),
		providerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardxpert",
			Name:      "provider_attempts_total",
			Help:      "Completion provider attempts, by outcome.",
		}, []string{"outcome"}),
		recommendations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cardxpert",
			Name:      "recommendations_total",
			Help:      "Scored cards returned to clients.",
		}),
		catalogCards: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cardxpert",
			Name:      "catalog_cards",
			Help:      "Cards in the loaded catalog, by source.",
		}, []string{"source"}),
	}
	if reg != nil {
		reg.MustRegister(m.chatTurns, m.providerLatency, m.providerAttempts, m.recommendations, m.catalogCards)
	}
	return m
}

func (m *Metrics) ChatTurn(path string) {
	if m == nil {
		return
	}
	m.chatTurns.WithLabelValues(path).Inc()
}

// ProviderAttempt records one completion call.
func (m *Metrics) ProviderAttempt(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if outcome == OutcomeError {
		status = "error"
	}
	m.providerLatency.WithLabelValues(status).Observe(elapsed.Seconds())
	m.providerAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Recommendations(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recommendations.Add(float64(n))
}

// CatalogLoaded matches the catalog.WithLoadHook signature.
func (m *Metrics) CatalogLoaded(source string, count int) {
	if m == nil {
		return
	}
	m.catalogCards.WithLabelValues(source).Set(float64(count))
}

package observability

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	registry     *prometheus.Registry
	loads        *prometheus.CounterVec
	verdicts     *prometheus.CounterVec
	wordDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_definitions_loaded_total",
				Help: "Total number of definition loads, by outcome",
			},
			[]string{"outcome"},
		),
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_verdicts_total",
				Help: "Total number of evaluated words, by verdict",
			},
			[]string{"verdict"},
		),
		wordDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "automata_word_duration_seconds",
				Help:    "Duration of single word evaluations",
				Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
			},
		),
	}
	m.registry.MustRegister(m.loads, m.verdicts, m.wordDuration)
	return m
}

// Registry exposes the underlying registry (e.g. for tests or extra collectors).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record metrics and, if logger is not nil, log events.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLoad: func(ctx context.Context, e *domain.LoadEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.loads.WithLabelValues(outcome).Inc()
			if logger == nil {
				return
			}
			if e.Err != nil {
				logger.WarnContext(ctx, "definition_rejected", "name", e.Name, "error", e.Err)
				return
			}
			logger.InfoContext(ctx, "definition_loaded", "name", e.Name, "states", e.States, "rules", e.Rules)
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			m.verdicts.WithLabelValues(string(e.Result.Verdict)).Inc()
			m.wordDuration.Observe(e.Duration.Seconds())
			if logger != nil {
				logger.DebugContext(ctx, "verdict",
					"word", e.Result.Word,
					"verdict", e.Result.Verdict,
					"reason", e.Result.Reason,
				)
			}
		},
	}
}

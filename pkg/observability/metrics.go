package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/flatexp/pkg/domain"
)

// Namespace prefixes every metric name.
const Namespace = "flatexp"

// Metrics counts builder level transitions and errors.
type Metrics struct {
	opened   *prometheus.CounterVec
	closed   *prometheus.CounterVec
	failures *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

// NewMetrics creates the builder metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		opened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "levels_opened_total",
			Help:      "Total number of builder level contexts opened",
		}, []string{"level"}),
		closed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "levels_closed_total",
			Help:      "Total number of builder level contexts closed, failed closes included",
		}, []string{"level"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "level_close_failures_total",
			Help:      "Total number of builder level contexts whose close failed",
		}, []string{"level"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "builder_errors_total",
			Help:      "Total number of errors returned by builder operations",
		}, []string{"level", "kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.opened, m.closed, m.failures, m.errors)
	}
	return m
}

// Hooks returns builder hooks that record into m.
func (m *Metrics) Hooks() domain.BuilderHooks {
	return domain.BuilderHooks{
		OnOpen: func(e *domain.LevelEvent) {
			m.opened.WithLabelValues(string(e.Level)).Inc()
		},
		OnClose: func(e *domain.LevelEvent) {
			m.closed.WithLabelValues(string(e.Level)).Inc()
			if e.Err != nil {
				m.failures.WithLabelValues(string(e.Level)).Inc()
			}
		},
		OnError: func(e *domain.ErrorEvent) {
			m.errors.WithLabelValues(string(e.Level), e.Kind).Inc()
		},
	}
}

// Collectors returns the underlying collectors, e.g. to register them later.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.opened, m.closed, m.failures, m.errors}
}

// Opened returns the open counter for level.
func (m *Metrics) Opened(level domain.Level) prometheus.Counter {
	return m.opened.WithLabelValues(string(level))
}

// Closed returns the close counter for level.
func (m *Metrics) Closed(level domain.Level) prometheus.Counter {
	return m.closed.WithLabelValues(string(level))
}

// Errors returns the error counter for level and kind.
func (m *Metrics) Errors(level domain.Level, kind string) prometheus.Counter {
	return m.errors.WithLabelValues(string(level), kind)
}

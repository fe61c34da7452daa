package tagscript

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Overrun kinds reported by the metrics collector.
const (
	OverrunKindDepth     = "depth"
	OverrunKindCharLimit = "char_limit"
)

// Metrics collects interpreter counters for a prometheus registry. A nil
// *Metrics is valid and records nothing, so instrumentation stays optional.
type Metrics struct {
	interpretations prometheus.Counter
	duration        prometheus.Histogram
	dispatches      *prometheus.CounterVec
	passthroughs    prometheus.Counter
	overruns        *prometheus.CounterVec
	blockErrors     prometheus.Counter
}

// NewMetrics creates a collector and registers it with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		interpretations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "interpretations_total",
			Help:      "Completed interpretations.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "interpretation_duration_seconds",
			Help:      "Wall time of one interpretation.",
			Buckets:   prometheus.DefBuckets,
		}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "block_dispatches_total",
			Help:      "Tags handled, by block.",
		}, []string{metricsLabelBlock}),
		passthroughs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tag_passthroughs_total",
			Help:      "Tags no block accepted, passed through verbatim.",
		}),
		overruns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "resolution_overruns_total",
			Help:      "Recoverable depth or workload overruns.",
		}, []string{metricsLabelKind}),
		blockErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "block_errors_total",
			Help:      "Block-internal failures.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.interpretations, m.duration, m.dispatches,
			m.passthroughs, m.overruns, m.blockErrors)
	}
	return m
}

func (m *Metrics) observeInterpretation(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.interpretations.Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) observeDispatch(block string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(block).Inc()
}

func (m *Metrics) observePassthrough() {
	if m == nil {
		return
	}
	m.passthroughs.Inc()
}

func (m *Metrics) observeOverrun(kind string) {
	if m == nil {
		return
	}
	m.overruns.WithLabelValues(kind).Inc()
}

func (m *Metrics) observeBlockError() {
	if m == nil {
		return
	}
	m.blockErrors.Inc()
}

const (
	metricsNamespace  = "tagscript"
	metricsLabelBlock = "block"
	metricsLabelKind  = "kind"
)

package metrics

import "github.com/prometheus/client_golang/prometheus"

// BufferMetrics tracks replacements of the shared buffer. It satisfies buffer.Recorder.
type BufferMetrics struct {
	UpdatesTotal   prometheus.Counter
	TruncatedTotal prometheus.Counter
	ChangedRunes   prometheus.Counter
	Revision       prometheus.Gauge
}

// NewBufferMetrics creates and registers buffer metrics on the given registry.
func NewBufferMetrics(reg prometheus.Registerer) *BufferMetrics {
	m := &BufferMetrics{
		UpdatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "updates_total",
			Help:      "Total number of buffer replacements.",
		}),
		TruncatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "truncated_total",
			Help:      "Total number of submissions cut to the buffer length.",
		}),
		ChangedRunes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "replaced_runes_total",
			Help:      "Total number of buffer positions whose character changed.",
		}),
		Revision: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "buffer",
			Name:      "revision",
			Help:      "Number of updates applied since process start.",
		}),
	}

	reg.MustRegister(m.UpdatesTotal, m.TruncatedTotal, m.ChangedRunes, m.Revision)
	return m
}

func (m *BufferMetrics) RecordUpdate(revision uint64, truncated bool, changed int) {
	m.UpdatesTotal.Inc()
	if truncated {
		m.TruncatedTotal.Inc()
	}
	m.ChangedRunes.Add(float64(changed))
	m.Revision.Set(float64(revision))
}

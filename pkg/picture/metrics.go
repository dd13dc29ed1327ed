package picture

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports per-operation counters and latencies. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "picam",
			Name:      "operations_total",
			Help:      "Picture operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "picam",
			Name:      "operation_duration_seconds",
			Help:      "Time spent completing picture operations.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"op"}),
	}
	reg.MustRegister(m.operations, m.duration)
	return m
}

func (m *Metrics) observe(op Op, kind Kind, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if kind != 0 {
		outcome = kind.String()
	}
	m.operations.WithLabelValues(string(op), outcome).Inc()
	m.duration.WithLabelValues(string(op)).Observe(d.Seconds())
}

package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-stage latency and outcome.
type Metrics struct {
	stageDuration *prometheus.HistogramVec
}

// NewMetrics creates the stage metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docdigest_stage_duration_seconds",
				Help:    "Duration of pipeline stages.",
				Buckets: []float64{0.05, 0.25, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"stage", "outcome"},
		),
	}
	if err := reg.Register(m.stageDuration); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(stage string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.stageDuration.WithLabelValues(stage, outcome).Observe(time.Since(start).Seconds())
}

package operations

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess   = "success"
	resultFailure   = "failure"
	resultCancelled = "cancelled"
)

// Metrics records job counters. A nil *Metrics records nothing.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mgit",
			Name:      "operations_total",
			Help:      "Finished git operations by kind and result.",
		}, []string{"kind", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mgit",
			Name:      "operation_duration_seconds",
			Help:      "Duration of git operations by kind.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 300, 600},
		}, []string{"kind"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mgit",
			Name:      "operation_in_flight",
			Help:      "Whether a git operation is currently running.",
		}),
	}

	if registerer == nil {
		return m, nil
	}

	var err error
	if m.total, err = register(registerer, m.total); err != nil {
		return nil, err
	}
	if m.duration, err = register(registerer, m.duration); err != nil {
		return nil, err
	}
	if m.inFlight, err = register(registerer, m.inFlight); err != nil {
		return nil, err
	}

	return m, nil
}

func register[T prometheus.Collector](registerer prometheus.Registerer, c T) (T, error) {
	if err := registerer.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("failed to register operation metrics: %w", err)
	}
	return c, nil
}

func (m *Metrics) started() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *Metrics) finished(kind Kind, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.total.WithLabelValues(kind.String(), result).Inc()
	m.duration.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
}

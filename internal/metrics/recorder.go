// Package metrics exports operation counters and latencies to Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/estate/pkg/types"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeInternal = "error"
)

// Recorder counts operations by entity, operation and outcome.
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder registers the estate collectors with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "estate",
			Name:      "operations_total",
			Help:      "Record operations by entity, operation and outcome.",
		}, []string{"entity", "op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "estate",
			Name:      "operation_duration_seconds",
			Help:      "Record operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"entity", "op"}),
	}
	var err error
	if r.operations, err = register(reg, r.operations); err != nil {
		return nil, err
	}
	if r.duration, err = register(reg, r.duration); err != nil {
		return nil, err
	}
	return r, nil
}

// register adds c to reg, reusing an identical collector that is already
// registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Observe records one finished operation.
func (r *Recorder) Observe(entity, op string, took time.Duration, err error) {
	r.operations.WithLabelValues(entity, op, Outcome(err)).Inc()
	r.duration.WithLabelValues(entity, op).Observe(took.Seconds())
}

// Outcome maps an operation result to its label value.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if kind, ok := types.KindOf(err); ok {
		return kind.String()
	}
	return OutcomeInternal
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package unified

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/demosnet/demoscore/internal/algorithm"
)

// Operation results recorded in metrics.
const (
	resultOK      = "ok"
	resultInvalid = "invalid"
	resultError   = "error"
)

// Metrics counts router operations by operation, algorithm and result.
type Metrics struct {
	ops *prometheus.CounterVec
}

// NewMetrics registers the router counters with reg. Registering twice with
// the same registerer reuses the existing collector.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "demos",
		Subsystem: "crypto",
		Name:      "operations_total",
		Help:      "Unified crypto router operations by operation, algorithm and result.",
	}, []string{"op", "algorithm", "result"})

	if err := reg.Register(ops); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		ops = existing
	}
	return &Metrics{ops: ops}, nil
}

func (m *Metrics) observe(op string, tag algorithm.Tag, result string) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op, string(tag), result).Inc()
}

func resultOf(err error) string {
	if err != nil {
		return resultError
	}
	return resultOK
}

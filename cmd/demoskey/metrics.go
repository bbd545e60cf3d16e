// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/demosnet/demoscore/internal/unified"
)

// enableMetrics makes every router opened by a count its operations in a
// private registry.
func (a *app) enableMetrics() error {
	reg := prometheus.NewRegistry()
	m, err := unified.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	a.registry = reg
	a.metrics = m
	return nil
}

// writeMetrics writes the gathered counters in the Prometheus text format.
// It writes nothing when metrics are disabled.
func (a *app) writeMetrics(w io.Writer) error {
	if a.registry == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// routerOptions returns the options shared by every router the CLI opens.
func (a *app) routerOptions() []unified.Option {
	opts := []unified.Option{unified.WithVerifyCache(a.cfg.VerifyCacheSize)}
	if a.metrics != nil {
		opts = append(opts, unified.WithMetrics(a.metrics))
	}
	return opts
}

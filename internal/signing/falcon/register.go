// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package falcon

import (
	"sync"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/keygen"
	"github.com/demosnet/demoscore/internal/signing"
)

var registerAllOnce sync.Once

// RegisterAll registers all Falcon-1024 components with their respective registries.
// This is idempotent and safe to call multiple times.
//
// Registration includes:
// - Algorithm metadata (seed size, capabilities, display color)
// - Signing provider
// - Key generator
func RegisterAll() {
	registerAllOnce.Do(func() {
		algorithm.RegisterBuiltins()

		p := &FalconProvider{}
		signing.Register(p)
		keygen.Register(p)
	})
}

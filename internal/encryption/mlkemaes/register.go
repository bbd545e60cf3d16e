// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package mlkemaes

import (
	"sync"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/encryption"
	"github.com/demosnet/demoscore/internal/keygen"
)

var registerAllOnce sync.Once

// RegisterAll registers the ML-KEM-AES encryption provider and key generator.
// This is idempotent and safe to call multiple times.
func RegisterAll() {
	registerAllOnce.Do(func() {
		algorithm.RegisterBuiltins()

		p := &MLKEMAESProvider{}
		encryption.Register(p)
		keygen.Register(p)
	})
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package rsa

import (
	"sync"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/encryption"
	"github.com/demosnet/demoscore/internal/keygen"
)

var registerAllOnce sync.Once

// RegisterAll registers the RSA provider with DefaultBits.
func RegisterAll() {
	RegisterWithBits(DefaultBits)
}

// RegisterWithBits registers the RSA encryption provider and key generator.
// Only the first call has any effect; an invalid size falls back to DefaultBits.
func RegisterWithBits(bits int) {
	registerAllOnce.Do(func() {
		algorithm.RegisterBuiltins()

		p, err := NewProvider(bits)
		if err != nil {
			p = &RSAProvider{Bits: DefaultBits}
		}
		encryption.Register(p)
		keygen.Register(p)
	})
}

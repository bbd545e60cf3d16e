// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package providers wires every algorithm implementation into the signing,
// encryption and keygen registries.
package providers

import (
	"log/slog"

	"github.com/demosnet/demoscore/internal/encryption"
	"github.com/demosnet/demoscore/internal/encryption/mlkemaes"
	"github.com/demosnet/demoscore/internal/encryption/rsa"
	"github.com/demosnet/demoscore/internal/keygen"
	"github.com/demosnet/demoscore/internal/signing"
	"github.com/demosnet/demoscore/internal/signing/ed25519"
	"github.com/demosnet/demoscore/internal/signing/falcon"
	"github.com/demosnet/demoscore/internal/signing/mldsa"
	"github.com/demosnet/demoscore/internal/util"
)

// RegisterAll registers all providers with default settings.
// This must be called before using any signing, encryption or key operations.
func RegisterAll() {
	RegisterAllWithConfig(util.DefaultConfig())
}

// RegisterAllWithConfig registers all providers, taking tunables such as the
// RSA modulus size from cfg. Registration happens once per process; later
// calls are no-ops.
func RegisterAllWithConfig(cfg util.Config) {
	// Signature algorithms
	ed25519.RegisterAll()
	falcon.RegisterAll()
	mldsa.RegisterAll()

	// Encryption algorithms
	mlkemaes.RegisterAll()
	rsa.RegisterWithBits(cfg.RSABits)
}

// LogRegistered records the registered providers at startup, warning when a
// registry is empty.
func LogRegistered(log *slog.Logger) {
	signers := signing.GetRegisteredAlgorithms()
	encrypters := encryption.GetRegisteredAlgorithms()
	generators := keygen.GetRegisteredAlgorithms()
	if len(signers) == 0 || len(encrypters) == 0 || len(generators) == 0 {
		log.Warn("provider registry empty: was RegisterAll called?",
			"signing", len(signers), "encryption", len(encrypters), "keygen", len(generators))
		return
	}
	log.Debug("loaded providers", "signing", signers, "encryption", encrypters, "keygen", generators)
}

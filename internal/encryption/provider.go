// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package encryption provides the public-key encryption providers behind the
// unified router. Implementations live in subpackages (mlkemaes, rsa) and
// register themselves through their RegisterAll functions.
package encryption

import (
	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/keys"
)

// Sealed is the output of Encrypt.
type Sealed struct {
	// Data is the encrypted payload.
	Data []byte
	// CipherText is the KEM encapsulation, present only for hybrid schemes.
	CipherText []byte
}

// Provider defines the interface for encryption algorithms.
type Provider interface {
	// Algorithm returns the tag this provider serves.
	Algorithm() algorithm.Tag

	// Encrypt encrypts plaintext to the holder of peerPublicKey.
	Encrypt(peerPublicKey, plaintext []byte) (*Sealed, error)

	// Decrypt opens sealed with the keypair's private key. Malformed,
	// truncated or tampered input fails with a DecryptionFailed error.
	Decrypt(kp *keys.Keypair, sealed *Sealed) ([]byte, error)
}

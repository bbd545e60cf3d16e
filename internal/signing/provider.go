// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package signing provides the signature providers behind the unified router.
//
// Each signature algorithm registers one Provider. Implementations live in
// subpackages (ed25519, falcon, mldsa) and register themselves through their
// RegisterAll functions.
//
// When adding a new signature algorithm:
//  1. Register its metadata in internal/algorithm
//  2. Implement Provider and keygen.Generator in a subpackage
//  3. Call its RegisterAll from internal/providers
package signing

import (
	"fmt"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/keys"
)

// Provider defines the interface for signature algorithms.
type Provider interface {
	// Algorithm returns the tag this provider serves.
	Algorithm() algorithm.Tag

	// Sign signs message with the keypair's private key.
	Sign(kp *keys.Keypair, message []byte) ([]byte, error)

	// Verify reports whether signature is valid for message under publicKey.
	// A signature that fails to verify, including a malformed one, returns
	// false with a nil error. An error is returned only when publicKey cannot
	// be a key of this algorithm.
	Verify(publicKey, message, signature []byte) (bool, error)
}

// ValidateKeypair checks that kp belongs to tag and carries a private key of
// the expected length.
func ValidateKeypair(kp *keys.Keypair, tag algorithm.Tag, privateKeySize int) error {
	if kp == nil {
		return fmt.Errorf("keypair is nil")
	}
	if kp.Algorithm != tag {
		return fmt.Errorf("keypair algorithm mismatch: expected %s, got %s", tag, kp.Algorithm)
	}
	if len(kp.PrivateKey) != privateKeySize {
		return fmt.Errorf("invalid %s private key length: expected %d bytes, got %d", tag, privateKeySize, len(kp.PrivateKey))
	}
	return nil
}

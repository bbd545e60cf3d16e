// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package ed25519 implements the ed25519 signature algorithm: deterministic
// key generation from a 32-byte seed, signing and verification.
package ed25519

import (
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/keys"
	"github.com/demosnet/demoscore/internal/signing"
)

// Ed25519Provider implements signing.Provider and keygen.Generator for ed25519.
type Ed25519Provider struct{}

// Algorithm returns the ed25519 tag.
func (p *Ed25519Provider) Algorithm() algorithm.Tag {
	return algorithm.Ed25519
}

// SeedSize returns ed25519.SeedSize.
func (p *Ed25519Provider) SeedSize() int {
	return ed25519.SeedSize
}

// GenerateFromSeed expands a 32-byte seed into an ed25519 keypair.
// The private key is the 64-byte seed||public form used by crypto/ed25519.
func (p *Ed25519Provider) GenerateFromSeed(seed []byte) (*keys.Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, cryptoerr.New(cryptoerr.KindInvalidSeed, "ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return &keys.Keypair{
		Algorithm:  algorithm.Ed25519,
		PublicKey:  []byte(pub),
		PrivateKey: []byte(priv),
	}, nil
}

// Sign signs message with the keypair's private key.
func (p *Ed25519Provider) Sign(kp *keys.Keypair, message []byte) ([]byte, error) {
	if err := signing.ValidateKeypair(kp, algorithm.Ed25519, ed25519.PrivateKeySize); err != nil {
		return nil, err
	}
	return ed25519.Sign(ed25519.PrivateKey(kp.PrivateKey), message), nil
}

// Verify checks signature against message and publicKey.
// Public keys that do not decode to a curve point never verify.
func (p *Ed25519Provider) Verify(publicKey, message, signature []byte) (bool, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return false, fmt.Errorf("invalid ed25519 public key length: expected %d bytes, got %d", ed25519.PublicKeySize, len(publicKey))
	}
	if len(signature) != ed25519.SignatureSize {
		return false, nil
	}
	if _, err := new(edwards25519.Point).SetBytes(publicKey); err != nil {
		return false, nil
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature), nil
}

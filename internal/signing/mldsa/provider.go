// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package mldsa implements ML-DSA-65 (FIPS 204) signatures using circl.
// Signing is deterministic: the same key and message give the same signature.
package mldsa

import (
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/keys"
	"github.com/demosnet/demoscore/internal/signing"
)

var scheme = mldsa65.Scheme()

// ML-DSA-65 sizes in bytes.
var (
	SeedSize       = scheme.SeedSize()
	PublicKeySize  = scheme.PublicKeySize()
	PrivateKeySize = scheme.PrivateKeySize()
	SignatureSize  = scheme.SignatureSize()
)

// MLDSAProvider implements signing.Provider and keygen.Generator for ML-DSA-65.
type MLDSAProvider struct{}

// Algorithm returns the ml-dsa tag.
func (p *MLDSAProvider) Algorithm() algorithm.Tag {
	return algorithm.MLDSA
}

// SeedSize returns the 32-byte ML-DSA seed length.
func (p *MLDSAProvider) SeedSize() int {
	return SeedSize
}

// GenerateFromSeed derives an ML-DSA-65 keypair from a 32-byte seed.
func (p *MLDSAProvider) GenerateFromSeed(seed []byte) (*keys.Keypair, error) {
	if len(seed) != SeedSize {
		return nil, cryptoerr.New(cryptoerr.KindInvalidSeed, "ml-dsa seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	pk, sk := scheme.DeriveKey(seed)

	pub, err := pk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode ML-DSA public key: %w", err)
	}
	priv, err := sk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode ML-DSA private key: %w", err)
	}
	return &keys.Keypair{
		Algorithm:  algorithm.MLDSA,
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

// Sign produces a deterministic ML-DSA-65 signature with an empty context.
func (p *MLDSAProvider) Sign(kp *keys.Keypair, message []byte) ([]byte, error) {
	if err := signing.ValidateKeypair(kp, algorithm.MLDSA, PrivateKeySize); err != nil {
		return nil, err
	}
	sk, err := scheme.UnmarshalBinaryPrivateKey(kp.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ML-DSA private key: %w", err)
	}
	return scheme.Sign(sk, message, nil), nil
}

// Verify checks an ML-DSA-65 signature with an empty context.
func (p *MLDSAProvider) Verify(publicKey, message, signature []byte) (bool, error) {
	if len(publicKey) != PublicKeySize {
		return false, fmt.Errorf("invalid ml-dsa public key length: expected %d bytes, got %d", PublicKeySize, len(publicKey))
	}
	pk, err := scheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return false, fmt.Errorf("failed to decode ML-DSA public key: %w", err)
	}
	if len(signature) != SignatureSize {
		return false, nil
	}
	return scheme.Verify(pk, message, signature, nil), nil
}

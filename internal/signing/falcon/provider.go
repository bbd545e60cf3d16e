// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package falcon implements the Falcon-1024 signature algorithm.
package falcon

import (
	"fmt"

	"github.com/algorand/falcon"
	"github.com/algorandfoundation/falcon-signatures/falcongo"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/crypto"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/keys"
	"github.com/demosnet/demoscore/internal/signing"
)

// Falcon-1024 sizes in bytes.
const (
	SeedSize         = 48
	PublicKeySize    = 1793
	PrivateKeySize   = 2305
	MaxSignatureSize = 1280
)

// FalconProvider implements signing.Provider and keygen.Generator for Falcon-1024.
type FalconProvider struct{}

// Algorithm returns the falcon tag.
func (p *FalconProvider) Algorithm() algorithm.Tag {
	return algorithm.Falcon
}

// SeedSize returns the 48-byte Falcon seed length.
func (p *FalconProvider) SeedSize() int {
	return SeedSize
}

// GenerateFromSeed generates a Falcon-1024 keypair from seed. The seed is
// kept as the keypair's AuxSeed so the key can be regenerated on its own.
func (p *FalconProvider) GenerateFromSeed(seed []byte) (*keys.Keypair, error) {
	if len(seed) != SeedSize {
		return nil, cryptoerr.New(cryptoerr.KindInvalidSeed, "falcon seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	kp, err := falcongo.GenerateKeyPair(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Falcon keypair: %w", err)
	}
	defer crypto.ZeroBytes(kp.PrivateKey[:])

	return &keys.Keypair{
		Algorithm:  algorithm.Falcon,
		PublicKey:  crypto.Clone(kp.PublicKey[:]),
		PrivateKey: crypto.Clone(kp.PrivateKey[:]),
		AuxSeed:    crypto.Clone(seed),
	}, nil
}

// Sign signs a message with a Falcon-1024 private key.
func (p *FalconProvider) Sign(kp *keys.Keypair, message []byte) ([]byte, error) {
	if err := signing.ValidateKeypair(kp, algorithm.Falcon, PrivateKeySize); err != nil {
		return nil, err
	}

	// falcongo signs through a KeyPair; the public half is unused for signing.
	var fkp falcongo.KeyPair
	copy(fkp.PrivateKey[:], kp.PrivateKey)
	defer crypto.ZeroBytes(fkp.PrivateKey[:])

	sig, err := fkp.Sign(message)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	return sig, nil
}

// Verify checks a compressed Falcon-1024 signature.
func (p *FalconProvider) Verify(publicKey, message, signature []byte) (bool, error) {
	if len(publicKey) != PublicKeySize {
		return false, fmt.Errorf("invalid falcon public key length: expected %d bytes, got %d", PublicKeySize, len(publicKey))
	}
	if len(signature) == 0 || len(signature) > MaxSignatureSize {
		return false, nil
	}
	var pub falcongo.PublicKey
	copy(pub[:], publicKey)
	return falcongo.Verify(message, falcon.CompressedSignature(signature), pub) == nil, nil
}

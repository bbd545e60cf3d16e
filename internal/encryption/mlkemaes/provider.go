// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package mlkemaes implements hybrid encryption: ML-KEM-768 encapsulates a
// shared secret that keys AES-256-GCM over the payload.
//
// Wire format of Sealed.Data is nonce(12) || ciphertext || tag(16);
// Sealed.CipherText carries the KEM encapsulation.
package mlkemaes

import (
	"fmt"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/crypto"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/encryption"
	"github.com/demosnet/demoscore/internal/keys"
)

var scheme = mlkem768.Scheme()

// ML-KEM-768 sizes in bytes.
var (
	SeedSize       = scheme.SeedSize()
	PublicKeySize  = scheme.PublicKeySize()
	PrivateKeySize = scheme.PrivateKeySize()
	CipherTextSize = scheme.CiphertextSize()
)

// MLKEMAESProvider implements encryption.Provider and keygen.Generator.
type MLKEMAESProvider struct{}

// Algorithm returns the ml-kem-aes tag.
func (p *MLKEMAESProvider) Algorithm() algorithm.Tag {
	return algorithm.MLKEMAES
}

// SeedSize returns the 64-byte ML-KEM seed length.
func (p *MLKEMAESProvider) SeedSize() int {
	return SeedSize
}

// GenerateFromSeed derives an ML-KEM-768 keypair from a 64-byte seed.
func (p *MLKEMAESProvider) GenerateFromSeed(seed []byte) (*keys.Keypair, error) {
	if len(seed) != SeedSize {
		return nil, cryptoerr.New(cryptoerr.KindInvalidSeed, "ml-kem seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	pk, sk := scheme.DeriveKeyPair(seed)

	pub, err := pk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode ML-KEM public key: %w", err)
	}
	priv, err := sk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode ML-KEM private key: %w", err)
	}
	return &keys.Keypair{
		Algorithm:  algorithm.MLKEMAES,
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

// Encrypt encapsulates a fresh shared secret to peerPublicKey and seals
// plaintext under it.
func (p *MLKEMAESProvider) Encrypt(peerPublicKey, plaintext []byte) (*encryption.Sealed, error) {
	pk, err := scheme.UnmarshalBinaryPublicKey(peerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid ML-KEM public key: %w", err)
	}
	ct, ss, err := scheme.Encapsulate(pk)
	if err != nil {
		return nil, fmt.Errorf("ML-KEM encapsulation failed: %w", err)
	}
	defer crypto.ZeroBytes(ss)

	data, err := crypto.SealGCM(ss, plaintext)
	if err != nil {
		return nil, err
	}
	return &encryption.Sealed{Data: data, CipherText: ct}, nil
}

// Decrypt decapsulates the shared secret and opens the payload. A tampered
// encapsulation yields a different secret, so it surfaces as a tag failure.
func (p *MLKEMAESProvider) Decrypt(kp *keys.Keypair, sealed *encryption.Sealed) ([]byte, error) {
	if kp == nil || kp.Algorithm != algorithm.MLKEMAES {
		return nil, cryptoerr.New(cryptoerr.KindIdentityNotInitialized, "no ml-kem-aes keypair")
	}
	if sealed == nil {
		return nil, cryptoerr.New(cryptoerr.KindDecryptionFailed, "nothing to decrypt")
	}
	if len(sealed.CipherText) != CipherTextSize {
		return nil, cryptoerr.New(cryptoerr.KindDecryptionFailed,
			"ML-KEM ciphertext must be %d bytes, got %d", CipherTextSize, len(sealed.CipherText))
	}
	sk, err := scheme.UnmarshalBinaryPrivateKey(kp.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid ML-KEM private key: %w", err)
	}
	ss, err := scheme.Decapsulate(sk, sealed.CipherText)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindDecryptionFailed, err, "ML-KEM decapsulation")
	}
	defer crypto.ZeroBytes(ss)

	return crypto.OpenGCM(ss, sealed.Data)
}

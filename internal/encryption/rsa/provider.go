// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package rsa implements RSA-OAEP (SHA-256) encryption with keys derived
// deterministically from a 32-byte seed.
//
// Keys are stored PKCS#1 DER encoded. Encrypt returns standard base64 text
// and Decrypt expects it.
package rsa

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"fmt"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/encryption"
	"github.com/demosnet/demoscore/internal/keys"
)

const (
	// SeedSize is the length of the DRBG seed.
	SeedSize = 32
	// DefaultBits is the modulus size used unless configured otherwise.
	DefaultBits = 2048
	// MinBits is the smallest modulus crypto/rsa accepts.
	MinBits = 1024
)

// RSAProvider implements encryption.Provider and keygen.Generator for RSA-OAEP.
type RSAProvider struct {
	// Bits is the modulus size of generated keys.
	Bits int
}

// NewProvider returns a provider generating keys of bits bits.
func NewProvider(bits int) (*RSAProvider, error) {
	if bits < MinBits || bits%256 != 0 {
		return nil, fmt.Errorf("invalid RSA modulus size %d: must be >= %d and a multiple of 256", bits, MinBits)
	}
	return &RSAProvider{Bits: bits}, nil
}

// Algorithm returns the rsa tag.
func (p *RSAProvider) Algorithm() algorithm.Tag {
	return algorithm.RSA
}

// SeedSize returns the 32-byte DRBG seed length.
func (p *RSAProvider) SeedSize() int {
	return SeedSize
}

// GenerateFromSeed derives an RSA keypair from seed. Identical seeds and
// modulus sizes always give identical keys.
func (p *RSAProvider) GenerateFromSeed(seed []byte) (*keys.Keypair, error) {
	if len(seed) != SeedSize {
		return nil, cryptoerr.New(cryptoerr.KindInvalidSeed, "rsa seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	r, err := newKeystream(seed)
	if err != nil {
		return nil, err
	}
	priv, err := generateKey(r, p.bits())
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}
	return &keys.Keypair{
		Algorithm:  algorithm.RSA,
		PublicKey:  x509.MarshalPKCS1PublicKey(&priv.PublicKey),
		PrivateKey: x509.MarshalPKCS1PrivateKey(priv),
	}, nil
}

// Encrypt encrypts plaintext with RSA-OAEP(SHA-256) and returns base64 text.
func (p *RSAProvider) Encrypt(peerPublicKey, plaintext []byte) (*encryption.Sealed, error) {
	pub, err := x509.ParsePKCS1PublicKey(peerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid RSA public key: %w", err)
	}
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("RSA-OAEP encryption failed: %w", err)
	}
	return &encryption.Sealed{Data: []byte(base64.StdEncoding.EncodeToString(ct))}, nil
}

// Decrypt decodes base64 text and decrypts it with the keypair's private key.
func (p *RSAProvider) Decrypt(kp *keys.Keypair, sealed *encryption.Sealed) ([]byte, error) {
	if kp == nil || kp.Algorithm != algorithm.RSA {
		return nil, cryptoerr.New(cryptoerr.KindIdentityNotInitialized, "no rsa keypair")
	}
	if sealed == nil {
		return nil, cryptoerr.New(cryptoerr.KindDecryptionFailed, "nothing to decrypt")
	}
	ct, err := base64.StdEncoding.DecodeString(string(sealed.Data))
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindDecryptionFailed, err, "ciphertext is not base64")
	}
	priv, err := x509.ParsePKCS1PrivateKey(kp.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid RSA private key: %w", err)
	}
	plain, err := rsa.DecryptOAEP(sha256.New(), nil, priv, ct, nil)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindDecryptionFailed, err, "rsa-oaep")
	}
	return plain, nil
}

func (p *RSAProvider) bits() int {
	if p.Bits == 0 {
		return DefaultBits
	}
	return p.Bits
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/demosnet/demoscore/internal/cryptoerr"
)

const (
	// GCMNonceSize is the 96-bit nonce prepended to every sealed message.
	GCMNonceSize = 12
	// GCMTagSize is the authentication tag appended by GCM.
	GCMTagSize = 16
	// AESKeySize selects AES-256.
	AESKeySize = 32
)

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("invalid AES key size: expected %d bytes, got %d", AESKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// SealGCM encrypts plaintext with AES-256-GCM under a fresh random nonce.
// Returns raw bytes: nonce (12 bytes) + ciphertext + tag (16 bytes)
func SealGCM(key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, GCMNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenGCM reverses SealGCM. Inputs shorter than nonce+tag, truncated
// ciphertext and tag mismatches all fail with a DecryptionFailed error.
func OpenGCM(key, sealed []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindDecryptionFailed, err, "aes-gcm")
	}

	if len(sealed) < GCMNonceSize+GCMTagSize {
		return nil, cryptoerr.New(cryptoerr.KindDecryptionFailed,
			"sealed data too short: %d bytes, need at least %d", len(sealed), GCMNonceSize+GCMTagSize)
	}

	nonce := sealed[:GCMNonceSize]
	plaintext, err := gcm.Open(nil, nonce, sealed[GCMNonceSize:], nil)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindDecryptionFailed, err, "authentication tag mismatch")
	}
	return plaintext, nil
}

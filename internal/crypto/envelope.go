// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters (OWASP recommended)
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism

	envelopeSaltLen = 32
	envelopeVersion = 1
)

// Envelope is a self-contained passphrase-encrypted blob. The embedded salt
// means it can be opened with only the file and the passphrase.
type Envelope struct {
	EnvelopeVersion int    `json:"envelope_version"`
	KDF             string `json:"kdf"`
	Salt            string `json:"salt"` // Base64-encoded argon2id salt
	Data            string `json:"data"` // Base64-encoded nonce || ciphertext || tag
}

// IsEnvelope checks if data appears to be a passphrase envelope
func IsEnvelope(data []byte) bool {
	var env Envelope
	return json.Unmarshal(data, &env) == nil && env.EnvelopeVersion > 0 && env.KDF != ""
}

// DeriveKey derives a 32-byte AES key from passphrase and salt with argon2id.
// Caller is responsible for zeroing the returned key when done.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argon2Time, argon2Memory, argon2Threads, AESKeySize)
}

// SealWithPassphrase encrypts plaintext under a passphrase-derived key and
// returns the JSON envelope.
func SealWithPassphrase(plaintext, passphrase []byte) ([]byte, error) {
	salt := make([]byte, envelopeSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := DeriveKey(passphrase, salt)
	defer ZeroBytes(key)

	sealed, err := SealGCM(key, plaintext)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(Envelope{
		EnvelopeVersion: envelopeVersion,
		KDF:             "argon2id",
		Salt:            base64.StdEncoding.EncodeToString(salt),
		Data:            base64.StdEncoding.EncodeToString(sealed),
	}, "", "  ")
}

// OpenWithPassphrase decrypts an envelope produced by SealWithPassphrase.
func OpenWithPassphrase(envelopeJSON, passphrase []byte) ([]byte, error) {
	var env Envelope
	if err := json.Unmarshal(envelopeJSON, &env); err != nil {
		return nil, fmt.Errorf("failed to parse envelope: %w", err)
	}
	if env.EnvelopeVersion != envelopeVersion {
		return nil, fmt.Errorf("envelope_version %d not supported (expected %d)", env.EnvelopeVersion, envelopeVersion)
	}
	if env.KDF != "argon2id" {
		return nil, fmt.Errorf("unsupported kdf %q", env.KDF)
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	sealed, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}

	key := DeriveKey(passphrase, salt)
	defer ZeroBytes(key)

	return OpenGCM(key, sealed)
}

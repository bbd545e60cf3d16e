// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package unified

import "github.com/demosnet/demoscore/internal/algorithm"

// SignedObject is a self-describing signature. Verifying it needs nothing
// beyond its own fields.
type SignedObject struct {
	Algorithm algorithm.Tag `json:"algorithm"`
	Signature []byte        `json:"signature"`
	Message   []byte        `json:"message"`
	PublicKey []byte        `json:"publicKey"`
}

// EncryptedObject is the output of Encrypt. CipherText is set only for
// ml-kem-aes, where it carries the KEM encapsulation.
type EncryptedObject struct {
	Algorithm     algorithm.Tag `json:"algorithm"`
	EncryptedData []byte        `json:"encryptedData"`
	CipherText    []byte        `json:"cipherText,omitempty"`
}

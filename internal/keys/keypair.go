// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package keys defines the Keypair shape shared by every algorithm family.
package keys

import (
	"encoding/hex"
	"strings"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/crypto"
)

// Keypair is raw key material for one algorithm. AuxSeed is only set by
// families that need their generation seed to rebuild signing context (Falcon).
type Keypair struct {
	Algorithm  algorithm.Tag
	PublicKey  []byte
	PrivateKey []byte
	AuxSeed    []byte
}

// Clone returns a deep copy.
func (k *Keypair) Clone() *Keypair {
	if k == nil {
		return nil
	}
	return &Keypair{
		Algorithm:  k.Algorithm,
		PublicKey:  crypto.Clone(k.PublicKey),
		PrivateKey: crypto.Clone(k.PrivateKey),
		AuxSeed:    crypto.Clone(k.AuxSeed),
	}
}

// Zero overwrites the secret parts of the keypair.
func (k *Keypair) Zero() {
	if k == nil {
		return
	}
	crypto.ZeroBytes(k.PrivateKey)
	crypto.ZeroBytes(k.AuxSeed)
	k.PrivateKey = nil
	k.AuxSeed = nil
}

// PublicKeyHex returns the 0x-prefixed lowercase hex public key, the form
// used for account addresses.
func (k *Keypair) PublicKeyHex() string {
	return ToHex(k.PublicKey)
}

// ToHex encodes b as 0x-prefixed lowercase hex.
func ToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// FromHex decodes hex with or without a 0x prefix.
func FromHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
}

// NormalizeAddress lowercases a hex address and ensures a 0x prefix.
func NormalizeAddress(addr string) string {
	a := strings.ToLower(strings.TrimSpace(addr))
	if !strings.HasPrefix(a, "0x") {
		a = "0x" + a
	}
	return a
}

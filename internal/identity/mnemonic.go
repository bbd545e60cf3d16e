// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package identity

import (
	"crypto/rand"
	"fmt"
	"strings"

	falconmnemonic "github.com/algorandfoundation/falcon-signatures/mnemonic"

	"github.com/demosnet/demoscore/internal/crypto"
	"github.com/demosnet/demoscore/internal/cryptoerr"
)

const (
	// MnemonicWordCount is the length of generated recovery phrases (256 bits).
	MnemonicWordCount = 24

	mnemonicEntropySize = 32
	mnemonicExpandInfo  = "demos/master-seed/v1"
)

// NewMnemonic returns a fresh 24-word BIP-39 recovery phrase.
func NewMnemonic() ([]string, error) {
	entropy := make([]byte, mnemonicEntropySize)
	if _, err := rand.Read(entropy); err != nil {
		return nil, fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer crypto.ZeroBytes(entropy)

	words, err := falconmnemonic.EntropyToMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mnemonic from entropy: %w", err)
	}
	return words, nil
}

// ParseMnemonic splits a phrase into normalized words.
func ParseMnemonic(phrase string) []string {
	return strings.Fields(strings.ToLower(phrase))
}

// SeedFromMnemonic turns a BIP-39 phrase into a MasterSeedSize-byte master
// seed: the standard BIP-39 seed (empty passphrase) expanded with HKDF.
// Phrases with an unknown word or a bad checksum fail with InvalidSeed.
func SeedFromMnemonic(words []string) ([]byte, error) {
	entropy, err := falconmnemonic.MnemonicToEntropy(words)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindInvalidSeed, err, "invalid mnemonic")
	}
	crypto.ZeroBytes(entropy)

	seedArray, err := falconmnemonic.SeedFromMnemonic(words, "")
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.KindInvalidSeed, err, "failed to derive seed from mnemonic")
	}
	defer crypto.ZeroBytes(seedArray[:])

	return hkdfExpand(seedArray[:], nil, mnemonicExpandInfo, MasterSeedSize)
}

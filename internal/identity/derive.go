// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package identity

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/cryptoerr"
)

// hkdfSalt is fixed; the algorithm tag is the HKDF info string, so every
// algorithm gets an independent seed from the same master seed.
const hkdfSalt = "master seed"

// DeriveSeed expands masterSeed into the per-algorithm seed for tag.
// The output length is the algorithm's seed size.
func DeriveSeed(masterSeed []byte, tag algorithm.Tag) ([]byte, error) {
	if len(masterSeed) == 0 {
		return nil, cryptoerr.New(cryptoerr.KindInvalidSeed, "empty master seed")
	}
	size, err := algorithm.SeedSize(tag)
	if err != nil {
		return nil, err
	}
	return hkdfExpand(masterSeed, []byte(hkdfSalt), string(tag), size)
}

func hkdfExpand(secret, salt []byte, info string, outLen int) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, salt, []byte(info))
	out := make([]byte, outLen)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}

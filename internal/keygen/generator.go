// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package keygen holds the registry of deterministic key generators, one per
// algorithm tag. Generators never read randomness: the same seed always yields
// the same keypair.
package keygen

import (
	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/keys"
	"github.com/demosnet/demoscore/internal/util"
)

// Generator defines the interface for key generation.
type Generator interface {
	// Algorithm returns the tag this generator produces keys for.
	Algorithm() algorithm.Tag

	// SeedSize returns the exact seed length GenerateFromSeed accepts.
	SeedSize() int

	// GenerateFromSeed derives a keypair from seed. The seed must be exactly
	// SeedSize() bytes.
	GenerateFromSeed(seed []byte) (*keys.Keypair, error)
}

var generators = util.NewRegistry[algorithm.Tag, Generator]()

// Register registers a key generator for an algorithm.
// This is idempotent - duplicate registrations are silently ignored.
func Register(generator Generator) {
	generators.Set(generator.Algorithm(), generator)
}

// GetGenerator retrieves the key generator for tag.
func GetGenerator(tag algorithm.Tag) (Generator, error) {
	if g, ok := generators.Get(tag); ok {
		return g, nil
	}
	return nil, cryptoerr.New(cryptoerr.KindUnsupportedAlgorithm, "no key generator registered for %q", tag)
}

// Generate looks up the generator for tag and derives a keypair from seed.
func Generate(tag algorithm.Tag, seed []byte) (*keys.Keypair, error) {
	g, err := GetGenerator(tag)
	if err != nil {
		return nil, err
	}
	if len(seed) != g.SeedSize() {
		return nil, cryptoerr.New(cryptoerr.KindInvalidSeed, "%s seed must be %d bytes, got %d", tag, g.SeedSize(), len(seed))
	}
	return g.GenerateFromSeed(seed)
}

// GetRegisteredAlgorithms returns a sorted list of all registered generator tags.
func GetRegisteredAlgorithms() []algorithm.Tag {
	return generators.Keys()
}

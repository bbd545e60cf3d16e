// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package algorithm defines the wire-visible algorithm tags and a registry of
// per-algorithm metadata (derived seed size, capabilities, display color).
//
// Tags are part of the SignedObject / EncryptedObject / transaction signature
// wire contract and must never be renamed.
package algorithm

import (
	"sync"

	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/util"
)

// Tag is a wire-visible algorithm identifier.
type Tag string

const (
	Ed25519  Tag = "ed25519"
	Falcon   Tag = "falcon"
	MLDSA    Tag = "ml-dsa"
	MLKEMAES Tag = "ml-kem-aes"
	RSA      Tag = "rsa"
)

// All returns every supported tag in canonical order.
func All() []Tag {
	return []Tag{Ed25519, Falcon, MLDSA, MLKEMAES, RSA}
}

// Parse validates a tag string.
func Parse(s string) (Tag, error) {
	for _, t := range All() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", cryptoerr.New(cryptoerr.KindUnsupportedAlgorithm, "unknown algorithm %q", s)
}

// Capability describes what an algorithm can do.
type Capability uint8

const (
	CapSign Capability = 1 << iota
	CapEncrypt
)

// Metadata provides metadata about an algorithm
type Metadata interface {
	// Tag returns the algorithm tag (e.g., "falcon", "ml-kem-aes")
	Tag() Tag

	// SeedSize returns the length of the derived per-algorithm seed in bytes
	SeedSize() int

	// Capabilities returns the operations the algorithm supports
	Capabilities() Capability

	// DisplayName returns a human-readable name
	DisplayName() string

	// DisplayColor returns the ANSI 256-color index used when displaying this tag
	DisplayColor() string
}

type basicMetadata struct {
	tag          Tag
	seedSize     int
	capabilities Capability
	displayName  string
	displayColor string
}

func (m *basicMetadata) Tag() Tag                 { return m.tag }
func (m *basicMetadata) SeedSize() int            { return m.seedSize }
func (m *basicMetadata) Capabilities() Capability { return m.capabilities }
func (m *basicMetadata) DisplayName() string      { return m.displayName }
func (m *basicMetadata) DisplayColor() string     { return m.displayColor }

var metadataRegistry = util.NewRegistry[Tag, Metadata]()

// RegisterMetadata registers metadata for an algorithm.
// This is idempotent - duplicate registrations are silently ignored
func RegisterMetadata(metadata Metadata) {
	metadataRegistry.Set(metadata.Tag(), metadata)
}

// GetMetadata retrieves metadata for a tag.
func GetMetadata(tag Tag) (Metadata, error) {
	if metadata, ok := metadataRegistry.Get(tag); ok {
		return metadata, nil
	}
	return nil, cryptoerr.New(cryptoerr.KindUnsupportedAlgorithm, "no metadata registered for %q", tag)
}

// Supports reports whether tag is registered with the given capability.
func Supports(tag Tag, c Capability) bool {
	m, err := GetMetadata(tag)
	if err != nil {
		return false
	}
	return m.Capabilities()&c != 0
}

// SeedSize returns the derived seed size for tag.
func SeedSize(tag Tag) (int, error) {
	m, err := GetMetadata(tag)
	if err != nil {
		return 0, err
	}
	return m.SeedSize(), nil
}

// GetDisplayColor returns the display color for a tag, or "" if unknown.
func GetDisplayColor(tag Tag) string {
	m, err := GetMetadata(tag)
	if err != nil {
		return ""
	}
	return m.DisplayColor()
}

// Registered returns all registered tags, sorted.
func Registered() []Tag {
	return metadataRegistry.Keys()
}

var registerBuiltinsOnce sync.Once

// RegisterBuiltins registers metadata for every supported algorithm.
// This is idempotent and safe to call multiple times.
func RegisterBuiltins() {
	registerBuiltinsOnce.Do(func() {
		for _, m := range builtins {
			RegisterMetadata(m)
		}
	})
}

var builtins = []*basicMetadata{
	{tag: Ed25519, seedSize: 32, capabilities: CapSign, displayName: "Ed25519", displayColor: "44"},
	{tag: Falcon, seedSize: 48, capabilities: CapSign, displayName: "Falcon-1024", displayColor: "214"},
	{tag: MLDSA, seedSize: 32, capabilities: CapSign, displayName: "ML-DSA-65", displayColor: "170"},
	{tag: MLKEMAES, seedSize: 64, capabilities: CapEncrypt, displayName: "ML-KEM-768 + AES-256-GCM", displayColor: "42"},
	{tag: RSA, seedSize: 32, capabilities: CapEncrypt, displayName: "RSA-OAEP", displayColor: "33"},
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	return string(t)
}


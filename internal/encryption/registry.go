// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package encryption

import (
	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/util"
)

var providers = util.NewRegistry[algorithm.Tag, Provider]()

// Register adds a provider to the registry.
// Panics if a provider for the same algorithm is already registered.
func Register(provider Provider) {
	tag := provider.Algorithm()
	if !providers.Set(tag, provider) {
		panic("duplicate encryption provider registration for algorithm: " + string(tag))
	}
}

// Lookup retrieves the provider for tag. Tags without an encryption provider,
// including signature-only algorithms, fail with UnsupportedAlgorithm.
func Lookup(tag algorithm.Tag) (Provider, error) {
	if provider, ok := providers.Get(tag); ok {
		return provider, nil
	}
	return nil, cryptoerr.New(cryptoerr.KindUnsupportedAlgorithm, "%q does not support encryption", tag)
}

// GetRegisteredAlgorithms returns a sorted list of all registered provider tags.
func GetRegisteredAlgorithms() []algorithm.Tag {
	return providers.Keys()
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package signing

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
		panic("duplicate signing provider registration for algorithm: " + string(tag))
	}
}

// GetProvider retrieves a provider by tag, or nil if none is registered.
func GetProvider(tag algorithm.Tag) Provider {
	provider, _ := providers.Get(tag)
	return provider
}

// Lookup is GetProvider with an UnsupportedAlgorithm error for unknown tags.
func Lookup(tag algorithm.Tag) (Provider, error) {
	if provider, ok := providers.Get(tag); ok {
		return provider, nil
	}
	return nil, cryptoerr.New(cryptoerr.KindUnsupportedAlgorithm, "%q is not a signature algorithm", tag)
}

// GetRegisteredAlgorithms returns a sorted list of all registered provider tags.
// providers.LogRegistered reports it at startup.
func GetRegisteredAlgorithms() []algorithm.Tag {
	return providers.Keys()
}

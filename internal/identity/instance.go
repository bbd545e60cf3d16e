// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package identity

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/crypto"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/keygen"
	"github.com/demosnet/demoscore/internal/keys"
)

// MasterSeedSize is the size of generated master seeds and the minimum
// recommended size of supplied ones.
const MasterSeedSize = 128

// Instance is one isolated identity: an optional master seed and at most one
// keypair per algorithm. Instances share no mutable state.
type Instance struct {
	id  string
	log *slog.Logger

	mu         sync.RWMutex
	masterSeed []byte
	identities map[algorithm.Tag]*keys.Keypair
}

func newInstance(id string, log *slog.Logger) *Instance {
	return &Instance{
		id:         id,
		log:        log,
		identities: make(map[algorithm.Tag]*keys.Keypair),
	}
}

// ID returns the instance id.
func (i *Instance) ID() string {
	return i.id
}

// HasSeed reports whether a master seed is set.
func (i *Instance) HasSeed() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.masterSeed != nil
}

// MasterSeed returns a copy of the master seed, or nil if none is set.
func (i *Instance) MasterSeed() []byte {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return crypto.Clone(i.masterSeed)
}

// EnsureSeed makes sure the instance has a master seed. A supplied seed is
// adopted if none is set yet; supplying the current seed again is a no-op and
// supplying a different one fails with SeedAlreadySet. With no seed supplied
// and none set, a random MasterSeedSize-byte seed is generated.
func (i *Instance) EnsureSeed(seed []byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.ensureSeedLocked(seed)
}

func (i *Instance) ensureSeedLocked(seed []byte) error {
	if len(seed) > 0 {
		if i.masterSeed != nil {
			if bytes.Equal(i.masterSeed, seed) {
				return nil
			}
			return cryptoerr.New(cryptoerr.KindSeedAlreadySet, "instance %q already has a master seed", i.id)
		}
		if len(seed) < MasterSeedSize {
			i.log.Warn("master seed shorter than recommended",
				"instance", i.id, "bytes", len(seed), "recommended", MasterSeedSize)
		}
		i.masterSeed = crypto.Clone(seed)
		return nil
	}

	if i.masterSeed != nil {
		return nil
	}
	generated := make([]byte, MasterSeedSize)
	if _, err := rand.Read(generated); err != nil {
		return fmt.Errorf("failed to generate master seed: %w", err)
	}
	i.masterSeed = generated
	i.log.Debug("generated master seed", "instance", i.id)
	return nil
}

// DeriveSeed returns the per-algorithm seed for tag. A supplied seed is
// expanded directly and leaves the instance untouched. Without one, the
// master seed is expanded, generating it first if none is set.
func (i *Instance) DeriveSeed(tag algorithm.Tag, seed []byte) ([]byte, error) {
	if _, err := algorithm.GetMetadata(tag); err != nil {
		return nil, err
	}
	if len(seed) > 0 {
		return DeriveSeed(seed, tag)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureSeedLocked(nil); err != nil {
		return nil, err
	}
	return DeriveSeed(i.masterSeed, tag)
}

// GenerateIdentity derives the keypair for tag from the master seed and
// stores it. A supplied seed is adopted as the master seed first (see
// EnsureSeed), so every stored keypair descends from the same root. Calling
// it again with the same seed yields the identical keypair.
func (i *Instance) GenerateIdentity(tag algorithm.Tag, seed []byte) (*keys.Keypair, error) {
	if _, err := algorithm.GetMetadata(tag); err != nil {
		return nil, err
	}
	if err := i.EnsureSeed(seed); err != nil {
		return nil, err
	}
	derived, err := i.DeriveSeed(tag, nil)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(derived)

	kp, err := keygen.Generate(tag, derived)
	if err != nil {
		return nil, fmt.Errorf("generate %s identity: %w", tag, err)
	}

	i.mu.Lock()
	i.identities[tag] = kp
	i.mu.Unlock()

	i.log.Debug("generated identity", "instance", i.id, "algorithm", tag)
	return kp.Clone(), nil
}

// GenerateAllIdentities generates a keypair for every algorithm. Key
// generation runs in parallel; either every keypair is stored or, on error,
// none is.
func (i *Instance) GenerateAllIdentities(seed []byte) error {
	tags := algorithm.All()
	derived := make([][]byte, len(tags))

	i.mu.Lock()
	if err := i.ensureSeedLocked(seed); err != nil {
		i.mu.Unlock()
		return err
	}
	for n, tag := range tags {
		d, err := DeriveSeed(i.masterSeed, tag)
		if err != nil {
			i.mu.Unlock()
			return err
		}
		derived[n] = d
	}
	i.mu.Unlock()

	defer func() {
		for _, d := range derived {
			crypto.ZeroBytes(d)
		}
	}()

	results := make([]*keys.Keypair, len(tags))
	var g errgroup.Group
	for n, tag := range tags {
		g.Go(func() error {
			kp, err := keygen.Generate(tag, derived[n])
			if err != nil {
				return fmt.Errorf("generate %s identity: %w", tag, err)
			}
			results[n] = kp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	i.mu.Lock()
	for n, tag := range tags {
		i.identities[tag] = results[n]
	}
	i.mu.Unlock()

	i.log.Debug("generated all identities", "instance", i.id, "count", len(tags))
	return nil
}

// Identity returns a copy of the keypair for tag. It fails with
// IdentityNotInitialized if the keypair was never generated.
func (i *Instance) Identity(tag algorithm.Tag) (*keys.Keypair, error) {
	if _, err := algorithm.GetMetadata(tag); err != nil {
		return nil, err
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	kp, ok := i.identities[tag]
	if !ok {
		return nil, cryptoerr.New(cryptoerr.KindIdentityNotInitialized, "no %s identity in instance %q", tag, i.id)
	}
	return kp.Clone(), nil
}

// Identities returns the tags with a generated keypair, in canonical order.
func (i *Instance) Identities() []algorithm.Tag {
	i.mu.RLock()
	defer i.mu.RUnlock()
	var out []algorithm.Tag
	for _, tag := range algorithm.All() {
		if _, ok := i.identities[tag]; ok {
			out = append(out, tag)
		}
	}
	return out
}

// wipe zeroes all key material held by the instance.
func (i *Instance) wipe() {
	i.mu.Lock()
	defer i.mu.Unlock()
	for tag, kp := range i.identities {
		kp.Zero()
		delete(i.identities, tag)
	}
	crypto.ZeroBytes(i.masterSeed)
	i.masterSeed = nil
}

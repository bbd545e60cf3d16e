// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package identity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/demosnet/demoscore/internal/crypto"
	"github.com/demosnet/demoscore/internal/fsutil"
	"github.com/demosnet/demoscore/internal/util"
)

const seedFileExt = ".seed"

// ErrSeedNotFound is returned by SeedStore.Load when no seed file exists.
var ErrSeedNotFound = errors.New("seed not found")

// SeedStore persists master seeds as passphrase envelopes (argon2id +
// AES-256-GCM), one file per instance id: <dir>/<id>.seed.
type SeedStore struct {
	dir string
}

// NewSeedStore returns a store rooted at <dataDir>/seeds.
func NewSeedStore(dataDir string) *SeedStore {
	return &SeedStore{dir: filepath.Join(dataDir, "seeds")}
}

// Dir returns the directory seed files live in.
func (s *SeedStore) Dir() string {
	return s.dir
}

func (s *SeedStore) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid instance id %q", id)
	}
	return filepath.Join(s.dir, id+seedFileExt), nil
}

// Exists reports whether a seed is stored for id.
func (s *SeedStore) Exists(id string) bool {
	p, err := s.path(id)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Save encrypts seed under passphrase and writes it for id, replacing any
// existing file.
func (s *SeedStore) Save(id string, seed, passphrase []byte) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if len(passphrase) == 0 {
		return fmt.Errorf("passphrase is required")
	}
	env, err := crypto.SealWithPassphrase(seed, passphrase)
	if err != nil {
		return fmt.Errorf("failed to encrypt seed: %w", err)
	}
	if err := fsutil.MkdirAll(s.dir); err != nil {
		return fmt.Errorf("failed to create seed directory: %w", err)
	}
	if err := fsutil.WriteFile(p, env); err != nil {
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	util.Debug("seed saved", "instance", id, "path", p)
	return nil
}

// Load reads and decrypts the seed for id. A wrong passphrase fails with a
// DecryptionFailed error.
func (s *SeedStore) Load(id string, passphrase []byte) ([]byte, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSeedNotFound, id)
		}
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	if !crypto.IsEnvelope(data) {
		return nil, fmt.Errorf("seed file %s is not an encrypted envelope", p)
	}
	seed, err := crypto.OpenWithPassphrase(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt seed for %q: %w", id, err)
	}
	return seed, nil
}

// Delete removes the seed file for id. Deleting a missing seed is not an error.
func (s *SeedStore) Delete(id string) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// List returns the ids with a stored seed, sorted.
func (s *SeedStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, seedFileExt) || strings.HasPrefix(name, ".") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, seedFileExt))
	}
	sort.Strings(ids)
	return ids, nil
}

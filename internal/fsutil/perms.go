// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package fsutil provides filesystem helpers for the demos data directory.
// Seed files hold secret material, so they are owner-only (0600 files,
// 0700 dirs) regardless of umask.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PrivateDirPerm is the permission mode for data directories.
const PrivateDirPerm os.FileMode = 0700

// PrivateFilePerm is the permission mode for seed and config files.
const PrivateFilePerm os.FileMode = 0600

// MkdirAll creates a directory and all parents with owner-only permissions.
// Unlike os.MkdirAll, this explicitly sets permissions after creation to
// bypass umask restrictions.
func MkdirAll(path string) error {
	if err := os.MkdirAll(path, PrivateDirPerm); err != nil {
		return err
	}
	return os.Chmod(path, PrivateDirPerm)
}

// WriteFile atomically replaces path with data. The data is written to a
// temporary file in the same directory, synced, and renamed into place.
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(PrivateFilePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

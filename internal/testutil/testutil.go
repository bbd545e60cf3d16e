// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/demosnet/demoscore/internal/providers"
	"github.com/demosnet/demoscore/internal/util"
)

// SeedSize matches the recommended master seed length.
const SeedSize = 128

// Config returns the default config with a small RSA modulus, which keeps
// deterministic prime search fast.
func Config() util.Config {
	cfg := util.DefaultConfig()
	cfg.RSABits = 1024
	return cfg
}

// RegisterProviders registers every algorithm under Config().
func RegisterProviders() {
	providers.RegisterAllWithConfig(Config())
}

// QuietLogger discards all output.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Seed returns a SeedSize master seed filled with b.
func Seed(b byte) []byte {
	return bytes.Repeat([]byte{b}, SeedSize)
}

// TempFile creates a temporary file with the given content, returning the path.
// The file is automatically cleaned up when the test completes.
func TempFile(t *testing.T, content []byte) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "testfile-*")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.Write(content); err != nil {
		_ = tmpFile.Close()
		t.Fatalf("Failed to write temp file: %v", err)
	}
	_ = tmpFile.Close()
	return tmpFile.Name()
}

// AssertErrorIs fails the test unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("error = %v, want %v", err, target)
	}
}

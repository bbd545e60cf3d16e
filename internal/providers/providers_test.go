// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package providers

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/encryption"
	"github.com/demosnet/demoscore/internal/keygen"
	"github.com/demosnet/demoscore/internal/signing"
)

func TestRegisterAllCoversEveryAlgorithm(t *testing.T) {
	RegisterAll()
	RegisterAll() // idempotent

	for _, tag := range algorithm.All() {
		meta, err := algorithm.GetMetadata(tag)
		if err != nil {
			t.Fatalf("%s: metadata missing: %v", tag, err)
		}

		g, err := keygen.GetGenerator(tag)
		if err != nil {
			t.Errorf("%s: generator missing: %v", tag, err)
		} else if g.SeedSize() != meta.SeedSize() {
			t.Errorf("%s: generator seed size %d != metadata seed size %d", tag, g.SeedSize(), meta.SeedSize())
		}

		canSign := meta.Capabilities()&algorithm.CapSign != 0
		if hasSigner := signing.GetProvider(tag) != nil; hasSigner != canSign {
			t.Errorf("%s: signing provider registered=%v, capability=%v", tag, hasSigner, canSign)
		}

		canEncrypt := meta.Capabilities()&algorithm.CapEncrypt != 0
		_, err = encryption.Lookup(tag)
		if hasEncrypter := err == nil; hasEncrypter != canEncrypt {
			t.Errorf("%s: encryption provider registered=%v, capability=%v", tag, hasEncrypter, canEncrypt)
		}
	}
}

func TestLogRegistered(t *testing.T) {
	RegisterAll()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	LogRegistered(log)

	got := buf.String()
	if !strings.Contains(got, "loaded providers") {
		t.Fatalf("log = %q", got)
	}
	for _, tag := range algorithm.All() {
		if !strings.Contains(got, string(tag)) {
			t.Errorf("log does not mention %s: %q", tag, got)
		}
	}
}

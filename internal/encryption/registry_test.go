// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package encryption

import (
	"errors"
	"testing"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/keys"
)

type xorProvider struct{}

func (xorProvider) Algorithm() algorithm.Tag { return "xor-test" }

func (xorProvider) Encrypt(peerPublicKey, plaintext []byte) (*Sealed, error) {
	out := make([]byte, len(plaintext))
	for i, b := range plaintext {
		out[i] = b ^ peerPublicKey[0]
	}
	return &Sealed{Data: out}, nil
}

func (xorProvider) Decrypt(kp *keys.Keypair, sealed *Sealed) ([]byte, error) {
	return xorProvider{}.Encrypt(kp.PublicKey, sealed.Data)
}

func TestRegisterAndLookup(t *testing.T) {
	Register(xorProvider{})

	p, err := Lookup("xor-test")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	kp := &keys.Keypair{PublicKey: []byte{0x5a}}
	sealed, _ := p.Encrypt(kp.PublicKey, []byte("abc"))
	plain, _ := p.Decrypt(kp, sealed)
	if string(plain) != "abc" {
		t.Errorf("round trip = %q, want %q", plain, "abc")
	}

	found := false
	for _, tag := range GetRegisteredAlgorithms() {
		if tag == "xor-test" {
			found = true
		}
	}
	if !found {
		t.Error("registered tag missing from GetRegisteredAlgorithms")
	}
}

func TestLookupSignatureOnlyTag(t *testing.T) {
	for _, tag := range []algorithm.Tag{algorithm.Ed25519, algorithm.Falcon, algorithm.MLDSA, "unknown"} {
		if _, err := Lookup(tag); !errors.Is(err, cryptoerr.ErrUnsupportedAlgorithm) {
			t.Errorf("Lookup(%s): expected ErrUnsupportedAlgorithm, got %v", tag, err)
		}
	}
}

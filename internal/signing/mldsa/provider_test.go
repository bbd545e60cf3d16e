// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package mldsa

import (
	"bytes"
	"errors"
	"testing"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/keygen"
	"github.com/demosnet/demoscore/internal/signing"
)

func init() {
	RegisterAll()
}

func testSeed(b byte) []byte {
	return bytes.Repeat([]byte{b}, SeedSize)
}

func TestSizes(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"seed", SeedSize, 32},
		{"public key", PublicKeySize, 1952},
		{"private key", PrivateKeySize, 4032},
		{"signature", SignatureSize, 3309},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s size = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestGenerateFromSeed_Deterministic(t *testing.T) {
	p := &MLDSAProvider{}
	a, err := p.GenerateFromSeed(testSeed(1))
	if err != nil {
		t.Fatalf("GenerateFromSeed failed: %v", err)
	}
	b, _ := p.GenerateFromSeed(testSeed(1))
	c, _ := p.GenerateFromSeed(testSeed(2))

	if !bytes.Equal(a.PublicKey, b.PublicKey) || !bytes.Equal(a.PrivateKey, b.PrivateKey) {
		t.Error("same seed produced different keypairs")
	}
	if bytes.Equal(a.PublicKey, c.PublicKey) {
		t.Error("different seeds produced the same public key")
	}
	if len(a.PublicKey) != PublicKeySize || len(a.PrivateKey) != PrivateKeySize {
		t.Errorf("unexpected key lengths pub=%d priv=%d", len(a.PublicKey), len(a.PrivateKey))
	}
}

func TestGenerateFromSeed_InvalidSeed(t *testing.T) {
	_, err := (&MLDSAProvider{}).GenerateFromSeed(make([]byte, 31))
	if !errors.Is(err, cryptoerr.ErrInvalidSeed) {
		t.Errorf("expected ErrInvalidSeed, got %v", err)
	}
}

func TestSignVerify(t *testing.T) {
	p := &MLDSAProvider{}
	kp, err := p.GenerateFromSeed(testSeed(3))
	if err != nil {
		t.Fatalf("GenerateFromSeed failed: %v", err)
	}
	msg := []byte("commit me")

	sig, err := p.Sign(kp, msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	again, _ := p.Sign(kp, msg)
	if !bytes.Equal(sig, again) {
		t.Error("ML-DSA signing should be deterministic")
	}

	ok, err := p.Verify(kp.PublicKey, msg, sig)
	if err != nil || !ok {
		t.Fatalf("Verify = %v, %v; want true, nil", ok, err)
	}

	tampered := append([]byte(nil), sig...)
	tampered[100] ^= 0x01
	if ok, _ := p.Verify(kp.PublicKey, msg, tampered); ok {
		t.Error("tampered signature verified")
	}
	if ok, _ := p.Verify(kp.PublicKey, []byte("commit mE"), sig); ok {
		t.Error("signature verified for a different message")
	}
	if ok, _ := p.Verify(kp.PublicKey, msg, sig[:SignatureSize-1]); ok {
		t.Error("truncated signature verified")
	}
}

func TestVerify_MalformedPublicKey(t *testing.T) {
	if _, err := (&MLDSAProvider{}).Verify([]byte("short"), []byte("m"), nil); err == nil {
		t.Error("expected error for malformed public key")
	}
}

func TestRegisterAll(t *testing.T) {
	if signing.GetProvider(algorithm.MLDSA) == nil {
		t.Error("ml-dsa signing provider not registered")
	}
	if _, err := keygen.GetGenerator(algorithm.MLDSA); err != nil {
		t.Errorf("ml-dsa generator not registered: %v", err)
	}
}

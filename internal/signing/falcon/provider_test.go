// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package falcon

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

func TestGenerateFromSeed(t *testing.T) {
	p := &FalconProvider{}
	kp, err := p.GenerateFromSeed(testSeed(3))
	if err != nil {
		t.Fatalf("GenerateFromSeed failed: %v", err)
	}
	if len(kp.PublicKey) != PublicKeySize {
		t.Errorf("public key length = %d, want %d", len(kp.PublicKey), PublicKeySize)
	}
	if len(kp.PrivateKey) != PrivateKeySize {
		t.Errorf("private key length = %d, want %d", len(kp.PrivateKey), PrivateKeySize)
	}
	if !bytes.Equal(kp.AuxSeed, testSeed(3)) {
		t.Error("aux seed should be the generation seed")
	}
	if kp.Algorithm != algorithm.Falcon {
		t.Errorf("algorithm = %s, want falcon", kp.Algorithm)
	}
}

func TestGenerateFromSeed_Deterministic(t *testing.T) {
	p := &FalconProvider{}
	a, err := p.GenerateFromSeed(testSeed(9))
	if err != nil {
		t.Fatalf("GenerateFromSeed failed: %v", err)
	}
	b, _ := p.GenerateFromSeed(testSeed(9))
	c, _ := p.GenerateFromSeed(testSeed(10))

	if !bytes.Equal(a.PublicKey, b.PublicKey) || !bytes.Equal(a.PrivateKey, b.PrivateKey) {
		t.Error("same seed produced different keypairs")
	}
	if bytes.Equal(a.PublicKey, c.PublicKey) {
		t.Error("different seeds produced the same public key")
	}
}

func TestGenerateFromSeed_InvalidSeed(t *testing.T) {
	for _, n := range []int{0, 32, 64} {
		_, err := (&FalconProvider{}).GenerateFromSeed(make([]byte, n))
		if !errors.Is(err, cryptoerr.ErrInvalidSeed) {
			t.Errorf("seed len %d: expected ErrInvalidSeed, got %v", n, err)
		}
	}
}

func TestSignVerify(t *testing.T) {
	p := &FalconProvider{}
	kp, err := p.GenerateFromSeed(testSeed(4))
	if err != nil {
		t.Fatalf("GenerateFromSeed failed: %v", err)
	}
	msg := []byte("9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08")

	sig, err := p.Sign(kp, msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) == 0 || len(sig) > MaxSignatureSize {
		t.Fatalf("signature length %d out of range", len(sig))
	}

	ok, err := p.Verify(kp.PublicKey, msg, sig)
	if err != nil || !ok {
		t.Fatalf("Verify = %v, %v; want true, nil", ok, err)
	}

	other := append([]byte(nil), msg...)
	other[0] ^= 0x01
	if ok, _ := p.Verify(kp.PublicKey, other, sig); ok {
		t.Error("signature verified for a different message")
	}

	tampered := append([]byte(nil), sig...)
	tampered[len(tampered)/2] ^= 0x01
	if ok, _ := p.Verify(kp.PublicKey, msg, tampered); ok {
		t.Error("tampered signature verified")
	}

	if ok, _ := p.Verify(kp.PublicKey, msg, nil); ok {
		t.Error("empty signature verified")
	}
}

func TestVerify_WrongKey(t *testing.T) {
	p := &FalconProvider{}
	signer, _ := p.GenerateFromSeed(testSeed(5))
	other, _ := p.GenerateFromSeed(testSeed(6))
	msg := []byte("message")

	sig, err := p.Sign(signer, msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if ok, _ := p.Verify(other.PublicKey, msg, sig); ok {
		t.Error("signature verified under an unrelated public key")
	}
	if _, err := p.Verify(other.PublicKey[:32], msg, sig); err == nil {
		t.Error("expected error for truncated public key")
	}
}

func TestRegisterAll(t *testing.T) {
	if signing.GetProvider(algorithm.Falcon) == nil {
		t.Error("falcon signing provider not registered")
	}
	if _, err := keygen.GetGenerator(algorithm.Falcon); err != nil {
		t.Errorf("falcon generator not registered: %v", err)
	}
}

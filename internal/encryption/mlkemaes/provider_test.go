// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package mlkemaes

import (
	"bytes"
	"errors"
	"testing"

	"github.com/demosnet/demoscore/internal/crypto"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/encryption"
	"github.com/demosnet/demoscore/internal/keys"
)

func init() {
	RegisterAll()
}

func newKeypair(t *testing.T, b byte) *keys.Keypair {
	t.Helper()
	kp, err := (&MLKEMAESProvider{}).GenerateFromSeed(bytes.Repeat([]byte{b}, SeedSize))
	if err != nil {
		t.Fatalf("GenerateFromSeed failed: %v", err)
	}
	return kp
}

func TestGenerateFromSeed_Deterministic(t *testing.T) {
	a := newKeypair(t, 1)
	b := newKeypair(t, 1)
	c := newKeypair(t, 2)

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
	_, err := (&MLKEMAESProvider{}).GenerateFromSeed(make([]byte, 32))
	if !errors.Is(err, cryptoerr.ErrInvalidSeed) {
		t.Errorf("expected ErrInvalidSeed, got %v", err)
	}
}

func TestEncryptDecrypt(t *testing.T) {
	p := &MLKEMAESProvider{}
	kp := newKeypair(t, 3)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"short", []byte("hi")},
		{"long", bytes.Repeat([]byte("demos"), 1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := p.Encrypt(kp.PublicKey, tt.plaintext)
			if err != nil {
				t.Fatalf("Encrypt failed: %v", err)
			}
			if len(sealed.CipherText) != CipherTextSize {
				t.Errorf("cipher text length = %d, want %d", len(sealed.CipherText), CipherTextSize)
			}
			if len(sealed.Data) != crypto.GCMNonceSize+len(tt.plaintext)+crypto.GCMTagSize {
				t.Errorf("sealed data length = %d", len(sealed.Data))
			}
			plain, err := p.Decrypt(kp, sealed)
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if !bytes.Equal(plain, tt.plaintext) {
				t.Error("round trip mismatch")
			}
		})
	}
}

func TestDecrypt_Failures(t *testing.T) {
	p := &MLKEMAESProvider{}
	kp := newKeypair(t, 4)
	sealed, err := p.Encrypt(kp.PublicKey, []byte("secret"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	flip := func(b []byte, i int) []byte {
		out := append([]byte(nil), b...)
		out[i] ^= 0x01
		return out
	}

	tests := []struct {
		name   string
		kp     *keys.Keypair
		sealed *encryption.Sealed
	}{
		{"tampered data", kp, &encryption.Sealed{Data: flip(sealed.Data, crypto.GCMNonceSize), CipherText: sealed.CipherText}},
		{"tampered tag", kp, &encryption.Sealed{Data: flip(sealed.Data, len(sealed.Data)-1), CipherText: sealed.CipherText}},
		{"tampered encapsulation", kp, &encryption.Sealed{Data: sealed.Data, CipherText: flip(sealed.CipherText, 0)}},
		{"truncated data", kp, &encryption.Sealed{Data: sealed.Data[:10], CipherText: sealed.CipherText}},
		{"short encapsulation", kp, &encryption.Sealed{Data: sealed.Data, CipherText: sealed.CipherText[:100]}},
		{"wrong recipient", newKeypair(t, 5), sealed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Decrypt(tt.kp, tt.sealed)
			if !errors.Is(err, cryptoerr.ErrDecryptionFailed) {
				t.Errorf("expected ErrDecryptionFailed, got %v", err)
			}
		})
	}
}

func TestEncrypt_InvalidPublicKey(t *testing.T) {
	if _, err := (&MLKEMAESProvider{}).Encrypt([]byte("nope"), []byte("x")); err == nil {
		t.Error("expected error for malformed public key")
	}
}

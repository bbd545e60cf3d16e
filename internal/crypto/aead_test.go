// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package crypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/demosnet/demoscore/internal/cryptoerr"
)

var testKey = []byte("test-master-key-32-bytes-long!!!")

func TestSealOpenGCM_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"short", []byte("hi")},
		{"empty", []byte{}},
		{"binary", []byte{0x00, 0xff, 0x10, 0x80}},
		{"large", bytes.Repeat([]byte("x"), 64*1024)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := SealGCM(testKey, tt.plaintext)
			if err != nil {
				t.Fatalf("SealGCM failed: %v", err)
			}
			if len(sealed) != GCMNonceSize+len(tt.plaintext)+GCMTagSize {
				t.Errorf("sealed length = %d, want nonce+plaintext+tag = %d",
					len(sealed), GCMNonceSize+len(tt.plaintext)+GCMTagSize)
			}
			opened, err := OpenGCM(testKey, sealed)
			if err != nil {
				t.Fatalf("OpenGCM failed: %v", err)
			}
			if !bytes.Equal(opened, tt.plaintext) {
				t.Error("round trip mismatch")
			}
		})
	}
}

func TestSealGCM_FreshNonce(t *testing.T) {
	a, _ := SealGCM(testKey, []byte("same"))
	b, _ := SealGCM(testKey, []byte("same"))
	if bytes.Equal(a[:GCMNonceSize], b[:GCMNonceSize]) {
		t.Error("two seals reused a nonce")
	}
}

func TestOpenGCM_FailsClosed(t *testing.T) {
	sealed, err := SealGCM(testKey, []byte("attack at dawn"))
	if err != nil {
		t.Fatal(err)
	}

	flipped := Clone(sealed)
	flipped[len(flipped)-1] ^= 0x01

	otherKey := bytes.Repeat([]byte{7}, AESKeySize)

	tests := []struct {
		name string
		key  []byte
		data []byte
	}{
		{"empty", testKey, nil},
		{"shorter than nonce+tag", testKey, sealed[:GCMNonceSize+GCMTagSize-1]},
		{"truncated ciphertext", testKey, sealed[:len(sealed)-3]},
		{"flipped tag bit", testKey, flipped},
		{"wrong key", otherKey, sealed},
		{"bad key size", []byte("short"), sealed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenGCM(tt.key, tt.data)
			if !errors.Is(err, cryptoerr.ErrDecryptionFailed) {
				t.Errorf("expected ErrDecryptionFailed, got %v", err)
			}
		})
	}
}

func TestZeroBytes(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	ZeroBytes(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("b[%d] = %d, want 0", i, v)
		}
	}
	ZeroBytes(nil) // must not panic
}

func TestClone(t *testing.T) {
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
	src := []byte{1, 2}
	dst := Clone(src)
	dst[0] = 9
	if src[0] != 1 {
		t.Error("Clone shares backing array")
	}
}

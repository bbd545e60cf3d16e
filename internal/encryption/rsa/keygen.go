// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package rsa

import (
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/chacha20"
)

const publicExponent = 65537

// keystream is a deterministic byte source: the ChaCha20 keystream under a
// 32-byte seed and an all-zero nonce.
type keystream struct {
	c *chacha20.Cipher
}

func newKeystream(seed []byte) (*keystream, error) {
	c, err := chacha20.NewUnauthenticatedCipher(seed, make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, fmt.Errorf("failed to key DRBG: %w", err)
	}
	return &keystream{c: c}, nil
}

func (k *keystream) Read(p []byte) (int, error) {
	clear(p)
	k.c.XORKeyStream(p, p)
	return len(p), nil
}

// randomPrime returns a prime of exactly bits bits with the top two bits set,
// so the product of two such primes has exactly twice as many bits.
func randomPrime(r io.Reader, bits int) (*big.Int, error) {
	b := uint(bits % 8)
	if b == 0 {
		b = 8
	}
	buf := make([]byte, (bits+7)/8)
	p := new(big.Int)

	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		buf[0] &= uint8(int(1<<b) - 1)
		if b >= 2 {
			buf[0] |= 3 << (b - 2)
		} else {
			buf[0] |= 1
			if len(buf) > 1 {
				buf[1] |= 0x80
			}
		}
		buf[len(buf)-1] |= 1

		p.SetBytes(buf)
		if p.ProbablyPrime(20) {
			return p, nil
		}
	}
}

// generateKey builds an RSA key whose primes come from r. crypto/rsa's
// GenerateKey does not consume its reader deterministically, so it cannot be
// used when the same seed must always give the same key.
func generateKey(r io.Reader, bits int) (*rsa.PrivateKey, error) {
	e := big.NewInt(publicExponent)
	one := big.NewInt(1)

	for {
		p, err := randomPrime(r, bits/2)
		if err != nil {
			return nil, err
		}
		q, err := randomPrime(r, bits-bits/2)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}

		n := new(big.Int).Mul(p, q)
		if n.BitLen() != bits {
			continue
		}

		pm1 := new(big.Int).Sub(p, one)
		qm1 := new(big.Int).Sub(q, one)
		phi := new(big.Int).Mul(pm1, qm1)
		d := new(big.Int).ModInverse(e, phi)
		if d == nil {
			continue
		}

		priv := &rsa.PrivateKey{
			PublicKey: rsa.PublicKey{N: n, E: publicExponent},
			D:         d,
			Primes:    []*big.Int{p, q},
		}
		if err := priv.Validate(); err != nil {
			return nil, fmt.Errorf("generated RSA key failed validation: %w", err)
		}
		priv.Precompute()
		return priv, nil
	}
}

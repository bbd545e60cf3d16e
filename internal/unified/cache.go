// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package unified

import (
	"crypto/sha256"
	"encoding/binary"

	lru "github.com/hashicorp/golang-lru/v2"
)

// verifyCache memoizes verification results. Verification is a pure function
// of the SignedObject, so a hit is always equivalent to recomputing.
type verifyCache struct {
	entries *lru.Cache[[sha256.Size]byte, bool]
}

func newVerifyCache(size int) (*verifyCache, error) {
	c, err := lru.New[[sha256.Size]byte, bool](size)
	if err != nil {
		return nil, err
	}
	return &verifyCache{entries: c}, nil
}

// cacheKey hashes the length-prefixed fields so no two distinct objects
// share a key.
func cacheKey(obj *SignedObject) [sha256.Size]byte {
	h := sha256.New()
	var n [8]byte
	for _, field := range [][]byte{[]byte(obj.Algorithm), obj.PublicKey, obj.Message, obj.Signature} {
		binary.BigEndian.PutUint64(n[:], uint64(len(field)))
		h.Write(n[:])
		h.Write(field)
	}
	var key [sha256.Size]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *verifyCache) get(obj *SignedObject) (valid, ok bool) {
	if c == nil {
		return false, false
	}
	return c.entries.Get(cacheKey(obj))
}

func (c *verifyCache) put(obj *SignedObject, valid bool) {
	if c == nil {
		return
	}
	c.entries.Add(cacheKey(obj), valid)
}

func (c *verifyCache) size() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package unified is the single dispatch surface for signing, verification,
// encryption and decryption across all algorithms. Every operation takes an
// explicit algorithm tag; keys come from an identity.Instance.
package unified

import (
	"fmt"
	"log/slog"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/encryption"
	"github.com/demosnet/demoscore/internal/identity"
	"github.com/demosnet/demoscore/internal/keys"
	"github.com/demosnet/demoscore/internal/signing"
	"github.com/demosnet/demoscore/internal/util"
)

// Router routes crypto operations to the provider for each algorithm tag,
// using the keypairs of one identity instance.
type Router struct {
	inst      *identity.Instance
	log       *slog.Logger
	metrics   *Metrics
	cacheSize int
	cache     *verifyCache
}

// Option configures a Router.
type Option func(*Router)

// WithVerifyCache memoizes up to size verification results. Zero disables it.
func WithVerifyCache(size int) Option {
	return func(r *Router) { r.cacheSize = size }
}

// WithMetrics records every operation in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

// WithLogger sets the router's logger. The default is util.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.log = l }
}

// NewRouter returns a router over inst.
func NewRouter(inst *identity.Instance, opts ...Option) (*Router, error) {
	if inst == nil {
		return nil, fmt.Errorf("identity instance is nil")
	}
	r := &Router{inst: inst, log: util.Logger}
	for _, opt := range opts {
		opt(r)
	}
	if r.cacheSize > 0 {
		c, err := newVerifyCache(r.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create verify cache: %w", err)
		}
		r.cache = c
	}
	return r, nil
}

// NewDefaultRouter returns a router bound to the registry's default instance.
func NewDefaultRouter(reg *identity.Registry, opts ...Option) (*Router, error) {
	return NewRouter(reg.Default(), opts...)
}

// Instance returns the identity instance the router signs with.
func (r *Router) Instance() *identity.Instance {
	return r.inst
}

// GenerateIdentity derives and stores the keypair for tag.
func (r *Router) GenerateIdentity(tag algorithm.Tag, seed []byte) (*keys.Keypair, error) {
	kp, err := r.inst.GenerateIdentity(tag, seed)
	r.metrics.observe("generate", tag, resultOf(err))
	return kp, err
}

// GenerateAllIdentities derives and stores a keypair for every algorithm.
func (r *Router) GenerateAllIdentities(seed []byte) error {
	err := r.inst.GenerateAllIdentities(seed)
	for _, tag := range algorithm.All() {
		r.metrics.observe("generate", tag, resultOf(err))
	}
	return err
}

// Identity returns the keypair for tag.
func (r *Router) Identity(tag algorithm.Tag) (*keys.Keypair, error) {
	return r.inst.Identity(tag)
}

// Sign signs message with the instance's keypair for tag. It fails with
// IdentityNotInitialized if that keypair was never generated.
func (r *Router) Sign(tag algorithm.Tag, message []byte) (*SignedObject, error) {
	obj, err := r.sign(tag, message)
	r.metrics.observe("sign", tag, resultOf(err))
	return obj, err
}

func (r *Router) sign(tag algorithm.Tag, message []byte) (*SignedObject, error) {
	provider, err := signing.Lookup(tag)
	if err != nil {
		return nil, err
	}
	kp, err := r.inst.Identity(tag)
	if err != nil {
		return nil, err
	}
	defer kp.Zero()

	sig, err := provider.Sign(kp, message)
	if err != nil {
		return nil, fmt.Errorf("%s sign: %w", tag, err)
	}
	return &SignedObject{
		Algorithm: tag,
		Signature: sig,
		Message:   append([]byte(nil), message...),
		PublicKey: append([]byte(nil), kp.PublicKey...),
	}, nil
}

// Verify reports whether obj carries a valid signature. It reads no
// instance state. Unknown tags fail with UnsupportedAlgorithm.
func (r *Router) Verify(obj *SignedObject) (bool, error) {
	ok, err := r.verify(obj)
	switch {
	case err != nil:
		r.metrics.observe("verify", tagOf(obj), resultError)
	case ok:
		r.metrics.observe("verify", tagOf(obj), resultOK)
	default:
		r.metrics.observe("verify", tagOf(obj), resultInvalid)
	}
	return ok, err
}

func (r *Router) verify(obj *SignedObject) (bool, error) {
	if obj == nil {
		return false, fmt.Errorf("signed object is nil")
	}
	provider, err := signing.Lookup(obj.Algorithm)
	if err != nil {
		return false, err
	}
	if valid, hit := r.cache.get(obj); hit {
		return valid, nil
	}
	valid, err := provider.Verify(obj.PublicKey, obj.Message, obj.Signature)
	if err != nil {
		return false, err
	}
	r.cache.put(obj, valid)
	return valid, nil
}

// Encrypt encrypts data to peerPublicKey. With no peer key, it encrypts to
// the instance's own keypair for tag. Signature-only algorithms fail with
// UnsupportedAlgorithm.
func (r *Router) Encrypt(tag algorithm.Tag, data, peerPublicKey []byte) (*EncryptedObject, error) {
	obj, err := r.encrypt(tag, data, peerPublicKey)
	r.metrics.observe("encrypt", tag, resultOf(err))
	return obj, err
}

func (r *Router) encrypt(tag algorithm.Tag, data, peerPublicKey []byte) (*EncryptedObject, error) {
	provider, err := encryption.Lookup(tag)
	if err != nil {
		return nil, err
	}
	if len(peerPublicKey) == 0 {
		kp, err := r.inst.Identity(tag)
		if err != nil {
			return nil, err
		}
		peerPublicKey = kp.PublicKey
		kp.Zero()
	}
	sealed, err := provider.Encrypt(peerPublicKey, data)
	if err != nil {
		return nil, fmt.Errorf("%s encrypt: %w", tag, err)
	}
	return &EncryptedObject{
		Algorithm:     tag,
		EncryptedData: sealed.Data,
		CipherText:    sealed.CipherText,
	}, nil
}

// Decrypt opens obj with the instance's keypair for obj.Algorithm.
func (r *Router) Decrypt(obj *EncryptedObject) ([]byte, error) {
	plain, err := r.decrypt(obj)
	r.metrics.observe("decrypt", tagOfEncrypted(obj), resultOf(err))
	return plain, err
}

func (r *Router) decrypt(obj *EncryptedObject) ([]byte, error) {
	if obj == nil {
		return nil, cryptoerr.New(cryptoerr.KindDecryptionFailed, "encrypted object is nil")
	}
	provider, err := encryption.Lookup(obj.Algorithm)
	if err != nil {
		return nil, err
	}
	kp, err := r.inst.Identity(obj.Algorithm)
	if err != nil {
		return nil, err
	}
	defer kp.Zero()

	return provider.Decrypt(kp, &encryption.Sealed{Data: obj.EncryptedData, CipherText: obj.CipherText})
}

func tagOf(obj *SignedObject) algorithm.Tag {
	if obj == nil {
		return ""
	}
	return obj.Algorithm
}

func tagOfEncrypted(obj *EncryptedObject) algorithm.Tag {
	if obj == nil {
		return ""
	}
	return obj.Algorithm
}

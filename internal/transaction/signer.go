// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package transaction turns filled transaction content into a committed
// artifact: edits computed, content hashed, hash signed.
package transaction

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/canonical"
	"github.com/demosnet/demoscore/internal/cryptoerr"
	"github.com/demosnet/demoscore/internal/gcr"
	"github.com/demosnet/demoscore/internal/keys"
	"github.com/demosnet/demoscore/internal/protocol"
	"github.com/demosnet/demoscore/internal/unified"
	"github.com/demosnet/demoscore/internal/util"
)

// SignOptions controls Sign.
type SignOptions struct {
	// DualSign adds an ed25519 signature over the same hash when signing
	// with another algorithm.
	DualSign bool
}

// Signer signs transactions with one instance's identities.
type Signer struct {
	router *unified.Router
	edits  *gcr.Generator
	log    *slog.Logger
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithGasPolicy sets the gas policy used for edit generation.
func WithGasPolicy(p gcr.GasPolicy) SignerOption {
	return func(s *Signer) { s.edits = gcr.New(p) }
}

// WithSignerLogger overrides the logger.
func WithSignerLogger(l *slog.Logger) SignerOption {
	return func(s *Signer) { s.log = l }
}

// NewSigner returns a Signer routing through r.
func NewSigner(r *unified.Router, opts ...SignerOption) *Signer {
	s := &Signer{router: r, edits: gcr.New(nil), log: util.Logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Address returns the 0x-hex public key of the identity for tag.
func (s *Signer) Address(tag algorithm.Tag) (string, error) {
	kp, err := s.router.Identity(tag)
	if err != nil {
		return "", err
	}
	defer kp.Zero()
	return kp.PublicKeyHex(), nil
}

// Hash returns the content hash: lowercase hex SHA-256 of the canonical
// JSON of content.
func Hash(content *protocol.Content) (string, error) {
	return canonical.Hash(content)
}

// Sign commits tx with the identity for tag. Work happens on a copy; tx is
// replaced only when every step succeeds.
func (s *Signer) Sign(tx *protocol.Transaction, tag algorithm.Tag, opts SignOptions) error {
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}
	if isFinal(tx.Status) {
		return ErrFinalized
	}
	work := tx.Clone()
	c := &work.Content

	from, err := s.Address(tag)
	if err != nil {
		return err
	}
	c.From = from

	if c.Type.IsReflexive() && keys.NormalizeAddress(c.To) != keys.NormalizeAddress(c.From) {
		return cryptoerr.New(cryptoerr.KindInvalidReflexiveTransaction,
			"%s transaction from %s to %s", c.Type, c.From, c.To)
	}

	coSign := opts.DualSign && tag != algorithm.Ed25519
	if c.Ed25519Address == "" || coSign {
		edAddr, err := s.Address(algorithm.Ed25519)
		if err != nil {
			return err
		}
		if c.Ed25519Address == "" {
			c.Ed25519Address = edAddr
		} else if keys.NormalizeAddress(c.Ed25519Address) != keys.NormalizeAddress(edAddr) {
			return cryptoerr.New(cryptoerr.KindSignatureVerificationFailed,
				"ed25519_address %s is not this instance's ed25519 identity", c.Ed25519Address)
		}
	}

	// Edits are part of the hashed content and never reference a prior hash.
	work.Hash = ""
	work.Signature = nil
	work.Ed25519Signature = ""
	c.GCREdits = nil
	edits, err := s.edits.Generate(work, false)
	if err != nil {
		return fmt.Errorf("generate edits: %w", err)
	}
	c.GCREdits = edits
	work.Status = protocol.StatusContentFilled

	hash, err := Hash(c)
	if err != nil {
		return err
	}
	work.Hash = hash
	if err := Transition(work, protocol.StatusHashed); err != nil {
		return err
	}

	sig, err := s.router.Sign(tag, []byte(hash))
	if err != nil {
		return err
	}
	work.Signature = &protocol.Signature{Type: tag, Data: keys.ToHex(sig.Signature)}
	if err := Transition(work, protocol.StatusSigned); err != nil {
		return err
	}

	if coSign {
		edSig, err := s.router.Sign(algorithm.Ed25519, []byte(hash))
		if err != nil {
			return err
		}
		work.Ed25519Signature = keys.ToHex(edSig.Signature)
		if err := Transition(work, protocol.StatusDualSigned); err != nil {
			return err
		}
	}

	s.log.Debug("transaction signed", "type", c.Type, "algorithm", tag, "hash", hash, "dual", work.Ed25519Signature != "")
	*tx = *work
	return nil
}

// Verify checks tx the way a node would: the hash matches the content, the
// edits match regeneration, and every attached signature verifies. A mismatch
// fails with SignatureVerificationFailed.
func (s *Signer) Verify(tx *protocol.Transaction) error {
	return VerifyWith(s.router, s.edits, tx)
}

// VerifyWith is Verify with an explicit router and edit generator.
func VerifyWith(r *unified.Router, g *gcr.Generator, tx *protocol.Transaction) error {
	if tx == nil || tx.Signature == nil {
		return ErrNotSigned
	}
	c := &tx.Content

	hash, err := Hash(c)
	if err != nil {
		return err
	}
	if hash != tx.Hash {
		return cryptoerr.New(cryptoerr.KindSignatureVerificationFailed, "hash mismatch: content hashes to %s, transaction carries %s", hash, tx.Hash)
	}

	clean := tx.Clone()
	clean.Hash = ""
	clean.Content.GCREdits = nil
	regenerated, err := g.Generate(clean, false)
	if err != nil {
		return fmt.Errorf("regenerate edits: %w", err)
	}
	want, err := canonical.Marshal(regenerated)
	if err != nil {
		return err
	}
	got, err := canonical.Marshal(c.GCREdits)
	if err != nil {
		return err
	}
	if !bytes.Equal(want, got) {
		return cryptoerr.New(cryptoerr.KindSignatureVerificationFailed, "gcr edits do not match content")
	}

	if err := verifySignature(r, tx.Signature.Type, c.From, tx.Signature.Data, tx.Hash); err != nil {
		return err
	}
	if tx.Ed25519Signature != "" {
		if err := verifySignature(r, algorithm.Ed25519, c.Ed25519Address, tx.Ed25519Signature, tx.Hash); err != nil {
			return fmt.Errorf("ed25519 co-signature: %w", err)
		}
	}
	return nil
}

func verifySignature(r *unified.Router, tag algorithm.Tag, pubHex, sigHex, hash string) error {
	pub, err := keys.FromHex(pubHex)
	if err != nil {
		return cryptoerr.Wrap(cryptoerr.KindSignatureVerificationFailed, err, "decode %s public key", tag)
	}
	sig, err := keys.FromHex(sigHex)
	if err != nil {
		return cryptoerr.Wrap(cryptoerr.KindSignatureVerificationFailed, err, "decode %s signature", tag)
	}
	ok, err := r.Verify(&unified.SignedObject{
		Algorithm: tag,
		Signature: sig,
		Message:   []byte(hash),
		PublicKey: pub,
	})
	if err != nil {
		return err
	}
	if !ok {
		return cryptoerr.New(cryptoerr.KindSignatureVerificationFailed, "%s signature does not verify", tag)
	}
	return nil
}

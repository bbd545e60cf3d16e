// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package cryptoerr defines the error taxonomy shared by the key-management
// and transaction-commitment packages.
//
// Every failure carries a Kind. Callers match on kind with errors.Is against
// the exported sentinels:
//
//	if errors.Is(err, cryptoerr.ErrIdentityNotInitialized) { ... }
package cryptoerr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a failure.
type Kind string

const (
	KindIdentityNotInitialized      Kind = "IdentityNotInitialized"
	KindUnsupportedAlgorithm        Kind = "UnsupportedAlgorithm"
	KindInvalidReflexiveTransaction Kind = "InvalidReflexiveTransaction"
	KindDecryptionFailed            Kind = "DecryptionFailed"
	KindSignatureVerificationFailed Kind = "SignatureVerificationFailed"
	KindSerialization               Kind = "SerializationError"
	KindSeedAlreadySet              Kind = "SeedAlreadySet"
	KindInvalidSeed                 Kind = "InvalidSeed"
)

// Error is a failure tagged with a Kind and an optional underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel (message-less Error) of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is matching.
var (
	// ErrIdentityNotInitialized indicates an operation needs a keypair that was never generated.
	ErrIdentityNotInitialized = &Error{Kind: KindIdentityNotInitialized}

	// ErrUnsupportedAlgorithm indicates an unknown algorithm tag, or an operation
	// the algorithm does not provide (e.g. encrypting with a signature scheme).
	ErrUnsupportedAlgorithm = &Error{Kind: KindUnsupportedAlgorithm}

	// ErrInvalidReflexiveTransaction indicates from != to on a reflexive transaction type.
	ErrInvalidReflexiveTransaction = &Error{Kind: KindInvalidReflexiveTransaction}

	// ErrDecryptionFailed indicates malformed, truncated or tampered ciphertext.
	ErrDecryptionFailed = &Error{Kind: KindDecryptionFailed}

	// ErrSignatureVerificationFailed indicates a signature did not verify.
	ErrSignatureVerificationFailed = &Error{Kind: KindSignatureVerificationFailed}

	// ErrSerialization indicates content could not be canonically serialized.
	ErrSerialization = &Error{Kind: KindSerialization}

	// ErrSeedAlreadySet indicates an attempt to replace an instance's master seed.
	ErrSeedAlreadySet = &Error{Kind: KindSeedAlreadySet}

	// ErrInvalidSeed indicates seed material of the wrong size or encoding.
	ErrInvalidSeed = &Error{Kind: KindInvalidSeed}
)

// New returns an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error of the given kind wrapping cause.
func Wrap(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the Kind of the first Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

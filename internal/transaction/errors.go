// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package transaction

import "errors"

var (
	// ErrInvalidTransition indicates a status change the lifecycle does not allow
	ErrInvalidTransition = errors.New("invalid transaction status transition")

	// ErrFinalized indicates an attempt to re-sign a confirmed or broadcast transaction
	ErrFinalized = errors.New("transaction already confirmed")

	// ErrNotSigned indicates an operation that needs a signed transaction
	ErrNotSigned = errors.New("transaction not signed")

	// ErrRejected indicates the node refused the transaction
	ErrRejected = errors.New("transaction rejected by node")
)

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package transaction

import (
	"fmt"
	"slices"

	"github.com/demosnet/demoscore/internal/protocol"
)

var transitions = map[protocol.Status][]protocol.Status{
	protocol.StatusEmpty:         {protocol.StatusContentFilled},
	protocol.StatusContentFilled: {protocol.StatusHashed},
	protocol.StatusHashed:        {protocol.StatusSigned},
	protocol.StatusSigned:        {protocol.StatusDualSigned, protocol.StatusConfirmed},
	protocol.StatusDualSigned:    {protocol.StatusConfirmed},
	protocol.StatusConfirmed:     {protocol.StatusBroadcast},
}

// CanTransition reports whether a transaction may move from one status to
// the next.
func CanTransition(from, to protocol.Status) bool {
	if from == "" {
		from = protocol.StatusEmpty
	}
	return slices.Contains(transitions[from], to)
}

// Transition moves tx to status to.
func Transition(tx *protocol.Transaction, to protocol.Status) error {
	if !CanTransition(tx.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, tx.Status, to)
	}
	tx.Status = to
	return nil
}

// IsSigned reports whether tx carries a primary signature and has not been
// handed to a node yet.
func IsSigned(tx *protocol.Transaction) bool {
	return tx.Signature != nil &&
		(tx.Status == protocol.StatusSigned || tx.Status == protocol.StatusDualSigned)
}

func isFinal(s protocol.Status) bool {
	return s == protocol.StatusConfirmed || s == protocol.StatusBroadcast
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package transaction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/demosnet/demoscore/internal/protocol"
)

// ValidityData is a node's verdict on a transaction, signed by the node.
// It is handed back unchanged on broadcast.
type ValidityData struct {
	Data struct {
		Valid          bool                  `json:"valid"`
		ReferenceBlock uint64                `json:"reference_block"`
		Message        string                `json:"message"`
		GasOperation   json.RawMessage       `json:"gas_operation,omitempty"`
		Transaction    *protocol.Transaction `json:"transaction"`
	} `json:"data"`
	Signature    *protocol.Signature `json:"signature"`
	RPCPublicKey *protocol.Signature `json:"rpc_public_key,omitempty"`
}

// RPCResponse is a node reply. Result follows HTTP status semantics.
type RPCResponse struct {
	Result       int             `json:"result"`
	Response     json.RawMessage `json:"response"`
	RequireReply bool            `json:"require_reply"`
	Extra        json.RawMessage `json:"extra,omitempty"`
}

// ResultOK is the RPCResponse result of an accepted request.
const ResultOK = 200

// Node is the validating node as seen by the client. Implementations own the
// transport.
type Node interface {
	// Confirm asks the node to validate tx without applying it.
	Confirm(ctx context.Context, tx *protocol.Transaction) (*ValidityData, error)

	// Broadcast asks the node to apply a previously confirmed transaction.
	Broadcast(ctx context.Context, validity *ValidityData) (*RPCResponse, error)
}

// Submit confirms then broadcasts a signed transaction, advancing its status
// as each step is accepted.
func Submit(ctx context.Context, tx *protocol.Transaction, node Node) (*RPCResponse, error) {
	if tx == nil || !IsSigned(tx) {
		return nil, ErrNotSigned
	}

	validity, err := node.Confirm(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("confirm: %w", err)
	}
	if validity == nil || !validity.Data.Valid {
		msg := ""
		if validity != nil {
			msg = validity.Data.Message
		}
		return nil, fmt.Errorf("%w: confirm: %s", ErrRejected, msg)
	}
	if err := Transition(tx, protocol.StatusConfirmed); err != nil {
		return nil, err
	}

	resp, err := node.Broadcast(ctx, validity)
	if err != nil {
		return nil, fmt.Errorf("broadcast: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("broadcast: empty response")
	}
	if resp.Result != ResultOK {
		return resp, fmt.Errorf("%w: broadcast result %d: %s", ErrRejected, resp.Result, resp.Response)
	}
	if validity.Data.ReferenceBlock != 0 {
		tx.BlockNumber = validity.Data.ReferenceBlock
	}
	if err := Transition(tx, protocol.StatusBroadcast); err != nil {
		return nil, err
	}
	return resp, nil
}

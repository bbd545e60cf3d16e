// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package transaction

import (
	"fmt"
	"time"

	"github.com/demosnet/demoscore/internal/protocol"
)

// now returns the content timestamp in milliseconds.
var now = func() int64 { return time.Now().UnixMilli() }

// Prepare returns an empty transaction skeleton.
func Prepare() *protocol.Transaction {
	return &protocol.Transaction{
		Content: protocol.Content{
			Data:           protocol.Data{},
			TransactionFee: protocol.TransactionFee{},
		},
		Status: protocol.StatusEmpty,
	}
}

// FillContent sets the caller-owned content fields and moves tx to
// content_filled. For reflexive types, to must be the signer's own address.
// Any hash or signature is dropped.
func FillContent(tx *protocol.Transaction, typ protocol.TxType, to string, amount uint64, payload protocol.Payload, nonce uint64) error {
	if isFinal(tx.Status) {
		return ErrFinalized
	}
	if payload != nil && payload.PayloadType() != typ {
		return fmt.Errorf("payload %q does not match type %q", payload.PayloadType(), typ)
	}
	tx.Content.Type = typ
	tx.Content.To = to
	tx.Content.Amount = amount
	tx.Content.Data = protocol.Data{Payload: payload}
	tx.Content.Nonce = nonce
	tx.Content.Timestamp = now()
	if typ.IsReflexive() {
		tx.Content.From = to
	}
	tx.Content.GCREdits = nil
	tx.Hash = ""
	tx.Signature = nil
	tx.Ed25519Signature = ""
	tx.Status = protocol.StatusContentFilled
	return nil
}

func build(typ protocol.TxType, to string, amount uint64, payload protocol.Payload, nonce uint64) *protocol.Transaction {
	tx := Prepare()
	if err := FillContent(tx, typ, to, amount, payload, nonce); err != nil {
		// Builders always pair a type with its own payload.
		panic(err)
	}
	return tx
}

// NewNativeSend builds a transfer of amount to to.
func NewNativeSend(to string, amount, nonce uint64) *protocol.Transaction {
	return build(protocol.TxNative, to, amount, protocol.NewSendPayload(to, amount), nonce)
}

// NewIdentity builds an identity link or unlink for account, which must be
// the signer's address.
func NewIdentity(account string, payload *protocol.IdentityPayload, nonce uint64) *protocol.Transaction {
	return build(protocol.TxIdentity, account, 0, payload, nonce)
}

// NewWeb2Request builds a proxied web2 request for account.
func NewWeb2Request(account string, payload *protocol.Web2RequestPayload, nonce uint64) *protocol.Transaction {
	return build(protocol.TxWeb2Request, account, 0, payload, nonce)
}

// NewCrosschainOperation builds a crosschain script for account.
func NewCrosschainOperation(account string, payload *protocol.CrosschainPayload, nonce uint64) *protocol.Transaction {
	return build(protocol.TxCrosschainOperation, account, 0, payload, nonce)
}

// NewStorageProgram builds a storage program operation addressed to the
// program's target.
func NewStorageProgram(payload *protocol.StorageProgramPayload, nonce uint64) *protocol.Transaction {
	return build(protocol.TxStorageProgram, payload.Target, 0, payload, nonce)
}

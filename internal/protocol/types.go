// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package protocol defines the transaction wire types shared with validating
// nodes: transaction content, its typed data payloads and the GCR edits
// derived from it.
//
// Field names and JSON tags are part of the hashed content and must match
// what nodes recompute byte for byte.
package protocol

import "github.com/demosnet/demoscore/internal/algorithm"

// TxType is the transaction type tag. It is also the first element of the
// content's data tuple.
type TxType string

const (
	TxNative              TxType = "native"
	TxIdentity            TxType = "identity"
	TxWeb2Request         TxType = "web2Request"
	TxCrosschainOperation TxType = "crosschainOperation"
	TxDemosWork           TxType = "demoswork"
	TxGenesis             TxType = "genesis"
	TxStorageProgram      TxType = "storageProgram"
)

// IsReflexive reports whether the type requires from == to.
func (t TxType) IsReflexive() bool {
	switch t {
	case TxIdentity, TxWeb2Request, TxCrosschainOperation:
		return true
	}
	return false
}

// TransactionFee is the fee breakdown carried in content.
type TransactionFee struct {
	NetworkFee    uint64 `json:"network_fee"`
	RPCFee        uint64 `json:"rpc_fee"`
	AdditionalFee uint64 `json:"additional_fee"`
}

// Content is the hashed part of a transaction.
type Content struct {
	Type           TxType         `json:"type"`
	From           string         `json:"from"`
	To             string         `json:"to"`
	Amount         uint64         `json:"amount"`
	Data           Data           `json:"data"`
	Nonce          uint64         `json:"nonce"`
	Timestamp      int64          `json:"timestamp"`
	Ed25519Address string         `json:"ed25519_address,omitempty"`
	GCREdits       Edits          `json:"gcr_edits,omitempty"`
	TransactionFee TransactionFee `json:"transaction_fee"`
}

// Status is the position of a transaction in its lifecycle.
type Status string

const (
	StatusEmpty         Status = "empty"
	StatusContentFilled Status = "content_filled"
	StatusHashed        Status = "hashed"
	StatusSigned        Status = "signed"
	StatusDualSigned    Status = "dual_signed"
	StatusConfirmed     Status = "confirmed"
	StatusBroadcast     Status = "broadcast"
)

// Signature is a hex-encoded signature tagged with its algorithm.
type Signature struct {
	Type algorithm.Tag `json:"type"`
	Data string        `json:"data"`
}

// Transaction is content plus its commitment: the content hash and the
// signature(s) over it.
type Transaction struct {
	Content          Content    `json:"content"`
	Signature        *Signature `json:"signature"`
	Ed25519Signature string     `json:"ed25519_signature,omitempty"`
	Hash             string     `json:"hash"`
	Status           Status     `json:"status"`
	BlockNumber      uint64     `json:"blockNumber"`
}

// Clone returns a deep copy of tx.
func (tx *Transaction) Clone() *Transaction {
	if tx == nil {
		return nil
	}
	out := *tx
	if tx.Signature != nil {
		sig := *tx.Signature
		out.Signature = &sig
	}
	if tx.Content.GCREdits != nil {
		out.Content.GCREdits = append(Edits(nil), tx.Content.GCREdits...)
	}
	return &out
}

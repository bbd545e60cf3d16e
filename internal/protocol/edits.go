// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/demosnet/demoscore/internal/algorithm"
)

// EditType is the discriminator of a GCR edit.
type EditType string

const (
	EditBalance        EditType = "balance"
	EditNonce          EditType = "nonce"
	EditIdentity       EditType = "identity"
	EditAssign         EditType = "assign"
	EditStorageProgram EditType = "storageProgram"
	// EditIncentive is reserved. Nodes may emit it but clients never generate it.
	EditIncentive EditType = "incentive"
)

// Operation is the direction of an edit.
type Operation string

const (
	OpAdd    Operation = "add"
	OpRemove Operation = "remove"
)

// Flip returns the inverse operation.
func (o Operation) Flip() Operation {
	if o == OpAdd {
		return OpRemove
	}
	return OpAdd
}

// GCREdit is one ledger-state delta. The set of implementations is closed;
// switches over it must handle every type below.
type GCREdit interface {
	EditType() EditType
	isEdit()
}

// BalanceEdit moves Amount into or out of Account.
type BalanceEdit struct {
	Type       EditType  `json:"type"`
	Account    string    `json:"account"`
	Operation  Operation `json:"operation"`
	Amount     uint64    `json:"amount"`
	TxHash     string    `json:"txhash"`
	IsRollback bool      `json:"isRollback"`
}

// NonceEdit bumps Account's nonce by Amount.
type NonceEdit struct {
	Type       EditType  `json:"type"`
	Account    string    `json:"account"`
	Operation  Operation `json:"operation"`
	Amount     uint64    `json:"amount"`
	TxHash     string    `json:"txhash"`
	IsRollback bool      `json:"isRollback"`
}

// IdentityEdit links (add) or unlinks (remove) an identity on Account.
// Data is *XMIdentityData, PQCIdentityData or *Web2IdentityData depending on
// Context.
type IdentityEdit struct {
	Type       EditType        `json:"type"`
	Account    string          `json:"account"`
	Context    IdentityContext `json:"context"`
	Operation  Operation       `json:"operation"`
	Data       any             `json:"data"`
	TxHash     string          `json:"txhash"`
	IsRollback bool            `json:"isRollback"`
}

// AssignEdit records that Account claimed TxHash in Context ("web2" or "xm").
type AssignEdit struct {
	Type       EditType        `json:"type"`
	Account    string          `json:"account"`
	Context    IdentityContext `json:"context"`
	Operation  Operation       `json:"operation"`
	TxHash     string          `json:"txhash"`
	IsRollback bool            `json:"isRollback"`
}

// StorageProgramEdit applies a storage program operation at Target.
type StorageProgramEdit struct {
	Type       EditType        `json:"type"`
	Target     string          `json:"target"`
	Context    string          `json:"context"`
	Operation  Operation       `json:"operation"`
	Data       json.RawMessage `json:"data,omitempty"`
	Sender     string          `json:"sender"`
	TxHash     string          `json:"txhash"`
	IsRollback bool            `json:"isRollback"`
}

// IncentiveEdit is reserved for node-issued rewards.
type IncentiveEdit struct {
	Type       EditType        `json:"type"`
	Account    string          `json:"account"`
	Operation  Operation       `json:"operation"`
	Data       json.RawMessage `json:"data,omitempty"`
	TxHash     string          `json:"txhash"`
	IsRollback bool            `json:"isRollback"`
}

func (*BalanceEdit) EditType() EditType        { return EditBalance }
func (*NonceEdit) EditType() EditType          { return EditNonce }
func (*IdentityEdit) EditType() EditType       { return EditIdentity }
func (*AssignEdit) EditType() EditType         { return EditAssign }
func (*StorageProgramEdit) EditType() EditType { return EditStorageProgram }
func (*IncentiveEdit) EditType() EditType      { return EditIncentive }

func (*BalanceEdit) isEdit()        {}
func (*NonceEdit) isEdit()          {}
func (*IdentityEdit) isEdit()       {}
func (*AssignEdit) isEdit()         {}
func (*StorageProgramEdit) isEdit() {}
func (*IncentiveEdit) isEdit()      {}

// XMIdentityData is the identity edit payload for external-chain identities.
type XMIdentityData struct {
	Chain         string `json:"chain"`
	Subchain      string `json:"subchain"`
	IsEVM         bool   `json:"isEVM"`
	TargetAddress string `json:"targetAddress"`
	Signature     string `json:"signature,omitempty"`
	SignedData    string `json:"signedData,omitempty"`
	PublicKey     string `json:"publicKey,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// PQCIdentityEntry is one linked post-quantum key.
type PQCIdentityEntry struct {
	Algorithm algorithm.Tag `json:"algorithm"`
	Address   string        `json:"address"`
	Signature string        `json:"signature,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

// PQCIdentityData is the identity edit payload for post-quantum keys.
type PQCIdentityData []PQCIdentityEntry

// Web2IdentityData is the identity edit payload for social accounts.
type Web2IdentityData struct {
	Context   string          `json:"context"`
	Username  string          `json:"username"`
	UserID    string          `json:"userId"`
	Proof     json.RawMessage `json:"proof,omitempty"`
	ProofHash string          `json:"proofHash"`
	Timestamp int64           `json:"timestamp"`
}

func (e *IdentityEdit) UnmarshalJSON(b []byte) error {
	type plain IdentityEdit
	var w struct {
		plain
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*e = IdentityEdit(w.plain)
	switch e.Context {
	case ContextXM:
		var d XMIdentityData
		if err := json.Unmarshal(w.Data, &d); err != nil {
			return fmt.Errorf("xm identity data: %w", err)
		}
		e.Data = &d
	case ContextPQC:
		var d PQCIdentityData
		if err := json.Unmarshal(w.Data, &d); err != nil {
			return fmt.Errorf("pqc identity data: %w", err)
		}
		e.Data = d
	case ContextWeb2:
		var d Web2IdentityData
		if err := json.Unmarshal(w.Data, &d); err != nil {
			return fmt.Errorf("web2 identity data: %w", err)
		}
		e.Data = &d
	default:
		return fmt.Errorf("unknown identity context %q", e.Context)
	}
	return nil
}

// Edits is an ordered edit list. It decodes each element by its "type".
type Edits []GCREdit

func (es *Edits) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*es = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("gcr edits: %w", err)
	}
	out := make(Edits, 0, len(raw))
	for i, r := range raw {
		var head struct {
			Type EditType `json:"type"`
		}
		if err := json.Unmarshal(r, &head); err != nil {
			return fmt.Errorf("gcr edit %d: %w", i, err)
		}
		var e GCREdit
		switch head.Type {
		case EditBalance:
			e = &BalanceEdit{}
		case EditNonce:
			e = &NonceEdit{}
		case EditIdentity:
			e = &IdentityEdit{}
		case EditAssign:
			e = &AssignEdit{}
		case EditStorageProgram:
			e = &StorageProgramEdit{}
		case EditIncentive:
			e = &IncentiveEdit{}
		default:
			return fmt.Errorf("gcr edit %d: unknown type %q", i, head.Type)
		}
		if err := json.Unmarshal(r, e); err != nil {
			return fmt.Errorf("gcr edit %d (%s): %w", i, head.Type, err)
		}
		out = append(out, e)
	}
	*es = out
	return nil
}

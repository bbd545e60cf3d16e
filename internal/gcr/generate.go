// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package gcr derives the ordered GCR edits a validating node applies for a
// transaction.
//
// Generation is pure. Nodes rerun it on the received content and reject the
// transaction when the lists differ, so ordering and field values are part of
// the protocol:
//
//  1. type-specific edits
//  2. gas balance edit and nonce edit (every type except identity)
//  3. 0x prefix on every account and target
package gcr

import (
	"fmt"
	"strings"

	"github.com/demosnet/demoscore/internal/canonical"
	"github.com/demosnet/demoscore/internal/protocol"
)

// Generator produces edit lists under a gas policy.
type Generator struct {
	gas GasPolicy
}

// New returns a Generator. A nil policy means DefaultGas.
func New(gas GasPolicy) *Generator {
	if gas == nil {
		gas = DefaultGas
	}
	return &Generator{gas: gas}
}

// Generate derives edits with DefaultGas.
func Generate(tx *protocol.Transaction, isRollback bool) (protocol.Edits, error) {
	return New(nil).Generate(tx, isRollback)
}

// Generate returns the edits for tx. With isRollback every edit's operation
// is inverted and isRollback is set, producing the edits that unwind tx.
func (g *Generator) Generate(tx *protocol.Transaction, isRollback bool) (protocol.Edits, error) {
	if tx == nil {
		return nil, fmt.Errorf("gcr: nil transaction")
	}
	c := &tx.Content
	if c.Data.Payload != nil && c.Data.Type() != c.Type {
		return nil, fmt.Errorf("gcr: data tag %q does not match type %q", c.Data.Type(), c.Type)
	}

	edits, err := g.typeEdits(tx)
	if err != nil {
		return nil, err
	}

	if c.Type != protocol.TxIdentity {
		edits = append(edits,
			&protocol.BalanceEdit{
				Type:      protocol.EditBalance,
				Account:   c.From,
				Operation: protocol.OpRemove,
				Amount:    g.gas(c),
				TxHash:    tx.Hash,
			},
			&protocol.NonceEdit{
				Type:      protocol.EditNonce,
				Account:   c.From,
				Operation: protocol.OpAdd,
				Amount:    1,
				TxHash:    tx.Hash,
			},
		)
	}

	for _, e := range edits {
		normalize(e)
		if isRollback {
			rollback(e)
		}
	}
	return edits, nil
}

func (g *Generator) typeEdits(tx *protocol.Transaction) (protocol.Edits, error) {
	c := &tx.Content
	switch c.Type {
	case protocol.TxNative:
		return nativeEdits(tx)
	case protocol.TxIdentity:
		e, err := identityEdit(tx)
		if err != nil {
			return nil, err
		}
		return protocol.Edits{e}, nil
	case protocol.TxWeb2Request:
		return protocol.Edits{assignEdit(tx, protocol.ContextWeb2)}, nil
	case protocol.TxCrosschainOperation:
		return protocol.Edits{assignEdit(tx, protocol.ContextXM)}, nil
	case protocol.TxStorageProgram:
		e, err := storageProgramEdit(tx)
		if err != nil {
			return nil, err
		}
		return protocol.Edits{e}, nil
	case protocol.TxDemosWork, protocol.TxGenesis:
		return protocol.Edits{}, nil
	}
	return nil, fmt.Errorf("gcr: unknown transaction type %q", c.Type)
}

func nativeEdits(tx *protocol.Transaction) (protocol.Edits, error) {
	p, ok := tx.Content.Data.Payload.(*protocol.NativePayload)
	if !ok {
		return nil, fmt.Errorf("gcr: native transaction without native payload")
	}
	if p.NativeOperation != protocol.NativeSend {
		// Other native operations carry no balance movement of their own.
		return protocol.Edits{}, nil
	}
	to, amount, err := p.SendArgs()
	if err != nil {
		return nil, fmt.Errorf("gcr: %w", err)
	}
	return protocol.Edits{
		&protocol.BalanceEdit{
			Type:      protocol.EditBalance,
			Account:   tx.Content.From,
			Operation: protocol.OpRemove,
			Amount:    amount,
			TxHash:    tx.Hash,
		},
		&protocol.BalanceEdit{
			Type:      protocol.EditBalance,
			Account:   to,
			Operation: protocol.OpAdd,
			Amount:    amount,
			TxHash:    tx.Hash,
		},
	}, nil
}

func assignEdit(tx *protocol.Transaction, ctx protocol.IdentityContext) protocol.GCREdit {
	return &protocol.AssignEdit{
		Type:      protocol.EditAssign,
		Account:   tx.Content.From,
		Context:   ctx,
		Operation: protocol.OpAdd,
		TxHash:    tx.Hash,
	}
}

func identityEdit(tx *protocol.Transaction) (protocol.GCREdit, error) {
	c := &tx.Content
	p, ok := c.Data.Payload.(*protocol.IdentityPayload)
	if !ok {
		return nil, fmt.Errorf("gcr: identity transaction without identity payload")
	}

	op := protocol.OpRemove
	if strings.HasSuffix(p.Method, "assign") {
		op = protocol.OpAdd
	}
	edit := &protocol.IdentityEdit{
		Type:      protocol.EditIdentity,
		Account:   c.From,
		Context:   p.Context,
		Operation: op,
		TxHash:    tx.Hash,
	}

	switch body := p.Body.(type) {
	case *protocol.XMIdentity:
		if p.Context != protocol.ContextXM {
			return nil, contextMismatch(p)
		}
		edit.Data = &protocol.XMIdentityData{
			Chain:         body.Chain,
			Subchain:      body.Subchain,
			IsEVM:         body.IsEVM,
			TargetAddress: body.TargetAddress,
			Signature:     body.Signature,
			SignedData:    body.SignedData,
			PublicKey:     body.PublicKey,
			Timestamp:     c.Timestamp,
		}
	case protocol.PQCIdentities:
		if p.Context != protocol.ContextPQC {
			return nil, contextMismatch(p)
		}
		data := make(protocol.PQCIdentityData, 0, len(body))
		for _, id := range body {
			data = append(data, protocol.PQCIdentityEntry{
				Algorithm: id.Algorithm,
				Address:   id.Address,
				Signature: id.Signature,
				Timestamp: c.Timestamp,
			})
		}
		edit.Data = data
	case *protocol.Web2Identity:
		if p.Context != protocol.ContextWeb2 {
			return nil, contextMismatch(p)
		}
		data := &protocol.Web2IdentityData{
			Context:   body.Context,
			Username:  body.Username,
			UserID:    body.UserID,
			Proof:     body.Proof,
			Timestamp: c.Timestamp,
		}
		if len(body.Proof) > 0 {
			h, err := canonical.Hash(body.Proof)
			if err != nil {
				return nil, fmt.Errorf("gcr: hash web2 proof: %w", err)
			}
			data.ProofHash = h
		}
		if body.Context == protocol.PlatformTelegram && op == protocol.OpAdd {
			att, err := body.TelegramAttestation()
			if err != nil {
				return nil, fmt.Errorf("gcr: %w", err)
			}
			edit.Account = att.Payload.PublicKey
		}
		edit.Data = data
	default:
		return nil, fmt.Errorf("gcr: unsupported identity payload %T", p.Body)
	}
	return edit, nil
}

func contextMismatch(p *protocol.IdentityPayload) error {
	return fmt.Errorf("gcr: identity context %q does not match payload %T", p.Context, p.Body)
}

func storageProgramEdit(tx *protocol.Transaction) (protocol.GCREdit, error) {
	p, ok := tx.Content.Data.Payload.(*protocol.StorageProgramPayload)
	if !ok {
		return nil, fmt.Errorf("gcr: storageProgram transaction without storage payload")
	}
	op := protocol.OpAdd
	switch p.Operation {
	case protocol.StorageCreate, protocol.StorageWrite:
	case protocol.StorageDelete:
		op = protocol.OpRemove
	default:
		return nil, fmt.Errorf("gcr: unknown storage operation %q", p.Operation)
	}
	target := p.Target
	if target == "" {
		target = tx.Content.To
	}
	if target == "" {
		return nil, fmt.Errorf("gcr: storage program has no target")
	}
	return &protocol.StorageProgramEdit{
		Type:      protocol.EditStorageProgram,
		Target:    target,
		Context:   p.Operation,
		Operation: op,
		Data:      p.Data,
		Sender:    tx.Content.From,
		TxHash:    tx.Hash,
	}, nil
}

func normalize(e protocol.GCREdit) {
	switch v := e.(type) {
	case *protocol.BalanceEdit:
		v.Account = withPrefix(v.Account)
	case *protocol.NonceEdit:
		v.Account = withPrefix(v.Account)
	case *protocol.IdentityEdit:
		v.Account = withPrefix(v.Account)
	case *protocol.AssignEdit:
		v.Account = withPrefix(v.Account)
	case *protocol.StorageProgramEdit:
		v.Target = withPrefix(v.Target)
		v.Sender = withPrefix(v.Sender)
	case *protocol.IncentiveEdit:
		v.Account = withPrefix(v.Account)
	}
}

func rollback(e protocol.GCREdit) {
	switch v := e.(type) {
	case *protocol.BalanceEdit:
		v.Operation, v.IsRollback = v.Operation.Flip(), true
	case *protocol.NonceEdit:
		v.Operation, v.IsRollback = v.Operation.Flip(), true
	case *protocol.IdentityEdit:
		v.Operation, v.IsRollback = v.Operation.Flip(), true
	case *protocol.AssignEdit:
		v.Operation, v.IsRollback = v.Operation.Flip(), true
	case *protocol.StorageProgramEdit:
		v.Operation, v.IsRollback = v.Operation.Flip(), true
	case *protocol.IncentiveEdit:
		v.Operation, v.IsRollback = v.Operation.Flip(), true
	}
}

// withPrefix adds a 0x prefix. Case is left alone: addresses are compared
// byte for byte by nodes.
func withPrefix(addr string) string {
	if addr == "" || strings.HasPrefix(addr, "0x") {
		return addr
	}
	return "0x" + addr
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/demosnet/demoscore/internal/algorithm"
)

// Payload is the typed second element of a content data tuple. The set of
// implementations is closed.
type Payload interface {
	PayloadType() TxType
	isPayload()
}

// Data is the content data tuple, encoded on the wire as [type, payload].
type Data struct {
	Payload Payload
}

// Type returns the tag of the carried payload, or "" if none is set.
func (d Data) Type() TxType {
	if d.Payload == nil {
		return ""
	}
	return d.Payload.PayloadType()
}

func (d Data) MarshalJSON() ([]byte, error) {
	if d.Payload == nil {
		return []byte("null"), nil
	}
	return json.Marshal([]any{d.Payload.PayloadType(), d.Payload})
}

func (d *Data) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		d.Payload = nil
		return nil
	}
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return fmt.Errorf("data tuple: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("data tuple: expected 2 elements, got %d", len(tuple))
	}
	var tag TxType
	if err := json.Unmarshal(tuple[0], &tag); err != nil {
		return fmt.Errorf("data tuple tag: %w", err)
	}
	p, err := decodePayload(tag, tuple[1])
	if err != nil {
		return err
	}
	d.Payload = p
	return nil
}

func decodePayload(tag TxType, raw json.RawMessage) (Payload, error) {
	var p Payload
	switch tag {
	case TxNative:
		p = &NativePayload{}
	case TxIdentity:
		p = &IdentityPayload{}
	case TxWeb2Request:
		p = &Web2RequestPayload{}
	case TxCrosschainOperation:
		p = &CrosschainPayload{}
	case TxStorageProgram:
		p = &StorageProgramPayload{}
	case TxDemosWork, TxGenesis:
		return &RawPayload{Kind: tag, Body: append(json.RawMessage(nil), raw...)}, nil
	default:
		return nil, fmt.Errorf("unknown data type %q", tag)
	}
	if err := decodeNumbers(raw, p); err != nil {
		return nil, fmt.Errorf("%s payload: %w", tag, err)
	}
	return p, nil
}

// decodeNumbers keeps untyped numbers as json.Number so integer amounts in
// loosely typed fields round-trip without passing through float64.
func decodeNumbers(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// Native operations.
const (
	NativeSend = "send"
)

// NativePayload describes a native token operation. For send, Args is
// [to, amount].
type NativePayload struct {
	NativeOperation string `json:"nativeOperation"`
	Args            []any  `json:"args"`
}

func (*NativePayload) PayloadType() TxType { return TxNative }
func (*NativePayload) isPayload()          {}

// NewSendPayload returns the native payload for sending amount to to.
func NewSendPayload(to string, amount uint64) *NativePayload {
	return &NativePayload{NativeOperation: NativeSend, Args: []any{to, amount}}
}

// SendArgs returns the receiver and amount of a send operation.
func (p *NativePayload) SendArgs() (string, uint64, error) {
	if p.NativeOperation != NativeSend {
		return "", 0, fmt.Errorf("native operation %q is not a send", p.NativeOperation)
	}
	if len(p.Args) != 2 {
		return "", 0, fmt.Errorf("send expects 2 args, got %d", len(p.Args))
	}
	to, ok := p.Args[0].(string)
	if !ok || to == "" {
		return "", 0, fmt.Errorf("send receiver must be a non-empty string")
	}
	amount, err := toUint64(p.Args[1])
	if err != nil {
		return "", 0, fmt.Errorf("send amount: %w", err)
	}
	return to, amount, nil
}

func toUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("negative amount %d", n)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("negative amount %d", n)
		}
		return uint64(n), nil
	case json.Number:
		u, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an unsigned integer: %s", n)
		}
		return u, nil
	case float64:
		if n < 0 || n >= 1<<64 || n != math.Trunc(n) {
			return 0, fmt.Errorf("not an unsigned integer: %v", n)
		}
		return uint64(n), nil
	}
	return 0, fmt.Errorf("unsupported amount type %T", v)
}

// IdentityContext selects the identity sub-protocol.
type IdentityContext string

const (
	ContextXM   IdentityContext = "xm"
	ContextPQC  IdentityContext = "pqc"
	ContextWeb2 IdentityContext = "web2"
)

// IdentityPayload links or unlinks an external identity to the sender.
// Body holds *XMIdentity, PQCIdentities or *Web2Identity depending on
// Context.
type IdentityPayload struct {
	Context IdentityContext
	Method  string
	Body    any
}

func (*IdentityPayload) PayloadType() TxType { return TxIdentity }
func (*IdentityPayload) isPayload()          {}

type identityWire struct {
	Context IdentityContext `json:"context"`
	Method  string          `json:"method"`
	Payload json.RawMessage `json:"payload"`
}

func (p IdentityPayload) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(p.Body)
	if err != nil {
		return nil, err
	}
	return json.Marshal(identityWire{Context: p.Context, Method: p.Method, Payload: body})
}

func (p *IdentityPayload) UnmarshalJSON(b []byte) error {
	var w identityWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	p.Context = w.Context
	p.Method = w.Method
	switch w.Context {
	case ContextXM:
		var body XMIdentity
		if err := json.Unmarshal(w.Payload, &body); err != nil {
			return fmt.Errorf("xm identity: %w", err)
		}
		p.Body = &body
	case ContextPQC:
		var body PQCIdentities
		if err := json.Unmarshal(w.Payload, &body); err != nil {
			return fmt.Errorf("pqc identity: %w", err)
		}
		p.Body = body
	case ContextWeb2:
		var body Web2Identity
		if err := json.Unmarshal(w.Payload, &body); err != nil {
			return fmt.Errorf("web2 identity: %w", err)
		}
		p.Body = &body
	default:
		return fmt.Errorf("unknown identity context %q", w.Context)
	}
	return nil
}

// XMIdentity is a proof of control over an external-chain address.
type XMIdentity struct {
	Chain         string `json:"chain"`
	Subchain      string `json:"subchain"`
	IsEVM         bool   `json:"isEVM"`
	TargetAddress string `json:"targetAddress"`
	Signature     string `json:"signature,omitempty"`
	SignedData    string `json:"signedData,omitempty"`
	PublicKey     string `json:"publicKey,omitempty"`
}

// PQCIdentity binds a post-quantum public key to the sender. Signature is
// the PQC key's signature over the sender's ed25519 address.
type PQCIdentity struct {
	Algorithm algorithm.Tag `json:"algorithm"`
	Address   string        `json:"address"`
	Signature string        `json:"signature,omitempty"`
}

type PQCIdentities []PQCIdentity

// Web2 platforms with special handling.
const (
	PlatformTelegram = "telegram"
)

// Web2Identity is a proof of control over a social account. Proof is kept
// raw: its shape depends on the platform.
type Web2Identity struct {
	Context  string          `json:"context"`
	Username string          `json:"username"`
	UserID   string          `json:"userId"`
	Proof    json.RawMessage `json:"proof,omitempty"`
}

// TelegramAttestation is the bot-signed proof carried by telegram identities.
type TelegramAttestation struct {
	Payload struct {
		TelegramID string `json:"telegram_id"`
		Username   string `json:"username"`
		PublicKey  string `json:"public_key"`
		Timestamp  int64  `json:"timestamp"`
	} `json:"payload"`
	Signature Signature `json:"signature"`
}

// TelegramAttestation decodes Proof as a telegram attestation.
func (w *Web2Identity) TelegramAttestation() (*TelegramAttestation, error) {
	if len(w.Proof) == 0 {
		return nil, fmt.Errorf("telegram identity has no attestation")
	}
	var a TelegramAttestation
	if err := decodeNumbers(w.Proof, &a); err != nil {
		return nil, fmt.Errorf("telegram attestation: %w", err)
	}
	if a.Payload.PublicKey == "" {
		return nil, fmt.Errorf("telegram attestation has no public_key")
	}
	return &a, nil
}

// Web2RequestPayload is a request proxied by the node to a web2 endpoint.
type Web2RequestPayload struct {
	Action  string            `json:"action"`
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

func (*Web2RequestPayload) PayloadType() TxType { return TxWeb2Request }
func (*Web2RequestPayload) isPayload()          {}

// XMOperation is one step of a crosschain script. Task is chain specific.
type XMOperation struct {
	Name string          `json:"name"`
	Task json.RawMessage `json:"task"`
}

// CrosschainPayload is a script of operations executed on external chains.
type CrosschainPayload struct {
	Chain      string        `json:"chain"`
	Subchain   string        `json:"subchain"`
	Operations []XMOperation `json:"operations"`
}

func (*CrosschainPayload) PayloadType() TxType { return TxCrosschainOperation }
func (*CrosschainPayload) isPayload()          {}

// Storage program operations.
const (
	StorageCreate = "create"
	StorageWrite  = "write"
	StorageDelete = "delete"
)

// StorageProgramPayload creates, writes or deletes a storage program at
// Target.
type StorageProgramPayload struct {
	Operation string          `json:"operation"`
	Target    string          `json:"target"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func (*StorageProgramPayload) PayloadType() TxType { return TxStorageProgram }
func (*StorageProgramPayload) isPayload()          {}

// RawPayload carries payloads this package does not interpret
// (demoswork, genesis).
type RawPayload struct {
	Kind TxType
	Body json.RawMessage
}

func (p *RawPayload) PayloadType() TxType { return p.Kind }
func (*RawPayload) isPayload()            {}

func (p RawPayload) MarshalJSON() ([]byte, error) {
	if len(p.Body) == 0 {
		return []byte("null"), nil
	}
	return p.Body, nil
}

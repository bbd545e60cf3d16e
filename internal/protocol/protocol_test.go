// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package protocol

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestTxTypeIsReflexive(t *testing.T) {
	tests := []struct {
		typ  TxType
		want bool
	}{
		{TxNative, false},
		{TxIdentity, true},
		{TxWeb2Request, true},
		{TxCrosschainOperation, true},
		{TxDemosWork, false},
		{TxGenesis, false},
		{TxStorageProgram, false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsReflexive(); got != tt.want {
			t.Errorf("%s.IsReflexive() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestDataEncodesAsTuple(t *testing.T) {
	d := Data{Payload: NewSendPayload("0xabc", 100)}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `["native",{"nativeOperation":"send","args":["0xabc",100]}]`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}

	var back Data
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	native, ok := back.Payload.(*NativePayload)
	if !ok {
		t.Fatalf("payload type = %T", back.Payload)
	}
	to, amount, err := native.SendArgs()
	if err != nil {
		t.Fatalf("SendArgs: %v", err)
	}
	if to != "0xabc" || amount != 100 {
		t.Errorf("SendArgs = (%s, %d)", to, amount)
	}
}

func TestDataNull(t *testing.T) {
	b, err := json.Marshal(Data{})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Errorf("empty data = %s, want null", b)
	}
	var d Data
	if err := json.Unmarshal([]byte("null"), &d); err != nil || d.Payload != nil {
		t.Errorf("null decode: payload=%v err=%v", d.Payload, err)
	}
}

func TestDataRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not array", `{"type":"native"}`},
		{"one element", `["native"]`},
		{"unknown tag", `["teleport",{}]`},
		{"bad identity context", `["identity",{"context":"carrier-pigeon","method":"x","payload":{}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Data
			if err := json.Unmarshal([]byte(tt.in), &d); err == nil {
				t.Errorf("expected error for %s", tt.in)
			}
		})
	}
}

func TestSendArgsValidation(t *testing.T) {
	tests := []struct {
		name string
		p    NativePayload
	}{
		{"wrong operation", NativePayload{NativeOperation: "mint", Args: []any{"0xa", uint64(1)}}},
		{"missing amount", NativePayload{NativeOperation: NativeSend, Args: []any{"0xa"}}},
		{"empty receiver", NativePayload{NativeOperation: NativeSend, Args: []any{"", uint64(1)}}},
		{"negative amount", NativePayload{NativeOperation: NativeSend, Args: []any{"0xa", -5}}},
		{"fractional amount", NativePayload{NativeOperation: NativeSend, Args: []any{"0xa", json.Number("1.5")}}},
		{"fractional float", NativePayload{NativeOperation: NativeSend, Args: []any{"0xa", 2.5}}},
		{"float beyond uint64", NativePayload{NativeOperation: NativeSend, Args: []any{"0xa", float64(1 << 64)}}},
		{"float infinity", NativePayload{NativeOperation: NativeSend, Args: []any{"0xa", math.Inf(1)}}},
		{"float NaN", NativePayload{NativeOperation: NativeSend, Args: []any{"0xa", math.NaN()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.p.SendArgs(); err == nil {
				t.Error("expected error")
			}
		})
	}

	whole := NativePayload{NativeOperation: NativeSend, Args: []any{"0xa", float64(1 << 53)}}
	if _, amount, err := whole.SendArgs(); err != nil || amount != 1<<53 {
		t.Errorf("whole float amount = %d, %v", amount, err)
	}
}

func TestIdentityPayloadRoundTrip(t *testing.T) {
	in := Data{Payload: &IdentityPayload{
		Context: ContextPQC,
		Method:  "pqc_identity_assign",
		Body: PQCIdentities{
			{Algorithm: "falcon", Address: "0x01", Signature: "0x02"},
		},
	}}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"context":"pqc"`) {
		t.Errorf("context missing from %s", b)
	}

	var out Data
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	p := out.Payload.(*IdentityPayload)
	body, ok := p.Body.(PQCIdentities)
	if !ok || len(body) != 1 || body[0].Algorithm != "falcon" {
		t.Errorf("body = %#v", p.Body)
	}
}

func TestTelegramAttestation(t *testing.T) {
	w := &Web2Identity{
		Context:  PlatformTelegram,
		Username: "alice",
		UserID:   "42",
		Proof:    json.RawMessage(`{"payload":{"telegram_id":"42","username":"alice","public_key":"0xfeed","timestamp":1700000000},"signature":{"type":"ed25519","data":"0x00"}}`),
	}
	a, err := w.TelegramAttestation()
	if err != nil {
		t.Fatalf("TelegramAttestation: %v", err)
	}
	if a.Payload.PublicKey != "0xfeed" {
		t.Errorf("public key = %q", a.Payload.PublicKey)
	}

	w.Proof = json.RawMessage(`{"payload":{"telegram_id":"42"}}`)
	if _, err := w.TelegramAttestation(); err == nil {
		t.Error("expected error for attestation without public_key")
	}
}

func TestEditsDecodeByType(t *testing.T) {
	in := Edits{
		&BalanceEdit{Type: EditBalance, Account: "0xa", Operation: OpRemove, Amount: 1, TxHash: "h"},
		&NonceEdit{Type: EditNonce, Account: "0xa", Operation: OpAdd, Amount: 1, TxHash: "h"},
		&IdentityEdit{Type: EditIdentity, Account: "0xa", Context: ContextWeb2, Operation: OpAdd,
			Data: &Web2IdentityData{Context: "github", Username: "a", UserID: "1", ProofHash: "p"}},
		&AssignEdit{Type: EditAssign, Account: "0xa", Context: ContextXM, Operation: OpAdd},
		&StorageProgramEdit{Type: EditStorageProgram, Target: "0xb", Context: StorageWrite, Operation: OpAdd, Sender: "0xa"},
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out Edits
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d edits, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].EditType() != in[i].EditType() {
			t.Errorf("edit %d type = %s, want %s", i, out[i].EditType(), in[i].EditType())
		}
	}
	id := out[2].(*IdentityEdit)
	if d, ok := id.Data.(*Web2IdentityData); !ok || d.ProofHash != "p" {
		t.Errorf("identity data = %#v", id.Data)
	}

	if err := json.Unmarshal([]byte(`[{"type":"bogus"}]`), &out); err == nil {
		t.Error("expected error for unknown edit type")
	}
}

func TestOperationFlip(t *testing.T) {
	if OpAdd.Flip() != OpRemove || OpRemove.Flip() != OpAdd {
		t.Error("Flip is not an involution over add/remove")
	}
}

func TestTransactionClone(t *testing.T) {
	tx := &Transaction{
		Content:   Content{Type: TxNative, GCREdits: Edits{&NonceEdit{Type: EditNonce}}},
		Signature: &Signature{Type: "ed25519", Data: "0x01"},
	}
	c := tx.Clone()
	c.Signature.Data = "0x02"
	c.Content.GCREdits = append(c.Content.GCREdits, &NonceEdit{})
	if tx.Signature.Data != "0x01" {
		t.Error("clone shares signature with original")
	}
	if len(tx.Content.GCREdits) != 1 {
		t.Error("clone shares edit slice with original")
	}
}

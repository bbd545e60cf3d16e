// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/demosnet/demoscore/internal/identity"
	"github.com/demosnet/demoscore/internal/protocol"
	"github.com/demosnet/demoscore/internal/testutil"
	"github.com/demosnet/demoscore/internal/util"
)

func init() {
	testutil.RegisterProviders()
}

func newTestApp(t *testing.T, stdin string) (*app, *bytes.Buffer) {
	t.Helper()
	t.Setenv(passphraseEnv, "correct horse battery staple")
	var out, errOut bytes.Buffer
	dir := t.TempDir()
	return &app{
		dataDir:    dir,
		instanceID: "default",
		cfg:        testutil.Config(),
		store:      identity.NewSeedStore(dir),
		prompt: &prompter{
			in:     bufio.NewReader(strings.NewReader(stdin)),
			out:    &errOut,
			isTerm: func() bool { return false },
		},
		out:    &out,
		errOut: &errOut,
	}, &out
}

func TestInitTwiceFails(t *testing.T) {
	a, _ := newTestApp(t, "")
	if err := a.cmdInit(nil); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := a.cmdInit(nil); err == nil {
		t.Error("second init should fail")
	}
	cfg, err := util.LoadConfig(a.dataDir)
	if err != nil || cfg.RSABits != 1024 {
		t.Errorf("init did not persist config: %+v, %v", cfg, err)
	}
	if err := a.cmdInit([]string{"--mnemonic", "--restore"}); err == nil {
		t.Error("conflicting flags should fail")
	}
}

func TestSignAndVerify(t *testing.T) {
	a, out := newTestApp(t, "")
	if err := a.cmdInit(nil); err != nil {
		t.Fatalf("init: %v", err)
	}
	out.Reset()

	if err := a.cmdSign("falcon", "hello demos"); err != nil {
		t.Fatalf("sign: %v", err)
	}
	signed := append([]byte(nil), out.Bytes()...)
	path := testutil.TempFile(t, signed)

	out.Reset()
	if err := a.cmdVerify(path); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.HasPrefix(out.String(), "OK: falcon") {
		t.Errorf("verify output = %q", out.String())
	}

	// Swap the message and verification must fail.
	var obj map[string]any
	if err := json.Unmarshal(signed, &obj); err != nil {
		t.Fatal(err)
	}
	obj["message"] = "Z29vZGJ5ZQ=="
	tampered, _ := json.Marshal(obj)
	if err := a.cmdVerify(testutil.TempFile(t, tampered)); err == nil {
		t.Error("tampered object verified")
	}

	if err := a.cmdSign("sphincs", "x"); err == nil {
		t.Error("unknown algorithm should fail")
	}
}

func TestSendProducesVerifiableTransaction(t *testing.T) {
	a, out := newTestApp(t, "")
	if err := a.cmdInit(nil); err != nil {
		t.Fatalf("init: %v", err)
	}
	out.Reset()

	if err := a.cmdSend([]string{"--alg", "ml-dsa", "--dual", "--nonce", "4", "ABCDEF", "250"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	var tx protocol.Transaction
	if err := json.Unmarshal(out.Bytes(), &tx); err != nil {
		t.Fatalf("decode tx: %v", err)
	}
	if tx.Content.To != "0xabcdef" || tx.Content.Amount != 250 || tx.Content.Nonce != 4 {
		t.Errorf("content = %+v", tx.Content)
	}
	if tx.Status != protocol.StatusDualSigned {
		t.Errorf("status = %s", tx.Status)
	}

	path := testutil.TempFile(t, out.Bytes())
	out.Reset()
	if err := a.cmdVerify(path); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out.String(), "(+ed25519)") {
		t.Errorf("verify output = %q", out.String())
	}

	if err := a.cmdSend([]string{"0xabc", "lots"}); err == nil {
		t.Error("non-numeric amount should fail")
	}
}

func TestRestoreMatchesMnemonic(t *testing.T) {
	words, err := identity.NewMnemonic()
	if err != nil {
		t.Fatal(err)
	}
	phrase := strings.Join(words, " ")

	a, out := newTestApp(t, phrase+"\n")
	if err := a.cmdInit([]string{"--restore"}); err != nil {
		t.Fatalf("restore: %v", err)
	}
	first := out.String()

	b, out2 := newTestApp(t, strings.ToUpper(phrase)+"\n")
	if err := b.cmdInit([]string{"--restore"}); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if out2.String() != first {
		t.Errorf("same phrase gave different identities:\n%s\n%s", first, out2.String())
	}
}

func TestCommandsWithoutSeed(t *testing.T) {
	a, _ := newTestApp(t, "")
	if err := a.cmdIdentities(); err == nil || !strings.Contains(err.Error(), "demoskey init") {
		t.Errorf("err = %v, want init hint", err)
	}
}

func TestIdentitiesListsEveryAlgorithm(t *testing.T) {
	a, out := newTestApp(t, "")
	if err := a.cmdInit(nil); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := a.cmdIdentities(); err != nil {
		t.Fatalf("identities: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	for i, prefix := range []string{"ed25519", "falcon", "ml-dsa", "ml-kem-aes", "rsa"} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
}

func TestMetricsCountRouterOperations(t *testing.T) {
	a, out := newTestApp(t, "")
	var metrics bytes.Buffer
	if err := a.writeMetrics(&metrics); err != nil || metrics.Len() != 0 {
		t.Fatalf("disabled metrics wrote %q, err %v", metrics.String(), err)
	}

	if err := a.enableMetrics(); err != nil {
		t.Fatalf("enable metrics: %v", err)
	}
	if err := a.cmdInit(nil); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := a.cmdSign("falcon", "hello demos"); err != nil {
		t.Fatalf("sign: %v", err)
	}
	path := testutil.TempFile(t, out.Bytes())
	if err := a.cmdVerify(path); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if err := a.writeMetrics(&metrics); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	for _, want := range []string{
		`demos_crypto_operations_total{algorithm="falcon",op="sign",result="ok"} 1`,
		`demos_crypto_operations_total{algorithm="falcon",op="verify",result="ok"} 1`,
	} {
		if !strings.Contains(metrics.String(), want) {
			t.Errorf("metrics missing %q:\n%s", want, metrics.String())
		}
	}
}

func TestShortHex(t *testing.T) {
	if got := shortHex([]byte{0xab}); got != "0xab" {
		t.Errorf("shortHex(short) = %q", got)
	}
	long := shortHex(bytes.Repeat([]byte{1}, 100))
	if !strings.HasSuffix(long, "(100 bytes)") {
		t.Errorf("shortHex(long) = %q", long)
	}
}

func TestIsTransaction(t *testing.T) {
	if !isTransaction([]byte(`{"content":{}}`)) {
		t.Error("object with content should be a transaction")
	}
	if isTransaction([]byte(`{"algorithm":"ed25519"}`)) || isTransaction([]byte(`[]`)) {
		t.Error("non-transaction detected as transaction")
	}
}

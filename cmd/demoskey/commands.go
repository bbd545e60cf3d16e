// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/demosnet/demoscore/internal/algorithm"
	"github.com/demosnet/demoscore/internal/crypto"
	"github.com/demosnet/demoscore/internal/gcr"
	"github.com/demosnet/demoscore/internal/identity"
	"github.com/demosnet/demoscore/internal/keys"
	"github.com/demosnet/demoscore/internal/protocol"
	"github.com/demosnet/demoscore/internal/transaction"
	"github.com/demosnet/demoscore/internal/unified"
	"github.com/demosnet/demoscore/internal/util"
)

type app struct {
	dataDir    string
	instanceID string
	cfg        util.Config
	store      *identity.SeedStore
	prompt     *prompter
	out        io.Writer
	errOut     io.Writer

	registry *prometheus.Registry
	metrics  *unified.Metrics
}

func newApp(dataDir, instanceID string, cfg util.Config) *app {
	return &app{
		dataDir:    dataDir,
		instanceID: instanceID,
		cfg:        cfg,
		store:      identity.NewSeedStore(dataDir),
		prompt:     newTerminalPrompter(),
		out:        os.Stdout,
		errOut:     os.Stderr,
	}
}

func (a *app) gasPolicy() gcr.GasPolicy {
	return gcr.FixedGas(a.cfg.GasAmount)
}

// openRouter unlocks the instance seed and derives the identities for tags.
func (a *app) openRouter(tags ...algorithm.Tag) (*unified.Router, error) {
	pass, err := a.prompt.passphrase(false)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(pass)

	seed, err := a.store.Load(a.instanceID, pass)
	if errors.Is(err, identity.ErrSeedNotFound) {
		return nil, fmt.Errorf("no seed for instance %q: run 'demoskey init' first", a.instanceID)
	}
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(seed)

	reg := identity.NewRegistry(util.Logger)
	inst, err := reg.GetInstance(a.instanceID, seed)
	if err != nil {
		return nil, err
	}
	router, err := unified.NewRouter(inst, a.routerOptions()...)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if _, err := router.GenerateIdentity(tag, nil); err != nil {
			return nil, fmt.Errorf("derive %s identity: %w", tag, err)
		}
	}
	return router, nil
}

// verifyRouter returns a router with no key material. Verification reads no
// instance state.
func (a *app) verifyRouter() (*unified.Router, error) {
	return unified.NewDefaultRouter(identity.NewRegistry(util.Logger), a.routerOptions()...)
}

func (a *app) cmdInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	useMnemonic := fs.Bool("mnemonic", false, "create the seed from a new recovery phrase")
	restore := fs.Bool("restore", false, "recreate the seed from a recovery phrase on stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *useMnemonic && *restore {
		return fmt.Errorf("--mnemonic and --restore are mutually exclusive")
	}
	if a.store.Exists(a.instanceID) {
		return fmt.Errorf("instance %q already has a seed in %s", a.instanceID, a.store.Dir())
	}

	var seed []byte
	switch {
	case *useMnemonic:
		words, err := identity.NewMnemonic()
		if err != nil {
			return err
		}
		fmt.Fprintln(a.errOut, util.Bold("Recovery phrase (write it down, it will not be shown again):"))
		fmt.Fprintln(a.errOut)
		for i, w := range words {
			fmt.Fprintf(a.errOut, "%2d. %s\n", i+1, w)
		}
		fmt.Fprintln(a.errOut)
		if seed, err = identity.SeedFromMnemonic(words); err != nil {
			return err
		}
	case *restore:
		fmt.Fprintln(a.errOut, "Enter recovery phrase:")
		line, err := a.prompt.readLine()
		if err != nil {
			return fmt.Errorf("failed to read recovery phrase: %w", err)
		}
		if seed, err = identity.SeedFromMnemonic(identity.ParseMnemonic(line)); err != nil {
			return err
		}
	default:
		inst, err := identity.NewRegistry(util.Logger).GetInstance(a.instanceID, nil)
		if err != nil {
			return err
		}
		if err := inst.EnsureSeed(nil); err != nil {
			return err
		}
		seed = inst.MasterSeed()
	}
	defer crypto.ZeroBytes(seed)

	pass, err := a.prompt.passphrase(true)
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(pass)

	if err := a.store.Save(a.instanceID, seed, pass); err != nil {
		return err
	}
	if _, err := os.Stat(util.GetConfigPath(a.dataDir)); errors.Is(err, os.ErrNotExist) {
		if err := util.SaveConfig(a.dataDir, a.cfg); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
	}

	reg := identity.NewRegistry(util.Logger)
	inst, err := reg.GetInstance(a.instanceID, seed)
	if err != nil {
		return err
	}
	kp, err := inst.GenerateIdentity(algorithm.Ed25519, nil)
	if err != nil {
		return err
	}
	defer kp.Zero()
	fmt.Fprintf(a.out, "Initialized instance %q\n", a.instanceID)
	fmt.Fprintf(a.out, "ed25519 address: %s\n", kp.PublicKeyHex())
	return nil
}

func (a *app) cmdIdentities() error {
	router, err := a.openRouter()
	if err != nil {
		return err
	}
	if err := router.GenerateAllIdentities(nil); err != nil {
		return err
	}
	for _, tag := range algorithm.All() {
		kp, err := router.Identity(tag)
		if err != nil {
			return err
		}
		meta, err := algorithm.GetMetadata(tag)
		if err != nil {
			return err
		}
		label := util.FormatWithColor(fmt.Sprintf("%-11s", tag), meta.DisplayColor())
		fmt.Fprintf(a.out, "%s %-26s %s\n", label, meta.DisplayName(), shortHex(kp.PublicKey))
		kp.Zero()
	}
	return nil
}

func (a *app) cmdSign(alg, text string) error {
	tag, err := algorithm.Parse(alg)
	if err != nil {
		return err
	}
	router, err := a.openRouter(tag)
	if err != nil {
		return err
	}
	obj, err := router.Sign(tag, []byte(text))
	if err != nil {
		return err
	}
	return a.writeJSON(obj)
}

func (a *app) cmdVerify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	router, err := a.verifyRouter()
	if err != nil {
		return err
	}

	if isTransaction(data) {
		var tx protocol.Transaction
		if err := json.Unmarshal(data, &tx); err != nil {
			return fmt.Errorf("failed to parse transaction: %w", err)
		}
		if err := transaction.VerifyWith(router, gcr.New(a.gasPolicy()), &tx); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "OK: transaction %s signed with %s", tx.Hash, tx.Signature.Type)
		if tx.Ed25519Signature != "" {
			fmt.Fprint(a.out, " (+ed25519)")
		}
		fmt.Fprintln(a.out)
		return nil
	}

	var obj unified.SignedObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to parse signed object: %w", err)
	}
	ok, err := router.Verify(&obj)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s signature does not verify", obj.Algorithm)
	}
	fmt.Fprintf(a.out, "OK: %s signature by %s\n", obj.Algorithm, shortHex(obj.PublicKey))
	return nil
}

func (a *app) cmdSend(args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	alg := fs.String("alg", string(algorithm.Ed25519), "signing algorithm")
	dual := fs.Bool("dual", false, "add an ed25519 co-signature")
	nonce := fs.Uint64("nonce", 0, "account nonce")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: demoskey send [--alg tag] [--dual] [--nonce n] <to> <amount>")
	}
	tag, err := algorithm.Parse(*alg)
	if err != nil {
		return err
	}
	to := keys.NormalizeAddress(fs.Arg(0))
	amount, err := strconv.ParseUint(fs.Arg(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", fs.Arg(1), err)
	}

	tags := []algorithm.Tag{algorithm.Ed25519}
	if tag != algorithm.Ed25519 {
		tags = append(tags, tag)
	}
	router, err := a.openRouter(tags...)
	if err != nil {
		return err
	}

	tx := transaction.NewNativeSend(to, amount, *nonce)
	signer := transaction.NewSigner(router, transaction.WithGasPolicy(a.gasPolicy()))
	if err := signer.Sign(tx, tag, transaction.SignOptions{DualSign: *dual}); err != nil {
		return err
	}
	return a.writeJSON(tx)
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// isTransaction reports whether data is a JSON object with a "content" key.
func isTransaction(data []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	_, ok := fields["content"]
	return ok
}

// shortHex abbreviates long keys for display.
func shortHex(b []byte) string {
	h := keys.ToHex(b)
	if len(h) <= 70 {
		return h
	}
	return fmt.Sprintf("%s...%s (%d bytes)", h[:18], h[len(h)-16:], len(b))
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// demoskey manages the master seed of a demos identity instance and signs
// with the identities derived from it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/demosnet/demoscore/internal/providers"
	"github.com/demosnet/demoscore/internal/security"
	"github.com/demosnet/demoscore/internal/util"
	"github.com/demosnet/demoscore/internal/version"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" {
			fmt.Printf("demoskey %s\n", version.String())
			os.Exit(0)
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "demoskey - demos identity and transaction signing\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  demoskey [-d path] [-i id] init [--mnemonic | --restore]\n")
		fmt.Fprintf(os.Stderr, "  demoskey [-d path] [-i id] identities\n")
		fmt.Fprintf(os.Stderr, "  demoskey [-d path] [-i id] sign <algorithm> <text>\n")
		fmt.Fprintf(os.Stderr, "  demoskey [-d path] verify <file>\n")
		fmt.Fprintf(os.Stderr, "  demoskey [-d path] [-i id] send [--alg tag] [--dual] [--nonce n] <to> <amount>\n")
		fmt.Fprintf(os.Stderr, "  demoskey version\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "  -d path              Data directory (or set DEMOS_DATA, default ~/.demos)\n")
		fmt.Fprintf(os.Stderr, "  -i id                Identity instance (default from config)\n")
		fmt.Fprintf(os.Stderr, "  -metrics             Print crypto operation counters to stderr on exit\n")
		fmt.Fprintf(os.Stderr, "  --mnemonic           Create the seed from a new 24-word recovery phrase\n")
		fmt.Fprintf(os.Stderr, "  --restore            Recreate the seed from a recovery phrase read from stdin\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  demoskey init --mnemonic\n")
		fmt.Fprintf(os.Stderr, "  demoskey identities\n")
		fmt.Fprintf(os.Stderr, "  demoskey sign falcon hello > signed.json\n")
		fmt.Fprintf(os.Stderr, "  demoskey verify signed.json\n")
		fmt.Fprintf(os.Stderr, "  demoskey send --alg ml-dsa --dual 0xabc... 100 > tx.json\n")
	}

	dataDirFlag := flag.String("d", "", "Data directory (or set DEMOS_DATA)")
	instanceFlag := flag.String("i", "", "Identity instance id")
	metricsFlag := flag.Bool("metrics", false, "Print crypto operation counters to stderr on exit")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	if args[0] == "version" {
		fmt.Printf("demoskey %s\n", version.String())
		return
	}

	dataDir := util.GetDataDir(*dataDirFlag)
	if dataDir == "" {
		fatalf("cannot determine data directory: use -d or set DEMOS_DATA")
	}
	cfg, err := util.LoadConfig(dataDir)
	if err != nil {
		fatalf("%v", err)
	}
	util.InitLogger(cfg.LogLevel)
	security.Harden(util.Logger)
	providers.RegisterAllWithConfig(cfg)
	providers.LogRegistered(util.Logger)

	instanceID := *instanceFlag
	if instanceID == "" {
		instanceID = cfg.DefaultInstance
	}
	app := newApp(dataDir, instanceID, cfg)
	if *metricsFlag {
		if err := app.enableMetrics(); err != nil {
			fatalf("%v", err)
		}
	}

	switch args[0] {
	case "init":
		err = app.cmdInit(args[1:])
	case "identities":
		err = app.cmdIdentities()
	case "sign":
		if len(args) != 3 {
			fatalf("usage: demoskey sign <algorithm> <text>")
		}
		err = app.cmdSign(args[1], args[2])
	case "verify":
		if len(args) != 2 {
			fatalf("usage: demoskey verify <file>")
		}
		err = app.cmdVerify(args[1])
	case "send":
		err = app.cmdSend(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
	if merr := app.writeMetrics(os.Stderr); merr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", merr)
	}
	if err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

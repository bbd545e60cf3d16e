// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// passphraseEnv lets scripts supply the seed store passphrase.
const passphraseEnv = "DEMOS_PASSPHRASE"

// prompter reads secrets from a terminal, or line by line from a pipe.
type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	isTerm func() bool
	read   func() ([]byte, error)
}

func newTerminalPrompter() *prompter {
	fd := int(os.Stdin.Fd()) // #nosec G115 - file descriptors are small integers
	return &prompter{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stderr,
		isTerm: func() bool { return term.IsTerminal(fd) },
		read:   func() ([]byte, error) { return term.ReadPassword(fd) },
	}
}

// readLine reads one trimmed line of plain input.
func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// passphrase returns the seed store passphrase. With confirm, interactive
// input is asked twice and must match.
func (p *prompter) passphrase(confirm bool) ([]byte, error) {
	if env := os.Getenv(passphraseEnv); env != "" {
		return []byte(env), nil
	}
	if !p.isTerm() {
		line, err := p.readLine()
		if err != nil {
			return nil, fmt.Errorf("failed to read passphrase: %w", err)
		}
		if line == "" {
			return nil, fmt.Errorf("passphrase cannot be empty")
		}
		return []byte(line), nil
	}

	fmt.Fprint(p.out, "Passphrase: ")
	first, err := p.read()
	fmt.Fprintln(p.out)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(first) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	if !confirm {
		return first, nil
	}

	fmt.Fprint(p.out, "Confirm passphrase: ")
	second, err := p.read()
	fmt.Fprintln(p.out)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if !bytes.Equal(first, second) {
		return nil, fmt.Errorf("passphrases do not match")
	}
	return first, nil
}

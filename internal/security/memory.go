// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

//go:build linux

// Package security hardens the process that holds master seeds.
package security

import (
	"fmt"
	"log/slog"
	"os"
	"syscall"
)

// NoLockEnv disables memory locking when set (for debugging and CI).
const NoLockEnv = "DEMOS_NO_MLOCK"

// LockMemory locks all current and future pages so seed material is never
// written to swap.
func LockMemory() error {
	if err := syscall.Mlockall(syscall.MCL_CURRENT | syscall.MCL_FUTURE); err != nil {
		return fmt.Errorf("mlockall failed: %w (grant CAP_IPC_LOCK with: sudo setcap cap_ipc_lock+ep %s)", err, os.Args[0])
	}
	return nil
}

// DisableCoreDumps prevents core dumps which could leak seed material.
func DisableCoreDumps() error {
	rlimit := syscall.Rlimit{Cur: 0, Max: 0}
	if err := syscall.Setrlimit(syscall.RLIMIT_CORE, &rlimit); err != nil {
		return fmt.Errorf("failed to disable core dumps: %w", err)
	}
	return nil
}

// Harden applies both protections on a best-effort basis. Failures are
// logged, not returned: a CLI run without CAP_IPC_LOCK still works.
func Harden(log *slog.Logger) {
	if err := DisableCoreDumps(); err != nil {
		log.Warn("core dumps still enabled", "error", err)
	}
	if os.Getenv(NoLockEnv) != "" {
		return
	}
	if err := LockMemory(); err != nil {
		log.Debug("memory not locked", "error", err)
	}
}

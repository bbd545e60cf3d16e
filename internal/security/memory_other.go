// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

//go:build !linux

package security

import "log/slog"

// NoLockEnv disables memory locking when set (for debugging and CI).
const NoLockEnv = "DEMOS_NO_MLOCK"

// Harden is a no-op on platforms without mlockall.
func Harden(log *slog.Logger) {
	log.Debug("process hardening not supported on this platform")
}

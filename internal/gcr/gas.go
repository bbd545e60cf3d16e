// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package gcr

import "github.com/demosnet/demoscore/internal/protocol"

// DefaultGasAmount is charged per transaction until nodes meter gas.
const DefaultGasAmount = 1

// GasPolicy returns the gas charged for content. It must be a pure function
// of its input: nodes regenerate edits and compare.
type GasPolicy func(content *protocol.Content) uint64

// FixedGas charges amount regardless of content.
func FixedGas(amount uint64) GasPolicy {
	return func(*protocol.Content) uint64 { return amount }
}

// DefaultGas is FixedGas(DefaultGasAmount).
var DefaultGas = FixedGas(DefaultGasAmount)

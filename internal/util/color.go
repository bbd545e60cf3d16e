// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// supportsColor checks if the terminal supports ANSI color codes
func supportsColor() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) { // #nosec G115 - file descriptors are small integers
		return false
	}
	termEnv := os.Getenv("TERM")
	return termEnv != "" && termEnv != "dumb"
}

// FormatWithColor renders text in the given ANSI 256-color index. Text is
// returned unchanged when stdout is not a color terminal or color is empty.
func FormatWithColor(text, color string) string {
	if color == "" || !supportsColor() {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

// Bold renders text bold on color terminals.
func Bold(text string) string {
	if !supportsColor() {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// init configures lipgloss for stdout so piped output has no color codes.
func init() {
	lipgloss.SetColorProfile(colorProfile(os.Stdout))
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// WarningStyle is used for warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// SuccessStyle is used for confirmations.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	// MutedStyle is used for hints and secondary text.
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

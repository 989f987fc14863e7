// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	minWidth     = 40
)

// fd returns the file descriptor behind v, if it has one.
func fd(v any) (int, bool) {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return 0, false
	}
	return int(f.Fd()), true
}

func isTerminal(v any) bool {
	n, ok := fd(v)
	return ok && term.IsTerminal(n)
}

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool { return isTerminal(os.Stdin) }

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool { return isTerminal(os.Stdout) }

// terminalWidth is the column count of w, clamped to minWidth. Pipes and
// buffers get defaultWidth.
func terminalWidth(w any) int {
	n, ok := fd(w)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(n)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return max(width, minWidth)
}

// colorProfile picks the color profile for w. NO_COLOR always wins;
// FORCE_COLOR turns color on for pipes.
func colorProfile(w any) termenv.Profile {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return termenv.Ascii
	case os.Getenv("FORCE_COLOR") == "" && !isTerminal(w):
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

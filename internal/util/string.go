// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// StringWidth returns the number of terminal columns s occupies, measured
// per grapheme cluster the same way lipgloss measures it. Khmer consonant
// clusters, CJK and most emoji may each take two columns.
func StringWidth(s string) int {
	return ansi.StringWidth(s)
}

// TruncateWidth shortens s to at most maxWidth columns, ending with "…" when
// anything was cut. It never splits a grapheme cluster.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, ellipsis)
}

// PadRight pads s with spaces to width columns. Wider strings are returned
// unchanged.
func PadRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTheme indicates a theme other than light or dark.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is the color scheme.
type Theme int

const (
	Light Theme = iota
	Dark
)

// String implements fmt.Stringer.
func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// ParseTheme parses "light" or "dark". "auto" must be resolved by the caller.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
}

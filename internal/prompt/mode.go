// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt selects and fills the assistant prompt templates.
//
// There is one template per (mode, language) pair. Templates are compiled
// once at package initialization and are safe for concurrent use.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode indicates a mode outside Health and Symptom.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is the assistant mode. The two modes are mutually exclusive.
type Mode int

const (
	// Health answers general health questions.
	Health Mode = iota
	// Symptom analyzes described symptoms.
	Symptom
)

// Modes lists the valid modes in display order.
var Modes = []Mode{Health, Symptom}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Health:
		return "health"
	case Symptom:
		return "symptom"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Health || m == Symptom
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "health", "health_query", "query":
		return Health, nil
	case "symptom", "symptoms", "symptom_checker":
		return Symptom, nil
	default:
		return Health, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

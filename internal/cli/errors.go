// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/healthbot-tui/internal/config"
	"github.com/jeranaias/healthbot-tui/internal/gemini"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitAuthError    = 4
	ExitNetworkError = 5
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ValidationError represents an invalid flag or argument.
type ValidationError struct {
	Field   string
	Value   string
	Reason  string
	Example string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// ConfigError wraps a failure to load or save the configuration.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var (
		verr *ValidationError
		cerr *ConfigError
		vals config.ValidateErrors
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &verr):
		return ExitUsageError
	case errors.As(err, &cerr), errors.As(err, &vals):
		return ExitConfigError
	case errors.Is(err, gemini.ErrAuthFailed), errors.Is(err, gemini.ErrNotConfigured):
		return ExitAuthError
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case errors.Is(err, gemini.ErrRateLimited):
		return ExitNetworkError
	default:
		return ExitGeneralError
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the Google Gemini client used to generate
// assistant replies.
//
// The client sends a single prompt to the generateContent REST endpoint and
// returns the concatenated text of the first candidate. Each call is one
// request/response; there is no streaming and no conversation state.
//
// # Usage
//
//	client := gemini.NewClient(apiKey).
//	    WithModel("gemini-2.0-flash").
//	    WithTimeout(30 * time.Second)
//	text, err := client.Generate(ctx, prompt)
//
// # Errors
//
// HTTP failures are mapped to sentinel errors (ErrAuthFailed, ErrRateLimited,
// ErrModelNotFound) that can be matched with errors.Is. Other API failures
// are returned as *APIError.
//
// # Security
//
// API keys are never logged. Log records carry a short SHA-256 fingerprint
// of the key and the prompt length, never the prompt itself.
package gemini

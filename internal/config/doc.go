// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads, validates and persists healthbot configuration.
//
// Sources, lowest precedence first:
//   - built-in defaults
//   - ~/.healthbot/config.toml (or the --config path)
//   - .env files (./config/.env, ./.env, ~/.healthbot/.env); these never
//     replace variables already present in the environment
//   - environment variables
//
// # Environment Variables
//
//   - GEMINI_API_KEY: gemini.api_key
//   - HEALTHBOT_MODEL: gemini.model
//   - HEALTHBOT_LANG: ui.language
//   - HEALTHBOT_THEME: ui.theme
//   - HEALTHBOT_MODE: ui.mode
//
// # Hot Reload
//
// Watch observes the config file and hands every successfully parsed
// revision to a callback, which the TUI uses to apply theme and language
// edits without a restart.
package config

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the healthbot command line.
//
// # Commands
//
//	healthbot              run the TUI, or the chat REPL when stdout is not a terminal
//	healthbot chat         line-based chat with input history and slash commands
//	healthbot ask QUESTION send one question and print the reply
//	healthbot config       show, create and edit the configuration file
//
// # Global Flags
//
//	--config PATH   config file (default ~/.healthbot/config.toml)
//	--lang CODE     en or km
//	--theme NAME    light, dark or auto
//	--mode NAME     health or symptom
//	--debug         debug logging
//
// Flags override the config file and environment for the current run only.
package cli

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the healthbot packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - TruncateWidth: display-width truncation for Khmer, CJK and emoji text
//   - StringWidth, PadRight: terminal column arithmetic
//
// # Usage
//
//	label := util.TruncateWidth("👤 អ្នក", 12)
//	err := util.AtomicWriteFile(path, data, 0600)
package util

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup converts model replies into structured presentation blocks.
//
// Replies from the language model use a small, markdown-like vocabulary:
// **strong** and *italic* emphasis, ordered items ("1. text") and bullet
// items ("- text" or "• text"). Render turns raw reply text into a sequence
// of Blocks that any presentation layer can map onto its own primitives.
//
// # Key Types
//
//   - Block: A paragraph or a list item, holding a sequence of Spans
//   - Span: A run of plain, strong or italic text
//
// # Usage
//
//	blocks := markup.Render("**Hydrate**\n1. Drink water\n2. Rest")
//	html := markup.ToHTML(blocks)
//	text := markup.Plain(blocks)
//
// Render is total: malformed or unmatched markers are kept as literal text
// and the function never fails.
package markup

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the light and dark color schemes and the Lip Gloss
// styles built from them.
//
// # Themes
//
//   - Light: slate text on a near-white surface, indigo accent
//   - Dark: light slate text on navy, sky-blue accent
//
// "auto" resolves to one of the two from the terminal background.
//
// # Usage
//
//	theme := styles.NewTheme(styles.Resolve(styles.Auto))
//	bubble := theme.UserBubble.Render(text)
//
// The same palettes are exposed as CSS (BubbleCSS, PageCSS) so that HTML
// transcripts match the terminal colors.
package styles

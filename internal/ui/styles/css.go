// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "fmt"

const fontStack = `"Segoe UI", "Roboto", "Inter", "Noto Sans Khmer", sans-serif`

func paletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}

// BubbleCSS returns the inline CSS for a chat bubble.
func BubbleCSS(isUser, dark bool) string {
	p := paletteFor(dark)
	if isUser {
		return fmt.Sprintf("background-color:%s;color:%s;border-radius:16px;padding:10px 16px;"+
			"margin:8px 16px 8px 80px;line-height:1.5;", p.UserBubbleBg, p.UserText)
	}
	return fmt.Sprintf("background-color:%s;color:%s;border:1px solid %s;border-radius:16px;padding:10px 16px;"+
		"margin:8px 80px 8px 16px;line-height:1.6;", p.BotBubbleBg, p.BotText, p.Border)
}

// SenderCSS returns the inline CSS for a bubble's sender label.
func SenderCSS(isUser, dark bool) string {
	p := paletteFor(dark)
	color := p.Accent
	if isUser {
		color = "rgba(255,255,255,0.9)"
	}
	return fmt.Sprintf("color:%s;font-weight:600;font-size:12px;margin-bottom:4px;", color)
}

// NoticeCSS returns the inline CSS for a system notice.
func NoticeCSS(dark bool) string {
	p := paletteFor(dark)
	return fmt.Sprintf("color:%s;font-style:italic;font-size:13px;padding:12px 16px;background-color:%s;"+
		"border-radius:8px;margin:8px 20px;text-align:center;", p.TextMuted, p.Border)
}

// PageCSS returns the stylesheet for a standalone transcript page.
func PageCSS(dark bool) string {
	p := paletteFor(dark)
	return fmt.Sprintf(`body { background-color: %s; color: %s; font-family: %s; font-size: 15px; margin: 0; }
header { background: linear-gradient(90deg, %s, %s); color: white; padding: 16px 24px; font-size: 24px; font-weight: 600; }
main { max-width: 880px; margin: 0 auto; padding: 16px 0; }
.row { display: flex; }
.row.user { justify-content: flex-end; }
.row.bot { justify-content: flex-start; }
.bubble { max-width: 75%%; }
footer { color: %s; font-size: 12px; text-align: center; padding: 16px; }
`, p.ChatBg, p.TextPrimary, fontStack, p.HeaderFrom, p.HeaderTo, p.TextMuted)
}

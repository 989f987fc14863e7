// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Palette is one color scheme. All values are #rrggbb.
type Palette struct {
	MainBg        string
	CardBg        string
	ChatBg        string
	TextPrimary   string
	TextSecondary string
	TextMuted     string
	Border        string
	Accent        string
	InputBg       string

	// Header gradient endpoints.
	HeaderFrom string
	HeaderTo   string

	UserBubbleBg string
	UserText     string
	BotBubbleBg  string
	BotText      string
}

// LightPalette is the light color scheme.
var LightPalette = Palette{
	MainBg:        "#f8fafc",
	CardBg:        "#ffffff",
	ChatBg:        "#f1f5f9",
	TextPrimary:   "#1e293b",
	TextSecondary: "#64748b",
	TextMuted:     "#94a3b8",
	Border:        "#e2e8f0",
	Accent:        "#667eea",
	InputBg:       "#ffffff",
	HeaderFrom:    "#667eea",
	HeaderTo:      "#764ba2",
	UserBubbleBg:  "#667eea",
	UserText:      "#ffffff",
	BotBubbleBg:   "#ffffff",
	BotText:       "#1e293b",
}

// DarkPalette is the dark color scheme.
var DarkPalette = Palette{
	MainBg:        "#0f172a",
	CardBg:        "#1e293b",
	ChatBg:        "#0f172a",
	TextPrimary:   "#f1f5f9",
	TextSecondary: "#cbd5e1",
	TextMuted:     "#94a3b8",
	Border:        "#334155",
	Accent:        "#60a5fa",
	InputBg:       "#1e293b",
	HeaderFrom:    "#1e3a8a",
	HeaderTo:      "#3730a3",
	UserBubbleBg:  "#60a5fa",
	UserText:      "#ffffff",
	BotBubbleBg:   "#1e293b",
	BotText:       "#f1f5f9",
}

// PaletteFor returns the palette for a resolved theme name.
func PaletteFor(name ThemeName) Palette {
	if name == Dark {
		return DarkPalette
	}
	return LightPalette
}

// GradientStops returns n colors blended from "from" to "to" in CIE-L*a*b*
// space. Unparseable endpoints yield a flat "from".
func GradientStops(from, to string, n int) []string {
	if n <= 0 {
		return nil
	}
	start, err1 := colorful.Hex(from)
	end, err2 := colorful.Hex(to)
	stops := make([]string, n)
	for i := range stops {
		if err1 != nil || err2 != nil || n == 1 {
			stops[i] = from
			continue
		}
		stops[i] = start.BlendLab(end, float64(i)/float64(n-1)).Clamped().Hex()
	}
	return stops
}

// RenderGradient renders text left-aligned in a bar width columns wide whose
// background fades from "from" to "to". Each grapheme cluster takes the color
// of the column it starts in.
func RenderGradient(text string, width int, from, to, fg string) string {
	if width <= 0 {
		return ""
	}
	text = ansi.Truncate(text, width, "")
	if gap := width - ansi.StringWidth(text); gap > 0 {
		text += strings.Repeat(" ", gap)
	}

	stops := GradientStops(from, to, width)
	base := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(fg))

	var b strings.Builder
	col := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		idx := min(col, len(stops)-1)
		b.WriteString(base.Background(lipgloss.Color(stops[idx])).Render(cluster))
		col += ansi.StringWidth(cluster)
	}
	return b.String()
}

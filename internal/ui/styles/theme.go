// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ThemeName names a color scheme.
type ThemeName string

const (
	Light ThemeName = "light"
	Dark  ThemeName = "dark"
	// Auto follows the terminal background.
	Auto ThemeName = "auto"
)

// ParseThemeName parses light, dark or auto.
func ParseThemeName(s string) (ThemeName, error) {
	switch n := ThemeName(strings.ToLower(strings.TrimSpace(s))); n {
	case Light, Dark, Auto:
		return n, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// hasDarkBackground is swapped in tests.
var hasDarkBackground = termenv.HasDarkBackground

// Resolve maps Auto to Light or Dark using the terminal background. Other
// names are returned unchanged.
func Resolve(name ThemeName) ThemeName {
	if name != Auto {
		return name
	}
	if hasDarkBackground() {
		return Dark
	}
	return Light
}

// Theme holds the styles for one color scheme.
type Theme struct {
	Name    ThemeName
	Palette Palette
	Profile termenv.Profile

	App lipgloss.Style

	// Header
	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderButton lipgloss.Style

	// Mode bar
	ModeLabel        lipgloss.Style
	ModeButton       lipgloss.Style
	ModeButtonActive lipgloss.Style

	// Transcript
	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	SenderUser lipgloss.Style
	SenderBot  lipgloss.Style
	Notice     lipgloss.Style

	// Inline markup
	Strong     lipgloss.Style
	Italic     lipgloss.Style
	ListMarker lipgloss.Style

	// Input
	Input      lipgloss.Style
	SendButton lipgloss.Style

	Muted lipgloss.Style
	Help  lipgloss.Style
}

// IsDark reports whether the theme is the dark scheme.
func (t *Theme) IsDark() bool {
	return t.Name == Dark
}

// NewTheme builds the styles for name. Auto is resolved first.
func NewTheme(name ThemeName) *Theme {
	name = Resolve(name)
	if name != Dark {
		name = Light
	}
	t := &Theme{
		Name:    name,
		Palette: PaletteFor(name),
		Profile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	p := t.Palette
	c := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }

	t.App = lipgloss.NewStyle().
		Foreground(c(p.TextPrimary))

	t.Header = lipgloss.NewStyle().
		Foreground(c("#ffffff")).
		Background(c(p.HeaderFrom)).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(c("#ffffff"))

	t.HeaderButton = lipgloss.NewStyle().
		Foreground(c("#ffffff")).
		Background(c(p.HeaderTo)).
		Padding(0, 1)

	t.ModeLabel = lipgloss.NewStyle().
		Foreground(c(p.TextSecondary))

	t.ModeButton = lipgloss.NewStyle().
		Foreground(c(p.TextPrimary)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(p.Border)).
		Padding(0, 2)

	t.ModeButtonActive = t.ModeButton.
		Bold(true).
		Foreground(c("#ffffff")).
		Background(c(p.Accent)).
		BorderForeground(c(p.Accent))

	t.UserBubble = lipgloss.NewStyle().
		Foreground(c(p.UserText)).
		Background(c(p.UserBubbleBg)).
		Padding(0, 2)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(c(p.BotText)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(p.Border)).
		Padding(0, 1)

	t.SenderUser = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(p.UserText)).
		Background(c(p.UserBubbleBg))

	t.SenderBot = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(p.Accent))

	t.Notice = lipgloss.NewStyle().
		Italic(true).
		Foreground(c(p.TextMuted)).
		Align(lipgloss.Center)

	t.Strong = lipgloss.NewStyle().Bold(true)
	t.Italic = lipgloss.NewStyle().Italic(true)
	t.ListMarker = lipgloss.NewStyle().
		Foreground(c(p.Accent))

	t.Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(p.Border)).
		Padding(0, 1)

	t.SendButton = lipgloss.NewStyle().
		Bold(true).
		Foreground(c("#ffffff")).
		Background(c(p.Accent)).
		Padding(0, 2)

	t.Muted = lipgloss.NewStyle().
		Foreground(c(p.TextMuted))

	t.Help = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(p.Accent)).
		Padding(0, 1)
}

// FocusedInput returns the input style with the accent border.
func (t *Theme) FocusedInput() lipgloss.Style {
	return t.Input.BorderForeground(lipgloss.Color(t.Palette.Accent))
}

// HeaderBar renders text on the header gradient, width columns wide.
func (t *Theme) HeaderBar(text string, width int) string {
	return RenderGradient(text, width, t.Palette.HeaderFrom, t.Palette.HeaderTo, "#ffffff")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/markup"
	"github.com/jeranaias/healthbot-tui/internal/prompt"
	"github.com/jeranaias/healthbot-tui/internal/session"
	"github.com/jeranaias/healthbot-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat interface.
func (m Model) View() string {
	body := m.viewport.View()
	if m.showHelp {
		body = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center,
			m.theme.Help.Render(m.helpView))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderModeBar(),
		m.renderInput(),
		m.renderStatus(),
	)
}

// renderHeader draws the title on the gradient with the language and theme
// buttons at the right.
func (m Model) renderHeader() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.HeaderButton.Render(m.label(i18n.LanguageButton)),
		" ",
		m.theme.HeaderButton.Render(m.sess.ThemeButton()),
	)
	titleWidth := m.width - lipgloss.Width(buttons)
	if titleWidth < 0 {
		titleWidth = 0
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.HeaderBar(" "+m.label(i18n.WindowTitle), titleWidth),
		buttons,
	)
}

func (m Model) renderModeBar() string {
	health := m.theme.ModeButton
	symptom := m.theme.ModeButton
	if m.sess.Mode() == prompt.Symptom {
		symptom = m.theme.ModeButtonActive
	} else {
		health = m.theme.ModeButtonActive
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		" ",
		m.theme.ModeLabel.Render(m.sess.ModeLabel()),
		"  ",
		health.Render(m.label(i18n.HealthQueryButton)),
		" ",
		symptom.Render(m.label(i18n.SymptomButton)),
	)
}

func (m Model) renderInput() string {
	box := m.theme.Input
	if m.input.Focused() {
		box = m.theme.FocusedInput()
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		" ",
		box.Render(m.input.View()),
		" ",
		m.theme.SendButton.Render(m.label(i18n.SendButton)),
	)
}

// renderStatus shows the thinking line while a reply is pending, and the
// key hints otherwise.
func (m Model) renderStatus() string {
	if m.sess.Busy() {
		return " " + m.spinner.View() + " " + m.theme.Muted.Render(m.label(i18n.Thinking))
	}
	hints := make([]string, 0, len(m.keyMap.ShortHelp()))
	for _, b := range m.keyMap.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return m.theme.Muted.Render(util.TruncateWidth(" "+strings.Join(hints, " • "), m.width))
}

// renderHelp renders the localized help text with glamour.
func (m Model) renderHelp() string {
	text := m.label(i18n.Help)
	style := "light"
	if m.theme.IsDark() {
		style = "dark"
	}
	wrap := m.width - 10
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript draws every entry from the session in order.
func (m Model) renderTranscript() string {
	entries := m.sess.Entries()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Kind == session.EntryNotice {
			parts = append(parts, m.renderNotice(e.Notice))
			continue
		}
		parts = append(parts, m.renderMessage(e.Message))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderNotice(n session.Notice) string {
	return m.theme.Notice.Width(m.width).Render(n.Text)
}

// bubbleWidth is min(60, 75% of the terminal).
func (m Model) bubbleWidth() int {
	w := m.width * 3 / 4
	if w > maxBubbleWidth {
		w = maxBubbleWidth
	}
	if w < minBubbleWidth {
		w = minBubbleWidth
	}
	return w
}

// renderMessage draws one bubble. User bubbles are right-aligned.
func (m Model) renderMessage(msg session.Message) string {
	bubble := m.theme.BotBubble
	sender := m.theme.SenderBot
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Palette.BotText))
	marker := m.theme.ListMarker
	pos := lipgloss.Left
	if msg.IsUser {
		bubble = m.theme.UserBubble
		sender = m.theme.SenderUser
		base = lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Palette.UserText)).
			Background(lipgloss.Color(m.theme.Palette.UserBubbleBg))
		marker = base.Bold(true)
		pos = lipgloss.Right
	}

	inner := m.bubbleWidth() - bubble.GetHorizontalFrameSize()
	if inner < 8 {
		inner = 8
	}

	label := sender.Render(util.TruncateWidth(msg.Sender, inner))
	body := renderBlocks(msg.Blocks, inner, base, marker)
	out := bubble.Render(lipgloss.JoinVertical(lipgloss.Left, label, body))
	return lipgloss.PlaceHorizontal(m.width, pos, out)
}

// renderBlocks lays out rendered markup in width columns. Each block is one
// wrapped line; list items get their marker and a hanging indent.
func renderBlocks(blocks []markup.Block, width int, base, marker lipgloss.Style) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Kind != markup.ListItem {
			lines = append(lines, wrap(renderSpans(b.Spans, base), width, base))
			continue
		}
		prefix := markup.ItemPrefix(b)
		text := wrap(renderSpans(b.Spans, base), width-lipgloss.Width(prefix), base)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, marker.Render(prefix), text))
	}
	return strings.Join(lines, "\n")
}

// wrap breaks s at width columns. Short lines are left as they are so that
// bubbles shrink to fit their content.
func wrap(s string, width int, base lipgloss.Style) string {
	if width < 1 || lipgloss.Width(s) <= width {
		return s
	}
	return base.Width(width).Render(s)
}

// renderSpans applies bold and italic on top of base.
func renderSpans(spans []markup.Span, base lipgloss.Style) string {
	var sb strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case markup.SpanStrong:
			sb.WriteString(base.Bold(true).Render(s.Text))
		case markup.SpanItalic:
			sb.WriteString(base.Italic(true).Render(s.Text))
		default:
			sb.WriteString(base.Render(s.Text))
		}
	}
	return sb.String()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/healthbot-tui/internal/markup"
	"github.com/jeranaias/healthbot-tui/internal/session"
	"github.com/jeranaias/healthbot-tui/internal/ui/styles"
)

// printer writes transcript entries to a line-oriented stream. On a
// terminal emphasis is styled; otherwise the plain rendering is used.
type printer struct {
	w       io.Writer
	r       *lipgloss.Renderer
	plain   bool
	width   int
	palette styles.Palette
}

func newPrinter(w io.Writer, dark bool) *printer {
	r := lipgloss.NewRenderer(w)
	profile := colorProfile(w)
	r.SetColorProfile(profile)
	p := &printer{
		w:     w,
		r:     r,
		plain: profile == termenv.Ascii,
		width: terminalWidth(w),
	}
	p.setDark(dark)
	return p
}

func (p *printer) setDark(dark bool) {
	if dark {
		p.palette = styles.DarkPalette
	} else {
		p.palette = styles.LightPalette
	}
}

// entry prints one transcript row.
func (p *printer) entry(e session.Entry) {
	if e.Kind == session.EntryNotice {
		p.notice(e.Notice.Text)
		return
	}
	p.message(e.Message)
}

func (p *printer) message(msg session.Message) {
	if p.plain {
		fmt.Fprintf(p.w, "%s\n%s\n\n", msg.Sender, markup.Plain(msg.Blocks))
		return
	}
	sender := p.r.NewStyle().Bold(true).Foreground(lipgloss.Color(p.palette.Accent))
	fmt.Fprintf(p.w, "%s\n%s\n\n", sender.Render(msg.Sender), p.blocks(msg.Blocks))
}

func (p *printer) notice(text string) {
	if p.plain {
		fmt.Fprintf(p.w, "-- %s --\n\n", text)
		return
	}
	style := p.r.NewStyle().Italic(true).Foreground(lipgloss.Color(p.palette.TextMuted))
	fmt.Fprintf(p.w, "%s\n\n", style.Render(text))
}

// blocks renders markup with bold, italic and hanging list indents.
func (p *printer) blocks(blocks []markup.Block) string {
	base := p.r.NewStyle()
	marker := p.r.NewStyle().Foreground(lipgloss.Color(p.palette.Accent))
	width := p.width - 2

	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		var sb strings.Builder
		for _, s := range b.Spans {
			switch s.Kind {
			case markup.SpanStrong:
				sb.WriteString(base.Bold(true).Render(s.Text))
			case markup.SpanItalic:
				sb.WriteString(base.Italic(true).Render(s.Text))
			default:
				sb.WriteString(s.Text)
			}
		}
		prefix := markup.ItemPrefix(b)
		text := base.Width(width - lipgloss.Width(prefix)).Render(sb.String())
		if prefix == "" {
			lines = append(lines, text)
			continue
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, marker.Render(prefix), text))
	}
	return strings.Join(lines, "\n")
}

// markdown renders help text with glamour on a terminal and returns it
// unchanged otherwise.
func (p *printer) markdown(text string) string {
	if p.plain {
		return text
	}
	style := "light"
	if p.palette == styles.DarkPalette {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(p.width-4),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}

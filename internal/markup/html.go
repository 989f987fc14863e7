// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"html"
	"strconv"
	"strings"
)

// Inline styles applied to rich-text containers, matching the chat bubble
// layout of the desktop client.
const (
	listStyle      = `margin: 8px 0; padding-left: 20px;`
	listItemStyle  = `margin: 2px 0; line-height: 1.5;`
	paragraphStyle = `margin: 8px 0; line-height: 1.6;`
)

// ToHTML renders blocks as HTML rich text. Each list run becomes one <ul>,
// paragraphs become <p>, and emphasis becomes <b> and <i>. All text is
// escaped.
func ToHTML(blocks []Block) string {
	var sb strings.Builder
	for _, group := range Runs(blocks) {
		if group[0].Kind == Paragraph {
			sb.WriteString(`<p style="` + paragraphStyle + `">`)
			writeSpansHTML(&sb, group[0].Spans)
			sb.WriteString(`</p>`)
			continue
		}

		sb.WriteString(`<ul style="` + listStyle + `">`)
		for _, item := range group {
			sb.WriteString(`<li style="` + listItemStyle + `">`)
			writeSpansHTML(&sb, item.Spans)
			sb.WriteString(`</li>`)
		}
		sb.WriteString(`</ul>`)
	}
	return sb.String()
}

func writeSpansHTML(sb *strings.Builder, spans []Span) {
	for _, s := range spans {
		text := html.EscapeString(s.Text)
		switch s.Kind {
		case SpanStrong:
			sb.WriteString("<b>" + text + "</b>")
		case SpanItalic:
			sb.WriteString("<i>" + text + "</i>")
		default:
			sb.WriteString(text)
		}
	}
}

// Plain renders blocks as plain text, one line per block. List items are
// prefixed with their ordinal ("2. ") or a bullet ("• ").
func Plain(blocks []Block) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, ItemPrefix(b)+b.Text())
	}
	return strings.Join(lines, "\n")
}

// ItemPrefix returns the marker shown before a list item, or "" for a
// paragraph.
func ItemPrefix(b Block) string {
	switch {
	case b.Kind != ListItem:
		return ""
	case b.Ordered:
		return strconv.Itoa(b.Ordinal) + ". "
	case b.Number != "":
		return b.Number + ". "
	default:
		return "• "
	}
}

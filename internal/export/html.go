// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/markup"
	"github.com/jeranaias/healthbot-tui/internal/session"
	"github.com/jeranaias/healthbot-tui/internal/ui/styles"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports transcripts to a standalone HTML page with inline
// bubble styles.
type HTMLExporter struct{}

// Export converts a transcript to HTML.
func (HTMLExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	lang := t.Language
	if lang.IsZero() {
		lang = i18n.English
	}
	title := html.EscapeString(i18n.Text(lang, i18n.WindowTitle))

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&sb, "<html lang=\"%s\">\n", lang.Code())
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", title)
	sb.WriteString("    <meta name=\"generator\" content=\"healthbot-tui\">\n")
	sb.WriteString("    <style>\n")
	sb.WriteString(styles.PageCSS(t.Dark))
	sb.WriteString("    </style>\n")
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")
	fmt.Fprintf(&sb, "<header>%s</header>\n", title)
	sb.WriteString("<main>\n")

	for _, e := range t.Entries {
		if e.Kind == session.EntryNotice {
			writeNotice(&sb, e.Notice, t.Dark)
			continue
		}
		writeMessage(&sb, e.Message, t.Dark)
	}

	sb.WriteString("</main>\n")
	if !t.Created.IsZero() {
		fmt.Fprintf(&sb, "<footer>%s</footer>\n", formatTimestamp(t.Created))
	}
	sb.WriteString("</body>\n</html>\n")
	return []byte(sb.String()), nil
}

func writeMessage(sb *strings.Builder, msg session.Message, dark bool) {
	side := "bot"
	if msg.IsUser {
		side = "user"
	}
	fmt.Fprintf(sb, "<div class=\"row %s\" id=\"m-%s\">\n", side, msg.ID)
	fmt.Fprintf(sb, "  <div class=\"bubble\" style=\"%s\">\n", styles.BubbleCSS(msg.IsUser, dark))
	fmt.Fprintf(sb, "    <div style=\"%s\">%s <time datetime=\"%s\">%s</time></div>\n",
		styles.SenderCSS(msg.IsUser, dark),
		html.EscapeString(msg.Sender),
		msg.Time.Format(time.RFC3339),
		msg.Time.Format("15:04"),
	)
	fmt.Fprintf(sb, "    %s\n", markup.ToHTML(msg.Blocks))
	sb.WriteString("  </div>\n</div>\n")
}

func writeNotice(sb *strings.Builder, n session.Notice, dark bool) {
	fmt.Fprintf(sb, "<div style=\"%s\">%s</div>\n", styles.NoticeCSS(dark), html.EscapeString(n.Text))
}

// FileExtension returns the file extension for HTML.
func (HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (HTMLExporter) MimeType() string {
	return "text/html; charset=utf-8"
}

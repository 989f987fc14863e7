// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/healthbot-tui/internal/markup"
	"github.com/jeranaias/healthbot-tui/internal/session"
)

// TextExporter exports transcripts as plain text with markup removed.
type TextExporter struct{}

// Export converts a transcript to text. Messages are "[time] sender:"
// followed by the plain rendering; notices are "-- text --".
func (TextExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	var sb strings.Builder
	for i, e := range t.Entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		if e.Kind == session.EntryNotice {
			fmt.Fprintf(&sb, "-- %s --\n", e.Notice.Text)
			continue
		}
		msg := e.Message
		fmt.Fprintf(&sb, "[%s] %s:\n%s\n", formatTimestamp(msg.Time), msg.Sender, markup.Plain(msg.Blocks))
	}
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for text.
func (TextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for text.
func (TextExporter) MimeType() string {
	return "text/plain; charset=utf-8"
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/healthbot-tui/internal/session"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts as a JSON array of rows.
type JSONExporter struct{}

// jsonEntry is one exported row. Notices have no sender.
type jsonEntry struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	Sender string    `json:"sender,omitempty"`
	IsUser bool      `json:"is_user"`
	Text   string    `json:"text"`
	Time   time.Time `json:"time"`
}

// Export converts a transcript to JSON.
func (JSONExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	rows := make([]jsonEntry, 0, len(t.Entries))
	for _, e := range t.Entries {
		row := jsonEntry{Kind: e.Kind.String(), Time: e.Time()}
		if e.Kind == session.EntryNotice {
			row.ID = e.Notice.ID.String()
			row.Text = e.Notice.Text
		} else {
			row.ID = e.Message.ID.String()
			row.Sender = e.Message.Sender
			row.IsUser = e.Message.IsUser
			row.Text = e.Message.Text
		}
		rows = append(rows, row)
	}
	return json.MarshalIndent(rows, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (JSONExporter) MimeType() string {
	return "application/json"
}

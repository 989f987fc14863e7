// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/session"
	"github.com/jeranaias/healthbot-tui/internal/util"
)

// ErrUnknownFormat is returned by ForFormat.
var ErrUnknownFormat = errors.New("unknown export format")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Transcript is the input to an Exporter.
type Transcript struct {
	Entries  []session.Entry
	Language i18n.Language
	Dark     bool

	// Created is shown in the HTML footer. Zero omits it.
	Created time.Time
}

// Exporter converts a transcript to one file format.
type Exporter interface {
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the extension including the dot.
	FileExtension() string

	MimeType() string
}

// ForFormat returns the exporter for "html", "json" or "txt".
func ForFormat(name string) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "", "html", "htm":
		return HTMLExporter{}, nil
	case "json":
		return JSONExporter{}, nil
	case "txt", "text":
		return TextExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// =============================================================================
// CONVENIENCE FUNCTIONS
// =============================================================================

// HTML renders entries as a standalone HTML page.
func HTML(entries []session.Entry, lang i18n.Language, dark bool) ([]byte, error) {
	return HTMLExporter{}.Export(&Transcript{Entries: entries, Language: lang, Dark: dark})
}

// JSON renders entries as a JSON array.
func JSON(entries []session.Entry) ([]byte, error) {
	return JSONExporter{}.Export(&Transcript{Entries: entries})
}

// Text renders entries as plain text.
func Text(entries []session.Entry) ([]byte, error) {
	return TextExporter{}.Export(&Transcript{Entries: entries})
}

// =============================================================================
// FILES
// =============================================================================

// ToFile writes data atomically with owner-only permissions, creating the
// parent directory when needed.
func ToFile(path string, data []byte) error {
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// DefaultFilename returns healthbot-YYYYMMDD-HHMMSS.html for now.
func DefaultFilename(now time.Time) string {
	return FilenameFor(now, ".html")
}

// FilenameFor returns the transcript filename for now with extension ext.
func FilenameFor(now time.Time, ext string) string {
	return "healthbot-" + now.Format("20060102-150405") + ext
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

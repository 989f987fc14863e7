// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/healthbot-tui/internal/export"
	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/session"
)

// =============================================================================
// EXPORT HANDLERS
// =============================================================================

// exportCmd writes the transcript as HTML. The snapshot is taken now; the
// write happens off the UI goroutine.
func (m Model) exportCmd() tea.Cmd {
	entries := m.sess.Entries()
	lang := m.sess.Language()
	dark := m.sess.Theme() == session.Dark
	path := filepath.Join(m.exportDir, export.DefaultFilename(m.now()))

	return func() tea.Msg {
		data, err := export.HTML(entries, lang, dark)
		if err == nil {
			err = export.ToFile(path, data)
		}
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("export failed", "path", msg.path, "error", msg.err)
		m.sess.AddNotice(fmt.Sprintf("⚠️ %v", msg.err))
	} else {
		m.logger.Info("transcript exported", "path", msg.path)
		m.sess.AddNotice(fmt.Sprintf("%s: %s", m.label(i18n.ExportedTo), msg.path))
	}
	m.refresh()
	return m, nil
}

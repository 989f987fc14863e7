// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/prompt"
	"github.com/jeranaias/healthbot-tui/internal/session"
	"github.com/jeranaias/healthbot-tui/internal/ui/styles"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refresh()
		if m.showHelp {
			m.helpView = m.renderHelp()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case replyMsg:
		return m.handleReply(msg)

	case exportDoneMsg:
		return m.handleExportDone(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case spinner.TickMsg:
		if !m.sess.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.sess.Cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.helpView = m.renderHelp()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Cancel):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		// The reply command still delivers the cancelled task.
		m.sess.Cancel()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.HealthMode):
		return m.setMode(prompt.Health)

	case key.Matches(msg, m.keyMap.SymptomMode):
		return m.setMode(prompt.Symptom)

	case key.Matches(msg, m.keyMap.ToggleLang):
		m.sess.ToggleLanguage()
		m.applyLanguage()
		m.layout()
		m.refresh()
		return m, tea.SetWindowTitle(m.label(i18n.WindowTitle))

	case key.Matches(msg, m.keyMap.ToggleTheme):
		m.sess.ToggleTheme()
		m.applyTheme()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input line to the session.
func (m Model) submit() (tea.Model, tea.Cmd) {
	task, err := m.sess.Submit(m.ctx, m.input.Value(), m.gen)
	switch {
	case errors.Is(err, session.ErrEmptyInput), errors.Is(err, session.ErrBusy):
		return m, nil
	case err != nil:
		m.logger.Error("submit failed", "error", err)
		m.sess.AddNotice(fmt.Sprintf("⚠️ %s: %v", m.label(i18n.ErrorPrefix), err))
		m.refresh()
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.refresh()
	return m, tea.Batch(waitForReply(task), m.spinner.Tick)
}

// waitForReply blocks until the task resolves.
func waitForReply(task *session.Task) tea.Cmd {
	return func() tea.Msg {
		<-task.Done()
		return replyMsg{task: task}
	}
}

func (m Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	if !m.sess.Complete(msg.task) {
		return m, nil
	}
	m.refresh()
	return m, m.input.Focus()
}

func (m Model) setMode(mode prompt.Mode) (tea.Model, tea.Cmd) {
	if err := m.sess.SetMode(mode); err != nil {
		m.logger.Error("set mode", "error", err)
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("config reload failed", "error", msg.Err)
		return m, nil
	}
	cfg := msg.Config
	if cfg == nil {
		return m, nil
	}

	var cmd tea.Cmd
	if name, err := styles.ParseThemeName(cfg.UI.Theme); err == nil {
		th, err := session.ParseTheme(string(styles.Resolve(name)))
		if err == nil && th != m.sess.Theme() {
			_ = m.sess.SetTheme(th)
			m.applyTheme()
		}
	}
	if lang := cfg.Language(); lang != m.sess.Language() {
		if err := m.sess.SetLanguage(lang); err == nil {
			m.applyLanguage()
			m.layout()
			cmd = tea.SetWindowTitle(m.label(i18n.WindowTitle))
		}
	}
	m.logger.Info("config reloaded", "theme", m.sess.Theme(), "language", m.sess.Language())
	m.refresh()
	return m, cmd
}

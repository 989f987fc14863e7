// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/session"
	"github.com/jeranaias/healthbot-tui/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// Bubbles never exceed this many columns, nor 75% of the terminal.
	maxBubbleWidth = 60
	minBubbleWidth = 20

	inputCharLimit = 2000
)

// Options configures a new chat Model.
type Options struct {
	Session *session.Session

	// Generator produces replies. Nil selects the canned offline replies.
	Generator session.Generator

	// Context is the parent of every request. Defaults to Background.
	Context context.Context

	// ExportDir receives exported transcripts. Defaults to ".".
	ExportDir string

	Logger *slog.Logger
	Now    func() time.Time
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	sess *session.Session
	gen  session.Generator
	ctx  context.Context

	// Styling, rebuilt on theme changes.
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	// Help overlay
	showHelp bool
	helpView string

	exportDir string
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a chat model around an existing session.
func New(opts Options) Model {
	if opts.Session == nil {
		opts.Session = session.New(session.Options{})
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = inputCharLimit
	ti.Focus()

	vp := viewport.New(defaultWidth, defaultHeight)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	m := Model{
		sess:      opts.Session,
		gen:       opts.Generator,
		ctx:       opts.Context,
		width:     defaultWidth,
		height:    defaultHeight,
		viewport:  vp,
		input:     ti,
		spinner:   sp,
		keyMap:    DefaultKeyMap(),
		exportDir: opts.ExportDir,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	m.applyTheme()
	m.applyLanguage()
	m.layout()
	m.refresh()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle(m.label(i18n.WindowTitle)))
}

// Session returns the underlying session.
func (m Model) Session() *session.Session {
	return m.sess
}

// Theme returns the active theme.
func (m Model) Theme() *styles.Theme {
	return m.theme
}

func (m Model) label(key i18n.Key) string {
	return m.sess.Label(key)
}

// applyTheme rebuilds the styles from the session theme.
func (m *Model) applyTheme() {
	m.theme = styles.NewTheme(styles.ThemeName(m.sess.Theme().String()))
	m.spinner.Style = m.theme.SenderBot
	m.input.PlaceholderStyle = m.theme.Muted
	if m.showHelp {
		m.helpView = m.renderHelp()
	}
}

// applyLanguage refreshes the text that is not part of the transcript.
func (m *Model) applyLanguage() {
	m.input.Placeholder = m.label(i18n.InputPlaceholder)
	if m.showHelp {
		m.helpView = m.renderHelp()
	}
}

// layout sizes the viewport and input to the terminal.
func (m *Model) layout() {
	chrome := 1 + // header
		lipgloss.Height(m.renderModeBar()) +
		lipgloss.Height(m.renderInput()) +
		1 // status line

	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h

	w := m.width - lipgloss.Width(m.theme.SendButton.Render(m.label(i18n.SendButton))) - 8
	if w < 10 {
		w = 10
	}
	m.input.Width = w
}

// refresh re-renders the transcript and scrolls to the newest entry.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

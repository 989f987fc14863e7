// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/healthbot-tui/internal/config"
	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/markup"
	"github.com/jeranaias/healthbot-tui/internal/prompt"
	"github.com/jeranaias/healthbot-tui/internal/session"
	"github.com/jeranaias/healthbot-tui/internal/ui/styles"
)

func newTestModel(t *testing.T, gen session.Generator) Model {
	t.Helper()
	sess := session.New(session.Options{
		FallbackDelay: -1,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	m := New(Options{
		Session:   sess,
		Generator: gen,
		ExportDir: t.TempDir(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:       func() time.Time { return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC) },
	})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// waitAndDeliver waits for the pending task and feeds its reply back.
func waitAndDeliver(t *testing.T, m Model) Model {
	t.Helper()
	task := m.sess.Pending()
	require.NotNil(t, task)
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not finish")
	}
	return update(t, m, replyMsg{task: task})
}

func TestNewShowsWelcome(t *testing.T) {
	m := newTestModel(t, nil)

	assert.Contains(t, m.renderTranscript(), "Health Assistant")
	assert.Equal(t, i18n.Text(i18n.English, i18n.InputPlaceholder), m.input.Placeholder)
	assert.True(t, m.input.Focused())
}

func TestSubmitAndReply(t *testing.T) {
	var got string
	gen := session.GeneratorFunc(func(_ context.Context, p string) (string, error) {
		got = p
		return "**Rest** well\n• drink water\n• sleep", nil
	})
	m := newTestModel(t, gen)
	m.input.SetValue("I have a cold")

	next, cmd := m.Update(keyMsg(tea.KeyEnter))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.sess.Busy())
	assert.False(t, m.input.Focused())
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.renderStatus(), "AI is thinking...")

	m = waitAndDeliver(t, m)
	assert.False(t, m.sess.Busy())
	assert.True(t, m.input.Focused())
	assert.Contains(t, got, "I have a cold")

	history := m.sess.History()
	require.Len(t, history, 2)
	assert.True(t, history[0].IsUser)
	assert.Equal(t, "**Rest** well\n• drink water\n• sleep", history[1].Text)

	view := m.renderTranscript()
	assert.Contains(t, view, "• drink water")
	assert.NotContains(t, view, "**")
}

func TestSubmitEmptyIsIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	m.input.SetValue("   ")

	next, cmd := m.Update(keyMsg(tea.KeyEnter))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.sess.Busy())
	assert.Empty(t, m.sess.History())
}

func TestSubmitWhileBusyIsRefused(t *testing.T) {
	release := make(chan struct{})
	gen := session.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-release
		return "ok", nil
	})
	m := newTestModel(t, gen)
	m.input.SetValue("first")
	m = update(t, m, keyMsg(tea.KeyEnter))

	m.input.SetValue("second")
	next, cmd := m.Update(keyMsg(tea.KeyEnter))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Len(t, m.sess.History(), 1)

	close(release)
	m = waitAndDeliver(t, m)
	assert.Len(t, m.sess.History(), 2)
}

func TestOfflineReply(t *testing.T) {
	m := newTestModel(t, nil)
	m.input.SetValue("headache")
	m = update(t, m, keyMsg(tea.KeyEnter))
	m = waitAndDeliver(t, m)

	history := m.sess.History()
	require.Len(t, history, 2)
	assert.Equal(t, session.FallbackText(prompt.Health, i18n.English), history[1].Text)
}

func TestEscCancelsPendingRequest(t *testing.T) {
	gen := session.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	m := newTestModel(t, gen)
	m.input.SetValue("hello")
	m = update(t, m, keyMsg(tea.KeyEnter))
	require.True(t, m.sess.Busy())

	m = update(t, m, keyMsg(tea.KeyEsc))
	m = waitAndDeliver(t, m)

	assert.False(t, m.sess.Busy())
	history := m.sess.History()
	require.Len(t, history, 2)
	assert.Equal(t, session.FallbackText(prompt.Health, i18n.English), history[1].Text)
	assert.Contains(t, m.renderTranscript(), "API Error")
}

func TestModeKeys(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, keyMsg(tea.KeyF3))
	assert.Equal(t, prompt.Symptom, m.sess.Mode())
	assert.Contains(t, m.renderTranscript(), "Switched to Symptom Checker mode")
	assert.Contains(t, m.renderModeBar(), "Mode: Symptom Checker")

	m = update(t, m, keyMsg(tea.KeyF2))
	assert.Equal(t, prompt.Health, m.sess.Mode())
	assert.Contains(t, m.renderTranscript(), "Switched to Health Query mode")
}

func TestToggleLanguage(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, keyMsg(tea.KeyCtrlL))
	assert.Equal(t, i18n.Khmer, m.sess.Language())
	assert.Equal(t, i18n.Text(i18n.Khmer, i18n.InputPlaceholder), m.input.Placeholder)
	assert.Contains(t, m.renderHeader(), "English")

	m = update(t, m, keyMsg(tea.KeyCtrlL))
	assert.Equal(t, i18n.English, m.sess.Language())
}

func TestToggleTheme(t *testing.T) {
	m := newTestModel(t, nil)
	require.Equal(t, styles.Light, m.theme.Name)

	m = update(t, m, keyMsg(tea.KeyCtrlT))
	assert.Equal(t, session.Dark, m.sess.Theme())
	assert.Equal(t, styles.Dark, m.theme.Name)
	assert.Contains(t, m.renderHeader(), i18n.ThemeButton(true))
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, keyMsg(tea.KeyF1))
	require.True(t, m.showHelp)
	assert.NotEmpty(t, m.helpView)
	assert.Contains(t, m.View(), "Ctrl+L")

	m = update(t, m, keyMsg(tea.KeyEsc))
	assert.False(t, m.showHelp)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(keyMsg(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExport(t *testing.T) {
	m := newTestModel(t, nil)
	m.input.SetValue("hello <world>")
	m = update(t, m, keyMsg(tea.KeyEnter))
	m = waitAndDeliver(t, m)

	msg := m.exportCmd()()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, filepath.Join(m.exportDir, "healthbot-20250301-093000.html"), done.path)

	data, err := os.ReadFile(done.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello &lt;world&gt;")

	m = update(t, m, done)
	assert.Contains(t, m.renderTranscript(), "Transcript exported to")
}

func TestConfigReload(t *testing.T) {
	m := newTestModel(t, nil)

	cfg := config.Default()
	cfg.UI.Theme = "dark"
	cfg.UI.Language = "km"
	m = update(t, m, ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, session.Dark, m.sess.Theme())
	assert.Equal(t, styles.Dark, m.theme.Name)
	assert.Equal(t, i18n.Khmer, m.sess.Language())

	// Errors leave the state alone.
	m = update(t, m, ConfigReloadedMsg{Err: assert.AnError})
	assert.Equal(t, i18n.Khmer, m.sess.Language())
}

func TestHeaderFillsWidthInBothLanguages(t *testing.T) {
	m := update(t, newTestModel(t, nil), tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 80, lipgloss.Width(m.renderHeader()))

	m = update(t, m, keyMsg(tea.KeyCtrlL))
	require.Equal(t, i18n.Khmer, m.Session().Language())
	assert.Equal(t, 80, lipgloss.Width(m.renderHeader()))
	assert.NotContains(t, m.renderHeader(), "\n")
}

func TestBubbleLayout(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Equal(t, maxBubbleWidth, m.bubbleWidth())

	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Equal(t, 30, m.bubbleWidth())

	user := m.renderMessage(session.Message{
		Sender: "👤 You",
		IsUser: true,
		Text:   "hi",
		Blocks: []markup.Block{{Spans: []markup.Span{{Text: "hi"}}}},
	})
	for _, line := range strings.Split(user, "\n") {
		assert.Equal(t, 40, lipgloss.Width(line))
	}
	// Right-aligned: the bubble text sits at the end of the line.
	first := strings.Split(user, "\n")[0]
	assert.True(t, strings.HasPrefix(first, " "))
}

func TestRenderBlocksWrapsListItems(t *testing.T) {
	blocks := []markup.Block{{
		Kind:     markup.ListItem,
		Ordered:  true,
		Ordinal:  2,
		RunStart: true,
		Spans:    []markup.Span{{Text: "one two three four five six seven"}},
	}}
	out := renderBlocks(blocks, 12, lipgloss.NewStyle(), lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "2. "))
	// Continuation lines are indented under the text.
	assert.True(t, strings.HasPrefix(lines[1], "   "))
	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 12)
	}
}

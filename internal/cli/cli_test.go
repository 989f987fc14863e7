// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/healthbot-tui/internal/config"
	"github.com/jeranaias/healthbot-tui/internal/gemini"
	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/markup"
	"github.com/jeranaias/healthbot-tui/internal/prompt"
	"github.com/jeranaias/healthbot-tui/internal/session"
)

// isolate points HOME at a temp dir and clears the environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("NO_COLOR", "1")
	for _, k := range []string{"GEMINI_API_KEY", "HEALTHBOT_MODEL", "HEALTHBOT_LANG", "HEALTHBOT_THEME", "HEALTHBOT_MODE"} {
		t.Setenv(k, "")
	}
	return home
}

// writeConfig writes a config with no fallback delay and returns its path.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[ui]\nfallback_delay_ms = 0\ntheme = \"light\"\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func run(t *testing.T, o *rootOptions, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	o.out = &out
	o.errOut = &errOut
	if o.in == nil {
		o.in = strings.NewReader("")
	}
	if o.now == nil {
		o.now = func() time.Time { return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC) }
	}
	cmd := newRootCommand(o)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func reply(text string, err error) session.Generator {
	return session.GeneratorFunc(func(context.Context, string) (string, error) {
		return text, err
	})
}

func plainFallback(mode prompt.Mode, lang i18n.Language) string {
	return markup.Plain(markup.Render(session.FallbackText(mode, lang)))
}

// =============================================================================
// ASK
// =============================================================================

func TestAskOffline(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	out, _, err := run(t, &rootOptions{}, "ask", "--config", cfg, "how", "much", "water?")
	require.NoError(t, err)
	assert.Contains(t, out, "🤖 Health Assistant")
	assert.Contains(t, out, plainFallback(prompt.Health, i18n.English))
}

func TestAskWithGenerator(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	var gotPrompt string
	o := &rootOptions{generator: session.GeneratorFunc(func(_ context.Context, p string) (string, error) {
		gotPrompt = p
		return "**Drink** water\n- eight glasses\n2. more in heat", nil
	})}
	out, _, err := run(t, o, "ask", "--config", cfg, "--mode", "symptom", "I feel dizzy")
	require.NoError(t, err)

	assert.Contains(t, gotPrompt, "I feel dizzy")
	assert.Contains(t, out, "Drink water\n• eight glasses\n2. more in heat")
	assert.NotContains(t, out, "**")
}

func TestAskKhmerSymptomOffline(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	out, _, err := run(t, &rootOptions{}, "ask", "--config", cfg, "--lang", "km", "--mode", "symptom", "ឈឺក្បាល")
	require.NoError(t, err)
	assert.Contains(t, out, i18n.Text(i18n.Khmer, i18n.Bot))
	assert.Contains(t, out, plainFallback(prompt.Symptom, i18n.Khmer))
}

func TestAskJSON(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	out, _, err := run(t, &rootOptions{generator: reply("rest", nil)}, "ask", "--config", cfg, "--json", "tired")
	require.NoError(t, err)

	var resp struct {
		Success bool      `json:"success"`
		Error   *string   `json:"error"`
		Data    askResult `json:"data"`
		Command string    `json:"command"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "ask", resp.Command)
	assert.Equal(t, "tired", resp.Data.Question)
	assert.Equal(t, "rest", resp.Data.Answer)
	assert.Equal(t, "health", resp.Data.Mode)
	assert.Equal(t, "en", resp.Data.Language)
	assert.False(t, resp.Data.Fallback)
}

func TestAskJSONFailure(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	out, _, err := run(t, &rootOptions{generator: reply("", gemini.ErrRateLimited)}, "ask", "--config", cfg, "--json", "hi")
	require.NoError(t, err)

	var resp JSONResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Contains(t, *resp.Error, "rate limit")
	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["fallback"])
	assert.Equal(t, session.FallbackText(prompt.Health, i18n.English), data["answer"])
}

func TestAskHTML(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	out, _, err := run(t, &rootOptions{generator: reply("**ok**", nil)}, "ask", "--config", cfg, "--html", "a <b>")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "a &lt;b&gt;")
	assert.Contains(t, out, "<b>ok</b>")
}

func TestAskJSONAndHTMLConflict(t *testing.T) {
	isolate(t)
	_, _, err := run(t, &rootOptions{}, "ask", "--json", "--html", "x")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestAskFailureFallsBack(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	out, errOut, err := run(t, &rootOptions{generator: reply("", errors.New("boom"))}, "ask", "--config", cfg, "hi")
	require.NoError(t, err)
	assert.Contains(t, errOut, "API Error: boom")
	assert.Contains(t, out, plainFallback(prompt.Health, i18n.English))
}

func TestAskStrict(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	_, _, err := run(t, &rootOptions{generator: reply("", gemini.ErrAuthFailed)}, "ask", "--config", cfg, "--strict", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, gemini.ErrAuthFailed)
	assert.Equal(t, ExitAuthError, ExitCode(err))
}

func TestAskStrictWithoutKey(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	_, _, err := run(t, &rootOptions{}, "ask", "--config", cfg, "--strict", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, gemini.ErrNotConfigured)
}

func TestAskVerboseLogsToStderr(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	_, errOut, err := run(t, &rootOptions{generator: reply("fine", nil)}, "ask", "--config", cfg, "--verbose", "--debug", "hi")
	require.NoError(t, err)
	assert.Contains(t, errOut, "ask finished")
}

func TestInvalidFlags(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	for _, args := range [][]string{
		{"ask", "--config", cfg, "--lang", "fr", "x"},
		{"ask", "--config", cfg, "--mode", "cardio", "x"},
		{"ask", "--config", cfg, "--theme", "sepia", "x"},
	} {
		_, _, err := run(t, &rootOptions{}, args...)
		require.Error(t, err, args)
		assert.Equal(t, ExitUsageError, ExitCode(err), args)
	}
}

func TestInvalidConfigFile(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "mode = \"cardio\"\n")

	_, _, err := run(t, &rootOptions{}, "ask", "--config", cfg, "x")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

// =============================================================================
// CHAT
// =============================================================================

func TestChatREPL(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")
	exportPath := filepath.Join(t.TempDir(), "chat.json")

	script := strings.Join([]string{
		"/mode symptom",
		"I feel sick",
		"/lang",
		"/export " + exportPath,
		"/quit",
		"never sent",
	}, "\n")
	o := &rootOptions{in: strings.NewReader(script)}
	out, _, err := run(t, o, "chat", "--config", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "Hello! I'm your healthcare assistant.")
	assert.Contains(t, out, "-- Switched to Symptom Checker mode --")
	assert.Contains(t, out, plainFallback(prompt.Symptom, i18n.English))
	assert.Contains(t, out, i18n.Text(i18n.Khmer, i18n.SwitchedToKhmer))
	assert.Contains(t, out, i18n.Text(i18n.Khmer, i18n.ExportedTo))
	assert.NotContains(t, out, "never sent")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	assert.NotEmpty(t, rows)
}

func TestChatDefaultsToREPLWhenNotATerminal(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	o := &rootOptions{in: strings.NewReader("hello\n"), generator: reply("hi there", nil)}
	out, _, err := run(t, o, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "hi there")
}

func TestChatCommandErrors(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")

	o := &rootOptions{in: strings.NewReader("/mode cardio\n/bogus\n/theme dark\n")}
	_, errOut, err := run(t, o, "chat", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, errOut, "invalid mode")
	assert.Contains(t, errOut, "unknown command /bogus")
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfigCommands(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	out, _, err := run(t, &rootOptions{}, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, _, err = run(t, &rootOptions{}, "config", "init", "--config", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, _, err = run(t, &rootOptions{}, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))

	_, _, err = run(t, &rootOptions{}, "config", "set", "ui.language", "km", "--config", path)
	require.NoError(t, err)

	out, _, err = run(t, &rootOptions{}, "config", "get", "ui.language", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "km\n", out)

	_, _, err = run(t, &rootOptions{}, "config", "set", "ui.theme", "sepia", "--config", path)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))

	_, _, err = run(t, &rootOptions{}, "config", "set", "gemini.api_key", "secret-key", "--config", path)
	require.NoError(t, err)

	out, _, err = run(t, &rootOptions{}, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "secret-key")
	assert.Contains(t, out, "[REDACTED]")

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", loaded.Gemini.APIKey)
	assert.Equal(t, i18n.Khmer, loaded.Language())
}

func TestConfigGetUnknownKey(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "")
	_, _, err := run(t, &rootOptions{}, "config", "get", "ui.nope", "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("x"), ExitGeneralError},
		{&ValidationError{Field: "f"}, ExitUsageError},
		{&ConfigError{Err: errors.New("x")}, ExitConfigError},
		{fmt.Errorf("w: %w", gemini.ErrAuthFailed), ExitAuthError},
		{fmt.Errorf("w: %w", context.DeadlineExceeded), ExitTimeoutError},
		{gemini.ErrRateLimited, ExitNetworkError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExitCode(tc.err), fmt.Sprint(tc.err))
	}
}

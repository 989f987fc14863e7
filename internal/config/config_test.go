// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/prompt"
)

// clearEnv blanks every variable Load consults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"GEMINI_API_KEY", "HEALTHBOT_MODEL", "HEALTHBOT_LANG", "HEALTHBOT_THEME", "HEALTHBOT_MODE"} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// =============================================================================
// LOAD
// =============================================================================

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.HasAPIKey())
	assert.Equal(t, i18n.English, cfg.Language())
	assert.Equal(t, prompt.Health, cfg.Mode())
	assert.Equal(t, time.Second, cfg.FallbackDelay())
	assert.Equal(t, 60*time.Second, cfg.Timeout())
}

func TestLoad_FromTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[gemini]
api_key = "file-key"
model = "gemini-1.5-pro"
timeout_secs = 20

[ui]
language = "km"
theme = "light"
mode = "symptom"
`)

	cfg, err := load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 20*time.Second, cfg.Timeout())
	assert.Equal(t, i18n.Khmer, cfg.Language())
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, prompt.Symptom, cfg.Mode())
	// Unset fields keep their defaults.
	assert.Equal(t, 1000, cfg.UI.FallbackDelayMs)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\nlanguag = \"km\"\n")

	_, err := load(path, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKey))
	assert.Contains(t, err.Error(), "ui.languag")
}

func TestLoad_MalformedTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui\nlanguage = ")

	_, err := load(path, nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[gemini]\napi_key = \"file-key\"\n[ui]\nlanguage = \"en\"\n")

	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("HEALTHBOT_LANG", "km")
	t.Setenv("HEALTHBOT_MODE", "symptoms")
	t.Setenv("HEALTHBOT_THEME", "auto")
	t.Setenv("HEALTHBOT_MODEL", "gemini-exp")

	cfg, err := load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, i18n.Khmer, cfg.Language())
	assert.Equal(t, prompt.Symptom, cfg.Mode())
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.Equal(t, "gemini-exp", cfg.Gemini.Model)
}

func TestLoad_PlaceholderKeyIsUnset(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", PlaceholderAPIKey)

	cfg, err := load(filepath.Join(t.TempDir(), "none.toml"), nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.False(t, cfg.HasAPIKey())
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("HEALTHBOT_MODEL")
	os.Unsetenv("HEALTHBOT_LANG")
	t.Setenv("HEALTHBOT_THEME", "dark")

	dir := t.TempDir()
	first := filepath.Join(dir, "config", ".env")
	second := filepath.Join(dir, ".env")
	writeFile(t, first, "HEALTHBOT_MODEL=from-first\n")
	writeFile(t, second, "HEALTHBOT_MODEL=from-second\nHEALTHBOT_LANG=km\nHEALTHBOT_THEME=light\n")

	cfg, err := load(filepath.Join(dir, "none.toml"), []string{first, second, filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "from-first", cfg.Gemini.Model, "earlier file wins")
	assert.Equal(t, i18n.Khmer, cfg.Language())
	assert.Equal(t, "dark", cfg.UI.Theme, "existing environment wins over .env")
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.UI.Language = "fr"
	cfg.UI.Theme = "neon"
	cfg.UI.Mode = "triage"
	cfg.Gemini.BaseURL = "ftp://example.com"
	cfg.Gemini.MaxRetries = -1
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, len(verrs))
	for i, v := range verrs {
		fields[i] = v.Field
	}
	assert.ElementsMatch(t, []string{
		"gemini.base_url", "gemini.max_retries", "ui.language", "ui.theme", "ui.mode", "log.level",
	}, fields)
}

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_InvalidValueFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEALTHBOT_THEME", "purple")

	_, err := load(filepath.Join(t.TempDir(), "none.toml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme")
}

// =============================================================================
// SAVE
// =============================================================================

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.Gemini.APIKey = "saved-key"
	cfg.UI.Language = "km"
	require.NoError(t, Save(cfg, path))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	loaded, err := load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// =============================================================================
// GET / SET / STRING
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("ui.language", "km"))
	v, err := cfg.Get("ui.language")
	require.NoError(t, err)
	assert.Equal(t, "km", v)

	require.NoError(t, cfg.Set("gemini.timeout_secs", "15"))
	assert.Equal(t, 15, cfg.Gemini.TimeoutSecs)

	assert.Error(t, cfg.Set("gemini.timeout_secs", "soon"))

	_, err = cfg.Get("ui.font")
	assert.True(t, errors.Is(err, ErrUnknownKey))
}

func TestSet_InvalidValueRestoresPrevious(t *testing.T) {
	cfg := Default()
	err := cfg.Set("ui.theme", "plaid")
	require.Error(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestDefault_StartsDark(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "en", cfg.UI.Language)
	assert.Equal(t, "health", cfg.UI.Mode)
	require.NoError(t, cfg.Validate())
}

func TestAPIKeyNeverDisplayed(t *testing.T) {
	cfg := Default()
	cfg.Gemini.APIKey = "AIza-very-secret"

	v, err := cfg.Get("gemini.api_key")
	require.NoError(t, err)
	assert.Equal(t, "[REDACTED]", v)
	assert.NotContains(t, cfg.String(), "very-secret")
	assert.Equal(t, "AIza-very-secret", cfg.Gemini.APIKey, "String must not mutate")
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "gemini.api_key")
	assert.Contains(t, keys, "ui.fallback_delay_ms")
	assert.IsIncreasing(t, keys)
}

// =============================================================================
// WATCH
// =============================================================================

func TestWatch_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\ntheme = \"light\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	require.NoError(t, Watch(ctx, path, func(cfg *Config, err error) {
		if err == nil {
			got <- cfg
		}
	}))

	writeFile(t, path, "[ui]\ntheme = \"dark\"\n")

	select {
	case cfg := <-got:
		assert.Equal(t, "dark", cfg.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatch_ReportsInvalidRevision(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\ntheme = \"light\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 4)
	require.NoError(t, Watch(ctx, path, func(cfg *Config, err error) {
		if err != nil {
			errs <- err
		}
	}))

	writeFile(t, path, "[ui]\ntheme = \"tartan\"\n")

	select {
	case err := <-errs:
		assert.True(t, strings.Contains(err.Error(), "ui.theme"), err.Error())
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported for invalid revision")
	}
}

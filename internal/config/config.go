// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/subosito/gotenv"

	"github.com/jeranaias/healthbot-tui/internal/gemini"
	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/prompt"
	"github.com/jeranaias/healthbot-tui/internal/util"
)

// PlaceholderAPIKey is the sample key shipped in .env templates. It is
// treated as unset.
const PlaceholderAPIKey = "your_gemini_api_key_here"

// ErrUnknownKey is returned by Get and Set for keys outside Keys().
var ErrUnknownKey = errors.New("unknown config key")

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete healthbot configuration.
type Config struct {
	Gemini GeminiConfig `toml:"gemini" json:"gemini"`
	UI     UIConfig     `toml:"ui" json:"ui"`
	Log    LogConfig    `toml:"log" json:"log"`
}

// GeminiConfig configures the language model client.
type GeminiConfig struct {
	APIKey            string `toml:"api_key" json:"api_key"`
	Model             string `toml:"model" json:"model"`
	BaseURL           string `toml:"base_url" json:"base_url"`
	TimeoutSecs       int    `toml:"timeout_secs" json:"timeout_secs"`
	MaxRetries        int    `toml:"max_retries" json:"max_retries"`
	RequestsPerMinute int    `toml:"requests_per_minute" json:"requests_per_minute"`
}

// UIConfig holds the initial UI state.
type UIConfig struct {
	Language        string `toml:"language" json:"language"`
	Theme           string `toml:"theme" json:"theme"` // light, dark or auto
	Mode            string `toml:"mode" json:"mode"`
	FallbackDelayMs int    `toml:"fallback_delay_ms" json:"fallback_delay_ms"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"` // empty means ~/.healthbot/healthbot.log
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model:       gemini.DefaultModel,
			BaseURL:     gemini.DefaultBaseURL,
			TimeoutSecs: int(gemini.DefaultTimeout / time.Second),
			MaxRetries:  gemini.DefaultMaxRetries,
		},
		UI: UIConfig{
			Language:        "en",
			Theme:           "dark",
			Mode:            "health",
			FallbackDelayMs: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the healthbot configuration directory (~/.healthbot).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".healthbot"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DotEnvPaths returns the .env files consulted by Load, highest priority
// first. Since gotenv never overrides set variables, the first file to
// define a variable wins.
func DotEnvPaths() []string {
	paths := []string{
		filepath.Join("config", ".env"),
		".env",
	}
	if dir, err := Dir(); err == nil {
		paths = append(paths, filepath.Join(dir, ".env"))
	}
	return paths
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the config at path (the default path when empty), then .env
// files and environment overrides, and validates the result. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	return load(path, DotEnvPaths())
}

func load(path string, dotenv []string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	if err := LoadDotEnv(dotenv...); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes the TOML file at path over cfg. Unknown keys are
// rejected so that typos surface instead of being ignored.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	return nil
}

// LoadDotEnv exports variables from the existing files among paths.
// Variables already present in the environment are left untouched.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := gotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides. See the package
// documentation for the supported variables.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
	if model := os.Getenv("HEALTHBOT_MODEL"); model != "" {
		c.Gemini.Model = model
	}
	if lang := os.Getenv("HEALTHBOT_LANG"); lang != "" {
		c.UI.Language = lang
	}
	if theme := os.Getenv("HEALTHBOT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if mode := os.Getenv("HEALTHBOT_MODE"); mode != "" {
		c.UI.Mode = mode
	}
}

// SetDefaults fills empty fields and clears the placeholder API key.
func (c *Config) SetDefaults() {
	d := Default()

	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if c.Gemini.APIKey == PlaceholderAPIKey {
		c.Gemini.APIKey = ""
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = d.Gemini.Model
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = d.Gemini.BaseURL
	}
	if c.Gemini.TimeoutSecs == 0 {
		c.Gemini.TimeoutSecs = d.Gemini.TimeoutSecs
	}
	if c.UI.Language == "" {
		c.UI.Language = d.UI.Language
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.Mode == "" {
		c.UI.Mode = d.UI.Mode
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg as TOML to path (the default path when empty) with 0600
// permissions, since the file may hold an API key.
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}

	var buf bytes.Buffer
	buf.WriteString("# healthbot configuration file\n")
	buf.WriteString("# Environment variables (GEMINI_API_KEY, HEALTHBOT_*) override these values.\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError is a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var validThemes = map[string]bool{"light": true, "dark": true, "auto": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks every field and returns ValidateErrors listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Gemini.Model) == "" {
		errs = append(errs, ValidationError{"gemini.model", "must not be empty"})
	}
	if u, err := url.Parse(c.Gemini.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"gemini.base_url", fmt.Sprintf("invalid URL %q", c.Gemini.BaseURL)})
	} else if u.Scheme != "https" && u.Scheme != "http" {
		errs = append(errs, ValidationError{"gemini.base_url", fmt.Sprintf("unsupported scheme %q", u.Scheme)})
	}
	if c.Gemini.TimeoutSecs < 0 || c.Gemini.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{"gemini.timeout_secs", "must be between 0 and 600"})
	}
	if c.Gemini.MaxRetries < 0 || c.Gemini.MaxRetries > 10 {
		errs = append(errs, ValidationError{"gemini.max_retries", "must be between 0 and 10"})
	}
	if c.Gemini.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{"gemini.requests_per_minute", "must not be negative"})
	}

	if _, err := i18n.Parse(c.UI.Language); err != nil {
		errs = append(errs, ValidationError{"ui.language", fmt.Sprintf("invalid language %q, must be en or km", c.UI.Language)})
	}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{"ui.theme", fmt.Sprintf("invalid theme %q, must be one of: light, dark, auto", c.UI.Theme)})
	}
	if _, err := prompt.ParseMode(c.UI.Mode); err != nil {
		errs = append(errs, ValidationError{"ui.mode", fmt.Sprintf("invalid mode %q, must be health or symptom", c.UI.Mode)})
	}
	if c.UI.FallbackDelayMs < 0 || c.UI.FallbackDelayMs > 60000 {
		errs = append(errs, ValidationError{"ui.fallback_delay_ms", "must be between 0 and 60000"})
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("invalid level %q, must be one of: debug, info, warn, error", c.Log.Level)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// TYPED ACCESSORS
// =============================================================================

// Language returns the parsed UI language, English when invalid.
func (c *Config) Language() i18n.Language {
	lang, err := i18n.Parse(c.UI.Language)
	if err != nil {
		return i18n.English
	}
	return lang
}

// Mode returns the parsed assistant mode, Health when invalid.
func (c *Config) Mode() prompt.Mode {
	mode, _ := prompt.ParseMode(c.UI.Mode)
	return mode
}

// Timeout returns the request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Gemini.TimeoutSecs) * time.Second
}

// FallbackDelay returns how long the offline fallback waits before replying.
func (c *Config) FallbackDelay() time.Duration {
	return time.Duration(c.UI.FallbackDelayMs) * time.Millisecond
}

// HasAPIKey reports whether a usable API key is configured.
func (c *Config) HasAPIKey() bool {
	key := strings.TrimSpace(c.Gemini.APIKey)
	return key != "" && key != PlaceholderAPIKey
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringField(p func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *p(c) },
		set: func(c *Config, v string) error { *p(c) = v; return nil },
	}
}

func intField(p func(*Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*p(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("not an integer: %q", v)
			}
			*p(c) = n
			return nil
		},
	}
}

var fields = map[string]field{
	"gemini.api_key":             stringField(func(c *Config) *string { return &c.Gemini.APIKey }),
	"gemini.model":               stringField(func(c *Config) *string { return &c.Gemini.Model }),
	"gemini.base_url":            stringField(func(c *Config) *string { return &c.Gemini.BaseURL }),
	"gemini.timeout_secs":        intField(func(c *Config) *int { return &c.Gemini.TimeoutSecs }),
	"gemini.max_retries":         intField(func(c *Config) *int { return &c.Gemini.MaxRetries }),
	"gemini.requests_per_minute": intField(func(c *Config) *int { return &c.Gemini.RequestsPerMinute }),
	"ui.language":                stringField(func(c *Config) *string { return &c.UI.Language }),
	"ui.theme":                   stringField(func(c *Config) *string { return &c.UI.Theme }),
	"ui.mode":                    stringField(func(c *Config) *string { return &c.UI.Mode }),
	"ui.fallback_delay_ms":       intField(func(c *Config) *int { return &c.UI.FallbackDelayMs }),
	"log.level":                  stringField(func(c *Config) *string { return &c.Log.Level }),
	"log.file":                   stringField(func(c *Config) *string { return &c.Log.File }),
}

// Keys returns every dot-notation key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value at key (for example "ui.theme"). The API key is
// returned redacted.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if strings.ToLower(key) == "gemini.api_key" {
		return redact(c.Gemini.APIKey), nil
	}
	return f.get(c), nil
}

// Set assigns value to key and re-validates. On a validation failure the
// previous value is restored.
func (c *Config) Set(key, value string) error {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	old := f.get(c)
	if err := f.set(c, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := c.Validate(); err != nil {
		_ = f.set(c, old)
		return err
	}
	return nil
}

// =============================================================================
// DISPLAY
// =============================================================================

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns an indented JSON rendering with the API key redacted.
func (c *Config) String() string {
	safe := c.Clone()
	safe.Gemini.APIKey = redact(safe.Gemini.APIKey)
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

func redact(key string) string {
	if key == "" {
		return ""
	}
	return "[REDACTED]"
}

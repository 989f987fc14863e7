// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/healthbot-tui/internal/config"
	"github.com/jeranaias/healthbot-tui/internal/gemini"
	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/logging"
	"github.com/jeranaias/healthbot-tui/internal/prompt"
	"github.com/jeranaias/healthbot-tui/internal/session"
	"github.com/jeranaias/healthbot-tui/internal/ui/styles"
)

// rootOptions holds the global flags and the process streams.
type rootOptions struct {
	configPath string
	lang       string
	theme      string
	mode       string
	debug      bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// generator replaces the Gemini client when set.
	generator session.Generator
	now       func() time.Time
}

// app is the resolved configuration shared by every command.
type app struct {
	opts    *rootOptions
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
}

// load reads the configuration and applies the flag overrides.
func (o *rootOptions) load() (*app, error) {
	path := o.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return nil, &ConfigError{Err: err}
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	if err := o.applyFlags(cfg); err != nil {
		return nil, err
	}
	return &app{opts: o, cfg: cfg, cfgPath: path, logger: logging.Discard()}, nil
}

// applyFlags overrides cfg with the global flags. Used at startup and on
// every config reload so flags keep winning.
func (o *rootOptions) applyFlags(cfg *config.Config) error {
	if o.lang != "" {
		if _, err := i18n.Parse(o.lang); err != nil {
			return &ValidationError{Field: "--lang", Value: o.lang, Reason: "must be en or km", Example: "--lang km"}
		}
		cfg.UI.Language = o.lang
	}
	if o.theme != "" {
		if _, err := styles.ParseThemeName(o.theme); err != nil {
			return &ValidationError{Field: "--theme", Value: o.theme, Reason: "must be light, dark or auto"}
		}
		cfg.UI.Theme = o.theme
	}
	if o.mode != "" {
		if _, err := prompt.ParseMode(o.mode); err != nil {
			return &ValidationError{Field: "--mode", Value: o.mode, Reason: "must be health or symptom", Example: "--mode symptom"}
		}
		cfg.UI.Mode = o.mode
	}
	if o.debug {
		cfg.Log.Level = "debug"
	}
	return nil
}

func (o *rootOptions) clock() time.Time {
	if o.now != nil {
		return o.now()
	}
	return time.Now()
}

// =============================================================================
// LOGGING
// =============================================================================

// logPath returns the configured log file, defaulting next to the config.
func (a *app) logPath() string {
	if a.cfg.Log.File != "" {
		return a.cfg.Log.File
	}
	if dir, err := config.Dir(); err == nil {
		return filepath.Join(dir, logging.FileName)
	}
	return logging.FileName
}

// initFileLogging sends logs to the log file. Failure leaves logging off.
func (a *app) initFileLogging() {
	logger, err := logging.InitFile(a.logPath(), logging.ParseLevel(a.cfg.Log.Level))
	if err != nil {
		a.logger = logging.Discard()
		return
	}
	a.logger = logger
}

// initWriterLogging sends logs to w.
func (a *app) initWriterLogging(w io.Writer) {
	a.logger = logging.InitWriter(w, logging.ParseLevel(a.cfg.Log.Level))
}

// =============================================================================
// SESSION WIRING
// =============================================================================

var _ session.Generator = (*gemini.Client)(nil)

// generator returns the reply generator, or nil when no API key is set so
// the session falls back to canned replies.
func (a *app) generator() session.Generator {
	if a.opts.generator != nil {
		return a.opts.generator
	}
	if !a.cfg.HasAPIKey() {
		a.logger.Info("no API key configured, using offline replies")
		return nil
	}
	g := a.cfg.Gemini
	return gemini.NewClient(g.APIKey).
		WithBaseURL(g.BaseURL).
		WithModel(g.Model).
		WithTimeout(a.cfg.Timeout()).
		WithMaxRetries(g.MaxRetries).
		WithRequestsPerMinute(g.RequestsPerMinute).
		WithLogger(a.logger)
}

// sessionTheme resolves the configured theme name to light or dark.
func (a *app) sessionTheme() session.Theme {
	name, err := styles.ParseThemeName(a.cfg.UI.Theme)
	if err != nil {
		name = styles.Light
	}
	th, err := session.ParseTheme(string(styles.Resolve(name)))
	if err != nil {
		return session.Light
	}
	return th
}

// newSession creates a session from the configuration. A zero delay means
// the offline reply appears immediately.
func (a *app) newSession(noWelcome bool, delay time.Duration) *session.Session {
	if delay == 0 {
		delay = -1
	}
	return session.New(session.Options{
		Mode:          a.cfg.Mode(),
		Language:      a.cfg.Language(),
		Theme:         a.sessionTheme(),
		FallbackDelay: delay,
		NoWelcome:     noWelcome,
		Logger:        a.logger,
		Now:           a.opts.now,
	})
}

// isDark reports whether the session uses the dark theme.
func isDark(sess *session.Session) bool {
	return sess.Theme() == session.Dark
}

func trimArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

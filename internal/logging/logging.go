// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide structured logger.
//
// The TUI owns stdout and stderr, so logs go to a file by default. One-shot
// commands may log to stderr instead. The level can change at runtime, for
// example when the config file is edited.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileName is the log file name inside the config directory.
const FileName = "healthbot.log"

var (
	levelVar = new(slog.LevelVar)
	mu       sync.Mutex
	logFile  *os.File
)

// ParseLevel maps a config level name to a slog level. Unknown names map to
// info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel changes the level of every logger created by this package.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// Level returns the current level.
func Level() slog.Level {
	return levelVar.Level()
}

// New returns a text logger writing to w at the shared dynamic level.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// InitFile opens path for appending (creating its directory with 0700),
// installs a logger writing to it as slog's default, and returns it.
// A previously opened log file is closed.
func InitFile(path string, level slog.Level) (*slog.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	mu.Lock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	mu.Unlock()

	SetLevel(level)
	logger := New(f)
	slog.SetDefault(logger)
	logger.Debug("logger initialized", "path", path)
	return logger, nil
}

// InitWriter installs a logger writing to w as slog's default.
func InitWriter(w io.Writer, level slog.Level) *slog.Logger {
	SetLevel(level)
	logger := New(w)
	slog.SetDefault(logger)
	return logger
}

// Close closes the log file opened by InitFile, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

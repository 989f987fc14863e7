// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/prompt"
)

var (
	// ErrEmptyInput is returned by Submit for blank input.
	ErrEmptyInput = errors.New("empty input")

	// ErrBusy is returned by Submit while a request is outstanding.
	ErrBusy = errors.New("a request is already in progress")
)

// DefaultFallbackDelay is how long the offline reply takes to appear.
const DefaultFallbackDelay = time.Second

// Options configures a new Session.
type Options struct {
	Mode     prompt.Mode
	Language i18n.Language // zero means English
	Theme    Theme

	// FallbackDelay delays the canned reply when no generator is
	// available. Negative disables the delay.
	FallbackDelay time.Duration

	// NoWelcome skips the welcome message.
	NoWelcome bool

	Logger *slog.Logger
	Now    func() time.Time
}

// Session is the state of one conversation.
type Session struct {
	mu sync.Mutex

	mode    prompt.Mode
	lang    i18n.Language
	theme   Theme
	history []Message
	entries []Entry
	pending *Task

	fallbackDelay time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

// New creates a session and posts the welcome message. The welcome message
// appears in the transcript but not in history.
func New(opts Options) *Session {
	s := &Session{
		mode:          opts.Mode,
		lang:          opts.Language,
		theme:         opts.Theme,
		fallbackDelay: opts.FallbackDelay,
		logger:        opts.Logger,
		now:           opts.Now,
	}
	if !s.mode.Valid() {
		s.mode = prompt.Health
	}
	if s.lang.IsZero() {
		s.lang = i18n.English
	}
	if s.fallbackDelay == 0 {
		s.fallbackDelay = DefaultFallbackDelay
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}

	if !opts.NoWelcome {
		welcome := newMessage(i18n.Text(s.lang, i18n.WelcomeMessage), i18n.Text(s.lang, i18n.Bot), false, s.now())
		s.entries = append(s.entries, Entry{Kind: EntryMessage, Message: welcome})
	}
	return s
}

// =============================================================================
// STATE
// =============================================================================

// Mode returns the current assistant mode.
func (s *Session) Mode() prompt.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Language returns the current UI language.
func (s *Session) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// Theme returns the current theme.
func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Label returns the UI string for key in the current language.
func (s *Session) Label(key i18n.Key) string {
	return i18n.Text(s.Language(), key)
}

// ModeLabel returns the localized "Mode: ..." line.
func (s *Session) ModeLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == prompt.Symptom {
		return i18n.Text(s.lang, i18n.ModeLabelSymptom)
	}
	return i18n.Text(s.lang, i18n.ModeLabelHealth)
}

// SetMode switches the assistant mode. A change posts a notice.
func (s *Session) SetMode(m prompt.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", prompt.ErrUnknownMode, int(m))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == m {
		return nil
	}
	s.mode = m
	key := i18n.SwitchedToHealth
	if m == prompt.Symptom {
		key = i18n.SwitchedToSymptom
	}
	s.addNoticeLocked(i18n.Text(s.lang, key))
	return nil
}

// SetLanguage switches the UI language. A change posts a notice in the new
// language. Existing messages keep the labels they were created with.
func (s *Session) SetLanguage(l i18n.Language) error {
	if l != i18n.English && l != i18n.Khmer {
		return fmt.Errorf("%w: %q", i18n.ErrUnsupportedLanguage, l.Code())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lang == l {
		return nil
	}
	s.lang = l
	s.addNoticeLocked(i18n.SwitchedLanguageNotice(l))
	return nil
}

// ToggleLanguage switches between English and Khmer and returns the new
// language.
func (s *Session) ToggleLanguage() i18n.Language {
	next := s.Language().Toggle()
	_ = s.SetLanguage(next)
	return next
}

// SetTheme switches the theme. Theme changes post no notice.
func (s *Session) SetTheme(t Theme) error {
	if t != Light && t != Dark {
		return fmt.Errorf("%w: %d", ErrUnknownTheme, int(t))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	return nil
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *Session) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = s.theme.Toggle()
	return s.theme
}

// ThemeButton returns the theme toggle label for the current theme.
func (s *Session) ThemeButton() string {
	return i18n.ThemeButton(s.Theme() == Dark)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// History returns a copy of the recorded messages, oldest first.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Entries returns a copy of the transcript, oldest first.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// AddNotice posts a transient system line.
func (s *Session) AddNotice(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addNoticeLocked(text)
}

func (s *Session) addNoticeLocked(text string) {
	s.entries = append(s.entries, Entry{
		Kind:   EntryNotice,
		Notice: Notice{ID: uuid.New(), Text: text, Time: s.now()},
	})
}

func (s *Session) addMessageLocked(text, sender string, isUser bool) Message {
	msg := newMessage(text, sender, isUser, s.now())
	s.history = append(s.history, msg)
	s.entries = append(s.entries, Entry{Kind: EntryMessage, Message: msg})
	return msg
}

// =============================================================================
// REQUESTS
// =============================================================================

// Busy reports whether a request is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Pending returns the outstanding task, or nil.
func (s *Session) Pending() *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Submit records text as a user message and starts a generation task using
// the prompt for the current mode and language. With a nil gen the task
// answers with the canned reply for the mode after the fallback delay.
//
// The returned task must be handed back to Complete once it is done.
func (s *Session) Submit(ctx context.Context, text string, gen Generator) (*Task, error) {
	text = i18n.NormalizeInput(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return nil, ErrBusy
	}

	promptText, err := prompt.Build(s.mode, s.lang, text)
	if err != nil {
		return nil, err
	}

	s.addMessageLocked(text, i18n.Text(s.lang, i18n.You), true)

	offline := gen == nil
	if offline {
		gen = offlineGenerator(s.fallbackDelay, FallbackText(s.mode, s.lang))
	}
	task := startTask(ctx, gen, promptText, s.mode, s.lang)
	s.pending = task

	s.logger.Info("request started",
		"task", task.id,
		"mode", s.mode,
		"lang", s.lang,
		"input_chars", len([]rune(text)),
		"offline", offline)
	return task, nil
}

// Complete applies a finished task's outcome. A reply becomes a bot
// message. A failure posts an error notice followed by the canned reply for
// the task's mode and language. Complete returns false, changing nothing,
// when task is not the outstanding request or has not finished.
func (s *Session) Complete(task *Task) bool {
	if task == nil || !task.Finished() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != task {
		return false
	}
	s.pending = nil

	bot := i18n.Text(s.lang, i18n.Bot)
	text, err := task.Result()
	if err != nil {
		s.logger.Warn("request failed", "task", task.id, "duration", task.duration, "error", err)
		s.addNoticeLocked(fmt.Sprintf("⚠️ %s: %v", i18n.Text(s.lang, i18n.ErrorPrefix), err))
		s.addMessageLocked(FallbackText(task.mode, task.lang), bot, false)
		return true
	}

	s.logger.Info("request finished", "task", task.id, "duration", task.duration, "reply_chars", len([]rune(text)))
	s.addMessageLocked(text, bot, false)
	return true
}

// Cancel aborts the outstanding request, if any. The task still has to be
// passed to Complete.
func (s *Session) Cancel() bool {
	task := s.Pending()
	if task == nil {
		return false
	}
	task.Cancel()
	return true
}

// FallbackText returns the canned reply for mode in lang.
func FallbackText(mode prompt.Mode, lang i18n.Language) string {
	if mode == prompt.Symptom {
		return i18n.Text(lang, i18n.MockSymptomResponse)
	}
	return i18n.Text(lang, i18n.MockHealthResponse)
}

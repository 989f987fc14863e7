// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/prompt"
)

var (
	// ErrPending is returned by Task.Result before the task has finished.
	ErrPending = errors.New("task still running")

	// ErrEmptyReply indicates the generator returned only whitespace.
	ErrEmptyReply = errors.New("empty reply")
)

// Generator produces reply text for a prompt. *gemini.Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, p string) (string, error) {
	return f(ctx, p)
}

// Task is one outstanding generation request. It finishes exactly once,
// either with reply text or with an error; cancellation is an error.
type Task struct {
	id      uuid.UUID
	mode    prompt.Mode
	lang    i18n.Language
	started time.Time
	cancel  context.CancelFunc
	done    chan struct{}

	once     sync.Once
	text     string
	err      error
	duration time.Duration
}

type outcome struct {
	text string
	err  error
}

func startTask(parent context.Context, gen Generator, promptText string, mode prompt.Mode, lang i18n.Language) *Task {
	ctx, cancel := context.WithCancel(parent)
	t := &Task{
		id:      uuid.New(),
		mode:    mode,
		lang:    lang,
		started: time.Now(),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go t.run(ctx, gen, promptText)
	return t
}

func (t *Task) run(ctx context.Context, gen Generator, promptText string) {
	defer t.cancel()

	result := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- outcome{err: fmt.Errorf("generator panic: %v", r)}
			}
		}()
		text, err := gen.Generate(ctx, promptText)
		result <- outcome{text: text, err: err}
	}()

	// A generator that ignores its context must not hold the task open.
	select {
	case o := <-result:
		if o.err == nil && strings.TrimSpace(o.text) == "" {
			o.err = ErrEmptyReply
		}
		t.resolve(o.text, o.err)
	case <-ctx.Done():
		t.resolve("", ctx.Err())
	}
}

func (t *Task) resolve(text string, err error) {
	t.once.Do(func() {
		if err != nil {
			text = ""
		}
		t.text = text
		t.err = err
		t.duration = time.Since(t.started)
		close(t.done)
	})
}

// ID returns the task identifier.
func (t *Task) ID() uuid.UUID { return t.id }

// Mode returns the mode the request was made in.
func (t *Task) Mode() prompt.Mode { return t.mode }

// Language returns the language the request was made in.
func (t *Task) Language() i18n.Language { return t.lang }

// Done returns a channel closed when the task finishes.
func (t *Task) Done() <-chan struct{} { return t.done }

// Finished reports whether the task has finished.
func (t *Task) Finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Result returns the outcome, or ErrPending if the task is still running.
func (t *Task) Result() (string, error) {
	if !t.Finished() {
		return "", ErrPending
	}
	return t.text, t.err
}

// Wait blocks until the task finishes or ctx is done. A ctx expiry does not
// cancel the task.
func (t *Task) Wait(ctx context.Context) (string, error) {
	select {
	case <-t.done:
		return t.text, t.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Cancel aborts the request. The task finishes with context.Canceled unless
// it already finished.
func (t *Task) Cancel() {
	t.cancel()
}

// Duration returns how long the task ran. It is zero until the task finishes.
func (t *Task) Duration() time.Duration {
	if !t.Finished() {
		return 0
	}
	return t.duration
}

// offlineGenerator answers with text after delay. It stands in for the
// model when no API key is configured.
func offlineGenerator(delay time.Duration, text string) Generator {
	return GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		if delay <= 0 {
			return text, nil
		}
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
			return text, nil
		}
	})
}

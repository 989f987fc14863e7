// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// Watch reloads the config at path whenever it changes and calls fn with
// the result. Load errors are passed to fn as well, so a half-written file
// can be reported without stopping the watch. The parent directory is
// watched because editors often replace the file instead of writing it.
//
// Watch returns once the watcher is running; it stops when ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				fn(Load(abs))

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fn(nil, fmt.Errorf("config watcher: %w", err))
			}
		}
	}()
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/healthbot-tui/internal/config"
	"github.com/jeranaias/healthbot-tui/internal/ui/chat"
)

// runTUI runs the full-screen chat until the user quits.
func runTUI(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := a.newSession(false, a.cfg.FallbackDelay())
	m := chat.New(chat.Options{
		Session:   sess,
		Generator: a.generator(),
		Context:   ctx,
		Logger:    a.logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	err := config.Watch(ctx, a.cfgPath, func(cfg *config.Config, err error) {
		if err == nil {
			err = a.opts.applyFlags(cfg)
		}
		p.Send(chat.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		a.logger.Warn("config watch disabled", "path", a.cfgPath, "error", err)
	}

	a.logger.Info("tui started", "language", sess.Language(), "mode", sess.Mode(), "theme", sess.Theme())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/healthbot-tui/internal/config"
	"github.com/jeranaias/healthbot-tui/internal/session"
)

// replyMsg reports that a submitted task has finished.
type replyMsg struct {
	task *session.Task
}

// exportDoneMsg reports the result of a transcript export.
type exportDoneMsg struct {
	path string
	err  error
}

// ConfigReloadedMsg carries a configuration re-read after the file changed.
// Send it to the program with tea.Program.Send.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

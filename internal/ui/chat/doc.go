// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea chat view for the health assistant.

# Layout

From top to bottom the view shows:
  - a gradient header with the window title and the language and theme buttons
  - the transcript viewport, with user bubbles on the right and bot bubbles
    on the left
  - the mode bar with the Health Query and Symptom Checker buttons
  - the input line and send button, or a spinner while a reply is pending

# State

All conversation state lives in a *session.Session. The model keeps only
view state (dimensions, widgets, the current theme) and re-renders the
transcript from Session.Entries whenever something changes. No bubble is
cached in rendered form, so a theme switch restyles every message.

# Replies

Submitting starts a session.Task. A tea.Cmd waits for the task and returns
replyMsg, and Update applies it with Session.Complete. Completion therefore
always happens on the Bubble Tea goroutine.
*/
package chat

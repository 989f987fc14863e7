// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/healthbot-tui/internal/markup"
)

// Message is one chat bubble. Messages are immutable once created.
type Message struct {
	ID     uuid.UUID
	Text   string
	Sender string
	IsUser bool
	Time   time.Time

	// Blocks is Text rendered once at creation.
	Blocks []markup.Block
}

func newMessage(text, sender string, isUser bool, now time.Time) Message {
	return Message{
		ID:     uuid.New(),
		Text:   text,
		Sender: sender,
		IsUser: isUser,
		Time:   now,
		Blocks: markup.Render(text),
	}
}

// Notice is a transient system line such as a mode switch or an error. It
// is shown in the transcript but never recorded in history.
type Notice struct {
	ID   uuid.UUID
	Text string
	Time time.Time
}

// EntryKind distinguishes transcript rows.
type EntryKind int

const (
	EntryMessage EntryKind = iota
	EntryNotice
)

// String implements fmt.Stringer.
func (k EntryKind) String() string {
	if k == EntryNotice {
		return "notice"
	}
	return "message"
}

// Entry is one transcript row. Exactly one of Message and Notice is set,
// according to Kind.
type Entry struct {
	Kind    EntryKind
	Message Message
	Notice  Notice
}

// Time returns the creation time of the row.
func (e Entry) Time() time.Time {
	if e.Kind == EntryNotice {
		return e.Notice.Time
	}
	return e.Message.Time
}

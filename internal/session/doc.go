// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state of one chat conversation.
//
// A Session owns the assistant mode, the UI language and theme, the
// append-only message history and the transcript shown to the user. It
// dispatches at most one generation request at a time as a Task and applies
// the Task's outcome when the caller hands it back through Complete.
//
// # Threading
//
// Every Session method is safe for concurrent use. Tasks run on their own
// goroutine, but they never touch the Session: the UI goroutine observes
// Task.Done and calls Complete, so the transcript only changes on the
// caller's goroutine.
//
// # Usage
//
//	s := session.New(session.Options{Language: i18n.Khmer})
//	task, err := s.Submit(ctx, "I have a headache", client)
//	if err != nil {
//	    return err // ErrEmptyInput or ErrBusy
//	}
//	<-task.Done()
//	s.Complete(task)
package session

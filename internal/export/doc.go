// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to files.
//
// # Supported Formats
//
//   - HTML: a standalone page with the chat bubble colors of the light or
//     dark theme
//   - JSON: one object per transcript row
//   - Text: the plain rendering, one line per block
//
// # Usage
//
//	data, err := export.HTML(sess.Entries(), sess.Language(), dark)
//	if err == nil {
//	    err = export.ToFile(export.DefaultFilename(time.Now()), data)
//	}
package export

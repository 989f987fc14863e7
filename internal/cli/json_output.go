// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"io"
	"time"
)

// JSONResponse is the machine-readable output of a command.
type JSONResponse struct {
	Success   bool    `json:"success"`
	Data      any     `json:"data"`
	Error     *string `json:"error"`
	Timestamp string  `json:"timestamp"`
	Command   string  `json:"command,omitempty"`
}

// NewJSONResponse creates a response. A non-nil err marks it unsuccessful;
// data is kept either way.
func NewJSONResponse(command string, data any, err error, now time.Time) *JSONResponse {
	r := &JSONResponse{
		Success:   err == nil,
		Data:      data,
		Timestamp: now.UTC().Format(time.RFC3339),
		Command:   command,
	}
	if err != nil {
		msg := err.Error()
		r.Error = &msg
	}
	return r
}

// Print writes the response as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/healthbot-tui/internal/export"
	"github.com/jeranaias/healthbot-tui/internal/gemini"
	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/logging"
)

type askOptions struct {
	json    bool
	html    bool
	strict  bool
	verbose bool
}

// askResult is the data of a JSON ask response.
type askResult struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Mode       string `json:"mode"`
	Language   string `json:"language"`
	Fallback   bool   `json:"fallback"`
	DurationMs int64  `json:"duration_ms"`
}

func newAskCommand(o *rootOptions) *cobra.Command {
	var ao askOptions
	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask one question and print the reply",
		Long: `Send a single question and print the reply.

When the request fails, the built-in advice for the current mode is
printed instead and the command still succeeds, unless --strict is set.`,
		Example: `  healthbot ask "How much water should I drink?"
  healthbot ask --mode symptom --lang km "ខ្ញុំឈឺក្បាល"
  healthbot ask --json "Is coffee bad for sleep?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ao.json && ao.html {
				return &ValidationError{Field: "flags", Reason: "--json and --html are mutually exclusive"}
			}
			a, err := o.load()
			if err != nil {
				return err
			}
			if ao.verbose {
				a.initWriterLogging(o.errOut)
			} else {
				a.initFileLogging()
			}
			defer logging.Close()
			return runAsk(cmd.Context(), a, ao, trimArgs(args))
		},
	}
	f := cmd.Flags()
	f.BoolVar(&ao.json, "json", false, "print the reply as JSON")
	f.BoolVar(&ao.html, "html", false, "print the transcript as an HTML page")
	f.BoolVar(&ao.strict, "strict", false, "exit non-zero when the model request fails")
	f.BoolVarP(&ao.verbose, "verbose", "v", false, "log to stderr")
	return cmd
}

func runAsk(ctx context.Context, a *app, ao askOptions, question string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := a.opts.out

	gen := a.generator()
	if gen == nil && ao.strict {
		return fmt.Errorf("ask: %w: set GEMINI_API_KEY or gemini.api_key", gemini.ErrNotConfigured)
	}

	sess := a.newSession(true, 0)
	task, err := sess.Submit(ctx, question, gen)
	if err != nil {
		return &ValidationError{Field: "question", Reason: err.Error()}
	}
	_, genErr := task.Wait(ctx)
	if !task.Finished() {
		task.Cancel()
		<-task.Done()
		_, genErr = task.Result()
	}
	sess.Complete(task)

	history := sess.History()
	reply := history[len(history)-1]

	switch {
	case ao.json:
		res := askResult{
			Question:   question,
			Answer:     reply.Text,
			Mode:       task.Mode().String(),
			Language:   task.Language().Code(),
			Fallback:   genErr != nil || gen == nil,
			DurationMs: task.Duration().Milliseconds(),
		}
		if err := NewJSONResponse("ask", res, genErr, a.opts.clock()).Print(out); err != nil {
			return err
		}

	case ao.html:
		data, err := export.HTML(sess.Entries(), sess.Language(), isDark(sess))
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}

	default:
		p := newPrinter(out, isDark(sess))
		if genErr != nil {
			fmt.Fprintf(a.opts.errOut, "%s\n", WarningStyle.Render(
				fmt.Sprintf("⚠️ %s: %v", i18n.Text(sess.Language(), i18n.ErrorPrefix), genErr)))
		}
		p.message(reply)
	}

	a.logger.Info("ask finished",
		"mode", task.Mode(),
		"language", task.Language(),
		"failed", genErr != nil,
		"duration", task.Duration().Round(time.Millisecond))

	if genErr != nil && ao.strict {
		return fmt.Errorf("ask: %w", genErr)
	}
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/healthbot-tui/internal/config"
	"github.com/jeranaias/healthbot-tui/internal/export"
	"github.com/jeranaias/healthbot-tui/internal/i18n"
	"github.com/jeranaias/healthbot-tui/internal/logging"
	"github.com/jeranaias/healthbot-tui/internal/prompt"
	"github.com/jeranaias/healthbot-tui/internal/session"
)

func newChatCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Line-based chat with input history",
		Long: `Chat in the terminal without the full-screen interface.

Commands:
  /mode [health|symptom]   show or switch the assistant mode
  /lang [en|km]            switch the language (toggles without an argument)
  /theme [light|dark]      switch the color theme (toggles without an argument)
  /export [FILE]           write the transcript (.html, .json or .txt)
  /help                    show key and command help
  /quit                    leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.load()
			if err != nil {
				return err
			}
			a.initFileLogging()
			defer logging.Close()
			return runChat(cmd.Context(), a)
		},
	}
}

// =============================================================================
// INPUT
// =============================================================================

// lineReader reads one line of user input.
type lineReader interface {
	ReadInput(prompt string) (string, error)
	Close()
}

// linerReader provides input history and line editing on a terminal.
type linerReader struct {
	line        *liner.State
	historyFile string
}

func newLinerReader(historyFile string) *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	r := &linerReader{line: line, historyFile: historyFile}
	r.loadHistory()
	return r
}

func (r *linerReader) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line, adding non-empty input to the history.
func (r *linerReader) ReadInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory persists the history with owner-only permissions.
func (r *linerReader) saveHistory() {
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (r *linerReader) Close() {
	r.saveHistory()
	r.line.Close()
}

// scanReader reads lines from a non-terminal stream.
type scanReader struct {
	sc *bufio.Scanner
}

func (r *scanReader) ReadInput(string) (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func (r *scanReader) Close() {}

// newLineReader uses liner on an interactive stdin and a plain scanner
// otherwise.
func (o *rootOptions) newLineReader() lineReader {
	if o.in == os.Stdin && IsTTY() {
		history := "chat_history"
		if dir, err := config.Dir(); err == nil {
			history = filepath.Join(dir, "chat_history")
		}
		return newLinerReader(history)
	}
	return &scanReader{sc: bufio.NewScanner(o.in)}
}

// =============================================================================
// REPL
// =============================================================================

type repl struct {
	app     *app
	sess    *session.Session
	gen     session.Generator
	printer *printer
	errOut  io.Writer

	// shown counts the transcript entries already printed.
	shown int
}

func runChat(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sess := a.newSession(false, a.cfg.FallbackDelay())
	r := &repl{
		app:     a,
		sess:    sess,
		gen:     a.generator(),
		printer: newPrinter(a.opts.out, isDark(sess)),
		errOut:  a.opts.errOut,
	}
	in := a.opts.newLineReader()
	defer in.Close()

	a.logger.Info("chat started", "language", sess.Language(), "mode", sess.Mode())
	r.flush()

	for {
		input, err := in.ReadInput(r.prompt())
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			cont, err := r.command(input)
			if err != nil {
				fmt.Fprintf(r.errOut, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
			}
			if !cont {
				return nil
			}
			continue
		}

		r.send(ctx, input)
	}
}

func (r *repl) prompt() string {
	if r.sess.Mode() == prompt.Symptom {
		return "symptom> "
	}
	return "health> "
}

// flush prints the entries added since the last call.
func (r *repl) flush() {
	entries := r.sess.Entries()
	for _, e := range entries[r.shown:] {
		r.printer.entry(e)
	}
	r.shown = len(entries)
}

// send submits one message and waits for the reply. Ctrl+C while waiting
// cancels the request.
func (r *repl) send(ctx context.Context, text string) {
	task, err := r.sess.Submit(ctx, text, r.gen)
	if err != nil {
		if !errors.Is(err, session.ErrEmptyInput) {
			fmt.Fprintf(r.errOut, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
		}
		return
	}
	// The user already sees what they typed.
	r.shown = len(r.sess.Entries())

	fmt.Fprintln(r.errOut, MutedStyle.Render(r.sess.Label(i18n.Thinking)))

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	_, _ = task.Wait(sigCtx)
	stop()
	if !task.Finished() {
		task.Cancel()
		<-task.Done()
	}

	r.sess.Complete(task)
	r.flush()
}

// command runs a slash command. It returns false when the REPL should end.
func (r *repl) command(line string) (bool, error) {
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	arg := trimArgs(fields[1:])

	switch name {
	case "/quit", "/exit", "/q":
		return false, nil

	case "/help", "/h", "/?":
		fmt.Fprintln(r.printer.w, r.printer.markdown(r.sess.Label(i18n.Help)))

	case "/mode":
		if arg == "" {
			fmt.Fprintln(r.printer.w, r.sess.ModeLabel())
			return true, nil
		}
		mode, err := prompt.ParseMode(arg)
		if err != nil {
			return true, &ValidationError{Field: "mode", Value: arg, Reason: "must be health or symptom"}
		}
		if err := r.sess.SetMode(mode); err != nil {
			return true, err
		}

	case "/lang", "/language":
		if arg == "" {
			r.sess.ToggleLanguage()
			break
		}
		lang, err := i18n.Parse(arg)
		if err != nil {
			return true, &ValidationError{Field: "language", Value: arg, Reason: "must be en or km"}
		}
		if err := r.sess.SetLanguage(lang); err != nil {
			return true, err
		}

	case "/theme":
		if arg == "" {
			r.sess.ToggleTheme()
		} else {
			th, err := session.ParseTheme(arg)
			if err != nil {
				return true, &ValidationError{Field: "theme", Value: arg, Reason: "must be light or dark"}
			}
			if err := r.sess.SetTheme(th); err != nil {
				return true, err
			}
		}
		r.printer.setDark(isDark(r.sess))

	case "/export":
		path, err := r.export(arg)
		if err != nil {
			return true, err
		}
		r.sess.AddNotice(fmt.Sprintf("%s: %s", r.sess.Label(i18n.ExportedTo), path))

	default:
		return true, fmt.Errorf("unknown command %s (try /help)", name)
	}

	r.flush()
	return true, nil
}

// export writes the transcript to path, choosing the format from its
// extension. An empty path uses the default HTML filename.
func (r *repl) export(path string) (string, error) {
	now := r.app.opts.clock()
	if path == "" {
		path = export.DefaultFilename(now)
	}
	exp, err := export.ForFormat(filepath.Ext(path))
	if err != nil {
		return "", err
	}
	data, err := exp.Export(&export.Transcript{
		Entries:  r.sess.Entries(),
		Language: r.sess.Language(),
		Dark:     isDark(r.sess),
		Created:  now,
	})
	if err != nil {
		return "", err
	}
	if err := export.ToFile(path, data); err != nil {
		return "", err
	}
	r.app.logger.Info("transcript exported", "path", path)
	return path, nil
}

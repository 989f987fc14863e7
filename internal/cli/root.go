// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/healthbot-tui/internal/logging"
)

// Version information, set by main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
		return ExitCode(err)
	}
	return ExitSuccess
}

// NewRootCommand builds the command tree bound to the process streams.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{in: os.Stdin, out: os.Stdout, errOut: os.Stderr})
}

func newRootCommand(o *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "healthbot",
		Short: "Bilingual health assistant for the terminal",
		Long: `healthbot answers general health questions and helps describe symptoms,
in English or Khmer, using the Gemini API. Without an API key it shows
built-in general advice.

Run without a command to open the chat interface. When stdout is not a
terminal, a line-based chat is started instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.load()
			if err != nil {
				return err
			}
			a.initFileLogging()
			defer logging.Close()

			if o.interactive() {
				return runTUI(cmd.Context(), a)
			}
			return runChat(cmd.Context(), a)
		},
	}
	root.Version = Version
	root.SetVersionTemplate(versionTemplate())
	root.SetIn(o.in)
	root.SetOut(o.out)
	root.SetErr(o.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default ~/.healthbot/config.toml)")
	pf.StringVar(&o.lang, "lang", "", "UI and reply language: en or km")
	pf.StringVar(&o.theme, "theme", "", "color theme: light, dark or auto")
	pf.StringVar(&o.mode, "mode", "", "assistant mode: health or symptom")
	pf.BoolVar(&o.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newChatCommand(o),
		newAskCommand(o),
		newConfigCommand(o),
	)
	return root
}

// interactive reports whether the full-screen interface can run.
func (o *rootOptions) interactive() bool {
	return o.in == os.Stdin && o.out == os.Stdout && IsTTY() && IsStdoutTTY()
}

func versionTemplate() string {
	if GitCommit != "unknown" && GitCommit != "" {
		return fmt.Sprintf("healthbot %s\n  commit: %s\n  built:  %s\n", Version, GitCommit, BuildDate)
	}
	return fmt.Sprintf("healthbot %s\n", Version)
}

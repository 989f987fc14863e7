// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/healthbot-tui/internal/config"
)

func newConfigCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit the configuration",
		Long: `Show and edit the configuration file.

Keys use dot notation, for example ui.language or gemini.model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(o)
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(o, force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := o.resolvedConfigPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(o.out, path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration with secrets redacted",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return showConfig(o)
			},
		},
		initCmd,
		&cobra.Command{
			Use:       "get KEY",
			Short:     "Print one effective setting",
			Args:      cobra.ExactArgs(1),
			ValidArgs: config.Keys(),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := o.load()
				if err != nil {
					return err
				}
				v, err := a.cfg.Get(args[0])
				if err != nil {
					return &ValidationError{Field: "key", Value: args[0], Reason: err.Error(),
						Example: "healthbot config get " + config.Keys()[0]}
				}
				fmt.Fprintln(o.out, v)
				return nil
			},
		},
		&cobra.Command{
			Use:       "set KEY VALUE",
			Short:     "Change one setting in the config file",
			Args:      cobra.ExactArgs(2),
			ValidArgs: config.Keys(),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setConfig(o, args[0], args[1])
			},
		},
	)
	return cmd
}

func (o *rootOptions) resolvedConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	p, err := config.Path()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return p, nil
}

func showConfig(o *rootOptions) error {
	a, err := o.load()
	if err != nil {
		return err
	}
	fmt.Fprintln(o.out, MutedStyle.Render("# "+a.cfgPath))
	fmt.Fprintln(o.out, a.cfg.String())
	if !a.cfg.HasAPIKey() {
		fmt.Fprintln(o.out, WarningStyle.Render("No API key set; replies use built-in advice."))
	}
	return nil
}

func initConfig(o *rootOptions, force bool) error {
	path, err := o.resolvedConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return &ConfigError{Path: path, Err: errors.New("already exists (use --force to overwrite)")}
	}
	if err := config.Save(config.Default(), path); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	fmt.Fprintf(o.out, "%s %s\n", SuccessStyle.Render("Created"), path)
	return nil
}

// setConfig edits the file only, so environment and flag overrides are
// never written back.
func setConfig(o *rootOptions, key, value string) error {
	path, err := o.resolvedConfigPath()
	if err != nil {
		return err
	}
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return &ConfigError{Path: path, Err: err}
		}
	}
	if err := cfg.Set(key, value); err != nil {
		return &ValidationError{Field: key, Value: value, Reason: strings.TrimPrefix(err.Error(), key+": ")}
	}
	if err := config.Save(cfg, path); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	shown := value
	if strings.Contains(key, "api_key") {
		shown = "(redacted)"
	}
	fmt.Fprintf(o.out, "%s %s = %s\n", SuccessStyle.Render("Set"), key, shown)
	return nil
}

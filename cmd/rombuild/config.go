// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"romboss/internal/config"
)

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the rombuild configuration",
	}
	cmd.AddCommand(a.configShowCommand(), a.configInitCommand())
	return cmd
}

func (a *app) configShowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			out, err := config.Render(cfg, config.Format(format))
			if err != nil {
				return err
			}
			if a.verbose {
				fmt.Fprintf(a.stderr, "%s %s\n", SubtitleStyle.Render("source:"), sourceLabel(cfg))
			}
			_, err = fmt.Fprint(a.stdout, out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatCUE), "output format (cue, toml, json)")
	return cmd
}

func (a *app) configInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName() + " to the project directory",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dir := a.projectDir
			if dir == "" {
				dir = "."
			}
			path, written, err := config.CreateDefaultConfig(dir)
			if err != nil {
				return err
			}
			if !written {
				fmt.Fprintf(a.stdout, "%s %s already exists\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(a.stdout, "%s created %s\n", successIcon, path)
			return nil
		},
	}
}

func sourceLabel(cfg *config.Config) string {
	if cfg.Source == "" {
		return "built-in defaults"
	}
	return cfg.Source
}

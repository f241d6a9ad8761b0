// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"romboss/internal/issue"
	"romboss/internal/rom"
)

// Version is the semantic version (set via -ldflags).
var Version = "dev"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := rootCommand(stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := fang.Execute(ctx, root,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			renderError(w, err)
		}),
	)
	if err != nil {
		return 1
	}
	return 0
}

func rootCommand(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "romboss",
		Short: "Inspect retro console ROM headers",
		Long: titleStyle.Render("romboss") + subtitleStyle.Render(" - ROM header inspector") + `

Reads the internal header of Super Nintendo, Mega Drive / Genesis and
Nintendo DS images.

` + subtitleStyle.Render("Examples:") + `
  romboss info game.sfc
  romboss info -o yaml -p genesis dump.bin`,
		SilenceUsage: true,
	}
	root.AddCommand(infoCommand(stdout), versionCommand(stdout))
	return root
}

func infoCommand(stdout io.Writer) *cobra.Command {
	var output, platform string
	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Print the header of a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			format, err := rom.ParseFormat(output)
			if err != nil {
				return err
			}
			p, err := rom.ParsePlatform(platform)
			if err != nil {
				return err
			}
			info, err := rom.Inspect(args[0], p)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("read ROM header").
					WithResource(args[0]).
					WithIssue(romIssue(err)).
					Wrap(err).
					BuildError()
			}
			return rom.Encode(stdout, info, format)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(rom.FormatJSON), "output format (json, yaml)")
	cmd.Flags().StringVarP(&platform, "platform", "p", string(rom.PlatformAuto), "platform (auto, snes, sfc, megadrive, genesis, ds)")
	return cmd
}

func versionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the romboss version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(stdout, "romboss v%s\n", Version)
			return err
		},
	}
}

// romIssue links header and size problems to the catalog; I/O errors speak
// for themselves.
func romIssue(err error) issue.Id {
	if errors.Is(err, rom.ErrInvalidHeader) || errors.Is(err, rom.ErrInvalidSize) {
		return issue.RomUnreadableId
	}
	return 0
}

func renderError(w io.Writer, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render("Error:"), err)
		return
	}
	fmt.Fprintf(w, "%s %s\n", errorStyle.Render("Error:"), ae.Format(false))
	if entry := issue.Get(ae.Issue); entry != nil {
		if rendered, renderErr := entry.Render("notty"); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"romboss/internal/matrix"
	"romboss/internal/pipeline"
	"romboss/internal/release"
	"romboss/pkg/target"
)

func (a *app) buildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the binary for the host in release mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}
			artifact, err := p.Build(cmd.Context())
			if err != nil {
				return withExitCode(err)
			}
			fmt.Fprintf(a.stdout, "%s built %s\n", successIcon, artifact)
			return nil
		},
	}
}

func (a *app) installCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Build for the host, then copy the binary into <prefix>/bin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}
			res, err := p.Install(cmd.Context())
			if err != nil {
				return withExitCode(err)
			}
			fmt.Fprintf(a.stdout, "%s installed %s\n", successIcon, res.Destination)
			return nil
		},
	}
}

func (a *app) allCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Build and install (the default workflow)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}
			res, err := p.All(cmd.Context())
			if err != nil {
				return withExitCode(err)
			}
			fmt.Fprintf(a.stdout, "%s installed %s\n", successIcon, res.Destination)
			return nil
		},
	}
}

func (a *app) targetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "target <triple>",
		Short: "Build the binary for one configured target triple",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}
			res, err := p.BuildTarget(cmd.Context(), target.Triple(args[0]))
			if err != nil {
				return withExitCode(err)
			}
			fmt.Fprintf(a.stdout, "%s built %s\n", successIcon, res.Artifact)
			return nil
		},
	}
}

func (a *app) allTargetsCommand() *cobra.Command {
	var keepGoing bool
	cmd := &cobra.Command{
		Use:   "all-targets",
		Short: "Build every configured target triple in order",
		Long: `Build every configured target triple in declared order.

By default the run stops at the first failing target. With --keep-going
(or continue_on_error in the configuration) every target is attempted and
all failures are reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []pipeline.Option
			if cmd.Flags().Changed("keep-going") {
				opts = append(opts, pipeline.WithContinueOnError(keepGoing))
			}
			p, err := a.pipeline(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			report, err := p.AllTargets(cmd.Context())
			if len(report.Results) > 0 {
				if renderErr := renderReport(a.stdout, report); renderErr != nil {
					return renderErr
				}
			}
			return withExitCode(err)
		},
	}
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "build every target even after a failure")
	return cmd
}

func (a *app) releasePrepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "release-prep",
		Short: "Copy every target's artifact into the release directory",
		Long: `Copy the artifact of every configured target into the release directory
as <name>-<triple>[.exe] and print their SHA-256 checksums.

Nothing is copied unless every artifact exists; run 'rombuild all-targets'
first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}
			staged, err := p.ReleasePrep(cmd.Context())
			if err != nil {
				return withExitCode(err)
			}
			return release.WriteChecksums(a.stdout, staged)
		},
	}
}

func (a *app) watchCommand() *cobra.Command {
	var (
		installToo bool
		debounce   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the host binary whenever a source file changes",
		Long: `Build the host binary, then rebuild it after every change to the
project's source files until interrupted. Build output directories are not
watched. With --install each rebuild is also installed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}
			return p.Watch(cmd.Context(), installToo, debounce)
		},
	}
	cmd.Flags().BoolVar(&installToo, "install", false, "install after every successful build")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before rebuilding (default 500ms)")
	return cmd
}

func (a *app) targetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the configured target matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}
			cfg := p.Config()
			rows := make([][]any, 0, len(cfg.Targets))
			for _, tgt := range cfg.Targets {
				rows = append(rows, []any{tgt.Triple, tgt.Family, tgt.ReleaseName(string(cfg.Binary))})
			}
			return renderTable(a.stdout, []string{"TRIPLE", "FAMILY", "RELEASE NAME"}, rows)
		},
	}
}

// renderReport prints one row per target of a matrix run.
func renderReport(w io.Writer, report matrix.Report) error {
	rows := make([][]any, 0, len(report.Results))
	for _, r := range report.Results {
		rows = append(rows, []any{r.Target.Triple, statusLabel(r.Status), r.Duration.Round(time.Millisecond), r.Artifact})
	}
	if err := renderTable(w, []string{"TRIPLE", "STATUS", "DURATION", "ARTIFACT"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d built, %d failed, %d skipped in %s\n",
		report.Count(matrix.StatusBuilt), report.Count(matrix.StatusFailed), report.Count(matrix.StatusSkipped),
		report.Duration.Round(time.Millisecond))
	return err
}

func statusLabel(s matrix.Status) string {
	switch s {
	case matrix.StatusBuilt:
		return successIcon + " " + string(s)
	case matrix.StatusFailed:
		return failIcon + " " + string(s)
	default:
		return skipIcon + " " + string(s)
	}
}

func renderTable(w io.Writer, header []string, rows [][]any) error {
	tbl := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders:  tw.BorderNone,
			Settings: tw.Settings{Separators: tw.Separators{BetweenColumns: tw.On}},
		})),
	)
	tbl.Header(header)
	if err := tbl.Bulk(rows); err != nil {
		return err
	}
	return tbl.Render()
}

// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"romboss/internal/config"
	"romboss/internal/install"
	"romboss/internal/issue"
	"romboss/internal/pipeline"
	"romboss/internal/release"
	"romboss/internal/toolchain"
	"romboss/pkg/target"
	"romboss/pkg/types"
)

// app holds the flag values and output streams of one invocation.
type app struct {
	cfgFile    string
	projectDir string
	verbose    bool
	logLevel   string

	provider config.Provider
	stdout   io.Writer
	stderr   io.Writer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		provider: config.NewProvider(),
		stdout:   stdout,
		stderr:   stderr,
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Build, install and stage releases of romboss",
		Long: TitleStyle.Render("rombuild") + SubtitleStyle.Render(" - build orchestration for romboss") + `

rombuild compiles the romboss binary for the host and for a matrix of
target triples, installs the host build and stages release artifacts.

` + SubtitleStyle.Render("Examples:") + `
  rombuild build            Build for the host
  rombuild install          Build, then install into <prefix>/bin
  rombuild all-targets      Build every configured triple
  rombuild release-prep     Copy built artifacts into the release directory
  rombuild config show      Show the effective configuration`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.FileName()+")")
	flags.StringVarP(&a.projectDir, "project-dir", "C", "", "project directory searched for "+config.FileName())
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.buildCommand(),
		a.installCommand(),
		a.allCommand(),
		a.targetCommand(),
		a.allTargetsCommand(),
		a.releasePrepCommand(),
		a.watchCommand(),
		a.targetsCommand(),
		a.configCommand(),
	)
	return root
}

// loadConfig resolves the configuration from the global flags.
func (a *app) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.provider.Load(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(a.cfgFile),
		ProjectDir:     types.FilesystemPath(a.projectDir),
	})
}

// logger writes to stderr at the level chosen by --log-level, then
// --verbose, then the configuration.
func (a *app) logger(cfg *config.Config) (*log.Logger, error) {
	level := cfg.Log.Level
	if a.logLevel != "" {
		level = config.LogLevel(a.logLevel)
		if valid, errs := level.IsValid(); !valid {
			return nil, errs[0]
		}
	}
	lvl := level.Level()
	if a.verbose || cfg.Log.Verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Level:  lvl,
		Prefix: config.AppName,
	}), nil
}

// pipeline loads the configuration and wires a pipeline for it.
func (a *app) pipeline(ctx context.Context, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	logger, err := a.logger(cfg)
	if err != nil {
		return nil, err
	}
	opts = append([]pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithCompilerOutput(a.stderr, a.stderr),
	}, opts...)
	return pipeline.New(cfg, opts...)
}

// renderError prints err, then the catalog guidance for its failure kind.
func (a *app) renderError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, a.verbose))

	entry := issue.Get(issueFor(err))
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(guidanceStyle())
	if renderErr != nil {
		fmt.Fprintf(w, "%s failed to render guidance: %v\n", WarningStyle.Render("Warning:"), renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// formatErrorForDisplay uses ActionableError formatting when available.
// In verbose mode the full error chain is shown.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// issueFor maps a failure to its catalog entry; zero means none.
func issueFor(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	switch {
	case errors.Is(err, target.ErrUnknownTarget):
		return issue.UnknownTargetId
	case errors.Is(err, toolchain.ErrToolchainMissing):
		return issue.ToolchainMissingId
	case errors.Is(err, toolchain.ErrBuildFailure):
		return issue.BuildFailureId
	case errors.Is(err, release.ErrArtifactMissing):
		return issue.ArtifactMissingId
	case errors.Is(err, install.ErrPermissionDenied):
		return issue.PermissionDeniedId
	case errors.Is(err, install.ErrPathNotFound):
		return issue.PathNotFoundId
	default:
		return 0
	}
}

// guidanceStyle picks a glamour style; plain text when stderr is not a terminal.
func guidanceStyle() string {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return "notty"
	}
	return "dark"
}

// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"romboss/internal/cueutil"
	"romboss/internal/issue"
	"romboss/pkg/fspath"
	"romboss/pkg/target"
	"romboss/pkg/types"
)

const (
	// AppName is the orchestrator's name.
	AppName = "rombuild"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "rombuild"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides (ROMBUILD_INSTALL_PREFIX, ...).
	EnvPrefix = "ROMBUILD"
)

//go:embed rombuild_schema.cue
var configSchema []byte

// FileName returns the config file name looked up in a project directory.
func FileName() string { return ConfigFileName + "." + ConfigFileExt }

// loadWithOptions layers defaults, the CUE file and the environment, then
// validates the result.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolveConfigPath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the schema shown by 'rombuild config init'").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = path
	cfg.normalize(opts, path)

	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(displaySource(path)).
			WithSuggestion("Every target triple must be unique and produce a distinct release name").
			WithSuggestion("Binary names reserved on Windows (CON, NUL, ...) cannot be used with windows targets").
			WithIssue(issue.InvalidMatrixId).
			Wrap(errs[0]).
			BuildError()
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("binary", string(d.Binary))
	v.SetDefault("package", d.Package)
	v.SetDefault("version", d.Version)
	v.SetDefault("version_var", d.VersionVar)
	v.SetDefault("project_dir", "")
	v.SetDefault("toolchain", string(d.Toolchain))
	v.SetDefault("runner", string(d.Runner))
	v.SetDefault("target_dir", string(d.TargetDir))
	v.SetDefault("release_dir", string(d.ReleaseDir))
	v.SetDefault("continue_on_error", d.ContinueOnError)
	v.SetDefault("install.prefix", string(d.Install.Prefix))
	v.SetDefault("targets", targetMaps(d.Targets))
	v.SetDefault("log.level", string(d.Log.Level))
	v.SetDefault("log.verbose", d.Log.Verbose)
}

// targetMaps renders a matrix the way a decoded config file carries it.
func targetMaps(m target.Matrix) []map[string]any {
	out := make([]map[string]any, len(m))
	for i, t := range m {
		out[i] = map[string]any{"triple": string(t.Triple), "family": string(t.Family)}
	}
	return out
}

// resolveConfigPath returns the file to load, or "" to use defaults only.
// An explicit path must exist; the project file is optional.
func resolveConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		p := string(opts.ConfigFilePath)
		if !fileExists(p) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(p).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Create one with 'rombuild config init'").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", p)).
				BuildError()
		}
		return p, nil
	}

	dir := string(opts.ProjectDir)
	if dir == "" {
		dir = "."
	}
	if p := fspath.JoinStr(types.FilesystemPath(dir), FileName()); fileExists(string(p)) {
		return string(p), nil
	}
	return "", nil
}

// normalize resolves the project directory and fills inferred families.
// A relative project_dir in a file is relative to that file.
func (c *Config) normalize(opts LoadOptions, path string) {
	switch {
	case c.ProjectDir != "" && path != "":
		c.ProjectDir = fspath.Resolve(fspath.Dir(types.FilesystemPath(path)), c.ProjectDir)
	case c.ProjectDir == "" && opts.ProjectDir != "":
		c.ProjectDir = opts.ProjectDir
	case c.ProjectDir == "" && path != "":
		c.ProjectDir = fspath.Dir(types.FilesystemPath(path))
	case c.ProjectDir == "":
		c.ProjectDir = "."
	}

	for i, t := range c.Targets {
		if t.Family != "" {
			continue
		}
		if fam, ok := target.InferFamily(t.Triple); ok {
			c.Targets[i].Family = fam
		}
	}
}

func displaySource(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}

// loadCUEIntoViper validates the file against #Config and merges it into v.
// The document decodes into a map so Viper keeps defaults for omitted keys
// and environment overrides still apply.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	res, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*res.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to
// <dir>/rombuild.cue unless the file already exists. It reports whether a
// file was written.
func CreateDefaultConfig(dir string) (string, bool, error) {
	path := filepath.Join(dir, FileName())
	if fileExists(path) {
		return path, false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, true, nil
}

// GenerateCUE renders cfg as a rombuild.cue document.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// rombuild configuration\n")
	sb.WriteString("// Environment variables prefixed with ROMBUILD_ override these values.\n\n")

	fmt.Fprintf(&sb, "binary:      %q\n", cfg.Binary)
	fmt.Fprintf(&sb, "package:     %q\n", cfg.Package)
	fmt.Fprintf(&sb, "version:     %q\n", cfg.Version)
	fmt.Fprintf(&sb, "version_var: %q\n", cfg.VersionVar)
	fmt.Fprintf(&sb, "toolchain:   %q\n", cfg.Toolchain)
	fmt.Fprintf(&sb, "runner:      %q\n", cfg.Runner)
	fmt.Fprintf(&sb, "target_dir:  %q\n", cfg.TargetDir)
	fmt.Fprintf(&sb, "release_dir: %q\n", cfg.ReleaseDir)
	fmt.Fprintf(&sb, "\n// Build every target even after one fails.\ncontinue_on_error: %v\n", cfg.ContinueOnError)

	sb.WriteString("\ninstall: {\n")
	fmt.Fprintf(&sb, "\tprefix: %q\n", cfg.Install.Prefix)
	sb.WriteString("}\n")

	sb.WriteString("\ntargets: [\n")
	for _, t := range cfg.Targets {
		if t.Family != "" {
			fmt.Fprintf(&sb, "\t{triple: %q, family: %q},\n", t.Triple, t.Family)
		} else {
			fmt.Fprintf(&sb, "\t{triple: %q},\n", t.Triple)
		}
	}
	sb.WriteString("]\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel:   %q\n", cfg.Log.Level)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.Log.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

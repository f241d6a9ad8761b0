// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"romboss/internal/fsutil"
	"romboss/pkg/target"
)

type (
	// Locator knows where the build for a target leaves its binary.
	Locator interface {
		ArtifactPath(tgt *target.Target) string
	}

	// Artifact is one staged binary.
	Artifact struct {
		Target target.Target `json:"target"`
		Source string        `json:"source"`
		Path   string        `json:"path"`
		Size   int64         `json:"size"`
		SHA256 string        `json:"sha256"`
	}

	// Stager copies built artifacts into the release directory.
	Stager struct {
		binary  string
		dir     string
		locator Locator
	}
)

// NewStager creates a Stager for binary that stages into dir.
func NewStager(binary, dir string, locator Locator) *Stager {
	return &Stager{binary: binary, dir: dir, locator: locator}
}

// Dir returns the release directory.
func (s *Stager) Dir() string { return s.dir }

// Plan returns the artifacts Stage would produce without touching the
// filesystem. Size and SHA256 are left empty.
func (s *Stager) Plan(targets target.Matrix) []Artifact {
	out := make([]Artifact, 0, len(targets))
	for _, tgt := range targets {
		out = append(out, Artifact{
			Target: tgt,
			Source: s.locator.ArtifactPath(&tgt),
			Path:   filepath.Join(s.dir, tgt.ReleaseName(s.binary)),
		})
	}
	return out
}

// Stage copies the artifact of every target into the release directory.
// It returns the joined ArtifactMissingErrors of all unbuilt targets without
// copying anything when any artifact is absent.
func (s *Stager) Stage(ctx context.Context, targets target.Matrix) ([]Artifact, error) {
	planned := s.Plan(targets)

	var missing []error
	for _, a := range planned {
		if !fsutil.IsRegularFile(a.Source) {
			missing = append(missing, &ArtifactMissingError{Triple: a.Target.Triple, Path: a.Source})
		}
	}
	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, &StagingError{Path: s.dir, Cause: err}
	}

	staged := make([]Artifact, 0, len(planned))
	for _, a := range planned {
		if err := ctx.Err(); err != nil {
			return staged, err
		}
		copied, err := fsutil.CopyFile(a.Source, a.Path, fsutil.ExecutableMode)
		if err != nil {
			return staged, &StagingError{Path: a.Path, Cause: err}
		}
		a.Size = copied.Size
		a.SHA256 = copied.SHA256
		staged = append(staged, a)
	}
	return staged, nil
}

// WriteChecksums writes artifacts in sha256sum format ("<hash>  <name>"),
// suitable for publishing next to the release.
func WriteChecksums(w io.Writer, artifacts []Artifact) error {
	for _, a := range artifacts {
		if _, err := fmt.Fprintf(w, "%s  %s\n", a.SHA256, filepath.Base(a.Path)); err != nil {
			return err
		}
	}
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package release

import (
	"errors"
	"fmt"

	"romboss/pkg/target"
)

var (
	// ErrArtifactMissing is the sentinel error wrapped by ArtifactMissingError.
	ErrArtifactMissing = errors.New("artifact missing")
	// ErrStagingFailed is the sentinel error wrapped by StagingError.
	ErrStagingFailed = errors.New("release staging failed")
)

type (
	// ArtifactMissingError reports a target whose binary has not been built.
	ArtifactMissingError struct {
		Triple target.Triple
		Path   string
	}

	// StagingError reports a filesystem failure while populating the
	// release directory. The cause is kept so fs.ErrPermission and
	// fs.ErrNotExist stay visible to errors.Is.
	StagingError struct {
		Path  string
		Cause error
	}
)

// Error implements the error interface for ArtifactMissingError.
func (e *ArtifactMissingError) Error() string {
	return fmt.Sprintf("artifact for %s not found at %s (build it first)", e.Triple, e.Path)
}

// Unwrap returns ErrArtifactMissing for errors.Is() compatibility.
func (e *ArtifactMissingError) Unwrap() error { return ErrArtifactMissing }

// Error implements the error interface for StagingError.
func (e *StagingError) Error() string {
	return fmt.Sprintf("staging %s: %v", e.Path, e.Cause)
}

// Unwrap returns ErrStagingFailed and the cause.
func (e *StagingError) Unwrap() []error { return []error{ErrStagingFailed, e.Cause} }

// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestValues_CoversEveryId(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(RomUnreadableId) {
		t.Fatalf("len(Values()) = %d, want %d", len(values), RomUnreadableId)
	}
	for i, v := range values {
		if v.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), i+1)
		}
		if strings.TrimSpace(string(v.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty markdown", v.Id())
		}
	}
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	if Get(0) != nil {
		t.Error("Get(0) should be nil")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(ArtifactMissingId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "rombuild all-targets") {
		t.Errorf("rendered output missing remediation:\n%s", out)
	}

	withLinks, err := Get(ToolchainMissingId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(withLinks, "See also") {
		t.Errorf("rendered output missing doc links:\n%s", withLinks)
	}
}

func TestIssue_DocLinksIsCopy(t *testing.T) {
	t.Parallel()

	links := Get(ConfigLoadFailedId).DocLinks()
	links[0] = "mutated"
	if Get(ConfigLoadFailedId).DocLinks()[0] == "mutated" {
		t.Error("DocLinks() must return a copy")
	}
}

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "stage release"},
			want: "failed to stage release",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "build target", Resource: "x86_64-pc-windows-gnu"},
			want: "failed to build target: x86_64-pc-windows-gnu",
		},
		{
			name: "with cause",
			err: &ActionableError{
				Operation: "install binary",
				Resource:  "/opt/local/bin",
				Cause:     errors.New("path not found"),
			},
			want: "failed to install binary: /opt/local/bin: path not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("no such file or directory")
	err := NewErrorContext().
		WithOperation("stage release").
		WithResource("x86_64-unknown-linux-gnu").
		WithSuggestion("Run 'rombuild all-targets' first").
		WithIssue(ArtifactMissingId).
		Wrap(&wrapped{msg: "artifact missing", cause: root}).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "• Run 'rombuild all-targets' first") {
		t.Errorf("Format(false) missing suggestion:\n%s", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Errorf("Format(false) should not include the chain:\n%s", short)
	}

	long := err.Format(true)
	if !strings.Contains(long, "2. no such file or directory") {
		t.Errorf("Format(true) missing chain depth:\n%s", long)
	}
	if !errors.Is(err, root) {
		t.Error("errors.Is should reach the root cause")
	}
	if err.Issue != ArtifactMissingId {
		t.Errorf("Issue = %d, want ArtifactMissingId", err.Issue)
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should be nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should be a nil interface")
	}
	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should be nil")
	}
}

type wrapped struct {
	msg   string
	cause error
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.cause }

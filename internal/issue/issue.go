// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"sort"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry. The zero value means "no linked issue".
type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	InvalidMatrixId
	UnknownTargetId
	ToolchainMissingId
	BuildFailureId
	ArtifactMissingId
	PermissionDeniedId
	PathNotFoundId
	RomUnreadableId
)

type (
	MarkdownMsg string

	HttpLink string

	// Issue is Markdown guidance for one failure kind.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the guidance for a terminal using the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load rombuild configuration!

The project configuration (rombuild.cue) could not be read or does not match the schema.

## Things you can try:
- Print the effective configuration:
~~~
$ rombuild config show
~~~
- Regenerate a default file and edit it:
~~~
$ rombuild config init
~~~
- Check the error above for the offending line and field`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	invalidMatrixIssue = &Issue{
		id: InvalidMatrixId,
		mdMsg: `
# The target matrix is invalid!

Every configured target must have a well-formed triple and a family
(` + "`linux`" + `, ` + "`windows`" + ` or ` + "`darwin`" + `), and no two targets may stage
to the same release file name.

## Things you can try:
- Remove duplicated triples from ` + "`targets`" + `
- Set ` + "`family`" + ` explicitly when it cannot be inferred from the triple`,
	}

	unknownTargetIssue = &Issue{
		id: UnknownTargetId,
		mdMsg: `
# Target not configured!

Per-target builds only accept triples listed in the matrix.

## Things you can try:
~~~
$ rombuild targets
~~~`,
	}

	toolchainMissingIssue = &Issue{
		id: ToolchainMissingId,
		mdMsg: `
# Cross-compilation toolchain missing!

The build tool, or its support for the requested target, is not installed.

## Things you can try:
- For cargo projects, add the target:
~~~
$ rustup target add <triple>
~~~
- For Go projects, check the target is supported:
~~~
$ go tool dist list
~~~`,
		docLinks: []HttpLink{"https://rust-lang.github.io/rustup/cross-compilation.html"},
	}

	buildFailureIssue = &Issue{
		id: BuildFailureId,
		mdMsg: `
# The compiler reported a failure!

The build tool's own diagnostics are printed above. rombuild does not retry.

## Things you can try:
- Re-run the failing target alone with ` + "`rombuild target <triple>`" + `
- Use ` + "`rombuild all-targets --keep-going`" + ` to see every failing target at once`,
	}

	artifactMissingIssue = &Issue{
		id: ArtifactMissingId,
		mdMsg: `
# Build artifact missing!

Release staging needs a binary for every configured target and found none for
the triple named above. Nothing was staged.

## Things you can try:
~~~
$ rombuild all-targets
$ rombuild release-prep
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

The destination directory is not writable by the current user.

## Things you can try:
- Choose a prefix you own: ` + "`rombuild install --prefix $HOME/.local`" + `
- Re-run with the privileges the prefix requires`,
	}

	pathNotFoundIssue = &Issue{
		id: PathNotFoundId,
		mdMsg: `
# Path not found!

The install prefix must already exist; rombuild does not create it.

## Things you can try:
- Create the prefix first: ` + "`mkdir -p <prefix>`" + `
- Check ` + "`install.prefix`" + ` in rombuild.cue`,
	}

	romUnreadableIssue = &Issue{
		id: RomUnreadableId,
		mdMsg: `
# Could not read the ROM header!

The file is too short, has an unexpected size, or is not a ROM for the
selected platform.

## Things you can try:
- Select the platform explicitly: ` + "`romboss info -p snes <file>`" + `
- Check that the dump is complete`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		invalidMatrixIssue.Id():    invalidMatrixIssue,
		unknownTargetIssue.Id():    unknownTargetIssue,
		toolchainMissingIssue.Id(): toolchainMissingIssue,
		buildFailureIssue.Id():     buildFailureIssue,
		artifactMissingIssue.Id():  artifactMissingIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
		pathNotFoundIssue.Id():     pathNotFoundIssue,
		romUnreadableIssue.Id():    romUnreadableIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].id < out[b].id })
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/cobrabind"
	"github.com/cmdspec/cmdspec/pkg/cueutil"
	"github.com/cmdspec/cmdspec/pkg/source/manifest"
)

// Id identifies an issue page.
type Id int

// Operations recorded on configuration errors.
const (
	OpLoadConfig     = "load configuration"
	OpValidateConfig = "validate configuration"
)

const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	UnsupportedManifestVersionId
	InvalidDefinitionId
	DuplicateIdentityId
	CyclicCommandGraphId
	AmbiguousParentId
	DuplicateSymbolId
	UnsupportedShapeId
	UnresolvedReferenceId
	NotARootId
	ConfigLoadFailedId
	InvalidInputId
)

type (
	MarkdownMsg string

	HttpLink string

	// Issue is a Markdown help page shown for one kind of failure.
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

// Render renders the issue page with the glamour style at stylePath
// ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# Manifest not found!

The manifest file given on the command line does not exist or is not readable.

## Things you can try:
- Check the path and its extension (` + "`.cue`, `.json`, `.yaml`, `.yml`, `.toml`" + `)
- Run the command from the directory that holds the manifest`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse the manifest!

The manifest does not match the manifest schema.

## Common issues:
- A field name is misspelled (the schema is closed, unknown fields are rejected)
- ` + "`arity`" + ` is not one of ` + "`zero`, `zero-or-one`, `exactly-one`, `zero-or-more`, `one-or-more`" + ` or a ` + "`min..max`" + ` range
- ` + "`casing`" + ` is not a known casing

## Minimal manifest:
~~~yaml
version: "1.0.0"
commands:
  - id: app.Root
    options:
      - member: Verbose
        type: bool
~~~`,
	}

	unsupportedManifestVersionIssue = &Issue{
		id: UnsupportedManifestVersionId,
		mdMsg: `
# Unsupported manifest version!

The manifest ` + "`version`" + ` must be a semantic version accepted by this build (` + manifest.SupportedVersions + `).

## Things you can try:
- Set ` + "`version: \"1.0.0\"`" + `
- Upgrade cmdspec if the manifest was written for a newer release`,
	}

	invalidDefinitionIssue = &Issue{
		id: InvalidDefinitionId,
		mdMsg: `
# Invalid definition!

A declaration is malformed before it can be placed in the tree.

## Common issues:
- An identity is empty or contains whitespace
- A member has no owner, or its owner is not a command
- An explicit arity has a maximum below its minimum`,
	}

	duplicateIdentityIssue = &Issue{
		id: DuplicateIdentityId,
		mdMsg: `
# Duplicate identity!

Two different declarations use the same identity. Re-registering an identical
declaration is allowed, registering a different one under a used identity is not.

## Things you can try:
- Rename one of the commands or members
- Load each manifest only once`,
	}

	cyclicCommandGraphIssue = &Issue{
		id: CyclicCommandGraphId,
		mdMsg: `
# Cyclic command graph!

Following ` + "`parent`" + ` or ` + "`bases`" + ` links leads back to where it started.
The error lists the chain of identities that forms the cycle.

## Things you can try:
- Remove one ` + "`parent`" + ` link from the chain
- Split a shared base into a separate abstract command`,
	}

	ambiguousParentIssue = &Issue{
		id: AmbiguousParentId,
		mdMsg: `
# Ambiguous parent!

A command is claimed by more than one parent, for example through its own
` + "`parent`" + ` field and another command's ` + "`children`" + ` list.

## Things you can try:
- Keep a single claim for each command`,
	}

	duplicateSymbolIssue = &Issue{
		id: DuplicateSymbolId,
		mdMsg: `
# Duplicate symbol!

Two options, arguments, directives or subcommands of the same command resolve to the
same name or alias. Generated short forms collide easily: ` + "`Output`" + ` and ` + "`Overwrite`" + `
both produce ` + "`-o`" + `.

## Things you can try:
- Give one of them explicit ` + "`aliases`" + ` (an empty list disables the short form)
- Set ` + "`short_form_auto_generate`" + ` to ` + "`none`" + ` in the command conventions
- Rename one of them with an explicit ` + "`name`",
	}

	unsupportedShapeIssue = &Issue{
		id: UnsupportedShapeId,
		mdMsg: `
# Unsupported value type!

The arity of a member could not be inferred from its type.
Booleans, scalars and collections of scalars are inferred; anything else needs help.

## Things you can try:
- Declare an explicit ` + "`arity`" + ` on the member
- Directives accept only ` + "`bool`, `string` and `[]string`",
	}

	unresolvedReferenceIssue = &Issue{
		id: UnresolvedReferenceId,
		mdMsg: `
# Unresolved reference!

A ` + "`parent`, `children`, `bases`" + ` or root identity names a command that was never registered.

## Things you can try:
- Check the spelling of the identity
- Load every manifest that declares the referenced commands`,
	}

	notARootIssue = &Issue{
		id: NotARootId,
		mdMsg: `
# Not a root command!

The requested root has a parent, so it is part of another command's tree.

## Things you can try:
- Request the top-level command instead
- Remove the ` + "`parent`" + ` link to make it a root`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Print the defaults:
~~~
$ cmdspec config show
~~~
- Write a fresh config file:
~~~
$ cmdspec config init
~~~
- Check the ` + "`CMDSPEC_*`" + ` environment variables`,
	}

	invalidInputIssue = &Issue{
		id: InvalidInputId,
		mdMsg: `
# Invalid command line!

The arguments do not fit the resolved command.

## Things you can try:
- Run the command with ` + "`--help`" + ` to see its options and arguments
- Directives go first and use brackets: ` + "`[name]` or `[name:value]`",
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():           manifestNotFoundIssue,
		manifestParseErrorIssue.Id():         manifestParseErrorIssue,
		unsupportedManifestVersionIssue.Id(): unsupportedManifestVersionIssue,
		invalidDefinitionIssue.Id():          invalidDefinitionIssue,
		duplicateIdentityIssue.Id():          duplicateIdentityIssue,
		cyclicCommandGraphIssue.Id():         cyclicCommandGraphIssue,
		ambiguousParentIssue.Id():            ambiguousParentIssue,
		duplicateSymbolIssue.Id():            duplicateSymbolIssue,
		unsupportedShapeIssue.Id():           unsupportedShapeIssue,
		unresolvedReferenceIssue.Id():        unresolvedReferenceIssue,
		notARootIssue.Id():                   notARootIssue,
		configLoadFailedIssue.Id():           configLoadFailedIssue,
		invalidInputIssue.Id():               invalidInputIssue,
	}

	// bySentinel maps error sentinels to issues, most specific first.
	bySentinel = []struct {
		err error
		id  Id
	}{
		{manifest.ErrUnsupportedVersion, UnsupportedManifestVersionId},
		{manifest.ErrInvalidManifest, ManifestParseErrorId},
		{manifest.ErrUnknownFormat, ManifestParseErrorId},
		{cueutil.ErrValidation, ManifestParseErrorId},
		{cmddef.ErrCyclicCommandGraph, CyclicCommandGraphId},
		{cmddef.ErrAmbiguousParent, AmbiguousParentId},
		{cmddef.ErrDuplicateIdentity, DuplicateIdentityId},
		{cmddef.ErrDuplicateSymbol, DuplicateSymbolId},
		{cmddef.ErrUnsupportedShape, UnsupportedShapeId},
		{cmddef.ErrUnresolvedReference, UnresolvedReferenceId},
		{cmddef.ErrNotARoot, NotARootId},
		{cmddef.ErrInvalidDefinition, InvalidDefinitionId},
		{cobrabind.ErrInvalidInput, InvalidInputId},
		{cobrabind.ErrFlagConflict, DuplicateSymbolId},
		{fs.ErrNotExist, ManifestNotFoundId},
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}

// ForError returns the issue page matching the first known sentinel found
// in err's chain, or nil.
func ForError(err error) *Issue {
	if err == nil {
		return nil
	}
	var ae *ActionableError
	if errors.As(err, &ae) && (ae.Operation == OpLoadConfig || ae.Operation == OpValidateConfig) {
		return configLoadFailedIssue
	}
	for _, s := range bySentinel {
		if errors.Is(err, s.err) {
			return issues[s.id]
		}
	}
	return nil
}

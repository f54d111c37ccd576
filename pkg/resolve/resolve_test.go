// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/cmdspec/cmdspec/internal/testutil/deftest"
	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/registry"
)

func mustResolve(t *testing.T, defs []cmddef.Definition, roots ...cmddef.Identity) *Tree {
	t.Helper()
	tree, err := Resolve(registry.NewSnapshot(defs...), roots...)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return tree
}

func mustCommand(t *testing.T, tree *Tree, id cmddef.Identity) *Command {
	t.Helper()
	cmd, ok := tree.Command(id)
	if !ok {
		t.Fatalf("Command(%q) not found", id)
	}
	return cmd
}

func optionNames(cmd *Command) []string {
	var names []string
	for _, o := range cmd.Options() {
		names = append(names, o.Name())
	}
	return names
}

func childIDs(cmd *Command) []cmddef.Identity {
	var ids []cmddef.Identity
	for _, c := range cmd.Children() {
		ids = append(ids, c.ID())
	}
	return ids
}

func TestResolve_GeneratedNames(t *testing.T) {
	t.Parallel()

	tree := mustResolve(t, []cmddef.Definition{
		deftest.NewCommand("app.BuildCommand"),
		deftest.NewOption("app.BuildCommand", "BuildOutputPath", "string"),
		deftest.NewArgument("app.BuildCommand", "SourceArgument", "[]string"),
	})

	build := mustCommand(t, tree, "app.BuildCommand")
	if build.Name() != "build" {
		t.Errorf("Name() = %q, want %q", build.Name(), "build")
	}
	if got := build.Aliases(); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Aliases() = %v, want [b]", got)
	}

	opts := build.Options()
	if len(opts) != 1 {
		t.Fatalf("len(Options()) = %d, want 1", len(opts))
	}
	if opts[0].Name() != "--build-output-path" {
		t.Errorf("option Name() = %q, want %q", opts[0].Name(), "--build-output-path")
	}
	if got := opts[0].Aliases(); !slices.Equal(got, []string{"-bop"}) {
		t.Errorf("option Aliases() = %v, want [-bop]", got)
	}
	if opts[0].Arity() != cmddef.ArityExactlyOne || opts[0].Required() {
		t.Errorf("option arity/required = %v/%v, want exactly-one/false", opts[0].Arity(), opts[0].Required())
	}

	args := build.Arguments()
	if len(args) != 1 {
		t.Fatalf("len(Arguments()) = %d, want 1", len(args))
	}
	if args[0].Name() != "source" || args[0].Aliases() != nil {
		t.Errorf("argument = %q %v, want \"source\" without aliases", args[0].Name(), args[0].Aliases())
	}
	if args[0].Arity() != cmddef.ArityZeroOrMore || !args[0].Required() {
		t.Errorf("argument arity/required = %v/%v, want zero-or-more/true", args[0].Arity(), args[0].Required())
	}
}

func TestResolve_ConventionFromAncestor(t *testing.T) {
	t.Parallel()

	tree := mustResolve(t, []cmddef.Definition{
		deftest.NewCommand("app.Root", deftest.WithConvention(cmddef.Convention{Casing: cmddef.CasingSnake})),
		deftest.NewCommand("app.Build", deftest.WithParent("app.Root")),
		deftest.NewOption("app.Build", "BuildOutputPath", "string"),
	})

	build := mustCommand(t, tree, "app.Build")
	if got := optionNames(build); !slices.Equal(got, []string{"--build_output_path"}) {
		t.Errorf("option names = %v, want [--build_output_path]", got)
	}
	if build.Convention().Sources.Casing != "app.Root" {
		t.Errorf("casing source = %q, want app.Root", build.Convention().Sources.Casing)
	}
}

func TestResolve_ParentCycle(t *testing.T) {
	t.Parallel()

	_, err := Resolve(registry.NewSnapshot(
		deftest.NewCommand("app.A", deftest.WithParent("app.B")),
		deftest.NewCommand("app.B", deftest.WithParent("app.A")),
	))

	var cycleErr *cmddef.CyclicCommandGraphError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("Resolve() error = %v, want CyclicCommandGraphError", err)
	}
	if !errors.Is(err, cmddef.ErrCyclicCommandGraph) {
		t.Error("error does not wrap ErrCyclicCommandGraph")
	}
	if cycleErr.Relation != cmddef.RelationParent {
		t.Errorf("Relation = %q, want parent", cycleErr.Relation)
	}
	want := []cmddef.Identity{"app.A", "app.B", "app.A"}
	if !slices.Equal(cycleErr.Chain, want) {
		t.Errorf("Chain = %v, want %v", cycleErr.Chain, want)
	}
}

func TestResolve_BaseCycle(t *testing.T) {
	t.Parallel()

	_, err := Resolve(registry.NewSnapshot(
		deftest.NewCommand("app.A", deftest.Abstract(), deftest.WithBases("app.B")),
		deftest.NewCommand("app.B", deftest.Abstract(), deftest.WithBases("app.A")),
	))

	var cycleErr *cmddef.CyclicCommandGraphError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("Resolve() error = %v, want CyclicCommandGraphError", err)
	}
	if cycleErr.Relation != cmddef.RelationBase {
		t.Errorf("Relation = %q, want base", cycleErr.Relation)
	}
}

func TestResolve_ShortFormCollision(t *testing.T) {
	t.Parallel()

	_, err := Resolve(registry.NewSnapshot(
		deftest.NewCommand("app.Root"),
		deftest.NewOption("app.Root", "Output", "string"),
		deftest.NewOption("app.Root", "Overwrite", "bool"),
	))

	var dupErr *cmddef.DuplicateSymbolError
	if !errors.As(err, &dupErr) {
		t.Fatalf("Resolve() error = %v, want DuplicateSymbolError", err)
	}
	if dupErr.Symbol != "-o" || dupErr.Scope != "app.Root" || dupErr.Kind != cmddef.KindOption {
		t.Errorf("got %s %s %q, want app.Root option \"-o\"", dupErr.Scope, dupErr.Kind, dupErr.Symbol)
	}
	want := []cmddef.Identity{"app.Root.Output", "app.Root.Overwrite"}
	if !slices.Equal(dupErr.Identities, want) {
		t.Errorf("Identities = %v, want %v", dupErr.Identities, want)
	}
}

func TestResolve_DuplicateSymbolsAreSorted(t *testing.T) {
	t.Parallel()

	_, err := Resolve(registry.NewSnapshot(
		deftest.NewCommand("app.Root"),
		deftest.NewCommand("app.Build", deftest.WithParent("app.Root")),
		deftest.NewCommand("app.Bundle", deftest.WithParent("app.Root")),
		deftest.NewOption("app.Root", "Output", "string"),
		deftest.NewOption("app.Root", "Overwrite", "bool"),
	))

	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		t.Fatalf("Resolve() error = %v, want joined errors", err)
	}
	errs := joined.Unwrap()
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), err)
	}
	first, second := errs[0].(*cmddef.DuplicateSymbolError), errs[1].(*cmddef.DuplicateSymbolError)
	if first.Kind != cmddef.KindCommand || first.Symbol != "b" {
		t.Errorf("first = %s %q, want command \"b\"", first.Kind, first.Symbol)
	}
	if second.Kind != cmddef.KindOption || second.Symbol != "-o" {
		t.Errorf("second = %s %q, want option \"-o\"", second.Kind, second.Symbol)
	}
}

func TestResolve_GlobalPropagation(t *testing.T) {
	t.Parallel()

	attach := func(a *Assembly) error {
		_, err := a.Attach("app.Child", deftest.NewCommand("app.Plugin"))
		return err
	}
	tree, err := NewResolver(WithAssemblyHook(attach)).Resolve(registry.NewSnapshot(
		deftest.NewCommand("app.Root"),
		deftest.NewGlobalOption("app.Root", "Verbose", "bool"),
		deftest.NewCommand("app.Child", deftest.WithParent("app.Root")),
		deftest.NewOption("app.Child", "Force", "bool"),
		deftest.NewCommand("app.Grandchild", deftest.WithParent("app.Child")),
		deftest.NewCommand("app.Other"),
	))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	root := mustCommand(t, tree, "app.Root")
	if got := root.Options(); len(got) != 1 || got[0].Propagated() || got[0].Origin() != root {
		t.Errorf("root options = %v, want one local option", optionNames(root))
	}

	for _, id := range []cmddef.Identity{"app.Child", "app.Grandchild", "app.Plugin"} {
		cmd := mustCommand(t, tree, id)
		opts := cmd.Options()
		last := opts[len(opts)-1]
		if last.Name() != "--verbose" || !last.Propagated() {
			t.Errorf("%s: last option = %q propagated=%v, want propagated --verbose", id, last.Name(), last.Propagated())
			continue
		}
		if last.Origin() != root || last.Owner() != cmd {
			t.Errorf("%s: origin = %s owner = %s", id, last.Origin().ID(), last.Owner().ID())
		}
		if last.ID() != "app.Root.Verbose" {
			t.Errorf("%s: propagated ID() = %q", id, last.ID())
		}
	}

	if got := optionNames(mustCommand(t, tree, "app.Child")); !slices.Equal(got, []string{"--force", "--verbose"}) {
		t.Errorf("child options = %v, want local before propagated", got)
	}
	if got := optionNames(mustCommand(t, tree, "app.Other")); len(got) != 0 {
		t.Errorf("sibling root options = %v, want none", got)
	}
}

func TestResolve_NestedGlobalsOrderedFromRoot(t *testing.T) {
	t.Parallel()

	tree := mustResolve(t, []cmddef.Definition{
		deftest.NewCommand("app.Root"),
		deftest.NewGlobalOption("app.Root", "Verbose", "bool"),
		deftest.NewCommand("app.Child", deftest.WithParent("app.Root")),
		deftest.NewGlobalOption("app.Child", "Trace", "bool"),
		deftest.NewCommand("app.Leaf", deftest.WithParent("app.Child")),
	})

	if got := optionNames(mustCommand(t, tree, "app.Leaf")); !slices.Equal(got, []string{"--verbose", "--trace"}) {
		t.Errorf("leaf options = %v, want [--verbose --trace]", got)
	}
}

func TestResolve_Inheritance(t *testing.T) {
	t.Parallel()

	quiet := deftest.NewOption("app.Common", "Quiet", "bool", deftest.WithDescription("suppress output"))
	tree := mustResolve(t, []cmddef.Definition{
		deftest.NewCommand("app.Common", deftest.Abstract()),
		deftest.NewOption("app.Common", "Output", "string",
			deftest.WithDescription("where to write"), deftest.WithAliases("out")),
		quiet,
		deftest.NewCommand("app.Build", deftest.WithBases("app.Common")),
		deftest.NewOption("app.Build", "Output", "*string"),
	})

	build := mustCommand(t, tree, "app.Build")
	opts := build.Options()
	if len(opts) != 2 {
		t.Fatalf("options = %v, want 2", optionNames(build))
	}

	output := opts[0]
	if output.ID() != "app.Build.Output" || output.Description() != "where to write" {
		t.Errorf("output = %s %q, want merged description", output.ID(), output.Description())
	}
	if got := output.Aliases(); !slices.Equal(got, []string{"--out"}) {
		t.Errorf("output aliases = %v, want [--out]", got)
	}
	if !output.Required() {
		t.Error("derived *string shape should make output required")
	}

	if opts[1].ID() != "app.Build.Quiet" {
		t.Errorf("inherited ID() = %q, want app.Build.Quiet", opts[1].ID())
	}
	def, ok := tree.Lookup("app.Build.Quiet")
	if !ok || def != quiet {
		t.Errorf("Lookup(app.Build.Quiet) = %v, %v; want the base declaration", def, ok)
	}
	if _, ok := tree.Command("app.Common"); ok {
		t.Error("abstract command must not be part of the tree")
	}
}

func TestResolve_Parents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		defs    []cmddef.Definition
		parent  cmddef.Identity
		wantErr error
	}{
		{
			name: "explicit parent",
			defs: []cmddef.Definition{
				deftest.NewCommand("app.A"),
				deftest.NewCommand("app.C", deftest.WithParent("app.A")),
			},
			parent: "app.A",
		},
		{
			name: "children claim",
			defs: []cmddef.Definition{
				deftest.NewCommand("app.A", deftest.WithChildren("app.C")),
				deftest.NewCommand("app.C"),
			},
			parent: "app.A",
		},
		{
			name: "nesting wins over children claim",
			defs: []cmddef.Definition{
				deftest.NewCommand("app.A"),
				deftest.NewCommand("app.B", deftest.WithChildren("app.C")),
				deftest.NewCommand("app.C", deftest.WithContainer("app.A")),
			},
			parent: "app.A",
		},
		{
			name: "explicit parent disagrees with container",
			defs: []cmddef.Definition{
				deftest.NewCommand("app.A"),
				deftest.NewCommand("app.B"),
				deftest.NewCommand("app.C", deftest.WithContainer("app.A"), deftest.WithParent("app.B")),
			},
			wantErr: cmddef.ErrAmbiguousParent,
		},
		{
			name: "two external claimants",
			defs: []cmddef.Definition{
				deftest.NewCommand("app.A"),
				deftest.NewCommand("app.B", deftest.WithChildren("app.C")),
				deftest.NewCommand("app.C", deftest.WithParent("app.A")),
			},
			wantErr: cmddef.ErrAmbiguousParent,
		},
		{
			name: "unknown parent",
			defs: []cmddef.Definition{
				deftest.NewCommand("app.C", deftest.WithParent("app.Missing")),
			},
			wantErr: cmddef.ErrUnresolvedReference,
		},
		{
			name: "abstract parent",
			defs: []cmddef.Definition{
				deftest.NewCommand("app.A", deftest.Abstract()),
				deftest.NewCommand("app.C", deftest.WithParent("app.A")),
			},
			wantErr: cmddef.ErrUnresolvedReference,
		},
		{
			name: "parent is an option",
			defs: []cmddef.Definition{
				deftest.NewCommand("app.A"),
				deftest.NewOption("app.A", "Force", "bool"),
				deftest.NewCommand("app.C", deftest.WithParent("app.A.Force")),
			},
			wantErr: cmddef.ErrUnresolvedReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, err := Resolve(registry.NewSnapshot(tt.defs...))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				if tree != nil {
					t.Error("a failed resolution must not return a tree")
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			c := mustCommand(t, tree, "app.C")
			if c.Parent() == nil || c.Parent().ID() != tt.parent {
				t.Errorf("parent of app.C = %v, want %s", c.Parent(), tt.parent)
			}
		})
	}
}

func TestResolve_Roots(t *testing.T) {
	t.Parallel()

	defs := []cmddef.Definition{
		deftest.NewCommand("app.B", deftest.WithCommandOrder(0, 1)),
		deftest.NewCommand("app.A", deftest.WithCommandOrder(0, 2)),
		deftest.NewCommand("app.Child", deftest.WithParent("app.A")),
		deftest.NewCommand("app.Base", deftest.Abstract()),
	}
	snap := registry.NewSnapshot(defs...)

	tree := mustResolve(t, defs)
	var ids []cmddef.Identity
	for _, r := range tree.Roots() {
		ids = append(ids, r.ID())
	}
	if !slices.Equal(ids, []cmddef.Identity{"app.B", "app.A"}) {
		t.Errorf("roots = %v, want [app.B app.A]", ids)
	}

	restricted := mustResolve(t, defs, "app.A", "app.A")
	if len(restricted.Roots()) != 1 || restricted.Len() != 2 {
		t.Errorf("restricted tree has %d roots and %d commands, want 1 and 2", len(restricted.Roots()), restricted.Len())
	}
	if _, ok := restricted.Command("app.B"); ok {
		t.Error("restricted tree must not contain app.B")
	}

	_, err := Resolve(snap, "app.Child")
	var notRoot *cmddef.NotARootError
	if !errors.As(err, &notRoot) || notRoot.Parent != "app.A" {
		t.Errorf("Resolve(app.Child) error = %v, want NotARootError with parent app.A", err)
	}

	for _, id := range []cmddef.Identity{"app.Missing", "app.Base"} {
		if _, err := Resolve(snap, id); !errors.Is(err, cmddef.ErrUnresolvedReference) {
			t.Errorf("Resolve(%s) error = %v, want ErrUnresolvedReference", id, err)
		}
	}
}

func TestResolve_Ordering(t *testing.T) {
	t.Parallel()

	tree := mustResolve(t, []cmddef.Definition{
		deftest.NewCommand("app.Root"),
		deftest.NewCommand("app.Zeta", deftest.WithParent("app.Root"), deftest.WithCommandOrder(0, 0)),
		deftest.NewCommand("app.Alpha", deftest.WithParent("app.Root"), deftest.WithCommandOrder(0, 0)),
		deftest.NewCommand("app.Last", deftest.WithParent("app.Root"), deftest.WithCommandOrder(5, 0)),
		deftest.NewCommand("app.First", deftest.WithParent("app.Root"), deftest.WithCommandOrder(-1, 9)),
		deftest.NewOption("app.Root", "Second", "bool"),
		deftest.NewOption("app.Root", "First", "bool", deftest.WithOrder(-1)),
		deftest.NewOption("app.Root", "Third", "bool"),
	})

	root := mustCommand(t, tree, "app.Root")
	want := []cmddef.Identity{"app.First", "app.Alpha", "app.Zeta", "app.Last"}
	if got := childIDs(root); !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
	if got := optionNames(root); !slices.Equal(got, []string{"--first", "--second", "--third"}) {
		t.Errorf("options = %v", got)
	}
}

func TestResolve_MemberDeclarationOrder(t *testing.T) {
	t.Parallel()

	tree := mustResolve(t, []cmddef.Definition{
		deftest.NewCommand("app.Common", deftest.Abstract()),
		deftest.NewOption("app.Common", "Zone", "string", deftest.WithDeclOrder(1)),
		deftest.NewCommand("app.Root", deftest.WithBases("app.Common")),
		deftest.NewArgument("app.Root", "Second", "string", deftest.WithDeclOrder(12)),
		deftest.NewArgument("app.Root", "First", "string", deftest.WithDeclOrder(11)),
		deftest.NewOption("app.Root", "Later", "bool", deftest.WithDeclOrder(14)),
		deftest.NewOption("app.Root", "Early", "bool", deftest.WithDeclOrder(13)),
	})

	root := mustCommand(t, tree, "app.Root")
	var args []string
	for _, a := range root.Arguments() {
		args = append(args, a.Name())
	}
	if want := []string{"first", "second"}; !slices.Equal(args, want) {
		t.Errorf("arguments = %v, want %v", args, want)
	}
	// Inherited members follow the command's own even when declared earlier.
	if got, want := optionNames(root), []string{"--early", "--later", "--zone"}; !slices.Equal(got, want) {
		t.Errorf("options = %v, want %v", got, want)
	}
}

func TestResolve_ExplicitZeroOrderOverridesBase(t *testing.T) {
	t.Parallel()

	tree := mustResolve(t, []cmddef.Definition{
		deftest.NewCommand("app.Common", deftest.Abstract()),
		deftest.NewOption("app.Common", "Verbose", "bool", deftest.WithOrder(5)),
		deftest.NewCommand("app.Root", deftest.WithBases("app.Common")),
		deftest.NewOption("app.Root", "Alpha", "bool", deftest.WithOrder(1)),
		deftest.NewOption("app.Root", "Verbose", "bool", deftest.WithOrder(0)),
		deftest.NewOption("app.Root", "Beta", "bool", deftest.WithOrder(2)),
	})

	if got, want := optionNames(mustCommand(t, tree, "app.Root")), []string{"--verbose", "--alpha", "--beta"}; !slices.Equal(got, want) {
		t.Errorf("options = %v, want %v", got, want)
	}
}

func TestResolve_UnsupportedShape(t *testing.T) {
	t.Parallel()

	_, err := Resolve(registry.NewSnapshot(
		deftest.NewCommand("app.Root"),
		deftest.NewOption("app.Root", "Labels", "map[string]string"),
	))
	var shapeErr *cmddef.UnsupportedShapeError
	if !errors.As(err, &shapeErr) || shapeErr.Identity != "app.Root.Labels" {
		t.Fatalf("Resolve() error = %v, want UnsupportedShapeError for app.Root.Labels", err)
	}

	tree := mustResolve(t, []cmddef.Definition{
		deftest.NewCommand("app.Root"),
		deftest.NewOption("app.Root", "Labels", "map[string]string", deftest.WithArity(cmddef.ArityZeroOrMore)),
	})
	if got := mustCommand(t, tree, "app.Root").Options()[0].Arity(); got != cmddef.ArityZeroOrMore {
		t.Errorf("overridden arity = %v", got)
	}
}

func TestResolve_OrphanMember(t *testing.T) {
	t.Parallel()

	_, err := Resolve(registry.NewSnapshot(
		deftest.NewOption("app.Nowhere", "Force", "bool"),
	))
	if !errors.Is(err, cmddef.ErrUnresolvedReference) {
		t.Errorf("Resolve() error = %v, want ErrUnresolvedReference", err)
	}
}

func TestResolve_IdempotentRegistration(t *testing.T) {
	t.Parallel()

	build := func() []cmddef.Definition {
		return []cmddef.Definition{
			deftest.NewCommand("app.Root"),
			deftest.NewGlobalOption("app.Root", "Verbose", "bool"),
			deftest.NewCommand("app.Build", deftest.WithParent("app.Root")),
			deftest.NewArgument("app.Build", "Target", "string"),
		}
	}

	once := registry.New()
	if err := once.Register(build()...); err != nil {
		t.Fatal(err)
	}
	twice := registry.New()
	defs := build()
	if err := twice.Register(defs...); err != nil {
		t.Fatal(err)
	}
	if err := twice.Register(defs...); err != nil {
		t.Fatalf("re-registering the same definitions: %v", err)
	}
	if err := twice.Register(build()...); err != nil {
		t.Fatalf("re-registering equal definitions: %v", err)
	}

	a, err := Resolve(once.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Resolve(twice.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Errorf("trees differ:\n%+v\n%+v", a.Snapshot(), b.Snapshot())
	}
}

func TestAssembly_Attach(t *testing.T) {
	t.Parallel()

	defs := []cmddef.Definition{
		deftest.NewCommand("app.Root"),
		deftest.NewCommand("app.Common", deftest.Abstract()),
		deftest.NewOption("app.Common", "DryRun", "bool"),
	}

	tests := []struct {
		name    string
		hook    AssemblyHook
		wantErr error
	}{
		{
			name: "inherits from bases",
			hook: func(a *Assembly) error {
				plugin := deftest.NewCommand("ext.PluginCommand", deftest.WithBases("app.Common"))
				node, err := a.Attach("app.Root", plugin, deftest.NewArgument("ext.PluginCommand", "Name", "string"))
				if err != nil {
					return err
				}
				if node.Name() != "plugin" || len(node.Options()) != 1 || len(node.Arguments()) != 1 {
					return errors.New("attached command was not fully resolved")
				}
				return nil
			},
		},
		{
			name: "unknown parent",
			hook: func(a *Assembly) error {
				_, err := a.Attach("app.Missing", deftest.NewCommand("ext.Plugin"))
				return err
			},
			wantErr: cmddef.ErrUnresolvedReference,
		},
		{
			name: "identity taken",
			hook: func(a *Assembly) error {
				_, err := a.Attach("app.Root", deftest.NewCommand("app.Common"))
				return err
			},
			wantErr: cmddef.ErrDuplicateIdentity,
		},
		{
			name: "conflicting parent",
			hook: func(a *Assembly) error {
				_, err := a.Attach("app.Root", deftest.NewCommand("ext.Plugin", deftest.WithParent("ext.Other")))
				return err
			},
			wantErr: cmddef.ErrAmbiguousParent,
		},
		{
			name: "foreign member",
			hook: func(a *Assembly) error {
				_, err := a.Attach("app.Root", deftest.NewCommand("ext.Plugin"), deftest.NewOption("ext.Other", "Force", "bool"))
				return err
			},
			wantErr: cmddef.ErrInvalidDefinition,
		},
		{
			name: "hook failure aborts",
			hook: func(*Assembly) error {
				return errHook
			},
			wantErr: errHook,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, err := NewResolver(WithAssemblyHook(tt.hook)).Resolve(registry.NewSnapshot(defs...))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			root := mustCommand(t, tree, "app.Root")
			if got := childIDs(root); !slices.Equal(got, []cmddef.Identity{"ext.PluginCommand"}) {
				t.Errorf("children = %v", got)
			}
			if _, ok := tree.Lookup("ext.PluginCommand.DryRun"); !ok {
				t.Error("inherited member of attached command missing from Lookup")
			}
		})
	}
}

var errHook = errors.New("hook failed")

func TestTree_Walk(t *testing.T) {
	t.Parallel()

	tree := mustResolve(t, []cmddef.Definition{
		deftest.NewCommand("app.Root"),
		deftest.NewCommand("app.A", deftest.WithParent("app.Root"), deftest.WithCommandOrder(0, 0)),
		deftest.NewCommand("app.Nested", deftest.WithParent("app.A")),
		deftest.NewCommand("app.B", deftest.WithParent("app.Root"), deftest.WithCommandOrder(0, 1)),
	})

	var visited []cmddef.Identity
	err := tree.Walk(func(c *Command) error {
		visited = append(visited, c.ID())
		if c.ID() == "app.A" {
			return SkipChildren
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if want := []cmddef.Identity{"app.Root", "app.A", "app.B"}; !slices.Equal(visited, want) {
		t.Errorf("visited = %v, want %v", visited, want)
	}

	leaf := mustCommand(t, tree, "app.Nested")
	if got := leaf.Path(); !slices.Equal(got, []string{"root", "a", "nested"}) {
		t.Errorf("Path() = %v", got)
	}
}

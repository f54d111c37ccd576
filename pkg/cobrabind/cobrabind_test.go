// SPDX-License-Identifier: MPL-2.0

package cobrabind

import (
	"bytes"
	"context"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdspec/cmdspec/internal/testutil/deftest"
	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/registry"
	"github.com/cmdspec/cmdspec/pkg/resolve"
)

func toolTree(t *testing.T) *resolve.Tree {
	t.Helper()
	tree, err := resolve.Resolve(registry.NewSnapshot(
		deftest.NewCommand("app.ToolCommand"),
		deftest.NewGlobalOption("app.ToolCommand", "Verbose", "bool"),

		deftest.NewCommand("app.BuildCommand", deftest.WithParent("app.ToolCommand")),
		deftest.NewOption("app.BuildCommand", "OutputPath", "string", deftest.WithAliases("o")),
		deftest.NewOption("app.BuildCommand", "Format", "string",
			deftest.WithAliases("f"),
			deftest.WithAllowed("json", "yaml"),
			deftest.WithInitializer(cmddef.InitializerValue, "json")),
		deftest.NewArgument("app.BuildCommand", "Source", "[]string"),
		deftest.NewDirective("app.BuildCommand", "DryRun", "bool"),
		deftest.NewDirective("app.BuildCommand", "Profile", "string"),

		deftest.NewCommand("app.RunCommand",
			deftest.WithParent("app.ToolCommand"),
			deftest.WithUnmatchedTokensAreErrors(false)),
		deftest.NewArgument("app.RunCommand", "Target", "string", deftest.WithRequired(true)),
	))
	require.NoError(t, err)
	return tree
}

// capture builds the tool command with a handler recording the invocation.
func capture(t *testing.T) (*cobra.Command, *Invocation) {
	t.Helper()
	got := &Invocation{}
	cmd, err := Build(toolTree(t), "app.ToolCommand", WithHandler(func(_ context.Context, inv *Invocation) error {
		*got = *inv
		return nil
	}))
	require.NoError(t, err)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	return cmd, got
}

func TestBuild_Structure(t *testing.T) {
	t.Parallel()

	cmd, err := Build(toolTree(t), "app.ToolCommand", WithVersion(semver.MustParse("1.2.3")))
	require.NoError(t, err)

	assert.Equal(t, "tool", cmd.Name())
	assert.Equal(t, "1.2.3", cmd.Version)
	require.NotNil(t, cmd.Flags().Lookup("verbose"))
	assert.Equal(t, "v", cmd.Flags().Lookup("verbose").Shorthand)

	build, _, err := cmd.Find([]string{"build"})
	require.NoError(t, err)
	assert.Equal(t, "build [source...]", build.Use)
	assert.Equal(t, []string{"b"}, build.Aliases)

	out := build.Flags().Lookup("output-path")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)

	format := build.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "json", format.DefValue)

	verbose := build.Flags().Lookup("verbose")
	require.NotNil(t, verbose, "global option is bound on descendants")
	assert.Equal(t, "true", verbose.NoOptDefVal)
}

func TestExecute_BindsValues(t *testing.T) {
	t.Parallel()

	cmd, inv := capture(t)
	err := Execute(context.Background(), cmd, []string{
		"[dry-run]", "[profile:ci]", "build", "-o", "out", "--verbose", "a.go", "b.go",
	})
	require.NoError(t, err)

	require.NotNil(t, inv.Command)
	assert.Equal(t, cmddef.Identity("app.BuildCommand"), inv.Command.ID())
	assert.Equal(t, []string{"out"}, inv.Options["app.BuildCommand.OutputPath"])
	assert.Equal(t, []string{"json"}, inv.Options["app.BuildCommand.Format"])
	assert.Equal(t, []string{"true"}, inv.Options["app.ToolCommand.Verbose"])
	assert.Equal(t, []string{"a.go", "b.go"}, inv.Arguments["app.BuildCommand.Source"])
	assert.Equal(t, []string{"true"}, inv.Directives["app.BuildCommand.DryRun"])
	assert.Equal(t, []string{"ci"}, inv.Directives["app.BuildCommand.Profile"])
	assert.Empty(t, inv.Unmatched)

	v, ok := inv.Option("app.BuildCommand.OutputPath")
	assert.True(t, ok)
	assert.Equal(t, "out", v)

	def, ok := inv.Definition("app.ToolCommand.Verbose")
	require.True(t, ok)
	assert.Equal(t, cmddef.KindOption, def.Kind())
}

func TestExecute_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"disallowed option value", []string{"build", "--format", "xml"}},
		{"unknown directive on strict command", []string{"[trace]", "build"}},
		{"string directive without value", []string{"[profile]", "build"}},
		{"missing required argument", []string{"run"}},
		{"unknown flag on strict command", []string{"build", "--nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, _ := capture(t)
			err := Execute(context.Background(), cmd, tt.args)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_LenientCommand(t *testing.T) {
	t.Parallel()

	cmd, inv := capture(t)
	err := Execute(context.Background(), cmd, []string{"[trace]", "run", "target", "extra"})
	require.NoError(t, err)

	assert.Equal(t, []string{"target"}, inv.Arguments["app.RunCommand.Target"])
	assert.Equal(t, []string{"extra", "[trace]"}, inv.Unmatched)
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tree := toolTree(t)

	_, err := Build(tree, "app.BuildCommand")
	require.ErrorIs(t, err, cmddef.ErrNotARoot)

	_, err = Build(tree, "app.Missing")
	require.ErrorIs(t, err, cmddef.ErrUnresolvedReference)

	clash, err := resolve.Resolve(registry.NewSnapshot(
		deftest.NewCommand("app.Clash"),
		deftest.NewOption("app.Clash", "Alpha", "string", deftest.WithName("--a"), deftest.WithAliases()),
		deftest.NewOption("app.Clash", "Beta", "string", deftest.WithName("/a"), deftest.WithAliases()),
	))
	require.NoError(t, err)

	_, err = Build(clash, "app.Clash")
	var conflict *FlagConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "a", conflict.Flag)
	assert.Equal(t, cmddef.Identity("app.Clash.Beta"), conflict.Option)
}

func TestSplitDirectives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		tokens []DirectiveToken
		rest   []string
	}{
		{"none", []string{"build"}, nil, []string{"build"}},
		{"empty", nil, nil, nil},
		{"flag", []string{"[debug]", "build"}, []DirectiveToken{{Name: "debug"}}, []string{"build"}},
		{"value", []string{"[env:ci]"}, []DirectiveToken{{Name: "env", Value: "ci", HasValue: true}}, nil},
		{"empty value", []string{"[env:]", "x"}, []DirectiveToken{{Name: "env", HasValue: true}}, []string{"x"}},
		{"stops at first argument", []string{"x", "[debug]"}, nil, []string{"x", "[debug]"}},
		{"empty brackets", []string{"[]", "x"}, nil, []string{"[]", "x"}},
		{"space in name", []string{"[a b]"}, nil, []string{"[a b]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, rest := SplitDirectives(tt.args)
			assert.Equal(t, tt.tokens, tokens)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestRawValue(t *testing.T) {
	t.Parallel()

	v := &rawValue{arity: cmddef.Arity{Min: 1, Max: 2}}
	require.NoError(t, v.Set("a"))
	require.NoError(t, v.Set("b"))
	require.Error(t, v.Set("c"))
	assert.Equal(t, "a,b", v.String())
	assert.Equal(t, "strings", v.Type())

	single := &rawValue{arity: cmddef.ArityExactlyOne, allowed: []string{"x", "y"}}
	require.NoError(t, single.Set("x"))
	require.NoError(t, single.Set("y"))
	require.Error(t, single.Set("z"))
	assert.Equal(t, "y", single.String())
	assert.Equal(t, "string", single.Type())
}

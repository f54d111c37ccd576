// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/cobrabind"
	"github.com/cmdspec/cmdspec/pkg/resolve"
)

// errAmbiguousRoot is returned by try when the manifests declare several
// roots and --root is not set.
var errAmbiguousRoot = errors.New("manifests declare more than one root command; select one with --root")

// invocationReport is the printed form of a bound command line.
type invocationReport struct {
	Command    string              `yaml:"command"`
	Path       []string            `yaml:"path"`
	Options    map[string][]string `yaml:"options,omitempty"`
	Arguments  map[string][]string `yaml:"arguments,omitempty"`
	Directives map[string][]string `yaml:"directives,omitempty"`
	Unmatched  []string            `yaml:"unmatched,omitempty"`
}

func newTryCommand(app *App) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "try <manifest>... -- [tokens]",
		Short: "Bind a command line to a resolved tree without running anything",
		Long: `Resolve the manifests, build a command line parser from the tree and parse
the tokens after '--'. The matched command and the values bound to each
option, argument and directive are printed as YAML.

Directives are written in brackets before the command path, e.g. "[dry-run]".`,
		Example: `  cmdspec try tool.cue -- build --output-path out src/
  cmdspec try tool.cue other.cue --root app.Tool -- "[dry-run]" build`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifests, tokens := args, []string{}
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				manifests, tokens = args[:dash], args[dash:]
			}
			if len(manifests) == 0 {
				return app.fail(&cobrabind.InputError{Command: "try", Symbol: "manifest", Reason: "at least one manifest is required before '--'"})
			}

			tree, err := app.resolveManifests(manifests, nil)
			if err != nil {
				return app.fail(err)
			}
			id, err := selectRoot(tree, root)
			if err != nil {
				return app.fail(err)
			}

			out := cmd.OutOrStdout()
			bound, err := cobrabind.Build(tree, id,
				cobrabind.WithLogger(app.logger),
				cobrabind.WithHandler(func(_ context.Context, inv *cobrabind.Invocation) error {
					return writeInvocation(out, inv)
				}),
			)
			if err != nil {
				return app.fail(err)
			}
			bound.SetOut(out)
			bound.SetErr(cmd.ErrOrStderr())
			bound.SilenceErrors = true

			if err := cobrabind.Execute(cmd.Context(), bound, tokens); err != nil {
				return app.fail(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "identity of the root command to bind")
	return cmd
}

func selectRoot(tree *resolve.Tree, root string) (cmddef.Identity, error) {
	if root != "" {
		return cmddef.Identity(root), nil
	}
	roots := tree.Roots()
	switch len(roots) {
	case 0:
		return "", &cmddef.UnresolvedReferenceError{Relation: cmddef.RelationRoot, Reason: "the manifests declare no commands"}
	case 1:
		return roots[0].ID(), nil
	default:
		return "", errAmbiguousRoot
	}
}

func writeInvocation(w io.Writer, inv *cobrabind.Invocation) error {
	report := invocationReport{
		Command:    string(inv.Command.ID()),
		Path:       inv.Command.Path(),
		Options:    symbolValues(inv, inv.Options),
		Arguments:  symbolValues(inv, inv.Arguments),
		Directives: symbolValues(inv, inv.Directives),
		Unmatched:  slices.Clone(inv.Unmatched),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("write invocation: %w", err)
	}
	return enc.Close()
}

// symbolValues keys values by the member's resolved name, falling back to
// the identity for members the matched command does not list.
func symbolValues(inv *cobrabind.Invocation, values map[cmddef.Identity][]string) map[string][]string {
	if len(values) == 0 {
		return nil
	}
	names := make(map[cmddef.Identity]string)
	for _, o := range inv.Command.Options() {
		names[o.ID()] = o.Name()
	}
	for _, a := range inv.Command.Arguments() {
		names[a.ID()] = a.Name()
	}
	for _, d := range inv.Command.Directives() {
		names[d.ID()] = d.Name()
	}

	out := make(map[string][]string, len(values))
	for id, v := range values {
		key := names[id]
		if key == "" {
			key = string(id)
		}
		out[key] = v
	}
	return out
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmdspec/cmdspec/internal/config"
)

func newResolveCommand(app *App) *cobra.Command {
	var (
		roots  []string
		format string
	)
	cmd := &cobra.Command{
		Use:   "resolve <manifest>...",
		Short: "Print the resolved command tree of one or more manifests",
		Long: `Load the manifests, resolve every command reachable from the requested
roots (all roots when none are given) and print the tree.

The output format defaults to the 'output.format' configuration value.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := app.settings.Output.Format
			if format != "" {
				out = config.OutputFormat(format)
			}
			if ok, errs := out.IsValid(); !ok {
				return app.fail(errs[0])
			}

			tree, err := app.resolveManifests(args, roots)
			if err != nil {
				return app.fail(err)
			}
			if err := writeTree(cmd.OutOrStdout(), tree, out); err != nil {
				return app.fail(err)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&roots, "root", nil, "resolve only the commands under these root identities")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (tree, json, yaml, toml)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"tree", "json", "yaml", "toml"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

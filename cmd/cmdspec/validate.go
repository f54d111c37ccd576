// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmdspec/cmdspec/pkg/resolve"
)

func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest>...",
		Short: "Check manifests for definition errors",
		Long: `Load and resolve the manifests, reporting duplicate identities, cyclic or
ambiguous parents, duplicate symbols and unsupported value shapes.

Exits with status 3 when the definitions are invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.resolveManifests(args, nil)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, app.verbose()))
				return app.fail(err)
			}

			var options, arguments, directives int
			_ = tree.Walk(func(c *resolve.Command) error {
				options += len(c.Options())
				arguments += len(c.Arguments())
				directives += len(c.Directives())
				return nil
			})
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+fmt.Sprintf(
				"%d commands, %d options, %d arguments, %d directives",
				tree.Len(), options, arguments, directives))
			return nil
		},
	}
}

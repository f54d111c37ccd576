// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/cmdspec/cmdspec/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type rootFlags struct {
	verbose bool
	cfgFile string
}

// NewRootCommand builds the cmdspec command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "cmdspec",
		Short: "Resolve declarative command definitions into command trees",
		Long: TitleStyle.Render("cmdspec") + SubtitleStyle.Render(" - resolve declarative command definitions into command trees") + `

cmdspec reads command manifests (CUE, JSON, YAML or TOML), links commands
to their parents, generates names and short forms from naming conventions,
propagates global options and validates the resulting tree.

` + SubtitleStyle.Render("Examples:") + `
  cmdspec resolve tool.cue              Print the resolved command tree
  cmdspec validate tool.cue other.yaml  Check manifests for definition errors
  cmdspec name BuildOutputCommand       Preview a generated command name
  cmdspec try tool.cue -- build -o out  Bind a command line to the tree`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.loadConfig(cmd.Context(), flags.cfgFile, flags.verbose); err != nil {
				fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
			}
			return nil
		},
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/cmdspec/config.cue)")

	root.AddCommand(
		newResolveCommand(app),
		newValidateCommand(app),
		newNameCommand(app),
		newTryCommand(app),
		newConfigCommand(app),
	)
	return root
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the code of the returned error.
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay uses the actionable format when err carries context.
// In verbose mode it shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cmdspec/cmdspec/internal/config"
	"github.com/cmdspec/cmdspec/internal/issue"
)

// newConfigCommand creates the `cmdspec config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cmdspec configuration",
		Long: `Manage cmdspec configuration.

Configuration is stored in:
  - Linux: ~/.config/cmdspec/config.cue
  - macOS: ~/Library/Application Support/cmdspec/config.cue
  - Windows: %APPDATA%\cmdspec\config.cue

CMDSPEC_* environment variables override file values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, created, err := config.CreateDefaultConfig(app.opts.ConfigDirPath)
			if err != nil {
				return app.fail(err)
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", WarningStyle.Render("Config file already exists:"), path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", SuccessStyle.Render("Created"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.opts.ConfigFilePath
			if path == "" {
				var err error
				if path, err = config.FilePath(app.opts.ConfigDirPath); err != nil {
					return app.fail(err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.opts)
			if err != nil {
				return app.fail(err)
			}
			content, err := config.GenerateCUE(cfg)
			if err != nil {
				return app.fail(err)
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, w io.Writer) error {
	cfg, path, err := config.Load(ctx, app.opts)
	if err != nil {
		if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render(glamourStyle(app.settings.UI.ColorScheme)); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
		return app.fail(err)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("conventions"))
	fmt.Fprintf(w, "  casing: %s\n", valueStyle.Render(string(cfg.Conventions.Casing)))
	fmt.Fprintf(w, "  name_prefix: %s\n", valueStyle.Render(string(cfg.Conventions.NamePrefix)))
	fmt.Fprintf(w, "  short_form_prefix: %s\n", valueStyle.Render(string(cfg.Conventions.ShortFormPrefix)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("output"))
	fmt.Fprintf(w, "  format: %s\n", valueStyle.Render(string(cfg.Output.Format)))
	return nil
}

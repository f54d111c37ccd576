// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/convention"
	"github.com/cmdspec/cmdspec/pkg/naming"
)

type nameFlags struct {
	kind           string
	casing         string
	prefix         string
	shortPrefix    string
	explicit       string
	aliases        []string
	preserveSpaces bool
	noShortForm    bool
}

func newNameCommand(app *App) *cobra.Command {
	flags := &nameFlags{}
	cmd := &cobra.Command{
		Use:   "name <identifier>",
		Short: "Preview the name and aliases generated for an identifier",
		Long: `Apply the naming convention to a code identifier the way the resolver does:
strip the kind suffix, re-case the words and, for options, add the prefix.

Convention flags override the configured defaults.`,
		Example: `  cmdspec name BuildOutputCommand
  cmdspec name OutputPathOption --kind option
  cmdspec name DryRun --kind option --casing snake --prefix /`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := previewName(args[0], flags, app.settings.Conventions.Convention())
			if err != nil {
				return app.fail(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("name:   "), CmdStyle.Render(res.Name))
			if len(res.Aliases) > 0 {
				fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("aliases:"), CmdStyle.Render(strings.Join(res.Aliases, ", ")))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.kind, "kind", "k", string(cmddef.KindCommand), "definition kind (command, option, argument, directive)")
	f.StringVar(&flags.casing, "casing", "", "casing (none, lower, upper, title, pascal, camel, kebab, snake)")
	f.StringVar(&flags.prefix, "prefix", "", "option name prefix (--, -, /)")
	f.StringVar(&flags.shortPrefix, "short-prefix", "", "option short-form prefix (--, -, /)")
	f.StringVar(&flags.explicit, "explicit", "", "explicit name replacing generation")
	f.StringSliceVar(&flags.aliases, "alias", nil, "explicit aliases replacing the generated short form")
	f.BoolVar(&flags.preserveSpaces, "preserve-spaces", false, "keep spaces between words")
	f.BoolVar(&flags.noShortForm, "no-short-form", false, "do not generate a short-form alias")
	return cmd
}

// previewName layers the flags over the configured defaults and generates
// the name and aliases of identifier.
func previewName(identifier string, flags *nameFlags, configured cmddef.Convention) (naming.Result, error) {
	kind := cmddef.Kind(flags.kind)
	override := cmddef.Convention{
		Casing:          cmddef.Casing(flags.casing),
		NamePrefix:      cmddef.Prefix(flags.prefix),
		ShortFormPrefix: cmddef.Prefix(flags.shortPrefix),
	}
	var errs []error
	if ok, kindErrs := kind.IsValid(); !ok {
		errs = append(errs, kindErrs...)
	}
	if ok, convErrs := override.IsValid(); !ok {
		errs = append(errs, convErrs...)
	}
	if len(errs) > 0 {
		return naming.Result{}, errs[0]
	}

	conv := convention.Defaults(override.Merge(configured))
	rules := naming.Rules{
		Casing:          conv.Casing,
		NamePrefix:      conv.NamePrefix,
		ShortFormPrefix: conv.ShortFormPrefix,
		AutoName:        conv.NameAutoGenerate.Has(kind),
		AutoShortForm:   !flags.noShortForm && conv.ShortFormAutoGenerate.Has(kind),
		PreserveSpaces:  flags.preserveSpaces,
	}
	name := naming.GenerateName(kind, identifier, flags.explicit, rules)
	return naming.Result{Name: name, Aliases: naming.GenerateAliases(kind, name, flags.aliases, rules)}, nil
}

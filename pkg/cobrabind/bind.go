// SPDX-License-Identifier: MPL-2.0

package cobrabind

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/resolve"
)

// ErrFlagConflict is returned when two symbols of one command map to the
// same pflag name or shorthand.
var ErrFlagConflict = errors.New("flag conflict")

type (
	// Handler runs a matched command.
	Handler func(ctx context.Context, inv *Invocation) error

	// Option configures Build.
	Option func(*config)

	config struct {
		handler Handler
		version *semver.Version
		logger  *log.Logger
	}

	// FlagConflictError is returned when an option cannot be expressed as a
	// pflag flag without clashing with another one.
	FlagConflictError struct {
		Command cmddef.Identity
		Option  cmddef.Identity
		Flag    string
	}

	// node binds one resolved command to its cobra command.
	node struct {
		cfg      *config
		tree     *resolve.Tree
		resolved *resolve.Command
		values   map[cmddef.Identity]*rawValue
		cobra    *cobra.Command
	}
)

// Error implements the error interface.
func (e *FlagConflictError) Error() string {
	return fmt.Sprintf("command %s: option %s: flag %q is already defined", e.Command, e.Option, e.Flag)
}

// Unwrap returns ErrFlagConflict for errors.Is() compatibility.
func (e *FlagConflictError) Unwrap() error { return ErrFlagConflict }

// WithHandler sets the function that runs every matched command. Without a
// handler, commands only print their help.
func WithHandler(h Handler) Option {
	return func(c *config) { c.handler = h }
}

// WithVersion enables the --version flag on the root command.
func WithVersion(v *semver.Version) Option {
	return func(c *config) { c.version = v }
}

// WithLogger sets the logger for binding debug output.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// Build creates the cobra command tree below the resolved root.
func Build(tree *resolve.Tree, root cmddef.Identity, opts ...Option) (*cobra.Command, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	rc, ok := tree.Command(root)
	if !ok {
		return nil, &cmddef.UnresolvedReferenceError{Identity: root, Reference: root, Relation: cmddef.RelationRoot, Reason: "not in the resolved tree"}
	}
	if !rc.IsRoot() {
		return nil, &cmddef.NotARootError{Identity: root, Parent: rc.Parent().ID()}
	}

	cmd, err := build(cfg, tree, rc)
	if err != nil {
		return nil, err
	}
	if cfg.version != nil {
		cmd.Version = cfg.version.String()
	}
	cmd.SilenceUsage = true
	return cmd, nil
}

// Execute strips leading directive tokens from args and runs cmd with the
// rest.
func Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	tokens, rest := SplitDirectives(args)
	if rest == nil {
		rest = []string{}
	}
	cmd.SetArgs(rest)
	return cmd.ExecuteContext(withDirectives(ctx, tokens))
}

func build(cfg *config, tree *resolve.Tree, rc *resolve.Command) (*cobra.Command, error) {
	n := &node{
		cfg:      cfg,
		tree:     tree,
		resolved: rc,
		values:   make(map[cmddef.Identity]*rawValue),
	}
	n.cobra = &cobra.Command{
		Use:     usage(rc),
		Aliases: rc.Aliases(),
		Short:   rc.Description().Summary(),
		Long:    rc.Description().String(),
		Hidden:  rc.Hidden(),
	}
	if !rc.TreatsUnmatchedTokensAsErrors() {
		n.cobra.FParseErrWhitelist.UnknownFlags = true
	}

	if err := n.addFlags(); err != nil {
		return nil, err
	}
	n.cobra.Args = n.positionalArgs()
	n.cobra.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &InputError{Command: rc.ID(), Symbol: "flags", Reason: err.Error()}
	})
	n.cobra.ValidArgsFunction = n.completeArgs
	if cfg.handler != nil {
		n.cobra.RunE = n.run
	}

	for _, child := range rc.Children() {
		c, err := build(cfg, tree, child)
		if err != nil {
			return nil, err
		}
		n.cobra.AddCommand(c)
	}
	cfg.logger.Debug("bound command", "command", rc.ID(), "flags", len(n.values))
	return n.cobra, nil
}

func (n *node) addFlags() error {
	fs := n.cobra.Flags()
	for _, o := range n.resolved.Options() {
		_, long := cmddef.SplitPrefix(o.Name())
		value := &rawValue{arity: o.Arity(), allowed: o.AllowedValues(), boolean: isBool(o.ValueShape()) || o.Arity().Max == 0}

		var short string
		var hiddenAliases []string
		for _, alias := range o.Aliases() {
			_, bare := cmddef.SplitPrefix(alias)
			if short == "" && utf8.RuneCountInString(bare) == 1 {
				short = bare
				continue
			}
			hiddenAliases = append(hiddenAliases, bare)
		}

		for _, name := range append([]string{long}, hiddenAliases...) {
			if fs.Lookup(name) != nil {
				return &FlagConflictError{Command: n.resolved.ID(), Option: o.ID(), Flag: name}
			}
		}
		if short != "" && fs.ShorthandLookup(short) != nil {
			return &FlagConflictError{Command: n.resolved.ID(), Option: o.ID(), Flag: short}
		}

		flag := fs.VarPF(value, long, short, o.Description().Summary())
		flag.DefValue = o.Default()
		flag.Hidden = o.Hidden()
		if value.boolean {
			flag.NoOptDefVal = "true"
		}
		for _, alias := range hiddenAliases {
			af := fs.VarPF(value, alias, "", o.Description().Summary())
			af.Hidden = true
			af.NoOptDefVal = flag.NoOptDefVal
		}

		if o.Required() && !value.boolean {
			if err := n.cobra.MarkFlagRequired(long); err != nil {
				return err
			}
		}
		if allowed := o.AllowedValues(); len(allowed) > 0 {
			if err := n.cobra.RegisterFlagCompletionFunc(long, fixedCompletion(allowed)); err != nil {
				return err
			}
		}
		n.values[o.ID()] = value
	}
	return nil
}

func fixedCompletion(values []string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func isBool(s cmddef.Shape) bool {
	if t := s.Type; t != nil {
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		return t.Kind() == reflect.Bool
	}
	return strings.TrimPrefix(s.Expr, "*") == "bool"
}

// usage renders "name <required> [optional] <many>..." for the help line.
func usage(rc *resolve.Command) string {
	parts := []string{rc.Name()}
	for _, a := range rc.Arguments() {
		name := a.Name()
		if a.Arity().Max != 1 {
			name += "..."
		}
		if a.Required() && a.Arity().Min > 0 {
			parts = append(parts, "<"+name+">")
		} else {
			parts = append(parts, "["+name+"]")
		}
	}
	return strings.Join(parts, " ")
}

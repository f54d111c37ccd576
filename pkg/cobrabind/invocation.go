// SPDX-License-Identifier: MPL-2.0

package cobrabind

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/resolve"
)

// ErrInvalidInput is returned when command-line tokens do not fit the
// resolved command.
var ErrInvalidInput = errors.New("invalid input")

type (
	// Invocation is a parsed command line bound to its resolved command.
	// Values are keyed by member identity; options and arguments that were
	// not given carry their default when one is declared.
	Invocation struct {
		Command    *resolve.Command
		Tree       *resolve.Tree
		Options    map[cmddef.Identity][]string
		Arguments  map[cmddef.Identity][]string
		Directives map[cmddef.Identity][]string
		// Unmatched holds the tokens that matched no symbol. It is only
		// populated for commands that accept unmatched tokens.
		Unmatched []string
		Cobra     *cobra.Command
	}

	// InputError describes a token that does not fit the command.
	InputError struct {
		Command cmddef.Identity
		Symbol  string
		Reason  string
	}
)

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Command, e.Symbol, e.Reason)
}

// Unwrap returns ErrInvalidInput for errors.Is() compatibility.
func (e *InputError) Unwrap() error { return ErrInvalidInput }

// Definition returns the registered definition behind a member or command
// identity of the invocation's tree.
func (inv *Invocation) Definition(id cmddef.Identity) (cmddef.Definition, bool) {
	return inv.Tree.Lookup(id)
}

// Option returns the first value of an option, if any.
func (inv *Invocation) Option(id cmddef.Identity) (string, bool) {
	v := inv.Options[id]
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func (n *node) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	inv := &Invocation{
		Command:    n.resolved,
		Tree:       n.tree,
		Options:    make(map[cmddef.Identity][]string),
		Arguments:  make(map[cmddef.Identity][]string),
		Directives: make(map[cmddef.Identity][]string),
		Cobra:      cmd,
	}

	for _, o := range n.resolved.Options() {
		raw := n.values[o.ID()]
		switch {
		case len(raw.values) > 0:
			inv.Options[o.ID()] = slices.Clone(raw.values)
		case o.Initializer() == cmddef.InitializerValue:
			inv.Options[o.ID()] = splitDefault(o.Default(), o.Arity())
		}
	}

	if err := n.bindArguments(inv, args); err != nil {
		return err
	}
	if err := n.bindDirectives(inv, directivesFrom(ctx)); err != nil {
		return err
	}

	n.cfg.logger.Debug("running command", "command", n.resolved.ID(), "args", len(args))
	return n.cfg.handler(ctx, inv)
}

// bindArguments hands positional tokens to arguments in declaration order.
// Each argument takes as many tokens as it can while leaving enough for the
// minimums of the arguments after it.
func (n *node) bindArguments(inv *Invocation, args []string) error {
	params := n.resolved.Arguments()
	counts := distribute(params, len(args))
	rest := args
	for i, a := range params {
		taken := rest[:counts[i]]
		rest = rest[counts[i]:]
		for _, v := range taken {
			if allowed := a.AllowedValues(); len(allowed) > 0 && !slices.Contains(allowed, v) {
				return &InputError{Command: n.resolved.ID(), Symbol: a.Name(),
					Reason: fmt.Sprintf("%q is not one of %s", v, strings.Join(allowed, ", "))}
			}
		}
		switch {
		case len(taken) > 0:
			inv.Arguments[a.ID()] = slices.Clone(taken)
		case a.Initializer() == cmddef.InitializerValue:
			inv.Arguments[a.ID()] = splitDefault(a.Default(), a.Arity())
		}
	}
	if len(rest) > 0 {
		if n.resolved.TreatsUnmatchedTokensAsErrors() {
			return &InputError{Command: n.resolved.ID(), Symbol: rest[0], Reason: "unexpected argument"}
		}
		inv.Unmatched = append(inv.Unmatched, rest...)
	}
	return nil
}

func (n *node) bindDirectives(inv *Invocation, tokens []DirectiveToken) error {
	directives := n.resolved.Directives()
	for _, tok := range tokens {
		i := slices.IndexFunc(directives, func(d *resolve.Directive) bool {
			return d.Name() == tok.Name || slices.Contains(d.Aliases(), tok.Name)
		})
		if i < 0 {
			if n.resolved.TreatsUnmatchedTokensAsErrors() {
				return &InputError{Command: n.resolved.ID(), Symbol: "[" + tok.Name + "]", Reason: "unknown directive"}
			}
			inv.Unmatched = append(inv.Unmatched, formatDirective(tok))
			continue
		}
		d := directives[i]
		value := tok.Value
		if !tok.HasValue {
			if !isBool(d.Shape()) {
				return &InputError{Command: n.resolved.ID(), Symbol: "[" + tok.Name + "]", Reason: "directive requires a value"}
			}
			value = "true"
		}
		inv.Directives[d.ID()] = append(inv.Directives[d.ID()], value)
	}
	return nil
}

func formatDirective(tok DirectiveToken) string {
	if tok.HasValue {
		return "[" + tok.Name + ":" + tok.Value + "]"
	}
	return "[" + tok.Name + "]"
}

// distribute returns how many of n positional tokens each argument takes.
func distribute(params []*resolve.Argument, n int) []int {
	counts := make([]int, len(params))
	need := make([]int, len(params)+1)
	for i := len(params) - 1; i >= 0; i-- {
		need[i] = need[i+1] + minCount(params[i])
	}
	left := n
	for i, a := range params {
		take := max(left-need[i+1], 0)
		if !a.Arity().IsUnbounded() {
			take = min(take, a.Arity().Max)
		}
		counts[i] = take
		left -= take
	}
	return counts
}

// positionalArgs checks the positional count against the summed arities.
// positionalArgs checks the token count against the summed argument arities
// and reports a mismatch as an InputError.
func (n *node) positionalArgs() cobra.PositionalArgs {
	check := n.arityCheck()
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &InputError{Command: n.resolved.ID(), Symbol: "arguments", Reason: err.Error()}
		}
		return nil
	}
}

func (n *node) arityCheck() cobra.PositionalArgs {
	params := n.resolved.Arguments()
	strict := n.resolved.TreatsUnmatchedTokensAsErrors()
	if len(params) == 0 {
		if strict {
			return cobra.NoArgs
		}
		return cobra.ArbitraryArgs
	}

	lo, hi := 0, 0
	for _, a := range params {
		lo += minCount(a)
		if a.Arity().IsUnbounded() {
			hi = cmddef.Unbounded
		} else if hi != cmddef.Unbounded {
			hi += a.Arity().Max
		}
	}
	if hi == cmddef.Unbounded || !strict {
		return cobra.MinimumNArgs(lo)
	}
	return cobra.RangeArgs(lo, hi)
}

func (n *node) completeArgs(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	pos := len(args)
	for _, a := range n.resolved.Arguments() {
		if a.Arity().IsUnbounded() || pos < a.Arity().Max {
			return a.AllowedValues(), cobra.ShellCompDirectiveNoFileComp
		}
		pos -= a.Arity().Max
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func minCount(a *resolve.Argument) int {
	if !a.Required() {
		return 0
	}
	return a.Arity().Min
}

func splitDefault(v string, arity cmddef.Arity) []string {
	if arity.Max > 1 || arity.IsUnbounded() {
		return strings.Split(v, ",")
	}
	return []string{v}
}

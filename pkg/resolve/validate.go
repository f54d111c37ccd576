// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"cmp"
	"errors"
	"slices"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

type symbolTable struct {
	scope   cmddef.Identity
	kind    cmddef.Kind
	order   []string
	entries map[string][]cmddef.Identity
}

func newSymbolTable(scope cmddef.Identity, kind cmddef.Kind) *symbolTable {
	return &symbolTable{scope: scope, kind: kind, entries: make(map[string][]cmddef.Identity)}
}

func (s *symbolTable) add(id cmddef.Identity, symbols ...string) {
	for _, sym := range symbols {
		if _, ok := s.entries[sym]; !ok {
			s.order = append(s.order, sym)
		}
		s.entries[sym] = append(s.entries[sym], id)
	}
}

func (s *symbolTable) duplicates() []*cmddef.DuplicateSymbolError {
	var out []*cmddef.DuplicateSymbolError
	for _, sym := range s.order {
		if ids := s.entries[sym]; len(ids) > 1 {
			out = append(out, &cmddef.DuplicateSymbolError{Scope: s.scope, Kind: s.kind, Symbol: sym, Identities: ids})
		}
	}
	return out
}

// validate checks every command scope: option names and aliases, argument
// names, directive names, and subcommand names and aliases must each be
// unique. All violations are reported, sorted by scope, kind and symbol.
func validate(roots []*Command) error {
	var dups []*cmddef.DuplicateSymbolError

	var visit func(c *Command)
	visit = func(c *Command) {
		options := newSymbolTable(c.ID(), cmddef.KindOption)
		for _, o := range c.options {
			options.add(o.id, append([]string{o.name}, o.aliases...)...)
		}
		arguments := newSymbolTable(c.ID(), cmddef.KindArgument)
		for _, a := range c.arguments {
			arguments.add(a.id, a.name)
		}
		directives := newSymbolTable(c.ID(), cmddef.KindDirective)
		for _, d := range c.directives {
			directives.add(d.id, d.name)
		}
		commands := newSymbolTable(c.ID(), cmddef.KindCommand)
		for _, child := range c.children {
			commands.add(child.ID(), append([]string{child.name}, child.aliases...)...)
		}

		for _, table := range []*symbolTable{options, arguments, directives, commands} {
			dups = append(dups, table.duplicates()...)
		}
		for _, child := range c.children {
			visit(child)
		}
	}
	for _, root := range roots {
		visit(root)
	}

	if len(dups) == 0 {
		return nil
	}
	slices.SortFunc(dups, func(a, b *cmddef.DuplicateSymbolError) int {
		return cmp.Or(cmp.Compare(a.Scope, b.Scope), cmp.Compare(a.Kind, b.Kind), cmp.Compare(a.Symbol, b.Symbol))
	})
	errs := make([]error, len(dups))
	for i, d := range dups {
		errs[i] = d
	}
	return errors.Join(errs...)
}

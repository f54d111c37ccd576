// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"cmp"
	"errors"
	"slices"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/naming"
)

// buildCommand creates the node of a linked command and its local members.
// The parent of cmd must already be built.
func (r *resolver) buildCommand(cmd *cmddef.Command) (*Command, error) {
	conv, err := r.conv.Resolve(cmd.Identity)
	if err != nil {
		return nil, err
	}

	names := naming.Generate(cmddef.KindCommand, &cmd.Common, r.rules(conv.Rules(cmddef.KindCommand)))
	if names.Name == "" {
		return nil, emptyNameError(cmd)
	}

	node := &Command{
		def:             cmd,
		name:            names.Name,
		aliases:         names.Aliases,
		conv:            conv,
		unmatchedErrors: cmd.TreatsUnmatchedTokensAsErrors(),
	}

	var errs []error
	for pos, em := range r.effectiveMembers(cmd) {
		if err := r.buildMember(node, em, pos); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sortMembers(node.options)
	sortMembers(node.arguments)
	sortMembers(node.directives)

	r.nodes[cmd.Identity] = node
	return node, nil
}

func (r *resolver) buildMember(node *Command, em effectiveMember, pos int) error {
	common := em.merged.Base()
	kind := em.merged.Kind()
	names := naming.Generate(kind, common, r.rules(node.conv.Rules(kind)))
	if names.Name == "" {
		return emptyNameError(em.merged)
	}

	base := member{
		id:      em.id,
		def:     em.original,
		owner:   node,
		name:    names.Name,
		aliases: names.Aliases,
		desc:    common.Description,
		hidden:  common.Hidden,
		order:   common.Order,
		group:   em.group,
		decl:    common.DeclOrder,
		pos:     pos,
	}

	switch m := em.merged.(type) {
	case *cmddef.Option:
		res, err := r.infer.Infer(&m.Valued)
		if err != nil {
			return err
		}
		node.options = append(node.options, &Option{
			member:   base,
			arity:    res.Arity,
			required: res.Required,
			value:    res.Value,
			allowed:  slices.Clone(m.AllowedValues),
			deflt:    m.Default,
			init:     m.Initializer,
			global:   m.Global,
		})
	case *cmddef.Argument:
		res, err := r.infer.Infer(&m.Valued)
		if err != nil {
			return err
		}
		node.arguments = append(node.arguments, &Argument{
			member:   base,
			arity:    res.Arity,
			required: res.Required,
			value:    res.Value,
			allowed:  slices.Clone(m.AllowedValues),
			deflt:    m.Default,
			init:     m.Initializer,
		})
	case *cmddef.Directive:
		if err := r.infer.CheckDirective(m); err != nil {
			return err
		}
		node.directives = append(node.directives, &Directive{member: base, shape: m.Shape})
	}

	return nil
}

func (r *resolver) rules(rules naming.Rules) naming.Rules {
	rules.PreserveSpaces = r.cfg.preserveSpaces
	return rules
}

func emptyNameError(def cmddef.Definition) error {
	return &cmddef.InvalidDefinitionError{
		Identity:    def.ID(),
		Kind:        def.Kind(),
		FieldErrors: []error{errors.New("generated name is empty; declare an explicit name")},
	}
}

type positioned interface {
	sortable() *member
}

func (m *member) sortable() *member { return m }

// sortMembers orders members by explicit order, then the declaring command
// (own members before inherited ones), declaration order, position in the
// effective member list and identity.
func sortMembers[T positioned](items []T) {
	slices.SortStableFunc(items, func(x, y T) int {
		a, b := x.sortable(), y.sortable()
		return cmp.Or(
			cmp.Compare(a.order, b.order),
			cmp.Compare(a.group, b.group),
			cmp.Compare(a.decl, b.decl),
			cmp.Compare(a.pos, b.pos),
			cmp.Compare(a.id, b.id),
		)
	})
}

// sortCommands orders siblings by explicit order, declaration order, then
// identity.
func sortCommands(cmds []*Command) {
	slices.SortStableFunc(cmds, func(a, b *Command) int {
		return cmp.Or(
			cmp.Compare(a.def.Order, b.def.Order),
			cmp.Compare(a.def.DeclOrder, b.def.DeclOrder),
			cmp.Compare(a.def.Identity, b.def.Identity),
		)
	})
}

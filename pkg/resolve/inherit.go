// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

// effectiveMember is one option, argument or directive of a command after
// inheritance. merged carries the attribute-merged declaration that naming
// and inference work on; original is the most-derived declaration. group is
// the walk position of the command that declares it, 0 for the command
// itself.
type effectiveMember struct {
	id       cmddef.Identity
	original cmddef.Definition
	merged   cmddef.Definition
	group    int
}

// effectiveMembers returns cmd's own members followed by those of its bases,
// walked depth-first in declared order with each base visited once. Members
// are keyed by kind and member name; a later (less derived) declaration only
// fills attributes the earlier one left unset.
func (r *resolver) effectiveMembers(cmd *cmddef.Command) []effectiveMember {
	var (
		out     []effectiveMember
		index   = make(map[string]int)
		visited = make(map[cmddef.Identity]bool)
	)

	var walk func(c *cmddef.Command)
	walk = func(c *cmddef.Command) {
		if visited[c.Identity] {
			return
		}
		visited[c.Identity] = true
		group := len(visited) - 1

		for _, m := range r.members(c.Identity) {
			memberName := m.Base().IdentifierOrDefault()
			key := string(m.Kind()) + "\x00" + memberName
			if i, ok := index[key]; ok {
				out[i].merged = mergeMember(out[i].merged, m)
				continue
			}

			id := m.ID()
			if c.Identity != cmd.Identity {
				id = cmd.Identity.Member(memberName)
			}
			merged := cloneMember(m)
			merged.Base().Identity = id
			index[key] = len(out)
			out = append(out, effectiveMember{id: id, original: m, merged: merged, group: group})
		}

		for _, base := range c.Bases {
			if b, ok := r.commands[base]; ok {
				walk(b)
			}
		}
	}
	walk(cmd)

	return out
}

func cloneMember(def cmddef.Definition) cmddef.Definition {
	switch m := def.(type) {
	case *cmddef.Option:
		c := *m
		return &c
	case *cmddef.Argument:
		c := *m
		return &c
	case *cmddef.Directive:
		c := *m
		return &c
	default:
		return def
	}
}

// mergeMember fills the unset attributes of derived from base. Plain
// booleans (Hidden, Global) always come from derived.
func mergeMember(derived, base cmddef.Definition) cmddef.Definition {
	mergeCommon(derived.Base(), base.Base())
	switch d := derived.(type) {
	case *cmddef.Option:
		if b, ok := base.(*cmddef.Option); ok {
			mergeValued(&d.Valued, &b.Valued)
		}
	case *cmddef.Argument:
		if b, ok := base.(*cmddef.Argument); ok {
			mergeValued(&d.Valued, &b.Valued)
		}
	case *cmddef.Directive:
		if b, ok := base.(*cmddef.Directive); ok && d.Shape.IsZero() {
			d.Shape = b.Shape
		}
	}
	return derived
}

func mergeCommon(d, b *cmddef.Common) {
	if d.Name == "" {
		d.Name = b.Name
	}
	if d.Aliases == nil {
		d.Aliases = b.Aliases
	}
	if d.Description == "" {
		d.Description = b.Description
	}
	if d.Required == nil {
		d.Required = b.Required
	}
	if d.Arity == nil {
		d.Arity = b.Arity
	}
	if !d.OrderSet {
		d.Order, d.OrderSet = b.Order, b.OrderSet
	}
	if d.Target == nil {
		d.Target = b.Target
	}
}

func mergeValued(d, b *cmddef.Valued) {
	if d.Shape.IsZero() {
		d.Shape = b.Shape
	}
	if d.Initializer == "" {
		d.Initializer = b.Initializer
	}
	if d.Default == "" {
		d.Default = b.Default
	}
	if d.AllowedValues == nil {
		d.AllowedValues = b.AllowedValues
	}
}

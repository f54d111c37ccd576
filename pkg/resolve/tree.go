// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"slices"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/convention"
	"github.com/cmdspec/cmdspec/pkg/types"
)

// SkipChildren can be returned from a Walk callback to skip the current
// command's descendants.
var SkipChildren = errors.New("skip children")

type (
	// Tree is a resolved, immutable command tree. It is safe for concurrent
	// readers.
	Tree struct {
		roots    []*Command
		commands map[cmddef.Identity]*Command
		defs     map[cmddef.Identity]cmddef.Definition
		version  uint64
	}

	// Command is a resolved command node.
	Command struct {
		def             *cmddef.Command
		name            string
		aliases         []string
		conv            convention.Resolved
		parent          *Command
		children        []*Command
		options         []*Option
		arguments       []*Argument
		directives      []*Directive
		unmatchedErrors bool
	}

	// member holds what every resolved option, argument and directive has.
	member struct {
		id      cmddef.Identity
		def     cmddef.Definition
		owner   *Command
		name    string
		aliases []string
		desc    types.DescriptionText
		hidden  bool
		order   int
		group   int
		decl    int
		pos     int
	}

	// Option is a resolved option. Options propagated from an ancestor share
	// the identity, names and definition of the ancestor's option.
	Option struct {
		member
		arity    cmddef.Arity
		required bool
		value    cmddef.Shape
		allowed  []string
		deflt    string
		init     cmddef.Initializer
		global   bool
		origin   *Command
	}

	// Argument is a resolved positional argument.
	Argument struct {
		member
		arity    cmddef.Arity
		required bool
		value    cmddef.Shape
		allowed  []string
		deflt    string
		init     cmddef.Initializer
	}

	// Directive is a resolved directive.
	Directive struct {
		member
		shape cmddef.Shape
	}
)

// Roots returns the root commands in sibling order.
func (t *Tree) Roots() []*Command { return slices.Clone(t.roots) }

// Command returns the command node with identity id.
func (t *Tree) Command(id cmddef.Identity) (*Command, bool) {
	c, ok := t.commands[id]
	return c, ok
}

// Lookup maps an effective identity (including "<command>.<member>"
// identities of inherited members) to its original definition.
func (t *Tree) Lookup(id cmddef.Identity) (cmddef.Definition, bool) {
	d, ok := t.defs[id]
	return d, ok
}

// Len returns the number of commands in the tree.
func (t *Tree) Len() int { return len(t.commands) }

// Version returns the registry version the tree was resolved from.
func (t *Tree) Version() uint64 { return t.version }

// Walk visits every command depth-first, parents before children and
// siblings in order. Returning SkipChildren skips a subtree; any other
// error stops the walk and is returned.
func (t *Tree) Walk(fn func(*Command) error) error {
	var visit func(c *Command) error
	visit = func(c *Command) error {
		if err := fn(c); err != nil {
			if errors.Is(err, SkipChildren) {
				return nil
			}
			return err
		}
		for _, child := range c.children {
			if err := visit(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range t.roots {
		if err := visit(root); err != nil {
			return err
		}
	}
	return nil
}

// ID returns the command identity.
func (c *Command) ID() cmddef.Identity { return c.def.Identity }

// Definition returns the command's original definition.
func (c *Command) Definition() *cmddef.Command { return c.def }

// Name returns the effective command name.
func (c *Command) Name() string { return c.name }

// Aliases returns the effective aliases.
func (c *Command) Aliases() []string { return slices.Clone(c.aliases) }

// Description returns the command description.
func (c *Command) Description() types.DescriptionText { return c.def.Description }

// Hidden reports whether the command is hidden from help.
func (c *Command) Hidden() bool { return c.def.Hidden }

// Parent returns the parent command, or nil for roots.
func (c *Command) Parent() *Command { return c.parent }

// IsRoot reports whether the command has no parent.
func (c *Command) IsRoot() bool { return c.parent == nil }

// Children returns the subcommands in sibling order.
func (c *Command) Children() []*Command { return slices.Clone(c.children) }

// Options returns local options followed by options propagated from
// ancestors, root-most owner first.
func (c *Command) Options() []*Option { return slices.Clone(c.options) }

// Arguments returns the positional arguments in order.
func (c *Command) Arguments() []*Argument { return slices.Clone(c.arguments) }

// Directives returns the directives in order.
func (c *Command) Directives() []*Directive { return slices.Clone(c.directives) }

// Convention returns the command's resolved naming convention.
func (c *Command) Convention() convention.Resolved { return c.conv }

// TreatsUnmatchedTokensAsErrors reports whether unknown tokens are errors.
func (c *Command) TreatsUnmatchedTokensAsErrors() bool { return c.unmatchedErrors }

// Path returns the names from the root down to this command.
func (c *Command) Path() []string {
	var path []string
	for cur := c; cur != nil; cur = cur.parent {
		path = append(path, cur.name)
	}
	slices.Reverse(path)
	return path
}

// ID returns the effective identity.
func (m *member) ID() cmddef.Identity { return m.id }

// Definition returns the original, most-derived definition.
func (m *member) Definition() cmddef.Definition { return m.def }

// Owner returns the command the entry belongs to. For propagated options
// this is the receiving descendant.
func (m *member) Owner() *Command { return m.owner }

// Name returns the effective name.
func (m *member) Name() string { return m.name }

// Aliases returns the effective aliases.
func (m *member) Aliases() []string { return slices.Clone(m.aliases) }

// Description returns the help text.
func (m *member) Description() types.DescriptionText { return m.desc }

// Hidden reports whether the entry is hidden from help.
func (m *member) Hidden() bool { return m.hidden }

// Arity returns the effective arity.
func (o *Option) Arity() cmddef.Arity { return o.arity }

// Required reports whether the option must be supplied.
func (o *Option) Required() bool { return o.required }

// ValueShape returns the shape of one parsed token.
func (o *Option) ValueShape() cmddef.Shape { return o.value }

// AllowedValues returns the permitted values, if restricted.
func (o *Option) AllowedValues() []string { return slices.Clone(o.allowed) }

// Default returns the textual initial value.
func (o *Option) Default() string { return o.deflt }

// Initializer returns how the declaration initializes the value.
func (o *Option) Initializer() cmddef.Initializer { return o.init }

// Global reports whether the option propagates to descendants.
func (o *Option) Global() bool { return o.global }

// Propagated reports whether the option was inherited from an ancestor.
func (o *Option) Propagated() bool { return o.origin != nil }

// Origin returns the command that declares a propagated option, or the
// owner for local options.
func (o *Option) Origin() *Command {
	if o.origin != nil {
		return o.origin
	}
	return o.owner
}

// Arity returns the effective arity.
func (a *Argument) Arity() cmddef.Arity { return a.arity }

// Required reports whether the argument must be supplied.
func (a *Argument) Required() bool { return a.required }

// ValueShape returns the shape of one parsed token.
func (a *Argument) ValueShape() cmddef.Shape { return a.value }

// AllowedValues returns the permitted values, if restricted.
func (a *Argument) AllowedValues() []string { return slices.Clone(a.allowed) }

// Default returns the textual initial value.
func (a *Argument) Default() string { return a.deflt }

// Initializer returns how the declaration initializes the value.
func (a *Argument) Initializer() cmddef.Initializer { return a.init }

// Shape returns the declared shape.
func (d *Directive) Shape() cmddef.Shape { return d.shape }

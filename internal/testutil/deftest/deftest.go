// SPDX-License-Identifier: MPL-2.0

package deftest

import (
	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/types"
)

type (
	// CommandOption configures a test command.
	CommandOption func(*cmddef.Command)

	// MemberOption configures the attributes shared by every member.
	MemberOption func(*cmddef.Common)

	// ValuedOption configures a test option or argument.
	ValuedOption func(*cmddef.Valued)
)

// NewCommand creates a concrete command with identity id and no links.
//
// Usage:
//
//	cmd := deftest.NewCommand("app.Build", deftest.WithParent("app.Root"))
func NewCommand(id cmddef.Identity, opts ...CommandOption) *cmddef.Command {
	cmd := &cmddef.Command{Common: cmddef.Common{Identity: id}}
	for _, opt := range opts {
		opt(cmd)
	}
	return cmd
}

// --- Command Options ---

// WithParent sets the explicit parent.
func WithParent(parent cmddef.Identity) CommandOption {
	return func(c *cmddef.Command) { c.Parent = parent }
}

// WithContainer nests the command inside container.
func WithContainer(container cmddef.Identity) CommandOption {
	return func(c *cmddef.Command) { c.Container = container }
}

// WithChildren appends children claims.
func WithChildren(children ...cmddef.Identity) CommandOption {
	return func(c *cmddef.Command) { c.Children = append(c.Children, children...) }
}

// WithBases appends bases.
func WithBases(bases ...cmddef.Identity) CommandOption {
	return func(c *cmddef.Command) { c.Bases = append(c.Bases, bases...) }
}

// Abstract marks the command abstract.
func Abstract() CommandOption {
	return func(c *cmddef.Command) { c.Abstract = true }
}

// WithConvention sets the command's convention settings.
func WithConvention(conv cmddef.Convention) CommandOption {
	return func(c *cmddef.Command) { c.Convention = conv }
}

// WithCommandName sets an explicit command name.
func WithCommandName(name string) CommandOption {
	return func(c *cmddef.Command) { c.Name = name }
}

// WithCommandAliases sets explicit command aliases.
func WithCommandAliases(aliases ...string) CommandOption {
	return func(c *cmddef.Command) { c.Aliases = append([]string{}, aliases...) }
}

// WithCommandOrder sets the explicit and declaration order.
func WithCommandOrder(order, decl int) CommandOption {
	return func(c *cmddef.Command) {
		c.Order = order
		c.OrderSet = true
		c.DeclOrder = decl
	}
}

// WithUnmatchedTokensAreErrors sets the unmatched-token policy.
func WithUnmatchedTokensAreErrors(v bool) CommandOption {
	return func(c *cmddef.Command) { c.UnmatchedTokensAreErrors = &v }
}

// --- Members ---

// NewOption creates an option owned by owner, named by the identifier
// member, with the given shape expression.
func NewOption(owner cmddef.Identity, member, shape string, opts ...ValuedOption) *cmddef.Option {
	o := &cmddef.Option{Valued: newValued(owner, member, shape)}
	for _, opt := range opts {
		opt(&o.Valued)
	}
	return o
}

// NewGlobalOption creates an option flagged Global.
func NewGlobalOption(owner cmddef.Identity, member, shape string, opts ...ValuedOption) *cmddef.Option {
	o := NewOption(owner, member, shape, opts...)
	o.Global = true
	return o
}

// NewArgument creates an argument owned by owner.
func NewArgument(owner cmddef.Identity, member, shape string, opts ...ValuedOption) *cmddef.Argument {
	a := &cmddef.Argument{Valued: newValued(owner, member, shape)}
	for _, opt := range opts {
		opt(&a.Valued)
	}
	return a
}

// NewDirective creates a directive owned by owner.
func NewDirective(owner cmddef.Identity, member, shape string, opts ...MemberOption) *cmddef.Directive {
	d := &cmddef.Directive{
		Common: cmddef.Common{Identity: owner.Member(member), Owner: owner},
		Shape:  cmddef.ShapeOf(shape),
	}
	for _, opt := range opts {
		opt(&d.Common)
	}
	return d
}

func newValued(owner cmddef.Identity, member, shape string) cmddef.Valued {
	return cmddef.Valued{
		Common: cmddef.Common{Identity: owner.Member(member), Owner: owner},
		Shape:  cmddef.ShapeOf(shape),
	}
}

// --- Member Options ---

// Member adapts a MemberOption for options and arguments.
func Member(opt MemberOption) ValuedOption {
	return func(v *cmddef.Valued) { opt(&v.Common) }
}

// WithName sets an explicit member name.
func WithName(name string) ValuedOption {
	return func(v *cmddef.Valued) { v.Name = name }
}

// WithAliases sets explicit member aliases.
func WithAliases(aliases ...string) ValuedOption {
	return func(v *cmddef.Valued) { v.Aliases = append([]string{}, aliases...) }
}

// WithOrder sets the explicit member order.
func WithOrder(order int) ValuedOption {
	return func(v *cmddef.Valued) {
		v.Order = order
		v.OrderSet = true
	}
}

// WithDeclOrder sets the member's position within its source.
func WithDeclOrder(decl int) ValuedOption {
	return func(v *cmddef.Valued) { v.DeclOrder = decl }
}

// WithDescription sets the member description.
func WithDescription(desc string) ValuedOption {
	return func(v *cmddef.Valued) { v.Description = types.DescriptionText(desc) }
}

// WithRequired sets the required override.
func WithRequired(required bool) ValuedOption {
	return func(v *cmddef.Valued) { v.Required = &required }
}

// WithArity sets the arity override.
func WithArity(a cmddef.Arity) ValuedOption {
	return func(v *cmddef.Valued) { v.Arity = a.Ptr() }
}

// WithInitializer sets the initializer and default literal.
func WithInitializer(init cmddef.Initializer, deflt string) ValuedOption {
	return func(v *cmddef.Valued) {
		v.Initializer = init
		v.Default = deflt
	}
}

// WithAllowed sets the allowed values.
func WithAllowed(values ...string) ValuedOption {
	return func(v *cmddef.Valued) { v.AllowedValues = values }
}

// Hidden hides a member.
func Hidden() MemberOption {
	return func(c *cmddef.Common) { c.Hidden = true }
}

// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cmdspec/cmdspec/pkg/types"
)

type (
	// Definition is implemented by every registrable definition.
	Definition interface {
		// ID returns the definition's unique identity.
		ID() Identity
		// Kind returns the definition's category.
		Kind() Kind
		// Base returns the attributes shared by all kinds.
		Base() *Common
		// Validate checks the definition in isolation.
		Validate() error
	}

	// Common holds the attributes shared by every kind of definition.
	// Pointer and nil-slice fields distinguish "unset" from a zero value.
	Common struct {
		// Identity is the unique key of the definition.
		Identity Identity
		// Identifier is the declared identifier that names are derived from.
		// It defaults to the last segment of Identity.
		Identifier string
		// Name is an explicit name that replaces generation when set.
		Name string
		// Aliases are explicit aliases. A non-nil slice, even an empty one,
		// suppresses short-form generation.
		Aliases     []string
		Description types.DescriptionText
		Hidden      bool
		// Required overrides required-ness inference when set.
		Required *bool
		// Arity overrides arity inference when set.
		Arity *Arity
		// Order sorts siblings ascending; ties fall back to DeclOrder.
		Order int
		// OrderSet records that Order was declared, including an explicit 0.
		OrderSet bool
		// DeclOrder is the position of the declaration within its source.
		DeclOrder int
		// Owner is the declaring command of a member. Empty for commands.
		Owner Identity
		// Target is an opaque handle to the storage a parsed value is
		// written back into (for example a reflect.Value).
		Target any
	}

	// Command describes a command. Its members are the options, arguments
	// and directives registered with Owner set to the command's identity.
	Command struct {
		Common
		// Container is the command this one is lexically nested inside.
		Container Identity
		// Parent is an explicitly declared parent.
		Parent Identity
		// Children lists commands this one claims as subcommands.
		Children []Identity
		// Bases lists commands whose members this one inherits, in
		// declaration order.
		Bases []Identity
		// Abstract commands are never placed in a tree; they only
		// contribute members to commands that list them as bases.
		Abstract   bool
		Convention Convention
		// UnmatchedTokensAreErrors defaults to true when unset.
		UnmatchedTokensAreErrors *bool
	}

	// Valued holds the attributes shared by options and arguments.
	Valued struct {
		Common
		Shape       Shape
		Initializer Initializer
		// Default is the textual form of the initial value, if any.
		Default       string
		AllowedValues []string
	}

	// Option describes a named option.
	Option struct {
		Valued
		// Global options propagate to every descendant command.
		Global bool
	}

	// Argument describes a positional argument.
	Argument struct {
		Valued
	}

	// Directive describes a directive, a special bracketed token that is
	// limited to boolean, string and string-list values.
	Directive struct {
		Common
		Shape Shape
	}
)

var (
	_ Definition = (*Command)(nil)
	_ Definition = (*Option)(nil)
	_ Definition = (*Argument)(nil)
	_ Definition = (*Directive)(nil)
)

// ID returns the definition's identity.
func (c *Common) ID() Identity { return c.Identity }

// Base returns c.
func (c *Common) Base() *Common { return c }

// IdentifierOrDefault returns Identifier, or the last identity segment.
func (c *Common) IdentifierOrDefault() string {
	if c.Identifier != "" {
		return c.Identifier
	}
	return c.Identity.Leaf()
}

func (c *Common) validate() []error {
	var errs []error
	if ok, idErrs := c.Identity.IsValid(); !ok {
		errs = append(errs, idErrs...)
	}
	if c.Name != "" && strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errors.New("name must not be whitespace-only"))
	}
	for _, a := range c.Aliases {
		if strings.TrimSpace(a) == "" {
			errs = append(errs, errors.New("aliases must not be empty"))
			break
		}
	}
	if ok, descErrs := c.Description.IsValid(); !ok {
		errs = append(errs, descErrs...)
	}
	if c.Arity != nil {
		if ok, arityErrs := c.Arity.IsValid(); !ok {
			errs = append(errs, arityErrs...)
		}
	}
	return errs
}

func (v *Valued) validate() []error {
	errs := v.Common.validate()
	if v.Owner == "" {
		errs = append(errs, errors.New("member must have an owner"))
	}
	if v.Shape.IsZero() {
		errs = append(errs, errors.New("member must declare a value shape"))
	}
	if ok, initErrs := v.Initializer.IsValid(); !ok {
		errs = append(errs, initErrs...)
	}
	return errs
}

// Kind returns KindCommand.
func (c *Command) Kind() Kind { return KindCommand }

// TreatsUnmatchedTokensAsErrors resolves UnmatchedTokensAreErrors, which
// defaults to true.
func (c *Command) TreatsUnmatchedTokensAsErrors() bool {
	return c.UnmatchedTokensAreErrors == nil || *c.UnmatchedTokensAreErrors
}

// Validate checks the command in isolation. Required and Arity overrides are
// ignored on commands.
func (c *Command) Validate() error {
	errs := c.Common.validate()
	if c.Owner != "" {
		errs = append(errs, fmt.Errorf("command must not have an owner (got %q)", c.Owner))
	}
	if ok, convErrs := c.Convention.IsValid(); !ok {
		errs = append(errs, convErrs...)
	}
	for _, ref := range c.Children {
		if ref == "" {
			errs = append(errs, errors.New("children must not contain empty identities"))
			break
		}
	}
	for _, ref := range c.Bases {
		if ref == c.Identity {
			errs = append(errs, errors.New("command must not list itself as a base"))
			break
		}
	}
	return newInvalidDefinitionError(c, errs)
}

// Kind returns KindOption.
func (o *Option) Kind() Kind { return KindOption }

// Validate checks the option in isolation.
func (o *Option) Validate() error { return newInvalidDefinitionError(o, o.validate()) }

// Kind returns KindArgument.
func (a *Argument) Kind() Kind { return KindArgument }

// Validate checks the argument in isolation.
func (a *Argument) Validate() error { return newInvalidDefinitionError(a, a.validate()) }

// Kind returns KindDirective.
func (d *Directive) Kind() Kind { return KindDirective }

// Validate checks the directive in isolation. Directives have no arity or
// required-ness, so setting either override is rejected.
func (d *Directive) Validate() error {
	errs := d.Common.validate()
	if d.Owner == "" {
		errs = append(errs, errors.New("member must have an owner"))
	}
	if d.Shape.IsZero() {
		errs = append(errs, errors.New("member must declare a value shape"))
	}
	if d.Arity != nil {
		errs = append(errs, errors.New("directives do not accept an arity override"))
	}
	if d.Required != nil {
		errs = append(errs, errors.New("directives do not accept a required override"))
	}
	return newInvalidDefinitionError(d, errs)
}

// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/types"
)

// ErrInvalidManifest is returned when a YAML or TOML manifest cannot be
// parsed, or when a schema-valid manifest still cannot be converted into
// definitions.
var ErrInvalidManifest = errors.New("invalid manifest")

// FieldError locates a conversion failure inside a manifest.
type FieldError struct {
	File string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FieldError) Error() string { return fmt.Sprintf("%s: %s: %v", e.File, e.Path, e.Err) }

// Unwrap returns ErrInvalidManifest and the underlying error.
func (e *FieldError) Unwrap() []error { return []error{ErrInvalidManifest, e.Err} }

type converter struct {
	file string
	seq  int
	defs []cmddef.Definition
	errs []error
}

// Definitions converts the manifest into raw definitions in document order:
// each command, then its members, then its nested commands.
func (m *Manifest) Definitions() ([]cmddef.Definition, error) {
	c := &converter{file: m.file}
	for i := range m.Commands {
		c.command(&m.Commands[i], "", fmt.Sprintf("commands[%d]", i))
	}
	if len(c.errs) > 0 {
		return nil, errors.Join(c.errs...)
	}
	return c.defs, nil
}

func (c *converter) fail(path string, err error) {
	c.errs = append(c.errs, &FieldError{File: c.file, Path: path, Err: err})
}

func (c *converter) common(src Common, id cmddef.Identity, identifier string, decl int) cmddef.Common {
	var order int
	if src.Order != nil {
		order = *src.Order
	}
	return cmddef.Common{
		Identity:    id,
		Identifier:  identifier,
		Name:        src.Name,
		Aliases:     src.Aliases,
		Description: types.DescriptionText(src.Description),
		Hidden:      src.Hidden,
		Order:       order,
		OrderSet:    src.Order != nil,
		DeclOrder:   decl,
	}
}

func (c *converter) command(src *Command, container cmddef.Identity, path string) {
	c.seq++
	id := cmddef.Identity(src.ID)
	cmd := &cmddef.Command{
		Common:                   c.common(src.Common, id, src.Identifier, c.seq),
		Container:                container,
		Parent:                   cmddef.Identity(src.Parent),
		Children:                 identities(src.Children),
		Bases:                    identities(src.Bases),
		Abstract:                 src.Abstract,
		UnmatchedTokensAreErrors: src.UnmatchedTokensAreErrors,
	}
	if src.Conventions != nil {
		cmd.Convention = c.convention(src.Conventions, path+".conventions")
	}
	c.defs = append(c.defs, cmd)

	for i, o := range src.Options {
		opt := &cmddef.Option{Valued: c.valued(o.Valued, id, i, fmt.Sprintf("%s.options[%d]", path, i)), Global: o.Global}
		c.defs = append(c.defs, opt)
	}
	for i, a := range src.Arguments {
		c.defs = append(c.defs, &cmddef.Argument{Valued: c.valued(a, id, i, fmt.Sprintf("%s.arguments[%d]", path, i))})
	}
	for i, d := range src.Directives {
		common := c.common(d.Common, id.Member(d.Member), d.Member, i)
		common.Owner = id
		c.defs = append(c.defs, &cmddef.Directive{Common: common, Shape: cmddef.ShapeOf(d.Type)})
	}
	for i := range src.Commands {
		c.command(&src.Commands[i], id, fmt.Sprintf("%s.commands[%d]", path, i))
	}
}

func (c *converter) valued(src Valued, owner cmddef.Identity, decl int, path string) cmddef.Valued {
	v := cmddef.Valued{
		Common:        c.common(src.Common, owner.Member(src.Member), src.Member, decl),
		Shape:         cmddef.ShapeOf(src.Type),
		Initializer:   cmddef.Initializer(src.Initializer),
		Default:       src.Default,
		AllowedValues: src.Allowed,
	}
	v.Owner = owner
	v.Required = src.Required
	if src.Arity != "" {
		a, err := cmddef.ParseArity(src.Arity)
		if err != nil {
			c.fail(path+".arity", err)
		} else {
			v.Arity = &a
		}
	}
	if src.Initializer == "" && src.Default != "" {
		v.Initializer = cmddef.InitializerValue
	}
	return v
}

func (c *converter) convention(src *Conventions, path string) cmddef.Convention {
	conv := cmddef.Convention{
		Casing:          cmddef.Casing(src.Casing),
		NamePrefix:      cmddef.Prefix(src.NamePrefix),
		ShortFormPrefix: cmddef.Prefix(src.ShortFormPrefix),
	}
	if src.AutoGenerate != nil {
		set, err := cmddef.ParseKindSet(src.AutoGenerate)
		if err != nil {
			c.fail(path+".auto_generate", err)
		}
		conv.NameAutoGenerate = set.Ptr()
	}
	if src.ShortFormAutoGenerate != nil {
		set, err := cmddef.ParseKindSet(src.ShortFormAutoGenerate)
		if err != nil {
			c.fail(path+".short_form_auto_generate", err)
		}
		conv.ShortFormAutoGenerate = set.Ptr()
	}
	return conv
}

func identities(ss []string) []cmddef.Identity {
	if ss == nil {
		return nil
	}
	ids := make([]cmddef.Identity, len(ss))
	for i, s := range ss {
		ids[i] = cmddef.Identity(s)
	}
	return ids
}

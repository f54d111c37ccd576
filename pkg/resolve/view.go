// SPDX-License-Identifier: MPL-2.0

package resolve

type (
	// TreeView is a plain, serializable rendering of a tree.
	TreeView struct {
		Version  uint64        `json:"version" yaml:"version" toml:"version"`
		Commands []CommandView `json:"commands" yaml:"commands" toml:"commands"`
	}

	// CommandView is the serializable form of a command node.
	CommandView struct {
		ID          string          `json:"id" yaml:"id" toml:"id"`
		Name        string          `json:"name" yaml:"name" toml:"name"`
		Aliases     []string        `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
		Description string          `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		Hidden      bool            `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
		Unmatched   bool            `json:"unmatched_tokens_are_errors" yaml:"unmatched_tokens_are_errors" toml:"unmatched_tokens_are_errors"`
		Convention  ConventionView  `json:"convention" yaml:"convention" toml:"convention"`
		Options     []OptionView    `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
		Arguments   []ArgumentView  `json:"arguments,omitempty" yaml:"arguments,omitempty" toml:"arguments,omitempty"`
		Directives  []DirectiveView `json:"directives,omitempty" yaml:"directives,omitempty" toml:"directives,omitempty"`
		Commands    []CommandView   `json:"commands,omitempty" yaml:"commands,omitempty" toml:"commands,omitempty"`
	}

	// ConventionView is the serializable form of a resolved convention.
	ConventionView struct {
		Casing                string `json:"casing" yaml:"casing" toml:"casing"`
		NamePrefix            string `json:"name_prefix" yaml:"name_prefix" toml:"name_prefix"`
		ShortFormPrefix       string `json:"short_form_prefix" yaml:"short_form_prefix" toml:"short_form_prefix"`
		NameAutoGenerate      string `json:"auto_generate" yaml:"auto_generate" toml:"auto_generate"`
		ShortFormAutoGenerate string `json:"short_form_auto_generate" yaml:"short_form_auto_generate" toml:"short_form_auto_generate"`
	}

	// OptionView is the serializable form of an option.
	OptionView struct {
		ID          string   `json:"id" yaml:"id" toml:"id"`
		Name        string   `json:"name" yaml:"name" toml:"name"`
		Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
		Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		Hidden      bool     `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
		Arity       string   `json:"arity" yaml:"arity" toml:"arity"`
		Required    bool     `json:"required" yaml:"required" toml:"required"`
		Type        string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
		Allowed     []string `json:"allowed,omitempty" yaml:"allowed,omitempty" toml:"allowed,omitempty"`
		Default     string   `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
		Global      bool     `json:"global,omitempty" yaml:"global,omitempty" toml:"global,omitempty"`
		Origin      string   `json:"origin,omitempty" yaml:"origin,omitempty" toml:"origin,omitempty"`
	}

	// ArgumentView is the serializable form of an argument.
	ArgumentView struct {
		ID          string   `json:"id" yaml:"id" toml:"id"`
		Name        string   `json:"name" yaml:"name" toml:"name"`
		Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		Hidden      bool     `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
		Arity       string   `json:"arity" yaml:"arity" toml:"arity"`
		Required    bool     `json:"required" yaml:"required" toml:"required"`
		Type        string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
		Allowed     []string `json:"allowed,omitempty" yaml:"allowed,omitempty" toml:"allowed,omitempty"`
		Default     string   `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	}

	// DirectiveView is the serializable form of a directive.
	DirectiveView struct {
		ID          string `json:"id" yaml:"id" toml:"id"`
		Name        string `json:"name" yaml:"name" toml:"name"`
		Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		Hidden      bool   `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
		Type        string `json:"type" yaml:"type" toml:"type"`
	}
)

// Snapshot renders the tree as plain data for JSON, YAML or TOML output.
func (t *Tree) Snapshot() TreeView {
	view := TreeView{Version: t.version}
	for _, root := range t.roots {
		view.Commands = append(view.Commands, root.view())
	}
	return view
}

func (c *Command) view() CommandView {
	v := CommandView{
		ID:          c.ID().String(),
		Name:        c.name,
		Aliases:     c.Aliases(),
		Description: c.Description().String(),
		Hidden:      c.Hidden(),
		Unmatched:   c.unmatchedErrors,
		Convention: ConventionView{
			Casing:                c.conv.Casing.String(),
			NamePrefix:            c.conv.NamePrefix.String(),
			ShortFormPrefix:       c.conv.ShortFormPrefix.String(),
			NameAutoGenerate:      c.conv.NameAutoGenerate.String(),
			ShortFormAutoGenerate: c.conv.ShortFormAutoGenerate.String(),
		},
	}
	for _, o := range c.options {
		ov := OptionView{
			ID:          o.id.String(),
			Name:        o.name,
			Aliases:     o.Aliases(),
			Description: o.desc.String(),
			Hidden:      o.hidden,
			Arity:       o.arity.String(),
			Required:    o.required,
			Type:        o.value.String(),
			Allowed:     o.AllowedValues(),
			Default:     o.deflt,
			Global:      o.global,
		}
		if o.origin != nil {
			ov.Origin = o.origin.ID().String()
		}
		v.Options = append(v.Options, ov)
	}
	for _, a := range c.arguments {
		v.Arguments = append(v.Arguments, ArgumentView{
			ID:          a.id.String(),
			Name:        a.name,
			Description: a.desc.String(),
			Hidden:      a.hidden,
			Arity:       a.arity.String(),
			Required:    a.required,
			Type:        a.value.String(),
			Allowed:     a.AllowedValues(),
			Default:     a.deflt,
		})
	}
	for _, d := range c.directives {
		v.Directives = append(v.Directives, DirectiveView{
			ID:          d.id.String(),
			Name:        d.name,
			Description: d.desc.String(),
			Hidden:      d.hidden,
			Type:        d.shape.String(),
		})
	}
	for _, child := range c.children {
		v.Commands = append(v.Commands, child.view())
	}
	return v
}

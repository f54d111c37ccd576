// SPDX-License-Identifier: MPL-2.0

// Package convention resolves the effective naming convention of a command
// by walking its parent chain. For every axis the nearest explicitly-set
// value wins; axes unset along the whole chain take the defaults.
package convention

import (
	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/naming"
)

type (
	// Resolved is a fully populated convention together with the command
	// that supplied each axis.
	Resolved struct {
		Casing                cmddef.Casing
		NamePrefix            cmddef.Prefix
		ShortFormPrefix       cmddef.Prefix
		NameAutoGenerate      cmddef.KindSet
		ShortFormAutoGenerate cmddef.KindSet
		Sources               Sources
	}

	// Sources records the identity of the command that set each axis.
	// An empty identity means the value came from the defaults.
	Sources struct {
		Casing                cmddef.Identity
		NamePrefix            cmddef.Identity
		ShortFormPrefix       cmddef.Identity
		NameAutoGenerate      cmddef.Identity
		ShortFormAutoGenerate cmddef.Identity
	}

	// Lookup returns the command definition and resolved parent of id.
	// The parent is empty for roots.
	Lookup func(id cmddef.Identity) (cmd *cmddef.Command, parent cmddef.Identity, ok bool)

	// Resolver resolves conventions and memoizes the result per command.
	// It is not safe for concurrent use.
	Resolver struct {
		defaults cmddef.Convention
		lookup   Lookup
		cache    map[cmddef.Identity]Resolved
	}
)

// SystemDefaults returns the built-in convention: kebab casing, "--" name
// prefix, "-" short-form prefix, and auto-generation for every kind.
func SystemDefaults() cmddef.Convention {
	return cmddef.Convention{
		Casing:                cmddef.CasingKebab,
		NamePrefix:            cmddef.PrefixDoubleHyphen,
		ShortFormPrefix:       cmddef.PrefixHyphen,
		NameAutoGenerate:      cmddef.KindSetAll.Ptr(),
		ShortFormAutoGenerate: cmddef.KindSetAll.Ptr(),
	}
}

// Defaults returns override with its unset axes filled from SystemDefaults.
func Defaults(override cmddef.Convention) cmddef.Convention {
	return override.Merge(SystemDefaults())
}

// NewResolver creates a resolver. Unset axes of defaults fall back to
// SystemDefaults.
func NewResolver(defaults cmddef.Convention, lookup Lookup) *Resolver {
	return &Resolver{
		defaults: Defaults(defaults),
		lookup:   lookup,
		cache:    make(map[cmddef.Identity]Resolved),
	}
}

// Resolve returns the effective convention of id. The parent chain must be
// final and acyclic; a revisited command fails with a cycle error.
func (r *Resolver) Resolve(id cmddef.Identity) (Resolved, error) {
	if res, ok := r.cache[id]; ok {
		return res, nil
	}

	var (
		chain   []*cmddef.Command
		visited = make(map[cmddef.Identity]bool)
		path    []cmddef.Identity
	)
	for cur := id; cur != ""; {
		if visited[cur] {
			return Resolved{}, &cmddef.CyclicCommandGraphError{
				Identity: cur,
				Relation: cmddef.RelationParent,
				Chain:    append(path, cur),
			}
		}
		visited[cur] = true
		path = append(path, cur)

		cmd, parent, ok := r.lookup(cur)
		if !ok {
			break
		}
		chain = append(chain, cmd)
		cur = parent
	}

	res := r.fromDefaults()
	// Walk root-most first so nearer commands overwrite.
	for i := len(chain) - 1; i >= 0; i-- {
		res.apply(chain[i])
	}
	r.cache[id] = res
	return res, nil
}

func (r *Resolver) fromDefaults() Resolved {
	d := r.defaults
	return Resolved{
		Casing:                d.Casing,
		NamePrefix:            d.NamePrefix,
		ShortFormPrefix:       d.ShortFormPrefix,
		NameAutoGenerate:      *d.NameAutoGenerate,
		ShortFormAutoGenerate: *d.ShortFormAutoGenerate,
	}
}

func (res *Resolved) apply(cmd *cmddef.Command) {
	c := cmd.Convention
	if c.Casing != "" {
		res.Casing, res.Sources.Casing = c.Casing, cmd.Identity
	}
	if c.NamePrefix != "" {
		res.NamePrefix, res.Sources.NamePrefix = c.NamePrefix, cmd.Identity
	}
	if c.ShortFormPrefix != "" {
		res.ShortFormPrefix, res.Sources.ShortFormPrefix = c.ShortFormPrefix, cmd.Identity
	}
	if c.NameAutoGenerate != nil {
		res.NameAutoGenerate, res.Sources.NameAutoGenerate = *c.NameAutoGenerate, cmd.Identity
	}
	if c.ShortFormAutoGenerate != nil {
		res.ShortFormAutoGenerate, res.Sources.ShortFormAutoGenerate = *c.ShortFormAutoGenerate, cmd.Identity
	}
}

// Rules returns the naming rules the convention implies for kind.
func (res Resolved) Rules(kind cmddef.Kind) naming.Rules {
	return naming.Rules{
		Casing:          res.Casing,
		NamePrefix:      res.NamePrefix,
		ShortFormPrefix: res.ShortFormPrefix,
		AutoName:        res.NameAutoGenerate.Has(kind),
		AutoShortForm:   res.ShortFormAutoGenerate.Has(kind),
	}
}

// Convention returns the resolved values as a fully-set cmddef.Convention.
func (res Resolved) Convention() cmddef.Convention {
	return cmddef.Convention{
		Casing:                res.Casing,
		NamePrefix:            res.NamePrefix,
		ShortFormPrefix:       res.ShortFormPrefix,
		NameAutoGenerate:      res.NameAutoGenerate.Ptr(),
		ShortFormAutoGenerate: res.ShortFormAutoGenerate.Ptr(),
	}
}

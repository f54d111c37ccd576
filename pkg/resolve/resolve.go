// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"slices"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/convention"
	"github.com/cmdspec/cmdspec/pkg/inference"
	"github.com/cmdspec/cmdspec/pkg/registry"
)

type (
	// Resolver turns registry snapshots into trees. It holds only
	// configuration and may be reused concurrently.
	Resolver struct {
		cfg *config
	}

	// resolver holds the state of a single resolution.
	resolver struct {
		cfg      *config
		snap     *registry.Snapshot
		commands map[cmddef.Identity]*cmddef.Command
		order    []cmddef.Identity
		parents  map[cmddef.Identity]cmddef.Identity
		attached map[cmddef.Identity][]cmddef.Definition
		conv     *convention.Resolver
		infer    *inference.Engine
		nodes    map[cmddef.Identity]*Command
		roots    []*Command
	}
)

// NewResolver creates a resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	return &Resolver{cfg: newConfig(opts)}
}

// Resolve resolves snap with default settings. See Resolver.Resolve.
func Resolve(snap *registry.Snapshot, roots ...cmddef.Identity) (*Tree, error) {
	return NewResolver().Resolve(snap, roots...)
}

// Resolve assembles the tree of snap. With no roots, every root command is
// included; otherwise the tree is restricted to the requested roots, each
// of which must be a concrete command without a parent.
func (rs *Resolver) Resolve(snap *registry.Snapshot, roots ...cmddef.Identity) (*Tree, error) {
	r := &resolver{
		cfg:      rs.cfg,
		snap:     snap,
		commands: make(map[cmddef.Identity]*cmddef.Command),
		parents:  make(map[cmddef.Identity]cmddef.Identity),
		attached: make(map[cmddef.Identity][]cmddef.Definition),
		infer:    inference.New(rs.cfg.inspector),
		nodes:    make(map[cmddef.Identity]*Command),
	}
	for _, cmd := range snap.Commands() {
		r.commands[cmd.Identity] = cmd
		r.order = append(r.order, cmd.Identity)
	}
	r.conv = convention.NewResolver(rs.cfg.defaults, r.lookupCommand)

	log := rs.cfg.logger
	if err := r.link(); err != nil {
		return nil, err
	}
	if err := r.checkParentCycles(); err != nil {
		return nil, err
	}
	if err := r.checkBaseCycles(); err != nil {
		return nil, err
	}
	log.Debug("linked commands", "commands", len(r.order), "parents", len(r.parents))

	if err := r.build(); err != nil {
		return nil, err
	}

	asm := &Assembly{r: r}
	for _, hook := range rs.cfg.hooks {
		if err := hook(asm); err != nil {
			return nil, err
		}
	}

	if n := propagate(r.roots); n > 0 {
		log.Debug("propagated global options", "copies", n)
	}
	if err := validate(r.roots); err != nil {
		return nil, err
	}

	tree, err := r.tree(roots)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved tree", "roots", len(tree.roots), "commands", tree.Len(), "version", tree.version)
	return tree, nil
}

func (r *resolver) lookupCommand(id cmddef.Identity) (*cmddef.Command, cmddef.Identity, bool) {
	cmd, ok := r.commands[id]
	return cmd, r.parents[id], ok
}

func (r *resolver) members(owner cmddef.Identity) []cmddef.Definition {
	if attached, ok := r.attached[owner]; ok {
		return attached
	}
	return r.snap.Members(owner)
}

// build creates every node in parent-first order and links children.
func (r *resolver) build() error {
	order, err := r.topoOrder()
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range order {
		if _, err := r.buildCommand(r.commands[id]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, id := range order {
		node := r.nodes[id]
		if parentID, ok := r.parents[id]; ok {
			parent := r.nodes[parentID]
			node.parent = parent
			parent.children = append(parent.children, node)
		} else {
			r.roots = append(r.roots, node)
		}
	}
	for _, node := range r.nodes {
		sortCommands(node.children)
	}
	sortCommands(r.roots)
	return nil
}

// tree freezes the selected roots and everything reachable from them.
func (r *resolver) tree(requested []cmddef.Identity) (*Tree, error) {
	roots := r.roots
	if len(requested) > 0 {
		roots = nil
		for _, id := range requested {
			node, ok := r.nodes[id]
			if !ok {
				reason := "no command with this identity"
				if cmd, exists := r.commands[id]; exists && cmd.Abstract {
					reason = "command is abstract"
				}
				return nil, &cmddef.UnresolvedReferenceError{Identity: id, Reference: id, Relation: cmddef.RelationRoot, Reason: reason}
			}
			if node.parent != nil {
				return nil, &cmddef.NotARootError{Identity: id, Parent: node.parent.ID()}
			}
			if !slices.Contains(roots, node) {
				roots = append(roots, node)
			}
		}
	}

	t := &Tree{
		roots:    roots,
		commands: make(map[cmddef.Identity]*Command),
		defs:     make(map[cmddef.Identity]cmddef.Definition),
		version:  r.snap.Version(),
	}
	_ = t.Walk(func(c *Command) error {
		t.commands[c.ID()] = c
		t.defs[c.ID()] = c.def
		for _, o := range c.options {
			t.defs[o.id] = o.def
		}
		for _, a := range c.arguments {
			t.defs[a.id] = a.def
		}
		for _, d := range c.directives {
			t.defs[d.id] = d.def
		}
		return nil
	})
	return t, nil
}

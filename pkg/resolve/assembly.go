// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

// Assembly is the view of an in-progress resolution handed to assembly
// hooks. It is only valid during the hook call.
type Assembly struct {
	r *resolver
}

// Roots returns the current root commands.
func (a *Assembly) Roots() []*Command { return append([]*Command(nil), a.r.roots...) }

// Command returns a built command node.
func (a *Assembly) Command(id cmddef.Identity) (*Command, bool) {
	node, ok := a.r.nodes[id]
	return node, ok
}

// Attach adds cmd and its members below parent. The command is named,
// inherits from its bases and has its members inferred exactly like a
// registered command. Members must be owned by cmd.
func (a *Assembly) Attach(parent cmddef.Identity, cmd *cmddef.Command, members ...cmddef.Definition) (*Command, error) {
	r := a.r
	if cmd == nil {
		return nil, &cmddef.InvalidDefinitionError{FieldErrors: []error{errors.New("command must not be nil")}}
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if cmd.Abstract {
		return nil, &cmddef.InvalidDefinitionError{Identity: cmd.Identity, Kind: cmddef.KindCommand,
			FieldErrors: []error{errors.New("abstract commands cannot be attached")}}
	}
	if err := r.checkUnused(cmd); err != nil {
		return nil, err
	}
	for _, m := range members {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if m.Kind() == cmddef.KindCommand || m.Base().Owner != cmd.Identity {
			return nil, &cmddef.InvalidDefinitionError{Identity: m.ID(), Kind: m.Kind(),
				FieldErrors: []error{fmt.Errorf("attached members must be owned by %q", cmd.Identity)}}
		}
		if err := r.checkUnused(m); err != nil {
			return nil, err
		}
	}

	parentNode, ok := r.nodes[parent]
	if !ok {
		return nil, &cmddef.UnresolvedReferenceError{Identity: cmd.Identity, Reference: parent, Relation: cmddef.RelationParent, Reason: "no command with this identity in the tree"}
	}
	if cmd.Parent != "" && cmd.Parent != parent {
		return nil, &cmddef.AmbiguousParentError{Identity: cmd.Identity, Claims: []cmddef.ParentClaim{
			{Parent: parent, Via: cmddef.RelationParent},
			{Parent: cmd.Parent, Via: cmddef.RelationParent},
		}}
	}
	for _, base := range cmd.Bases {
		if err := r.checkRef(cmd.Identity, base, cmddef.RelationBase, true); err != nil {
			return nil, err
		}
	}

	r.commands[cmd.Identity] = cmd
	r.order = append(r.order, cmd.Identity)
	r.parents[cmd.Identity] = parent
	r.attached[cmd.Identity] = append([]cmddef.Definition(nil), members...)

	node, err := r.buildCommand(cmd)
	if err != nil {
		return nil, err
	}
	node.parent = parentNode
	parentNode.children = append(parentNode.children, node)
	sortCommands(parentNode.children)
	r.cfg.logger.Debug("attached command", "command", cmd.Identity, "parent", parent)
	return node, nil
}

// checkUnused fails when def's identity is already taken by a different
// definition.
func (r *resolver) checkUnused(def cmddef.Definition) error {
	existing, ok := r.snap.Lookup(def.ID())
	if !ok {
		if cmd, attached := r.commands[def.ID()]; attached {
			existing, ok = cmd, true
		}
	}
	if !ok {
		for _, members := range r.attached {
			for _, m := range members {
				if m.ID() == def.ID() {
					existing, ok = m, true
				}
			}
		}
	}
	if ok {
		return &cmddef.DuplicateIdentityError{Identity: def.ID(), Existing: existing.Kind(), Incoming: def.Kind()}
	}
	return nil
}

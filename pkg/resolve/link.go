// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"slices"

	"github.com/cmdspec/cmdspec/internal/dag"
	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

// link settles the parent of every concrete command.
//
// A nested command's parent is its container; children-list claims on it
// are dropped, but its own explicit parent must agree with the container.
// A top-level command's explicit parent and every children-list claim
// must name the same command.
func (r *resolver) link() error {
	var errs []error
	claims := make(map[cmddef.Identity][]cmddef.ParentClaim)

	for _, id := range r.order {
		cmd := r.commands[id]
		for _, base := range cmd.Bases {
			if err := r.checkRef(id, base, cmddef.RelationBase, true); err != nil {
				errs = append(errs, err)
			}
		}
		if cmd.Abstract {
			if len(cmd.Children) > 0 {
				errs = append(errs, &cmddef.UnresolvedReferenceError{
					Identity:  id,
					Reference: cmd.Children[0],
					Relation:  cmddef.RelationChild,
					Reason:    "abstract commands cannot have children",
				})
			}
			continue
		}
		for _, child := range cmd.Children {
			if err := r.checkRef(id, child, cmddef.RelationChild, false); err != nil {
				errs = append(errs, err)
				continue
			}
			claims[child] = append(claims[child], cmddef.ParentClaim{Parent: id, Via: cmddef.RelationChild})
		}
	}

	for _, def := range r.snap.All() {
		if def.Kind() == cmddef.KindCommand {
			continue
		}
		if owner := def.Base().Owner; r.commands[owner] == nil {
			errs = append(errs, &cmddef.UnresolvedReferenceError{
				Identity:  def.ID(),
				Reference: owner,
				Relation:  cmddef.RelationContainer,
				Reason:    "member owner is not a command",
			})
		}
	}

	for _, id := range r.order {
		cmd := r.commands[id]
		if cmd.Abstract {
			continue
		}
		parent, err := r.parentOf(cmd, claims[id])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if parent != "" {
			r.parents[id] = parent
		}
	}

	return errors.Join(errs...)
}

func (r *resolver) parentOf(cmd *cmddef.Command, claims []cmddef.ParentClaim) (cmddef.Identity, error) {
	if cmd.Container != "" {
		if err := r.checkRef(cmd.Identity, cmd.Container, cmddef.RelationContainer, false); err != nil {
			return "", err
		}
		if cmd.Parent != "" && cmd.Parent != cmd.Container {
			return "", &cmddef.AmbiguousParentError{
				Identity: cmd.Identity,
				Claims: []cmddef.ParentClaim{
					{Parent: cmd.Container, Via: cmddef.RelationContainer},
					{Parent: cmd.Parent, Via: cmddef.RelationParent},
				},
			}
		}
		return cmd.Container, nil
	}

	var all []cmddef.ParentClaim
	if cmd.Parent != "" {
		if err := r.checkRef(cmd.Identity, cmd.Parent, cmddef.RelationParent, false); err != nil {
			return "", err
		}
		all = append(all, cmddef.ParentClaim{Parent: cmd.Parent, Via: cmddef.RelationParent})
	}
	all = append(all, claims...)
	if len(all) == 0 {
		return "", nil
	}

	for _, c := range all[1:] {
		if c.Parent != all[0].Parent {
			return "", &cmddef.AmbiguousParentError{Identity: cmd.Identity, Claims: all}
		}
	}
	return all[0].Parent, nil
}

// checkRef verifies that ref names a command usable in relation rel.
func (r *resolver) checkRef(from, ref cmddef.Identity, rel cmddef.Relation, allowAbstract bool) error {
	target, ok := r.commands[ref]
	if !ok {
		reason := "no definition with this identity"
		if _, exists := r.snap.Lookup(ref); exists {
			reason = "definition is not a command"
		}
		return &cmddef.UnresolvedReferenceError{Identity: from, Reference: ref, Relation: rel, Reason: reason}
	}
	if target.Abstract && !allowAbstract {
		return &cmddef.UnresolvedReferenceError{Identity: from, Reference: ref, Relation: rel, Reason: "command is abstract"}
	}
	return nil
}

// checkParentCycles follows every parent chain with a visited set and fails
// on the first command that is reached twice.
func (r *resolver) checkParentCycles() error {
	for _, id := range r.order {
		visited := make(map[cmddef.Identity]int)
		var path []cmddef.Identity
		for cur := id; cur != ""; cur = r.parents[cur] {
			if at, seen := visited[cur]; seen {
				return &cmddef.CyclicCommandGraphError{
					Identity: cur,
					Relation: cmddef.RelationParent,
					Chain:    append(slices.Clone(path[at:]), cur),
				}
			}
			visited[cur] = len(path)
			path = append(path, cur)
		}
	}
	return nil
}

// checkBaseCycles fails when base links loop back to a command.
func (r *resolver) checkBaseCycles() error {
	g := dag.New[cmddef.Identity]()
	for _, id := range r.order {
		g.AddNode(id)
	}
	for _, id := range r.order {
		for _, base := range r.commands[id].Bases {
			g.AddEdge(id, base)
		}
	}
	if cycle := g.FindCycle(); cycle != nil {
		return &cmddef.CyclicCommandGraphError{Identity: cycle[0], Relation: cmddef.RelationBase, Chain: cycle}
	}
	return nil
}

// topoOrder returns the concrete commands with parents before children.
func (r *resolver) topoOrder() ([]cmddef.Identity, error) {
	g := dag.New[cmddef.Identity]()
	for _, id := range r.order {
		if !r.commands[id].Abstract {
			g.AddNode(id)
		}
	}
	for _, id := range r.order {
		if parent, ok := r.parents[id]; ok {
			g.AddEdge(parent, id)
		}
	}
	order, err := g.TopologicalSort()
	if err != nil {
		var cycleErr *dag.CycleError[cmddef.Identity]
		if errors.As(err, &cycleErr) {
			return nil, &cmddef.CyclicCommandGraphError{Identity: cycleErr.Cycle[0], Relation: cmddef.RelationParent, Chain: cycleErr.Cycle}
		}
		return nil, err
	}
	return order, nil
}

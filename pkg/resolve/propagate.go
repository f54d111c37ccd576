// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"slices"

	"github.com/ef-ds/deque"
)

type propagation struct {
	node      *Command
	inherited []*Option
}

// propagate copies every global option into the option list of all of its
// owner's descendants, breadth-first from the roots. Copies are appended
// after local options with the root-most owner first. It returns the number
// of copies made.
func propagate(roots []*Command) int {
	copies := 0
	var queue deque.Deque
	for _, root := range roots {
		queue.PushBack(propagation{node: root})
	}

	for queue.Len() > 0 {
		v, _ := queue.PopFront()
		p := v.(propagation)

		next := slices.Clone(p.inherited)
		for _, o := range p.node.options {
			if o.global {
				next = append(next, o)
			}
		}
		for _, o := range p.inherited {
			p.node.options = append(p.node.options, o.propagatedTo(p.node))
			copies++
		}

		for _, child := range p.node.children {
			queue.PushBack(propagation{node: child, inherited: next})
		}
	}
	return copies
}

func (o *Option) propagatedTo(node *Command) *Option {
	c := *o
	c.aliases = slices.Clone(o.aliases)
	c.allowed = slices.Clone(o.allowed)
	c.owner = node
	c.origin = o.owner
	return &c
}

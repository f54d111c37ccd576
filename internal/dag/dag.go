// SPDX-License-Identifier: MPL-2.0

// Package dag provides directed graph ordering and cycle detection. The tree
// assembler uses it to order commands parents-first and to locate cycles in
// base (inheritance) links.
package dag

import (
	"fmt"
	"strings"

	"github.com/ef-ds/deque"
)

type (
	// CycleError indicates that the graph contains a cycle. Cycle lists the
	// nodes of one cycle in edge order, repeating the first node at the end.
	CycleError[K comparable] struct {
		Cycle []K
	}

	// Graph is a directed graph keyed by K. An edge from A to B means A must
	// come before B. Nodes keep their insertion order so that every
	// traversal is deterministic.
	Graph[K comparable] struct {
		adjacency map[K][]K
		nodes     []K
		nodeSet   map[K]bool
	}
)

func (e *CycleError[K]) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, n := range e.Cycle {
		parts[i] = fmt.Sprint(n)
	}
	return "cycle detected: " + strings.Join(parts, " -> ")
}

// New creates an empty Graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		adjacency: make(map[K][]K),
		nodeSet:   make(map[K]bool),
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Graph[K]) AddNode(n K) {
	if g.nodeSet[n] {
		return
	}
	g.nodeSet[n] = true
	g.nodes = append(g.nodes, n)
}

// AddEdge adds a directed edge from -> to, adding both nodes if needed.
func (g *Graph[K]) AddEdge(from, to K) {
	g.AddNode(from)
	g.AddNode(to)
	g.adjacency[from] = append(g.adjacency[from], to)
}

// Len returns the number of nodes.
func (g *Graph[K]) Len() int { return len(g.nodes) }

// Successors returns the direct successors of n in edge insertion order.
func (g *Graph[K]) Successors(n K) []K {
	return append([]K(nil), g.adjacency[n]...)
}

// TopologicalSort returns the nodes ordered so that every edge points
// forward, using Kahn's algorithm. Nodes at the same level appear in
// insertion order. A cyclic graph yields a CycleError.
func (g *Graph[K]) TopologicalSort() ([]K, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[K]int, len(g.nodes))
	for _, node := range g.nodes {
		for _, next := range g.adjacency[node] {
			inDegree[next]++
		}
	}

	var queue deque.Deque
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue.PushBack(node)
		}
	}

	result := make([]K, 0, len(g.nodes))
	for queue.Len() > 0 {
		v, _ := queue.PopFront()
		node := v.(K)
		result = append(result, node)

		for _, next := range g.adjacency[node] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue.PushBack(next)
			}
		}
	}

	if len(result) != len(g.nodes) {
		if cycle := g.FindCycle(); cycle != nil {
			return nil, &CycleError[K]{Cycle: cycle}
		}
	}
	return result, nil
}

// FindCycle returns the first cycle reachable in insertion order, as a path
// that starts and ends with the same node, or nil when the graph is acyclic.
func (g *Graph[K]) FindCycle() []K {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[K]int, len(g.nodes))
	var stack []K

	var visit func(n K) []K
	visit = func(n K) []K {
		state[n] = inProgress
		stack = append(stack, n)
		for _, next := range g.adjacency[n] {
			switch state[next] {
			case inProgress:
				for i, s := range stack {
					if s == next {
						return append(append([]K(nil), stack[i:]...), next)
					}
				}
			case unvisited:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		return nil
	}

	for _, n := range g.nodes {
		if state[n] == unvisited {
			if cycle := visit(n); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

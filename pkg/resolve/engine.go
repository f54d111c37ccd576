// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"strings"
	"sync"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/registry"
)

type (
	// Engine resolves the current contents of a registry and memoizes the
	// result per registry version and requested roots. It is safe for
	// concurrent use.
	Engine struct {
		reg      *registry.Registry
		resolver *Resolver

		mu      sync.Mutex
		version uint64
		cache   map[string]cached
	}

	cached struct {
		tree *Tree
		err  error
	}
)

// NewEngine creates an engine over reg. A nil registry selects the global one.
func NewEngine(reg *registry.Registry, opts ...ResolverOption) *Engine {
	if reg == nil {
		reg = registry.Global()
	}
	return &Engine{
		reg:      reg,
		resolver: NewResolver(opts...),
		cache:    make(map[string]cached),
	}
}

// Resolve returns the tree for the registry's current version. Repeated
// calls with the same roots and an unchanged registry return the same tree
// (or error) without resolving again.
func (e *Engine) Resolve(roots ...cmddef.Identity) (*Tree, error) {
	key := cacheKey(roots)

	e.mu.Lock()
	defer e.mu.Unlock()

	if v := e.reg.Version(); v != e.version {
		e.version = v
		clear(e.cache)
	}
	if c, ok := e.cache[key]; ok {
		return c.tree, c.err
	}

	snap := e.reg.Snapshot()
	tree, err := e.resolver.Resolve(snap, roots...)
	if snap.Version() == e.version {
		e.cache[key] = cached{tree: tree, err: err}
	}
	return tree, err
}

// Invalidate drops every memoized result.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.cache)
}

func cacheKey(roots []cmddef.Identity) string {
	var sb strings.Builder
	for _, id := range roots {
		sb.WriteString(string(id))
		sb.WriteByte(0)
	}
	return sb.String()
}

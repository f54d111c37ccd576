// SPDX-License-Identifier: MPL-2.0

// Package registry stores raw definitions keyed by identity, preserving
// registration order. Resolution never reads the live registry: it works on
// an immutable Snapshot, so registration may continue concurrently.
package registry

import (
	"errors"
	"reflect"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/source"
)

// Registry is a concurrency-safe, insertion-ordered definition store.
type Registry struct {
	mu      sync.RWMutex
	defs    *orderedmap.OrderedMap[cmddef.Identity, cmddef.Definition]
	version uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{defs: orderedmap.New[cmddef.Identity, cmddef.Definition]()}
}

// Register validates and stores definitions. Registering an identity again
// is a no-op when the definition is the same instance or has identical
// content; different content fails with a DuplicateIdentityError. Every
// valid, non-conflicting definition is stored even when others fail; the
// failures are joined.
func (r *Registry) Register(defs ...cmddef.Definition) error {
	var errs []error
	for _, def := range defs {
		if err := r.register(def); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) register(def cmddef.Definition) error {
	if isNil(def) {
		return &cmddef.InvalidDefinitionError{FieldErrors: []error{errors.New("definition must not be nil")}}
	}
	if ok, errs := def.Kind().IsValid(); !ok {
		return &cmddef.InvalidDefinitionError{Identity: def.ID(), Kind: def.Kind(), FieldErrors: errs}
	}
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.defs.Get(def.ID()); ok {
		if sameDefinition(existing, def) {
			return nil
		}
		return &cmddef.DuplicateIdentityError{Identity: def.ID(), Existing: existing.Kind(), Incoming: def.Kind()}
	}
	r.defs.Set(def.ID(), def)
	r.version++
	return nil
}

// Load registers the definitions of every source.
func (r *Registry) Load(srcs ...source.Source) error {
	defs, err := source.Multi(srcs).Definitions()
	if err != nil {
		return err
	}
	return r.Register(defs...)
}

// Lookup returns the definition registered under id.
func (r *Registry) Lookup(id cmddef.Identity) (cmddef.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defs.Get(id)
}

// AllOfKind returns the definitions of kind in registration order.
func (r *Registry) AllOfKind(kind cmddef.Kind) []cmddef.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []cmddef.Definition
	for pair := r.defs.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Kind() == kind {
			out = append(out, pair.Value)
		}
	}
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defs.Len()
}

// Version changes whenever a new definition is stored or the registry is reset.
func (r *Registry) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Reset removes every definition.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = orderedmap.New[cmddef.Identity, cmddef.Definition]()
	r.version++
}

// Snapshot returns an immutable copy of the current contents.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]cmddef.Definition, 0, r.defs.Len())
	for pair := r.defs.Oldest(); pair != nil; pair = pair.Next() {
		defs = append(defs, pair.Value)
	}
	return newSnapshot(r.version, defs)
}

func sameDefinition(a, b cmddef.Definition) bool {
	return a == b || reflect.DeepEqual(a, b)
}

func isNil(def cmddef.Definition) bool {
	if def == nil {
		return true
	}
	v := reflect.ValueOf(def)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

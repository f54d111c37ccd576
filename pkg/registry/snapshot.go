// SPDX-License-Identifier: MPL-2.0

package registry

import "github.com/cmdspec/cmdspec/pkg/cmddef"

// Snapshot is a point-in-time, read-only view of a registry.
type Snapshot struct {
	version uint64
	defs    []cmddef.Definition
	byID    map[cmddef.Identity]cmddef.Definition
	members map[cmddef.Identity][]cmddef.Definition
}

// NewSnapshot builds a snapshot directly from definitions, without
// registration checks. It is intended for tests and one-shot resolution.
func NewSnapshot(defs ...cmddef.Definition) *Snapshot {
	return newSnapshot(0, append([]cmddef.Definition(nil), defs...))
}

func newSnapshot(version uint64, defs []cmddef.Definition) *Snapshot {
	s := &Snapshot{
		version: version,
		defs:    defs,
		byID:    make(map[cmddef.Identity]cmddef.Definition, len(defs)),
		members: make(map[cmddef.Identity][]cmddef.Definition),
	}
	for _, def := range defs {
		s.byID[def.ID()] = def
		if owner := def.Base().Owner; owner != "" && def.Kind() != cmddef.KindCommand {
			s.members[owner] = append(s.members[owner], def)
		}
	}
	return s
}

// Version returns the registry version the snapshot was taken at.
func (s *Snapshot) Version() uint64 { return s.version }

// Len returns the number of definitions.
func (s *Snapshot) Len() int { return len(s.defs) }

// Lookup returns the definition with identity id.
func (s *Snapshot) Lookup(id cmddef.Identity) (cmddef.Definition, bool) {
	def, ok := s.byID[id]
	return def, ok
}

// Command returns the command with identity id.
func (s *Snapshot) Command(id cmddef.Identity) (*cmddef.Command, bool) {
	cmd, ok := s.byID[id].(*cmddef.Command)
	return cmd, ok
}

// All returns every definition in registration order.
func (s *Snapshot) All() []cmddef.Definition {
	return append([]cmddef.Definition(nil), s.defs...)
}

// Commands returns every command in registration order.
func (s *Snapshot) Commands() []*cmddef.Command {
	var out []*cmddef.Command
	for _, def := range s.defs {
		if cmd, ok := def.(*cmddef.Command); ok {
			out = append(out, cmd)
		}
	}
	return out
}

// Members returns the options, arguments and directives declared by owner,
// in registration order.
func (s *Snapshot) Members(owner cmddef.Identity) []cmddef.Definition {
	return append([]cmddef.Definition(nil), s.members[owner]...)
}

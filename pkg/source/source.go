// SPDX-License-Identifier: MPL-2.0

// Package source defines how raw definitions enter the registry. A Source
// yields definitions; it does not resolve names, parents or inheritance.
//
// Two implementations ship with the module: structtag reads Go structs and
// their field tags, and manifest reads CUE, JSON, YAML or TOML documents.
package source

import (
	"errors"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

type (
	// Source yields raw definitions.
	Source interface {
		Definitions() ([]cmddef.Definition, error)
	}

	// Func adapts a function to the Source interface.
	Func func() ([]cmddef.Definition, error)

	// Static is a fixed list of definitions.
	Static []cmddef.Definition

	// Multi concatenates several sources in order.
	Multi []Source
)

// Definitions calls f.
func (f Func) Definitions() ([]cmddef.Definition, error) { return f() }

// Definitions returns a copy of the list.
func (s Static) Definitions() ([]cmddef.Definition, error) {
	return append([]cmddef.Definition(nil), s...), nil
}

// Definitions collects definitions from every source. Errors from all
// sources are joined.
func (m Multi) Definitions() ([]cmddef.Definition, error) {
	var (
		defs []cmddef.Definition
		errs []error
	)
	for _, src := range m {
		d, err := src.Definitions()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defs = append(defs, d...)
	}
	return defs, errors.Join(errs...)
}

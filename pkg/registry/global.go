// SPDX-License-Identifier: MPL-2.0

package registry

import "github.com/cmdspec/cmdspec/pkg/source"

var global = New()

// Global returns the process-wide registry.
func Global() *Registry { return global }

// Init loads sources into the process-wide registry.
func Init(srcs ...source.Source) error { return global.Load(srcs...) }

// ResetGlobal empties the process-wide registry. Tests call it from cleanup.
func ResetGlobal() { global.Reset() }

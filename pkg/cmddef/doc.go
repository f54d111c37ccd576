// SPDX-License-Identifier: MPL-2.0

// Package cmddef defines the declarative metadata model for command trees:
// commands, options, arguments and directives, together with the naming
// conventions, arity ranges and typed errors shared by every resolution stage.
//
// Definitions are plain data. They are produced by a source (struct tags,
// manifests, or hand-built values), registered once, and never mutated by the
// resolution pipeline.
package cmddef

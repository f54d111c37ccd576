// SPDX-License-Identifier: MPL-2.0

// Package resolve assembles raw definitions into an immutable command tree.
//
// Resolution runs in fixed stages over a registry snapshot:
//
//  1. link: settle every command's parent from nesting, explicit parents
//     and children lists, rejecting conflicting or dangling references
//  2. cycle checks over parent and base links
//  3. build: resolve conventions, merge inherited members, generate names
//     and infer arity and required-ness
//  4. assembly hooks, which may attach further commands
//  5. propagation of global options to descendants
//  6. validation of name and alias uniqueness per command scope
//
// Any failure aborts resolution; a partial tree is never returned.
package resolve

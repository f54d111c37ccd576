// SPDX-License-Identifier: MPL-2.0

// Package cobrabind hands a resolved command tree to cobra and pflag.
//
// Build creates one cobra.Command per resolved node. Options become flags,
// argument arities become positional argument checks and allowed values
// drive shell completion. Parsed input is reported to a Handler as an
// Invocation holding the raw string values keyed by effective identity;
// converting them to typed values is left to the caller.
//
// Directives are bracketed tokens ("[debug]", "[env:FOO=1]") placed before
// any other argument. Execute strips them before cobra parses the rest.
package cobrabind

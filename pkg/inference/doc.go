// SPDX-License-Identifier: MPL-2.0

// Package inference derives the arity and required-ness of options and
// arguments from their declared value shape and initializer.
//
// Shapes are inspected through the Inspector interface. DefaultInspector
// understands both reflect.Type values and textual Go type expressions, so
// struct-tag and manifest sources share the same rules.
package inference

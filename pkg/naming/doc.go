// SPDX-License-Identifier: MPL-2.0

// Package naming derives display names and short-form aliases from declared
// identifiers.
//
// Generation strips a kind-specific suffix ("BuildCommand" becomes "Build"),
// splits the remainder into words, and re-joins the words in the requested
// casing. Options additionally receive a name prefix such as "--". Short-form
// aliases are the first letters of the generated words ("build-output-path"
// becomes "bop").
package naming

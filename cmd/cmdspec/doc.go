// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the cmdspec CLI: resolving manifests into command trees,
// validating them, previewing generated names and dry-running command lines.
package cmd

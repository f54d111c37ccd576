// SPDX-License-Identifier: MPL-2.0

// Package types defines small validated value types shared by the command
// model, the manifest loader and the CLI. It imports only the standard
// library; domain packages import it, never the other way around.
package types

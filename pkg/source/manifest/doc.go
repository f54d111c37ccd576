// SPDX-License-Identifier: MPL-2.0

// Package manifest reads command definitions from data files.
//
// Manifests are written in CUE, JSON, YAML or TOML; the format follows the
// file extension. Every format is validated against the embedded #Manifest
// schema before it is converted into definitions:
//
//	version: "1.0.0"
//	commands: [{
//		id:          "app.Root"
//		description: "Example tool"
//		options: [{member: "Verbose", type: "bool", global: true}]
//		commands: [{
//			id: "app.BuildCommand"
//			arguments: [{member: "Targets", type: "[]string"}]
//		}]
//	}]
//
// Nested commands are contained by the command they appear in.
package manifest

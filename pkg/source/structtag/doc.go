// SPDX-License-Identifier: MPL-2.0

// Package structtag reads command definitions from Go structs.
//
// A struct becomes a command when it is added to a Source, nested in another
// command through a `command` tagged field, or embeds the Command marker.
// Command metadata lives in the marker's tags:
//
//	type BuildCommand struct {
//		structtag.Command `desc:"Build the project" aliases:"b,mk"`
//		Common
//
//		OutputPath string   `option:"" desc:"Where to write" default:"./out"`
//		Targets    []string `argument:""`
//		Debug      bool     `directive:""`
//		Clean      *CleanCommand `command:""`
//	}
//
// Other anonymous embedded structs (Common above) are bases: they are
// registered as abstract commands whose members the embedding command
// inherits.
package structtag

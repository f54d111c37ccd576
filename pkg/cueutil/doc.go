// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates documents against embedded CUE schemas.
//
// Parsing follows three steps: compile the schema once, compile the
// document and unify it with a schema definition, then validate and decode
// the result into a Go value. JSON documents are valid CUE and go through
// the same path, which lets YAML and TOML inputs be validated after they are
// bridged to JSON.
//
//	//go:embed manifest_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[document](schemaBytes, data, "#Manifest",
//	    cueutil.WithFilename("cmds.cue"))
package cueutil

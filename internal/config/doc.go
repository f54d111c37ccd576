// SPDX-License-Identifier: MPL-2.0

// Package config handles cmdspec configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/cmdspec/config.cue (~/Library/Application
// Support/cmdspec/config.cue on macOS, %APPDATA%\cmdspec\config.cue on Windows), validated
// against the embedded config_schema.cue, and then overridden by CMDSPEC_* environment
// variables. It carries the default naming conventions handed to the resolver, UI settings
// and the default output format of the CLI.
package config

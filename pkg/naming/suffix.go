// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"strings"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

var commandSuffixes = []string{
	"RootCliCommand", "RootCommand", "SubCliCommand", "SubCommand", "CliCommand", "Command", "Cli",
}

// memberSuffixes builds the suffix list of a member kind from its word
// ("Option", "Argument", "Directive").
func memberSuffixes(word string) []string {
	return []string{
		"RootCliCommand" + word, "RootCommand" + word, "SubCliCommand" + word, "SubCommand" + word,
		"CliCommand" + word, "Command" + word, "Cli" + word, word,
	}
}

var suffixesByKind = map[cmddef.Kind][]string{
	cmddef.KindCommand:   commandSuffixes,
	cmddef.KindOption:    memberSuffixes("Option"),
	cmddef.KindArgument:  memberSuffixes("Argument"),
	cmddef.KindDirective: memberSuffixes("Directive"),
}

// Suffixes returns the conventional identifier suffixes of kind.
func Suffixes(kind cmddef.Kind) []string {
	return append([]string(nil), suffixesByKind[kind]...)
}

// StripSuffix removes the longest case-insensitive match from suffixes.
// A suffix that spans the whole identifier is never stripped.
func StripSuffix(identifier string, suffixes []string) string {
	lower := strings.ToLower(identifier)
	best := 0
	for _, suffix := range suffixes {
		if len(suffix) <= best || len(suffix) >= len(identifier) {
			continue
		}
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			best = len(suffix)
		}
	}
	return identifier[:len(identifier)-best]
}

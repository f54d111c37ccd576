// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"strings"
	"unicode/utf8"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

type (
	// Rules are the resolved naming settings applied to one definition.
	Rules struct {
		Casing          cmddef.Casing
		NamePrefix      cmddef.Prefix
		ShortFormPrefix cmddef.Prefix
		// AutoName derives names from identifiers when no explicit name is set.
		AutoName bool
		// AutoShortForm generates a short-form alias when no explicit
		// aliases are set.
		AutoShortForm  bool
		PreserveSpaces bool
	}

	// Result is the generated name and aliases of one definition.
	Result struct {
		Name    string
		Aliases []string
	}
)

// Generate returns the effective name and aliases of a definition.
func Generate(kind cmddef.Kind, c *cmddef.Common, rules Rules) Result {
	name := GenerateName(kind, c.IdentifierOrDefault(), c.Name, rules)
	return Result{Name: name, Aliases: GenerateAliases(kind, name, c.Aliases, rules)}
}

// GenerateName derives the display name of an identifier. An explicit name
// replaces generation. Options always carry a prefix: the resolved name
// prefix is prepended unless the name already starts with "--", "-" or "/".
func GenerateName(kind cmddef.Kind, identifier, explicit string, rules Rules) string {
	var name string
	switch {
	case explicit != "":
		name = explicit
	case kind == cmddef.KindOption && cmddef.HasPrefix(identifier):
		name = identifier
	case !rules.AutoName:
		name = identifier
	default:
		stripped := StripSuffix(identifier, suffixesByKind[kind])
		name = Convert(stripped, rules.Casing, WithPreserveSpaces(rules.PreserveSpaces))
	}

	if kind == cmddef.KindOption && name != "" && !cmddef.HasPrefix(name) {
		name = string(rules.NamePrefix) + name
	}
	return name
}

// GenerateAliases returns the aliases of a definition named name. Explicit
// aliases (any non-nil slice) are used as declared; for options, those
// without a prefix receive the short-form prefix when a single character
// long and the name prefix otherwise. Without explicit aliases, commands and
// options receive one generated short-form alias.
func GenerateAliases(kind cmddef.Kind, name string, explicit []string, rules Rules) []string {
	if explicit != nil {
		aliases := make([]string, 0, len(explicit))
		for _, a := range explicit {
			if kind == cmddef.KindOption && !cmddef.HasPrefix(a) {
				if utf8.RuneCountInString(a) == 1 {
					a = string(rules.ShortFormPrefix) + a
				} else {
					a = string(rules.NamePrefix) + a
				}
			}
			aliases = appendUnique(aliases, name, a)
		}
		return aliases
	}

	if !rules.AutoShortForm || (kind != cmddef.KindCommand && kind != cmddef.KindOption) {
		return nil
	}
	short := ShortForm(kind, name, rules)
	if short == "" || short == name {
		return nil
	}
	return []string{short}
}

// ShortForm returns the first letter of each word of name, prefixed with
// the short-form prefix for options. The name's own prefix is ignored.
func ShortForm(kind cmddef.Kind, name string, rules Rules) string {
	bare := name
	if kind == cmddef.KindOption {
		_, bare = cmddef.SplitPrefix(name)
	}

	var sb strings.Builder
	for _, w := range Split(bare) {
		r, _ := utf8.DecodeRuneInString(w.Text)
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return ""
	}
	if kind == cmddef.KindOption {
		return string(rules.ShortFormPrefix) + sb.String()
	}
	return sb.String()
}

func appendUnique(aliases []string, name, alias string) []string {
	if alias == name {
		return aliases
	}
	for _, existing := range aliases {
		if existing == alias {
			return aliases
		}
	}
	return append(aliases, alias)
}

// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

type (
	// ConvertOption configures Convert.
	ConvertOption func(*convertOptions)

	convertOptions struct {
		preserveSpaces bool
	}
)

// WithPreserveSpaces makes lower, upper and title casing join words that were
// separated by whitespace in the source with a single space.
func WithPreserveSpaces(preserve bool) ConvertOption {
	return func(o *convertOptions) { o.preserveSpaces = preserve }
}

// Convert re-cases s according to casing. CasingNone and the unset casing
// return s unchanged.
func Convert(s string, casing cmddef.Casing, opts ...ConvertOption) string {
	var o convertOptions
	for _, opt := range opts {
		opt(&o)
	}

	if casing == "" || casing == cmddef.CasingNone {
		return s
	}

	words := Split(s)
	if len(words) == 0 {
		return ""
	}

	switch casing {
	case cmddef.CasingKebab:
		return joinMapped(words, "-", strings.ToLower)
	case cmddef.CasingSnake:
		return joinMapped(words, "_", strings.ToLower)
	case cmddef.CasingPascal:
		return joinMapped(words, "", title)
	case cmddef.CasingCamel:
		var sb strings.Builder
		sb.WriteString(strings.ToLower(words[0].Text))
		for _, w := range words[1:] {
			sb.WriteString(title(w.Text))
		}
		return sb.String()
	case cmddef.CasingLower:
		return joinSpaced(words, o.preserveSpaces, strings.ToLower)
	case cmddef.CasingUpper:
		return joinSpaced(words, o.preserveSpaces, strings.ToUpper)
	case cmddef.CasingTitle:
		return joinSpaced(words, o.preserveSpaces, title)
	default:
		return s
	}
}

func joinMapped(words []Word, sep string, fn func(string) string) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fn(w.Text)
	}
	return strings.Join(parts, sep)
}

func joinSpaced(words []Word, preserveSpaces bool, fn func(string) string) string {
	var sb strings.Builder
	for _, w := range words {
		if preserveSpaces && w.SpaceBefore {
			sb.WriteByte(' ')
		}
		sb.WriteString(fn(w.Text))
	}
	return sb.String()
}

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// SPDX-License-Identifier: MPL-2.0

package cobrabind

import (
	"context"
	"strings"
)

type (
	// DirectiveToken is one bracketed token from the command line.
	DirectiveToken struct {
		Name  string
		Value string
		// HasValue reports whether the token carried a ":value" part.
		HasValue bool
	}

	directivesKey struct{}
)

// SplitDirectives removes the leading directive tokens from args. A token is
// a directive when it starts with '[', ends with ']' and has a non-empty
// name; scanning stops at the first other token.
func SplitDirectives(args []string) ([]DirectiveToken, []string) {
	var tokens []DirectiveToken
	for i, arg := range args {
		tok, ok := parseDirective(arg)
		if !ok {
			return tokens, args[i:]
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func parseDirective(arg string) (DirectiveToken, bool) {
	if len(arg) < 3 || arg[0] != '[' || arg[len(arg)-1] != ']' {
		return DirectiveToken{}, false
	}
	body := arg[1 : len(arg)-1]
	name, value, hasValue := strings.Cut(body, ":")
	if name == "" || strings.ContainsAny(name, " []") {
		return DirectiveToken{}, false
	}
	return DirectiveToken{Name: name, Value: value, HasValue: hasValue}, true
}

func withDirectives(ctx context.Context, tokens []DirectiveToken) context.Context {
	return context.WithValue(ctx, directivesKey{}, tokens)
}

func directivesFrom(ctx context.Context) []DirectiveToken {
	if ctx == nil {
		return nil
	}
	tokens, _ := ctx.Value(directivesKey{}).([]DirectiveToken)
	return tokens
}

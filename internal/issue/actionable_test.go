// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("load manifest").
		WithResource("tool.yaml").
		WithSuggestion("first").
		WithSuggestions("second", "third").
		Wrap(cause).
		Build()

	if ae.Operation != "load manifest" || ae.Resource != "tool.yaml" {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 3 {
		t.Errorf("len(Suggestions) = %d, want 3", len(ae.Suggestions))
	}
	if !errors.Is(ae, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if got, want := ae.Error(), "failed to load manifest: tool.yaml: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorContext_NoOperation(t *testing.T) {
	t.Parallel()

	if ae := NewErrorContext().Wrap(errors.New("x")).Build(); ae != nil {
		t.Errorf("Build() = %v, want nil", ae)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want nil interface", err)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
	ae := WrapWithContext(errors.New("bad"), "resolve command tree", "app.Root")
	if got := ae.Error(); got != "failed to resolve command tree: app.Root: bad" {
		t.Errorf("Error() = %q", got)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	joined := errors.Join(
		&cmddef.DuplicateSymbolError{Scope: "app.Root", Kind: cmddef.KindOption, Symbol: "-o", Identities: []cmddef.Identity{"app.Root.Output", "app.Root.Overwrite"}},
		&cmddef.NotARootError{Identity: "app.Child", Parent: "app.Root"},
	)

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load config"},
			contains: []string{"failed to load config"},
		},
		{
			name: "suggestions",
			err: &ActionableError{
				Operation:   "load manifest",
				Resource:    "./tool.cue",
				Suggestions: []string{"Check the path", "Check permissions"},
			},
			contains: []string{"failed to load manifest: ./tool.cue", "• Check the path", "• Check permissions"},
		},
		{
			name:     "joined causes on one line",
			err:      &ActionableError{Operation: "resolve command tree", Cause: joined},
			contains: []string{`"-o"`, "; ", "app.Child"},
			excludes: []string{"Error chain:"},
		},
		{
			name:     "verbose chain",
			err:      &ActionableError{Operation: "parse", Cause: &ActionableError{Operation: "read", Cause: errors.New("eof")}},
			verbose:  true,
			contains: []string{"Error chain:", "1. failed to read: eof", "2. eof"},
		},
		{
			name:     "verbose joined chain",
			err:      &ActionableError{Operation: "resolve command tree", Cause: joined},
			verbose:  true,
			contains: []string{"1. 2 errors", "2. ", cmddef.ErrDuplicateSymbol.Error(), cmddef.ErrNotARoot.Error()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestActionableError_Markdown(t *testing.T) {
	t.Parallel()

	ae := NewErrorContext().
		WithOperation("resolve command tree").
		WithResource("tool.yaml").
		WithSuggestion("Rename one option").
		Wrap(&cmddef.DuplicateSymbolError{Scope: "app.Root", Kind: cmddef.KindOption, Symbol: "-o"}).
		Build()

	md := ae.Markdown()
	for _, want := range []string{"# Failed to resolve command tree", "`tool.yaml`", "## Suggestions", "- Rename one option", "# Duplicate symbol!"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q\ngot:\n%s", want, md)
		}
	}
	if ae.Issue() == nil || ae.Issue().Id() != DuplicateSymbolId {
		t.Errorf("Issue() = %v, want DuplicateSymbolId", ae.Issue())
	}

	out, err := ae.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Duplicate symbol") {
		t.Errorf("Render() output missing issue title:\n%s", out)
	}
}

// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/cobrabind"
	"github.com/cmdspec/cmdspec/pkg/source/manifest"
)

func TestValues_OrderedAndComplete(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(InvalidInputId) {
		t.Fatalf("len(Values()) = %d, want %d", len(values), InvalidInputId)
	}
	for i, is := range values {
		if is.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, is.Id(), i+1)
		}
		if strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", is.Id())
		}
		if Get(is.Id()) != is {
			t.Errorf("Get(%d) does not return the listed issue", is.Id())
		}
	}
}

func TestForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Id
	}{
		{"cycle", &cmddef.CyclicCommandGraphError{Identity: "a", Relation: cmddef.RelationParent}, CyclicCommandGraphId},
		{"ambiguous parent", &cmddef.AmbiguousParentError{Identity: "a"}, AmbiguousParentId},
		{"duplicate identity", &cmddef.DuplicateIdentityError{Identity: "a"}, DuplicateIdentityId},
		{"duplicate symbol", &cmddef.DuplicateSymbolError{Scope: "a", Symbol: "-o"}, DuplicateSymbolId},
		{"unsupported shape", &cmddef.UnsupportedShapeError{Identity: "a.B", Shape: "chan int"}, UnsupportedShapeId},
		{"unresolved", &cmddef.UnresolvedReferenceError{Identity: "a", Reference: "b"}, UnresolvedReferenceId},
		{"not a root", &cmddef.NotARootError{Identity: "a", Parent: "b"}, NotARootId},
		{"version", fmt.Errorf("load: %w", manifest.ErrUnsupportedVersion), UnsupportedManifestVersionId},
		{"input", &cobrabind.InputError{Command: "a", Symbol: "x", Reason: "bad"}, InvalidInputId},
		{"missing file", fmt.Errorf("open: %w", fs.ErrNotExist), ManifestNotFoundId},
		{"joined takes first match", errors.Join(errors.New("other"), &cmddef.NotARootError{Identity: "a"}), NotARootId},
		{"config", NewErrorContext().WithOperation(OpLoadConfig).Wrap(fs.ErrNotExist).BuildError(), ConfigLoadFailedId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ForError(tt.err)
			if got == nil {
				t.Fatalf("ForError() = nil, want issue %d", tt.want)
			}
			if got.Id() != tt.want {
				t.Errorf("ForError().Id() = %d, want %d", got.Id(), tt.want)
			}
		})
	}

	if ForError(nil) != nil || ForError(errors.New("plain")) != nil {
		t.Error("ForError should return nil for nil and unknown errors")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	is := &Issue{id: NotARootId, mdMsg: "# Title", docLinks: []HttpLink{"https://example.com/roots"}}
	out, err := is.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"Title", "See also", "example.com/roots"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}

	links := is.DocLinks()
	links[0] = "changed"
	if is.DocLinks()[0] == "changed" {
		t.Error("DocLinks() should return a copy")
	}
}

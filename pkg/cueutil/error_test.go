// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "test.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with the file name", func(t *testing.T) {
		t.Parallel()

		original := errors.New("some error")
		err := FormatError(original, "test.cue")
		if !errors.Is(err, original) {
			t.Errorf("error should wrap the original, got %v", err)
		}
		if !strings.HasPrefix(err.Error(), "test.cue: ") {
			t.Errorf("error should start with the file name, got %v", err)
		}
		if errors.Is(err, ErrValidation) {
			t.Errorf("non-CUE error must not be reported as a validation failure: %v", err)
		}
	})

	t.Run("wrapped CUE error becomes a validation error", func(t *testing.T) {
		t.Parallel()

		err := FormatError(fmt.Errorf("decode: %w", cueerrors.Newf(token.NoPos, "value %d out of range", 7)), "test.cue")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if len(verr.Issues) != 1 || verr.Issues[0].Message != "value 7 out of range" {
			t.Errorf("issues = %+v, want one with the CUE message", verr.Issues)
		}
	})
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	single := &ValidationError{File: "a.cue", Issues: []Issue{{Path: "commands[0].id", Message: "incomplete value"}}}
	if got, want := single.Error(), "a.cue: commands[0].id: incomplete value"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(single, ErrValidation) {
		t.Error("ValidationError should wrap ErrValidation")
	}

	multi := &ValidationError{File: "a.cue", Issues: []Issue{{Message: "first"}, {Path: "x", Message: "second"}}}
	if got := multi.Error(); !strings.Contains(got, "validation failed:\n  first\n  x: second") {
		t.Errorf("Error() = %q", got)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{name: "empty path", path: nil, expected: ""},
		{name: "single element", path: []string{"version"}, expected: "version"},
		{name: "nested path", path: []string{"conventions", "casing"}, expected: "conventions.casing"},
		{name: "array index", path: []string{"commands", "0", "options", "2", "type"}, expected: "commands[0].options[2].type"},
		{name: "leading number is a field", path: []string{"0", "name"}, expected: "0.name"},
		{name: "schema definition is dropped", path: []string{"#Manifest", "commands", "0", "id"}, expected: "commands[0].id"},
		{name: "definition alone", path: []string{"#Config"}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

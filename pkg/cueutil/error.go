// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrValidation is returned when a document does not satisfy its schema.
var ErrValidation = errors.New("schema validation failed")

type (
	// ValidationError lists the schema violations found in one document.
	ValidationError struct {
		File   string
		Issues []Issue
	}

	// Issue is one violation. Path uses JSON-path notation
	// ("commands[0].options[1].type").
	Issue struct {
		Path    string
		Message string
	}
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("%s: %s", e.File, e.Issues[0])
	}
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
}

// Unwrap returns ErrValidation for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrValidation }

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// FormatError converts a CUE error into a ValidationError. Errors that do
// not come from CUE are wrapped with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}
	var cueErr cueerrors.Error
	if !errors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", file, err)
	}

	verr := &ValidationError{File: file}
	for _, e := range cueerrors.Errors(cueErr) {
		verr.Issues = append(verr.Issues, Issue{
			Path:    formatPath(cueerrors.Path(e)),
			Message: issueMessage(e),
		})
	}
	return verr
}

// issueMessage returns the message of e without its position or path.
func issueMessage(e cueerrors.Error) string {
	format, args := e.Msg()
	if msg := strings.TrimSpace(fmt.Sprintf(format, args...)); msg != "" {
		return msg
	}
	msg := e.Error()
	if raw := strings.Join(cueerrors.Path(e), "."); raw != "" {
		msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, raw), ":"))
	}
	return msg
}

// formatPath turns ["commands", "0", "name"] into "commands[0].name". A
// leading schema definition such as "#Manifest" is dropped.
func formatPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	var sb strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			sb.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

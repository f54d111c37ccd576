// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/cobrabind"
	"github.com/cmdspec/cmdspec/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor classifies err: definition problems exit with 3, rejected
// command lines with 2 and everything else with 1.
func exitCodeFor(err error) types.ExitCode {
	switch {
	case err == nil:
		return types.ExitSuccess
	case errors.Is(err, cobrabind.ErrInvalidInput):
		return types.ExitUsage
	case errors.Is(err, cmddef.ErrDuplicateIdentity),
		errors.Is(err, cmddef.ErrCyclicCommandGraph),
		errors.Is(err, cmddef.ErrAmbiguousParent),
		errors.Is(err, cmddef.ErrDuplicateSymbol),
		errors.Is(err, cmddef.ErrUnsupportedShape),
		errors.Is(err, cmddef.ErrUnresolvedReference),
		errors.Is(err, cmddef.ErrInvalidDefinition),
		errors.Is(err, cmddef.ErrNotARoot),
		errors.Is(err, cobrabind.ErrFlagConflict):
		return types.ExitDefinition
	default:
		return types.ExitFailure
	}
}

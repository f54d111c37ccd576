// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// InitializerNone means the member declares no initial value.
	InitializerNone Initializer = "none"
	// InitializerNull means the member is explicitly initialized to null.
	InitializerNull Initializer = "null"
	// InitializerValue means the member is initialized to a concrete value.
	InitializerValue Initializer = "value"
)

// ErrInvalidInitializer is returned when an Initializer value is not recognized.
var ErrInvalidInitializer = errors.New("invalid initializer")

type (
	// Shape describes the declared value type of a member. Sources that work
	// with Go values set Type; textual sources set Expr to a type expression
	// such as "bool", "*int", "[]string" or "time.Duration".
	Shape struct {
		Expr string
		Type reflect.Type
	}

	// Initializer records how a member's declaration initializes its value.
	// The zero value is equivalent to InitializerNone.
	Initializer string

	// InvalidInitializerError is returned when an Initializer value is not
	// recognized. It wraps ErrInvalidInitializer for errors.Is() compatibility.
	InvalidInitializerError struct {
		Value Initializer
	}
)

// ShapeOf returns a shape for a type expression.
func ShapeOf(expr string) Shape { return Shape{Expr: expr} }

// ShapeFor returns the shape of Go type T.
func ShapeFor[T any]() Shape { return Shape{Type: reflect.TypeFor[T]()} }

// ShapeOfType returns a shape for a reflected type.
func ShapeOfType(t reflect.Type) Shape { return Shape{Type: t} }

// IsZero reports whether the shape carries neither a type nor an expression.
func (s Shape) IsZero() bool { return s.Type == nil && s.Expr == "" }

// String renders the shape as a Go type expression.
func (s Shape) String() string {
	if s.Type != nil {
		return s.Type.String()
	}
	return s.Expr
}

// String returns the initializer name.
func (i Initializer) String() string {
	if i == "" {
		return string(InitializerNone)
	}
	return string(i)
}

// IsValid returns whether the initializer is unset or a recognized value.
func (i Initializer) IsValid() (bool, []error) {
	switch i {
	case "", InitializerNone, InitializerNull, InitializerValue:
		return true, nil
	default:
		return false, []error{&InvalidInitializerError{Value: i}}
	}
}

// Error implements the error interface.
func (e *InvalidInitializerError) Error() string {
	return fmt.Sprintf("invalid initializer %q (valid: none, null, value)", e.Value)
}

// Unwrap returns ErrInvalidInitializer for errors.Is() compatibility.
func (e *InvalidInitializerError) Unwrap() error { return ErrInvalidInitializer }

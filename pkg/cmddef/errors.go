// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RelationParent marks the parent/container relation.
	RelationParent Relation = "parent"
	// RelationBase marks the base (inheritance) relation.
	RelationBase Relation = "base"
	// RelationChild marks a children-list reference.
	RelationChild Relation = "child"
	// RelationContainer marks a lexical nesting reference.
	RelationContainer Relation = "container"
	// RelationRoot marks a requested root.
	RelationRoot Relation = "root"
)

var (
	// ErrInvalidDefinition is returned when a definition fails its own checks.
	ErrInvalidDefinition = errors.New("invalid definition")
	// ErrDuplicateIdentity is returned when two different definitions share an identity.
	ErrDuplicateIdentity = errors.New("duplicate definition identity")
	// ErrCyclicCommandGraph is returned when parent or base links form a cycle.
	ErrCyclicCommandGraph = errors.New("cyclic command graph")
	// ErrAmbiguousParent is returned when a command has conflicting parent claims.
	ErrAmbiguousParent = errors.New("ambiguous parent")
	// ErrDuplicateSymbol is returned when names or aliases collide within a scope.
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	// ErrUnsupportedShape is returned when a value shape has no arity mapping.
	ErrUnsupportedShape = errors.New("unsupported value shape")
	// ErrUnresolvedReference is returned when a referenced identity cannot be used.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrNotARoot is returned when a requested root has a parent.
	ErrNotARoot = errors.New("not a root command")
)

type (
	// Relation names the kind of link an error refers to.
	Relation string

	// InvalidDefinitionError is returned when a definition fails validation.
	// It unwraps to ErrInvalidDefinition and to each field error.
	InvalidDefinitionError struct {
		Identity    Identity
		Kind        Kind
		FieldErrors []error
	}

	// DuplicateIdentityError is returned when a registration conflicts with
	// an existing, different definition of the same identity.
	DuplicateIdentityError struct {
		Identity Identity
		Existing Kind
		Incoming Kind
	}

	// CyclicCommandGraphError is returned when following parent or base
	// links from Identity revisits a command. Chain lists the cycle, starting
	// and ending with Identity.
	CyclicCommandGraphError struct {
		Identity Identity
		Relation Relation
		Chain    []Identity
	}

	// ParentClaim is one source of a parent relationship.
	ParentClaim struct {
		Parent Identity
		Via    Relation
	}

	// AmbiguousParentError is returned when a command is claimed by
	// conflicting parents.
	AmbiguousParentError struct {
		Identity Identity
		Claims   []ParentClaim
	}

	// DuplicateSymbolError is returned when two entries of the same symbol
	// table within Scope share a name or alias.
	DuplicateSymbolError struct {
		Scope      Identity
		Kind       Kind
		Symbol     string
		Identities []Identity
	}

	// UnsupportedShapeError is returned when a member's shape cannot be
	// mapped to an arity, or a directive's shape is not allowed.
	UnsupportedShapeError struct {
		Identity Identity
		Shape    string
		Reason   string
	}

	// UnresolvedReferenceError is returned when a definition refers to an
	// identity that is unknown, of the wrong kind, or abstract.
	UnresolvedReferenceError struct {
		Identity  Identity
		Reference Identity
		Relation  Relation
		Reason    string
	}

	// NotARootError is returned when a requested root has a parent.
	NotARootError struct {
		Identity Identity
		Parent   Identity
	}
)

func newInvalidDefinitionError(def Definition, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &InvalidDefinitionError{Identity: def.ID(), Kind: def.Kind(), FieldErrors: errs}
}

// Error implements the error interface.
func (e *InvalidDefinitionError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid %s definition %q: %s", e.Kind, e.Identity, strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidDefinition followed by the field errors.
func (e *InvalidDefinitionError) Unwrap() []error {
	return append([]error{ErrInvalidDefinition}, e.FieldErrors...)
}

// Error implements the error interface.
func (e *DuplicateIdentityError) Error() string {
	if e.Existing != e.Incoming {
		return fmt.Sprintf("identity %q is already registered as a %s, cannot register a %s", e.Identity, e.Existing, e.Incoming)
	}
	return fmt.Sprintf("identity %q is already registered with a different %s definition", e.Identity, e.Existing)
}

// Unwrap returns ErrDuplicateIdentity for errors.Is() compatibility.
func (e *DuplicateIdentityError) Unwrap() error { return ErrDuplicateIdentity }

// Error implements the error interface.
func (e *CyclicCommandGraphError) Error() string {
	return fmt.Sprintf("command %q is part of a %s cycle: %s", e.Identity, e.Relation, joinIdentities(e.Chain, " -> "))
}

// Unwrap returns ErrCyclicCommandGraph for errors.Is() compatibility.
func (e *CyclicCommandGraphError) Unwrap() error { return ErrCyclicCommandGraph }

// Error implements the error interface.
func (e *AmbiguousParentError) Error() string {
	claims := make([]string, len(e.Claims))
	for i, c := range e.Claims {
		claims[i] = fmt.Sprintf("%q (%s)", c.Parent, c.Via)
	}
	return fmt.Sprintf("command %q has conflicting parents: %s", e.Identity, strings.Join(claims, ", "))
}

// Unwrap returns ErrAmbiguousParent for errors.Is() compatibility.
func (e *AmbiguousParentError) Unwrap() error { return ErrAmbiguousParent }

// Error implements the error interface.
func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("%s symbol %q is declared more than once in %q by %s", e.Kind, e.Symbol, e.Scope, joinIdentities(e.Identities, ", "))
}

// Unwrap returns ErrDuplicateSymbol for errors.Is() compatibility.
func (e *DuplicateSymbolError) Unwrap() error { return ErrDuplicateSymbol }

// Error implements the error interface.
func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("member %q has unsupported shape %q: %s", e.Identity, e.Shape, e.Reason)
}

// Unwrap returns ErrUnsupportedShape for errors.Is() compatibility.
func (e *UnsupportedShapeError) Unwrap() error { return ErrUnsupportedShape }

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%q references %s %q: %s", e.Identity, e.Relation, e.Reference, e.Reason)
}

// Unwrap returns ErrUnresolvedReference for errors.Is() compatibility.
func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }

// Error implements the error interface.
func (e *NotARootError) Error() string {
	return fmt.Sprintf("command %q is not a root: it has parent %q", e.Identity, e.Parent)
}

// Unwrap returns ErrNotARoot for errors.Is() compatibility.
func (e *NotARootError) Unwrap() error { return ErrNotARoot }

func joinIdentities(ids []Identity, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, sep)
}

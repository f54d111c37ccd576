// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidKind is returned when a kind name is not recognized.
var ErrInvalidKind = errors.New("invalid definition kind")

const (
	// KindCommand identifies command definitions.
	KindCommand Kind = "command"
	// KindOption identifies named option definitions.
	KindOption Kind = "option"
	// KindArgument identifies positional argument definitions.
	KindArgument Kind = "argument"
	// KindDirective identifies directive definitions.
	KindDirective Kind = "directive"
)

const (
	// KindSetCommands selects commands.
	KindSetCommands KindSet = 1 << iota
	// KindSetOptions selects options.
	KindSetOptions
	// KindSetArguments selects arguments.
	KindSetArguments
	// KindSetDirectives selects directives.
	KindSetDirectives

	// KindSetNone selects nothing.
	KindSetNone KindSet = 0
	// KindSetAll selects every kind.
	KindSetAll = KindSetCommands | KindSetOptions | KindSetArguments | KindSetDirectives
)

type (
	// Identity is the stable, unique key of a definition. Commands use the
	// name of their declaring type; members use "<owner>.<member>".
	Identity string

	// Kind is the category of a definition.
	Kind string

	// KindSet is a bit set of kinds, used by the auto-generation conventions.
	KindSet uint8

	// InvalidKindError is returned when a kind name cannot be parsed.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value string
	}
)

// allKinds lists kinds in their canonical order.
var allKinds = []Kind{KindCommand, KindOption, KindArgument, KindDirective}

// String returns the identity as a plain string.
func (id Identity) String() string { return string(id) }

// IsValid returns whether the identity is non-empty and free of whitespace.
func (id Identity) IsValid() (bool, []error) {
	if id == "" {
		return false, []error{errors.New("identity must not be empty")}
	}
	if strings.IndexFunc(string(id), unicode.IsSpace) >= 0 {
		return false, []error{fmt.Errorf("identity %q must not contain whitespace", id)}
	}
	return true, nil
}

// Member returns the identity of the named member owned by id.
func (id Identity) Member(name string) Identity {
	return Identity(string(id) + "." + name)
}

// Leaf returns the last segment of the identity, split on '.' or '/'.
func (id Identity) Leaf() string {
	s := string(id)
	if i := strings.LastIndexAny(s, "./"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// IsValid returns whether the kind is one of the four known kinds.
func (k Kind) IsValid() (bool, []error) {
	if k.Bit() == KindSetNone {
		return false, []error{&InvalidKindError{Value: string(k)}}
	}
	return true, nil
}

// Bit returns the KindSet bit of the kind, or KindSetNone for unknown kinds.
func (k Kind) Bit() KindSet {
	switch k {
	case KindCommand:
		return KindSetCommands
	case KindOption:
		return KindSetOptions
	case KindArgument:
		return KindSetArguments
	case KindDirective:
		return KindSetDirectives
	default:
		return KindSetNone
	}
}

// Has reports whether the set contains kind k.
func (s KindSet) Has(k Kind) bool { return s&k.Bit() != 0 }

// Kinds returns the members of the set in canonical order.
func (s KindSet) Kinds() []Kind {
	var kinds []Kind
	for _, k := range allKinds {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Ptr returns a pointer to a copy of s, for use in convention fields.
func (s KindSet) Ptr() *KindSet { return &s }

// String renders the set as a comma separated list ("none" when empty).
func (s KindSet) String() string {
	switch s {
	case KindSetNone:
		return "none"
	case KindSetAll:
		return "all"
	}
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ",")
}

// ParseKindSet parses kind names ("command", "options", "all", "none", ...)
// into a set. Plural forms are accepted.
func ParseKindSet(names []string) (KindSet, error) {
	var set KindSet
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch name {
		case "":
			continue
		case "all":
			set |= KindSetAll
			continue
		case "none":
			continue
		}
		k := Kind(strings.TrimSuffix(name, "s"))
		if k.Bit() == KindSetNone {
			return KindSetNone, &InvalidKindError{Value: raw}
		}
		set |= k.Bit()
	}
	return set, nil
}

// Error implements the error interface.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid kind %q (valid: command, option, argument, directive, all, none)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

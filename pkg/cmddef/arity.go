// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unbounded marks an arity without an upper limit.
const Unbounded = -1

// ErrInvalidArity is returned when an arity range is malformed.
var ErrInvalidArity = errors.New("invalid arity")

var (
	// ArityZero accepts no values (pure switches).
	ArityZero = Arity{Min: 0, Max: 0}
	// ArityZeroOrOne accepts an optional single value.
	ArityZeroOrOne = Arity{Min: 0, Max: 1}
	// ArityExactlyOne accepts exactly one value.
	ArityExactlyOne = Arity{Min: 1, Max: 1}
	// ArityZeroOrMore accepts any number of values.
	ArityZeroOrMore = Arity{Min: 0, Max: Unbounded}
	// ArityOneOrMore accepts at least one value.
	ArityOneOrMore = Arity{Min: 1, Max: Unbounded}
)

var namedArities = []struct {
	name  string
	arity Arity
}{
	{"zero", ArityZero},
	{"zero-or-one", ArityZeroOrOne},
	{"exactly-one", ArityExactlyOne},
	{"zero-or-more", ArityZeroOrMore},
	{"one-or-more", ArityOneOrMore},
}

type (
	// Arity is the number of values a member accepts: Min through Max
	// inclusive, where Max may be Unbounded.
	Arity struct {
		Min int `json:"min" yaml:"min" toml:"min"`
		Max int `json:"max" yaml:"max" toml:"max"`
	}

	// InvalidArityError is returned when an arity cannot be parsed or has an
	// inconsistent range. It wraps ErrInvalidArity for errors.Is() compatibility.
	InvalidArityError struct {
		Value  string
		Reason string
	}
)

// IsValid returns whether Min is non-negative and Max is Unbounded or >= Min.
func (a Arity) IsValid() (bool, []error) {
	if a.Min < 0 {
		return false, []error{&InvalidArityError{Value: a.String(), Reason: "minimum must not be negative"}}
	}
	if a.Max != Unbounded && a.Max < a.Min {
		return false, []error{&InvalidArityError{Value: a.String(), Reason: "maximum must not be below minimum"}}
	}
	return true, nil
}

// Accepts reports whether n values satisfy the arity.
func (a Arity) Accepts(n int) bool {
	return n >= a.Min && (a.Max == Unbounded || n <= a.Max)
}

// IsUnbounded reports whether the arity has no upper limit.
func (a Arity) IsUnbounded() bool { return a.Max == Unbounded }

// Ptr returns a pointer to a copy of a, for use as an explicit override.
func (a Arity) Ptr() *Arity { return &a }

// String returns the named form for the common arities and "min..max" or
// "min.." otherwise.
func (a Arity) String() string {
	for _, n := range namedArities {
		if n.arity == a {
			return n.name
		}
	}
	if a.Max == Unbounded {
		return strconv.Itoa(a.Min) + ".."
	}
	return strconv.Itoa(a.Min) + ".." + strconv.Itoa(a.Max)
}

// ParseArity parses a named arity ("zero-or-one"), a single count ("2"),
// a closed range ("1..3") or an open range ("1..").
func ParseArity(s string) (Arity, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, n := range namedArities {
		if n.name == v {
			return n.arity, nil
		}
	}

	minPart, maxPart, isRange := strings.Cut(v, "..")
	lo, err := strconv.Atoi(minPart)
	if err != nil {
		return Arity{}, &InvalidArityError{Value: s, Reason: "expected a name, a count or a min..max range"}
	}
	a := Arity{Min: lo, Max: lo}
	if isRange {
		if maxPart == "" {
			a.Max = Unbounded
		} else if a.Max, err = strconv.Atoi(maxPart); err != nil {
			return Arity{}, &InvalidArityError{Value: s, Reason: "maximum is not a number"}
		}
	}
	if ok, errs := a.IsValid(); !ok {
		return Arity{}, errs[0]
	}
	return a, nil
}

// Error implements the error interface.
func (e *InvalidArityError) Error() string {
	return fmt.Sprintf("invalid arity %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidArity for errors.Is() compatibility.
func (e *InvalidArityError) Unwrap() error { return ErrInvalidArity }

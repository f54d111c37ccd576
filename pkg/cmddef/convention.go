// SPDX-License-Identifier: MPL-2.0

package cmddef

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CasingNone keeps the identifier exactly as declared.
	CasingNone Casing = "none"
	// CasingLower lower-cases all words without separators.
	CasingLower Casing = "lower"
	// CasingUpper upper-cases all words without separators.
	CasingUpper Casing = "upper"
	// CasingTitle title-cases every word without separators.
	CasingTitle Casing = "title"
	// CasingPascal joins title-cased words ("BuildOutput").
	CasingPascal Casing = "pascal"
	// CasingCamel joins words with a lower-case first word ("buildOutput").
	CasingCamel Casing = "camel"
	// CasingKebab joins lower-case words with '-' ("build-output").
	CasingKebab Casing = "kebab"
	// CasingSnake joins lower-case words with '_' ("build_output").
	CasingSnake Casing = "snake"
)

const (
	// PrefixDoubleHyphen is the POSIX long option prefix.
	PrefixDoubleHyphen Prefix = "--"
	// PrefixHyphen is the POSIX short option prefix.
	PrefixHyphen Prefix = "-"
	// PrefixSlash is the Windows style option prefix.
	PrefixSlash Prefix = "/"
)

var (
	// ErrInvalidCasing is returned when a Casing value is not recognized.
	ErrInvalidCasing = errors.New("invalid casing")
	// ErrInvalidPrefix is returned when a Prefix value is not recognized.
	ErrInvalidPrefix = errors.New("invalid prefix")
)

// recognizedPrefixes is ordered so that longer prefixes match first.
var recognizedPrefixes = []Prefix{PrefixDoubleHyphen, PrefixHyphen, PrefixSlash}

type (
	// Casing selects how identifier words are re-cased and joined.
	// The zero value means "unset" and defers to the enclosing scope.
	Casing string

	// Prefix is an option name prefix. The zero value means "unset".
	Prefix string

	// InvalidCasingError is returned when a Casing value is not recognized.
	// It wraps ErrInvalidCasing for errors.Is() compatibility.
	InvalidCasingError struct {
		Value Casing
	}

	// InvalidPrefixError is returned when a Prefix value is not recognized.
	// It wraps ErrInvalidPrefix for errors.Is() compatibility.
	InvalidPrefixError struct {
		Value Prefix
	}

	// Convention is the set of naming settings a command may declare. Every
	// field is optional; unset fields are inherited from the nearest ancestor
	// that sets them, then from the engine defaults.
	Convention struct {
		Casing          Casing
		NamePrefix      Prefix
		ShortFormPrefix Prefix
		// NameAutoGenerate selects the kinds whose names are derived from
		// their identifiers. Nil means unset.
		NameAutoGenerate *KindSet
		// ShortFormAutoGenerate selects the kinds that receive a generated
		// short-form alias. Nil means unset.
		ShortFormAutoGenerate *KindSet
	}
)

// Casings returns all recognized casings.
func Casings() []Casing {
	return []Casing{CasingNone, CasingLower, CasingUpper, CasingTitle, CasingPascal, CasingCamel, CasingKebab, CasingSnake}
}

// String returns the casing name.
func (c Casing) String() string { return string(c) }

// IsValid returns whether the casing is unset or a recognized value.
func (c Casing) IsValid() (bool, []error) {
	if c == "" {
		return true, nil
	}
	for _, known := range Casings() {
		if c == known {
			return true, nil
		}
	}
	return false, []error{&InvalidCasingError{Value: c}}
}

// Error implements the error interface.
func (e *InvalidCasingError) Error() string {
	names := make([]string, 0, len(Casings()))
	for _, c := range Casings() {
		names = append(names, string(c))
	}
	return fmt.Sprintf("invalid casing %q (valid: %s)", e.Value, strings.Join(names, ", "))
}

// Unwrap returns ErrInvalidCasing for errors.Is() compatibility.
func (e *InvalidCasingError) Unwrap() error { return ErrInvalidCasing }

// String returns the prefix text.
func (p Prefix) String() string { return string(p) }

// IsValid returns whether the prefix is unset or one of "--", "-" and "/".
func (p Prefix) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	for _, known := range recognizedPrefixes {
		if p == known {
			return true, nil
		}
	}
	return false, []error{&InvalidPrefixError{Value: p}}
}

// Error implements the error interface.
func (e *InvalidPrefixError) Error() string {
	return fmt.Sprintf("invalid prefix %q (valid: \"--\", \"-\", \"/\")", e.Value)
}

// Unwrap returns ErrInvalidPrefix for errors.Is() compatibility.
func (e *InvalidPrefixError) Unwrap() error { return ErrInvalidPrefix }

// SplitPrefix separates a recognized prefix from the rest of name.
// It returns an empty prefix when name does not start with one.
func SplitPrefix(name string) (Prefix, string) {
	for _, p := range recognizedPrefixes {
		if strings.HasPrefix(name, string(p)) {
			return p, name[len(p):]
		}
	}
	return "", name
}

// HasPrefix reports whether name starts with a recognized prefix.
func HasPrefix(name string) bool {
	p, _ := SplitPrefix(name)
	return p != ""
}

// IsZero reports whether no field of the convention is set.
func (c Convention) IsZero() bool {
	return c.Casing == "" && c.NamePrefix == "" && c.ShortFormPrefix == "" &&
		c.NameAutoGenerate == nil && c.ShortFormAutoGenerate == nil
}

// IsValid returns whether every set field holds a recognized value.
func (c Convention) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.Casing.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.NamePrefix.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.ShortFormPrefix.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// Merge returns c with its unset fields filled from fallback.
func (c Convention) Merge(fallback Convention) Convention {
	if c.Casing == "" {
		c.Casing = fallback.Casing
	}
	if c.NamePrefix == "" {
		c.NamePrefix = fallback.NamePrefix
	}
	if c.ShortFormPrefix == "" {
		c.ShortFormPrefix = fallback.ShortFormPrefix
	}
	if c.NameAutoGenerate == nil {
		c.NameAutoGenerate = fallback.NameAutoGenerate
	}
	if c.ShortFormAutoGenerate == nil {
		c.ShortFormAutoGenerate = fallback.ShortFormAutoGenerate
	}
	return c
}

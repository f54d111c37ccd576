// SPDX-License-Identifier: MPL-2.0

package structtag

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

const (
	tagCommand   = "command"
	tagOption    = "option"
	tagArgument  = "argument"
	tagDirective = "directive"

	tagName        = "name"
	tagDesc        = "desc"
	tagAliases     = "aliases"
	tagOrder       = "order"
	tagHidden      = "hidden"
	tagRequired    = "required"
	tagArity       = "arity"
	tagGlobal      = "global"
	tagAllowed     = "allowed"
	tagDefault     = "default"
	tagCasing      = "casing"
	tagPrefix      = "prefix"
	tagShortPrefix = "short-prefix"
	tagAbstract    = "abstract"
	tagUnmatched   = "unmatched"
	tagParent      = "parent"

	// nullDefault in a default tag marks a value that must be supplied.
	nullDefault = "null"
)

var (
	// ErrInvalidTag is returned when a struct tag cannot be interpreted.
	ErrInvalidTag = errors.New("invalid struct tag")
	// ErrInvalidTarget is returned when a value cannot be walked.
	ErrInvalidTarget = errors.New("invalid definition target")
)

type (
	// InvalidTagError describes a malformed tag on a struct field.
	InvalidTagError struct {
		Type  reflect.Type
		Field string
		Tag   string
		Value string
		Err   error
	}

	// InvalidTargetError is returned when a value is not a pointer to a
	// named struct, or a struct type refers back to itself.
	InvalidTargetError struct {
		Type   reflect.Type
		Reason string
	}

	tagReader struct {
		typ   reflect.Type
		field reflect.StructField
		errs  []error
	}
)

// Error implements the error interface.
func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("%s.%s: tag %s:%q: %v", e.Type, e.Field, e.Tag, e.Value, e.Err)
}

// Unwrap returns ErrInvalidTag for errors.Is() compatibility.
func (e *InvalidTagError) Unwrap() error { return ErrInvalidTag }

// Error implements the error interface.
func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("%v: %s", e.Type, e.Reason)
}

// Unwrap returns ErrInvalidTarget for errors.Is() compatibility.
func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }

func newTagReader(typ reflect.Type, field reflect.StructField) *tagReader {
	return &tagReader{typ: typ, field: field}
}

func (r *tagReader) fail(tag, value string, err error) {
	r.errs = append(r.errs, &InvalidTagError{Type: r.typ, Field: r.field.Name, Tag: tag, Value: value, Err: err})
}

func (r *tagReader) err() error { return errors.Join(r.errs...) }

func (r *tagReader) lookup(tag string) (string, bool) { return r.field.Tag.Lookup(tag) }

func (r *tagReader) string(tag string) string {
	v, _ := r.field.Tag.Lookup(tag)
	return strings.TrimSpace(v)
}

func (r *tagReader) bool(tag string) bool {
	p := r.optionalBool(tag)
	return p != nil && *p
}

// optionalBool treats a present but empty tag as true.
func (r *tagReader) optionalBool(tag string) *bool {
	v, ok := r.lookup(tag)
	if !ok {
		return nil
	}
	if strings.TrimSpace(v) == "" {
		b := true
		return &b
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		r.fail(tag, v, err)
		return nil
	}
	return &b
}

func (r *tagReader) int(tag string) int {
	v, ok := r.lookup(tag)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.fail(tag, v, err)
	}
	return n
}

// order returns the order tag and whether it is present.
func (r *tagReader) order() (int, bool) {
	_, ok := r.lookup(tagOrder)
	return r.int(tagOrder), ok
}

// list splits a comma separated tag. A present tag always yields a non-nil
// slice.
func (r *tagReader) list(tag string) []string {
	v, ok := r.lookup(tag)
	if !ok {
		return nil
	}
	out := []string{}
	for item := range strings.SplitSeq(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (r *tagReader) identities(tag string) []cmddef.Identity {
	var ids []cmddef.Identity
	for _, v := range r.list(tag) {
		ids = append(ids, cmddef.Identity(v))
	}
	return ids
}

func (r *tagReader) arity() *cmddef.Arity {
	v, ok := r.lookup(tagArity)
	if !ok {
		return nil
	}
	a, err := cmddef.ParseArity(v)
	if err != nil {
		r.fail(tagArity, v, err)
		return nil
	}
	return &a
}

// memberTag returns which member tag the field carries, if any.
func memberTag(field reflect.StructField) (cmddef.Kind, string, bool) {
	for _, candidate := range []struct {
		tag  string
		kind cmddef.Kind
	}{
		{tagOption, cmddef.KindOption},
		{tagArgument, cmddef.KindArgument},
		{tagDirective, cmddef.KindDirective},
		{tagCommand, cmddef.KindCommand},
	} {
		if v, ok := field.Tag.Lookup(candidate.tag); ok {
			return candidate.kind, strings.TrimSpace(v), true
		}
	}
	return "", "", false
}

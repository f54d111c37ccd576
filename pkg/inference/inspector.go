// SPDX-License-Identifier: MPL-2.0

package inference

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// builtinScalars maps Go scalar type names to whether they have an intrinsic
// default value.
var builtinScalars = map[string]bool{
	"string": true,
	"int":    true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true,
	"byte": true, "rune": true,
}

// wellKnownScalars are named library types parsed from a single token.
var wellKnownScalars = map[string]bool{
	"time.Duration": true,
	"time.Time":     true,
	"url.URL":       true,
	"net.IP":        false,
	"netip.Addr":    true,
	"netip.Prefix":  true,
	"fs.FileMode":   true,
	"os.FileMode":   true,
}

type (
	// Inspector answers structural questions about value shapes.
	Inspector interface {
		// IsBoolean reports whether the shape is a boolean.
		IsBoolean(s cmddef.Shape) bool
		// IsString reports whether the shape is a string.
		IsString(s cmddef.Shape) bool
		// IsScalar reports whether the shape is parsed from a single token.
		// Booleans are scalars.
		IsScalar(s cmddef.Shape) bool
		// Unwrap returns the underlying shape of a nullable shape.
		Unwrap(s cmddef.Shape) (cmddef.Shape, bool)
		// Element returns the element shape of a collection.
		Element(s cmddef.Shape) (cmddef.Shape, bool)
		// HasIntrinsicDefault reports whether an uninitialized value of the
		// shape is a usable value rather than null.
		HasIntrinsicDefault(s cmddef.Shape) bool
	}

	// DefaultInspector understands Go types and type expressions. Named types
	// are scalars when registered, when they are well-known library scalars,
	// or (for reflect types) when their pointer implements
	// encoding.TextUnmarshaler. The zero value is ready to use.
	DefaultInspector struct {
		scalars map[string]bool
	}
)

var _ Inspector = (*DefaultInspector)(nil)

// NewDefaultInspector returns an inspector that also treats the named types
// as scalars with an intrinsic default.
func NewDefaultInspector(scalars ...string) *DefaultInspector {
	d := &DefaultInspector{scalars: make(map[string]bool, len(scalars))}
	for _, name := range scalars {
		d.scalars[name] = true
	}
	return d
}

// namedScalar reports whether name is a registered or well-known scalar and
// whether it has an intrinsic default.
func (d *DefaultInspector) namedScalar(name string) (isScalar, intrinsic bool) {
	if intrinsic, ok := d.scalars[name]; ok {
		return true, intrinsic
	}
	if intrinsic, ok := wellKnownScalars[name]; ok {
		return true, intrinsic
	}
	return false, false
}

// IsBoolean implements Inspector.
func (d *DefaultInspector) IsBoolean(s cmddef.Shape) bool {
	if s.Type != nil {
		return s.Type.Kind() == reflect.Bool
	}
	return expr(s) == "bool"
}

// IsString implements Inspector.
func (d *DefaultInspector) IsString(s cmddef.Shape) bool {
	if s.Type != nil {
		return s.Type.Kind() == reflect.String
	}
	return expr(s) == "string"
}

// IsScalar implements Inspector.
func (d *DefaultInspector) IsScalar(s cmddef.Shape) bool {
	if s.Type != nil {
		t := s.Type
		if ok, _ := d.namedScalar(t.String()); ok {
			return true
		}
		if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface &&
			reflect.PointerTo(t).Implements(textUnmarshalerType) {
			return true
		}
		switch t.Kind() {
		case reflect.Bool, reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
			reflect.Float32, reflect.Float64:
			return true
		default:
			return false
		}
	}

	e := expr(s)
	if e == "bool" {
		return true
	}
	if _, ok := builtinScalars[e]; ok {
		return true
	}
	ok, _ := d.namedScalar(e)
	return ok
}

// Unwrap implements Inspector. Pointers and "T?" expressions are nullable.
func (d *DefaultInspector) Unwrap(s cmddef.Shape) (cmddef.Shape, bool) {
	if s.Type != nil {
		if s.Type.Kind() == reflect.Pointer {
			return cmddef.ShapeOfType(s.Type.Elem()), true
		}
		return s, false
	}
	e := expr(s)
	switch {
	case strings.HasPrefix(e, "*"):
		return cmddef.ShapeOf(e[1:]), true
	case strings.HasSuffix(e, "?"):
		return cmddef.ShapeOf(e[:len(e)-1]), true
	default:
		return s, false
	}
}

// Element implements Inspector. Slices and arrays are collections, except
// for registered scalars backed by a slice such as net.IP.
func (d *DefaultInspector) Element(s cmddef.Shape) (cmddef.Shape, bool) {
	if s.Type != nil {
		if ok, _ := d.namedScalar(s.Type.String()); ok {
			return s, false
		}
		switch s.Type.Kind() {
		case reflect.Slice, reflect.Array:
			return cmddef.ShapeOfType(s.Type.Elem()), true
		default:
			return s, false
		}
	}
	e := expr(s)
	if strings.HasPrefix(e, "[]") {
		return cmddef.ShapeOf(e[2:]), true
	}
	if n, rest, ok := arrayExpr(e); ok && n != "" {
		return cmddef.ShapeOf(rest), true
	}
	return s, false
}

// HasIntrinsicDefault implements Inspector. Value types (numbers, strings,
// booleans, arrays, value structs) have one; pointers, interfaces, slices,
// maps and unknown types do not.
func (d *DefaultInspector) HasIntrinsicDefault(s cmddef.Shape) bool {
	if s.Type != nil {
		if ok, intrinsic := d.namedScalar(s.Type.String()); ok {
			return intrinsic
		}
		switch s.Type.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return false
		default:
			return true
		}
	}

	e := expr(s)
	if e == "bool" {
		return true
	}
	if intrinsic, ok := builtinScalars[e]; ok {
		return intrinsic
	}
	if ok, intrinsic := d.namedScalar(e); ok {
		return intrinsic
	}
	if n, _, ok := arrayExpr(e); ok && n != "" {
		return true
	}
	return false
}

func expr(s cmddef.Shape) string {
	return strings.Join(strings.Fields(s.Expr), " ")
}

// arrayExpr splits "[N]T" into N and T.
func arrayExpr(e string) (n, rest string, ok bool) {
	if !strings.HasPrefix(e, "[") {
		return "", "", false
	}
	end := strings.IndexByte(e, ']')
	if end < 0 {
		return "", "", false
	}
	n = e[1:end]
	for _, r := range n {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}
	return n, e[end+1:], true
}

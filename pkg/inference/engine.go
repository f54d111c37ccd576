// SPDX-License-Identifier: MPL-2.0

package inference

import (
	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

// maxNullableDepth bounds unwrapping of nested nullable shapes such as "**int".
const maxNullableDepth = 8

type (
	// Engine infers member metadata through an Inspector.
	Engine struct {
		inspector Inspector
	}

	// Result is the inferred metadata of one option or argument.
	Result struct {
		Arity    cmddef.Arity
		Required bool
		// Value is the shape of a single parsed token: the element of a
		// collection or the unwrapped underlying shape otherwise.
		Value cmddef.Shape
	}
)

// New creates an engine. A nil inspector selects a DefaultInspector.
func New(inspector Inspector) *Engine {
	if inspector == nil {
		inspector = NewDefaultInspector()
	}
	return &Engine{inspector: inspector}
}

// Inspector returns the inspector the engine uses.
func (e *Engine) Inspector() Inspector { return e.inspector }

// Infer computes arity and required-ness for an option or argument,
// honoring explicit overrides.
func (e *Engine) Infer(v *cmddef.Valued) (Result, error) {
	arity, value, err := e.arity(v.Identity, v.Shape)
	if v.Arity != nil {
		arity, err = *v.Arity, nil
	}
	if err != nil {
		return Result{}, err
	}

	required := e.Required(v.Shape, v.Initializer)
	if v.Required != nil {
		required = *v.Required
	}
	return Result{Arity: arity, Required: required, Value: value}, nil
}

// Arity returns the arity implied by shape: booleans accept zero or one
// value, collections of scalars zero or more, scalars exactly one. Nullable
// shapes are unwrapped first. Anything else is unsupported.
func (e *Engine) Arity(id cmddef.Identity, shape cmddef.Shape) (cmddef.Arity, error) {
	arity, _, err := e.arity(id, shape)
	return arity, err
}

func (e *Engine) arity(id cmddef.Identity, shape cmddef.Shape) (cmddef.Arity, cmddef.Shape, error) {
	s := e.unwrap(shape)
	switch {
	case e.inspector.IsBoolean(s):
		return cmddef.ArityZeroOrOne, s, nil
	case e.inspector.IsScalar(s):
		return cmddef.ArityExactlyOne, s, nil
	}

	elem, ok := e.inspector.Element(s)
	if !ok {
		return cmddef.Arity{}, s, &cmddef.UnsupportedShapeError{
			Identity: id,
			Shape:    shape.String(),
			Reason:   "not a boolean, scalar or collection; declare an explicit arity",
		}
	}
	elem = e.unwrap(elem)
	if !e.inspector.IsScalar(elem) {
		return cmddef.Arity{}, s, &cmddef.UnsupportedShapeError{
			Identity: id,
			Shape:    shape.String(),
			Reason:   "collection elements must be scalars; declare an explicit arity",
		}
	}
	return cmddef.ArityZeroOrMore, elem, nil
}

// Required reports whether a member must be supplied. A null initializer
// makes it required and a value initializer optional; without an
// initializer it is required unless the shape has an intrinsic default.
func (e *Engine) Required(shape cmddef.Shape, init cmddef.Initializer) bool {
	switch init {
	case cmddef.InitializerNull:
		return true
	case cmddef.InitializerValue:
		return false
	default:
		return !e.inspector.HasIntrinsicDefault(shape)
	}
}

// CheckDirective verifies that a directive's shape is a boolean, a string or
// a list of strings.
func (e *Engine) CheckDirective(d *cmddef.Directive) error {
	s := d.Shape
	if e.inspector.IsBoolean(s) || e.inspector.IsString(s) {
		return nil
	}
	if elem, ok := e.inspector.Element(s); ok && e.inspector.IsString(elem) {
		return nil
	}
	return &cmddef.UnsupportedShapeError{
		Identity: d.Identity,
		Shape:    s.String(),
		Reason:   "directives accept only bool, string or []string",
	}
}

func (e *Engine) unwrap(s cmddef.Shape) cmddef.Shape {
	for range maxNullableDepth {
		u, ok := e.inspector.Unwrap(s)
		if !ok {
			return s
		}
		s = u
	}
	return s
}

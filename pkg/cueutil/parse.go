// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

type (
	// Schema is a compiled CUE schema. A cue.Context is not safe for
	// concurrent use, so every operation holds the schema's lock.
	Schema struct {
		mu    sync.Mutex
		ctx   *cue.Context
		value cue.Value
	}

	// ParseResult is a decoded document.
	ParseResult[T any] struct {
		Value *T
		// Unified is the document unified with its schema definition.
		Unified cue.Value
	}
)

// NewSchema compiles src.
func NewSchema(src []byte) (*Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src)
	if v.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", v.Err())
	}
	return &Schema{ctx: ctx, value: v}, nil
}

// Decode validates data against the definition at path and decodes it into
// out, a pointer.
func (s *Schema) Decode(data []byte, path string, out any, opts ...Option) (cue.Value, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if err := CheckFileSize(data, options.maxFileSize, options.filename); err != nil {
		return cue.Value{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	def, err := s.definition(path)
	if err != nil {
		return cue.Value{}, err
	}
	doc := s.ctx.CompileBytes(data, cue.Filename(options.filename))
	if doc.Err() != nil {
		return cue.Value{}, FormatError(doc.Err(), options.filename)
	}
	return s.unify(def, doc, out, options)
}

// DecodeValue encodes a Go value (typically a map decoded from another
// format) into the schema's context, validates it against the definition
// at path and decodes it into out.
func (s *Schema) DecodeValue(v any, path string, out any, opts ...Option) (cue.Value, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	def, err := s.definition(path)
	if err != nil {
		return cue.Value{}, err
	}
	doc := s.ctx.Encode(v)
	if doc.Err() != nil {
		return cue.Value{}, FormatError(doc.Err(), options.filename)
	}
	return s.unify(def, doc, out, options)
}

func (s *Schema) definition(path string) (cue.Value, error) {
	def := s.value.LookupPath(cue.ParsePath(path))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", path, def.Err())
	}
	return def, nil
}

func (s *Schema) unify(def, doc cue.Value, out any, options parseOptions) (cue.Value, error) {
	unified := def.Unify(doc)
	var validateOpts []cue.Option
	if options.concrete {
		validateOpts = append(validateOpts, cue.Concrete(true))
	}
	if err := unified.Validate(validateOpts...); err != nil {
		return cue.Value{}, FormatError(err, options.filename)
	}
	if err := unified.Decode(out); err != nil {
		return cue.Value{}, FormatError(err, options.filename)
	}
	return unified, nil
}

// ParseAndDecode compiles schema and decodes data against the definition
// at schemaPath. Callers parsing many documents against one schema should
// compile it once with NewSchema.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	s, err := NewSchema(schema)
	if err != nil {
		return nil, err
	}
	return Decode[T](s, data, schemaPath, opts...)
}

// Decode decodes data against a compiled schema.
func Decode[T any](s *Schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	var out T
	unified, err := s.Decode(data, schemaPath, &out, opts...)
	if err != nil {
		return nil, err
	}
	return &ParseResult[T]{Value: &out, Unified: unified}, nil
}

// DecodeValue decodes a Go value against a compiled schema.
func DecodeValue[T any](s *Schema, v any, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	var out T
	unified, err := s.DecodeValue(v, schemaPath, &out, opts...)
	if err != nil {
		return nil, err
	}
	return &ParseResult[T]{Value: &out, Unified: unified}, nil
}

// Format renders a Go value as CUE source. Structs are rendered as the
// top-level fields of a file.
func Format(v any) ([]byte, error) {
	val := cuecontext.New().Encode(v)
	if val.Err() != nil {
		return nil, fmt.Errorf("encode CUE: %w", val.Err())
	}
	node := val.Syntax(cue.Concrete(true))
	if s, ok := node.(*ast.StructLit); ok {
		node = &ast.File{Decls: s.Elts}
	}
	return format.Node(node)
}

// CheckFileSize fails when data is larger than maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxSize)
	}
	return nil
}

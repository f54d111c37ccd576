// SPDX-License-Identifier: MPL-2.0

package structtag

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/types"
)

// walker collects the definitions of one Add call. Nothing is kept when the
// walk fails.
type walker struct {
	s      *Source
	defs   []cmddef.Definition
	local  map[cmddef.Identity]bool
	inPath map[reflect.Type]bool
}

func (w *walker) seen(id cmddef.Identity) bool {
	return w.s.seen[id] || w.local[id]
}

func (w *walker) emit(def cmddef.Definition) {
	if w.local == nil {
		w.local = make(map[cmddef.Identity]bool)
	}
	w.local[def.ID()] = true
	w.defs = append(w.defs, def)
}

// command collects the concrete command stored in val, an addressable
// struct.
func (w *walker) command(val reflect.Value, container cmddef.Identity, link func(*cmddef.Command)) error {
	t := val.Type()
	id := typeIdentity(t)
	if id == "" {
		return &InvalidTargetError{Type: t, Reason: "command structs must be named types"}
	}
	if w.inPath[t] {
		return &InvalidTargetError{Type: t, Reason: "struct nests itself as a command"}
	}
	if w.seen(id) {
		return nil
	}
	w.inPath[t] = true
	defer delete(w.inPath, t)

	cmd, err := w.header(t, id)
	if err != nil {
		return err
	}
	cmd.Container = container
	if !cmd.Abstract {
		cmd.Target = val
	}
	if link != nil {
		link(cmd)
	}
	w.emit(cmd)
	w.s.logger.Debug("discovered command", "id", id, "container", container)

	return w.fields(t, val, cmd)
}

// base collects an embedded struct type as an abstract command.
func (w *walker) base(t reflect.Type) (cmddef.Identity, error) {
	id := typeIdentity(t)
	if id == "" {
		return "", &InvalidTargetError{Type: t, Reason: "embedded bases must be named types"}
	}
	if w.inPath[t] {
		return "", &InvalidTargetError{Type: t, Reason: "struct embeds itself"}
	}
	if w.seen(id) {
		return id, nil
	}
	w.inPath[t] = true
	defer delete(w.inPath, t)

	cmd, err := w.header(t, id)
	if err != nil {
		return "", err
	}
	cmd.Abstract = true
	w.emit(cmd)
	return id, w.fields(t, reflect.Value{}, cmd)
}

// header builds a command definition from the marker tags of t.
func (w *walker) header(t reflect.Type, id cmddef.Identity) (*cmddef.Command, error) {
	cmd := &cmddef.Command{Common: cmddef.Common{
		Identity:   id,
		Identifier: t.Name(),
		DeclOrder:  w.s.next(),
	}}

	field, ok := markerField(t)
	if !ok {
		return cmd, nil
	}
	r := newTagReader(t, field)
	cmd.Name = r.string(tagName)
	cmd.Aliases = r.list(tagAliases)
	cmd.Description = types.DescriptionText(r.string(tagDesc))
	cmd.Hidden = r.bool(tagHidden)
	cmd.Order, cmd.OrderSet = r.order()
	cmd.Abstract = r.bool(tagAbstract)
	cmd.UnmatchedTokensAreErrors = r.optionalBool(tagUnmatched)
	cmd.Parent = cmddef.Identity(r.string(tagParent))
	cmd.Convention = cmddef.Convention{
		Casing:          cmddef.Casing(r.string(tagCasing)),
		NamePrefix:      cmddef.Prefix(r.string(tagPrefix)),
		ShortFormPrefix: cmddef.Prefix(r.string(tagShortPrefix)),
	}
	return cmd, r.err()
}

func markerField(t reflect.Type) (reflect.StructField, bool) {
	for i := range t.NumField() {
		if f := t.Field(i); f.Anonymous && f.Type == markerType {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

// fields collects members, bases and nested commands declared on t. val is
// invalid for abstract bases.
func (w *walker) fields(t reflect.Type, val reflect.Value, cmd *cmddef.Command) error {
	var errs []error
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Anonymous && field.Type == markerType {
			continue
		}

		kind, explicit, tagged := memberTag(field)
		if !tagged {
			if bt, ok := structType(field.Type); ok && field.Anonymous {
				id, err := w.base(bt)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				cmd.Bases = append(cmd.Bases, id)
			}
			continue
		}
		if !field.IsExported() {
			errs = append(errs, &InvalidTagError{Type: t, Field: field.Name, Tag: string(kind), Err: errors.New("field must be exported")})
			continue
		}

		if kind == cmddef.KindCommand {
			if err := w.nested(t, val, i, cmd, explicit); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		var fv reflect.Value
		if val.IsValid() {
			fv = val.Field(i)
		}
		def, err := w.member(kind, t, cmd.Identity, field, i, explicit, fv)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		w.emit(def)
	}
	return errors.Join(errs...)
}

func (w *walker) nested(t reflect.Type, val reflect.Value, index int, cmd *cmddef.Command, explicit string) error {
	field := t.Field(index)
	if !val.IsValid() || cmd.Abstract {
		return &InvalidTagError{Type: t, Field: field.Name, Tag: tagCommand, Value: explicit,
			Err: errors.New("abstract commands cannot nest commands")}
	}
	if _, ok := structType(field.Type); !ok {
		return &InvalidTagError{Type: t, Field: field.Name, Tag: tagCommand, Value: explicit,
			Err: fmt.Errorf("field type %s is not a struct", field.Type)}
	}

	fv := val.Field(index)
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		fv = fv.Elem()
	}
	r := newTagReader(t, field)
	name, desc := cmp.Or(explicit, r.string(tagName)), r.string(tagDesc)
	order, orderSet := r.order()
	err := w.command(fv, cmd.Identity, func(child *cmddef.Command) {
		child.Name = cmp.Or(child.Name, name)
		child.Description = cmp.Or(child.Description, types.DescriptionText(desc))
		if !child.OrderSet {
			child.Order, child.OrderSet = order, orderSet
		}
	})
	return errors.Join(r.err(), err)
}

func (w *walker) member(kind cmddef.Kind, t reflect.Type, owner cmddef.Identity, field reflect.StructField, index int, explicit string, fv reflect.Value) (cmddef.Definition, error) {
	r := newTagReader(t, field)
	order, orderSet := r.order()
	common := cmddef.Common{
		Identity:    owner.Member(field.Name),
		Identifier:  field.Name,
		Name:        cmp.Or(explicit, r.string(tagName)),
		Aliases:     r.list(tagAliases),
		Description: types.DescriptionText(r.string(tagDesc)),
		Hidden:      r.bool(tagHidden),
		Required:    r.optionalBool(tagRequired),
		Arity:       r.arity(),
		Order:       order,
		OrderSet:    orderSet,
		DeclOrder:   w.s.next(),
		Owner:       owner,
		Target:      Field{Owner: t, Index: index, Name: field.Name},
	}
	shape := cmddef.ShapeOfType(field.Type)

	if kind == cmddef.KindDirective {
		return &cmddef.Directive{Common: common, Shape: shape}, r.err()
	}

	valued := cmddef.Valued{Common: common, Shape: shape, AllowedValues: r.list(tagAllowed)}
	valued.Initializer, valued.Default = initializer(r, fv)
	if kind == cmddef.KindOption {
		return &cmddef.Option{Valued: valued, Global: r.bool(tagGlobal)}, r.err()
	}
	return &cmddef.Argument{Valued: valued}, r.err()
}

// initializer derives the initializer from a default tag or from the value
// currently stored in the field.
func initializer(r *tagReader, fv reflect.Value) (cmddef.Initializer, string) {
	if v, ok := r.lookup(tagDefault); ok {
		if v == nullDefault {
			return cmddef.InitializerNull, ""
		}
		return cmddef.InitializerValue, v
	}
	if !fv.IsValid() || fv.IsZero() {
		return cmddef.InitializerNone, ""
	}
	return cmddef.InitializerValue, formatValue(fv)
}

func formatValue(v reflect.Value) string {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]string, v.Len())
		for i := range v.Len() {
			items[i] = formatValue(v.Index(i))
		}
		return strings.Join(items, ",")
	default:
		return fmt.Sprint(v.Interface())
	}
}

func structType(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct
}

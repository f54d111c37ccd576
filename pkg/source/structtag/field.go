// SPDX-License-Identifier: MPL-2.0

package structtag

import (
	"reflect"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/resolve"
)

// Field is the Target of members collected from structs: the field at Index
// of the struct type Owner.
type Field struct {
	Owner reflect.Type
	Index int
	Name  string
}

// OptionValue returns the field backing a resolved option. Propagated
// options resolve to the field on the command that declares them.
func OptionValue(o *resolve.Option) (reflect.Value, bool) {
	return fieldOf(o.Origin(), o.Definition())
}

// ArgumentValue returns the field backing a resolved argument.
func ArgumentValue(a *resolve.Argument) (reflect.Value, bool) {
	return fieldOf(a.Owner(), a.Definition())
}

// DirectiveValue returns the field backing a resolved directive.
func DirectiveValue(d *resolve.Directive) (reflect.Value, bool) {
	return fieldOf(d.Owner(), d.Definition())
}

// FieldValue returns the storage of member def inside holder, the struct
// value of the command that owns or inherits it. Nil embedded pointers on
// the way are allocated.
func FieldValue(holder reflect.Value, def cmddef.Definition) (reflect.Value, bool) {
	field, ok := def.Base().Target.(Field)
	if !ok || !holder.IsValid() {
		return reflect.Value{}, false
	}
	for holder.Kind() == reflect.Pointer {
		if holder.IsNil() {
			return reflect.Value{}, false
		}
		holder = holder.Elem()
	}

	path, ok := embedPath(holder.Type(), field.Owner, nil)
	if !ok {
		return reflect.Value{}, false
	}
	v := holder
	for _, i := range path {
		v = v.Field(i)
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
	}
	return v.Field(field.Index), true
}

func fieldOf(cmd *resolve.Command, def cmddef.Definition) (reflect.Value, bool) {
	if cmd == nil {
		return reflect.Value{}, false
	}
	holder, ok := cmd.Definition().Target.(reflect.Value)
	if !ok {
		return reflect.Value{}, false
	}
	return FieldValue(holder, def)
}

// embedPath returns the field indexes leading from t through anonymous
// struct fields to target.
func embedPath(t, target reflect.Type, prefix []int) ([]int, bool) {
	if t == target {
		return prefix, true
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous || f.Type == markerType {
			continue
		}
		st, ok := structType(f.Type)
		if !ok {
			continue
		}
		if path, found := embedPath(st, target, append(prefix[:len(prefix):len(prefix)], i)); found {
			return path, true
		}
	}
	return nil, false
}

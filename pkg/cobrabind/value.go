// SPDX-License-Identifier: MPL-2.0

package cobrabind

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

// rawValue collects the raw strings given for one option. It is shared by
// the flag and every alias flag of the option.
type rawValue struct {
	arity   cmddef.Arity
	allowed []string
	boolean bool
	values  []string
}

var _ pflag.Value = (*rawValue)(nil)

func (v *rawValue) String() string { return strings.Join(v.values, ",") }

func (v *rawValue) Set(s string) error {
	if len(v.allowed) > 0 && !slices.Contains(v.allowed, s) {
		return fmt.Errorf("%q is not one of %s", s, strings.Join(v.allowed, ", "))
	}
	if v.arity.Max <= 1 {
		v.values = []string{s}
		return nil
	}
	if !v.arity.IsUnbounded() && len(v.values) >= v.arity.Max {
		return fmt.Errorf("accepts at most %d values", v.arity.Max)
	}
	v.values = append(v.values, s)
	return nil
}

func (v *rawValue) Type() string {
	switch {
	case v.boolean:
		return "bool"
	case v.arity.Max <= 1:
		return "string"
	default:
		return "strings"
	}
}

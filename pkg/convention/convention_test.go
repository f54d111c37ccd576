// SPDX-License-Identifier: MPL-2.0

package convention

import (
	"errors"
	"testing"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

type chain map[cmddef.Identity]struct {
	cmd    *cmddef.Command
	parent cmddef.Identity
}

func (c chain) lookup(id cmddef.Identity) (*cmddef.Command, cmddef.Identity, bool) {
	e, ok := c[id]
	return e.cmd, e.parent, ok
}

func (c chain) add(id, parent cmddef.Identity, conv cmddef.Convention) {
	c[id] = struct {
		cmd    *cmddef.Command
		parent cmddef.Identity
	}{&cmddef.Command{Common: cmddef.Common{Identity: id}, Convention: conv}, parent}
}

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	c := chain{}
	c.add("Root", "", cmddef.Convention{})
	r := NewResolver(cmddef.Convention{}, c.lookup)

	res, err := r.Resolve("Root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Casing != cmddef.CasingKebab || res.NamePrefix != "--" || res.ShortFormPrefix != "-" {
		t.Errorf("unexpected defaults: %+v", res)
	}
	if res.NameAutoGenerate != cmddef.KindSetAll || res.ShortFormAutoGenerate != cmddef.KindSetAll {
		t.Errorf("expected auto-generation for all kinds, got %+v", res)
	}
	if res.Sources != (Sources{}) {
		t.Errorf("defaults must have empty sources, got %+v", res.Sources)
	}
}

func TestResolve_NearestWins(t *testing.T) {
	t.Parallel()

	c := chain{}
	c.add("Root", "", cmddef.Convention{Casing: cmddef.CasingSnake, NamePrefix: cmddef.PrefixSlash})
	c.add("Mid", "Root", cmddef.Convention{Casing: cmddef.CasingCamel, ShortFormAutoGenerate: cmddef.KindSetNone.Ptr()})
	c.add("Leaf", "Mid", cmddef.Convention{})

	r := NewResolver(cmddef.Convention{ShortFormPrefix: cmddef.PrefixSlash}, c.lookup)
	res, err := r.Resolve("Leaf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Casing != cmddef.CasingCamel || res.Sources.Casing != "Mid" {
		t.Errorf("casing = %q from %q, want camel from Mid", res.Casing, res.Sources.Casing)
	}
	if res.NamePrefix != cmddef.PrefixSlash || res.Sources.NamePrefix != "Root" {
		t.Errorf("name prefix = %q from %q, want / from Root", res.NamePrefix, res.Sources.NamePrefix)
	}
	if res.ShortFormPrefix != cmddef.PrefixSlash || res.Sources.ShortFormPrefix != "" {
		t.Errorf("short prefix = %q from %q, want / from defaults", res.ShortFormPrefix, res.Sources.ShortFormPrefix)
	}
	if res.ShortFormAutoGenerate != cmddef.KindSetNone {
		t.Errorf("short-form auto generation = %s, want none", res.ShortFormAutoGenerate)
	}

	rules := res.Rules(cmddef.KindOption)
	if !rules.AutoName || rules.AutoShortForm {
		t.Errorf("unexpected rules: %+v", rules)
	}
}

func TestResolve_Cycle(t *testing.T) {
	t.Parallel()

	c := chain{}
	c.add("A", "B", cmddef.Convention{})
	c.add("B", "A", cmddef.Convention{})

	_, err := NewResolver(cmddef.Convention{}, c.lookup).Resolve("A")
	var cycleErr *cmddef.CyclicCommandGraphError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected CyclicCommandGraphError, got %v", err)
	}
	if cycleErr.Identity != "A" || len(cycleErr.Chain) != 3 {
		t.Errorf("unexpected cycle error: %+v", cycleErr)
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	d := Defaults(cmddef.Convention{Casing: cmddef.CasingPascal})
	if d.Casing != cmddef.CasingPascal || d.NamePrefix != cmddef.PrefixDoubleHyphen || d.NameAutoGenerate == nil {
		t.Errorf("unexpected defaults: %+v", d)
	}

	c := chain{}
	c.add("Root", "", cmddef.Convention{})
	res, err := NewResolver(d, c.lookup).Resolve("Root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Convention(); got.Casing != cmddef.CasingPascal || got.ShortFormAutoGenerate == nil {
		t.Errorf("Convention() = %+v", got)
	}
}

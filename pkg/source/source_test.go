// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"testing"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
)

func TestMulti(t *testing.T) {
	t.Parallel()

	a := &cmddef.Command{Common: cmddef.Common{Identity: "A"}}
	b := &cmddef.Command{Common: cmddef.Common{Identity: "B"}}
	boom := errors.New("boom")

	defs, err := Multi{Static{a}, Func(func() ([]cmddef.Definition, error) { return []cmddef.Definition{b}, nil })}.Definitions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defs) != 2 || defs[0].ID() != "A" || defs[1].ID() != "B" {
		t.Errorf("unexpected definitions: %v", defs)
	}

	_, err = Multi{Static{a}, Func(func() ([]cmddef.Definition, error) { return nil, boom })}.Definitions()
	if !errors.Is(err, boom) {
		t.Errorf("expected joined error to contain boom, got %v", err)
	}
}

// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdspec/cmdspec/pkg/cmddef"
	"github.com/cmdspec/cmdspec/pkg/source"
)

func command(id cmddef.Identity) *cmddef.Command {
	return &cmddef.Command{Common: cmddef.Common{Identity: id}}
}

func option(owner cmddef.Identity, member string) *cmddef.Option {
	return &cmddef.Option{Valued: cmddef.Valued{
		Common: cmddef.Common{Identity: owner.Member(member), Owner: owner},
		Shape:  cmddef.ShapeOf("string"),
	}}
}

func TestRegister_Idempotent(t *testing.T) {
	t.Parallel()

	r := New()
	build := command("Build")
	require.NoError(t, r.Register(build))
	v := r.Version()

	require.NoError(t, r.Register(build), "same instance")
	require.NoError(t, r.Register(command("Build")), "identical content")
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, v, r.Version(), "no-op registrations must not bump the version")
}

func TestRegister_Conflict(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.Register(command("Build")))

	changed := command("Build")
	changed.Hidden = true
	err := r.Register(changed)
	assert.ErrorIs(t, err, cmddef.ErrDuplicateIdentity)

	err = r.Register(&cmddef.Option{Valued: cmddef.Valued{
		Common: cmddef.Common{Identity: "Build", Owner: "Root"},
		Shape:  cmddef.ShapeOf("string"),
	}})
	var dup *cmddef.DuplicateIdentityError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, cmddef.KindCommand, dup.Existing)
	assert.Equal(t, cmddef.KindOption, dup.Incoming)
}

func TestRegister_Invalid(t *testing.T) {
	t.Parallel()

	r := New()
	var nilCmd *cmddef.Command
	assert.ErrorIs(t, r.Register(nilCmd), cmddef.ErrInvalidDefinition)
	assert.ErrorIs(t, r.Register(nil), cmddef.ErrInvalidDefinition)
	assert.ErrorIs(t, r.Register(command("")), cmddef.ErrInvalidDefinition)

	err := r.Register(command("Good"), command("has space"))
	assert.ErrorIs(t, err, cmddef.ErrInvalidDefinition)
	_, ok := r.Lookup("Good")
	assert.True(t, ok, "valid definitions are stored alongside failures")
}

func TestAllOfKindAndSnapshot(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.Register(
		command("Root"),
		option("Root", "Verbose"),
		command("Build"),
		option("Build", "Output"),
		option("Root", "Config"),
	))

	cmds := r.AllOfKind(cmddef.KindCommand)
	require.Len(t, cmds, 2)
	assert.Equal(t, cmddef.Identity("Root"), cmds[0].ID())
	assert.Equal(t, cmddef.Identity("Build"), cmds[1].ID())

	snap := r.Snapshot()
	assert.Equal(t, r.Version(), snap.Version())
	members := snap.Members("Root")
	require.Len(t, members, 2)
	assert.Equal(t, cmddef.Identity("Root.Verbose"), members[0].ID())
	assert.Equal(t, cmddef.Identity("Root.Config"), members[1].ID())

	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 5, snap.Len(), "snapshots are unaffected by later changes")
	_, ok := snap.Command("Build")
	assert.True(t, ok)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.Load(source.Static{command("A")}, source.Static{command("B"), command("A")}))
	assert.Equal(t, 2, r.Len())
}

func TestConcurrentRegistration(t *testing.T) {
	t.Parallel()

	r := New()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := cmddef.Identity(fmt.Sprintf("Cmd%d", i%4))
			assert.NoError(t, r.Register(command(id)))
			_ = r.Snapshot()
		}()
	}
	wg.Wait()
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, uint64(4), r.Version())
}

func TestGlobal(t *testing.T) {
	ResetGlobal()
	t.Cleanup(ResetGlobal)

	require.NoError(t, Init(source.Static{command("Root")}))
	_, ok := Global().Lookup("Root")
	assert.True(t, ok)
}

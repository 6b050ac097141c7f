package coc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentPushPop(t *testing.T) {
	nat := Const{Name: "nat"}

	t.Run("round trip", func(t *testing.T) {
		env := NewEnvironment().Push(GlobalAssum{C: nat, T: Set{}})
		pre, dec, err := env.Pop()
		require.NoError(t, err)
		assert.True(t, pre.IsEmpty())
		assert.True(t, dec.Equal(GlobalAssum{C: nat, T: Set{}}))
	})

	t.Run("pop empty fails", func(t *testing.T) {
		_, _, err := NewEnvironment().Pop()
		var eerr *EmptyContainerError
		require.ErrorAs(t, err, &eerr)
		assert.Equal(t, "environment", eerr.Container)
	})

	t.Run("push does not mutate the receiver", func(t *testing.T) {
		base := NewEnvironment(GlobalAssum{C: nat, T: Set{}})
		a := base.Push(GlobalAssum{C: Const{Name: "bool"}, T: Set{}})
		b := base.Push(GlobalDef{C: Const{Name: "bool"}, Val: nat, T: Set{}})
		assert.Equal(t, 1, base.Len())
		assert.False(t, a.Equal(b))
	})
}

func TestConstNotInEnv(t *testing.T) {
	nat := Const{Name: "nat"}
	env := NewEnvironment(GlobalAssum{C: nat, T: Set{}})

	p, err := NewConstNotInEnv(Const{Name: "bool"}, env)
	require.NoError(t, err)
	assert.True(t, p.Const().Equal(Const{Name: "bool"}))

	_, err = NewConstNotInEnv(nat, env)
	var berr *AlreadyBoundError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "nat", berr.Name)
}

func TestConstInEnv(t *testing.T) {
	nat := Const{Name: "nat"}
	env := NewEnvironment(GlobalAssum{C: nat, T: Set{}})

	_, err := NewConstInEnv(nat, env)
	require.NoError(t, err)

	_, err = NewConstInEnv(Const{Name: "bool"}, env)
	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
}

func TestAssumInEnv(t *testing.T) {
	nat := Const{Name: "nat"}

	t.Run("matches an assumption", func(t *testing.T) {
		env := NewEnvironment(GlobalAssum{C: nat, T: Set{}})
		p, err := NewAssumInEnv(GlobalAssum{C: nat, T: Set{}}, env)
		require.NoError(t, err)
		assert.True(t, p.Assum().T.Equal(Set{}))
	})

	t.Run("a definition assumes its type", func(t *testing.T) {
		env := NewEnvironment(GlobalDef{C: nat, Val: Set{}, T: TypeI{i: 1}})
		_, err := NewAssumInEnv(GlobalAssum{C: nat, T: TypeI{i: 1}}, env)
		require.NoError(t, err)
	})

	t.Run("wrong type fails", func(t *testing.T) {
		env := NewEnvironment(GlobalAssum{C: nat, T: Set{}})
		_, err := NewAssumInEnv(GlobalAssum{C: nat, T: Prop{}}, env)
		require.Error(t, err)
	})
}

func TestDefInEnv(t *testing.T) {
	nat := Const{Name: "nat"}
	def := GlobalDef{C: nat, Val: Set{}, T: TypeI{i: 1}}

	t.Run("matches an exact definition", func(t *testing.T) {
		p, err := NewDefInEnv(def, NewEnvironment(def))
		require.NoError(t, err)
		assert.True(t, p.Def().Equal(def))
	})

	t.Run("an assumption is not a definition", func(t *testing.T) {
		env := NewEnvironment(GlobalAssum{C: nat, T: TypeI{i: 1}})
		_, err := NewDefInEnv(def, env)
		var nerr *NotFoundError
		require.ErrorAs(t, err, &nerr)
	})
}

func TestEnvironmentString(t *testing.T) {
	nat := Const{Name: "nat"}
	assert.Equal(t, "[]", NewEnvironment().String())
	assert.Equal(t,
		"[(nat : Set); (zero := nat : Set)]",
		NewEnvironment(
			GlobalAssum{C: nat, T: Set{}},
			GlobalDef{C: Const{Name: "zero"}, Val: nat, T: Set{}},
		).String())
}

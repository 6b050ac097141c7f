package coc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextPushPop(t *testing.T) {
	x := Var{Name: "x"}
	y := Var{Name: "y"}

	t.Run("round trip", func(t *testing.T) {
		ctx := NewContext().Push(LocalAssum{X: x, T: Set{}})
		pre, dec, err := ctx.Pop()
		require.NoError(t, err)
		assert.True(t, pre.IsEmpty())
		assert.True(t, dec.Equal(LocalAssum{X: x, T: Set{}}))
	})

	t.Run("pop empty fails", func(t *testing.T) {
		_, _, err := NewContext().Pop()
		var eerr *EmptyContainerError
		require.ErrorAs(t, err, &eerr)
		assert.Equal(t, "context", eerr.Container)
	})

	t.Run("push does not mutate the receiver", func(t *testing.T) {
		base := NewContext(LocalAssum{X: x, T: Set{}})
		a := base.Push(LocalAssum{X: y, T: Set{}})
		b := base.Push(LocalDef{X: y, Val: x, T: Set{}})
		assert.Equal(t, 1, base.Len())
		assert.False(t, a.Equal(b))
	})

	t.Run("concat preserves order", func(t *testing.T) {
		left := NewContext(LocalAssum{X: x, T: Set{}})
		right := NewContext(LocalAssum{X: y, T: Prop{}})
		joined := left.Concat(right)
		assert.Equal(t, 2, joined.Len())
		_, last, err := joined.Pop()
		require.NoError(t, err)
		assert.True(t, last.Equal(LocalAssum{X: y, T: Prop{}}))
	})
}

func TestContextEqual(t *testing.T) {
	x := Var{Name: "x"}

	assum := NewContext(LocalAssum{X: x, T: Set{}})
	def := NewContext(LocalDef{X: x, Val: Set{}, T: TypeI{i: 1}})

	assert.True(t, assum.Equal(NewContext(LocalAssum{X: x, T: Set{}})))
	assert.False(t, assum.Equal(def))
	assert.False(t, assum.Equal(NewContext()))
}

func TestVarNotInContext(t *testing.T) {
	x := Var{Name: "x"}
	y := Var{Name: "y"}
	ctx := NewContext(LocalAssum{X: x, T: Set{}})

	t.Run("absent variable", func(t *testing.T) {
		p, err := NewVarNotInContext(y, ctx)
		require.NoError(t, err)
		assert.True(t, p.Var().Equal(y))
		assert.True(t, p.Ctx().Equal(ctx))
	})

	t.Run("bound variable fails", func(t *testing.T) {
		_, err := NewVarNotInContext(x, ctx)
		var berr *AlreadyBoundError
		require.ErrorAs(t, err, &berr)
		assert.Equal(t, "x", berr.Name)
	})

	t.Run("a definition binds too", func(t *testing.T) {
		defCtx := NewContext(LocalDef{X: x, Val: Set{}, T: TypeI{i: 1}})
		_, err := NewVarNotInContext(x, defCtx)
		require.Error(t, err)
	})
}

func TestVarInContext(t *testing.T) {
	x := Var{Name: "x"}
	y := Var{Name: "y"}
	ctx := NewContext(LocalAssum{X: x, T: Set{}})

	p, err := NewVarInContext(x, ctx)
	require.NoError(t, err)
	assert.True(t, p.Var().Equal(x))

	_, err = NewVarInContext(y, ctx)
	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
}

func TestAssumInContext(t *testing.T) {
	x := Var{Name: "x"}

	t.Run("matches an assumption", func(t *testing.T) {
		ctx := NewContext(LocalAssum{X: x, T: Set{}})
		p, err := NewAssumInContext(LocalAssum{X: x, T: Set{}}, ctx)
		require.NoError(t, err)
		assert.True(t, p.Assum().T.Equal(Set{}))
	})

	t.Run("a definition assumes its type", func(t *testing.T) {
		ctx := NewContext(LocalDef{X: x, Val: Prop{}, T: TypeI{i: 1}})
		_, err := NewAssumInContext(LocalAssum{X: x, T: TypeI{i: 1}}, ctx)
		require.NoError(t, err)
	})

	t.Run("wrong type fails", func(t *testing.T) {
		ctx := NewContext(LocalAssum{X: x, T: Set{}})
		_, err := NewAssumInContext(LocalAssum{X: x, T: Prop{}}, ctx)
		var nerr *NotFoundError
		require.ErrorAs(t, err, &nerr)
	})
}

func TestDefInContext(t *testing.T) {
	x := Var{Name: "x"}
	def := LocalDef{X: x, Val: Prop{}, T: TypeI{i: 1}}

	t.Run("matches an exact definition", func(t *testing.T) {
		p, err := NewDefInContext(def, NewContext(def))
		require.NoError(t, err)
		assert.True(t, p.Def().Equal(def))
	})

	t.Run("an assumption is not a definition", func(t *testing.T) {
		ctx := NewContext(LocalAssum{X: x, T: TypeI{i: 1}})
		_, err := NewDefInContext(def, ctx)
		require.Error(t, err)
	})

	t.Run("different value fails", func(t *testing.T) {
		ctx := NewContext(LocalDef{X: x, Val: Set{}, T: TypeI{i: 1}})
		_, err := NewDefInContext(def, ctx)
		require.Error(t, err)
	})
}

func TestContextString(t *testing.T) {
	x := Var{Name: "x"}
	assert.Equal(t, "[]", NewContext().String())
	assert.Equal(t, "[(x : Set)]", NewContext(LocalAssum{X: x, T: Set{}}).String())
	assert.Equal(t,
		"[(x : Set); (y := x : Set)]",
		NewContext(LocalAssum{X: x, T: Set{}}, LocalDef{X: Var{Name: "y"}, Val: x, T: Set{}}).String())
}

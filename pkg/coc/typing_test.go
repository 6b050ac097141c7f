package coc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxioms(t *testing.T) {
	wf := WEmpty()
	assert.Equal(t, "WF([])[]", wf.Conclusion())

	t.Run("sorts live in Type(1)", func(t *testing.T) {
		for _, wt := range []*WT{AxSProp(wf), AxProp(wf), AxSet(wf)} {
			assert.True(t, wt.Type().Equal(TypeI{i: 1}))
			assert.True(t, wt.Env().IsEmpty())
			assert.True(t, wt.Ctx().IsEmpty())
		}
	})

	t.Run("universes stack", func(t *testing.T) {
		wt, err := AxType(wf, 2)
		require.NoError(t, err)
		assert.True(t, wt.Term().Equal(TypeI{i: 2}))
		assert.True(t, wt.Type().Equal(TypeI{i: 3}))
	})

	t.Run("universe index must be positive", func(t *testing.T) {
		_, err := AxType(wf, 0)
		var uerr *InvalidUniverseError
		require.ErrorAs(t, err, &uerr)
	})
}

func TestWellFormedness(t *testing.T) {
	x := Var{Name: "x"}
	nat := Const{Name: "nat"}
	wfEmpty := WEmpty()
	sortType1, err := NewIsSort(TypeI{i: 1})
	require.NoError(t, err)

	t.Run("local assumption", func(t *testing.T) {
		xNotIn, err := NewVarNotInContext(x, NewContext())
		require.NoError(t, err)
		wf, err := WLocalAssum(AxSet(wfEmpty), sortType1, xNotIn)
		require.NoError(t, err)
		assert.Equal(t, "WF([])[(x : Set)]", wf.Conclusion())
	})

	t.Run("local assumption rejects a wrong sort witness", func(t *testing.T) {
		xNotIn, err := NewVarNotInContext(x, NewContext())
		require.NoError(t, err)
		sortSet, err := NewIsSort(Set{})
		require.NoError(t, err)
		_, err = WLocalAssum(AxSet(wfEmpty), sortSet, xNotIn)
		var derr *InconsistentDerivationError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "s", derr.Component)
	})

	t.Run("local definition", func(t *testing.T) {
		xNotIn, err := NewVarNotInContext(x, NewContext())
		require.NoError(t, err)
		wf, err := WLocalDef(AxSet(wfEmpty), xNotIn)
		require.NoError(t, err)
		assert.Equal(t, "WF([])[(x := Set : Type(1))]", wf.Conclusion())
	})

	t.Run("global assumption and lookup", func(t *testing.T) {
		natNotIn, err := NewConstNotInEnv(nat, NewEnvironment())
		require.NoError(t, err)
		wfNat, err := WGlobalAssum(AxSet(wfEmpty), sortType1, natNotIn)
		require.NoError(t, err)
		assert.Equal(t, "WF([(nat : Set)])[]", wfNat.Conclusion())

		natIn, err := NewAssumInEnv(GlobalAssum{C: nat, T: Set{}}, wfNat.Env())
		require.NoError(t, err)
		wtNat, err := ConstRule(wfNat, natIn)
		require.NoError(t, err)
		assert.True(t, wtNat.Term().Equal(nat))
		assert.True(t, wtNat.Type().Equal(Set{}))

		zeroNotIn, err := NewConstNotInEnv(Const{Name: "zero"}, wfNat.Env())
		require.NoError(t, err)
		wfZero, err := WGlobalDef(wtNat, zeroNotIn)
		require.NoError(t, err)
		assert.Equal(t, "WF([(nat : Set); (zero := nat : Set)])[]", wfZero.Conclusion())
	})

	t.Run("global rules require an empty context", func(t *testing.T) {
		xNotIn, err := NewVarNotInContext(x, NewContext())
		require.NoError(t, err)
		wfX, err := WLocalAssum(AxSet(wfEmpty), sortType1, xNotIn)
		require.NoError(t, err)
		xIn, err := NewAssumInContext(LocalAssum{X: x, T: Set{}}, wfX.Ctx())
		require.NoError(t, err)
		varX, err := VarRule(wfX, xIn)
		require.NoError(t, err)

		natNotIn, err := NewConstNotInEnv(nat, NewEnvironment())
		require.NoError(t, err)
		sortSet, err := NewIsSort(Set{})
		require.NoError(t, err)
		_, err = WGlobalAssum(varX, sortSet, natNotIn)
		var derr *InconsistentDerivationError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "Γ", derr.Component)

		_, err = WGlobalDef(varX, natNotIn)
		require.ErrorAs(t, err, &derr)
	})
}

func TestProducts(t *testing.T) {
	x := Var{Name: "x"}
	wfEmpty := WEmpty()
	sortType1, err := NewIsSort(TypeI{i: 1})
	require.NoError(t, err)
	sortSet, err := NewIsSort(Set{})
	require.NoError(t, err)

	t.Run("Prod-Type", func(t *testing.T) {
		xNotIn, err := NewVarNotInContext(x, NewContext())
		require.NoError(t, err)
		wfX, err := WLocalAssum(AxSet(wfEmpty), sortType1, xNotIn)
		require.NoError(t, err)

		wt, err := ProdType(AxSet(wfEmpty), sortType1, AxSet(wfX))
		require.NoError(t, err)
		assert.True(t, wt.Term().Equal(Prod{X: x, T: Set{}, U: Set{}}))
		assert.True(t, wt.Type().Equal(TypeI{i: 1}))
	})

	t.Run("Prod-Prop", func(t *testing.T) {
		p := Var{Name: "p"}
		pNotIn, err := NewVarNotInContext(p, NewContext())
		require.NoError(t, err)
		wfP, err := WLocalAssum(AxProp(wfEmpty), sortType1, pNotIn)
		require.NoError(t, err)

		xNotIn, err := NewVarNotInContext(x, wfP.Ctx())
		require.NoError(t, err)
		wfPX, err := WLocalAssum(AxSet(wfP), sortType1, xNotIn)
		require.NoError(t, err)

		pIn, err := NewAssumInContext(LocalAssum{X: p, T: Prop{}}, wfPX.Ctx())
		require.NoError(t, err)
		varP, err := VarRule(wfPX, pIn)
		require.NoError(t, err)

		wt, err := ProdProp(AxSet(wfP), sortType1, varP)
		require.NoError(t, err)
		assert.True(t, wt.Term().Equal(Prod{X: x, T: Set{}, U: p}))
		assert.True(t, wt.Type().Equal(Prop{}))
	})

	t.Run("Prod-SProp", func(t *testing.T) {
		p := Var{Name: "p"}
		pNotIn, err := NewVarNotInContext(p, NewContext())
		require.NoError(t, err)
		wfP, err := WLocalAssum(AxSProp(wfEmpty), sortType1, pNotIn)
		require.NoError(t, err)

		xNotIn, err := NewVarNotInContext(x, wfP.Ctx())
		require.NoError(t, err)
		wfPX, err := WLocalAssum(AxSet(wfP), sortType1, xNotIn)
		require.NoError(t, err)

		pIn, err := NewAssumInContext(LocalAssum{X: p, T: SProp{}}, wfPX.Ctx())
		require.NoError(t, err)
		varP, err := VarRule(wfPX, pIn)
		require.NoError(t, err)

		wt, err := ProdSProp(AxSet(wfP), sortType1, varP)
		require.NoError(t, err)
		assert.True(t, wt.Type().Equal(SProp{}))
	})

	t.Run("Prod-Set", func(t *testing.T) {
		a := Var{Name: "A"}
		aNotIn, err := NewVarNotInContext(a, NewContext())
		require.NoError(t, err)
		wfA, err := WLocalAssum(AxSet(wfEmpty), sortType1, aNotIn)
		require.NoError(t, err)

		aIn, err := NewAssumInContext(LocalAssum{X: a, T: Set{}}, wfA.Ctx())
		require.NoError(t, err)
		varA, err := VarRule(wfA, aIn)
		require.NoError(t, err)

		xNotIn, err := NewVarNotInContext(x, wfA.Ctx())
		require.NoError(t, err)
		wfAX, err := WLocalAssum(varA, sortSet, xNotIn)
		require.NoError(t, err)

		aInInner, err := NewAssumInContext(LocalAssum{X: a, T: Set{}}, wfAX.Ctx())
		require.NoError(t, err)
		varAInner, err := VarRule(wfAX, aInInner)
		require.NoError(t, err)

		wt, err := ProdSet(varA, sortSet, varAInner)
		require.NoError(t, err)
		assert.True(t, wt.Term().Equal(Prod{X: x, T: a, U: a}))
		assert.True(t, wt.Type().Equal(Set{}))
	})

	t.Run("Prod-Set rejects a large domain sort", func(t *testing.T) {
		xNotIn, err := NewVarNotInContext(x, NewContext())
		require.NoError(t, err)
		wfX, err := WLocalAssum(AxSet(wfEmpty), sortType1, xNotIn)
		require.NoError(t, err)

		_, err = ProdSet(AxSet(wfEmpty), sortType1, AxSet(wfX))
		var terr *TypeMismatchError
		require.ErrorAs(t, err, &terr)
	})

	t.Run("Prod-Type rejects a small codomain sort", func(t *testing.T) {
		p := Var{Name: "p"}
		pNotIn, err := NewVarNotInContext(p, NewContext())
		require.NoError(t, err)
		wfP, err := WLocalAssum(AxProp(wfEmpty), sortType1, pNotIn)
		require.NoError(t, err)

		xNotIn, err := NewVarNotInContext(x, wfP.Ctx())
		require.NoError(t, err)
		wfPX, err := WLocalAssum(AxSet(wfP), sortType1, xNotIn)
		require.NoError(t, err)

		pIn, err := NewAssumInContext(LocalAssum{X: p, T: Prop{}}, wfPX.Ctx())
		require.NoError(t, err)
		varP, err := VarRule(wfPX, pIn)
		require.NoError(t, err)

		_, err = ProdType(AxSet(wfP), sortType1, varP)
		var terr *TypeMismatchError
		require.ErrorAs(t, err, &terr)
	})

	t.Run("premise environments must agree", func(t *testing.T) {
		natNotIn, err := NewConstNotInEnv(Const{Name: "nat"}, NewEnvironment())
		require.NoError(t, err)
		wfNat, err := WGlobalAssum(AxSet(wfEmpty), sortType1, natNotIn)
		require.NoError(t, err)

		xNotIn, err := NewVarNotInContext(x, NewContext())
		require.NoError(t, err)
		wfX, err := WLocalAssum(AxSet(wfEmpty), sortType1, xNotIn)
		require.NoError(t, err)

		_, err = ProdType(AxSet(wfNat), sortType1, AxSet(wfX))
		var derr *InconsistentDerivationError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "E", derr.Component)
	})
}

// Types the polymorphic-free identity λx:Set.x in the context [a:Set] and
// applies it to a.
func TestIdentityDerivation(t *testing.T) {
	x := Var{Name: "x"}
	a := Var{Name: "a"}
	wfEmpty := WEmpty()
	sortType1, err := NewIsSort(TypeI{i: 1})
	require.NoError(t, err)

	aNotIn, err := NewVarNotInContext(a, NewContext())
	require.NoError(t, err)
	wfA, err := WLocalAssum(AxSet(wfEmpty), sortType1, aNotIn)
	require.NoError(t, err)

	xNotIn, err := NewVarNotInContext(x, wfA.Ctx())
	require.NoError(t, err)
	wfAX, err := WLocalAssum(AxSet(wfA), sortType1, xNotIn)
	require.NoError(t, err)

	xIn, err := NewAssumInContext(LocalAssum{X: x, T: Set{}}, wfAX.Ctx())
	require.NoError(t, err)
	varX, err := VarRule(wfAX, xIn)
	require.NoError(t, err)

	prodTy, err := ProdType(AxSet(wfA), sortType1, AxSet(wfAX))
	require.NoError(t, err)

	id, err := Lam(prodTy, varX)
	require.NoError(t, err)
	assert.True(t, id.Term().Equal(Abstract{X: x, T: Set{}, Body: x}))
	assert.True(t, id.Type().Equal(Prod{X: x, T: Set{}, U: Set{}}))

	aIn, err := NewAssumInContext(LocalAssum{X: a, T: Set{}}, wfA.Ctx())
	require.NoError(t, err)
	varA, err := VarRule(wfA, aIn)
	require.NoError(t, err)

	app, err := App(id, varA)
	require.NoError(t, err)
	assert.True(t, app.Type().Equal(Set{}))
	assert.Equal(t, "[][(a : Set)] ⊢ (fun(x:Set)=>x a) : Set", app.Conclusion())

	t.Run("Lam requires a product subject", func(t *testing.T) {
		_, err := Lam(AxSet(wfA), varX)
		var terr *TypeMismatchError
		require.ErrorAs(t, err, &terr)
	})

	t.Run("App requires a product type", func(t *testing.T) {
		_, err := App(varA, varA)
		var terr *TypeMismatchError
		require.ErrorAs(t, err, &terr)
	})

	t.Run("App rejects a mismatched argument type", func(t *testing.T) {
		_, err := App(id, prodTy)
		var derr *InconsistentDerivationError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "U", derr.Component)
	})
}

func TestLet(t *testing.T) {
	x := Var{Name: "x"}
	wfEmpty := WEmpty()

	xNotIn, err := NewVarNotInContext(x, NewContext())
	require.NoError(t, err)
	wfDef, err := WLocalDef(AxSet(wfEmpty), xNotIn)
	require.NoError(t, err)

	xIn, err := NewAssumInContext(LocalAssum{X: x, T: TypeI{i: 1}}, wfDef.Ctx())
	require.NoError(t, err)
	varX, err := VarRule(wfDef, xIn)
	require.NoError(t, err)

	wt, err := Let(AxSet(wfEmpty), varX)
	require.NoError(t, err)
	assert.True(t, wt.Term().Equal(LetIn{X: x, Val: Set{}, T: TypeI{i: 1}, Body: x}))
	assert.True(t, wt.Type().Equal(TypeI{i: 1}))
	assert.True(t, wt.Ctx().IsEmpty())

	t.Run("requires a definition on top of the inner context", func(t *testing.T) {
		sortType1, err := NewIsSort(TypeI{i: 1})
		require.NoError(t, err)
		wfAssum, err := WLocalAssum(AxSet(wfEmpty), sortType1, xNotIn)
		require.NoError(t, err)
		assumIn, err := NewAssumInContext(LocalAssum{X: x, T: Set{}}, wfAssum.Ctx())
		require.NoError(t, err)
		varAssum, err := VarRule(wfAssum, assumIn)
		require.NoError(t, err)

		_, err = Let(AxSet(wfEmpty), varAssum)
		var terr *TypeMismatchError
		require.ErrorAs(t, err, &terr)
	})
}

package coc

import (
	"fmt"

	"github.com/pkg/errors"
)

// WF is the judgment WF(E)[Γ]: the environment E is well-formed and the
// context Γ is valid in it. Values are only produced by the W-* rule
// constructors.
type WF struct {
	rule     Rule
	premises []Proof
	env      Environment
	ctx      Context
}

var _ Proof = (*WF)(nil)

// Env returns the judged environment.
func (wf *WF) Env() Environment { return wf.env }

// Ctx returns the judged context.
func (wf *WF) Ctx() Context { return wf.ctx }

func (wf *WF) Rule() Rule { return wf.rule }

func (wf *WF) Premises() []Proof { return wf.premises }

func (wf *WF) Conclusion() string {
	return fmt.Sprintf("WF(%s)%s", wf.env, wf.ctx)
}

// WT is the judgment E[Γ] ⊢ t : T. Values are only produced by the typing
// rule constructors.
type WT struct {
	rule     Rule
	premises []Proof
	env      Environment
	ctx      Context
	term     Term
	typ      Term
}

var _ Proof = (*WT)(nil)

// Env returns the judged environment.
func (wt *WT) Env() Environment { return wt.env }

// Ctx returns the judged context.
func (wt *WT) Ctx() Context { return wt.ctx }

// Term returns the judged term t.
func (wt *WT) Term() Term { return wt.term }

// Type returns the judged type T.
func (wt *WT) Type() Term { return wt.typ }

func (wt *WT) Rule() Rule { return wt.rule }

func (wt *WT) Premises() []Proof { return wt.premises }

func (wt *WT) Conclusion() string {
	return fmt.Sprintf("%s%s ⊢ %s : %s", wt.env, wt.ctx, wt.term, wt.typ)
}

// WEmpty is the axiom WF([])[].
func WEmpty() *WF {
	return &WF{rule: ruleWEmpty}
}

// WLocalAssum extends a context with an assumption:
//
//	E[Γ] ⊢ T : s    s ∈ S    x ∉ Γ
//	------------------------------
//	WF(E)[Γ::(x:T)]
func WLocalAssum(wt *WT, sSort *IsSort, xNotIn *VarNotInContext) (*WF, error) {
	if err := consistentTerm("s", wt.typ, sSort.s); err != nil {
		return nil, errors.Wrap(err, ruleWLocalAssum.Name)
	}
	if err := consistentCtx(wt.ctx, xNotIn.ctx); err != nil {
		return nil, errors.Wrap(err, ruleWLocalAssum.Name)
	}
	return &WF{
		rule:     ruleWLocalAssum,
		premises: []Proof{wt, sSort, xNotIn},
		env:      wt.env,
		ctx:      xNotIn.ctx.Push(LocalAssum{X: xNotIn.x, T: wt.term}),
	}, nil
}

// WLocalDef extends a context with a definition:
//
//	E[Γ] ⊢ t : T    x ∉ Γ
//	---------------------
//	WF(E)[Γ::(x:=t:T)]
func WLocalDef(wt *WT, xNotIn *VarNotInContext) (*WF, error) {
	if err := consistentCtx(wt.ctx, xNotIn.ctx); err != nil {
		return nil, errors.Wrap(err, ruleWLocalDef.Name)
	}
	return &WF{
		rule:     ruleWLocalDef,
		premises: []Proof{wt, xNotIn},
		env:      wt.env,
		ctx:      xNotIn.ctx.Push(LocalDef{X: xNotIn.x, Val: wt.term, T: wt.typ}),
	}, nil
}

// WGlobalAssum extends the environment with an assumption. The typing
// premise must hold in the empty context:
//
//	E[] ⊢ T : s    s ∈ S    c ∉ E
//	-----------------------------
//	WF(E; c:T)
func WGlobalAssum(wt *WT, sSort *IsSort, cNotIn *ConstNotInEnv) (*WF, error) {
	if !wt.ctx.IsEmpty() {
		err := &InconsistentDerivationError{Component: "Γ", Want: "[]", Got: wt.ctx.String()}
		return nil, errors.Wrap(err, ruleWGlobalAssum.Name)
	}
	if err := consistentTerm("s", wt.typ, sSort.s); err != nil {
		return nil, errors.Wrap(err, ruleWGlobalAssum.Name)
	}
	if err := consistentEnv(wt.env, cNotIn.env); err != nil {
		return nil, errors.Wrap(err, ruleWGlobalAssum.Name)
	}
	return &WF{
		rule:     ruleWGlobalAssum,
		premises: []Proof{wt, sSort, cNotIn},
		env:      wt.env.Push(GlobalAssum{C: cNotIn.c, T: wt.term}),
	}, nil
}

// WGlobalDef extends the environment with a definition:
//
//	E[] ⊢ t : T    c ∉ E
//	--------------------
//	WF(E; c:=t:T)
func WGlobalDef(wt *WT, cNotIn *ConstNotInEnv) (*WF, error) {
	if !wt.ctx.IsEmpty() {
		err := &InconsistentDerivationError{Component: "Γ", Want: "[]", Got: wt.ctx.String()}
		return nil, errors.Wrap(err, ruleWGlobalDef.Name)
	}
	if err := consistentEnv(wt.env, cNotIn.env); err != nil {
		return nil, errors.Wrap(err, ruleWGlobalDef.Name)
	}
	return &WF{
		rule:     ruleWGlobalDef,
		premises: []Proof{wt, cNotIn},
		env:      wt.env.Push(GlobalDef{C: cNotIn.c, Val: wt.term, T: wt.typ}),
	}, nil
}

// AxSProp types the sort SProp: E[Γ] ⊢ SProp : Type(1).
func AxSProp(wf *WF) *WT {
	return &WT{
		rule:     ruleAxSProp,
		premises: []Proof{wf},
		env:      wf.env,
		ctx:      wf.ctx,
		term:     SProp{},
		typ:      TypeI{i: 1},
	}
}

// AxProp types the sort Prop: E[Γ] ⊢ Prop : Type(1).
func AxProp(wf *WF) *WT {
	return &WT{
		rule:     ruleAxProp,
		premises: []Proof{wf},
		env:      wf.env,
		ctx:      wf.ctx,
		term:     Prop{},
		typ:      TypeI{i: 1},
	}
}

// AxSet types the sort Set: E[Γ] ⊢ Set : Type(1).
func AxSet(wf *WF) *WT {
	return &WT{
		rule:     ruleAxSet,
		premises: []Proof{wf},
		env:      wf.env,
		ctx:      wf.ctx,
		term:     Set{},
		typ:      TypeI{i: 1},
	}
}

// AxType types a universe: E[Γ] ⊢ Type(i) : Type(i+1). The index must be
// positive.
func AxType(wf *WF, i int) (*WT, error) {
	if i <= 0 {
		return nil, errors.Wrap(&InvalidUniverseError{Index: i}, ruleAxType.Name)
	}
	return &WT{
		rule:     ruleAxType,
		premises: []Proof{wf},
		env:      wf.env,
		ctx:      wf.ctx,
		term:     TypeI{i: i},
		typ:      TypeI{i: i + 1},
	}, nil
}

// VarRule types a variable by context lookup:
//
//	WF(E)[Γ]    (x : T) ∈ Γ or (x:=t : T) ∈ Γ
//	-----------------------------------------
//	E[Γ] ⊢ x : T
func VarRule(wf *WF, xDecIn *AssumInContext) (*WT, error) {
	if err := consistentCtx(wf.ctx, xDecIn.ctx); err != nil {
		return nil, errors.Wrap(err, ruleVar.Name)
	}
	return &WT{
		rule:     ruleVar,
		premises: []Proof{wf, xDecIn},
		env:      wf.env,
		ctx:      wf.ctx,
		term:     xDecIn.assum.X,
		typ:      xDecIn.assum.T,
	}, nil
}

// ConstRule types a constant by environment lookup:
//
//	WF(E)[Γ]    (c : T) ∈ E or (c:=t : T) ∈ E
//	-----------------------------------------
//	E[Γ] ⊢ c : T
func ConstRule(wf *WF, cDecIn *AssumInEnv) (*WT, error) {
	if err := consistentEnv(wf.env, cDecIn.env); err != nil {
		return nil, errors.Wrap(err, ruleConst.Name)
	}
	return &WT{
		rule:     ruleConst,
		premises: []Proof{wf, cDecIn},
		env:      wf.env,
		ctx:      wf.ctx,
		term:     cDecIn.assum.C,
		typ:      cDecIn.assum.T,
	}, nil
}

// prodPremises validates the premise shape shared by all four product
// formation rules and recovers the product term. The outer premise types the
// domain, the inner premise types the codomain under Γ::(x:T).
func prodPremises(rule Rule, wtOuter *WT, sSort *IsSort, wtInner *WT) (Prod, error) {
	if err := consistentTerm("s", wtOuter.typ, sSort.s); err != nil {
		return Prod{}, errors.Wrap(err, rule.Name)
	}
	if err := consistentEnv(wtOuter.env, wtInner.env); err != nil {
		return Prod{}, errors.Wrap(err, rule.Name)
	}
	pre, dec, err := wtInner.ctx.Pop()
	if err != nil {
		return Prod{}, errors.Wrap(err, rule.Name)
	}
	if err := consistentCtx(wtOuter.ctx, pre); err != nil {
		return Prod{}, errors.Wrap(err, rule.Name)
	}
	if err := consistentTerm("T", wtOuter.term, dec.Type()); err != nil {
		return Prod{}, errors.Wrap(err, rule.Name)
	}
	return Prod{X: dec.Var(), T: dec.Type(), U: wtInner.term}, nil
}

// ProdSProp forms a product in SProp. The domain may live in any sort:
//
//	E[Γ] ⊢ T : s    s ∈ S    E[Γ::(x:T)] ⊢ U : SProp
//	------------------------------------------------
//	E[Γ] ⊢ ∀x:T, U : SProp
func ProdSProp(wtOuter *WT, sSort *IsSort, wtInner *WT) (*WT, error) {
	if err := consistentTerm("SProp", SProp{}, wtInner.typ); err != nil {
		return nil, errors.Wrap(err, ruleProdSProp.Name)
	}
	prod, err := prodPremises(ruleProdSProp, wtOuter, sSort, wtInner)
	if err != nil {
		return nil, err
	}
	return &WT{
		rule:     ruleProdSProp,
		premises: []Proof{wtOuter, sSort, wtInner},
		env:      wtOuter.env,
		ctx:      wtOuter.ctx,
		term:     prod,
		typ:      SProp{},
	}, nil
}

// ProdProp forms a product in Prop. The domain may live in any sort:
//
//	E[Γ] ⊢ T : s    s ∈ S    E[Γ::(x:T)] ⊢ U : Prop
//	-----------------------------------------------
//	E[Γ] ⊢ ∀x:T, U : Prop
func ProdProp(wtOuter *WT, sSort *IsSort, wtInner *WT) (*WT, error) {
	if err := consistentTerm("Prop", Prop{}, wtInner.typ); err != nil {
		return nil, errors.Wrap(err, ruleProdProp.Name)
	}
	prod, err := prodPremises(ruleProdProp, wtOuter, sSort, wtInner)
	if err != nil {
		return nil, err
	}
	return &WT{
		rule:     ruleProdProp,
		premises: []Proof{wtOuter, sSort, wtInner},
		env:      wtOuter.env,
		ctx:      wtOuter.ctx,
		term:     prod,
		typ:      Prop{},
	}, nil
}

// ProdSet forms a product in Set. The domain sort is restricted to
// {SProp, Prop, Set}:
//
//	E[Γ] ⊢ T : s    s ∈ {SProp, Prop, Set}    E[Γ::(x:T)] ⊢ U : Set
//	---------------------------------------------------------------
//	E[Γ] ⊢ ∀x:T, U : Set
func ProdSet(wtOuter *WT, sSort *IsSort, wtInner *WT) (*WT, error) {
	switch sSort.s.(type) {
	case SProp, Prop, Set:
	default:
		err := &TypeMismatchError{Want: "s ∈ {SProp, Prop, Set}", Got: sSort.s.String()}
		return nil, errors.Wrap(err, ruleProdSet.Name)
	}
	if err := consistentTerm("Set", Set{}, wtInner.typ); err != nil {
		return nil, errors.Wrap(err, ruleProdSet.Name)
	}
	prod, err := prodPremises(ruleProdSet, wtOuter, sSort, wtInner)
	if err != nil {
		return nil, err
	}
	return &WT{
		rule:     ruleProdSet,
		premises: []Proof{wtOuter, sSort, wtInner},
		env:      wtOuter.env,
		ctx:      wtOuter.ctx,
		term:     prod,
		typ:      Set{},
	}, nil
}

// ProdType forms a product in a universe. The domain sort is restricted to
// {SProp, Type(i)} and the conclusion lives in the codomain's universe:
//
//	E[Γ] ⊢ T : s    s ∈ {SProp, Type(i)}    E[Γ::(x:T)] ⊢ U : Type(i)
//	-----------------------------------------------------------------
//	E[Γ] ⊢ ∀x:T, U : Type(i)
func ProdType(wtOuter *WT, sSort *IsSort, wtInner *WT) (*WT, error) {
	switch sSort.s.(type) {
	case SProp, TypeI:
	default:
		err := &TypeMismatchError{Want: "s ∈ {SProp, Type(i)}", Got: sSort.s.String()}
		return nil, errors.Wrap(err, ruleProdType.Name)
	}
	if _, ok := wtInner.typ.(TypeI); !ok {
		err := &TypeMismatchError{Want: "Type(i)", Got: wtInner.typ.String()}
		return nil, errors.Wrap(err, ruleProdType.Name)
	}
	prod, err := prodPremises(ruleProdType, wtOuter, sSort, wtInner)
	if err != nil {
		return nil, err
	}
	return &WT{
		rule:     ruleProdType,
		premises: []Proof{wtOuter, sSort, wtInner},
		env:      wtOuter.env,
		ctx:      wtOuter.ctx,
		term:     prod,
		typ:      wtInner.typ,
	}, nil
}

// Lam types an abstraction against its product type:
//
//	E[Γ] ⊢ ∀x:T, U : s    E[Γ::(x:T)] ⊢ t : U
//	-----------------------------------------
//	E[Γ] ⊢ λx:T.t : ∀x:T, U
func Lam(wtOuter *WT, wtInner *WT) (*WT, error) {
	prod, ok := wtOuter.term.(Prod)
	if !ok {
		err := &TypeMismatchError{Want: "a product ∀x:T, U", Got: wtOuter.term.String()}
		return nil, errors.Wrap(err, ruleLam.Name)
	}
	pre, dec, err := wtInner.ctx.Pop()
	if err != nil {
		return nil, errors.Wrap(err, ruleLam.Name)
	}
	if err := consistentEnv(wtOuter.env, wtInner.env); err != nil {
		return nil, errors.Wrap(err, ruleLam.Name)
	}
	if err := consistentCtx(wtOuter.ctx, pre); err != nil {
		return nil, errors.Wrap(err, ruleLam.Name)
	}
	if err := consistentTerm("x", prod.X, dec.Var()); err != nil {
		return nil, errors.Wrap(err, ruleLam.Name)
	}
	if err := consistentTerm("T", prod.T, dec.Type()); err != nil {
		return nil, errors.Wrap(err, ruleLam.Name)
	}
	if err := consistentTerm("U", prod.U, wtInner.typ); err != nil {
		return nil, errors.Wrap(err, ruleLam.Name)
	}
	return &WT{
		rule:     ruleLam,
		premises: []Proof{wtOuter, wtInner},
		env:      wtOuter.env,
		ctx:      wtOuter.ctx,
		term:     Abstract{X: dec.Var(), T: dec.Type(), Body: wtInner.term},
		typ:      Prod{X: dec.Var(), T: dec.Type(), U: wtInner.typ},
	}, nil
}

// App types an application, substituting the argument into the codomain:
//
//	E[Γ] ⊢ t : ∀x:U, T    E[Γ] ⊢ u : U
//	----------------------------------
//	E[Γ] ⊢ (t u) : T{x/u}
func App(wtFn *WT, wtArg *WT) (*WT, error) {
	prod, ok := wtFn.typ.(Prod)
	if !ok {
		err := &TypeMismatchError{Want: "a product ∀x:U, T", Got: wtFn.typ.String()}
		return nil, errors.Wrap(err, ruleApp.Name)
	}
	if err := consistentEnv(wtFn.env, wtArg.env); err != nil {
		return nil, errors.Wrap(err, ruleApp.Name)
	}
	if err := consistentCtx(wtFn.ctx, wtArg.ctx); err != nil {
		return nil, errors.Wrap(err, ruleApp.Name)
	}
	if err := consistentTerm("U", prod.T, wtArg.typ); err != nil {
		return nil, errors.Wrap(err, ruleApp.Name)
	}
	return &WT{
		rule:     ruleApp,
		premises: []Proof{wtFn, wtArg},
		env:      wtFn.env,
		ctx:      wtFn.ctx,
		term:     Apply{Fn: wtFn.term, Arg: wtArg.term},
		typ:      prod.U.Substitute(prod.X, wtArg.term),
	}, nil
}

// Let types a local definition, substituting the bound term into the body's
// type:
//
//	E[Γ] ⊢ t : T    E[Γ::(x:=t:T)] ⊢ u : U
//	--------------------------------------
//	E[Γ] ⊢ let x:=t:T in u : U{x/t}
func Let(wtOuter *WT, wtInner *WT) (*WT, error) {
	pre, dec, err := wtInner.ctx.Pop()
	if err != nil {
		return nil, errors.Wrap(err, ruleLet.Name)
	}
	def, ok := dec.(LocalDef)
	if !ok {
		err := &TypeMismatchError{Want: "a definition x:=t:T", Got: dec.String()}
		return nil, errors.Wrap(err, ruleLet.Name)
	}
	if err := consistentEnv(wtOuter.env, wtInner.env); err != nil {
		return nil, errors.Wrap(err, ruleLet.Name)
	}
	if err := consistentCtx(wtOuter.ctx, pre); err != nil {
		return nil, errors.Wrap(err, ruleLet.Name)
	}
	if err := consistentTerm("t", wtOuter.term, def.Val); err != nil {
		return nil, errors.Wrap(err, ruleLet.Name)
	}
	if err := consistentTerm("T", wtOuter.typ, def.T); err != nil {
		return nil, errors.Wrap(err, ruleLet.Name)
	}
	return &WT{
		rule:     ruleLet,
		premises: []Proof{wtOuter, wtInner},
		env:      wtOuter.env,
		ctx:      wtOuter.ctx,
		term:     LetIn{X: def.X, Val: def.Val, T: def.T, Body: wtInner.term},
		typ:      wtInner.typ.Substitute(def.X, def.Val),
	}, nil
}

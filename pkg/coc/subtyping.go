package coc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Subtyping is the judgment E[Γ] ⊢ t1 ≤βδζη t2, the cumulativity order on
// types. Values are only produced by the subtyping rule constructors.
type Subtyping struct {
	rule     Rule
	premises []Proof
	env      Environment
	ctx      Context
	sub      Term
	sup      Term
}

var _ Proof = (*Subtyping)(nil)

// Env returns the judged environment.
func (s *Subtyping) Env() Environment { return s.env }

// Ctx returns the judged context.
func (s *Subtyping) Ctx() Context { return s.ctx }

// Sub returns the smaller type t1.
func (s *Subtyping) Sub() Term { return s.sub }

// Sup returns the larger type t2.
func (s *Subtyping) Sup() Term { return s.sup }

func (s *Subtyping) Rule() Rule { return s.rule }

func (s *Subtyping) Premises() []Proof { return s.premises }

func (s *Subtyping) Conclusion() string {
	return fmt.Sprintf("%s%s ⊢ %s ≤βδζη %s", s.env, s.ctx, s.sub, s.sup)
}

// SubConv injects convertibility into the subtyping order:
//
//	E[Γ] ⊢ t1 =βδζη t2
//	------------------
//	E[Γ] ⊢ t1 ≤βδζη t2
func SubConv(conv *Convertible) *Subtyping {
	return &Subtyping{
		rule:     ruleSubConv,
		premises: []Proof{conv},
		env:      conv.env,
		ctx:      conv.ctx,
		sub:      conv.t1,
		sup:      conv.t2,
	}
}

// SubUniverse orders the universes: Type(i) ≤ Type(j) whenever 0 < i ≤ j.
func SubUniverse(env Environment, ctx Context, i, j int) (*Subtyping, error) {
	if i <= 0 || i > j {
		return nil, errors.Wrap(&InvalidUniverseError{Index: i, Bound: j}, ruleSubUniverse.Name)
	}
	return &Subtyping{
		rule: ruleSubUniverse,
		env:  env,
		ctx:  ctx,
		sub:  TypeI{i: i},
		sup:  TypeI{i: j},
	}, nil
}

// SubSet places Set below every universe: Set ≤ Type(i) for 0 < i.
func SubSet(env Environment, ctx Context, i int) (*Subtyping, error) {
	if i <= 0 {
		return nil, errors.Wrap(&InvalidUniverseError{Index: i}, ruleSubSet.Name)
	}
	return &Subtyping{
		rule: ruleSubSet,
		env:  env,
		ctx:  ctx,
		sub:  Set{},
		sup:  TypeI{i: i},
	}, nil
}

// SubProp places Prop below Set.
func SubProp(env Environment, ctx Context) *Subtyping {
	return &Subtyping{
		rule: ruleSubProp,
		env:  env,
		ctx:  ctx,
		sub:  Prop{},
		sup:  Set{},
	}
}

// SubProd lifts subtyping over products, covariantly in the codomain:
//
//	E[Γ] ⊢ T =βδζη U    E[Γ::(x:T)] ⊢ T' ≤βδζη U'
//	---------------------------------------------
//	E[Γ] ⊢ ∀x:T, T' ≤βδζη ∀x:U, U'
func SubProd(dom *Convertible, cod *Subtyping) (*Subtyping, error) {
	pre, dec, err := cod.ctx.Pop()
	if err != nil {
		return nil, errors.Wrap(err, ruleSubProd.Name)
	}
	assum, ok := dec.(LocalAssum)
	if !ok {
		err := &TypeMismatchError{Want: "an assumption x:T", Got: dec.String()}
		return nil, errors.Wrap(err, ruleSubProd.Name)
	}
	if err := consistentEnv(dom.env, cod.env); err != nil {
		return nil, errors.Wrap(err, ruleSubProd.Name)
	}
	if err := consistentCtx(dom.ctx, pre); err != nil {
		return nil, errors.Wrap(err, ruleSubProd.Name)
	}
	if err := consistentTerm("T", dom.t1, assum.T); err != nil {
		return nil, errors.Wrap(err, ruleSubProd.Name)
	}
	return &Subtyping{
		rule:     ruleSubProd,
		premises: []Proof{dom, cod},
		env:      dom.env,
		ctx:      dom.ctx,
		sub:      Prod{X: assum.X, T: dom.t1, U: cod.sub},
		sup:      Prod{X: assum.X, T: dom.t2, U: cod.sup},
	}, nil
}

// SubTrans chains two subtypings:
//
//	E[Γ] ⊢ t1 ≤βδζη t2    E[Γ] ⊢ t2 ≤βδζη t3
//	----------------------------------------
//	E[Γ] ⊢ t1 ≤βδζη t3
func SubTrans(s1, s2 *Subtyping) (*Subtyping, error) {
	if err := consistentEnv(s1.env, s2.env); err != nil {
		return nil, errors.Wrap(err, ruleSubTrans.Name)
	}
	if err := consistentCtx(s1.ctx, s2.ctx); err != nil {
		return nil, errors.Wrap(err, ruleSubTrans.Name)
	}
	if err := consistentTerm("t2", s1.sup, s2.sub); err != nil {
		return nil, errors.Wrap(err, ruleSubTrans.Name)
	}
	return &Subtyping{
		rule:     ruleSubTrans,
		premises: []Proof{s1, s2},
		env:      s1.env,
		ctx:      s1.ctx,
		sub:      s1.sub,
		sup:      s2.sup,
	}, nil
}

// ConvRule retypes a term at a supertype of its type:
//
//	E[Γ] ⊢ U : s    E[Γ] ⊢ t : T    E[Γ] ⊢ T ≤βδζη U
//	------------------------------------------------
//	E[Γ] ⊢ t : U
func ConvRule(wtU *WT, wtT *WT, sub *Subtyping) (*WT, error) {
	if _, ok := wtU.typ.(Sort); !ok {
		err := &TypeMismatchError{Want: "a sort", Got: wtU.typ.String()}
		return nil, errors.Wrap(err, ruleConv.Name)
	}
	if err := consistentEnv(wtU.env, wtT.env); err != nil {
		return nil, errors.Wrap(err, ruleConv.Name)
	}
	if err := consistentEnv(wtU.env, sub.env); err != nil {
		return nil, errors.Wrap(err, ruleConv.Name)
	}
	if err := consistentCtx(wtU.ctx, wtT.ctx); err != nil {
		return nil, errors.Wrap(err, ruleConv.Name)
	}
	if err := consistentCtx(wtU.ctx, sub.ctx); err != nil {
		return nil, errors.Wrap(err, ruleConv.Name)
	}
	if err := consistentTerm("T", wtT.typ, sub.sub); err != nil {
		return nil, errors.Wrap(err, ruleConv.Name)
	}
	if err := consistentTerm("U", wtU.term, sub.sup); err != nil {
		return nil, errors.Wrap(err, ruleConv.Name)
	}
	return &WT{
		rule:     ruleConv,
		premises: []Proof{wtU, wtT, sub},
		env:      wtU.env,
		ctx:      wtU.ctx,
		term:     wtT.term,
		typ:      wtU.term,
	}, nil
}

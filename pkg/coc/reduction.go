package coc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reduction is the judgment E[Γ] ⊢ t1 ▷ t2: t1 reduces to t2 in one or more
// β, δ, Δ, or ζ steps. Values are only produced by the reduction rule
// constructors.
type Reduction struct {
	rule     Rule
	premises []Proof
	env      Environment
	ctx      Context
	from     Term
	to       Term
}

var _ Proof = (*Reduction)(nil)

// Env returns the judged environment.
func (r *Reduction) Env() Environment { return r.env }

// Ctx returns the judged context.
func (r *Reduction) Ctx() Context { return r.ctx }

// From returns the redex t1.
func (r *Reduction) From() Term { return r.from }

// To returns the reduct t2.
func (r *Reduction) To() Term { return r.to }

func (r *Reduction) Rule() Rule { return r.rule }

func (r *Reduction) Premises() []Proof { return r.premises }

func (r *Reduction) Conclusion() string {
	return fmt.Sprintf("%s%s ⊢ %s ▷ %s", r.env, r.ctx, r.from, r.to)
}

// BetaReduction contracts an application of an abstraction:
//
//	E[Γ] ⊢ ((λx:T.t) u) ▷ t{x/u}
//
// The caller supplies the target term; it must be alpha-convertible to the
// substitution the kernel computes, so the target may use different bound
// variable names but nothing else.
func BetaReduction(env Environment, ctx Context, redex Apply, to Term) (*Reduction, error) {
	lam, ok := redex.Fn.(Abstract)
	if !ok {
		err := &TypeMismatchError{Want: "an abstraction λx:T.t", Got: redex.Fn.String()}
		return nil, errors.Wrap(err, ruleBetaReduction.Name)
	}
	computed := lam.Body.Substitute(lam.X, redex.Arg)
	if !computed.AlphaEq(to) {
		err := &MalformedSubstitutionError{Want: computed.String(), Got: to.String()}
		return nil, errors.Wrap(err, ruleBetaReduction.Name)
	}
	return &Reduction{
		rule: ruleBetaReduction,
		env:  env,
		ctx:  ctx,
		from: redex,
		to:   to,
	}, nil
}

// DeltaLocal unfolds a variable defined in the context:
//
//	WF(E)[Γ]    (x:=t:T) ∈ Γ
//	------------------------
//	E[Γ] ⊢ x ▷ t
func DeltaLocal(wf *WF, defIn *DefInContext) (*Reduction, error) {
	if err := consistentCtx(wf.ctx, defIn.ctx); err != nil {
		return nil, errors.Wrap(err, ruleDeltaLocal.Name)
	}
	return &Reduction{
		rule:     ruleDeltaLocal,
		premises: []Proof{wf, defIn},
		env:      wf.env,
		ctx:      wf.ctx,
		from:     defIn.def.X,
		to:       defIn.def.Val,
	}, nil
}

// DeltaGlobal unfolds a constant defined in the environment:
//
//	WF(E)[Γ]    (c:=t:T) ∈ E
//	------------------------
//	E[Γ] ⊢ c ▷ t
func DeltaGlobal(wf *WF, defIn *DefInEnv) (*Reduction, error) {
	if err := consistentEnv(wf.env, defIn.env); err != nil {
		return nil, errors.Wrap(err, ruleDeltaGlobal.Name)
	}
	return &Reduction{
		rule:     ruleDeltaGlobal,
		premises: []Proof{wf, defIn},
		env:      wf.env,
		ctx:      wf.ctx,
		from:     defIn.def.C,
		to:       defIn.def.Val,
	}, nil
}

// ZetaReduction contracts a let binding by substituting the definiens:
//
//	WF(E)[Γ]    E[Γ] ⊢ u : U    E[Γ::(x:=u:U)] ⊢ t : T
//	--------------------------------------------------
//	E[Γ] ⊢ let x := u : U in t ▷ t{x/u}
func ZetaReduction(wf *WF, wtVal *WT, wtBody *WT) (*Reduction, error) {
	pre, dec, err := wtBody.ctx.Pop()
	if err != nil {
		return nil, errors.Wrap(err, ruleZetaReduction.Name)
	}
	def, ok := dec.(LocalDef)
	if !ok {
		err := &TypeMismatchError{Want: "a definition x:=u:U", Got: dec.String()}
		return nil, errors.Wrap(err, ruleZetaReduction.Name)
	}
	if err := consistentEnv(wf.env, wtVal.env); err != nil {
		return nil, errors.Wrap(err, ruleZetaReduction.Name)
	}
	if err := consistentEnv(wf.env, wtBody.env); err != nil {
		return nil, errors.Wrap(err, ruleZetaReduction.Name)
	}
	if err := consistentCtx(wf.ctx, wtVal.ctx); err != nil {
		return nil, errors.Wrap(err, ruleZetaReduction.Name)
	}
	if err := consistentCtx(wf.ctx, pre); err != nil {
		return nil, errors.Wrap(err, ruleZetaReduction.Name)
	}
	if err := consistentTerm("u", wtVal.term, def.Val); err != nil {
		return nil, errors.Wrap(err, ruleZetaReduction.Name)
	}
	if err := consistentTerm("U", wtVal.typ, def.T); err != nil {
		return nil, errors.Wrap(err, ruleZetaReduction.Name)
	}
	return &Reduction{
		rule:     ruleZetaReduction,
		premises: []Proof{wf, wtVal, wtBody},
		env:      wf.env,
		ctx:      wf.ctx,
		from:     LetIn{X: def.X, Val: def.Val, T: def.T, Body: wtBody.term},
		to:       wtBody.term.Substitute(def.X, def.Val),
	}, nil
}

// ReductionTrans chains two reductions:
//
//	E[Γ] ⊢ t1 ▷ t2    E[Γ] ⊢ t2 ▷ t3
//	--------------------------------
//	E[Γ] ⊢ t1 ▷ t3
func ReductionTrans(r1, r2 *Reduction) (*Reduction, error) {
	if err := consistentEnv(r1.env, r2.env); err != nil {
		return nil, errors.Wrap(err, ruleReductionTrans.Name)
	}
	if err := consistentCtx(r1.ctx, r2.ctx); err != nil {
		return nil, errors.Wrap(err, ruleReductionTrans.Name)
	}
	if err := consistentTerm("t2", r1.to, r2.from); err != nil {
		return nil, errors.Wrap(err, ruleReductionTrans.Name)
	}
	return &Reduction{
		rule:     ruleReductionTrans,
		premises: []Proof{r1, r2},
		env:      r1.env,
		ctx:      r1.ctx,
		from:     r1.from,
		to:       r2.to,
	}, nil
}

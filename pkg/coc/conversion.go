package coc

import (
	"fmt"

	"github.com/pkg/errors"
)

// EtaConversion is the judgment E[Γ] ⊢ t =η λx:T.u: the term t, applied to
// the bound variable, is convertible to the abstraction's body. Values are
// only produced by NewEtaConversion.
type EtaConversion struct {
	premises []Proof
	env      Environment
	ctx      Context
	t        Term
	lam      Abstract
}

var _ Proof = (*EtaConversion)(nil)

// NewEtaConversion proves t =η λx:T.u from a typing of the abstraction and a
// convertibility of its body with (t x) under the extended context:
//
//	E[Γ] ⊢ λx:T.u : ∀y:T, U    E[Γ::(x:T)] ⊢ u =βδζη (t x)
//	------------------------------------------------------
//	E[Γ] ⊢ t =η λx:T.u
func NewEtaConversion(wt *WT, conv *Convertible) (*EtaConversion, error) {
	lam, ok := wt.term.(Abstract)
	if !ok {
		err := &TypeMismatchError{Want: "an abstraction λx:T.u", Got: wt.term.String()}
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	prod, ok := wt.typ.(Prod)
	if !ok {
		err := &TypeMismatchError{Want: "a product ∀y:T, U", Got: wt.typ.String()}
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	if err := consistentTerm("T", lam.T, prod.T); err != nil {
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	app, ok := conv.t2.(Apply)
	if !ok {
		err := &TypeMismatchError{Want: "an application (t x)", Got: conv.t2.String()}
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	pre, dec, err := conv.ctx.Pop()
	if err != nil {
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	if err := consistentEnv(wt.env, conv.env); err != nil {
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	if err := consistentCtx(wt.ctx, pre); err != nil {
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	if err := consistentTerm("x", lam.X, dec.Var()); err != nil {
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	if err := consistentTerm("x", lam.X, app.Arg); err != nil {
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	if err := consistentTerm("T", lam.T, dec.Type()); err != nil {
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	if err := consistentTerm("u", lam.Body, conv.t1); err != nil {
		return nil, errors.Wrap(err, ruleEtaConversion.Name)
	}
	return &EtaConversion{
		premises: []Proof{wt, conv},
		env:      wt.env,
		ctx:      wt.ctx,
		t:        app.Fn,
		lam:      lam,
	}, nil
}

// Env returns the judged environment.
func (e *EtaConversion) Env() Environment { return e.env }

// Ctx returns the judged context.
func (e *EtaConversion) Ctx() Context { return e.ctx }

// T returns the eta-expanded side t.
func (e *EtaConversion) T() Term { return e.t }

// Lam returns the abstraction side λx:T.u.
func (e *EtaConversion) Lam() Abstract { return e.lam }

func (e *EtaConversion) Rule() Rule { return ruleEtaConversion }

func (e *EtaConversion) Premises() []Proof { return e.premises }

func (e *EtaConversion) Conclusion() string {
	return fmt.Sprintf("%s%s ⊢ %s =η %s", e.env, e.ctx, e.t, e.lam)
}

// Convertible is the judgment E[Γ] ⊢ t1 =βδζη t2: both terms reduce to ends
// that are alpha-equivalent, or eta-convertible one way or the other. Values
// are only produced by NewConvertible.
type Convertible struct {
	premises []Proof
	env      Environment
	ctx      Context
	t1       Term
	t2       Term
}

var _ Proof = (*Convertible)(nil)

// NewConvertible proves t1 =βδζη t2 from a reduction of each side:
//
//	E[Γ] ⊢ t1 ▷ ... ▷ u1
//	E[Γ] ⊢ t2 ▷ ... ▷ u2
//	u1 ~α u2 or E[Γ] ⊢ u1 =η u2 or E[Γ] ⊢ u2 =η u1
//	----------------------------------------------
//	E[Γ] ⊢ t1 =βδζη t2
//
// Pass a nil eta to use the alpha-equivalence branch. With a non-nil eta the
// reducts must match the eta judgment's two sides, in either orientation.
func NewConvertible(red1, red2 *Reduction, eta *EtaConversion) (*Convertible, error) {
	if err := consistentEnv(red1.env, red2.env); err != nil {
		return nil, errors.Wrap(err, ruleConvertible.Name)
	}
	if err := consistentCtx(red1.ctx, red2.ctx); err != nil {
		return nil, errors.Wrap(err, ruleConvertible.Name)
	}
	premises := []Proof{red1, red2}
	if eta == nil {
		if !red1.to.AlphaEq(red2.to) {
			err := &TypeMismatchError{
				Want: fmt.Sprintf("a reduct alpha-equivalent to '%s'", red1.to),
				Got:  red2.to.String(),
			}
			return nil, errors.Wrap(err, ruleConvertible.Name)
		}
	} else {
		if err := consistentEnv(red1.env, eta.env); err != nil {
			return nil, errors.Wrap(err, ruleConvertible.Name)
		}
		if err := consistentCtx(red1.ctx, eta.ctx); err != nil {
			return nil, errors.Wrap(err, ruleConvertible.Name)
		}
		forward := red1.to.Equal(eta.t) && red2.to.Equal(eta.lam)
		backward := red2.to.Equal(eta.t) && red1.to.Equal(eta.lam)
		if !forward && !backward {
			err := &TypeMismatchError{
				Want: fmt.Sprintf("reducts matching '%s' and '%s'", eta.t, eta.lam),
				Got:  fmt.Sprintf("'%s' and '%s'", red1.to, red2.to),
			}
			return nil, errors.Wrap(err, ruleConvertible.Name)
		}
		premises = append(premises, eta)
	}
	return &Convertible{
		premises: premises,
		env:      red1.env,
		ctx:      red1.ctx,
		t1:       red1.from,
		t2:       red2.from,
	}, nil
}

// Env returns the judged environment.
func (c *Convertible) Env() Environment { return c.env }

// Ctx returns the judged context.
func (c *Convertible) Ctx() Context { return c.ctx }

// T1 returns the left term.
func (c *Convertible) T1() Term { return c.t1 }

// T2 returns the right term.
func (c *Convertible) T2() Term { return c.t2 }

func (c *Convertible) Rule() Rule { return ruleConvertible }

func (c *Convertible) Premises() []Proof { return c.premises }

func (c *Convertible) Conclusion() string {
	return fmt.Sprintf("%s%s ⊢ %s =βδζη %s", c.env, c.ctx, c.t1, c.t2)
}

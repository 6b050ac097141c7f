// Package coc implements a proof-object kernel for a calculus of
// constructions with universes: terms, local contexts, global environments,
// typing judgments, reduction, convertibility and subtyping.
//
// Every judgment is represented by a value that can only be obtained from a
// rule constructor, and each constructor validates its premises before
// returning. A judgment value that exists is therefore always valid.
package coc

import "fmt"

// Term represents all term constructors of the calculus.
type Term interface {
	// Equal is purely syntactic equivalence. It distinguishes terms that
	// differ only in bound-variable names; use AlphaEq for that.
	Equal(Term) bool
	// AlphaEq is equivalence up to renaming of bound variables. It unifies
	// the bound variables of both sides with a shared fresh variable and
	// recurses.
	AlphaEq(Term) bool
	// AllVars returns every variable occurring in the term, free or bound.
	AllVars() VarSet
	// FreeVars returns the free variables of the term.
	FreeVars() VarSet
	// Substitute replaces free occurrences of x with t. It does not rename
	// bound variables to avoid capture: the caller must ensure no free
	// variable of t is bound along the substitution path, renaming with
	// ReplaceBound first where needed.
	Substitute(x Var, t Term) Term

	fmt.Stringer
}

// Sort is the sub-family of terms that classify types: SProp, Prop, Set and
// Type(i).
type Sort interface {
	Term
	isSort()
}

// Binder is implemented by terms that bind a variable over part of their
// body (Prod, Abstract, LetIn).
type Binder interface {
	Term
	BoundVar() Var
	// ReplaceBound substitutes a new variable for the term's own bound
	// variable in all sub-positions. The new variable must be fresh with
	// respect to the term.
	ReplaceBound(v Var) Binder
}

// SProp is the sort of definitionally proof-irrelevant propositions.
type SProp struct{}

var _ Sort = SProp{}

func (SProp) isSort() {}

func (SProp) Equal(other Term) bool {
	_, ok := other.(SProp)
	return ok
}

func (s SProp) AlphaEq(other Term) bool { return s.Equal(other) }

func (SProp) AllVars() VarSet { return NewVarSet() }

func (SProp) FreeVars() VarSet { return NewVarSet() }

func (s SProp) Substitute(Var, Term) Term { return s }

func (SProp) String() string { return "SProp" }

// Prop is the sort of propositions.
type Prop struct{}

var _ Sort = Prop{}

func (Prop) isSort() {}

func (Prop) Equal(other Term) bool {
	_, ok := other.(Prop)
	return ok
}

func (s Prop) AlphaEq(other Term) bool { return s.Equal(other) }

func (Prop) AllVars() VarSet { return NewVarSet() }

func (Prop) FreeVars() VarSet { return NewVarSet() }

func (s Prop) Substitute(Var, Term) Term { return s }

func (Prop) String() string { return "Prop" }

// Set is the sort of small datatypes.
type Set struct{}

var _ Sort = Set{}

func (Set) isSort() {}

func (Set) Equal(other Term) bool {
	_, ok := other.(Set)
	return ok
}

func (s Set) AlphaEq(other Term) bool { return s.Equal(other) }

func (Set) AllVars() VarSet { return NewVarSet() }

func (Set) FreeVars() VarSet { return NewVarSet() }

func (s Set) Substitute(Var, Term) Term { return s }

func (Set) String() string { return "Set" }

// TypeI is the predicative universe Type(i), i > 0. The zero value is not a
// valid universe; construct with NewTypeI.
type TypeI struct {
	i int
}

var _ Sort = TypeI{}

// NewTypeI returns the universe Type(i). The index must be positive.
func NewTypeI(i int) (TypeI, error) {
	if i <= 0 {
		return TypeI{}, &InvalidUniverseError{Index: i}
	}
	return TypeI{i: i}, nil
}

// Index returns the universe index.
func (t TypeI) Index() int { return t.i }

func (TypeI) isSort() {}

func (t TypeI) Equal(other Term) bool {
	ot, ok := other.(TypeI)
	return ok && t.i == ot.i
}

func (t TypeI) AlphaEq(other Term) bool { return t.Equal(other) }

func (TypeI) AllVars() VarSet { return NewVarSet() }

func (TypeI) FreeVars() VarSet { return NewVarSet() }

func (t TypeI) Substitute(Var, Term) Term { return t }

func (t TypeI) String() string { return fmt.Sprintf("Type(%d)", t.i) }

// Var is a variable occurrence, free or bound. Identity is the name.
type Var struct {
	Name string
}

var _ Term = Var{}

func (v Var) Equal(other Term) bool {
	ov, ok := other.(Var)
	return ok && v.Name == ov.Name
}

func (v Var) AlphaEq(other Term) bool { return v.Equal(other) }

func (v Var) AllVars() VarSet { return NewVarSet(v) }

func (v Var) FreeVars() VarSet { return NewVarSet(v) }

func (v Var) Substitute(x Var, t Term) Term {
	if v.Equal(x) {
		return t
	}
	return v
}

func (v Var) String() string { return v.Name }

// Const is a reference to a declaration in the global environment.
type Const struct {
	Name string
}

var _ Term = Const{}

func (c Const) Equal(other Term) bool {
	oc, ok := other.(Const)
	return ok && c.Name == oc.Name
}

func (c Const) AlphaEq(other Term) bool { return c.Equal(other) }

func (Const) AllVars() VarSet { return NewVarSet() }

func (Const) FreeVars() VarSet { return NewVarSet() }

func (c Const) Substitute(Var, Term) Term { return c }

func (c Const) String() string { return c.Name }

// Prod is the dependent product ∀x:T, U. The bound variable scopes over U.
type Prod struct {
	X Var
	T Term
	U Term
}

var _ Binder = Prod{}

func (p Prod) Equal(other Term) bool {
	op, ok := other.(Prod)
	return ok && p.X.Equal(op.X) && p.T.Equal(op.T) && p.U.Equal(op.U)
}

func (p Prod) AlphaEq(other Term) bool {
	op, ok := other.(Prod)
	if !ok {
		return false
	}
	fresh := FreshVar(p, op)
	pr := p.ReplaceBound(fresh).(Prod)
	or := op.ReplaceBound(fresh).(Prod)
	return pr.T.AlphaEq(or.T) && pr.U.AlphaEq(or.U)
}

func (p Prod) AllVars() VarSet {
	vs := p.T.AllVars().Union(p.U.AllVars())
	vs.Add(p.X)
	return vs
}

func (p Prod) FreeVars() VarSet {
	vs := p.T.FreeVars().Union(p.U.FreeVars())
	vs.Remove(p.X)
	return vs
}

func (p Prod) Substitute(x Var, t Term) Term {
	if x.Equal(p.X) {
		return p
	}
	return Prod{X: p.X, T: p.T.Substitute(x, t), U: p.U.Substitute(x, t)}
}

func (p Prod) BoundVar() Var { return p.X }

func (p Prod) ReplaceBound(v Var) Binder {
	return Prod{X: v, T: p.T.Substitute(p.X, v), U: p.U.Substitute(p.X, v)}
}

func (p Prod) String() string {
	if p.U.FreeVars().Contains(p.X) {
		return fmt.Sprintf("forall %s:%s, %s", p.X, p.T, p.U)
	}
	return fmt.Sprintf("(%s -> %s)", p.T, p.U)
}

// Abstract is the lambda abstraction λx:T.u. The bound variable scopes over
// the body.
type Abstract struct {
	X    Var
	T    Term
	Body Term
}

var _ Binder = Abstract{}

func (a Abstract) Equal(other Term) bool {
	oa, ok := other.(Abstract)
	return ok && a.X.Equal(oa.X) && a.T.Equal(oa.T) && a.Body.Equal(oa.Body)
}

func (a Abstract) AlphaEq(other Term) bool {
	oa, ok := other.(Abstract)
	if !ok {
		return false
	}
	fresh := FreshVar(a, oa)
	ar := a.ReplaceBound(fresh).(Abstract)
	or := oa.ReplaceBound(fresh).(Abstract)
	return ar.T.AlphaEq(or.T) && ar.Body.AlphaEq(or.Body)
}

func (a Abstract) AllVars() VarSet {
	vs := a.T.AllVars().Union(a.Body.AllVars())
	vs.Add(a.X)
	return vs
}

func (a Abstract) FreeVars() VarSet {
	vs := a.T.FreeVars().Union(a.Body.FreeVars())
	vs.Remove(a.X)
	return vs
}

func (a Abstract) Substitute(x Var, t Term) Term {
	if x.Equal(a.X) {
		return a
	}
	return Abstract{X: a.X, T: a.T.Substitute(x, t), Body: a.Body.Substitute(x, t)}
}

func (a Abstract) BoundVar() Var { return a.X }

func (a Abstract) ReplaceBound(v Var) Binder {
	return Abstract{X: v, T: a.T.Substitute(a.X, v), Body: a.Body.Substitute(a.X, v)}
}

func (a Abstract) String() string {
	return fmt.Sprintf("fun(%s:%s)=>%s", a.X, a.T, a.Body)
}

// Apply is the application (t u).
type Apply struct {
	Fn  Term
	Arg Term
}

var _ Term = Apply{}

func (a Apply) Equal(other Term) bool {
	oa, ok := other.(Apply)
	return ok && a.Fn.Equal(oa.Fn) && a.Arg.Equal(oa.Arg)
}

func (a Apply) AlphaEq(other Term) bool {
	oa, ok := other.(Apply)
	return ok && a.Fn.AlphaEq(oa.Fn) && a.Arg.AlphaEq(oa.Arg)
}

func (a Apply) AllVars() VarSet {
	return a.Fn.AllVars().Union(a.Arg.AllVars())
}

func (a Apply) FreeVars() VarSet {
	return a.Fn.FreeVars().Union(a.Arg.FreeVars())
}

func (a Apply) Substitute(x Var, t Term) Term {
	return Apply{Fn: a.Fn.Substitute(x, t), Arg: a.Arg.Substitute(x, t)}
}

func (a Apply) String() string {
	return fmt.Sprintf("(%s %s)", a.Fn, a.Arg)
}

// LetIn is the local definition let x:=t:T in u. The bound variable scopes
// over the body.
type LetIn struct {
	X    Var
	Val  Term
	T    Term
	Body Term
}

var _ Binder = LetIn{}

func (l LetIn) Equal(other Term) bool {
	ol, ok := other.(LetIn)
	return ok && l.X.Equal(ol.X) && l.Val.Equal(ol.Val) && l.T.Equal(ol.T) && l.Body.Equal(ol.Body)
}

func (l LetIn) AlphaEq(other Term) bool {
	ol, ok := other.(LetIn)
	if !ok {
		return false
	}
	fresh := FreshVar(l, ol)
	lr := l.ReplaceBound(fresh).(LetIn)
	or := ol.ReplaceBound(fresh).(LetIn)
	return lr.Val.AlphaEq(or.Val) && lr.T.AlphaEq(or.T) && lr.Body.AlphaEq(or.Body)
}

func (l LetIn) AllVars() VarSet {
	vs := l.Val.AllVars().Union(l.T.AllVars()).Union(l.Body.AllVars())
	vs.Add(l.X)
	return vs
}

func (l LetIn) FreeVars() VarSet {
	vs := l.Val.FreeVars().Union(l.T.FreeVars()).Union(l.Body.FreeVars())
	vs.Remove(l.X)
	return vs
}

func (l LetIn) Substitute(x Var, t Term) Term {
	if x.Equal(l.X) {
		return l
	}
	return LetIn{
		X:    l.X,
		Val:  l.Val.Substitute(x, t),
		T:    l.T.Substitute(x, t),
		Body: l.Body.Substitute(x, t),
	}
}

func (l LetIn) BoundVar() Var { return l.X }

func (l LetIn) ReplaceBound(v Var) Binder {
	return LetIn{
		X:    v,
		Val:  l.Val.Substitute(l.X, v),
		T:    l.T.Substitute(l.X, v),
		Body: l.Body.Substitute(l.X, v),
	}
}

func (l LetIn) String() string {
	return fmt.Sprintf("let %s:=%s:%s in %s", l.X, l.Val, l.T, l.Body)
}

// IsSort is the proof object for `s ∈ S`: the witness that a term is a sort.
type IsSort struct {
	s Sort
}

var _ Proof = (*IsSort)(nil)

// NewIsSort proves that t is a sort. It fails with a TypeMismatchError if t
// is any other term variant.
func NewIsSort(t Term) (*IsSort, error) {
	s, ok := t.(Sort)
	if !ok {
		return nil, &TypeMismatchError{Want: "a sort", Got: t.String()}
	}
	return &IsSort{s: s}, nil
}

// Sort returns the witnessed sort.
func (p *IsSort) Sort() Sort { return p.s }

func (p *IsSort) Rule() Rule { return ruleIsSort }

func (p *IsSort) Premises() []Proof { return nil }

func (p *IsSort) Conclusion() string {
	return fmt.Sprintf("%s ∈ S", p.s)
}

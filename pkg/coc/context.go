package coc

import (
	"fmt"
	"strings"
)

// LocalDec is a declaration in a local context: either an assumption x : T
// or a definition x := t : T.
type LocalDec interface {
	Var() Var
	Type() Term
	// Equal is syntactic equivalence per variant: an assumption and a
	// definition for the same variable are never Equal.
	Equal(LocalDec) bool

	fmt.Stringer
}

// LocalAssum is the local assumption x : T.
type LocalAssum struct {
	X Var
	T Term
}

var _ LocalDec = LocalAssum{}

func (d LocalAssum) Var() Var { return d.X }

func (d LocalAssum) Type() Term { return d.T }

func (d LocalAssum) Equal(other LocalDec) bool {
	od, ok := other.(LocalAssum)
	return ok && d.X.Equal(od.X) && d.T.Equal(od.T)
}

func (d LocalAssum) String() string {
	return fmt.Sprintf("(%s : %s)", d.X, d.T)
}

// LocalDef is the local definition x := t : T.
type LocalDef struct {
	X   Var
	Val Term
	T   Term
}

var _ LocalDec = LocalDef{}

func (d LocalDef) Var() Var { return d.X }

func (d LocalDef) Type() Term { return d.T }

func (d LocalDef) Equal(other LocalDec) bool {
	od, ok := other.(LocalDef)
	return ok && d.X.Equal(od.X) && d.Val.Equal(od.Val) && d.T.Equal(od.T)
}

func (d LocalDef) String() string {
	return fmt.Sprintf("(%s := %s : %s)", d.X, d.Val, d.T)
}

// Context is an ordered sequence of local declarations. The zero value is
// the empty context. Contexts are immutable: Push and Concat return new
// values and never mutate the receiver, so a context may be shared freely
// across branching derivations.
type Context struct {
	decs []LocalDec
}

// NewContext builds a context from declarations, oldest first.
func NewContext(decs ...LocalDec) Context {
	return Context{decs: decs}
}

// Push returns the context extended with one declaration, Γ::(...).
func (c Context) Push(dec LocalDec) Context {
	decs := make([]LocalDec, len(c.decs), len(c.decs)+1)
	copy(decs, c.decs)
	return Context{decs: append(decs, dec)}
}

// Pop splits off the most recent declaration. It fails with an
// EmptyContainerError on the empty context.
func (c Context) Pop() (Context, LocalDec, error) {
	if c.IsEmpty() {
		return Context{}, nil, &EmptyContainerError{Container: "context"}
	}
	return Context{decs: c.decs[:len(c.decs)-1]}, c.decs[len(c.decs)-1], nil
}

// Concat returns the concatenation Γ1; Γ2.
func (c Context) Concat(other Context) Context {
	decs := make([]LocalDec, 0, len(c.decs)+len(other.decs))
	decs = append(decs, c.decs...)
	decs = append(decs, other.decs...)
	return Context{decs: decs}
}

func (c Context) IsEmpty() bool { return len(c.decs) == 0 }

func (c Context) Len() int { return len(c.decs) }

func (c Context) Equal(other Context) bool {
	if len(c.decs) != len(other.decs) {
		return false
	}
	for i, dec := range c.decs {
		if !dec.Equal(other.decs[i]) {
			return false
		}
	}
	return true
}

func (c Context) String() string {
	if len(c.decs) == 0 {
		return "[]"
	}
	strs := make([]string, len(c.decs))
	for i, dec := range c.decs {
		strs[i] = dec.String()
	}
	return "[" + strings.Join(strs, "; ") + "]"
}

// VarNotInContext is the proof object for x ∉ Γ.
type VarNotInContext struct {
	x   Var
	ctx Context
}

var _ Proof = (*VarNotInContext)(nil)

// NewVarNotInContext proves that no declaration in ctx binds x. It fails
// with an AlreadyBoundError otherwise.
func NewVarNotInContext(x Var, ctx Context) (*VarNotInContext, error) {
	for _, dec := range ctx.decs {
		if dec.Var().Equal(x) {
			return nil, &AlreadyBoundError{Name: x.Name, Where: "the context " + ctx.String()}
		}
	}
	return &VarNotInContext{x: x, ctx: ctx}, nil
}

// Var returns the absent variable.
func (p *VarNotInContext) Var() Var { return p.x }

// Ctx returns the context the proof is about.
func (p *VarNotInContext) Ctx() Context { return p.ctx }

func (p *VarNotInContext) Rule() Rule { return ruleVarNotInContext }

func (p *VarNotInContext) Premises() []Proof { return nil }

func (p *VarNotInContext) Conclusion() string {
	return fmt.Sprintf("%s ∉ %s", p.x, p.ctx)
}

// VarInContext is the proof object for x ∈ Γ.
type VarInContext struct {
	x   Var
	ctx Context
}

var _ Proof = (*VarInContext)(nil)

// NewVarInContext proves that some declaration in ctx binds x.
func NewVarInContext(x Var, ctx Context) (*VarInContext, error) {
	for _, dec := range ctx.decs {
		if dec.Var().Equal(x) {
			return &VarInContext{x: x, ctx: ctx}, nil
		}
	}
	return nil, &NotFoundError{What: x.Name, Where: "the context " + ctx.String()}
}

// Var returns the bound variable.
func (p *VarInContext) Var() Var { return p.x }

// Ctx returns the context the proof is about.
func (p *VarInContext) Ctx() Context { return p.ctx }

func (p *VarInContext) Rule() Rule { return ruleVarInContext }

func (p *VarInContext) Premises() []Proof { return nil }

func (p *VarInContext) Conclusion() string {
	return fmt.Sprintf("%s ∈ %s", p.x, p.ctx)
}

// AssumInContext is the proof object for (x : T) ∈ Γ. A definition
// x := t : T in Γ also satisfies the query: defining a variable assumes its
// type.
type AssumInContext struct {
	assum LocalAssum
	ctx   Context
}

var _ Proof = (*AssumInContext)(nil)

// NewAssumInContext proves that ctx declares the given typing, either as an
// assumption or as a definition with the same variable and type.
func NewAssumInContext(assum LocalAssum, ctx Context) (*AssumInContext, error) {
	for _, dec := range ctx.decs {
		switch d := dec.(type) {
		case LocalAssum:
			if d.Equal(assum) {
				return &AssumInContext{assum: assum, ctx: ctx}, nil
			}
		case LocalDef:
			if d.X.Equal(assum.X) && d.T.Equal(assum.T) {
				return &AssumInContext{assum: assum, ctx: ctx}, nil
			}
		}
	}
	return nil, &NotFoundError{What: assum.String(), Where: "the context " + ctx.String()}
}

// Assum returns the witnessed typing.
func (p *AssumInContext) Assum() LocalAssum { return p.assum }

// Ctx returns the context the proof is about.
func (p *AssumInContext) Ctx() Context { return p.ctx }

func (p *AssumInContext) Rule() Rule { return ruleAssumInContext }

func (p *AssumInContext) Premises() []Proof { return nil }

func (p *AssumInContext) Conclusion() string {
	return fmt.Sprintf("%s ∈ %s", p.assum, p.ctx)
}

// DefInContext is the proof object for (x := t : T) ∈ Γ. Unlike
// AssumInContext, only an actual definition satisfies it.
type DefInContext struct {
	def LocalDef
	ctx Context
}

var _ Proof = (*DefInContext)(nil)

// NewDefInContext proves that ctx contains exactly the given definition.
func NewDefInContext(def LocalDef, ctx Context) (*DefInContext, error) {
	for _, dec := range ctx.decs {
		if def.Equal(dec) {
			return &DefInContext{def: def, ctx: ctx}, nil
		}
	}
	return nil, &NotFoundError{What: def.String(), Where: "the context " + ctx.String()}
}

// Def returns the witnessed definition.
func (p *DefInContext) Def() LocalDef { return p.def }

// Ctx returns the context the proof is about.
func (p *DefInContext) Ctx() Context { return p.ctx }

func (p *DefInContext) Rule() Rule { return ruleDefInContext }

func (p *DefInContext) Premises() []Proof { return nil }

func (p *DefInContext) Conclusion() string {
	return fmt.Sprintf("%s ∈ %s", p.def, p.ctx)
}

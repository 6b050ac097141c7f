package coc

import (
	"fmt"
	"strings"
)

// GlobalDec is a declaration in the global environment: either an assumption
// c : T or a definition c := t : T.
type GlobalDec interface {
	Const() Const
	Type() Term
	Equal(GlobalDec) bool

	fmt.Stringer
}

// GlobalAssum is the global assumption (axiom) c : T.
type GlobalAssum struct {
	C Const
	T Term
}

var _ GlobalDec = GlobalAssum{}

func (d GlobalAssum) Const() Const { return d.C }

func (d GlobalAssum) Type() Term { return d.T }

func (d GlobalAssum) Equal(other GlobalDec) bool {
	od, ok := other.(GlobalAssum)
	return ok && d.C.Equal(od.C) && d.T.Equal(od.T)
}

func (d GlobalAssum) String() string {
	return fmt.Sprintf("(%s : %s)", d.C, d.T)
}

// GlobalDef is the global definition c := t : T.
type GlobalDef struct {
	C   Const
	Val Term
	T   Term
}

var _ GlobalDec = GlobalDef{}

func (d GlobalDef) Const() Const { return d.C }

func (d GlobalDef) Type() Term { return d.T }

func (d GlobalDef) Equal(other GlobalDec) bool {
	od, ok := other.(GlobalDef)
	return ok && d.C.Equal(od.C) && d.Val.Equal(od.Val) && d.T.Equal(od.T)
}

func (d GlobalDef) String() string {
	return fmt.Sprintf("(%s := %s : %s)", d.C, d.Val, d.T)
}

// Environment is an ordered sequence of global declarations. The zero value
// is the empty environment. Environments are immutable in the same way
// contexts are.
type Environment struct {
	decs []GlobalDec
}

// NewEnvironment builds an environment from declarations, oldest first.
func NewEnvironment(decs ...GlobalDec) Environment {
	return Environment{decs: decs}
}

// Push returns the environment extended with one declaration, E; (...).
func (e Environment) Push(dec GlobalDec) Environment {
	decs := make([]GlobalDec, len(e.decs), len(e.decs)+1)
	copy(decs, e.decs)
	return Environment{decs: append(decs, dec)}
}

// Pop splits off the most recent declaration. It fails with an
// EmptyContainerError on the empty environment.
func (e Environment) Pop() (Environment, GlobalDec, error) {
	if e.IsEmpty() {
		return Environment{}, nil, &EmptyContainerError{Container: "environment"}
	}
	return Environment{decs: e.decs[:len(e.decs)-1]}, e.decs[len(e.decs)-1], nil
}

func (e Environment) IsEmpty() bool { return len(e.decs) == 0 }

func (e Environment) Len() int { return len(e.decs) }

func (e Environment) Equal(other Environment) bool {
	if len(e.decs) != len(other.decs) {
		return false
	}
	for i, dec := range e.decs {
		if !dec.Equal(other.decs[i]) {
			return false
		}
	}
	return true
}

func (e Environment) String() string {
	if len(e.decs) == 0 {
		return "[]"
	}
	strs := make([]string, len(e.decs))
	for i, dec := range e.decs {
		strs[i] = dec.String()
	}
	return "[" + strings.Join(strs, "; ") + "]"
}

// ConstNotInEnv is the proof object for c ∉ E.
type ConstNotInEnv struct {
	c   Const
	env Environment
}

var _ Proof = (*ConstNotInEnv)(nil)

// NewConstNotInEnv proves that no declaration in env binds c.
func NewConstNotInEnv(c Const, env Environment) (*ConstNotInEnv, error) {
	for _, dec := range env.decs {
		if dec.Const().Equal(c) {
			return nil, &AlreadyBoundError{Name: c.Name, Where: "the environment " + env.String()}
		}
	}
	return &ConstNotInEnv{c: c, env: env}, nil
}

// Const returns the absent constant.
func (p *ConstNotInEnv) Const() Const { return p.c }

// Env returns the environment the proof is about.
func (p *ConstNotInEnv) Env() Environment { return p.env }

func (p *ConstNotInEnv) Rule() Rule { return ruleConstNotInEnv }

func (p *ConstNotInEnv) Premises() []Proof { return nil }

func (p *ConstNotInEnv) Conclusion() string {
	return fmt.Sprintf("%s ∉ %s", p.c, p.env)
}

// ConstInEnv is the proof object for c ∈ E.
type ConstInEnv struct {
	c   Const
	env Environment
}

var _ Proof = (*ConstInEnv)(nil)

// NewConstInEnv proves that some declaration in env binds c.
func NewConstInEnv(c Const, env Environment) (*ConstInEnv, error) {
	for _, dec := range env.decs {
		if dec.Const().Equal(c) {
			return &ConstInEnv{c: c, env: env}, nil
		}
	}
	return nil, &NotFoundError{What: c.Name, Where: "the environment " + env.String()}
}

// Const returns the bound constant.
func (p *ConstInEnv) Const() Const { return p.c }

// Env returns the environment the proof is about.
func (p *ConstInEnv) Env() Environment { return p.env }

func (p *ConstInEnv) Rule() Rule { return ruleConstInEnv }

func (p *ConstInEnv) Premises() []Proof { return nil }

func (p *ConstInEnv) Conclusion() string {
	return fmt.Sprintf("%s ∈ %s", p.c, p.env)
}

// AssumInEnv is the proof object for (c : T) ∈ E. A global definition with
// the same constant and type also satisfies the query.
type AssumInEnv struct {
	assum GlobalAssum
	env   Environment
}

var _ Proof = (*AssumInEnv)(nil)

// NewAssumInEnv proves that env declares the given typing, either as an
// assumption or as a definition with the same constant and type.
func NewAssumInEnv(assum GlobalAssum, env Environment) (*AssumInEnv, error) {
	for _, dec := range env.decs {
		switch d := dec.(type) {
		case GlobalAssum:
			if d.Equal(assum) {
				return &AssumInEnv{assum: assum, env: env}, nil
			}
		case GlobalDef:
			if d.C.Equal(assum.C) && d.T.Equal(assum.T) {
				return &AssumInEnv{assum: assum, env: env}, nil
			}
		}
	}
	return nil, &NotFoundError{What: assum.String(), Where: "the environment " + env.String()}
}

// Assum returns the witnessed typing.
func (p *AssumInEnv) Assum() GlobalAssum { return p.assum }

// Env returns the environment the proof is about.
func (p *AssumInEnv) Env() Environment { return p.env }

func (p *AssumInEnv) Rule() Rule { return ruleAssumInEnv }

func (p *AssumInEnv) Premises() []Proof { return nil }

func (p *AssumInEnv) Conclusion() string {
	return fmt.Sprintf("%s ∈ %s", p.assum, p.env)
}

// DefInEnv is the proof object for (c := t : T) ∈ E. Only an actual
// definition satisfies it.
type DefInEnv struct {
	def GlobalDef
	env Environment
}

var _ Proof = (*DefInEnv)(nil)

// NewDefInEnv proves that env contains exactly the given definition.
func NewDefInEnv(def GlobalDef, env Environment) (*DefInEnv, error) {
	for _, dec := range env.decs {
		if def.Equal(dec) {
			return &DefInEnv{def: def, env: env}, nil
		}
	}
	return nil, &NotFoundError{What: def.String(), Where: "the environment " + env.String()}
}

// Def returns the witnessed definition.
func (p *DefInEnv) Def() GlobalDef { return p.def }

// Env returns the environment the proof is about.
func (p *DefInEnv) Env() Environment { return p.env }

func (p *DefInEnv) Rule() Rule { return ruleDefInEnv }

func (p *DefInEnv) Premises() []Proof { return nil }

func (p *DefInEnv) Conclusion() string {
	return fmt.Sprintf("%s ∈ %s", p.def, p.env)
}

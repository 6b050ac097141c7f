package coc

import (
	"fmt"
	"strings"
)

// Rule identifies an inference rule: its name and the statement it encodes,
// written premises-over-bar.
type Rule struct {
	Name string
	Def  string
}

// Proof is implemented by every judgment value in the kernel. A Proof can
// only be obtained from the rule constructor that validates it, so holding
// one is holding evidence that its conclusion is derivable.
type Proof interface {
	Rule() Rule
	// Premises returns the sub-proofs this proof was built from, in rule
	// order. Leaf rules return nil.
	Premises() []Proof
	// Conclusion renders the judgment this proof establishes.
	Conclusion() string
}

// PremiseText renders the conclusions of a proof's premises, one per line.
func PremiseText(p Proof) string {
	var b strings.Builder
	for _, prem := range p.Premises() {
		b.WriteString(prem.Conclusion())
		b.WriteString("\n")
	}
	return b.String()
}

// Describe renders a single inference step: premise conclusions, a rule bar,
// and the conclusion.
func Describe(p Proof) string {
	conclusion := p.Conclusion()
	width := len([]rune(conclusion))
	if width < 20 {
		width = 20
	}
	var b strings.Builder
	b.WriteString(PremiseText(p))
	b.WriteString(strings.Repeat("-", width))
	b.WriteString(fmt.Sprintf(" (%s)\n", p.Rule().Name))
	b.WriteString(conclusion)
	b.WriteString("\n")
	return b.String()
}

// RenderTree renders the full derivation tree below p, one judgment per
// line, premises indented under their conclusion.
func RenderTree(p Proof) string {
	var b strings.Builder
	renderTree(&b, p, 0)
	return b.String()
}

func renderTree(b *strings.Builder, p Proof, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(fmt.Sprintf("%s  [%s]\n", p.Conclusion(), p.Rule().Name))
	for _, prem := range p.Premises() {
		renderTree(b, prem, depth+1)
	}
}

var (
	ruleIsSort = Rule{
		Name: "is-sort",
		Def:  "--------\ns ∈ S",
	}

	ruleVarNotInContext = Rule{
		Name: "no-in-local",
		Def:  "--------\nx ∉ Γ",
	}
	ruleVarInContext = Rule{
		Name: "var-in-local",
		Def:  "--------\nx ∈ Γ",
	}
	ruleAssumInContext = Rule{
		Name: "assum-in-local",
		Def:  "--------\n(x : T) ∈ Γ",
	}
	ruleDefInContext = Rule{
		Name: "def-in-local",
		Def:  "--------\n(x := t : T) ∈ Γ",
	}

	ruleConstNotInEnv = Rule{
		Name: "no-in-global",
		Def:  "--------\nc ∉ E",
	}
	ruleConstInEnv = Rule{
		Name: "const-in-global",
		Def:  "--------\nc ∈ E",
	}
	ruleAssumInEnv = Rule{
		Name: "assum-in-global",
		Def:  "--------\n(c : T) ∈ E",
	}
	ruleDefInEnv = Rule{
		Name: "def-in-global",
		Def:  "--------\n(c := t : T) ∈ E",
	}

	ruleWEmpty = Rule{
		Name: "W-Empty",
		Def:  "--------\nWF([])[]",
	}
	ruleWLocalAssum = Rule{
		Name: "W-Local-Assum",
		Def:  "E[Γ] ⊢ T : s\ns ∈ S\nx ∉ Γ\n------------------------------\nWF(E)[Γ::(x:T)]",
	}
	ruleWLocalDef = Rule{
		Name: "W-Local-Def",
		Def:  "E[Γ] ⊢ t : T\nx ∉ Γ\n------------------------------\nWF(E)[Γ::(x:=t:T)]",
	}
	ruleWGlobalAssum = Rule{
		Name: "W-Global-Assum",
		Def:  "E[] ⊢ T : s\ns ∈ S\nc ∉ E\n------------------------------\nWF(E; c:T)",
	}
	ruleWGlobalDef = Rule{
		Name: "W-Global-Def",
		Def:  "E[] ⊢ t : T\nc ∉ E\n------------------------------\nWF(E; c:=t:T)",
	}

	ruleAxSProp = Rule{
		Name: "Ax-SProp",
		Def:  "WF(E)[Γ]\n----------------------\nE[Γ] ⊢ SProp : Type(1)",
	}
	ruleAxProp = Rule{
		Name: "Ax-Prop",
		Def:  "WF(E)[Γ]\n----------------------\nE[Γ] ⊢ Prop : Type(1)",
	}
	ruleAxSet = Rule{
		Name: "Ax-Set",
		Def:  "WF(E)[Γ]\n----------------------\nE[Γ] ⊢ Set : Type(1)",
	}
	ruleAxType = Rule{
		Name: "Ax-Type",
		Def:  "WF(E)[Γ]\n----------------------------\nE[Γ] ⊢ Type(i) : Type(i + 1)",
	}

	ruleVar = Rule{
		Name: "Var",
		Def:  "WF(E)[Γ]\n(x : T) ∈ Γ or (x:=t : T) ∈ Γ\n-----------------------------\nE[Γ] ⊢ x : T",
	}
	ruleConst = Rule{
		Name: "Const",
		Def:  "WF(E)[Γ]\n(c : T) ∈ E or (c:=t : T) ∈ E\n-----------------------------\nE[Γ] ⊢ c : T",
	}

	ruleProdSProp = Rule{
		Name: "Prod-SProp",
		Def:  "E[Γ] ⊢ T : s\ns ∈ S\nE[Γ::(x:T)] ⊢ U : SProp\n---------------------------\nE[Γ] ⊢ ∀x:T, U : SProp",
	}
	ruleProdProp = Rule{
		Name: "Prod-Prop",
		Def:  "E[Γ] ⊢ T : s\ns ∈ S\nE[Γ::(x:T)] ⊢ U : Prop\n---------------------------\nE[Γ] ⊢ ∀x:T, U : Prop",
	}
	ruleProdSet = Rule{
		Name: "Prod-Set",
		Def:  "E[Γ] ⊢ T : s\ns ∈ {SProp, Prop, Set}\nE[Γ::(x:T)] ⊢ U : Set\n---------------------------\nE[Γ] ⊢ ∀x:T, U : Set",
	}
	ruleProdType = Rule{
		Name: "Prod-Type",
		Def:  "E[Γ] ⊢ T : s\ns ∈ {SProp, Type(i)}\nE[Γ::(x:T)] ⊢ U : Type(i)\n---------------------------\nE[Γ] ⊢ ∀x:T, U : Type(i)",
	}

	ruleLam = Rule{
		Name: "Lam",
		Def:  "E[Γ] ⊢ ∀x:T, U : s\nE[Γ::(x:T)] ⊢ t : U\n-----------------------\nE[Γ] ⊢ λx:T.t : ∀x:T, U",
	}
	ruleApp = Rule{
		Name: "App",
		Def:  "E[Γ] ⊢ t : ∀x:U, T\nE[Γ] ⊢ u : U\n---------------------\nE[Γ] ⊢ (t u) : T{x/u}",
	}
	ruleLet = Rule{
		Name: "Let",
		Def:  "E[Γ] ⊢ t : T\nE[Γ::(x:=t:T)] ⊢ u : U\n-------------------------------\nE[Γ] ⊢ let x:=t:T in u : U{x/t}",
	}

	ruleReductionTrans = Rule{
		Name: "reduce-trans",
		Def:  "E[Γ] ⊢ t1 ▷ t2\nE[Γ] ⊢ t2 ▷ t3\n--------------\nE[Γ] ⊢ t1 ▷ t3",
	}
	ruleBetaReduction = Rule{
		Name: "β-reduction",
		Def:  "----------------------------\nE[Γ] ⊢ ((λx:T.t) u) ▷ t{x/u}",
	}
	ruleDeltaLocal = Rule{
		Name: "δ-reduction",
		Def:  "WF(E)[Γ]\n(x:=t:T) ∈ Γ\n------------\nE[Γ] ⊢ x ▷ t",
	}
	ruleDeltaGlobal = Rule{
		Name: "Δ-reduction",
		Def:  "WF(E)[Γ]\n(c:=t:T) ∈ E\n------------\nE[Γ] ⊢ c ▷ t",
	}
	ruleZetaReduction = Rule{
		Name: "ζ-reduction",
		Def:  "WF(E)[Γ]\nE[Γ] ⊢ u : U\nE[Γ::(x:=u:U)] ⊢ t : T\n-----------------------------------\nE[Γ] ⊢ let x := u : U in t ▷ t{x/u}",
	}

	ruleEtaConversion = Rule{
		Name: "η-conversion",
		Def:  "E[Γ] ⊢ λx:T.u : ∀y:T, U\nE[Γ::(x:T)] ⊢ u =βδζη (t x)\n---------------------------\nE[Γ] ⊢ t =η λx:T.u",
	}
	ruleConvertible = Rule{
		Name: "βδζη-convertible",
		Def:  "E[Γ] ⊢ t1 ▷ ... ▷ u1\nE[Γ] ⊢ t2 ▷ ... ▷ u2\nu1 ~α u2 or E[Γ] ⊢ u1 =η u2 or E[Γ] ⊢ u2 =η u1\n----------------------------------------------\nE[Γ] ⊢ t1 =βδζη t2",
	}

	ruleSubConv = Rule{
		Name: "subtype-convert",
		Def:  "E[Γ] ⊢ t1 =βδζη t2\n------------------\nE[Γ] ⊢ t1 ≤βδζη t2",
	}
	ruleSubUniverse = Rule{
		Name: "subtype-universe",
		Def:  "0 < i ≤ j\n---------------------------\nE[Γ] ⊢ Type(i) ≤βδζη Type(j)",
	}
	ruleSubSet = Rule{
		Name: "subtype-Set",
		Def:  "0 < i\n-----------------------\nE[Γ] ⊢ Set ≤βδζη Type(i)",
	}
	ruleSubProp = Rule{
		Name: "subtype-Prop",
		Def:  "--------------------\nE[Γ] ⊢ Prop ≤βδζη Set",
	}
	ruleSubProd = Rule{
		Name: "subtype-lam",
		Def:  "E[Γ] ⊢ T =βδζη U\nE[Γ::(x:T)] ⊢ T' ≤βδζη U'\n------------------------------\nE[Γ] ⊢ ∀x:T, T' ≤βδζη ∀x:U, U'",
	}
	ruleSubTrans = Rule{
		Name: "subtype-trans",
		Def:  "E[Γ] ⊢ t1 ≤βδζη t2\nE[Γ] ⊢ t2 ≤βδζη t3\n------------------\nE[Γ] ⊢ t1 ≤βδζη t3",
	}
	ruleConv = Rule{
		Name: "Conv",
		Def:  "E[Γ] ⊢ U : s\nE[Γ] ⊢ t : T\nE[Γ] ⊢ T ≤βδζη U\n----------------\nE[Γ] ⊢ t : U",
	}
)

// Rules returns the catalog of every inference rule in the kernel, in
// presentation order.
func Rules() []Rule {
	return []Rule{
		ruleIsSort,
		ruleVarNotInContext,
		ruleVarInContext,
		ruleAssumInContext,
		ruleDefInContext,
		ruleConstNotInEnv,
		ruleConstInEnv,
		ruleAssumInEnv,
		ruleDefInEnv,
		ruleWEmpty,
		ruleWLocalAssum,
		ruleWLocalDef,
		ruleWGlobalAssum,
		ruleWGlobalDef,
		ruleAxSProp,
		ruleAxProp,
		ruleAxSet,
		ruleAxType,
		ruleVar,
		ruleConst,
		ruleProdSProp,
		ruleProdProp,
		ruleProdSet,
		ruleProdType,
		ruleLam,
		ruleApp,
		ruleLet,
		ruleBetaReduction,
		ruleDeltaLocal,
		ruleDeltaGlobal,
		ruleZetaReduction,
		ruleReductionTrans,
		ruleEtaConversion,
		ruleConvertible,
		ruleSubConv,
		ruleSubUniverse,
		ruleSubSet,
		ruleSubProp,
		ruleSubProd,
		ruleSubTrans,
		ruleConv,
	}
}

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vito/rem/pkg/coc"
)

var (
	ruleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	conclusionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	barStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Derive and print an example typing derivation",
		Long: `Builds the derivation of [a:Set] ⊢ ((λx:Set.x) a) : Set from the
axioms up and prints the resulting proof tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := FindDisplayConfig(".")
			if err != nil {
				return err
			}
			slog.Debug("loaded display config", "color", cfg.Color, "tree", cfg.Tree)

			proof, err := identityDerivation()
			if err != nil {
				return err
			}

			if cfg.Tree {
				printTree(proof, cfg, 0)
				return nil
			}
			printSteps(proof, cfg)
			return nil
		},
	}
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List every inference rule of the kernel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := FindDisplayConfig(".")
			if err != nil {
				return err
			}

			for _, rule := range coc.Rules() {
				name := rule.Name
				if cfg.Color {
					name = ruleStyle.Render(name)
				}
				fmt.Println(name)
				for _, line := range strings.Split(rule.Def, "\n") {
					fmt.Println("  " + line)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

// identityDerivation types the identity function on Set in the context
// [a:Set] and applies it to a.
func identityDerivation() (*coc.WT, error) {
	x := coc.Var{Name: "x"}
	a := coc.Var{Name: "a"}
	wfEmpty := coc.WEmpty()

	type1, err := coc.NewTypeI(1)
	if err != nil {
		return nil, err
	}
	sortType1, err := coc.NewIsSort(type1)
	if err != nil {
		return nil, err
	}

	aNotIn, err := coc.NewVarNotInContext(a, coc.NewContext())
	if err != nil {
		return nil, err
	}
	wfA, err := coc.WLocalAssum(coc.AxSet(wfEmpty), sortType1, aNotIn)
	if err != nil {
		return nil, err
	}

	xNotIn, err := coc.NewVarNotInContext(x, wfA.Ctx())
	if err != nil {
		return nil, err
	}
	wfAX, err := coc.WLocalAssum(coc.AxSet(wfA), sortType1, xNotIn)
	if err != nil {
		return nil, err
	}

	xIn, err := coc.NewAssumInContext(coc.LocalAssum{X: x, T: coc.Set{}}, wfAX.Ctx())
	if err != nil {
		return nil, err
	}
	varX, err := coc.VarRule(wfAX, xIn)
	if err != nil {
		return nil, err
	}

	prodTy, err := coc.ProdType(coc.AxSet(wfA), sortType1, coc.AxSet(wfAX))
	if err != nil {
		return nil, err
	}
	id, err := coc.Lam(prodTy, varX)
	if err != nil {
		return nil, err
	}

	aIn, err := coc.NewAssumInContext(coc.LocalAssum{X: a, T: coc.Set{}}, wfA.Ctx())
	if err != nil {
		return nil, err
	}
	varA, err := coc.VarRule(wfA, aIn)
	if err != nil {
		return nil, err
	}

	app, err := coc.App(id, varA)
	if err != nil {
		return nil, errors.Wrap(err, "building demo derivation")
	}
	return app, nil
}

func printTree(p coc.Proof, cfg DisplayConfig, depth int) {
	conclusion := p.Conclusion()
	name := p.Rule().Name
	if cfg.Color {
		conclusion = conclusionStyle.Render(conclusion)
		name = ruleStyle.Render(name)
	}
	fmt.Printf("%s%s  [%s]\n", strings.Repeat("  ", depth), conclusion, name)
	for _, prem := range p.Premises() {
		printTree(prem, cfg, depth+1)
	}
}

// printSteps prints each rule application of the derivation once, premises
// before conclusions.
func printSteps(p coc.Proof, cfg DisplayConfig) {
	seen := map[string]bool{}
	var walk func(coc.Proof)
	walk = func(p coc.Proof) {
		for _, prem := range p.Premises() {
			walk(prem)
		}
		key := p.Rule().Name + "\x00" + p.Conclusion()
		if seen[key] {
			return
		}
		seen[key] = true
		printStep(p, cfg)
	}
	walk(p)
}

func printStep(p coc.Proof, cfg DisplayConfig) {
	if !cfg.Color {
		fmt.Println(coc.Describe(p))
		return
	}
	conclusion := p.Conclusion()
	width := len([]rune(conclusion))
	if width < 20 {
		width = 20
	}
	for _, prem := range p.Premises() {
		fmt.Println(conclusionStyle.Render(prem.Conclusion()))
	}
	fmt.Println(barStyle.Render(strings.Repeat("-", width)) + " " + ruleStyle.Render("("+p.Rule().Name+")"))
	fmt.Println(conclusionStyle.Render(conclusion))
	fmt.Println()
}

package coc

import (
	"sort"
	"strings"
)

// VarSet represents a set of variables.
type VarSet map[Var]bool

// NewVarSet creates a new VarSet.
func NewVarSet(vs ...Var) VarSet {
	set := make(VarSet)
	for _, v := range vs {
		set[v] = true
	}
	return set
}

// Union returns the union of two VarSets.
func (vs VarSet) Union(other VarSet) VarSet {
	result := make(VarSet)
	for v := range vs {
		result[v] = true
	}
	for v := range other {
		result[v] = true
	}
	return result
}

// Contains checks if a variable is in the set.
func (vs VarSet) Contains(v Var) bool {
	return vs[v]
}

// Add adds a variable to the set.
func (vs VarSet) Add(v Var) {
	vs[v] = true
}

// Remove removes a variable from the set.
func (vs VarSet) Remove(v Var) {
	delete(vs, v)
}

// ToSlice converts the set to a slice, sorted by name for determinism.
func (vs VarSet) ToSlice() []Var {
	result := make([]Var, 0, len(vs))
	for v := range vs {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func (vs VarSet) String() string {
	names := make([]string, 0, len(vs))
	for _, v := range vs.ToSlice() {
		names = append(names, v.Name)
	}
	return "{" + strings.Join(names, ", ") + "}"
}

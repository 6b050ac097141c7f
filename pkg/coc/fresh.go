package coc

import (
	"fmt"
	"sync/atomic"
)

// FreshSource generates variables guaranteed not to occur in any of the
// terms it is asked about. The counter only ever advances, so two calls on
// the same source never return the same name. Safe for concurrent use.
type FreshSource struct {
	counter atomic.Uint64
}

// Fresh returns a variable absent from the variables (free or bound) of all
// given terms.
func (fs *FreshSource) Fresh(terms ...Term) Var {
	used := NewVarSet()
	for _, t := range terms {
		used = used.Union(t.AllVars())
	}
	for {
		v := Var{Name: fmt.Sprintf("#%d", fs.counter.Add(1)-1)}
		if !used.Contains(v) {
			return v
		}
	}
}

var defaultFresh FreshSource

// FreshVar returns a variable absent from all given terms, drawn from a
// process-wide source.
func FreshVar(terms ...Term) Var {
	return defaultFresh.Fresh(terms...)
}

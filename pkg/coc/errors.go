package coc

import "fmt"

// TypeMismatchError indicates a constructor argument of the wrong term or
// proof variant.
type TypeMismatchError struct {
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, got '%s'", e.Want, e.Got)
}

// InconsistentDerivationError indicates two sub-proofs that disagree on a
// component the rule requires to match exactly.
type InconsistentDerivationError struct {
	Component string
	Want      string
	Got       string
}

func (e *InconsistentDerivationError) Error() string {
	return fmt.Sprintf("inconsistent %s: '%s' vs '%s'", e.Component, e.Want, e.Got)
}

// NotFoundError indicates a declaration missing from a context or
// environment that a rule requires to be present.
type NotFoundError struct {
	What  string
	Where string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("'%s' is not contained in %s", e.What, e.Where)
}

// AlreadyBoundError indicates a variable or constant already declared where
// a rule requires it to be absent.
type AlreadyBoundError struct {
	Name  string
	Where string
}

func (e *AlreadyBoundError) Error() string {
	return fmt.Sprintf("'%s' is already bound in %s", e.Name, e.Where)
}

// InvalidUniverseError indicates a non-positive universe index or a failed
// universe ordering condition.
type InvalidUniverseError struct {
	Index int
	Bound int // upper bound of a failed i ≤ j check; 0 when the index alone is invalid
}

func (e *InvalidUniverseError) Error() string {
	if e.Bound > 0 {
		return fmt.Sprintf("invalid universe ordering: Type(%d) ≤ Type(%d) requires 0 < %d ≤ %d", e.Index, e.Bound, e.Index, e.Bound)
	}
	return fmt.Sprintf("invalid universe index %d", e.Index)
}

// EmptyContainerError indicates a pop from an empty context or environment.
type EmptyContainerError struct {
	Container string
}

func (e *EmptyContainerError) Error() string {
	return fmt.Sprintf("cannot pop empty %s", e.Container)
}

// MalformedSubstitutionError indicates a claimed reduction target that is
// not alpha-convertible to the actual computed substitution.
type MalformedSubstitutionError struct {
	Want string // the computed substitution
	Got  string // the supplied target
}

func (e *MalformedSubstitutionError) Error() string {
	return fmt.Sprintf("substitution result '%s' is not alpha-convertible to '%s'", e.Want, e.Got)
}

// consistentTerm compares two terms that a rule requires to be syntactically
// equal.
func consistentTerm(component string, want, got Term) error {
	if !want.Equal(got) {
		return &InconsistentDerivationError{Component: component, Want: want.String(), Got: got.String()}
	}
	return nil
}

func consistentCtx(want, got Context) error {
	if !want.Equal(got) {
		return &InconsistentDerivationError{Component: "Γ", Want: want.String(), Got: got.String()}
	}
	return nil
}

func consistentEnv(want, got Environment) error {
	if !want.Equal(got) {
		return &InconsistentDerivationError{Component: "E", Want: want.String(), Got: got.String()}
	}
	return nil
}

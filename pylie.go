// Package pylie ties the term-order engine, the differential-polynomial
// data model, the reducer, the completion procedure and the
// integrability-condition generator together into the basis driver
// itself.
package pylie

import (
	"sort"

	"github.com/tapir442/pylie/complete"
	"github.com/tapir442/pylie/dpoly"
	"github.com/tapir442/pylie/integrability"
	"github.com/tapir442/pylie/ranking"
	"github.com/tapir442/pylie/reduce"
	"github.com/tapir442/pylie/symbolic"
)

// maxDriverIterations bounds the basis driver's fixpoint loop. The
// textbook systems all converge in well under a dozen passes; this
// bound exists only to turn a malformed or genuinely non-terminating
// input into a diagnostic instead of an infinite loop.
const maxDriverIterations = 500

// defaultOrder is used by Context and JanetBasis when no order is
// supplied.
const defaultOrder = ranking.Grevlex

// Context builds a ranking context over dependent and independent
// variable tuples, defaulting to graded reverse lexicographic order when
// order is omitted.
func Context(dependent, independent []string, order ...ranking.OrderKind) (*ranking.Ctx, error) {
	ord := defaultOrder
	if len(order) > 0 {
		ord = order[0]
	}
	return ranking.NewContext(dependent, independent, ord)
}

// System is a Janet basis: an ordered list of differential polynomials.
type System []*dpoly.DPoly

// LeadingDerivatives returns the leading derivative atom of every
// non-zero element of s, in order: the basis's leading-derivative
// signature, which determines the solution space's dimension.
func (s System) LeadingDerivatives() []symbolic.Atom {
	out := make([]symbolic.Atom, 0, len(s))
	for _, p := range s {
		if !p.IsZero() {
			out = append(out, p.Lder())
		}
	}
	return out
}

// Reorder sorts s ascending by leading comparison vector, the ordering
// the driver loop and its callers use to present and compare systems.
func Reorder(s []*dpoly.DPoly) []*dpoly.DPoly {
	out := append([]*dpoly.DPoly(nil), s...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// JanetBasis computes the Janet basis of system, a finite set of
// homogeneous linear PDEs over dependent and independent, under order
// (defaulting to Grevlex). It expands each input expression into a
// differential polynomial and iterates autoreduction, completion and
// integrability-condition reduction to a fixpoint.
func JanetBasis(system []symbolic.Expr, dependent, independent []string, order ...ranking.OrderKind) ([]*dpoly.DPoly, error) {
	ctx, err := Context(dependent, independent, order...)
	if err != nil {
		return nil, err
	}

	S := make([]*dpoly.DPoly, 0, len(system))
	for _, e := range system {
		p, err := dpoly.New(e, ctx)
		if err != nil {
			return nil, err
		}
		if !p.IsZero() {
			S = append(S, p)
		}
	}

	return runDriver(S, ctx)
}

// runDriver is the basis fixpoint loop: autoreduce, complete, collect
// integrability conditions, reduce each condition against the completed
// system, and either stop (no new conditions, or the completed system
// repeats the previous iteration's) or merge the survivors back in and
// go again.
func runDriver(S []*dpoly.DPoly, ctx *ranking.Ctx) ([]*dpoly.DPoly, error) {
	for iter := 0; iter < maxDriverIterations; iter++ {
		old := S

		autoreduced, err := reduce.Autoreduce(S, ctx)
		if err != nil {
			return nil, err
		}
		completed, err := complete.CompleteSystem(autoreduced, ctx)
		if err != nil {
			return nil, err
		}

		conds, err := integrability.FindConditions(completed, ctx)
		if err != nil {
			return nil, err
		}

		var R []*dpoly.DPoly
		for _, c := range conds {
			red, err := reduce.ReduceSystem(c, completed)
			if err != nil {
				return nil, err
			}
			if red.IsZero() || containsEqual(R, red) || containsEqual(completed, red) {
				continue
			}
			R = append(R, red)
		}

		if len(R) == 0 {
			return Reorder(completed), nil
		}
		if equalSystems(completed, old) {
			return Reorder(completed), nil
		}

		merged := append(append([]*dpoly.DPoly(nil), completed...), R...)
		S = Reorder(merged)
	}
	return nil, &NonTerminatingError{Iterations: maxDriverIterations}
}

func containsEqual(list []*dpoly.DPoly, p *dpoly.DPoly) bool {
	for _, x := range list {
		if x.Equal(p) {
			return true
		}
	}
	return false
}

// equalSystems reports whether a and b hold the same differential
// polynomials in the same order (both are assumed already sorted by the
// same rule, so a positional comparison suffices).
func equalSystems(a, b []*dpoly.DPoly) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

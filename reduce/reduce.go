// Package reduce implements the differential-polynomial reducer:
// Reduce, ReduceSystem and Autoreduce, each a fixpoint over a single
// elimination step.
package reduce

import (
	"fmt"
	"sort"

	"github.com/tapir442/pylie/dpoly"
	"github.com/tapir442/pylie/ranking"
	"github.com/tapir442/pylie/symbolic"
)

// Reduce eliminates from e1 every term whose derivative atom is e2's
// leading atom or a prolongation of it, iterating a single reduction
// pass to its fixpoint.
func Reduce(e1, e2 *dpoly.DPoly) (*dpoly.DPoly, error) {
	for {
		next, err := reduceOnce(e1, e2)
		if err != nil {
			return nil, err
		}
		if next.Equal(e1) {
			return next, nil
		}
		e1 = next
	}
}

// reduceOnce performs at most one subtraction step: it finds the first
// term of e1 sharing e2's leading function whose order dominates e2's
// leading order componentwise, and eliminates it (and whatever overlap
// the rest of e2, suitably prolonged, has with e1). If no such term
// exists, e1 is returned unchanged.
func reduceOnce(e1, e2 *dpoly.DPoly) (*dpoly.DPoly, error) {
	if e1.IsZero() || e2.IsZero() {
		return e1, nil
	}
	ctx := e1.Ctx()
	indep := ctx.Independent()
	lfunc := e2.Lfunc()
	lederOrder := ctx.OrderOfDerivative(e2.Lder())

	for _, t := range e1.Terms() {
		if t.Derivative.Func != lfunc {
			continue
		}
		order := ctx.OrderOfDerivative(t.Derivative)
		delta := make([]int, len(order))
		allZero, negative := true, false
		for i := range order {
			delta[i] = order[i] - lederOrder[i]
			if delta[i] != 0 {
				allZero = false
			}
			if delta[i] < 0 {
				negative = true
			}
		}
		if negative {
			continue
		}
		q := e2
		if !allZero {
			q = e2.Diff(diffVars(indep, delta)...)
		}
		return subtractScaled(ctx, e1, q, t.Coeff)
	}
	return e1, nil
}

// diffVars expands a non-negative componentwise order difference into
// the multiset of independent variables it represents (each repeated by
// its count).
func diffVars(indep []string, delta []int) []string {
	vars := make([]string, 0)
	for i, d := range delta {
		for k := 0; k < d; k++ {
			vars = append(vars, indep[i])
		}
	}
	return vars
}

// subtractScaled subtracts coeff*q from e1, term by term, keyed by
// comparison vector: a matching term has coeff*q's contribution
// subtracted (and is dropped if the result is zero); an unmatched term
// of q is inserted as a new, negated term.
func subtractScaled(ctx *ranking.Ctx, e1, q *dpoly.DPoly, coeff symbolic.Coefficient) (*dpoly.DPoly, error) {
	changed := map[string]*dpoly.DTerm{}
	for _, t := range e1.Terms() {
		tt := t
		changed[key(t.CV)] = &tt
	}
	var subs []dpoly.DTerm
	for _, q2 := range q.Terms() {
		pc := q2.Coeff.Mul(coeff)
		k := key(q2.CV)
		if existing, ok := changed[k]; ok {
			newCoeff := existing.Coeff.Sub(pc)
			if newCoeff.IsZero() {
				delete(changed, k)
			} else {
				existing.Coeff = newCoeff
			}
		} else {
			subs = append(subs, dpoly.DTerm{Coeff: pc.Neg(), Derivative: q2.Derivative, CV: q2.CV})
		}
	}
	final := make([]dpoly.DTerm, 0, len(changed)+len(subs))
	for _, t := range changed {
		final = append(final, *t)
	}
	final = append(final, subs...)
	return dpoly.FromTerms(ctx, final)
}

func key(cv []int) string { return fmt.Sprint(cv) }

// ReduceSystem reduces p against each element of S in turn, restarting
// from the top whenever any element changes p, until a full pass leaves
// p unchanged (reduceS).
func ReduceSystem(p *dpoly.DPoly, S []*dpoly.DPoly) (*dpoly.DPoly, error) {
	changed := true
	for changed {
		changed = false
		for _, q := range S {
			if q.IsZero() || p.IsZero() {
				continue
			}
			next, err := Reduce(p, q)
			if err != nil {
				return nil, err
			}
			if !next.Equal(p) {
				p = next
				changed = true
				break
			}
		}
	}
	return p, nil
}

// Autoreduce processes S in order: for each element, the suffix is
// reduced against the growing prefix; elements reducing to zero are
// dropped; any change restarts the scan from the beginning. It
// terminates because each iteration strictly shrinks the multiset of
// leading comparison vectors under ctx.Gt.
func Autoreduce(S []*dpoly.DPoly, ctx *ranking.Ctx) ([]*dpoly.DPoly, error) {
	dps := append([]*dpoly.DPoly(nil), S...)
	sortAscending(dps)
	i := 0
	for i+1 < len(dps) {
		prefix := dps[:i+1]
		remainder := dps[i+1:]
		var newdps []*dpoly.DPoly
		haveReduced := false
		for _, r := range remainder {
			rnew, err := ReduceSystem(r, prefix)
			if err != nil {
				return nil, err
			}
			if !rnew.Equal(r) {
				haveReduced = true
			}
			if !rnew.IsZero() {
				newdps = append(newdps, rnew)
			}
		}
		combined := append([]*dpoly.DPoly(nil), prefix...)
		for _, nd := range newdps {
			if !containsEqual(combined, nd) {
				combined = append(combined, nd)
			}
		}
		sortAscending(combined)
		dps = combined
		if haveReduced {
			i = 0
		} else {
			i++
		}
	}
	return dps, nil
}

func containsEqual(list []*dpoly.DPoly, p *dpoly.DPoly) bool {
	for _, x := range list {
		if x.Equal(p) {
			return true
		}
	}
	return false
}

func sortAscending(list []*dpoly.DPoly) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Less(list[j]) })
}

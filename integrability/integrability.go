// Package integrability implements the integrability-condition generator:
// for every pair of distinct same-function elements, differentiating one
// by a nonmultiplier and the other by a nonempty multiplier-subset, and
// emitting the difference whenever the two prolongations land on the
// same derivative atom.
package integrability

import (
	"fmt"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/tapir442/pylie/dpoly"
	"github.com/tapir442/pylie/multiplier"
	"github.com/tapir442/pylie/ranking"
)

// FindConditions returns the candidate set of integrability conditions
// for S, bucketed by leading function. The result may contain duplicates;
// callers reduce and filter.
func FindConditions(S []*dpoly.DPoly, ctx *ranking.Ctx) ([]*dpoly.DPoly, error) {
	buckets := map[string][]*dpoly.DPoly{}
	order := []string{}
	for _, p := range S {
		if p.IsZero() {
			continue
		}
		f := p.Lfunc()
		if _, ok := buckets[f]; !ok {
			order = append(order, f)
		}
		buckets[f] = append(buckets[f], p)
	}

	var out []*dpoly.DPoly
	for _, f := range order {
		conds, err := bucketConditions(buckets[f], ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, conds...)
	}
	return out, nil
}

type info struct {
	dp                    *dpoly.DPoly
	multVars, nonmultVars []string
}

func bucketConditions(bucket []*dpoly.DPoly, ctx *ranking.Ctx) ([]*dpoly.DPoly, error) {
	if len(bucket) < 2 {
		return nil, nil
	}
	indep := ctx.Independent()
	n := len(indep)
	vars := make([]int, n)
	for i := range vars {
		vars[i] = n - 1 - i
	}

	monoms := make([][]int, len(bucket))
	for i, p := range bucket {
		monoms[i] = reverseOrder(ctx.OrderOfDerivative(p.Lder()))
	}
	infos := make([]info, len(bucket))
	for i, p := range bucket {
		m, nm := multiplier.Multipliers(monoms[i], monoms, vars)
		infos[i] = info{dp: p, multVars: toVarNames(indep, n, m), nonmultVars: toVarNames(indep, n, nm)}
	}

	var result []*dpoly.DPoly
	for i, e1 := range infos {
		for j, e2 := range infos {
			if i == j {
				continue
			}
			for _, n1 := range e1.nonmultVars {
				a1 := e1.dp.Lder().WithDiff(n1)
				for _, subset := range nonEmptySubsets(e2.multVars) {
					a2 := e2.dp.Lder().WithDiff(subset...)
					if !a1.SameAtom(a2) {
						continue
					}
					d1 := e1.dp.Diff(n1)
					d2 := e2.dp.Diff(subset...)
					cond, err := subtract(ctx, d1, d2)
					if err != nil {
						return nil, err
					}
					if !cond.IsZero() {
						result = append(result, cond)
					}
				}
			}
		}
	}
	return result, nil
}

// toVarNames converts multiplier-analyzer indices (index 0 = lowest
// ranked independent variable) back to independent-variable names via
// invert(i) = n-1-i.
func toVarNames(indep []string, n int, idxs []int) []string {
	out := make([]string, len(idxs))
	for i, v := range idxs {
		out[i] = indep[n-1-v]
	}
	return out
}

func reverseOrder(order []int) []int {
	n := len(order)
	out := make([]int, n)
	for i, v := range order {
		out[n-1-i] = v
	}
	return out
}

// nonEmptySubsets enumerates every non-empty subset of vars, smallest
// first, using gonum's combination generator.
func nonEmptySubsets(vars []string) [][]string {
	n := len(vars)
	var out [][]string
	for k := 1; k <= n; k++ {
		for _, idxs := range combin.Combinations(n, k) {
			subset := make([]string, len(idxs))
			for i, idx := range idxs {
				subset[i] = vars[idx]
			}
			out = append(out, subset)
		}
	}
	return out
}

// subtract computes d1-d2, keyed by comparison vector.
func subtract(ctx *ranking.Ctx, d1, d2 *dpoly.DPoly) (*dpoly.DPoly, error) {
	byCV := map[string]*dpoly.DTerm{}
	for _, t := range d1.Terms() {
		tt := t
		byCV[key(t.CV)] = &tt
	}
	var extra []dpoly.DTerm
	for _, t := range d2.Terms() {
		k := key(t.CV)
		if existing, ok := byCV[k]; ok {
			existing.Coeff = existing.Coeff.Sub(t.Coeff)
		} else {
			extra = append(extra, dpoly.DTerm{Coeff: t.Coeff.Neg(), Derivative: t.Derivative, CV: t.CV})
		}
	}
	final := make([]dpoly.DTerm, 0, len(byCV)+len(extra))
	for _, t := range byCV {
		final = append(final, *t)
	}
	final = append(final, extra...)
	return dpoly.FromTerms(ctx, final)
}

func key(cv []int) string { return fmt.Sprint(cv) }

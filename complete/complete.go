// Package complete implements Janet completion: prolonging a system
// bucket by bucket (grouped by leading function) until every element's
// nonmultiplier prolongations already lie in some element's Janet cone.
package complete

import (
	"sort"

	"github.com/tapir442/pylie/dpoly"
	"github.com/tapir442/pylie/multiplier"
	"github.com/tapir442/pylie/ranking"
)

// CompleteSystem buckets S by leading function, completes each bucket
// independently, and re-merges the result into a single ascending-sorted
// system.
func CompleteSystem(S []*dpoly.DPoly, ctx *ranking.Ctx) ([]*dpoly.DPoly, error) {
	order := []string{}
	buckets := map[string][]*dpoly.DPoly{}
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
		completed, err := completeBucket(buckets[f], ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, completed...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out, nil
}

type entry struct {
	dp            *dpoly.DPoly
	monom         []int
	mult, nonmult []int
}

// completeBucket completes one function's bucket to a fixpoint under
// Janet prolongation.
func completeBucket(bucket []*dpoly.DPoly, ctx *ranking.Ctx) ([]*dpoly.DPoly, error) {
	result := append([]*dpoly.DPoly(nil), bucket...)
	if len(result) <= 1 {
		return result, nil
	}

	indep := ctx.Independent()
	n := len(indep)
	vars := make([]int, n)
	for i := range vars {
		vars[i] = n - 1 - i
	}

	for {
		monoms := make([][]int, len(result))
		for i, p := range result {
			monoms[i] = reverseOrder(ctx.OrderOfDerivative(p.Lder()))
		}
		entries := make([]entry, len(result))
		for i, p := range result {
			m, nm := multiplier.Multipliers(monoms[i], monoms, vars)
			entries[i] = entry{dp: p, monom: monoms[i], mult: m, nonmult: nm}
		}

		type candidate struct {
			monom []int
			nvar  int
			src   *dpoly.DPoly
		}
		var candidates []candidate
		for _, e := range entries {
			for _, nv := range e.nonmult {
				cm := append([]int(nil), e.monom...)
				cm[nv]++
				candidates = append(candidates, candidate{monom: cm, nvar: nv, src: e.dp})
			}
		}

		var survivors []candidate
		for _, c := range candidates {
			covered := false
			for _, e := range entries {
				if janetCone(c.monom, e.monom, e.mult, e.nonmult) {
					covered = true
					break
				}
			}
			if !covered {
				survivors = append(survivors, c)
			}
		}

		if len(survivors) == 0 {
			return result, nil
		}

		for _, c := range survivors {
			varName := indep[n-1-c.nvar]
			prolonged, err := dpoly.New(c.src.Diff(varName).Expression(), ctx)
			if err != nil {
				return nil, err
			}
			if prolonged.IsZero() || containsEqual(result, prolonged) {
				continue
			}
			result = append(result, prolonged)
		}
		sort.SliceStable(result, func(i, j int) bool { return result[i].Less(result[j]) })
	}
}

// janetCone reports whether candidate lies in entryMonom's Janet cone:
// equal on every nonmultiplier coordinate, greater-or-equal on every
// multiplier coordinate.
func janetCone(candidate, entryMonom []int, mult, nonmult []int) bool {
	for _, x := range mult {
		if candidate[x] < entryMonom[x] {
			return false
		}
	}
	for _, x := range nonmult {
		if candidate[x] != entryMonom[x] {
			return false
		}
	}
	return true
}

// reverseOrder converts an order vector from ranking-context convention
// (index 0 = highest-ranked independent variable) to the multiplier
// analyzer's convention (index 0 = lowest-ranked). This inversion, the
// n-1-i mapping of a nonmultiplier index back to a variable name in
// completeBucket, and their twins in package integrability are the only
// places the two conventions meet.
func reverseOrder(order []int) []int {
	n := len(order)
	out := make([]int, n)
	for i, v := range order {
		out[n-1-i] = v
	}
	return out
}

func containsEqual(list []*dpoly.DPoly, p *dpoly.DPoly) bool {
	for _, x := range list {
		if x.Equal(p) {
			return true
		}
	}
	return false
}

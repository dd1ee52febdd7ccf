// Package multiplier implements Janet division: classifying, for a
// vector m drawn from a set M, which of an ordered variable list are
// multipliers versus nonmultipliers.
package multiplier

import "sort"

// Multipliers partitions vars (an index ordering over m's coordinates,
// most-significant variable last by convention) into multipliers, in
// vars traversal order, and nonmultipliers, sorted ascending, relative
// to the candidate set M.
//
// vars[0] is a multiplier of m iff deg_vars[0](m) equals the maximum of
// deg_vars[0] over M. For j>=1, vars[j] is a multiplier of m iff
// deg_vars[j](m) equals the maximum of deg_vars[j] over the subset of M
// agreeing with m's degree on every vars[0..j-1], independent of whether
// those were themselves classified as multipliers.
func Multipliers(m []int, M [][]int, vars []int) (mult, nonmult []int) {
	if len(vars) == 0 {
		return nil, nil
	}

	d := 0
	for _, u := range M {
		if u[vars[0]] > d {
			d = u[vars[0]]
		}
	}

	multSet := map[int]bool{}
	if m[vars[0]] == d {
		mult = append(mult, vars[0])
		multSet[vars[0]] = true
	}

	for j := 1; j < len(vars); j++ {
		v := vars[j]
		var agree [][]int
		for _, u := range M {
			ok := true
			for k := 0; k < j; k++ {
				if u[vars[k]] != m[vars[k]] {
					ok = false
					break
				}
			}
			if ok {
				agree = append(agree, u)
			}
		}
		maxDeg := 0
		for _, u := range agree {
			if u[v] > maxDeg {
				maxDeg = u[v]
			}
		}
		if m[v] == maxDeg {
			mult = append(mult, v)
			multSet[v] = true
		}
	}

	for _, v := range vars {
		if !multSet[v] {
			nonmult = append(nonmult, v)
		}
	}
	sort.Ints(nonmult)
	return mult, nonmult
}

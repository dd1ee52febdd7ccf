// Package symbolic supplies the minimal host-engine capability set the
// Janet-basis core needs from a computer-algebra backend: construction of
// functions and derivatives, additive/multiplicative decomposition, exact
// rational arithmetic, differentiation, and structural equality. Nothing
// here approximates; every numeric leaf is a math/big.Rat.
package symbolic

import (
	"fmt"
	"sort"
	"strings"
)

// Atom is a derivative atom: a dependent function applied to the tuple of
// independent variables, optionally differentiated. Order is the per
// independent-variable differentiation count; a zero-valued (or absent)
// entry means "not differentiated with respect to that variable". An Atom
// with an all-zero Order is a bare function application u(x1,...,xn).
type Atom struct {
	Func  string
	Order map[string]int
}

// NewAtom returns the order-0 atom (plain function application) for fn.
func NewAtom(fn string) Atom {
	return Atom{Func: fn}
}

// WithDiff returns a new Atom differentiated once more with respect to
// each variable named in vars, leaving the receiver untouched.
func (a Atom) WithDiff(vars ...string) Atom {
	order := make(map[string]int, len(a.Order)+len(vars))
	for k, v := range a.Order {
		order[k] = v
	}
	for _, v := range vars {
		order[v]++
	}
	return Atom{Func: a.Func, Order: order}
}

// OrderVector returns the length-len(indep) order vector, reading each
// variable's differentiation count in the order given by indep.
func (a Atom) OrderVector(indep []string) []int {
	v := make([]int, len(indep))
	for i, name := range indep {
		v[i] = a.Order[name]
	}
	return v
}

// TotalOrder returns the sum of the per-variable differentiation counts.
func (a Atom) TotalOrder() int {
	total := 0
	for _, c := range a.Order {
		total += c
	}
	return total
}

// SameAtom reports whether a and b are the same function differentiated
// by the same multiset of variables.
func (a Atom) SameAtom(b Atom) bool {
	if a.Func != b.Func {
		return false
	}
	keys := map[string]struct{}{}
	for k := range a.Order {
		keys[k] = struct{}{}
	}
	for k := range b.Order {
		keys[k] = struct{}{}
	}
	for k := range keys {
		if a.Order[k] != b.Order[k] {
			return false
		}
	}
	return true
}

// String renders the atom as e.g. "w" or "diff(w, x, x, y)".
func (a Atom) String() string {
	if a.TotalOrder() == 0 {
		return a.Func
	}
	vars := make([]string, 0, len(a.Order))
	for v, c := range a.Order {
		for i := 0; i < c; i++ {
			vars = append(vars, v)
		}
	}
	sort.Strings(vars)
	return fmt.Sprintf("diff(%s, %s)", a.Func, strings.Join(vars, ", "))
}

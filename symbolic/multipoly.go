package symbolic

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// MultiPoly is a sum of terms, each a *big.Rat coefficient times a
// monomial in a fixed tuple of variables (the PDE's independent
// variables). It is the exact, canonical ring coefficients of a
// differential polynomial live in.
type MultiPoly struct {
	nvars int
	terms map[string]*monomialTerm
}

type monomialTerm struct {
	exp   []int
	coeff *big.Rat
}

func monomialKey(exp []int) string {
	var b strings.Builder
	for i, e := range exp {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e))
	}
	return b.String()
}

func newMultiPoly(nvars int) *MultiPoly {
	return &MultiPoly{nvars: nvars, terms: map[string]*monomialTerm{}}
}

// ConstMultiPoly returns the constant polynomial c over nvars variables.
func ConstMultiPoly(nvars int, c *big.Rat) *MultiPoly {
	p := newMultiPoly(nvars)
	if c.Sign() != 0 {
		exp := make([]int, nvars)
		p.terms[monomialKey(exp)] = &monomialTerm{exp: exp, coeff: new(big.Rat).Set(c)}
	}
	return p
}

// VarMultiPoly returns the degree-1 monomial in variable idx.
func VarMultiPoly(nvars, idx int) *MultiPoly {
	p := newMultiPoly(nvars)
	exp := make([]int, nvars)
	exp[idx] = 1
	p.terms[monomialKey(exp)] = &monomialTerm{exp: exp, coeff: big.NewRat(1, 1)}
	return p
}

func (p *MultiPoly) clone() *MultiPoly {
	q := newMultiPoly(p.nvars)
	for k, t := range p.terms {
		q.terms[k] = &monomialTerm{exp: append([]int(nil), t.exp...), coeff: new(big.Rat).Set(t.coeff)}
	}
	return q
}

// Add returns p+q.
func (p *MultiPoly) Add(q *MultiPoly) *MultiPoly {
	r := p.clone()
	for k, t := range q.terms {
		if existing, ok := r.terms[k]; ok {
			existing.coeff.Add(existing.coeff, t.coeff)
			if existing.coeff.Sign() == 0 {
				delete(r.terms, k)
			}
		} else {
			r.terms[k] = &monomialTerm{exp: append([]int(nil), t.exp...), coeff: new(big.Rat).Set(t.coeff)}
		}
	}
	return r
}

// Neg returns -p.
func (p *MultiPoly) Neg() *MultiPoly {
	r := p.clone()
	for _, t := range r.terms {
		t.coeff.Neg(t.coeff)
	}
	return r
}

// Sub returns p-q.
func (p *MultiPoly) Sub(q *MultiPoly) *MultiPoly { return p.Add(q.Neg()) }

// Scale returns c*p.
func (p *MultiPoly) Scale(c *big.Rat) *MultiPoly {
	if c.Sign() == 0 {
		return newMultiPoly(p.nvars)
	}
	r := newMultiPoly(p.nvars)
	for k, t := range p.terms {
		r.terms[k] = &monomialTerm{exp: append([]int(nil), t.exp...), coeff: new(big.Rat).Mul(t.coeff, c)}
	}
	return r
}

// Mul returns p*q.
func (p *MultiPoly) Mul(q *MultiPoly) *MultiPoly {
	r := newMultiPoly(p.nvars)
	for _, a := range p.terms {
		for _, b := range q.terms {
			exp := make([]int, p.nvars)
			for i := range exp {
				exp[i] = a.exp[i] + b.exp[i]
			}
			k := monomialKey(exp)
			c := new(big.Rat).Mul(a.coeff, b.coeff)
			if existing, ok := r.terms[k]; ok {
				existing.coeff.Add(existing.coeff, c)
				if existing.coeff.Sign() == 0 {
					delete(r.terms, k)
				}
			} else if c.Sign() != 0 {
				r.terms[k] = &monomialTerm{exp: exp, coeff: c}
			}
		}
	}
	return r
}

// Diff returns the partial derivative of p with respect to variable idx.
func (p *MultiPoly) Diff(idx int) *MultiPoly {
	r := newMultiPoly(p.nvars)
	for _, t := range p.terms {
		d := t.exp[idx]
		if d == 0 {
			continue
		}
		exp := append([]int(nil), t.exp...)
		exp[idx] = d - 1
		k := monomialKey(exp)
		c := new(big.Rat).Mul(t.coeff, big.NewRat(int64(d), 1))
		r.terms[k] = &monomialTerm{exp: exp, coeff: c}
	}
	return r
}

// IsZero reports whether p is the zero polynomial.
func (p *MultiPoly) IsZero() bool { return len(p.terms) == 0 }

// Equal reports structural equality (same terms, same coefficients).
func (p *MultiPoly) Equal(q *MultiPoly) bool {
	return p.Sub(q).IsZero()
}

// ToExpr reconstructs p as an Expr over the named variables (len(vars)
// must equal p.nvars), the inverse of ToCoefficient's polynomial path.
func (p *MultiPoly) ToExpr(vars []string) Expr {
	if p.IsZero() {
		return NewRat(0, 1)
	}
	keys := make([]string, 0, len(p.terms))
	for k := range p.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	monomials := make([]Expr, 0, len(keys))
	for _, k := range keys {
		t := p.terms[k]
		factors := []Expr{Rat{Val: t.coeff}}
		for i, e := range t.exp {
			if e > 0 {
				factors = append(factors, Pow{Base: Var{Name: vars[i]}, Exp: e})
			}
		}
		monomials = append(monomials, Mul(factors...))
	}
	return Add(monomials...)
}

// String renders p as a sum of coeff*monomial terms.
func (p *MultiPoly) String() string {
	if p.IsZero() {
		return "0"
	}
	keys := make([]string, 0, len(p.terms))
	for k := range p.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		t := p.terms[k]
		monomial := strings.ReplaceAll(k, ",", "_")
		parts = append(parts, fmt.Sprintf("%s*m[%s]", t.coeff.RatString(), monomial))
	}
	return strings.Join(parts, " + ")
}

package dpoly

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tapir442/pylie/ranking"
	"github.com/tapir442/pylie/symbolic"
)

// DPoly is a sorted, reduced, non-zero, monic list of DTerms: a
// differential polynomial over a fixed ranking context.
type DPoly struct {
	ctx   *ranking.Ctx
	terms []DTerm
}

// New expands e into a DPoly, following the five-step construction
// algorithm: flatten additive terms, classify each monomial's factors
// into a single derivative atom plus a coefficient, aggregate like terms
// by comparison vector, drop zero terms, then sort descending and
// normalize to monic form.
func New(e symbolic.Expr, ctx *ranking.Ctx) (*DPoly, error) {
	indep := ctx.Independent()
	raw := make([]DTerm, 0, len(symbolic.AdditiveTerms(e)))

	for _, monomial := range symbolic.AdditiveTerms(e) {
		atom, coeffFactors, err := splitMonomial(monomial)
		if err != nil {
			return nil, err
		}
		if !ctx.IsCtxFunc(atom.Func) {
			return nil, &ranking.BadContextError{
				Reason: fmt.Sprintf("function %q is not a dependent function of this context", atom.Func),
			}
		}
		coeff, err := symbolic.ToCoefficient(symbolic.Mul(coeffFactors...), indep)
		if err != nil {
			return nil, err
		}
		raw = append(raw, NewDTerm(coeff, atom, ctx))
	}

	return FromTerms(ctx, raw)
}

// FromTerms aggregates like terms by comparison vector, drops any that
// cancel to zero, sorts descending, and normalizes to monic form. It is
// the shared finishing step behind New and is exported so the reducer,
// completion and integrability-condition packages can build a DPoly from
// a raw DTerm list they have assembled themselves.
func FromTerms(ctx *ranking.Ctx, raw []DTerm) (*DPoly, error) {
	terms := aggregateAndSort(ctx, raw)
	if len(terms) == 0 {
		return &DPoly{ctx: ctx, terms: nil}, nil
	}
	if lead := terms[0].Coeff; !lead.IsOne() {
		inv, err := lead.Invert()
		if err != nil {
			return nil, err
		}
		for i := range terms {
			terms[i].Coeff = terms[i].Coeff.Mul(inv)
		}
	}
	return &DPoly{ctx: ctx, terms: terms}, nil
}

// aggregateAndSort merges terms sharing a comparison vector, drops any
// with a zero resulting coefficient, and sorts the survivors descending
// under ctx.Gt. It does not monicify.
func aggregateAndSort(ctx *ranking.Ctx, raw []DTerm) []DTerm {
	byCV := map[string]*DTerm{}
	order := []string{}
	for _, t := range raw {
		key := cvKey(t.CV)
		if existing, ok := byCV[key]; ok {
			existing.Coeff = existing.Coeff.Add(t.Coeff)
		} else {
			tt := t
			byCV[key] = &tt
			order = append(order, key)
		}
	}
	terms := make([]DTerm, 0, len(order))
	for _, key := range order {
		t := *byCV[key]
		if !t.IsZero() {
			terms = append(terms, t)
		}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return ctx.Gt(terms[i].CV, terms[j].CV)
	})
	return terms
}

// newRaw builds a DPoly directly from an already-sorted, already-reduced
// term list, used internally when the result is not expected to need
// re-monicification (e.g. differentiation).
func newRaw(ctx *ranking.Ctx, terms []DTerm) *DPoly {
	return &DPoly{ctx: ctx, terms: terms}
}

// splitMonomial classifies a monomial's multiplicative factors into
// exactly one derivative atom and a list of coefficient-part factors.
func splitMonomial(monomial symbolic.Expr) (symbolic.Atom, []symbolic.Expr, error) {
	factors := symbolic.MultiplicativeFactors(monomial)
	var atom *symbolic.Atom
	var atomCount int
	coeffFactors := make([]symbolic.Expr, 0, len(factors))

	for _, f := range factors {
		switch v := f.(type) {
		case symbolic.FuncAtom:
			atomCount++
			a := v.Atom
			atom = &a
		case symbolic.Pow:
			if fa, ok := v.Base.(symbolic.FuncAtom); ok {
				atomCount++
				if v.Exp != 1 {
					return symbolic.Atom{}, nil, &NotLinearPDEError{Monomial: monomial.String()}
				}
				a := fa.Atom
				atom = &a
				continue
			}
			coeffFactors = append(coeffFactors, f)
		default:
			coeffFactors = append(coeffFactors, f)
		}
	}

	if atomCount == 0 {
		return symbolic.Atom{}, nil, &MalformedTermError{Monomial: monomial.String()}
	}
	if atomCount > 1 {
		return symbolic.Atom{}, nil, &NotLinearPDEError{Monomial: monomial.String()}
	}
	if len(coeffFactors) == 0 {
		coeffFactors = append(coeffFactors, symbolic.NewRat(1, 1))
	}
	return *atom, coeffFactors, nil
}

// Terms returns the ordered DTerm list. Callers must not mutate it.
func (p *DPoly) Terms() []DTerm { return p.terms }

// Len reports the number of terms; a zero-length DPoly is the zero
// polynomial (falsy).
func (p *DPoly) Len() int { return len(p.terms) }

// IsZero reports whether p is the zero polynomial.
func (p *DPoly) IsZero() bool { return len(p.terms) == 0 }

// Derivatives returns the ordered list of derivative atoms.
func (p *DPoly) Derivatives() []symbolic.Atom {
	out := make([]symbolic.Atom, len(p.terms))
	for i, t := range p.terms {
		out[i] = t.Derivative
	}
	return out
}

// Coefficients returns the ordered list of coefficients.
func (p *DPoly) Coefficients() []symbolic.Coefficient {
	out := make([]symbolic.Coefficient, len(p.terms))
	for i, t := range p.terms {
		out[i] = t.Coeff
	}
	return out
}

// Ctx returns the ranking context p was built against.
func (p *DPoly) Ctx() *ranking.Ctx { return p.ctx }

// Lder returns the leading derivative, panicking on the zero polynomial.
func (p *DPoly) Lder() symbolic.Atom {
	p.mustNonZero("Lder")
	return p.terms[0].Derivative
}

// Lcoeff returns the leading coefficient, panicking on the zero polynomial.
func (p *DPoly) Lcoeff() symbolic.Coefficient {
	p.mustNonZero("Lcoeff")
	return p.terms[0].Coeff
}

// Lfunc returns the leading term's function symbol, panicking on the
// zero polynomial.
func (p *DPoly) Lfunc() string {
	p.mustNonZero("Lfunc")
	return p.terms[0].Derivative.Func
}

// LeadCV returns the leading term's comparison vector, panicking on the
// zero polynomial.
func (p *DPoly) LeadCV() []int {
	p.mustNonZero("LeadCV")
	return p.terms[0].CV
}

func (p *DPoly) mustNonZero(op string) {
	if len(p.terms) == 0 {
		panic(fmt.Sprintf("dpoly: %s called on the zero polynomial", op))
	}
}

// Expression reconstructs p as a host-engine expression Sigma
// coeff*derivative.
func (p *DPoly) Expression() symbolic.Expr {
	if len(p.terms) == 0 {
		return symbolic.NewRat(0, 1)
	}
	terms := make([]symbolic.Expr, len(p.terms))
	for i, t := range p.terms {
		coeffExpr := symbolic.ExprOf(t.Coeff, p.ctx.Independent())
		terms[i] = symbolic.Mul(coeffExpr, symbolic.FuncAtom{Atom: t.Derivative})
	}
	return symbolic.Add(terms...)
}

// Diff differentiates p with respect to one or more independent
// variables (applied left to right), merging like terms by comparison
// vector and dropping any that cancel to zero. The result is NOT
// re-monicified: differentiation of a monic polynomial need not itself
// be monic, and callers (the reducer, the integrability generator) work
// with the raw result.
func (p *DPoly) Diff(vars ...string) *DPoly {
	cur := p
	for _, v := range vars {
		cur = cur.diffOnce(v)
	}
	return cur
}

func (p *DPoly) diffOnce(varName string) *DPoly {
	idx := indexOf(p.ctx.Independent(), varName)
	raw := make([]DTerm, 0, 2*len(p.terms))
	for _, t := range p.terms {
		raw = append(raw, t.Diff(idx, varName, p.ctx)...)
	}
	return newRaw(p.ctx, aggregateAndSort(p.ctx, raw))
}

// Equal reports whether p and o have the same length and pointwise-equal
// DTerms in order.
func (p *DPoly) Equal(o *DPoly) bool {
	if len(p.terms) != len(o.terms) {
		return false
	}
	for i := range p.terms {
		if !p.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// Less orders two DPolys by leading comparison vector, ascending
// (o.LeadCV ranks higher), tie-broken by pointwise comparison of the
// subsequent DTerms; used only to order a System.
func (p *DPoly) Less(o *DPoly) bool {
	switch {
	case p.IsZero() && o.IsZero():
		return false
	case p.IsZero():
		return true
	case o.IsZero():
		return false
	}
	if !equalCV(p.terms[0].CV, o.terms[0].CV) {
		return o.ctx.Gt(o.terms[0].CV, p.terms[0].CV)
	}
	n := len(p.terms)
	if len(o.terms) < n {
		n = len(o.terms)
	}
	for i := 1; i < n; i++ {
		if !equalCV(p.terms[i].CV, o.terms[i].CV) {
			return o.ctx.Gt(o.terms[i].CV, p.terms[i].CV)
		}
		if cmp := compareCoeff(p.terms[i].Coeff, o.terms[i].Coeff); cmp != 0 {
			return cmp < 0
		}
	}
	return len(p.terms) < len(o.terms)
}

// compareCoeff provides an arbitrary but stable order between two
// unequal coefficients, used only to break System-ordering ties; it
// never affects algebraic results.
func compareCoeff(a, b symbolic.Coefficient) int {
	return strings.Compare(a.String(), b.String())
}

// Hash returns a stable string hash over the sequence of term hashes.
func (p *DPoly) Hash() string {
	var b strings.Builder
	for i, t := range p.terms {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(cvKey(t.CV))
		b.WriteByte(':')
		b.WriteString(t.Coeff.String())
	}
	return b.String()
}

func (p *DPoly) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(p.terms))
	for i, t := range p.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

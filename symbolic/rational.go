package symbolic

import "math/big"

// Coefficient is the exact-arithmetic capability a differential-term
// coefficient implements: ring operations, structural equality, a zero
// test, and single-variable differentiation (the product and quotient
// rule the term-wise derivative needs).
type Coefficient interface {
	Add(Coefficient) Coefficient
	Sub(Coefficient) Coefficient
	Mul(Coefficient) Coefficient
	Neg() Coefficient
	Scale(*big.Rat) Coefficient
	Diff(varIndex int) Coefficient
	Invert() (Coefficient, error)
	Equal(Coefficient) bool
	IsZero() bool
	IsOne() bool
	String() string
}

// RationalExpr is an exact ratio of two MultiPoly values: the concrete
// Coefficient backend used throughout the core. Num and Den are not
// reduced by common factors, so one value can have several Num/Den
// pairs; Equal compares by cross-multiplication.
type RationalExpr struct {
	Num, Den *MultiPoly
}

// NewRationalConst builds the constant rational-function c.
func NewRationalConst(nvars int, c *big.Rat) *RationalExpr {
	return &RationalExpr{Num: ConstMultiPoly(nvars, c), Den: ConstMultiPoly(nvars, big.NewRat(1, 1))}
}

// NewRationalVar builds the rational function equal to variable idx.
func NewRationalVar(nvars, idx int) *RationalExpr {
	return &RationalExpr{Num: VarMultiPoly(nvars, idx), Den: ConstMultiPoly(nvars, big.NewRat(1, 1))}
}

// NewRationalFromPoly lifts a bare polynomial to a rational function.
func NewRationalFromPoly(p *MultiPoly) *RationalExpr {
	return &RationalExpr{Num: p, Den: ConstMultiPoly(p.nvars, big.NewRat(1, 1))}
}

// Add implements Coefficient.
func (r *RationalExpr) Add(o Coefficient) Coefficient {
	s := o.(*RationalExpr)
	return &RationalExpr{
		Num: r.Num.Mul(s.Den).Add(s.Num.Mul(r.Den)),
		Den: r.Den.Mul(s.Den),
	}
}

// Sub implements Coefficient.
func (r *RationalExpr) Sub(o Coefficient) Coefficient {
	return r.Add(o.Neg())
}

// Mul implements Coefficient.
func (r *RationalExpr) Mul(o Coefficient) Coefficient {
	s := o.(*RationalExpr)
	return &RationalExpr{Num: r.Num.Mul(s.Num), Den: r.Den.Mul(s.Den)}
}

// Neg implements Coefficient.
func (r *RationalExpr) Neg() Coefficient {
	return &RationalExpr{Num: r.Num.Neg(), Den: r.Den}
}

// Scale implements Coefficient.
func (r *RationalExpr) Scale(c *big.Rat) Coefficient {
	return &RationalExpr{Num: r.Num.Scale(c), Den: r.Den}
}

// Diff implements Coefficient via the quotient rule
// (N/D)' = (N'D - N D') / D^2.
func (r *RationalExpr) Diff(varIndex int) Coefficient {
	if r.isPolynomial() {
		return &RationalExpr{Num: r.Num.Diff(varIndex), Den: r.Den}
	}
	nprime := r.Num.Diff(varIndex)
	dprime := r.Den.Diff(varIndex)
	return &RationalExpr{
		Num: nprime.Mul(r.Den).Sub(r.Num.Mul(dprime)),
		Den: r.Den.Mul(r.Den),
	}
}

func (r *RationalExpr) isPolynomial() bool {
	if len(r.Den.terms) != 1 {
		return false
	}
	for _, t := range r.Den.terms {
		for _, e := range t.exp {
			if e != 0 {
				return false
			}
		}
		return t.coeff.Cmp(big.NewRat(1, 1)) == 0
	}
	return false
}

// Invert returns 1/r. Division by the zero polynomial is reported as an
// error and propagated as-is.
func (r *RationalExpr) Invert() (Coefficient, error) {
	if r.Num.IsZero() {
		return nil, &DivisionByZeroError{}
	}
	return &RationalExpr{Num: r.Den, Den: r.Num}, nil
}

// Equal implements Coefficient by cross-multiplication: a/b == c/d iff
// a*d == c*b, avoiding any need to reduce to lowest terms.
func (r *RationalExpr) Equal(o Coefficient) bool {
	s := o.(*RationalExpr)
	return r.Num.Mul(s.Den).Equal(s.Num.Mul(r.Den))
}

// IsZero implements Coefficient (the denominator is guaranteed non-zero
// by construction, so only the numerator needs checking).
func (r *RationalExpr) IsZero() bool { return r.Num.IsZero() }

// IsOne reports whether r is structurally the constant 1.
func (r *RationalExpr) IsOne() bool { return r.Num.Equal(r.Den) }

// ToExpr reconstructs r as an Expr over the named independent variables.
func (r *RationalExpr) ToExpr(vars []string) Expr {
	num := r.Num.ToExpr(vars)
	if r.isPolynomial() {
		return num
	}
	return Div(num, r.Den.ToExpr(vars))
}

func (r *RationalExpr) String() string {
	if r.isPolynomial() {
		return r.Num.String()
	}
	return "(" + r.Num.String() + ")/(" + r.Den.String() + ")"
}

// DivisionByZeroError reports an attempt to invert the zero coefficient,
// e.g. during monic normalization with a symbolically-but-not-structurally
// zero leading coefficient.
type DivisionByZeroError struct{}

func (*DivisionByZeroError) Error() string {
	return "symbolic: division by zero coefficient"
}

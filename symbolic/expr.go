package symbolic

import (
	"fmt"
	"math/big"
	"strings"
)

// Expr is a symbolic expression tree: the representation a caller uses to
// build the input PDEs handed to the core. It covers exactly the shapes a
// homogeneous linear PDE needs: sums of monomials, each monomial a
// product of a coefficient (built from Rat, Var, Pow, Sum, Product) and at
// most one derivative atom (FuncAtom).
type Expr interface {
	exprNode()
	String() string
}

// Rat is an exact rational constant.
type Rat struct{ Val *big.Rat }

// Var is an independent variable, referenced by name.
type Var struct{ Name string }

// Pow raises Base to an integer exponent, which may be negative (division).
type Pow struct {
	Base Expr
	Exp  int
}

// Sum is a flattened additive list of terms.
type Sum struct{ Terms []Expr }

// Product is a flattened multiplicative list of factors.
type Product struct{ Factors []Expr }

// FuncAtom wraps a derivative atom inside the expression tree.
type FuncAtom struct{ Atom Atom }

func (Rat) exprNode()      {}
func (Var) exprNode()      {}
func (Pow) exprNode()      {}
func (Sum) exprNode()      {}
func (Product) exprNode()  {}
func (FuncAtom) exprNode() {}

func (r Rat) String() string { return r.Val.RatString() }
func (v Var) String() string { return v.Name }
func (p Pow) String() string { return fmt.Sprintf("(%s)^%d", p.Base, p.Exp) }
func (s Sum) String() string {
	parts := make([]string, len(s.Terms))
	for i, t := range s.Terms {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, " + ") + ")"
}
func (p Product) String() string {
	parts := make([]string, len(p.Factors))
	for i, f := range p.Factors {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, " * ") + ")"
}
func (f FuncAtom) String() string { return f.Atom.String() }

// NewRat builds the exact rational constant num/den.
func NewRat(num, den int64) Expr {
	return Rat{Val: big.NewRat(num, den)}
}

// NewVar builds an independent-variable reference.
func NewVar(name string) Expr { return Var{Name: name} }

// NewFunc builds the order-0 application of a dependent function symbol.
func NewFunc(name string) Expr { return FuncAtom{Atom: NewAtom(name)} }

// D differentiates a function atom by the given independent variables
// (each may repeat for a higher-order derivative), returning the
// prolonged FuncAtom. D only operates on function atoms: the capability
// the core actually exercises is always "differentiate a dependent
// function", never "differentiate an arbitrary coefficient expression" at
// input-construction time.
func D(e Expr, vars ...string) Expr {
	fa, ok := e.(FuncAtom)
	if !ok {
		panic("symbolic: D requires a function atom (built with NewFunc or a prior D)")
	}
	return FuncAtom{Atom: fa.Atom.WithDiff(vars...)}
}

// Add flattens its arguments into a single Sum.
func Add(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if s, ok := t.(Sum); ok {
			flat = append(flat, s.Terms...)
		} else {
			flat = append(flat, t)
		}
	}
	return Sum{Terms: flat}
}

// Mul flattens its arguments into a single Product.
func Mul(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if p, ok := f.(Product); ok {
			flat = append(flat, p.Factors...)
		} else {
			flat = append(flat, f)
		}
	}
	return Product{Factors: flat}
}

// Neg returns -e.
func Neg(e Expr) Expr { return Mul(NewRat(-1, 1), e) }

// Sub returns a-b.
func Sub(a, b Expr) Expr { return Add(a, Neg(b)) }

// Div returns a/b (b must not itself contain a derivative atom).
func Div(a, b Expr) Expr { return Mul(a, Pow{Base: b, Exp: -1}) }

// AdditiveTerms is the Add.make_args capability: the flattened list of
// summands, or a one-element list if e is not itself a Sum.
func AdditiveTerms(e Expr) []Expr {
	if s, ok := e.(Sum); ok {
		return s.Terms
	}
	return []Expr{e}
}

// MultiplicativeFactors is the Mul.make_args capability.
func MultiplicativeFactors(e Expr) []Expr {
	if p, ok := e.(Product); ok {
		return p.Factors
	}
	return []Expr{e}
}

package symbolic

import (
	"fmt"
	"math/big"
)

// UnexpectedAtomError reports a derivative atom found where a pure
// coefficient expression was expected.
type UnexpectedAtomError struct {
	Atom Atom
}

func (e *UnexpectedAtomError) Error() string {
	return fmt.Sprintf("symbolic: unexpected derivative atom %s in coefficient position", e.Atom)
}

// FreeVariableError reports a Var that does not appear among the
// independent variables of the ranking context.
type FreeVariableError struct {
	Name string
}

func (e *FreeVariableError) Error() string {
	return fmt.Sprintf("symbolic: variable %q is not an independent variable of this context", e.Name)
}

// ToCoefficient canonicalizes a coefficient-only expression (no FuncAtom)
// into a Coefficient over the given independent-variable tuple.
func ToCoefficient(e Expr, indep []string) (Coefficient, error) {
	switch v := e.(type) {
	case Rat:
		return NewRationalConst(len(indep), v.Val), nil
	case Var:
		idx := indexOf(indep, v.Name)
		if idx < 0 {
			return nil, &FreeVariableError{Name: v.Name}
		}
		return NewRationalVar(len(indep), idx), nil
	case FuncAtom:
		return nil, &UnexpectedAtomError{Atom: v.Atom}
	case Sum:
		acc := Coefficient(NewRationalConst(len(indep), big.NewRat(0, 1)))
		for _, t := range v.Terms {
			c, err := ToCoefficient(t, indep)
			if err != nil {
				return nil, err
			}
			acc = acc.Add(c)
		}
		return acc, nil
	case Product:
		acc := Coefficient(NewRationalConst(len(indep), big.NewRat(1, 1)))
		for _, f := range v.Factors {
			c, err := ToCoefficient(f, indep)
			if err != nil {
				return nil, err
			}
			acc = acc.Mul(c)
		}
		return acc, nil
	case Pow:
		base, err := ToCoefficient(v.Base, indep)
		if err != nil {
			return nil, err
		}
		return powCoefficient(base, v.Exp)
	default:
		return nil, fmt.Errorf("symbolic: unsupported expression node %T", e)
	}
}

// ExprOf reconstructs a Coefficient as an Expr over the given independent
// variables, the inverse of ToCoefficient.
func ExprOf(c Coefficient, indep []string) Expr {
	return c.(*RationalExpr).ToExpr(indep)
}

func powCoefficient(base Coefficient, exp int) (Coefficient, error) {
	if exp < 0 {
		inv, err := base.Invert()
		if err != nil {
			return nil, err
		}
		return powCoefficient(inv, -exp)
	}
	result := Coefficient(NewRationalConst(base.(*RationalExpr).Num.nvars, big.NewRat(1, 1)))
	for i := 0; i < exp; i++ {
		result = result.Mul(base)
	}
	return result, nil
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

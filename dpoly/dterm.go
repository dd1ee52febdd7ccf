package dpoly

import (
	"fmt"
	"strings"

	"github.com/tapir442/pylie/ranking"
	"github.com/tapir442/pylie/symbolic"
)

// DTerm is coeff * derivative, together with the comparison vector of
// derivative under a fixed ranking context (computed once at
// construction, never recomputed).
type DTerm struct {
	Coeff      symbolic.Coefficient
	Derivative symbolic.Atom
	CV         []int
}

// NewDTerm builds a DTerm, deriving CV from derivative and ctx.
func NewDTerm(coeff symbolic.Coefficient, derivative symbolic.Atom, ctx *ranking.Ctx) DTerm {
	return DTerm{Coeff: coeff, Derivative: derivative, CV: ctx.ComparisonVector(derivative)}
}

// IsZero reports whether the term's coefficient is structurally zero.
func (t DTerm) IsZero() bool { return t.Coeff.IsZero() }

// Equal reports whether two DTerms have equal comparison vectors and
// structurally-equal coefficients.
func (t DTerm) Equal(o DTerm) bool {
	return equalCV(t.CV, o.CV) && t.Coeff.Equal(o.Coeff)
}

// Diff differentiates a single DTerm with respect to one independent
// variable (varIndex is its position in the ranking context's
// independent tuple, varName its symbol), returning the product-rule
// expansion as up to two new DTerms: the term with the coefficient
// differentiated, and the term with the derivative atom prolonged. A
// zero coefficient derivative is dropped rather than emitted.
func (t DTerm) Diff(varIndex int, varName string, ctx *ranking.Ctx) []DTerm {
	out := make([]DTerm, 0, 2)
	if dc := t.Coeff.Diff(varIndex); !dc.IsZero() {
		out = append(out, NewDTerm(dc, t.Derivative, ctx))
	}
	out = append(out, NewDTerm(t.Coeff, t.Derivative.WithDiff(varName), ctx))
	return out
}

// String renders the term as "coeff*derivative".
func (t DTerm) String() string {
	return fmt.Sprintf("%s*%s", t.Coeff.String(), t.Derivative.String())
}

func equalCV(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cvKey(cv []int) string {
	var b strings.Builder
	for i, v := range cv {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	return b.String()
}

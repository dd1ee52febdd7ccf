// Package dpoly implements the differential-polynomial data model: DTerm
// (coefficient * derivative atom) and DPoly (a sorted, reduced, monic list
// of DTerms), built by expanding a symbolic expression into its monomials
// and classifying each one.
package dpoly

import "fmt"

// NotLinearPDEError reports a monomial whose derivative-part is more than
// one atom, or a single atom raised to a power other than 1: the input
// PDE is not linear in the dependent functions.
type NotLinearPDEError struct {
	Monomial string
}

func (e *NotLinearPDEError) Error() string {
	return fmt.Sprintf("dpoly: monomial %q is not linear in the dependent functions", e.Monomial)
}

// MalformedTermError reports a monomial with no identifiable derivative
// atom at all.
type MalformedTermError struct {
	Monomial string
}

func (e *MalformedTermError) Error() string {
	return fmt.Sprintf("dpoly: monomial %q has no identifiable derivative atom", e.Monomial)
}

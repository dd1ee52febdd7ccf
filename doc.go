// Package pylie computes a Janet basis for a finite system of
// homogeneous linear partial differential equations: a term order and
// completion procedure analogous to a Gröbner basis for the
// differential-ideal setting.
//
// A typical call builds a ranking context, expands the input PDEs into
// differential polynomials, and iterates autoreduction, completion and
// integrability-condition reduction to a fixpoint:
//
//	ctx, err := pylie.Context([]string{"w"}, []string{"x", "y"}, ranking.Grevlex)
//	basis, err := pylie.JanetBasis(system, []string{"w"}, []string{"x", "y"}, ranking.Grevlex)
package pylie

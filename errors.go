package pylie

import "fmt"

// NonTerminatingError reports that the basis driver exceeded its bounded
// iteration count without reaching a fixpoint. Termination is guaranteed
// for well-formed linear systems, so hitting the bound indicates
// malformed input rather than a slow computation.
type NonTerminatingError struct {
	Iterations int
}

func (e *NonTerminatingError) Error() string {
	return fmt.Sprintf("pylie: basis driver did not converge after %d iterations", e.Iterations)
}

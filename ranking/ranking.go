// Package ranking implements the term-order engine: the weight matrices
// for lex, grlex and grevlex orderings, and the Ctx that totally orders
// derivative atoms by their comparison vectors.
//
// The weight matrix and comparison vectors are small, exact integers.
// Comparison vectors are plain []int; Ctx stores the weight matrix as a
// gonum.org/v1/gonum/mat float64 Dense and evaluates W·(u-v) with a
// VecDense (every value involved is exactly representable) rather than
// hand-rolled matrix code.
package ranking

import (
	"fmt"
	"strings"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/tapir442/pylie/symbolic"
)

// OrderKind selects one of the three supported term orders.
type OrderKind int

const (
	// Lex is the pure lexicographic order: function index dominates,
	// then lex order in the independent variables.
	Lex OrderKind = iota
	// Grlex prepends a total-degree row to Lex.
	Grlex
	// Grevlex shares Grlex's first two rows; remaining rows break ties
	// by "last variable smallest".
	Grevlex
)

// Mlex returns the (nVars+1) x (nVars+nFuncs) lex weight matrix for
// nFuncs dependent functions and nVars independent variables.
func Mlex(nFuncs, nVars int) *mat.Dense {
	cols := nVars + nFuncs
	rows := nVars + 1
	data := make([]float64, rows*cols)
	for j := 0; j < nFuncs; j++ {
		data[nVars+j] = float64(nFuncs - j)
	}
	for i := 0; i < nVars; i++ {
		data[(i+1)*cols+i] = 1
	}
	return mat.NewDense(rows, cols, data)
}

// Mgrlex returns Mlex with a total-degree row prepended.
func Mgrlex(nFuncs, nVars int) *mat.Dense {
	base := Mlex(nFuncs, nVars)
	rows, cols := base.Dims()
	data := make([]float64, (rows+1)*cols)
	for j := 0; j < nVars; j++ {
		data[j] = 1
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[(i+1)*cols+j] = base.At(i, j)
		}
	}
	return mat.NewDense(rows+1, cols, data)
}

// Mgrevlex returns the grevlex weight matrix: the same first two rows as
// Mgrlex, then one row per variable placing -1 in reverse order.
func Mgrevlex(nFuncs, nVars int) *mat.Dense {
	cols := nVars + nFuncs
	rows := nVars + 2
	data := make([]float64, rows*cols)
	for j := 0; j < nVars; j++ {
		data[j] = 1
	}
	for j := 0; j < nFuncs; j++ {
		data[cols+nVars+j] = float64(nFuncs - j)
	}
	for idx := 0; idx < nVars; idx++ {
		row := 2 + idx
		col := nVars - idx - 1
		data[row*cols+col] = -1
	}
	return mat.NewDense(rows, cols, data)
}

// WeightMatrix dispatches to Mlex, Mgrlex or Mgrevlex.
func WeightMatrix(order OrderKind, nFuncs, nVars int) *mat.Dense {
	switch order {
	case Lex:
		return Mlex(nFuncs, nVars)
	case Grlex:
		return Mgrlex(nFuncs, nVars)
	case Grevlex:
		return Mgrevlex(nFuncs, nVars)
	default:
		panic(fmt.Sprintf("ranking: unknown order kind %d", order))
	}
}

// Ctx is a ranking context: an ordered tuple of dependent functions, an
// ordered tuple of independent variables, and the weight matrix for the
// chosen order.
type Ctx struct {
	dependent   []string
	independent []string
	order       OrderKind
	weight      *mat.Dense

	mu    sync.Mutex
	cache map[string]bool
}

// NewContext validates and constructs a ranking context. dependent and
// independent must each be non-empty, duplicate-free, and disjoint from
// one another.
func NewContext(dependent, independent []string, order OrderKind) (*Ctx, error) {
	if len(dependent) == 0 {
		return nil, &BadContextError{Reason: "dependent tuple is empty"}
	}
	if len(independent) == 0 {
		return nil, &BadContextError{Reason: "independent tuple is empty"}
	}
	if name, ok := firstDuplicate(dependent); ok {
		return nil, &BadContextError{Reason: fmt.Sprintf("dependent function %q appears more than once", name)}
	}
	if name, ok := firstDuplicate(independent); ok {
		return nil, &BadContextError{Reason: fmt.Sprintf("independent variable %q appears more than once", name)}
	}
	for _, d := range dependent {
		if indexOf(independent, d) >= 0 {
			return nil, &BadContextError{Reason: fmt.Sprintf("%q is both dependent and independent", d)}
		}
	}
	ctx := &Ctx{
		dependent:   append([]string(nil), dependent...),
		independent: append([]string(nil), independent...),
		order:       order,
		weight:      WeightMatrix(order, len(dependent), len(independent)),
		cache:       map[string]bool{},
	}
	return ctx, nil
}

// Dependent returns a copy of the ordered dependent-function tuple.
func (c *Ctx) Dependent() []string { return append([]string(nil), c.dependent...) }

// Independent returns a copy of the ordered independent-variable tuple.
func (c *Ctx) Independent() []string { return append([]string(nil), c.independent...) }

// Order reports the order kind the context was built with.
func (c *Ctx) Order() OrderKind { return c.order }

// Weight returns the weight matrix backing this context. Callers must not
// mutate the returned matrix.
func (c *Ctx) Weight() *mat.Dense { return c.weight }

func (c *Ctx) dim() int { return len(c.independent) + len(c.dependent) }

// Gt reports whether comparison vector u ranks strictly higher than v:
// the first non-zero entry of W·(u-v) is positive. Results are memoized,
// since Gt is a pure function of the (fixed) weight matrix and its two
// arguments.
func (c *Ctx) Gt(u, v []int) bool {
	if len(u) != c.dim() || len(v) != c.dim() {
		panic(ErrShape)
	}
	key := encodeVec(u) + "|" + encodeVec(v)
	c.mu.Lock()
	if cached, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	diff := make([]float64, len(u))
	for i := range u {
		diff[i] = float64(u[i] - v[i])
	}
	diffVec := mat.NewVecDense(len(diff), diff)
	rows, _ := c.weight.Dims()
	res := mat.NewVecDense(rows, nil)
	res.MulVec(c.weight, diffVec)

	result := false
	for i := 0; i < rows; i++ {
		if val := res.AtVec(i); val != 0 {
			result = val > 0
			break
		}
	}

	c.mu.Lock()
	c.cache[key] = result
	c.mu.Unlock()
	return result
}

// Lt reports whether u ranks strictly below v.
func (c *Ctx) Lt(u, v []int) bool { return c.Gt(v, u) }

// IsCtxFunc reports whether name is one of the dependent functions.
func (c *Ctx) IsCtxFunc(name string) bool { return indexOf(c.dependent, name) >= 0 }

// OrderOfDerivative returns the length-n differentiation-order vector of
// atom, reading the order in which variables appear in c.independent.
func (c *Ctx) OrderOfDerivative(atom symbolic.Atom) []int {
	return atom.OrderVector(c.independent)
}

// ComparisonVector builds the comparison vector of atom: its order vector
// concatenated with the unit vector marking its function index.
func (c *Ctx) ComparisonVector(atom symbolic.Atom) []int {
	cv := atom.OrderVector(c.independent)
	unit := make([]int, len(c.dependent))
	if idx := indexOf(c.dependent, atom.Func); idx >= 0 {
		unit[idx] = 1
	}
	return append(cv, unit...)
}

func firstDuplicate(s []string) (string, bool) {
	seen := map[string]struct{}{}
	for _, v := range s {
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	return "", false
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func encodeVec(v []int) string {
	var b strings.Builder
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", x)
	}
	return b.String()
}

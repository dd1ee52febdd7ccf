package reduce

import (
	"testing"

	"github.com/tapir442/pylie/dpoly"
	"github.com/tapir442/pylie/ranking"
	"github.com/tapir442/pylie/symbolic"
)

func mustCtx(t *testing.T) *ranking.Ctx {
	t.Helper()
	ctx, err := ranking.NewContext([]string{"w"}, []string{"x", "y"}, ranking.Grevlex)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return ctx
}

func mustDPoly(t *testing.T, e symbolic.Expr, ctx *ranking.Ctx) *dpoly.DPoly {
	t.Helper()
	p, err := dpoly.New(e, ctx)
	if err != nil {
		t.Fatalf("dpoly.New: %v", err)
	}
	return p
}

func TestReduceCancelsProlongation(t *testing.T) {
	ctx := mustCtx(t)
	q := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "x"), ctx) // w_x
	p := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "x", "x"), ctx) // w_xx

	result, err := Reduce(p, q)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if !result.IsZero() {
		t.Errorf("Reduce(w_xx, w_x) = %s, want the zero polynomial", result)
	}
}

func TestReduceLeavesUnrelatedTermUntouched(t *testing.T) {
	ctx := mustCtx(t)
	q := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "x"), ctx) // w_x
	p := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "y"), ctx) // w_y, not a prolongation of w_x

	result, err := Reduce(p, q)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if !result.Equal(p) {
		t.Errorf("Reduce(w_y, w_x) = %s, want unchanged w_y", result)
	}
}

func TestReduceSystemAgainstMultipleElements(t *testing.T) {
	ctx := mustCtx(t)
	qx := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "x"), ctx) // w_x
	qy := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "y"), ctx) // w_y
	// w_xy is a prolongation of both; reducing against either alone
	// removes it.
	p := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "x", "y"), ctx)

	result, err := ReduceSystem(p, []*dpoly.DPoly{qx, qy})
	if err != nil {
		t.Fatalf("ReduceSystem: %v", err)
	}
	if !result.IsZero() {
		t.Errorf("ReduceSystem(w_xy, {w_x,w_y}) = %s, want the zero polynomial", result)
	}
}

// TestReduceSystemPermutationInvariant: reduceS yields the same normal
// form regardless of the order the system elements are presented in.
func TestReduceSystemPermutationInvariant(t *testing.T) {
	ctx := mustCtx(t)
	wxx := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "x", "x"), ctx)
	wy := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "y"), ctx)
	p := mustDPoly(t, symbolic.Add(
		symbolic.D(symbolic.NewFunc("w"), "x", "x", "y"),
		symbolic.D(symbolic.NewFunc("w"), "x"),
	), ctx)

	r1, err := ReduceSystem(p, []*dpoly.DPoly{wxx, wy})
	if err != nil {
		t.Fatalf("ReduceSystem: %v", err)
	}
	r2, err := ReduceSystem(p, []*dpoly.DPoly{wy, wxx})
	if err != nil {
		t.Fatalf("ReduceSystem (permuted): %v", err)
	}
	if !r1.Equal(r2) {
		t.Errorf("normal forms differ across permutations: %s vs %s", r1, r2)
	}
	// w_xxy is eliminated either way; the irreducible remainder is w_x.
	if r1.IsZero() || r1.Lfunc() != "w" {
		t.Fatalf("ReduceSystem = %s, want w_x", r1)
	}
	if order := ctx.OrderOfDerivative(r1.Lder()); order[0] != 1 || order[1] != 0 {
		t.Errorf("remainder leading order = %v, want [1 0]", order)
	}
}

// TestAutoreduceIdempotent: autoreduction is a fixpoint operator.
func TestAutoreduceIdempotent(t *testing.T) {
	ctx := mustCtx(t)
	wx := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "x"), ctx)
	mixed := mustDPoly(t, symbolic.Add(
		symbolic.D(symbolic.NewFunc("w"), "x", "y"),
		symbolic.D(symbolic.NewFunc("w"), "y"),
	), ctx)

	once, err := Autoreduce([]*dpoly.DPoly{wx, mixed}, ctx)
	if err != nil {
		t.Fatalf("Autoreduce: %v", err)
	}
	twice, err := Autoreduce(once, ctx)
	if err != nil {
		t.Fatalf("Autoreduce (second pass): %v", err)
	}
	if len(once) != len(twice) {
		t.Fatalf("second autoreduction changed the system size: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if !once[i].Equal(twice[i]) {
			t.Errorf("element %d changed on repeated autoreduction: %s vs %s", i, once[i], twice[i])
		}
	}
}

func TestAutoreduceDropsDependentElement(t *testing.T) {
	ctx := mustCtx(t)
	wx := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "x"), ctx)
	wxx := mustDPoly(t, symbolic.D(symbolic.NewFunc("w"), "x", "x"), ctx)

	result, err := Autoreduce([]*dpoly.DPoly{wx, wxx}, ctx)
	if err != nil {
		t.Fatalf("Autoreduce: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("Autoreduce({w_x, w_xx}) has %d elements, want 1", len(result))
	}
	if !result[0].Equal(wx) {
		t.Errorf("Autoreduce({w_x, w_xx}) = %s, want {w_x}", result[0])
	}
}

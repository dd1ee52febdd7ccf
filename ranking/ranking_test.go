package ranking

import (
	"testing"

	"github.com/tapir442/pylie/symbolic"
)

// TestMgrevlexPinned reproduces the pinned weight matrix for
// dependent=(f,g), independent=(x,y,z) under grevlex.
func TestMgrevlexPinned(t *testing.T) {
	want := [][]float64{
		{1, 1, 1, 0, 0},
		{0, 0, 0, 2, 1},
		{0, 0, -1, 0, 0},
		{0, -1, 0, 0, 0},
		{-1, 0, 0, 0, 0},
	}
	m := Mgrevlex(2, 3)
	rows, cols := m.Dims()
	if rows != len(want) || cols != len(want[0]) {
		t.Fatalf("Mgrevlex(2,3) shape = %dx%d, want %dx%d", rows, cols, len(want), len(want[0]))
	}
	for i := range want {
		for j := range want[i] {
			if got := m.At(i, j); got != want[i][j] {
				t.Errorf("Mgrevlex(2,3)[%d][%d] = %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}

func TestNewContextValidation(t *testing.T) {
	cases := []struct {
		name        string
		dependent   []string
		independent []string
	}{
		{"empty dependent", nil, []string{"x"}},
		{"empty independent", []string{"f"}, nil},
		{"duplicate dependent", []string{"f", "f"}, []string{"x", "y"}},
		{"duplicate independent", []string{"f"}, []string{"x", "x"}},
		{"overlap", []string{"f", "x"}, []string{"x", "y"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewContext(c.dependent, c.independent, Grevlex); err == nil {
				t.Fatalf("NewContext(%v, %v) = nil error, want BadContextError", c.dependent, c.independent)
			}
		})
	}
}

func TestGtOrdersDerivatives(t *testing.T) {
	ctx, err := NewContext([]string{"f", "g"}, []string{"x", "y", "z"}, Grevlex)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	fx := symbolic.NewAtom("f").WithDiff("x")
	f0 := symbolic.NewAtom("f")
	if !ctx.Gt(ctx.ComparisonVector(fx), ctx.ComparisonVector(f0)) {
		t.Errorf("expected diff(f,x) to rank above f")
	}

	gg := symbolic.NewAtom("g")
	if !ctx.Gt(ctx.ComparisonVector(f0), ctx.ComparisonVector(gg)) {
		t.Errorf("expected f to rank above g (function index dominates)")
	}

	// A vector never ranks above itself.
	v := ctx.ComparisonVector(f0)
	if ctx.Gt(v, v) {
		t.Errorf("Gt(v, v) = true, want false")
	}
	if ctx.Lt(v, v) {
		t.Errorf("Lt(v, v) = true, want false")
	}
}

// TestGtStrictTotalOrder: for any two distinct comparison vectors
// exactly one of Gt(a,b), Gt(b,a) holds, and Gt is transitive.
func TestGtStrictTotalOrder(t *testing.T) {
	ctx, err := NewContext([]string{"w"}, []string{"x", "y"}, Grevlex)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	atoms := []symbolic.Atom{
		symbolic.NewAtom("w"),
		symbolic.NewAtom("w").WithDiff("x"),
		symbolic.NewAtom("w").WithDiff("y"),
		symbolic.NewAtom("w").WithDiff("x", "x"),
		symbolic.NewAtom("w").WithDiff("x", "y"),
		symbolic.NewAtom("w").WithDiff("y", "y"),
	}
	cvs := make([][]int, len(atoms))
	for i, a := range atoms {
		cvs[i] = ctx.ComparisonVector(a)
	}

	for i := range cvs {
		for j := range cvs {
			if i == j {
				continue
			}
			ab, ba := ctx.Gt(cvs[i], cvs[j]), ctx.Gt(cvs[j], cvs[i])
			if ab == ba {
				t.Errorf("Gt(%v,%v)=%v and Gt(%v,%v)=%v, want exactly one true", cvs[i], cvs[j], ab, cvs[j], cvs[i], ba)
			}
		}
	}
	for i := range cvs {
		for j := range cvs {
			for k := range cvs {
				if ctx.Gt(cvs[i], cvs[j]) && ctx.Gt(cvs[j], cvs[k]) && !ctx.Gt(cvs[i], cvs[k]) {
					t.Errorf("Gt not transitive over %v, %v, %v", cvs[i], cvs[j], cvs[k])
				}
			}
		}
	}
}

func TestGtPanicsOnShapeMismatch(t *testing.T) {
	ctx, err := NewContext([]string{"f"}, []string{"x", "y"}, Lex)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on shape mismatch")
		}
	}()
	ctx.Gt([]int{1, 2}, []int{1, 2, 3})
}

func TestIsCtxFunc(t *testing.T) {
	ctx, err := NewContext([]string{"f", "g"}, []string{"x"}, Lex)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	if !ctx.IsCtxFunc("f") || !ctx.IsCtxFunc("g") {
		t.Errorf("expected f and g to be context functions")
	}
	if ctx.IsCtxFunc("x") || ctx.IsCtxFunc("h") {
		t.Errorf("did not expect x or h to be context functions")
	}
}

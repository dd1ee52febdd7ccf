package multiplier

import (
	"reflect"
	"testing"
)

// TestMultipliersSchwarzC1 reproduces Schwarz, Example C.1, p. 384: three
// variables x1,x2,x3 with x3 highest-rated, encoded as Vars=(2,1,0).
func TestMultipliersSchwarzC1(t *testing.T) {
	M := [][]int{{2, 2, 3}, {3, 0, 3}, {3, 1, 1}, {0, 1, 1}}
	vars := []int{2, 1, 0}

	cases := []struct {
		m        []int
		wantMult []int
		wantNon  []int
	}{
		{M[0], []int{2, 1, 0}, nil},
		{M[1], []int{2, 0}, []int{1}},
		{M[2], []int{1, 0}, []int{2}},
		{M[3], []int{1}, []int{0, 2}},
	}
	for _, c := range cases {
		mult, nonmult := Multipliers(c.m, M, vars)
		if !reflect.DeepEqual(mult, c.wantMult) {
			t.Errorf("Multipliers(%v) mult = %v, want %v", c.m, mult, c.wantMult)
		}
		if !reflect.DeepEqual(nonmult, c.wantNon) {
			t.Errorf("Multipliers(%v) nonmult = %v, want %v", c.m, nonmult, c.wantNon)
		}
	}
}

func TestMultipliersGerdtBlinkovTable1(t *testing.T) {
	U := [][]int{{0, 0, 5}, {1, 2, 2}, {2, 0, 2}, {1, 4, 0}, {2, 1, 0}, {5, 0, 0}}
	vars := []int{2, 1, 0}

	cases := []struct {
		m        []int
		wantMult []int
		wantNon  []int
	}{
		{U[0], []int{2, 1, 0}, nil},
		{U[1], []int{1, 0}, []int{2}},
		{U[2], []int{0}, []int{1, 2}},
		{U[3], []int{1, 0}, []int{2}},
		{U[4], []int{0}, []int{1, 2}},
		{U[5], []int{0}, []int{1, 2}},
	}
	for _, c := range cases {
		mult, nonmult := Multipliers(c.m, U, vars)
		if !reflect.DeepEqual(mult, c.wantMult) {
			t.Errorf("Multipliers(%v) mult = %v, want %v", c.m, mult, c.wantMult)
		}
		if !reflect.DeepEqual(nonmult, c.wantNon) {
			t.Errorf("Multipliers(%v) nonmult = %v, want %v", c.m, nonmult, c.wantNon)
		}
	}
}

// TestMultipliersDominantElementHasAllMultipliers: an element that
// dominates every other member of M componentwise has every variable as
// a multiplier, even when the first variable in the ordering never
// attains the set's overall maximum degree.
func TestMultipliersDominantElementHasAllMultipliers(t *testing.T) {
	M := [][]int{{1, 3, 0}, {0, 2, 0}}
	vars := []int{2, 1, 0}

	mult, nonmult := Multipliers(M[0], M, vars)
	if !reflect.DeepEqual(mult, []int{2, 1, 0}) {
		t.Errorf("Multipliers(%v) mult = %v, want all of %v", M[0], mult, vars)
	}
	if len(nonmult) != 0 {
		t.Errorf("Multipliers(%v) nonmult = %v, want none", M[0], nonmult)
	}
}

func TestMultipliersUnionIsFullVariableSet(t *testing.T) {
	M := [][]int{{2, 2, 3}, {3, 0, 3}, {3, 1, 1}, {0, 1, 1}}
	vars := []int{2, 1, 0}
	mult, nonmult := Multipliers(M[1], M, vars)
	seen := map[int]bool{}
	for _, v := range append(append([]int{}, mult...), nonmult...) {
		if seen[v] {
			t.Fatalf("variable %d appears in both multiplier and nonmultiplier sets", v)
		}
		seen[v] = true
	}
	for _, v := range vars {
		if !seen[v] {
			t.Fatalf("variable %d missing from multiplier ∪ nonmultiplier", v)
		}
	}
}

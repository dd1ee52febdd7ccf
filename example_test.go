package pylie_test

import (
	"fmt"

	"github.com/tapir442/pylie"
	"github.com/tapir442/pylie/symbolic"
)

func ExampleJanetBasis() {
	w := symbolic.NewFunc("w")
	system := []symbolic.Expr{symbolic.D(w, "x")}

	basis, err := pylie.JanetBasis(system, []string{"w"}, []string{"x", "y"})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range basis {
		fmt.Println(p.Lder())
	}
	// Output:
	// diff(w, x)
}

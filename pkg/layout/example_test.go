package layout_test

import (
	"fmt"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/layout"
)

func ExampleEngine_Compute() {
	objects := []board.Object{
		{ID: "A", Label: "Cats", Left: 0, Top: 0, Width: 100, Height: 100},
		{ID: "B", Label: "Cats", Left: 50, Top: 50, Width: 100, Height: 100},
		{ID: "C", Kind: board.KindCircle, Left: 500, Top: 500, Radius: 50},
	}

	eng := layout.New()
	positions, _ := eng.Compute(objects, "")

	a, b := positions["A"], positions["B"]
	fmt.Printf("A: %.0f,%.0f\n", a.Left, a.Top)
	fmt.Printf("B offset: %.0f,%.0f\n", b.Left-a.Left, b.Top-a.Top)
	// Output:
	// A: 100,160
	// B offset: 50,50
}

func ExampleEngine_Plan() {
	objects := []board.Object{
		{ID: "z", Label: "Zebra"},
		{ID: "u"},
		{ID: "a", Label: "Apple"},
	}

	plan, _ := layout.New().Plan(objects, "")
	for _, g := range plan.Groups {
		fmt.Println(g.Key.String())
	}
	// Output:
	// Apple
	// Zebra
	// Unclassified
}

package classify_test

import (
	"fmt"

	"github.com/corkboard-io/corkboard/pkg/classify"
)

func ExampleController() {
	c := classify.NewController()

	s := c.EnterGrouped("Cats")
	fmt.Println("grouped:", s.IsGrouped(), "filter:", s.ActiveFilter)

	s = c.ExitGrouped()
	fmt.Println("grouped:", s.IsGrouped(), "filter:", s.ActiveFilter)
	// Output:
	// grouped: true filter: Cats
	// grouped: false filter:
}

func ExamplePalette_ColorFor() {
	p := classify.NewPalette()

	fmt.Println(p.ColorFor("Cats"))
	fmt.Println(p.ColorFor("Dogs"))
	fmt.Println(p.ColorFor("Cats")) // unchanged on repeat
	// Output:
	// #FF6B6B
	// #4ECDC4
	// #FF6B6B
}

package fontscale_test

import (
	"fmt"

	"github.com/matzehuels/shapewordle/pkg/wordle/fontscale"
)

func ExampleSize() {
	// Font size grows with the square root of the weight.
	for _, w := range []float64{1, 0.25, 0} {
		fmt.Printf("weight %.2f -> %.0fpx\n", w, fontscale.Size(w, 100, 2))
	}
	// Output:
	// weight 1.00 -> 100px
	// weight 0.25 -> 51px
	// weight 0.00 -> 2px
}

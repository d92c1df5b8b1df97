// SPDX-License-Identifier: MIT

package label_test

import (
	"fmt"

	"github.com/katalvlaran/rasterops/grid"
	"github.com/katalvlaran/rasterops/label"
)

// ExampleDissimToAlphaCCs shows components merging as alpha grows.
func ExampleDissimToAlphaCCs() {
	g, _ := grid.FromRows([][]float64{{1, 2, 4, 8}}, grid.Uint8)
	for _, alpha := range []float64{0, 1, 2, 4} {
		out, _ := label.DissimToAlphaCCs(g, alpha)
		fmt.Println(alpha, out.Data())
	}
	// Output:
	// 0 [1 2 3 4]
	// 1 [1 1 2 3]
	// 2 [1 1 1 2]
	// 4 [1 1 1 1]
}

// ExampleFlatZonesSeeded grows a zone eastwards only: the mask's origin
// sits on its first cell.
func ExampleFlatZonesSeeded() {
	g, _ := grid.FromRows([][]float64{{4, 4, 4, 4, 4}}, grid.Uint8)
	seeds, _ := grid.FromRows([][]float64{{0, 0, 1, 0, 0}}, grid.Uint8)
	mask, _ := grid.FromRows([][]float64{{1, 1, 1}}, grid.Uint8)

	out, _ := label.FlatZonesSeeded(g, mask, seeds, 0, 0, 0)
	fmt.Println(out.Data())
	// Output: [0 0 1 1 1]
}

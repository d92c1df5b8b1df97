// SPDX-License-Identifier: MIT

package distance_test

import (
	"fmt"

	"github.com/katalvlaran/rasterops/distance"
	"github.com/katalvlaran/rasterops/grid"
)

// ExampleSquaredEuclidean measures every foreground pixel against the single
// background pixel in the corner.
func ExampleSquaredEuclidean() {
	g, _ := grid.FromRows([][]float64{
		{0, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
	}, grid.Uint8)

	out, _ := distance.SquaredEuclidean(g)
	cols := out.Cols()
	for y := 0; y < out.Rows(); y++ {
		fmt.Println(out.Data()[y*cols : (y+1)*cols])
	}
	// Output:
	// [0 1 4 9]
	// [1 2 5 10]
	// [4 5 8 13]
}

// ExampleInfluenceZones splits a strip between two seeds.
func ExampleInfluenceZones() {
	g, _ := grid.FromRows([][]float64{{0, 7, 0, 0, 0, 0, 3}}, grid.Uint8)
	out, _ := distance.InfluenceZones(g)
	fmt.Println(out.Data())
	// Output: [7 7 7 7 3 3 3]
}

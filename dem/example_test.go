// SPDX-License-Identifier: MIT

package dem_test

import (
	"fmt"

	"github.com/katalvlaran/rasterops/dem"
	"github.com/katalvlaran/rasterops/grid"
)

// ExampleFlow routes a small plane tilted towards the south-east corner and
// accumulates its drainage area.
func ExampleFlow() {
	g, _ := grid.FromRows([][]float64{
		{9, 8, 7},
		{8, 7, 6},
		{7, 6, 5},
	}, grid.Uint8)

	dir, _ := dem.FlowDirectionD8(g)
	area, _ := dem.Flow(dir, grid.Conn8)
	for y := 0; y < 3; y++ {
		fmt.Println(dir.Data()[y*3:(y+1)*3], area.Data()[y*3:(y+1)*3])
	}
	// Output:
	// [8 8 4] [1 1 1]
	// [8 8 4] [1 2 3]
	// [2 2 0] [1 3 9]
}

// ExampleStrahler orders a stream network where two sources meet.
func ExampleStrahler() {
	dir, _ := grid.FromRows([][]float64{
		{dem.SE, 0, dem.SW},
		{0, dem.S, 0},
		{0, dem.S, 0},
	}, grid.Uint8)

	order, _ := dem.Strahler(dir)
	fmt.Println(order.Data())
	// Output: [1 0 1 0 2 0 0 2 0]
}

// ExamplePitRemovalCarve drains a pit by lowering the ridge in front of it.
func ExamplePitRemovalCarve() {
	g, _ := grid.FromRows([][]float64{{0, 10, 9, 1, 20}}, grid.Uint8)
	labels, _ := grid.FromRows([][]float64{{1, 0, 0, 0, 0}}, grid.Uint8)

	out, _ := dem.PitRemovalCarve(labels, g, grid.Conn4, 255)
	fmt.Println(out.Data())
	// Output: [0 1 1 1 20]
}

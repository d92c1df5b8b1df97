// SPDX-License-Identifier: MIT

package dem

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rasterops/grid"
)

// codeOffsets maps a D8 code to its displacement; index 0 is unused.
var codeOffsets = [9]grid.Offset{
	{},
	{DX: -1}, {DX: 1}, {DY: -1}, {DY: 1},
	{DX: -1, DY: -1}, {DX: -1, DY: 1}, {DX: 1, DY: -1}, {DX: 1, DY: 1},
}

// Code returns the D8 code pointing along (dx, dy), or None.
func Code(dx, dy int) int {
	for c := 1; c <= 8; c++ {
		if codeOffsets[c].DX == dx && codeOffsets[c].DY == dy {
			return c
		}
	}
	return None
}

// Offset returns the displacement of a D8 code. ok is false for None and
// for values outside 1..8.
func Offset(code int) (dx, dy int, ok bool) {
	if code < 1 || code > 8 {
		return 0, 0, false
	}
	o := codeOffsets[code]
	return o.DX, o.DY, true
}

// stepLength is the horizontal length of a step in cell units.
func stepLength(o grid.Offset) float64 {
	if o.DX != 0 && o.DY != 0 {
		return math.Sqrt2
	}
	return 1
}

// receivers decodes a D8 field into flat downstream indices: -1 for None
// or for a step leaving the grid.
// Returns ErrDirectionCode for values that are not codes allowed by conn.
func receivers(dir *grid.Grid, conn grid.Connectivity) ([]int, error) {
	cols, rows := dir.Cols(), dir.Rows()
	maxCode := 8
	if conn == grid.Conn4 {
		maxCode = 4
	}
	out := make([]int, dir.Len())
	for i, v := range dir.Data() {
		c := int(v)
		if float64(c) != v || c < 0 || c > maxCode {
			x, y, _ := dir.Coordinate(i)
			return nil, fmt.Errorf("%w: %v at (%d,%d)", ErrDirectionCode, v, x, y)
		}
		out[i] = -1
		if c == None {
			continue
		}
		o := codeOffsets[c]
		x, y := i%cols+o.DX, i/cols+o.DY
		if x >= 0 && x < cols && y >= 0 && y < rows {
			out[i] = y*cols + x
		}
	}
	return out, nil
}

// topoOrder returns the pixels in upstream-to-downstream order (Kahn's
// algorithm over the receiver graph, ties by index).
// Returns ErrCyclicFlow if some pixels lie on a cycle.
func topoOrder(recv []int) ([]int, error) {
	indeg := make([]int, len(recv))
	for _, r := range recv {
		if r >= 0 {
			indeg[r]++
		}
	}
	order := make([]int, 0, len(recv))
	for i, d := range indeg {
		if d == 0 {
			order = append(order, i)
		}
	}
	for qi := 0; qi < len(order); qi++ {
		if r := recv[order[qi]]; r >= 0 {
			indeg[r]--
			if indeg[r] == 0 {
				order = append(order, r)
			}
		}
	}
	if len(order) != len(recv) {
		return nil, fmt.Errorf("%w: %d pixels unresolved", ErrCyclicFlow, len(recv)-len(order))
	}
	return order, nil
}

// validElevation reports whether pixel i of the DEM is usable.
func validElevation(g *grid.Grid, i int) bool {
	v := g.Data()[i]
	return !g.IsNoData(0, v) && !math.IsNaN(v)
}

// SPDX-License-Identifier: MIT

package label

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rasterops/grid"
)

// Components labels the connected regions of foreground cells (non-zero,
// not no-data) under the configured connectivity. Background cells get 0.
// Output type: Uint32.
//
// Time:   O(cells·d), d = number of neighbours.
// Memory: O(cells).
func Components(g *grid.Grid, opts ...Option) (*grid.Grid, error) {
	if err := grid.ValidateSingleBand(g); err != nil {
		return nil, fmt.Errorf("Components: %w", err)
	}
	cfg := buildOptions(opts)
	if err := grid.ValidateConnectivity(cfg.Conn); err != nil {
		return nil, fmt.Errorf("Components: %w", err)
	}
	v := g.Data()
	land := func(i int) bool { return v[i] != 0 }
	labels := grow(g, grid.Neighbors3(cfg.Conn, g.Planes()), land,
		func(st region, _, q int) (region, bool) { return st, land(q) },
	)
	return labelGrid(g, labels)
}

// Sizes returns the number of cells per label of a label grid; index 0
// counts the background. Labels are sequential, so none may exceed the
// cell count.
//
// Returns grid.ErrDataType for negative or fractional labels and
// grid.ErrOutOfRange for labels above the cell count.
func Sizes(labels *grid.Grid) ([]int, error) {
	if err := grid.ValidateSingleBand(labels); err != nil {
		return nil, fmt.Errorf("Sizes: %w", err)
	}
	data := labels.Data()
	top := 0
	for _, l := range data {
		if l < 0 || l != math.Trunc(l) {
			return nil, fmt.Errorf("Sizes: %w: label %v", grid.ErrDataType, l)
		}
		if l > float64(len(data)) {
			return nil, fmt.Errorf("Sizes: %w: label %v exceeds %d cells", grid.ErrOutOfRange, l, len(data))
		}
		top = max(top, int(l))
	}
	sizes := make([]int, top+1)
	for _, l := range data {
		sizes[int(l)]++
	}
	return sizes, nil
}

// Pixels gives every foreground cell (non-zero, not no-data) its own label,
// 1, 2, … in scan order. Output type: Uint32.
func Pixels(g *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidateSingleBand(g); err != nil {
		return nil, fmt.Errorf("Pixels: %w", err)
	}
	v := g.Data()
	labels := make([]float64, len(v))
	next := 1.0
	for i, x := range v {
		if x != 0 && valid(g, i) {
			labels[i] = next
			next++
		}
	}
	return labelGrid(g, labels)
}

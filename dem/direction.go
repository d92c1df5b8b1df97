// SPDX-License-Identifier: MIT

package dem

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rasterops/grid"
)

// FlowDirectionD8 assigns every pixel the D8 code of its steepest downslope
// neighbour, drop divided by step length (1 or √2). Neighbours are tried in
// the order NW, N, NE, W, E, SW, S, SE and the first strict maximum wins.
// Pixels without a lower neighbour, and no-data pixels, get None.
// Output type: Uint8.
func FlowDirectionD8(dem *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(dem); err != nil {
		return nil, fmt.Errorf("FlowDirectionD8: %w", err)
	}
	out, err := grid.Like(dem, grid.Uint8)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	for i := range dst {
		if c, _ := steepest(dem, i); c != None {
			dst[i] = float64(c)
		}
	}
	return out, nil
}

// steepest returns the D8 code and gradient (drop per cell unit) of the
// steepest descent from pixel i.
func steepest(dem *grid.Grid, i int) (code int, grad float64) {
	if !validElevation(dem, i) {
		return None, 0
	}
	cols := dem.Cols()
	z := dem.Data()
	x, y := i%cols, i/cols
	for _, o := range grid.Neighbors(grid.Conn8) {
		nx, ny := x+o.DX, y+o.DY
		if !dem.InBounds(nx, ny) {
			continue
		}
		j := ny*cols + nx
		if !validElevation(dem, j) {
			continue
		}
		if g := (z[i] - z[j]) / stepLength(o); g > grad {
			code, grad = Code(o.DX, o.DY), g
		}
	}
	return code, grad
}

// dinfFacet is one of the eight triangular facets around a pixel: e1 is the
// cardinal neighbour, e2 the diagonal one, and the facet angle is
// af·r + ac·π/2 for the in-facet angle r ∈ [0, π/4].
type dinfFacet struct {
	e1, e2 grid.Offset
	ac, af float64
}

var dinfFacets = [8]dinfFacet{
	{grid.Offset{DX: 1}, grid.Offset{DX: 1, DY: -1}, 0, 1},
	{grid.Offset{DY: -1}, grid.Offset{DX: 1, DY: -1}, 1, -1},
	{grid.Offset{DY: -1}, grid.Offset{DX: -1, DY: -1}, 1, 1},
	{grid.Offset{DX: -1}, grid.Offset{DX: -1, DY: -1}, 2, -1},
	{grid.Offset{DX: -1}, grid.Offset{DX: -1, DY: 1}, 2, 1},
	{grid.Offset{DY: 1}, grid.Offset{DX: -1, DY: 1}, 3, -1},
	{grid.Offset{DY: 1}, grid.Offset{DX: 1, DY: 1}, 3, 1},
	{grid.Offset{DX: 1}, grid.Offset{DX: 1, DY: 1}, 4, -1},
}

// dinf returns the Tarboton flow angle of pixel i (counter-clockwise from
// east) and its slope in cell units; angle DInfNone when no facet descends.
// Facets with a neighbour off the grid or on no-data are skipped; the first
// strict maximum slope wins.
func dinf(dem *grid.Grid, i int) (angle, slope float64) {
	angle = DInfNone
	if !validElevation(dem, i) {
		return angle, 0
	}
	cols := dem.Cols()
	z := dem.Data()
	x, y := i%cols, i/cols
	at := func(o grid.Offset) (float64, bool) {
		nx, ny := x+o.DX, y+o.DY
		if !dem.InBounds(nx, ny) || !validElevation(dem, ny*cols+nx) {
			return 0, false
		}
		return z[ny*cols+nx], true
	}
	for _, f := range dinfFacets {
		z1, ok1 := at(f.e1)
		z2, ok2 := at(f.e2)
		if !ok1 || !ok2 {
			continue
		}
		s1 := z[i] - z1
		s2 := z1 - z2
		r := math.Atan2(s2, s1)
		s := math.Hypot(s1, s2)
		switch {
		case r < 0:
			r, s = 0, s1
		case r > math.Pi/4:
			r, s = math.Pi/4, (z[i]-z2)/math.Sqrt2
		}
		if s > slope {
			slope = s
			angle = f.af*r + f.ac*math.Pi/2
		}
	}
	if angle >= 2*math.Pi {
		angle -= 2 * math.Pi
	}
	return angle, slope
}

// FlowDirectionDInf computes Tarboton's D-infinity flow angle: radians in
// [0, 2π) counter-clockwise from east, DInfNone (-1) for pits, flats and
// no-data. Output type: Float32.
func FlowDirectionDInf(dem *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(dem); err != nil {
		return nil, fmt.Errorf("FlowDirectionDInf: %w", err)
	}
	out, err := grid.Like(dem, grid.Float32)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	for i := range dst {
		a, _ := dinf(dem, i)
		a = grid.Float32.Coerce(a)
		if a >= 2*math.Pi {
			a = 0
		}
		dst[i] = a
	}
	return out, nil
}

// SPDX-License-Identifier: MIT

package dem

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rasterops/grid"
)

// SlopeD8 returns the drop per unit length along the D8 steepest-descent
// direction (0 where there is none), lengths in cell-size units.
// Output type: Float32, always ≥ 0.
func SlopeD8(dem *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(dem); err != nil {
		return nil, fmt.Errorf("SlopeD8: %w", err)
	}
	return slopeField(dem, func(i int) float64 {
		_, g := steepest(dem, i)
		return g
	})
}

// SlopeDInf returns the magnitude of the steepest D-infinity facet slope
// (0 for pits and flats). Output type: Float32, always ≥ 0.
func SlopeDInf(dem *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(dem); err != nil {
		return nil, fmt.Errorf("SlopeDInf: %w", err)
	}
	return slopeField(dem, func(i int) float64 {
		_, s := dinf(dem, i)
		return s
	})
}

func slopeField(dem *grid.Grid, grad func(i int) float64) (*grid.Grid, error) {
	out, err := grid.Like(dem, grid.Float32)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	cs := dem.CellSize()
	for i := range dst {
		dst[i] = grid.Float32.Coerce(math.Max(grad(i), 0) / cs)
	}
	return out, nil
}

// Slope computes the terrain slope from the Sobel gradient pair,
// normalised by 8 and by the horizontal spacing:
//
//	dz/dx = Sobel_x · zscale / (cellSize · scale)
//	v     = sqrt((dz/dx)² + (dz/dy)²)
//
// and reports 100·v when percent is set, atan(v) in degrees ([0, 90])
// otherwise. Taps off the grid mirror back inside and no-data taps take
// the centre value; no-data pixels keep their sentinel.
// Output type: Float32 (Float64 for Float64 input).
//
// Returns ErrScale when scale or zscale is not positive.
func Slope(dem *grid.Grid, scale, zscale float64, percent bool) (*grid.Grid, error) {
	if !(scale > 0) || !(zscale > 0) {
		return nil, fmt.Errorf("Slope: %w: scale=%v zscale=%v", ErrScale, scale, zscale)
	}
	gx, err := grid.Convolve3x3(dem, grid.SobelX, true)
	if err != nil {
		return nil, fmt.Errorf("Slope: %w", err)
	}
	gy, err := grid.Convolve3x3(dem, grid.SobelY, true)
	if err != nil {
		return nil, fmt.Errorf("Slope: %w", err)
	}
	k := zscale / (dem.CellSize() * scale)
	dt := gx.DataType()
	xs, ys := gx.Data(), gy.Data()
	src := dem.Data()
	for i := range xs {
		if dem.IsNoData(0, src[i]) {
			continue
		}
		v := math.Hypot(xs[i]*k, ys[i]*k)
		if percent {
			v *= 100
		} else {
			v = math.Min(math.Atan(v)*180/math.Pi, 90)
		}
		xs[i] = dt.Coerce(v)
	}
	return gx, nil
}

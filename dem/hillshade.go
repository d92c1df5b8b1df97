// SPDX-License-Identifier: MIT

package dem

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rasterops/grid"
)

// HillShade computes a cast-shadow mask: 1 where the pixel is in the shadow
// of terrain between it and the sun, 0 where it is lit.
//
// zenith and azimuth hold the sun position in degrees, either per pixel
// (same shape as dem) or as a single 1×1 value for the whole grid; both
// must share one cell type. Azimuth is measured clockwise from north (the
// row-0 side) and gives the direction the light travels, so the sun lies
// at azimuth+180°. A pixel is shadowed when some pixel along the ray toward
// the sun rises above the line of sight climbing at 90°−zenith; a zenith of
// 90° or more puts the sun below the horizon. Pixels with no higher
// neighbour are never shadowed, nor are no-data pixels.
// Output type: Uint8.
func HillShade(dem, zenith, azimuth *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(dem, zenith, azimuth); err != nil {
		return nil, fmt.Errorf("HillShade: %w", err)
	}
	if zenith.DataType() != azimuth.DataType() {
		return nil, fmt.Errorf("HillShade: %w: zenith %v, azimuth %v",
			grid.ErrDataType, zenith.DataType(), azimuth.DataType())
	}
	for _, s := range []*grid.Grid{zenith, azimuth} {
		if s.Len() == 1 {
			continue
		}
		if err := grid.ValidateSameShape(dem, s); err != nil {
			return nil, fmt.Errorf("HillShade: %w", err)
		}
	}
	sample := func(g *grid.Grid, i int) float64 {
		if g.Len() == 1 {
			return g.Data()[0]
		}
		return g.Data()[i]
	}

	cols, rows := dem.Cols(), dem.Rows()
	z := dem.Data()
	top := math.Inf(-1)
	for i, v := range z {
		if validElevation(dem, i) {
			top = math.Max(top, v)
		}
	}
	cs := dem.CellSize()

	out, err := grid.Like(dem, grid.Uint8)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	for i := range dst {
		if !validElevation(dem, i) || !hasHigher(dem, i) {
			continue
		}
		zen := sample(zenith, i)
		if zen >= 90 {
			dst[i] = 1
			continue
		}
		rise := math.Tan((90-zen)*math.Pi/180) * cs
		sun := (sample(azimuth, i) + 180) * math.Pi / 180
		// unit step toward the sun; north is -y
		dx, dy := math.Sin(sun), -math.Cos(sun)
		if m := math.Max(math.Abs(dx), math.Abs(dy)); m > 0 {
			dx, dy = dx/m, dy/m
		}
		step := math.Hypot(dx, dy)
		x0, y0 := float64(i%cols), float64(i/cols)
		for t := 1; ; t++ {
			sight := z[i] + float64(t)*step*rise
			if sight >= top {
				break
			}
			x := int(math.Round(x0 + float64(t)*dx))
			y := int(math.Round(y0 + float64(t)*dy))
			if x < 0 || x >= cols || y < 0 || y >= rows {
				break
			}
			j := y*cols + x
			if validElevation(dem, j) && z[j] > sight {
				dst[i] = 1
				break
			}
		}
	}
	return out, nil
}

// hasHigher reports whether any valid 8-neighbour of i is higher.
func hasHigher(dem *grid.Grid, i int) bool {
	cols := dem.Cols()
	z := dem.Data()
	x, y := i%cols, i/cols
	for _, o := range grid.Neighbors(grid.Conn8) {
		nx, ny := x+o.DX, y+o.DY
		if dem.InBounds(nx, ny) && validElevation(dem, ny*cols+nx) && z[ny*cols+nx] > z[i] {
			return true
		}
	}
	return false
}

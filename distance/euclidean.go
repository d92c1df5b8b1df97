// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"

	"github.com/katalvlaran/rasterops/grid"
)

// SquaredEuclidean returns, for every non-zero pixel of g, the squared
// Euclidean distance to the nearest zero pixel; zero pixels get 0.
//
// The transform is exact: a column pass followed by a row pass of 1-D lower
// envelopes, each pass parallel over independent lines. Values saturate at
// rows·cols, which is also what every pixel gets when g has no zero pixel.
// Output type: Uint32.
func SquaredEuclidean(g *grid.Grid, opts ...Option) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(g); err != nil {
		return nil, fmt.Errorf("SquaredEuclidean: %w", err)
	}
	cfg := buildOptions(opts)
	cols, rows := g.Cols(), g.Rows()
	src := g.Data()
	out, err := grid.Like(g, grid.Uint32)
	if err != nil {
		return nil, err
	}
	limit := int64(rows) * int64(cols)

	// column pass: vertical squared distance to the nearest zero, -1 if none
	vert := make([]int64, cols*rows)
	err = grid.Parallel(cols, cfg.Workers, func(lo, hi int) error {
		f := make([]int64, rows)
		best := make([]int, rows)
		env := newEnvelope(rows)
		for x := lo; x < hi; x++ {
			for y := 0; y < rows; y++ {
				f[y] = -1
				if src[y*cols+x] == 0 {
					f[y] = 0
				}
			}
			env.solve(f, best)
			for y := 0; y < rows; y++ {
				if best[y] < 0 {
					vert[y*cols+x] = -1
					continue
				}
				d := int64(y - best[y])
				vert[y*cols+x] = d * d
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cfg.pass(PassColumns)

	dst := out.Data()
	err = grid.Parallel(rows, cfg.Workers, func(lo, hi int) error {
		best := make([]int, cols)
		env := newEnvelope(cols)
		for y := lo; y < hi; y++ {
			f := vert[y*cols : (y+1)*cols]
			env.solve(f, best)
			for x := 0; x < cols; x++ {
				d := limit
				if c := best[x]; c >= 0 {
					dx := int64(x - c)
					d = min(dx*dx+f[c], limit)
				}
				dst[y*cols+x] = float64(d)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cfg.pass(PassRows)

	return out, nil
}

// Distance4 returns the city-block (4-connected) distance of every non-zero
// pixel to the nearest zero pixel, computed with one forward and one backward
// raster scan. Zero pixels get 0; without any zero pixel every pixel gets
// rows·cols. Output type: Uint32.
func Distance4(g *grid.Grid, opts ...Option) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(g); err != nil {
		return nil, fmt.Errorf("Distance4: %w", err)
	}
	cfg := buildOptions(opts)
	cols, rows := g.Cols(), g.Rows()
	src := g.Data()
	limit := rows * cols
	d := make([]int, len(src))

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := y*cols + x
			if src[i] == 0 {
				continue
			}
			v := limit
			if y > 0 {
				v = min(v, d[i-cols]+1)
			}
			if x > 0 {
				v = min(v, d[i-1]+1)
			}
			d[i] = v
		}
	}
	cfg.pass(PassForward)

	for y := rows - 1; y >= 0; y-- {
		for x := cols - 1; x >= 0; x-- {
			i := y*cols + x
			v := d[i]
			if y < rows-1 {
				v = min(v, d[i+cols]+1)
			}
			if x < cols-1 {
				v = min(v, d[i+1]+1)
			}
			d[i] = min(v, limit)
		}
	}
	cfg.pass(PassBackward)

	out, err := grid.Like(g, grid.Uint32)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	for i, v := range d {
		dst[i] = float64(v)
	}
	return out, nil
}

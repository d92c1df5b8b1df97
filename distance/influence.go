// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"

	"github.com/katalvlaran/rasterops/grid"
)

// InfluenceZones labels every pixel with the value of its Euclidean-nearest
// seed (non-zero pixel of seeds). The output holds exactly the seed labels
// and has the seeds' type.
//
// A separable feature transform keeps, per pixel, the position of the
// nearest seed. Among equidistant seeds the smaller row wins inside a column
// and then the smaller column wins inside a row.
// Returns ErrNoSeeds when seeds has no non-zero pixel.
func InfluenceZones(seeds *grid.Grid, opts ...Option) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(seeds); err != nil {
		return nil, fmt.Errorf("InfluenceZones: %w", err)
	}
	cfg := buildOptions(opts)
	cols, rows := seeds.Cols(), seeds.Rows()
	src := seeds.Data()

	seeded := false
	for _, v := range src {
		if v != 0 {
			seeded = true
			break
		}
	}
	if !seeded {
		return nil, fmt.Errorf("InfluenceZones: %w", ErrNoSeeds)
	}

	// per pixel: squared vertical distance to the column's nearest seed (-1
	// if the column has none) and that seed's row
	vert := make([]int64, cols*rows)
	featRow := make([]int, cols*rows)
	err := grid.Parallel(cols, cfg.Workers, func(lo, hi int) error {
		f := make([]int64, rows)
		best := make([]int, rows)
		env := newEnvelope(rows)
		for x := lo; x < hi; x++ {
			for y := 0; y < rows; y++ {
				f[y] = -1
				if src[y*cols+x] != 0 {
					f[y] = 0
				}
			}
			env.solve(f, best)
			for y := 0; y < rows; y++ {
				i := y*cols + x
				featRow[i] = best[y]
				if best[y] < 0 {
					vert[i] = -1
					continue
				}
				d := int64(y - best[y])
				vert[i] = d * d
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cfg.pass(PassColumns)

	out, err := grid.Like(seeds, seeds.DataType())
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	err = grid.Parallel(rows, cfg.Workers, func(lo, hi int) error {
		best := make([]int, cols)
		env := newEnvelope(cols)
		for y := lo; y < hi; y++ {
			env.solve(vert[y*cols:(y+1)*cols], best)
			for x := 0; x < cols; x++ {
				c := best[x]
				r := featRow[y*cols+c]
				dst[y*cols+x] = src[r*cols+c]
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

// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"

	"github.com/katalvlaran/rasterops/grid"
)

// Chamfer weight-set ids.
const (
	Chessboard = 11   // (1, 1): orthogonal and diagonal steps cost 1
	CityBlock  = 12   // (1, 2)
	Chamfer34  = 34   // (3, 4)
	Chamfer571 = 5711 // (5, 7, 11) on a 5×5 kernel with knight moves
)

type step struct {
	dx, dy int
	w      float64
}

// forwardMask returns the half-kernel of weight set id whose taps precede
// the centre in raster order. The backward half is its point reflection.
func forwardMask(id int) ([]step, error) {
	var a, b, c float64
	switch id {
	case Chessboard:
		a, b = 1, 1
	case CityBlock:
		a, b = 1, 2
	case Chamfer34:
		a, b = 3, 4
	case Chamfer571:
		a, b, c = 5, 7, 11
	default:
		return nil, fmt.Errorf("%w: %d", ErrWeightSet, id)
	}
	m := []step{
		{-1, -1, b}, {0, -1, a}, {1, -1, b},
		{-1, 0, a},
	}
	if c > 0 {
		m = append(m,
			step{-1, -2, c}, step{1, -2, c},
			step{-2, -1, c}, step{2, -1, c},
		)
	}
	return m, nil
}

// Chamfer propagates grey levels with the integer kernel of weightSet:
//
//	out(p) = min(in(p), min over kernel taps q of out(q) + w(p, q))
//
// with one forward and one backward raster scan. Pixels at 0 act as seeds,
// so a binary grid with foreground at the type maximum yields the classic
// chamfer distance. Sums saturate in the input type, which is also the
// output type.
// Returns ErrWeightSet for an unknown id.
func Chamfer(g *grid.Grid, weightSet int, opts ...Option) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(g); err != nil {
		return nil, fmt.Errorf("Chamfer: %w", err)
	}
	fwd, err := forwardMask(weightSet)
	if err != nil {
		return nil, fmt.Errorf("Chamfer: %w", err)
	}
	cfg := buildOptions(opts)
	out, err := grid.Like(g, g.DataType(), grid.WithNoData(g.NoData(0)...))
	if err != nil {
		return nil, err
	}
	cols, rows := g.Cols(), g.Rows()
	dt := g.DataType()
	d := out.Data()
	copy(d, g.Data())

	scan := func(y, x, sign int) {
		i := y*cols + x
		if g.IsNoData(0, d[i]) {
			return
		}
		v := d[i]
		for _, s := range fwd {
			qx, qy := x+sign*s.dx, y+sign*s.dy
			if qx < 0 || qx >= cols || qy < 0 || qy >= rows {
				continue
			}
			q := d[qy*cols+qx]
			if g.IsNoData(0, q) {
				continue
			}
			v = min(v, dt.Coerce(q+s.w))
		}
		d[i] = v
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			scan(y, x, 1)
		}
	}
	cfg.pass(PassForward)
	for y := rows - 1; y >= 0; y-- {
		for x := cols - 1; x >= 0; x-- {
			scan(y, x, -1)
		}
	}
	cfg.pass(PassBackward)

	return out, nil
}

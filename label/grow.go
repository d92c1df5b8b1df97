// SPDX-License-Identifier: MIT

package label

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rasterops/grid"
)

// region accumulates the statistics a growing region is constrained by.
// Variance is tracked with Welford's update.
type region struct {
	n        int
	mean, m2 float64
	lo, hi   float64
}

func newRegion(v float64) region {
	return region{n: 1, mean: v, lo: v, hi: v}
}

// with returns the region after adding v.
func (r region) with(v float64) region {
	r.n++
	d := v - r.mean
	r.mean += d / float64(r.n)
	r.m2 += d * (v - r.mean)
	r.lo = math.Min(r.lo, v)
	r.hi = math.Max(r.hi, v)
	return r
}

// variance is the population variance of the region.
func (r region) variance() float64 { return r.m2 / float64(r.n) }

// grow labels g by breadth-first region growing from every start cell, in
// scan order, through the neighbourhood offsets. accept decides whether
// cell q joins the region currently holding st after being reached from p;
// on acceptance it returns the updated statistics.
func grow(g *grid.Grid, offs []grid.Offset, start func(i int) bool,
	accept func(st region, p, q int) (region, bool)) []float64 {
	v := g.Data()
	out := make([]float64, len(v))
	next := 1.0
	var queue []int
	for s := range v {
		if out[s] != 0 || !valid(g, s) || !start(s) {
			continue
		}
		st := newRegion(v[s])
		out[s] = next
		queue = append(queue[:0], s)
		for qi := 0; qi < len(queue); qi++ {
			p := queue[qi]
			neighbours(g, offs, p, func(q int) {
				if out[q] != 0 || !valid(g, q) {
					return
				}
				if nst, ok := accept(st, p, q); ok {
					st = nst
					out[q] = next
					queue = append(queue, q)
				}
			})
		}
		next++
	}
	return out
}

// FlatZonesSeeded grows flat zones from seeds. Every valid cell with a
// non-zero seed value starts a zone (scan order, unless an earlier zone
// already holds it) that spreads through the offsets of the neighbourhood
// mask ngb, read around the origin (ox, oy, oz), to cells equal to the
// seed cell. The neighbourhood is used as given: an asymmetric mask grows
// zones in its own directions only, so moving the origin changes which
// seed claims which cells. Unreached cells get 0. Output type: Uint32.
//
// Returns grid.ErrNeighborhood for an empty mask or an origin outside it.
func FlatZonesSeeded(g, ngb, seeds *grid.Grid, ox, oy, oz int) (*grid.Grid, error) {
	if err := grid.ValidateSingleBand(g, seeds); err != nil {
		return nil, fmt.Errorf("FlatZonesSeeded: %w", err)
	}
	if err := grid.ValidateSameShape(g, seeds); err != nil {
		return nil, fmt.Errorf("FlatZonesSeeded: %w", err)
	}
	nb, err := grid.NewNeighborhood(ngb, ox, oy, oz)
	if err != nil {
		return nil, fmt.Errorf("FlatZonesSeeded: %w", err)
	}
	v, sv := g.Data(), seeds.Data()
	labels := grow(g, nb.Offsets(),
		func(i int) bool { return sv[i] != 0 },
		func(st region, _, q int) (region, bool) { return st, v[q] == st.lo },
	)
	return labelGrid(g, labels)
}

// ConstrainedCCsVariance partitions g into regions grown in scan order
// through the neighbourhood mask ngb (origin (ox, oy, oz)). A cell q
// reached from region cell p joins the region when
//
//	|v(p) − v(q)|        ≤ localRange
//	max − min (with q)   ≤ globalRange
//	variance (with q)    ≤ varianceMax
//
// where variance is the population variance of the region values. With
// all bounds 0 the regions are the flat zones of the neighbourhood. No-data
// cells get 0, every other cell a label. Output type: Uint32.
//
// Returns ErrConstraint for negative or NaN bounds and grid.ErrNeighborhood
// for an unusable mask.
func ConstrainedCCsVariance(g *grid.Grid, localRange, globalRange float64, ox, oy, oz int, varianceMax float64, ngb *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidateSingleBand(g); err != nil {
		return nil, fmt.Errorf("ConstrainedCCsVariance: %w", err)
	}
	if !(localRange >= 0) || !(globalRange >= 0) || !(varianceMax >= 0) {
		return nil, fmt.Errorf("ConstrainedCCsVariance: %w: local %v, global %v, variance %v",
			ErrConstraint, localRange, globalRange, varianceMax)
	}
	nb, err := grid.NewNeighborhood(ngb, ox, oy, oz)
	if err != nil {
		return nil, fmt.Errorf("ConstrainedCCsVariance: %w", err)
	}
	v := g.Data()
	labels := grow(g, nb.Offsets(),
		func(int) bool { return true },
		func(st region, p, q int) (region, bool) {
			if math.Abs(v[p]-v[q]) > localRange {
				return st, false
			}
			nst := st.with(v[q])
			if nst.hi-nst.lo > globalRange || nst.variance() > varianceMax {
				return st, false
			}
			return nst, true
		},
	)
	return labelGrid(g, labels)
}

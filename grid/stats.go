// SPDX-License-Identifier: MIT

package grid

import (
	"math"
	"sort"
)

// Stats summarises one band, no-data excluded.
// With Count == 0 the other fields are zero.
type Stats struct {
	Min, Max, Mean float64
	Count          int
}

// Stats computes min, max and mean of band b in a single pass.
// An out-of-range band yields the zero Stats.
func (g *Grid) Stats(b int) Stats {
	if b < 0 || b >= len(g.bands) {
		return Stats{}
	}
	st := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0
	for _, v := range g.bands[b] {
		if g.IsNoData(b, v) || math.IsNaN(v) {
			continue
		}
		st.Count++
		sum += v
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	if st.Count == 0 {
		return Stats{}
	}
	st.Mean = sum / float64(st.Count)
	return st
}

// Distinct returns the sorted distinct values of band b, no-data excluded.
func (g *Grid) Distinct(b int) []float64 {
	if b < 0 || b >= len(g.bands) {
		return nil
	}
	seen := make(map[float64]struct{})
	for _, v := range g.bands[b] {
		if g.IsNoData(b, v) {
			continue
		}
		seen[v] = struct{}{}
	}
	out := make([]float64, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

// Equal reports whether a and b have the same shape, cell type, band count
// and bit-identical cell values.
func Equal(a, b *Grid) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.cols != b.cols || a.rows != b.rows || a.planes != b.planes ||
		a.dtype != b.dtype || len(a.bands) != len(b.bands) {
		return false
	}
	for k := range a.bands {
		x, y := a.bands[k], b.bands[k]
		for i := range x {
			if math.Float64bits(x[i]) != math.Float64bits(y[i]) {
				return false
			}
		}
	}
	return true
}

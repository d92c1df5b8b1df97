// SPDX-License-Identifier: MIT

package label

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rasterops/grid"
)

// DissimToAlphaCCs labels the alpha-connected components of band 0: two
// neighbouring cells belong to the same component when their values differ
// by at most alpha, and components are closed under that relation. With
// alpha = 0 the components are the flat zones.
//
// Labels are 1, 2, … in scan order of each component's first cell; no-data
// and NaN cells get 0. Raising alpha can only merge components, so the
// label count never grows with it. Output type: Uint32, same planes as g.
//
// Returns ErrAlpha for a negative or NaN alpha and grid.ErrConnectivity
// for an invalid WithConnectivity value.
func DissimToAlphaCCs(g *grid.Grid, alpha float64, opts ...Option) (*grid.Grid, error) {
	if err := grid.ValidateSingleBand(g); err != nil {
		return nil, fmt.Errorf("DissimToAlphaCCs: %w", err)
	}
	if !(alpha >= 0) {
		return nil, fmt.Errorf("DissimToAlphaCCs: %w: %v", ErrAlpha, alpha)
	}
	cfg := buildOptions(opts)
	if err := grid.ValidateConnectivity(cfg.Conn); err != nil {
		return nil, fmt.Errorf("DissimToAlphaCCs: %w", err)
	}

	offs := grid.ConnNeighborhood(cfg.Conn, g.Planes()).Offsets()
	v := g.Data()
	ds := newDisjointSet(len(v))
	keep := func(i int) bool { return valid(g, i) }
	for i := range v {
		if !keep(i) {
			continue
		}
		neighbours(g, offs, i, func(j int) {
			if j > i && keep(j) && math.Abs(v[i]-v[j]) <= alpha {
				ds.union(i, j)
			}
		})
	}
	return labelGrid(g, ds.labels(keep))
}

// FlatZones labels the flat zones of band 0: maximal connected sets of
// equal-valued cells. It is DissimToAlphaCCs with alpha 0.
func FlatZones(g *grid.Grid, opts ...Option) (*grid.Grid, error) {
	out, err := DissimToAlphaCCs(g, 0, opts...)
	if err != nil {
		return nil, fmt.Errorf("FlatZones: %w", err)
	}
	return out, nil
}

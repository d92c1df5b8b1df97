// SPDX-License-Identifier: MIT

package dem

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rasterops/grid"
	"github.com/katalvlaran/rasterops/internal/pq"
)

// hasLower reports whether pixel i has a valid neighbour strictly lower
// under conn.
func hasLower(dem *grid.Grid, i int, nbs []grid.Offset) bool {
	cols := dem.Cols()
	z := dem.Data()
	x, y := i%cols, i/cols
	for _, o := range nbs {
		nx, ny := x+o.DX, y+o.DY
		if !dem.InBounds(nx, ny) {
			continue
		}
		j := ny*cols + nx
		if validElevation(dem, j) && z[j] < z[i] {
			return true
		}
	}
	return false
}

// FloodDirection simulates immersion of the DEM: every pixel without a
// lower neighbour under conn is a source and gets None; the flood then
// rises from all sources at once, the water level at a pixel being the
// higher of its own elevation and the level it was reached at. Each other
// pixel receives the code pointing back to the neighbour that flooded it,
// so reversing the flood wave recovers the drainage direction. Pixels at
// the same level are flooded first-in first-out; no-data pixels get None.
// Output type: Uint8.
//
// Complexity: O(cells·log cells).
func FloodDirection(dem *grid.Grid, conn grid.Connectivity, opts ...Option) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(dem); err != nil {
		return nil, fmt.Errorf("FloodDirection: %w", err)
	}
	if err := grid.ValidateConnectivity(conn); err != nil {
		return nil, fmt.Errorf("FloodDirection: %w", err)
	}
	cfg := buildOptions(opts)
	cols := dem.Cols()
	z := dem.Data()
	nbs := grid.Neighbors(conn)

	out, err := grid.Like(dem, grid.Uint8)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	done := make([]bool, len(z))
	q := pq.New(len(z))
	for i := range z {
		if !validElevation(dem, i) {
			done[i] = true
			continue
		}
		if !hasLower(dem, i, nbs) {
			done[i] = true
			q.Push(i, z[i])
		}
	}
	cfg.stage(StageSeed)

	for {
		u, level, ok := q.Pop()
		if !ok {
			break
		}
		ux, uy := u%cols, u/cols
		for _, o := range nbs {
			vx, vy := ux+o.DX, uy+o.DY
			if !dem.InBounds(vx, vy) {
				continue
			}
			v := vy*cols + vx
			if done[v] {
				continue
			}
			done[v] = true
			dst[v] = float64(Code(-o.DX, -o.DY))
			q.Push(v, math.Max(level, z[v]))
		}
	}
	cfg.stage(StageFlood)

	return out, nil
}

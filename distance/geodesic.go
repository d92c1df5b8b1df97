// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/rasterops/grid"
	"github.com/katalvlaran/rasterops/internal/pq"
)

// ConstrainedNoData marks pixels outside the mask or unreachable from any
// marker in the output of EuclideanConstrained.
const ConstrainedNoData = -1

// EuclideanConstrained returns the length of the shortest 8-connected path
// (orthogonal step 1, diagonal step √2) from the nearest non-zero marker
// pixel, where every pixel on the path is non-zero in mask. Marker pixels
// get 0 wherever they are; pixels outside the mask or unreachable get
// ConstrainedNoData, which is declared as the output no-data.
// Output type: Float32.
//
// Complexity: O(cells·log cells), Dijkstra with lazy decrease-key.
func EuclideanConstrained(marker, mask *grid.Grid, opts ...Option) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(marker, mask); err != nil {
		return nil, fmt.Errorf("EuclideanConstrained: %w", err)
	}
	if err := grid.ValidateSameShape(marker, mask); err != nil {
		return nil, fmt.Errorf("EuclideanConstrained: %w", err)
	}
	cfg := buildOptions(opts)
	cols, rows := marker.Cols(), marker.Rows()
	mk, ms := marker.Data(), mask.Data()

	dist := make([]float64, len(mk))
	q := pq.New(len(mk))
	for i, v := range mk {
		dist[i] = math.Inf(1)
		if v != 0 {
			dist[i] = 0
			q.Push(i, 0)
		}
	}

	nbs := grid.Neighbors(grid.Conn8)
	for {
		u, du, ok := q.Pop()
		if !ok {
			break
		}
		if du > dist[u] {
			continue // stale
		}
		ux, uy := u%cols, u/cols
		for _, o := range nbs {
			vx, vy := ux+o.DX, uy+o.DY
			if vx < 0 || vx >= cols || vy < 0 || vy >= rows {
				continue
			}
			v := vy*cols + vx
			if ms[v] == 0 {
				continue
			}
			w := 1.0
			if o.DX != 0 && o.DY != 0 {
				w = math.Sqrt2
			}
			if nd := du + w; nd < dist[v] {
				dist[v] = nd
				q.Push(v, nd)
			}
		}
	}
	cfg.pass(PassFlood)

	out, err := grid.Like(marker, grid.Float32, grid.WithNoData(ConstrainedNoData))
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	for i, d := range dist {
		switch {
		case mk[i] != 0:
			dst[i] = 0
		case ms[i] == 0 || math.IsInf(d, 1):
			dst[i] = ConstrainedNoData
		default:
			dst[i] = grid.Float32.Coerce(d)
		}
	}
	return out, nil
}

// Geodesic returns the breadth-first step count from the nearest non-zero
// marker pixel, moving under conn through non-zero mask pixels only.
// Marker pixels get 0. Counts saturate at the maximum of the marker's type,
// which is also the value of pixels outside the mask or unreachable.
// Output type: the marker's type.
//
// Conn8 never yields a larger distance than Conn4 at any pixel, so its mean
// is never larger either.
func Geodesic(marker, mask *grid.Grid, conn grid.Connectivity, opts ...Option) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(marker, mask); err != nil {
		return nil, fmt.Errorf("Geodesic: %w", err)
	}
	if err := grid.ValidateSameShape(marker, mask); err != nil {
		return nil, fmt.Errorf("Geodesic: %w", err)
	}
	if err := grid.ValidateConnectivity(conn); err != nil {
		return nil, fmt.Errorf("Geodesic: %w", err)
	}
	cfg := buildOptions(opts)
	cols, rows := marker.Cols(), marker.Rows()
	mk, ms := marker.Data(), mask.Data()
	dt := marker.DataType()

	const unseen = -1
	steps := make([]int, len(mk))
	queue := make([]int, 0, len(mk))
	for i, v := range mk {
		steps[i] = unseen
		if v != 0 {
			steps[i] = 0
			queue = append(queue, i)
		}
	}
	nbs := grid.Neighbors(conn)
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		ux, uy := u%cols, u/cols
		for _, o := range nbs {
			vx, vy := ux+o.DX, uy+o.DY
			if vx < 0 || vx >= cols || vy < 0 || vy >= rows {
				continue
			}
			v := vy*cols + vx
			if ms[v] == 0 || steps[v] != unseen {
				continue
			}
			steps[v] = steps[u] + 1
			queue = append(queue, v)
		}
	}
	cfg.pass(PassFlood)

	out, err := grid.Like(marker, dt)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	top := dt.Max()
	for i, s := range steps {
		switch {
		case s == 0:
			dst[i] = 0
		case s == unseen:
			dst[i] = top
		default:
			dst[i] = dt.Coerce(float64(s))
		}
	}
	return out, nil
}

// SPDX-License-Identifier: MIT

package dem

import (
	"fmt"

	"github.com/katalvlaran/rasterops/grid"
)

// CatchmentBasinOutlet delineates the catchment of every labelled outlet:
// each pixel takes the label of the first labelled pixel met while
// following its D8 path downstream (itself included), or 0 when the path
// ends unlabelled. Output type: Uint32.
func CatchmentBasinOutlet(outlets, dir *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(outlets, dir); err != nil {
		return nil, fmt.Errorf("CatchmentBasinOutlet: %w", err)
	}
	if err := grid.ValidateSameShape(outlets, dir); err != nil {
		return nil, fmt.Errorf("CatchmentBasinOutlet: %w", err)
	}
	recv, err := receivers(dir, grid.Conn8)
	if err != nil {
		return nil, fmt.Errorf("CatchmentBasinOutlet: %w", err)
	}
	basins, err := propagate(outlets.Data(), recv)
	if err != nil {
		return nil, fmt.Errorf("CatchmentBasinOutlet: %w", err)
	}
	return labelGrid(dir, basins)
}

// CatchmentBasinConfluence splits a river network into sub-catchments.
// net marks outlets with 1 and other river pixels with any other non-zero
// value. Outlets and confluences (river pixels fed by at least two river
// pixels) become seeds numbered 1, 2, … in scan order; every pixel then
// takes the seed met first downstream, as in CatchmentBasinOutlet.
// Output type: Uint32.
func CatchmentBasinConfluence(net, dir *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(net, dir); err != nil {
		return nil, fmt.Errorf("CatchmentBasinConfluence: %w", err)
	}
	if err := grid.ValidateSameShape(net, dir); err != nil {
		return nil, fmt.Errorf("CatchmentBasinConfluence: %w", err)
	}
	recv, err := receivers(dir, grid.Conn8)
	if err != nil {
		return nil, fmt.Errorf("CatchmentBasinConfluence: %w", err)
	}
	nv := net.Data()
	donors := make([]int, len(recv))
	for i, r := range recv {
		if nv[i] != 0 && r >= 0 && nv[r] != 0 {
			donors[r]++
		}
	}
	seeds := make([]float64, len(recv))
	next := 1.0
	for i, v := range nv {
		if v == 1 || (v != 0 && donors[i] >= 2) {
			seeds[i] = next
			next++
		}
	}
	basins, err := propagate(seeds, recv)
	if err != nil {
		return nil, fmt.Errorf("CatchmentBasinConfluence: %w", err)
	}
	return labelGrid(dir, basins)
}

// propagate gives every pixel the first non-zero seed value on its
// downstream path. Each pixel is resolved once; paths are unwound on the
// way back.
func propagate(seeds []float64, recv []int) ([]float64, error) {
	const (
		pending = iota
		walking
		resolved
	)
	n := len(recv)
	state := make([]uint8, n)
	out := make([]float64, n)
	var path []int
	for i := 0; i < n; i++ {
		path = path[:0]
		p := i
		val := 0.0
		for p >= 0 {
			if state[p] == resolved {
				val = out[p]
				break
			}
			if state[p] == walking {
				return nil, ErrCyclicFlow
			}
			if seeds[p] != 0 {
				val = seeds[p]
				out[p], state[p] = val, resolved
				break
			}
			state[p] = walking
			path = append(path, p)
			p = recv[p]
		}
		for _, q := range path {
			out[q], state[q] = val, resolved
		}
	}
	return out, nil
}

func labelGrid(like *grid.Grid, labels []float64) (*grid.Grid, error) {
	out, err := grid.Like(like, grid.Uint32)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	for i, v := range labels {
		dst[i] = grid.Uint32.Coerce(v)
	}
	return out, nil
}

// SPDX-License-Identifier: MIT

package dem

import (
	"fmt"

	"github.com/katalvlaran/rasterops/grid"
)

// Strahler computes the Strahler stream order of a D8 river network. River
// pixels are those with a non-None code; the rest get 0. A river pixel
// without river donors has order 1; otherwise, with m the largest order
// among its river donors, it gets m+1 when at least two donors reach m and
// m when only one does. Output type: Uint8.
//
// Returns ErrDirectionCode for invalid codes and ErrCyclicFlow when the
// network loops.
func Strahler(dir *grid.Grid, opts ...Option) (*grid.Grid, error) {
	recv, err := decode("Strahler", dir, grid.Conn8)
	if err != nil {
		return nil, err
	}
	cfg := buildOptions(opts)
	codes := dir.Data()
	river := func(i int) bool { return codes[i] != None }

	n := len(recv)
	indeg := make([]int, n)
	for i, r := range recv {
		if river(i) && r >= 0 && river(r) {
			indeg[r]++
		}
	}
	var queue []int
	for i := 0; i < n; i++ {
		if river(i) && indeg[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, n)
	top := make([]int, n)  // largest donor order seen
	count := make([]int, n) // donors reaching top
	rivers := 0
	for i := 0; i < n; i++ {
		if river(i) {
			rivers++
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		switch {
		case top[u] == 0:
			order[u] = 1
		case count[u] >= 2:
			order[u] = top[u] + 1
		default:
			order[u] = top[u]
		}
		r := recv[u]
		if r < 0 || !river(r) {
			continue
		}
		switch {
		case order[u] > top[r]:
			top[r], count[r] = order[u], 1
		case order[u] == top[r]:
			count[r]++
		}
		indeg[r]--
		if indeg[r] == 0 {
			queue = append(queue, r)
		}
	}
	if len(queue) != rivers {
		return nil, fmt.Errorf("Strahler: %w", ErrCyclicFlow)
	}
	cfg.stage(StageOrder)

	out, err := grid.Like(dir, grid.Uint8)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	for i, o := range order {
		dst[i] = grid.Uint8.Coerce(float64(o))
	}
	return out, nil
}

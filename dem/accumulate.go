// SPDX-License-Identifier: MIT

package dem

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/rasterops/grid"
)

// Flow computes the contributing drainage area of a D8 field: every pixel
// counts itself plus all pixels whose flow path passes through it. Pixels
// are visited in topological order (donors before receivers), so the
// result is at least 1 everywhere; a field without any downslope code
// yields 1 everywhere. Output type: Uint32.
//
// Returns ErrDirectionCode for codes outside 0..8 (0..4 under Conn4) and
// ErrCyclicFlow when flow paths loop.
func Flow(dir *grid.Grid, conn grid.Connectivity, opts ...Option) (*grid.Grid, error) {
	recv, err := decode("Flow", dir, conn)
	if err != nil {
		return nil, err
	}
	cfg := buildOptions(opts)
	order, err := topoOrder(recv)
	if err != nil {
		return nil, fmt.Errorf("Flow: %w", err)
	}
	cfg.stage(StageOrder)

	area := make([]float64, len(recv))
	for _, u := range order {
		area[u]++
		if r := recv[u]; r >= 0 {
			area[r] += area[u]
		}
	}
	cfg.stage(StageAccum)
	return areaGrid(dir, area)
}

// FlowNew accumulates drainage area by visiting pixels from the highest
// to the lowest elevation (stable by index), each passing its area to its
// D8 receiver. It requires Conn8. The result equals Flow whenever every
// code points to a pixel that is not higher. Output type: Uint32.
func FlowNew(dem, dir *grid.Grid, conn grid.Connectivity, opts ...Option) (*grid.Grid, error) {
	if conn != grid.Conn8 {
		return nil, fmt.Errorf("FlowNew: %w: requires 8-connectivity, got %d", grid.ErrConnectivity, int(conn))
	}
	if err := grid.ValidatePlanar(dem); err != nil {
		return nil, fmt.Errorf("FlowNew: %w", err)
	}
	if err := grid.ValidateSameShape(dem, dir); err != nil {
		return nil, fmt.Errorf("FlowNew: %w", err)
	}
	recv, err := decode("FlowNew", dir, conn)
	if err != nil {
		return nil, err
	}
	cfg := buildOptions(opts)
	z := dem.Data()
	order := make([]int, len(z))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return z[order[a]] > z[order[b]] })
	cfg.stage(StageOrder)

	area := make([]float64, len(z))
	for i := range area {
		area[i] = 1
	}
	for _, u := range order {
		if r := recv[u]; r >= 0 {
			area[r] += area[u]
		}
	}
	cfg.stage(StageAccum)
	return areaGrid(dir, area)
}

// ContribDrainArea computes the same drainage area as Flow by walking each
// pixel's upstream tree depth-first with memoisation. Output type: Uint32.
func ContribDrainArea(dir *grid.Grid, conn grid.Connectivity, opts ...Option) (*grid.Grid, error) {
	recv, err := decode("ContribDrainArea", dir, conn)
	if err != nil {
		return nil, err
	}
	cfg := buildOptions(opts)

	// donors in compressed form: donors of i are don[start[i]:start[i+1]]
	n := len(recv)
	start := make([]int, n+1)
	for _, r := range recv {
		if r >= 0 {
			start[r+1]++
		}
	}
	for i := 0; i < n; i++ {
		start[i+1] += start[i]
	}
	don := make([]int, start[n])
	fill := append([]int(nil), start[:n]...)
	for i, r := range recv {
		if r >= 0 {
			don[fill[r]] = i
			fill[r]++
		}
	}

	const (
		unvisited = iota
		open
		closed
	)
	state := make([]uint8, n)
	area := make([]float64, n)
	type frame struct{ px, next int }
	var stack []frame
	for root := 0; root < n; root++ {
		if state[root] != unvisited {
			continue
		}
		stack = append(stack[:0], frame{root, start[root]})
		state[root] = open
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < start[top.px+1] {
				d := don[top.next]
				top.next++
				switch state[d] {
				case open:
					return nil, fmt.Errorf("ContribDrainArea: %w", ErrCyclicFlow)
				case unvisited:
					state[d] = open
					stack = append(stack, frame{d, start[d]})
				}
				continue
			}
			u := top.px
			a := 1.0
			for _, d := range don[start[u]:start[u+1]] {
				a += area[d]
			}
			area[u] = a
			state[u] = closed
			stack = stack[:len(stack)-1]
		}
	}
	cfg.stage(StageAccum)
	return areaGrid(dir, area)
}

// angleSnap is the fraction of a 45° sector below which a D-infinity share
// is treated as empty.
const angleSnap = 1e-6

// ContribDrainAreaInf accumulates drainage area over a D-infinity field.
// A pixel with angle a passes its area to the two 8-neighbours whose
// directions bound a, split in proportion to angular proximity; DInfNone
// keeps it. Shares flowing off the grid are lost. Output type: Float32,
// at least 1 everywhere.
//
// Returns ErrDirectionCode for angles outside [0, 2π) other than DInfNone
// and ErrCyclicFlow when flow paths loop.
func ContribDrainAreaInf(dinfDir *grid.Grid, opts ...Option) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(dinfDir); err != nil {
		return nil, fmt.Errorf("ContribDrainAreaInf: %w", err)
	}
	cfg := buildOptions(opts)
	cols, rows := dinfDir.Cols(), dinfDir.Rows()
	ang := dinfDir.Data()
	n := len(ang)

	// angular neighbours, counter-clockwise from east
	ring := [9]grid.Offset{
		{DX: 1}, {DX: 1, DY: -1}, {DY: -1}, {DX: -1, DY: -1},
		{DX: -1}, {DX: -1, DY: 1}, {DY: 1}, {DX: 1, DY: 1}, {DX: 1},
	}
	type share struct {
		to [2]int
		w  [2]float64
	}
	shares := make([]share, n)
	indeg := make([]int, n)
	for i, a := range ang {
		shares[i].to = [2]int{-1, -1}
		if a == DInfNone {
			continue
		}
		if math.IsNaN(a) || a < 0 || a >= 2*math.Pi {
			x, y, _ := dinfDir.Coordinate(i)
			return nil, fmt.Errorf("ContribDrainAreaInf: %w: %v at (%d,%d)", ErrDirectionCode, a, x, y)
		}
		t := a / (math.Pi / 4)
		k := min(int(t), 7)
		f := t - float64(k)
		// angles stored as Float32 miss the neighbour directions slightly
		if f < angleSnap {
			f = 0
		} else if f > 1-angleSnap {
			f = 1
		}
		x, y := i%cols, i/cols
		for s, w := range [2]float64{1 - f, f} {
			if w <= 0 {
				continue
			}
			o := ring[k+s]
			nx, ny := x+o.DX, y+o.DY
			if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
				continue
			}
			j := ny*cols + nx
			shares[i].to[s], shares[i].w[s] = j, w
			indeg[j]++
		}
	}

	order := make([]int, 0, n)
	for i, d := range indeg {
		if d == 0 {
			order = append(order, i)
		}
	}
	area := make([]float64, n)
	for i := range area {
		area[i] = 1
	}
	for qi := 0; qi < len(order); qi++ {
		u := order[qi]
		for s, j := range shares[u].to {
			if j < 0 {
				continue
			}
			area[j] += area[u] * shares[u].w[s]
			indeg[j]--
			if indeg[j] == 0 {
				order = append(order, j)
			}
		}
	}
	if len(order) != n {
		return nil, fmt.Errorf("ContribDrainAreaInf: %w", ErrCyclicFlow)
	}
	cfg.stage(StageAccum)

	out, err := grid.Like(dinfDir, grid.Float32)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	for i, a := range area {
		dst[i] = grid.Float32.Coerce(a)
	}
	return out, nil
}

// ContribDrainAreaStrat flags the drainage network: starting from every
// pixel whose area in cda exceeds the threshold pixel in thr, it flags the
// pixel and follows the D8 codes downstream until the path leaves the grid,
// reaches a None code or meets an already flagged pixel.
// Output type: Uint8 with values {0, 1}.
func ContribDrainAreaStrat(cda, thr, dir *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(cda, thr, dir); err != nil {
		return nil, fmt.Errorf("ContribDrainAreaStrat: %w", err)
	}
	if err := grid.ValidateSameShape(cda, thr, dir); err != nil {
		return nil, fmt.Errorf("ContribDrainAreaStrat: %w", err)
	}
	recv, err := receivers(dir, grid.Conn8)
	if err != nil {
		return nil, fmt.Errorf("ContribDrainAreaStrat: %w", err)
	}
	out, err := grid.Like(dir, grid.Uint8)
	if err != nil {
		return nil, err
	}
	flag := out.Data()
	t := thr.Data()
	for i, a := range cda.Data() {
		if !(a > t[i]) {
			continue
		}
		for p := i; p >= 0 && flag[p] == 0; p = recv[p] {
			flag[p] = 1
		}
	}
	return out, nil
}

// decode validates a planar D8 field and conn and returns its receivers.
func decode(op string, dir *grid.Grid, conn grid.Connectivity) ([]int, error) {
	if err := grid.ValidatePlanar(dir); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := grid.ValidateConnectivity(conn); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	recv, err := receivers(dir, conn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recv, nil
}

func areaGrid(like *grid.Grid, area []float64) (*grid.Grid, error) {
	out, err := grid.Like(like, grid.Uint32)
	if err != nil {
		return nil, err
	}
	dst := out.Data()
	for i, a := range area {
		dst[i] = grid.Uint32.Coerce(a)
	}
	return out, nil
}

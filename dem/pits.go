// SPDX-License-Identifier: MIT

package dem

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/rasterops/grid"
	"github.com/katalvlaran/rasterops/internal/pq"
)

// flooder is a priority flood from labelled minima that records, for every
// pixel, the neighbour it was reached from. The handler passed to run sees
// each pixel found lower than the pixel that reached it, i.e. each entry
// into a pit.
//
// Invariant after every handler call: a reached pixel is never lower than
// its parent, so following parents always leads downhill-or-level to a seed.
type flooder struct {
	g      *grid.Grid
	z      []float64
	valid  []bool
	parent []int
	done   []bool
	nbs    []grid.Offset
	maxfl  float64
	q      *pq.Queue
}

func newFlooder(op string, labels, dem *grid.Grid, conn grid.Connectivity, maxfl float64) (*flooder, error) {
	if err := grid.ValidatePlanar(labels, dem); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := grid.ValidateSameShape(labels, dem); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := grid.ValidateConnectivity(conn); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	n := dem.Len()
	f := &flooder{
		g:      dem,
		z:      append([]float64(nil), dem.Data()...),
		valid:  dem.ValidMask(),
		parent: make([]int, n),
		done:   make([]bool, n),
		nbs:    grid.Neighbors(conn),
		maxfl:  maxfl,
		q:      pq.New(n),
	}
	for i, l := range labels.Data() {
		f.parent[i] = -1
		if l > 0 && f.valid[i] {
			f.done[i] = true
			f.q.Push(i, f.z[i])
		}
	}
	if f.q.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSeeds)
	}
	return f, nil
}

// open reports whether pixel j may still be flooded.
func (f *flooder) open(j int) bool {
	return !f.done[j] && f.valid[j] && f.z[j] <= f.maxfl
}

// neighbours calls fn for every in-grid neighbour of i.
func (f *flooder) neighbours(i int, fn func(j int)) {
	cols := f.g.Cols()
	x, y := i%cols, i/cols
	for _, o := range f.nbs {
		nx, ny := x+o.DX, y+o.DY
		if f.g.InBounds(nx, ny) {
			fn(ny*cols + nx)
		}
	}
}

func (f *flooder) run(onPit func(u, v int)) {
	for {
		u, _, ok := f.q.Pop()
		if !ok {
			return
		}
		f.neighbours(u, func(v int) {
			if !f.open(v) {
				return
			}
			f.done[v] = true
			f.parent[v] = u
			if f.z[v] < f.z[u] {
				onPit(u, v)
			}
			f.q.Push(v, f.z[v])
		})
	}
}

// result writes the working elevations into a grid shaped like the DEM.
func (f *flooder) result() *grid.Grid {
	out := f.g.Clone()
	dst := out.Data()
	dt := out.DataType()
	for i, v := range f.z {
		if f.valid[i] {
			dst[i] = dt.Coerce(v)
		}
	}
	return out
}

// PitRemovalCarve removes every pit that is not a labelled minimum (labels
// > 0) by carving: a priority flood starts from the labelled pixels and,
// whenever it steps down into a lower pixel, lowers the path it came along
// to that pixel's elevation. Afterwards every reached pixel has a
// non-ascending path to a labelled minimum. Pixels above maxFloodLevel are
// barriers: never entered and never modified.
// Output type: the DEM's type.
//
// Returns ErrNoSeeds when no valid pixel is labelled.
func PitRemovalCarve(labels, dem *grid.Grid, conn grid.Connectivity, maxFloodLevel float64, opts ...Option) (*grid.Grid, error) {
	f, err := newFlooder("PitRemovalCarve", labels, dem, conn, maxFloodLevel)
	if err != nil {
		return nil, err
	}
	cfg := buildOptions(opts)
	cfg.stage(StageSeed)
	f.run(func(u, v int) {
		for w := u; w >= 0 && f.z[w] > f.z[v]; w = f.parent[w] {
			f.z[w] = f.z[v]
		}
	})
	cfg.stage(StageFlood)
	out := f.result()
	cfg.stage(StageModified)
	return out, nil
}

// PitRemovalOptimal removes pits that are not labelled minima by mixing
// filling and carving. When the flood from the labelled pixels steps from
// u (pass level L) into a lower pixel v, it collects the depression D
// (pixels below L connected to v and not flooded yet) and its bottom m.
// For every level h between the elevation of m and L it prices:
//
//   - filling: the pixels of D below h connected to m, plus those on the
//     path from m to v, raised to h;
//   - carving: the pixels on that path and on the flood path back from u
//     that are above h, lowered to h.
//
// ModeEnergy prices the summed absolute change, ModeArea the number of
// modified pixels. The cheapest level wins, the higher level on ties.
// Pockets of D left below h are met again later and handled the same way.
// Pixels above maxFloodLevel are barriers. Output type: the DEM's type.
//
// Returns ErrNoSeeds when no valid pixel is labelled and
// ErrIrrelevantMinimum when no labelled pixel lies at the global minimum.
func PitRemovalOptimal(labels, dem *grid.Grid, conn grid.Connectivity, maxFloodLevel float64, mode Mode, opts ...Option) (*grid.Grid, error) {
	f, err := newFlooder("PitRemovalOptimal", labels, dem, conn, maxFloodLevel)
	if err != nil {
		return nil, err
	}
	if err := globalMinimumLabelled(labels, dem); err != nil {
		return nil, fmt.Errorf("PitRemovalOptimal: %w", err)
	}
	cfg := buildOptions(opts)
	cfg.stage(StageSeed)

	n := len(f.z)
	mark := make([]int, n) // generation stamps
	gen := 0
	dpar := make([]int, n)

	f.run(func(u, v int) {
		level := f.z[u]

		// depression below the pass, breadth-first from v
		gen++
		inD := gen
		mark[v], dpar[v] = inD, -1
		depr := []int{v}
		for qi := 0; qi < len(depr); qi++ {
			f.neighbours(depr[qi], func(j int) {
				if mark[j] != inD && f.open(j) && f.z[j] < level {
					mark[j], dpar[j] = inD, depr[qi]
					depr = append(depr, j)
				}
			})
		}
		bottom := v
		for _, p := range depr {
			if f.z[p] < f.z[bottom] || (f.z[p] == f.z[bottom] && p < bottom) {
				bottom = p
			}
		}
		var path []int // m … v
		for p := bottom; p >= 0; p = dpar[p] {
			path = append(path, p)
		}
		var chain []int // u, parent(u), … while above the bottom
		for w := u; w >= 0 && f.z[w] > f.z[bottom]; w = f.parent[w] {
			chain = append(chain, w)
		}

		levels := []float64{level}
		for _, p := range depr {
			levels = append(levels, f.z[p])
		}
		sort.Float64s(levels)

		fillSet := func(h float64) []int {
			gen++
			in := gen
			var set []int
			if f.z[bottom] < h {
				mark[bottom] = in
				set = append(set, bottom)
				for qi := 0; qi < len(set); qi++ {
					f.neighbours(set[qi], func(j int) {
						if mark[j] == inD && f.z[j] < h {
							mark[j] = in
							set = append(set, j)
						}
					})
				}
			}
			for _, p := range path {
				if f.z[p] < h && mark[p] != in {
					mark[p] = in
					set = append(set, p)
				}
			}
			// restore D membership for the next level
			for _, p := range set {
				mark[p] = inD
			}
			return set
		}
		cost := func(h float64) float64 {
			c := 0.0
			add := func(dz float64) {
				if mode == ModeArea {
					c++
				} else {
					c += math.Abs(dz)
				}
			}
			for _, p := range fillSet(h) {
				add(h - f.z[p])
			}
			for _, p := range path {
				if f.z[p] > h {
					add(f.z[p] - h)
				}
			}
			for _, w := range chain {
				if f.z[w] > h {
					add(f.z[w] - h)
				}
			}
			return c
		}

		best, bestCost := levels[0], math.Inf(1)
		for k, h := range levels {
			if k > 0 && h == levels[k-1] {
				continue
			}
			if c := cost(h); c <= bestCost {
				best, bestCost = h, c
			}
		}

		for _, p := range fillSet(best) {
			f.z[p] = best
		}
		for _, p := range path {
			f.z[p] = math.Min(f.z[p], best)
		}
		for _, w := range chain {
			f.z[w] = math.Min(f.z[w], best)
		}
	})
	cfg.stage(StageFlood)
	out := f.result()
	cfg.stage(StageModified)
	return out, nil
}

// globalMinimumLabelled checks that some labelled pixel sits at the lowest
// valid elevation.
func globalMinimumLabelled(labels, dem *grid.Grid) error {
	lo := math.Inf(1)
	z := dem.Data()
	for i, v := range z {
		if validElevation(dem, i) && v < lo {
			lo = v
		}
	}
	for i, l := range labels.Data() {
		if l > 0 && validElevation(dem, i) && z[i] == lo {
			return nil
		}
	}
	return fmt.Errorf("%w: minimum %v", ErrIrrelevantMinimum, lo)
}

// RegionalMinima labels the regional minima of the DEM: connected plateaus
// of equal elevation (under conn) with no strictly lower neighbour.
// Labels are 1, 2, … in scan order of each minimum's first pixel; other
// pixels get 0. Output type: Uint32.
func RegionalMinima(dem *grid.Grid, conn grid.Connectivity) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(dem); err != nil {
		return nil, fmt.Errorf("RegionalMinima: %w", err)
	}
	if err := grid.ValidateConnectivity(conn); err != nil {
		return nil, fmt.Errorf("RegionalMinima: %w", err)
	}
	out, err := grid.Like(dem, grid.Uint32)
	if err != nil {
		return nil, err
	}
	cols := dem.Cols()
	z := dem.Data()
	dst := out.Data()
	nbs := grid.Neighbors(conn)
	seen := make([]bool, len(z))
	next := 1.0
	for i := range z {
		if seen[i] || !validElevation(dem, i) {
			continue
		}
		seen[i] = true
		plateau := []int{i}
		minimum := true
		for qi := 0; qi < len(plateau); qi++ {
			u := plateau[qi]
			ux, uy := u%cols, u/cols
			for _, o := range nbs {
				vx, vy := ux+o.DX, uy+o.DY
				if !dem.InBounds(vx, vy) {
					continue
				}
				v := vy*cols + vx
				if !validElevation(dem, v) {
					continue
				}
				switch {
				case z[v] < z[u]:
					minimum = false
				case z[v] == z[u] && !seen[v]:
					seen[v] = true
					plateau = append(plateau, v)
				}
			}
		}
		if !minimum {
			continue
		}
		for _, p := range plateau {
			dst[p] = next
		}
		next++
	}
	return out, nil
}

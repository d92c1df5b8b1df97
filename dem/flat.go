// SPDX-License-Identifier: MIT

package dem

import (
	"fmt"

	"github.com/katalvlaran/rasterops/grid"
)

// MarkFlats copies a D8 field into a Uint16 grid and replaces None by
// FlatUint16 at every pixel that has an 8-neighbour of equal elevation, so
// the result can be fed to FlowDirectionFlat.
func MarkFlats(dir, dem *grid.Grid) (*grid.Grid, error) {
	if err := grid.ValidatePlanar(dir, dem); err != nil {
		return nil, fmt.Errorf("MarkFlats: %w", err)
	}
	if err := grid.ValidateSameShape(dir, dem); err != nil {
		return nil, fmt.Errorf("MarkFlats: %w", err)
	}
	if _, err := receivers(dir, grid.Conn8); err != nil {
		return nil, fmt.Errorf("MarkFlats: %w", err)
	}
	out, err := grid.Convert(dir, grid.Uint16, 1, 0)
	if err != nil {
		return nil, err
	}
	cols := dem.Cols()
	z := dem.Data()
	dst := out.Data()
	for i, c := range dir.Data() {
		if c != None || !validElevation(dem, i) {
			continue
		}
		x, y := i%cols, i/cols
		for _, o := range grid.Neighbors(grid.Conn8) {
			nx, ny := x+o.DX, y+o.DY
			if dem.InBounds(nx, ny) && validElevation(dem, ny*cols+nx) && z[ny*cols+nx] == z[i] {
				dst[i] = FlatUint16
				break
			}
		}
	}
	return out, nil
}

// flatSentinel returns the flat marker for the cell type of flat.
func flatSentinel(flat *grid.Grid) (float64, error) {
	if err := grid.ValidateDataType(flat, grid.Uint16, grid.Int32); err != nil {
		return 0, err
	}
	if flat.DataType() == grid.Int32 {
		return FlatInt32, nil
	}
	return FlatUint16, nil
}

// flatField bundles the inputs shared by both flat resolvers.
type flatField struct {
	dem    *grid.Grid
	isFlat []bool
	nbs    []grid.Offset
	cols   int
}

func newFlatField(op string, flat, dem *grid.Grid, conn grid.Connectivity) (*flatField, error) {
	if err := grid.ValidatePlanar(flat, dem); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := grid.ValidateSameShape(flat, dem); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := grid.ValidateConnectivity(conn); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	marker, err := flatSentinel(flat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ff := &flatField{dem: dem, isFlat: make([]bool, flat.Len()), nbs: grid.Neighbors(conn), cols: flat.Cols()}
	for i, v := range flat.Data() {
		ff.isFlat[i] = v == marker && validElevation(dem, i)
	}
	return ff, nil
}

// each calls fn for every in-grid, valid neighbour j of i in priority order
// until fn returns false.
func (ff *flatField) each(i int, fn func(j int, o grid.Offset) bool) {
	x, y := i%ff.cols, i/ff.cols
	for _, o := range ff.nbs {
		nx, ny := x+o.DX, y+o.DY
		if !ff.dem.InBounds(nx, ny) {
			continue
		}
		j := ny*ff.cols + nx
		if !validElevation(ff.dem, j) {
			continue
		}
		if !fn(j, o) {
			return
		}
	}
}

// outlet returns the code toward the first non-flat neighbour of flat
// pixel i that is not higher, or None when i is not on a descending border.
func (ff *flatField) outlet(i int) int {
	z := ff.dem.Data()
	code := None
	ff.each(i, func(j int, o grid.Offset) bool {
		if !ff.isFlat[j] && z[j] <= z[i] {
			code = Code(o.DX, o.DY)
			return false
		}
		return true
	})
	return code
}

// sameFlat reports whether j continues the flat of i.
func (ff *flatField) sameFlat(i, j int) bool {
	return ff.isFlat[j] && ff.dem.Data()[j] == ff.dem.Data()[i]
}

// bfs returns breadth-first step counts from the sources through connected
// pixels of the same flat; -1 where unreached.
func (ff *flatField) bfs(sources []int) []int {
	d := make([]int, len(ff.isFlat))
	for i := range d {
		d[i] = -1
	}
	queue := append([]int(nil), sources...)
	for _, s := range sources {
		d[s] = 0
	}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		ff.each(u, func(v int, _ grid.Offset) bool {
			if d[v] < 0 && ff.sameFlat(u, v) {
				d[v] = d[u] + 1
				queue = append(queue, v)
			}
			return true
		})
	}
	return d
}

// FlowDirectionFlat resolves the flat pixels of a direction grid (cells
// holding FlatUint16 for Uint16 grids or FlatInt32 for Int32 grids).
// Flat pixels next to a non-flat neighbour that is not higher form the
// descending border and drain to it; the remaining flat pixels are reached
// breadth-first through the flat under conn and point back to the pixel
// that reached them. Flats without a descending border get None. Other
// pixels are copied. Output type: the type of flat.
func FlowDirectionFlat(flat, dem *grid.Grid, conn grid.Connectivity, opts ...Option) (*grid.Grid, error) {
	ff, err := newFlatField("FlowDirectionFlat", flat, dem, conn)
	if err != nil {
		return nil, err
	}
	cfg := buildOptions(opts)
	out := flat.Clone()
	dst := out.Data()

	var queue []int
	resolved := make([]bool, len(dst))
	for i, f := range ff.isFlat {
		if !f {
			continue
		}
		dst[i] = None
		if c := ff.outlet(i); c != None {
			dst[i] = float64(c)
			resolved[i] = true
			queue = append(queue, i)
		}
	}
	cfg.stage(StageSeed)

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		ff.each(u, func(v int, o grid.Offset) bool {
			if !resolved[v] && ff.sameFlat(u, v) {
				resolved[v] = true
				dst[v] = float64(Code(-o.DX, -o.DY))
				queue = append(queue, v)
			}
			return true
		})
	}
	cfg.stage(StageResolve)

	return out, nil
}

// FlowDirectionFlatGeodesic resolves flats with a pseudo-elevation built
// from two geodesic distances inside each flat:
//
//	h = 2·dDown + (maxUp − dUp)
//
// where dDown counts steps from the descending border, dUp counts steps
// from the ascending border (flat pixels next to higher ground) and maxUp
// is the largest dUp of the flat. Border pixels drain as in
// FlowDirectionFlat; every other flat pixel takes the steepest descent on h
// (step length 1 or √2, priority order on ties). Flow therefore runs away
// from higher terrain as well as toward the outlet. Flats without a
// descending border get None. Output type: the type of flat.
func FlowDirectionFlatGeodesic(flat, dem *grid.Grid, conn grid.Connectivity, opts ...Option) (*grid.Grid, error) {
	ff, err := newFlatField("FlowDirectionFlatGeodesic", flat, dem, conn)
	if err != nil {
		return nil, err
	}
	cfg := buildOptions(opts)
	z := dem.Data()

	var down, up []int
	for i, f := range ff.isFlat {
		if !f {
			continue
		}
		if ff.outlet(i) != None {
			down = append(down, i)
		}
		higher := false
		ff.each(i, func(j int, _ grid.Offset) bool {
			higher = z[j] > z[i]
			return !higher
		})
		if higher {
			up = append(up, i)
		}
	}
	dDown := ff.bfs(down)
	dUp := ff.bfs(up)
	cfg.stage(StageSeed)

	// maxUp per flat zone
	zone := make([]int, len(z))
	var maxUp []int
	for i := range zone {
		zone[i] = -1
	}
	for i, f := range ff.isFlat {
		if !f || zone[i] >= 0 {
			continue
		}
		id := len(maxUp)
		maxUp = append(maxUp, 0)
		zone[i] = id
		queue := []int{i}
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			maxUp[id] = max(maxUp[id], dUp[u])
			ff.each(u, func(v int, _ grid.Offset) bool {
				if zone[v] < 0 && ff.sameFlat(u, v) {
					zone[v] = id
					queue = append(queue, v)
				}
				return true
			})
		}
	}
	pseudo := func(i int) float64 {
		up := max(dUp[i], 0)
		return float64(2*dDown[i] + maxUp[zone[i]] - up)
	}

	out := flat.Clone()
	dst := out.Data()
	for i, f := range ff.isFlat {
		if !f {
			continue
		}
		dst[i] = None
		switch {
		case dDown[i] < 0:
			continue
		case dDown[i] == 0:
			dst[i] = float64(ff.outlet(i))
			continue
		}
		hi, best, code := pseudo(i), 0.0, None
		ff.each(i, func(j int, o grid.Offset) bool {
			if ff.sameFlat(i, j) && dDown[j] >= 0 {
				if g := (hi - pseudo(j)) / stepLength(o); g > best {
					best, code = g, Code(o.DX, o.DY)
				}
			}
			return true
		})
		dst[i] = float64(code)
	}
	cfg.stage(StageResolve)

	return out, nil
}

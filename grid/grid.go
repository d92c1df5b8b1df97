// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"
)

// New allocates a zero-filled cols×rows grid of type dt.
// Returns ErrEmptyGrid if cols or rows < 1, ErrDataType for an unknown type.
// Complexity: O(cells·bands) time and memory.
func New(cols, rows int, dt DataType, opts ...Option) (*Grid, error) {
	if cols < 1 || rows < 1 {
		return nil, ErrEmptyGrid
	}
	if !dt.IsValid() {
		return nil, fmt.Errorf("New: %w: %v", ErrDataType, dt)
	}
	g := &Grid{cols: cols, rows: rows, planes: 1, dtype: dt, cellSize: 1, nbands: 1}
	for _, opt := range opts {
		opt(g)
	}
	n := cols * rows * g.planes
	g.bands = make([][]float64, g.nbands)
	g.noData = make([][]float64, g.nbands)
	for b := range g.bands {
		g.bands[b] = make([]float64, n)
		if len(g.defaultNoData) > 0 {
			g.noData[b] = append([]float64(nil), g.defaultNoData...)
		}
	}
	g.nbands, g.defaultNoData = 0, nil

	return g, nil
}

// FromRows builds a single-band, single-plane grid from values[y][x],
// coercing every value to dt. The input is deep-copied.
// Returns ErrEmptyGrid for no rows or columns, ErrNonRectangular for ragged input.
func FromRows(values [][]float64, dt DataType, opts ...Option) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g, err := New(w, h, dt, opts...)
	if err != nil {
		return nil, err
	}
	data := g.bands[0]
	for y, row := range values {
		for x, v := range row {
			data[y*w+x] = dt.Coerce(v)
		}
	}

	return g, nil
}

// Like allocates a zero-filled grid with the shape and cell size of src and
// cell type dt. Bands and no-data are not inherited; pass options for them.
func Like(src *Grid, dt DataType, opts ...Option) (*Grid, error) {
	if src == nil {
		return nil, ErrNilGrid
	}
	base := []Option{WithPlanes(src.planes), WithCellSize(src.cellSize)}
	return New(src.cols, src.rows, dt, append(base, opts...)...)
}

// Clone returns a deep copy of g, data and metadata included.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		cols:     g.cols,
		rows:     g.rows,
		planes:   g.planes,
		dtype:    g.dtype,
		cellSize: g.cellSize,
		bands:    make([][]float64, len(g.bands)),
		noData:   make([][]float64, len(g.noData)),
	}
	for b := range g.bands {
		c.bands[b] = append([]float64(nil), g.bands[b]...)
		if g.noData[b] != nil {
			c.noData[b] = append([]float64(nil), g.noData[b]...)
		}
	}

	return c
}

// Cols returns the number of columns (x extent).
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows (y extent).
func (g *Grid) Rows() int { return g.rows }

// Planes returns the number of planes (z extent).
func (g *Grid) Planes() int { return g.planes }

// Bands returns the number of bands.
func (g *Grid) Bands() int { return len(g.bands) }

// Len returns the number of cells per band.
func (g *Grid) Len() int { return g.cols * g.rows * g.planes }

// DataType returns the cell type.
func (g *Grid) DataType() DataType { return g.dtype }

// CellSize returns the horizontal grid spacing.
func (g *Grid) CellSize() float64 { return g.cellSize }

// SetCellSize changes the grid spacing; non-positive values are ignored.
func (g *Grid) SetCellSize(size float64) {
	if size > 0 && !math.IsInf(size, 1) {
		g.cellSize = size
	}
}

// Data returns the flat buffer of band 0. Writes through it bypass type
// coercion; engines use it only on grids they allocated.
func (g *Grid) Data() []float64 { return g.bands[0] }

// Band returns the flat buffer of band b, or nil if b is out of range.
func (g *Grid) Band(b int) []float64 {
	if b < 0 || b >= len(g.bands) {
		return nil
	}
	return g.bands[b]
}

// Index maps (x, y, z) to a flat offset. No bounds check.
func (g *Grid) Index(x, y, z int) int { return (z*g.rows+y)*g.cols + x }

// Coordinate converts a flat offset back to (x, y, z).
func (g *Grid) Coordinate(idx int) (x, y, z int) {
	plane := g.cols * g.rows
	z = idx / plane
	rem := idx % plane
	return rem % g.cols, rem / g.cols, z
}

// InBounds reports whether (x, y) lies within the first plane.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// InBounds3 reports whether (x, y, z) lies within the grid.
func (g *Grid) InBounds3(x, y, z int) bool {
	return g.InBounds(x, y) && z >= 0 && z < g.planes
}

// At returns band 0 at (x, y) of plane 0. Panics on out-of-range
// coordinates like a slice index; use Get for a checked read.
func (g *Grid) At(x, y int) float64 { return g.bands[0][y*g.cols+x] }

// Set coerces v to the cell type and stores it in band 0 at (x, y).
func (g *Grid) Set(x, y int, v float64) { g.bands[0][y*g.cols+x] = g.dtype.Coerce(v) }

// At3 returns band 0 at (x, y, z). Unchecked like At.
func (g *Grid) At3(x, y, z int) float64 { return g.bands[0][g.Index(x, y, z)] }

// Set3 coerces v and stores it in band 0 at (x, y, z).
func (g *Grid) Set3(x, y, z int, v float64) { g.bands[0][g.Index(x, y, z)] = g.dtype.Coerce(v) }

// Get is the checked form of At for any band and plane.
func (g *Grid) Get(band, x, y, z int) (float64, error) {
	if band < 0 || band >= len(g.bands) || !g.InBounds3(x, y, z) {
		return 0, fmt.Errorf("Get(%d,%d,%d,%d): %w", band, x, y, z, ErrOutOfRange)
	}
	return g.bands[band][g.Index(x, y, z)], nil
}

// Put is the checked, coercing write for any band and plane.
func (g *Grid) Put(band, x, y, z int, v float64) error {
	if band < 0 || band >= len(g.bands) || !g.InBounds3(x, y, z) {
		return fmt.Errorf("Put(%d,%d,%d,%d): %w", band, x, y, z, ErrOutOfRange)
	}
	g.bands[band][g.Index(x, y, z)] = g.dtype.Coerce(v)
	return nil
}

// Fill sets every cell of every band to v (coerced).
func (g *Grid) Fill(v float64) {
	v = g.dtype.Coerce(v)
	for _, data := range g.bands {
		for i := range data {
			data[i] = v
		}
	}
}

// NoData returns a copy of the no-data sentinels of band b.
func (g *Grid) NoData(b int) []float64 {
	if b < 0 || b >= len(g.noData) {
		return nil
	}
	return append([]float64(nil), g.noData[b]...)
}

// SetNoData replaces the no-data sentinels of band b.
func (g *Grid) SetNoData(b int, values ...float64) error {
	if b < 0 || b >= len(g.noData) {
		return fmt.Errorf("SetNoData(%d): %w", b, ErrOutOfRange)
	}
	g.noData[b] = append([]float64(nil), values...)
	return nil
}

// IsNoData reports whether v is a no-data sentinel of band b.
// NaN sentinels match NaN values.
func (g *Grid) IsNoData(b int, v float64) bool {
	if b < 0 || b >= len(g.noData) {
		return false
	}
	for _, nd := range g.noData[b] {
		if v == nd || (math.IsNaN(nd) && math.IsNaN(v)) {
			return true
		}
	}
	return false
}

// HasNoData reports whether band b declares any sentinel.
func (g *Grid) HasNoData(b int) bool {
	return b >= 0 && b < len(g.noData) && len(g.noData[b]) > 0
}

// ValidMask returns, for band 0, true at every cell that is neither no-data
// nor NaN.
func (g *Grid) ValidMask() []bool {
	valid := make([]bool, g.Len())
	data := g.bands[0]
	for i, v := range data {
		valid[i] = !g.IsNoData(0, v) && !math.IsNaN(v)
	}
	return valid
}

// Neighbors returns the planar neighbour offsets for conn in the fixed
// priority order NW, N, NE, W, E, SW, S, SE (Conn4 keeps N, W, E, S).
func Neighbors(conn Connectivity) []Offset {
	if conn == Conn4 {
		out := make([]Offset, len(cardinalOffsets))
		copy(out, cardinalOffsets[:])
		return out
	}
	out := make([]Offset, len(priorityOffsets))
	copy(out, priorityOffsets[:])
	return out
}

// Neighbors3 returns 3-D neighbour offsets: conn's planar offsets plus,
// when planes > 1, the face neighbours above and below (Conn4 → 6) or the
// full 26-neighbourhood (Conn8).
func Neighbors3(conn Connectivity, planes int) []Offset {
	if planes <= 1 {
		return Neighbors(conn)
	}
	var out []Offset
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				n := abs(dx) + abs(dy) + abs(dz)
				if conn == Conn4 && n != 1 {
					continue
				}
				out = append(out, Offset{dx, dy, dz})
			}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

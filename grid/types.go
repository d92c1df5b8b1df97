// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"
	"strings"
)

// DataType is the cell type of a Grid.
type DataType int

const (
	// Uint8 holds integers in [0, 255].
	Uint8 DataType = iota
	// Int8 holds integers in [-128, 127].
	Int8
	// Uint16 holds integers in [0, 65535].
	Uint16
	// Int16 holds integers in [-32768, 32767].
	Int16
	// Uint32 holds integers in [0, 2³²-1].
	Uint32
	// Int32 holds integers in [-2³¹, 2³¹-1].
	Int32
	// Float32 holds single-precision values.
	Float32
	// Float64 holds double-precision values.
	Float64
)

var dataTypeNames = [...]string{"Uint8", "Int8", "Uint16", "Int16", "Uint32", "Int32", "Float32", "Float64"}

// String returns the type name, e.g. "Uint16".
func (dt DataType) String() string {
	if dt < Uint8 || dt > Float64 {
		return fmt.Sprintf("DataType(%d)", int(dt))
	}
	return dataTypeNames[dt]
}

// ParseDataType maps a name produced by String back to its DataType,
// ignoring case.
func ParseDataType(name string) (DataType, error) {
	for i, n := range dataTypeNames {
		if strings.EqualFold(n, name) {
			return DataType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrDataType, name)
}

// IsValid reports whether dt is one of the declared types.
func (dt DataType) IsValid() bool { return dt >= Uint8 && dt <= Float64 }

// IsInteger reports whether dt stores integers.
func (dt DataType) IsInteger() bool { return dt.IsValid() && dt < Float32 }

// Range returns the smallest and largest value representable in dt.
func (dt DataType) Range() (lo, hi float64) {
	switch dt {
	case Uint8:
		return 0, math.MaxUint8
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Uint16:
		return 0, math.MaxUint16
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Uint32:
		return 0, math.MaxUint32
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Float32:
		return -math.MaxFloat32, math.MaxFloat32
	default:
		return -math.MaxFloat64, math.MaxFloat64
	}
}

// Max is shorthand for the upper bound of Range.
func (dt DataType) Max() float64 {
	_, hi := dt.Range()
	return hi
}

// Coerce converts v to the value a cell of type dt would hold.
// Integers round half away from zero and saturate; NaN becomes 0.
// Float32 round-trips through float32.
func (dt DataType) Coerce(v float64) float64 {
	switch dt {
	case Float64:
		return v
	case Float32:
		if v > math.MaxFloat32 {
			return math.Inf(1)
		}
		if v < -math.MaxFloat32 {
			return math.Inf(-1)
		}
		return float64(float32(v))
	}
	if math.IsNaN(v) {
		return 0
	}
	lo, hi := dt.Range()
	v = math.Round(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Connectivity selects the pixel graph: orthogonal neighbours only (Conn4)
// or orthogonal plus diagonal (Conn8). The values equal the neighbour count
// so a wrapper can pass the integer straight through.
type Connectivity int

const (
	// Conn4 uses N, W, E, S.
	Conn4 Connectivity = 4
	// Conn8 uses NW, N, NE, W, E, SW, S, SE.
	Conn8 Connectivity = 8
)

// ParseConnectivity validates an integer graph parameter.
func ParseConnectivity(n int) (Connectivity, error) {
	c := Connectivity(n)
	if err := ValidateConnectivity(c); err != nil {
		return 0, err
	}
	return c, nil
}

// Offset is a neighbour displacement in grid coordinates (rows grow southwards).
type Offset struct {
	DX, DY, DZ int
}

// priorityOffsets lists the 8 planar neighbours in the fixed priority order
// NW, N, NE, W, E, SW, S, SE used for every tie-break in the engines.
var priorityOffsets = [8]Offset{
	{-1, -1, 0}, {0, -1, 0}, {1, -1, 0},
	{-1, 0, 0}, {1, 0, 0},
	{-1, 1, 0}, {0, 1, 0}, {1, 1, 0},
}

var cardinalOffsets = [4]Offset{
	{0, -1, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 1, 0},
}

// Option configures a Grid at construction time.
type Option func(*Grid)

// WithPlanes sets the number of planes (depth). Values < 1 are ignored.
func WithPlanes(n int) Option {
	return func(g *Grid) {
		if n >= 1 {
			g.planes = n
		}
	}
}

// WithBands sets the number of bands. Values < 1 are ignored.
func WithBands(n int) Option {
	return func(g *Grid) {
		if n >= 1 {
			g.nbands = n
		}
	}
}

// WithNoData declares no-data sentinels for every band.
func WithNoData(values ...float64) Option {
	return func(g *Grid) {
		g.defaultNoData = append([]float64(nil), values...)
	}
}

// WithCellSize sets the grid spacing used by slope-type operations.
// Non-positive or non-finite values are ignored.
func WithCellSize(size float64) Option {
	return func(g *Grid) {
		if size > 0 && !math.IsInf(size, 1) {
			g.cellSize = size
		}
	}
}

// Grid is a typed, multi-band, optionally multi-plane raster.
//
//   - cols, rows, planes: shape (all ≥ 1).
//   - bands[b]: flat row-major buffer of len cols*rows*planes.
//   - noData[b]: sentinels of band b.
//   - cellSize: horizontal spacing (default 1).
//
// A Grid is not safe for concurrent mutation; engines treat inputs as
// read-only and allocate fresh outputs.
type Grid struct {
	cols, rows, planes int
	dtype              DataType
	bands              [][]float64
	noData             [][]float64
	cellSize           float64

	// construction-only state
	nbands        int
	defaultNoData []float64
}

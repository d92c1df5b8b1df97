// SPDX-License-Identifier: MIT

package grid_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rasterops/grid"
)

func TestNew_Errors(t *testing.T) {
	_, err := grid.New(0, 3, grid.Uint8)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = grid.New(3, 3, grid.DataType(42))
	assert.ErrorIs(t, err, grid.ErrDataType)

	_, err = grid.FromRows(nil, grid.Uint8)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = grid.FromRows([][]float64{{1, 2}, {3}}, grid.Uint8)
	assert.ErrorIs(t, err, grid.ErrNonRectangular)
}

func TestNew_ShapeAndOptions(t *testing.T) {
	g, err := grid.New(4, 3, grid.Int16,
		grid.WithPlanes(2), grid.WithBands(3), grid.WithNoData(-1), grid.WithCellSize(30))
	require.NoError(t, err)

	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 2, g.Planes())
	assert.Equal(t, 3, g.Bands())
	assert.Equal(t, 24, g.Len())
	assert.Equal(t, 30.0, g.CellSize())
	for b := 0; b < 3; b++ {
		assert.Equal(t, []float64{-1}, g.NoData(b))
		assert.Len(t, g.Band(b), 24)
	}
	assert.Nil(t, g.Band(3))
}

func TestDataType_Coerce(t *testing.T) {
	tests := []struct {
		name string
		dt   grid.DataType
		in   float64
		want float64
	}{
		{"uint8 saturates high", grid.Uint8, 300, 255},
		{"uint8 saturates low", grid.Uint8, -3, 0},
		{"uint8 rounds half away", grid.Uint8, 2.5, 3},
		{"int8 rounds half away", grid.Int8, -2.5, -3},
		{"int16 nan", grid.Int16, math.NaN(), 0},
		{"uint32 max", grid.Uint32, 1e12, math.MaxUint32},
		{"int32 min", grid.Int32, -1e12, math.MinInt32},
		{"float32 round trip", grid.Float32, 0.1, float64(float32(0.1))},
		{"float64 identity", grid.Float64, 0.1, 0.1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.dt.Coerce(tc.in))
		})
	}
}

func TestDataType_Parse(t *testing.T) {
	for dt := grid.Uint8; dt <= grid.Float64; dt++ {
		got, err := grid.ParseDataType(dt.String())
		require.NoError(t, err)
		assert.Equal(t, dt, got)
	}
	got, err := grid.ParseDataType("float32")
	require.NoError(t, err)
	assert.Equal(t, grid.Float32, got)
	_, err = grid.ParseDataType("Complex64")
	assert.ErrorIs(t, err, grid.ErrDataType)
	assert.True(t, grid.Uint16.IsInteger())
	assert.False(t, grid.Float32.IsInteger())
}

func TestParseConnectivity(t *testing.T) {
	for _, n := range []int{4, 8} {
		c, err := grid.ParseConnectivity(n)
		require.NoError(t, err)
		assert.Equal(t, n, int(c))
	}
	for _, n := range []int{0, 6, 26} {
		_, err := grid.ParseConnectivity(n)
		assert.ErrorIs(t, err, grid.ErrConnectivity)
	}
}

func TestIndexCoordinate_RoundTrip(t *testing.T) {
	g, err := grid.New(5, 4, grid.Uint8, grid.WithPlanes(3))
	require.NoError(t, err)
	for z := 0; z < 3; z++ {
		for y := 0; y < 4; y++ {
			for x := 0; x < 5; x++ {
				i := g.Index(x, y, z)
				gx, gy, gz := g.Coordinate(i)
				require.Equal(t, [3]int{x, y, z}, [3]int{gx, gy, gz})
			}
		}
	}
	assert.True(t, g.InBounds3(4, 3, 2))
	assert.False(t, g.InBounds3(4, 3, 3))
	assert.False(t, g.InBounds(-1, 0))
}

func TestGetPut_Checked(t *testing.T) {
	g, err := grid.New(2, 2, grid.Uint8, grid.WithBands(2))
	require.NoError(t, err)

	require.NoError(t, g.Put(1, 1, 1, 0, 999))
	v, err := g.Get(1, 1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 255.0, v)

	_, err = g.Get(2, 0, 0, 0)
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
	assert.ErrorIs(t, g.Put(0, 2, 0, 0, 1), grid.ErrOutOfRange)
}

func TestNeighbors_PriorityOrder(t *testing.T) {
	n8 := grid.Neighbors(grid.Conn8)
	want8 := []grid.Offset{
		{DX: -1, DY: -1}, {DX: 0, DY: -1}, {DX: 1, DY: -1},
		{DX: -1, DY: 0}, {DX: 1, DY: 0},
		{DX: -1, DY: 1}, {DX: 0, DY: 1}, {DX: 1, DY: 1},
	}
	assert.Equal(t, want8, n8)

	n4 := grid.Neighbors(grid.Conn4)
	assert.Equal(t, []grid.Offset{{DX: 0, DY: -1}, {DX: -1, DY: 0}, {DX: 1, DY: 0}, {DX: 0, DY: 1}}, n4)

	// callers get a copy
	n8[0] = grid.Offset{}
	assert.Equal(t, want8, grid.Neighbors(grid.Conn8))

	assert.Len(t, grid.Neighbors3(grid.Conn4, 3), 6)
	assert.Len(t, grid.Neighbors3(grid.Conn8, 3), 26)
	assert.Len(t, grid.Neighbors3(grid.Conn8, 1), 8)
}

func TestNoData(t *testing.T) {
	g, err := grid.FromRows([][]float64{{1, 2}, {3, 4}}, grid.Float32)
	require.NoError(t, err)
	assert.False(t, g.HasNoData(0))

	require.NoError(t, g.SetNoData(0, math.NaN(), 4))
	assert.True(t, g.HasNoData(0))
	assert.True(t, g.IsNoData(0, math.NaN()))
	assert.True(t, g.IsNoData(0, 4))
	assert.False(t, g.IsNoData(0, 3))
	assert.Equal(t, []bool{true, true, true, false}, g.ValidMask())

	undeclared, err := grid.FromRows([][]float64{{math.NaN(), 2}}, grid.Float64)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, undeclared.ValidMask())
	assert.ErrorIs(t, g.SetNoData(1, 0), grid.ErrOutOfRange)
}

func TestClone_IsDeep(t *testing.T) {
	g, err := grid.FromRows([][]float64{{1, 2}, {3, 4}}, grid.Uint8, grid.WithNoData(0))
	require.NoError(t, err)
	c := g.Clone()
	require.True(t, grid.Equal(g, c))

	c.Set(0, 0, 9)
	require.NoError(t, c.SetNoData(0, 7))
	assert.Equal(t, 1.0, g.At(0, 0))
	assert.Equal(t, []float64{0}, g.NoData(0))
	assert.False(t, grid.Equal(g, c))
}

func TestLike(t *testing.T) {
	g, err := grid.New(3, 2, grid.Float64, grid.WithPlanes(2), grid.WithBands(2), grid.WithNoData(1), grid.WithCellSize(5))
	require.NoError(t, err)
	l, err := grid.Like(g, grid.Uint32)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Cols())
	assert.Equal(t, 2, l.Rows())
	assert.Equal(t, 2, l.Planes())
	assert.Equal(t, 1, l.Bands())
	assert.Equal(t, 5.0, l.CellSize())
	assert.False(t, l.HasNoData(0))
	assert.Equal(t, grid.Uint32, l.DataType())
}

func TestApply(t *testing.T) {
	g, err := grid.FromRows([][]float64{{1, 2}}, grid.Uint8)
	require.NoError(t, err)
	orig := g.Clone()

	boom := errors.New("boom")
	err = grid.Apply(g, func(*grid.Grid) (*grid.Grid, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, grid.Equal(orig, g), "failed op must not mutate the receiver")

	want, err := grid.Convert(orig, grid.Uint16, 10, 0)
	require.NoError(t, err)
	err = grid.Apply(g, func(in *grid.Grid) (*grid.Grid, error) { return grid.Convert(in, grid.Uint16, 10, 0) })
	require.NoError(t, err)
	assert.True(t, grid.Equal(want, g))

	clone := func(in *grid.Grid) (*grid.Grid, error) { return in.Clone(), nil }
	assert.ErrorIs(t, grid.Apply(nil, clone), grid.ErrNilGrid)
}

func TestValidators(t *testing.T) {
	a, _ := grid.New(3, 3, grid.Uint8)
	b, _ := grid.New(3, 4, grid.Uint8)
	m, _ := grid.New(3, 3, grid.Uint8, grid.WithBands(2))
	p, _ := grid.New(3, 3, grid.Uint8, grid.WithPlanes(2))

	assert.NoError(t, grid.ValidateSameShape(a, m))
	assert.ErrorIs(t, grid.ValidateSameShape(a, b), grid.ErrDimensionMismatch)
	assert.ErrorIs(t, grid.ValidateSameShape(a, nil), grid.ErrNilGrid)
	assert.ErrorIs(t, grid.ValidatePlanar(a, m), grid.ErrMultiBand)
	assert.ErrorIs(t, grid.ValidatePlanar(p), grid.ErrNot2D)
	assert.NoError(t, grid.ValidateDataType(a, grid.Uint16, grid.Uint8))
	assert.ErrorIs(t, grid.ValidateDataType(a, grid.Float32), grid.ErrDataType)
}

func TestNeighborhood(t *testing.T) {
	cross, err := grid.FromRows([][]float64{
		{0, 1, 0},
		{1, 1, 1},
		{0, 1, 0},
	}, grid.Uint8)
	require.NoError(t, err)

	n, err := grid.NewNeighborhood(cross, 1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []grid.Offset{{DX: 0, DY: -1}, {DX: -1, DY: 0}, {DX: 1, DY: 0}, {DX: 0, DY: 1}}, n.Offsets())

	// Moving the origin shifts every offset.
	n, err = grid.NewNeighborhood(cross, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n.Len())
	assert.Contains(t, n.Offsets(), grid.Offset{DX: 2, DY: 1})

	_, err = grid.NewNeighborhood(cross, 3, 0, 0)
	assert.ErrorIs(t, err, grid.ErrNeighborhood)

	single, _ := grid.FromRows([][]float64{{1}}, grid.Uint8)
	_, err = grid.NewNeighborhood(single, 0, 0, 0)
	assert.ErrorIs(t, err, grid.ErrNeighborhood)

	assert.Equal(t, 26, grid.ConnNeighborhood(grid.Conn8, 2).Len())
}

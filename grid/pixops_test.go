// SPDX-License-Identifier: MIT

package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rasterops/grid"
)

func row(t *testing.T, dt grid.DataType, values ...float64) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows([][]float64{values}, dt)
	require.NoError(t, err)
	return g
}

func ptr(v float64) *float64 { return &v }

func TestThreshold(t *testing.T) {
	tests := []struct {
		name string
		dt   grid.DataType
		in   []float64
		spec grid.ThresholdSpec
		want []float64
	}{
		{"clip to zero", grid.Uint8, []float64{1, 5, 10}, grid.ThresholdSpec{Min: 2, Max: 8}, []float64{0, 5, 0}},
		{"replacement value", grid.Uint8, []float64{1, 5, 8}, grid.ThresholdSpec{Min: 2, Max: 8, Value: ptr(1)}, []float64{0, 1, 1}},
		{"no-data fill", grid.Uint8, []float64{1, 5, 10}, grid.ThresholdSpec{Min: 2, Max: 8, NoData: ptr(255)}, []float64{255, 5, 255}},
		{"absolute test", grid.Int8, []float64{-5, 3, 5}, grid.ThresholdSpec{Min: 4, Max: 6, Abs: true}, []float64{-5, 0, 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := row(t, tc.dt, tc.in...)
			out, err := grid.Threshold(g, tc.spec)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Data())
			assert.Equal(t, tc.in, g.Data(), "input untouched")
			if tc.spec.NoData != nil {
				assert.True(t, out.IsNoData(0, *tc.spec.NoData))
			}
		})
	}

	_, err := grid.Threshold(row(t, grid.Uint8, 1), grid.ThresholdSpec{Min: 3, Max: 2})
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
}

func TestThreshold_KeepsNoDataCells(t *testing.T) {
	g := row(t, grid.Int16, -1, 3, 50)
	require.NoError(t, g.SetNoData(0, -1))
	out, err := grid.Threshold(g, grid.ThresholdSpec{Min: 0, Max: 10})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 3, 0}, out.Data())
}

func TestSimpleThreshold(t *testing.T) {
	out, err := grid.SimpleThreshold(row(t, grid.Uint8, 0, 10, 20, 30), 10, 20, 0, 255)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 255, 255, 0}, out.Data())
}

func TestBitwise(t *testing.T) {
	a := row(t, grid.Uint8, 12, 12)
	b := row(t, grid.Uint8, 10, 3)
	for op, want := range map[grid.BitOp][]float64{
		grid.And: {8, 0},
		grid.Or:  {14, 15},
		grid.Xor: {6, 15},
	} {
		out, err := grid.Bitwise(a, b, op)
		require.NoError(t, err, op.String())
		assert.Equal(t, want, out.Data(), op.String())
	}

	_, err := grid.Bitwise(a, row(t, grid.Float32, 1, 2), grid.And)
	assert.ErrorIs(t, err, grid.ErrDataType)
	_, err = grid.Bitwise(a, b, grid.BitOp(10))
	assert.ErrorIs(t, err, grid.ErrBitOp)
	_, err = grid.Bitwise(a, row(t, grid.Uint8, 1), grid.Or)
	assert.ErrorIs(t, err, grid.ErrDimensionMismatch)
}

func TestParseBitOp(t *testing.T) {
	op, err := grid.ParseBitOp("xor")
	require.NoError(t, err)
	assert.Equal(t, grid.Xor, op)
	_, err = grid.ParseBitOp("nand")
	assert.ErrorIs(t, err, grid.ErrBitOp)
}

func TestConvert(t *testing.T) {
	out, err := grid.Convert(row(t, grid.Float32, 0.4, 50, 200), grid.Uint8, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, grid.Uint8, out.DataType())
	assert.Equal(t, []float64{2, 101, 255}, out.Data())

	auto, err := grid.ConvertAutoscale(row(t, grid.Int16, -10, 0, 10), grid.Uint8, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 50, 100}, auto.Data())

	flat, err := grid.ConvertAutoscale(row(t, grid.Int16, 7, 7), grid.Uint8, 3, 100)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3}, flat.Data())

	_, err = grid.Convert(row(t, grid.Uint8, 1), grid.DataType(-1), 1, 0)
	assert.ErrorIs(t, err, grid.ErrDataType)
}

func TestBlank(t *testing.T) {
	out, err := grid.Blank(row(t, grid.Uint16, 1, 2, 3), 70000)
	require.NoError(t, err)
	assert.Equal(t, []float64{65535, 65535, 65535}, out.Data())
}

func TestStats(t *testing.T) {
	g := row(t, grid.Int16, -1, 2, 4, 6)
	require.NoError(t, g.SetNoData(0, -1))
	st := g.Stats(0)
	assert.Equal(t, grid.Stats{Min: 2, Max: 6, Mean: 4, Count: 3}, st)
	assert.Equal(t, []float64{2, 4, 6}, g.Distinct(0))
	assert.Equal(t, grid.Stats{}, g.Stats(3))

	require.NoError(t, g.SetNoData(0, -1, 2, 4, 6))
	assert.Equal(t, grid.Stats{}, g.Stats(0))
}

func TestEqual(t *testing.T) {
	a := row(t, grid.Uint8, 1, 2)
	assert.True(t, grid.Equal(a, a.Clone()))
	assert.False(t, grid.Equal(a, row(t, grid.Uint16, 1, 2)))
	assert.False(t, grid.Equal(a, row(t, grid.Uint8, 1, 3)))
	assert.False(t, grid.Equal(a, nil))
	assert.True(t, grid.Equal(nil, nil))
}

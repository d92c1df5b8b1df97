// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"
)

// Point operations. Each returns a new grid and leaves its inputs untouched;
// use Apply for the in-place shape. All bands are processed; no-data cells
// are preserved unless an operation says otherwise.

// BitOp selects a bitwise point operation.
type BitOp int

const (
	// And keeps bits set in both operands.
	And BitOp = iota + 1
	// Or keeps bits set in either operand.
	Or
	// Xor keeps bits set in exactly one operand.
	Xor
)

// String returns "And", "Or" or "Xor".
func (op BitOp) String() string {
	switch op {
	case And:
		return "And"
	case Or:
		return "Or"
	case Xor:
		return "Xor"
	}
	return fmt.Sprintf("BitOp(%d)", int(op))
}

// ParseBitOp maps "and", "or", "xor" (any case) to a BitOp.
func ParseBitOp(name string) (BitOp, error) {
	switch name {
	case "and", "And", "AND":
		return And, nil
	case "or", "Or", "OR":
		return Or, nil
	case "xor", "Xor", "XOR":
		return Xor, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBitOp, name)
}

// Blank returns a copy of g with every cell set to v.
func Blank(g *Grid, v float64) (*Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	out := g.Clone()
	out.Fill(v)
	return out, nil
}

// ThresholdSpec is the contract of a min/max threshold:
//
//   - a cell whose value (or absolute value with Abs) lies in [Min, Max]
//     is kept, or replaced by *Value when Value is set;
//   - any other cell becomes *NoData when set (and that value is declared
//     no-data on the output), 0 otherwise.
type ThresholdSpec struct {
	Min, Max float64
	Abs      bool
	Value    *float64
	NoData   *float64
}

// Threshold applies spec to every band of g.
func Threshold(g *Grid, spec ThresholdSpec) (*Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if spec.Min > spec.Max || math.IsNaN(spec.Min) || math.IsNaN(spec.Max) {
		return nil, fmt.Errorf("Threshold: min %v > max %v: %w", spec.Min, spec.Max, ErrOutOfRange)
	}
	out := g.Clone()
	outside := 0.0
	if spec.NoData != nil {
		outside = out.dtype.Coerce(*spec.NoData)
	}
	for b, data := range out.bands {
		for i, v := range data {
			if g.IsNoData(b, v) {
				if spec.NoData != nil {
					data[i] = outside
				}
				continue
			}
			t := v
			if spec.Abs {
				t = math.Abs(v)
			}
			if t >= spec.Min && t <= spec.Max {
				if spec.Value != nil {
					data[i] = out.dtype.Coerce(*spec.Value)
				}
				continue
			}
			data[i] = outside
		}
		if spec.NoData != nil {
			out.noData[b] = []float64{outside}
		}
	}

	return out, nil
}

// SimpleThreshold maps cells in [lo, hi] to fg and every other cell to bg.
// No-data cells are mapped like any other value.
func SimpleThreshold(g *Grid, lo, hi, bg, fg float64) (*Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	out := g.Clone()
	bg, fg = out.dtype.Coerce(bg), out.dtype.Coerce(fg)
	for b, data := range out.bands {
		for i, v := range data {
			if v >= lo && v <= hi {
				data[i] = fg
			} else {
				data[i] = bg
			}
		}
		out.noData[b] = nil
	}
	return out, nil
}

// Bitwise combines two integer grids cell by cell. The result has a's type.
// Returns ErrDimensionMismatch for different shapes or band counts,
// ErrDataType for floating-point operands, ErrBitOp for an unknown op.
func Bitwise(a, b *Grid, op BitOp) (*Grid, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, fmt.Errorf("Bitwise: %w", err)
	}
	if len(a.bands) != len(b.bands) {
		return nil, fmt.Errorf("Bitwise: bands %d vs %d: %w", len(a.bands), len(b.bands), ErrDimensionMismatch)
	}
	if !a.dtype.IsInteger() || !b.dtype.IsInteger() {
		return nil, fmt.Errorf("Bitwise: %w: %v, %v", ErrDataType, a.dtype, b.dtype)
	}
	if op != And && op != Or && op != Xor {
		return nil, fmt.Errorf("Bitwise: %w: %v", ErrBitOp, op)
	}
	out := a.Clone()
	for k, data := range out.bands {
		other := b.bands[k]
		for i, v := range data {
			x, y := int64(v), int64(other[i])
			var r int64
			switch op {
			case And:
				r = x & y
			case Or:
				r = x | y
			default:
				r = x ^ y
			}
			data[i] = out.dtype.Coerce(float64(r))
		}
	}
	return out, nil
}

// Convert returns g as type dt with every value mapped to scale*v + offset.
// No-data cells and sentinels are carried over, coerced to dt.
func Convert(g *Grid, dt DataType, scale, offset float64) (*Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if !dt.IsValid() {
		return nil, fmt.Errorf("Convert: %w: %v", ErrDataType, dt)
	}
	out := g.Clone()
	out.dtype = dt
	for b, data := range out.bands {
		for i, v := range data {
			if g.IsNoData(b, v) {
				data[i] = dt.Coerce(v)
				continue
			}
			data[i] = dt.Coerce(scale*v + offset)
		}
		for j, nd := range out.noData[b] {
			out.noData[b][j] = dt.Coerce(nd)
		}
	}
	return out, nil
}

// ConvertAutoscale converts g to dt mapping each band's [min, max]
// (no-data excluded) linearly onto [lo, hi]. A constant band maps to lo.
func ConvertAutoscale(g *Grid, dt DataType, lo, hi float64) (*Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if !dt.IsValid() {
		return nil, fmt.Errorf("ConvertAutoscale: %w: %v", ErrDataType, dt)
	}
	out := g.Clone()
	out.dtype = dt
	for b, data := range out.bands {
		st := g.Stats(b)
		scale := 0.0
		if st.Count > 0 && st.Max > st.Min {
			scale = (hi - lo) / (st.Max - st.Min)
		}
		for i, v := range data {
			if g.IsNoData(b, v) {
				data[i] = dt.Coerce(v)
				continue
			}
			data[i] = dt.Coerce(lo + (v-st.Min)*scale)
		}
		for j, nd := range out.noData[b] {
			out.noData[b][j] = dt.Coerce(nd)
		}
	}
	return out, nil
}

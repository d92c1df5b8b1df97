// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/rasterops/grid"
)

// optionalFloat parses a setting that may be left empty.
func optionalFloat(name, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", errSetting, name, s)
	}
	return &f, nil
}

func pixopsOperations() []operation {
	return []operation{
		{
			name:  "threshold",
			short: "Keep cells inside [min, max], optionally replacing them",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("min", 0, "lower bound, inclusive")
				fs.Float64("max", 127, "upper bound, inclusive")
				fs.Bool("abs", false, "compare absolute values")
				fs.String("value", "", "value for kept cells (default: unchanged)")
				fs.String("nodata", "", "value and no-data sentinel for rejected cells (default: 0)")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				spec := grid.ThresholdSpec{Min: r.floatOpt("min"), Max: r.floatOpt("max"), Abs: r.boolOpt("abs")}
				var err error
				if spec.Value, err = optionalFloat("value", r.stringOpt("value")); err != nil {
					return nil, err
				}
				if spec.NoData, err = optionalFloat("nodata", r.stringOpt("nodata")); err != nil {
					return nil, err
				}
				return func(g *grid.Grid) (*grid.Grid, error) {
					return grid.Threshold(g, spec)
				}, nil
			},
		},
		{
			name:  "simple-threshold",
			short: "Map cells inside [min, max] to fg and the rest to bg",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("min", 0, "lower bound, inclusive")
				fs.Float64("max", 127, "upper bound, inclusive")
				fs.Float64("bg", 0, "value outside the range")
				fs.Float64("fg", 1, "value inside the range")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				lo, hi, bg, fg := r.floatOpt("min"), r.floatOpt("max"), r.floatOpt("bg"), r.floatOpt("fg")
				return func(g *grid.Grid) (*grid.Grid, error) {
					return grid.SimpleThreshold(g, lo, hi, bg, fg)
				}, nil
			},
		},
		{
			name:  "bitwise",
			short: "Combine every cell with a constant operand",
			flags: func(fs *pflag.FlagSet) {
				fs.String("op", "and", "and, or or xor")
				fs.Int("operand", 0x0f, "constant right-hand operand")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				op, err := grid.ParseBitOp(r.stringOpt("op"))
				if err != nil {
					return nil, err
				}
				operand := float64(r.intOpt("operand"))
				return func(g *grid.Grid) (*grid.Grid, error) {
					rhs, err := grid.Blank(g, operand)
					if err != nil {
						return nil, err
					}
					return grid.Bitwise(g, rhs, op)
				}, nil
			},
		},
		{
			name:  "convert",
			short: "Change the cell type, mapping v to scale·v + offset",
			flags: func(fs *pflag.FlagSet) {
				fs.String("type", "float32", "target cell type")
				fs.Float64("scale", 1, "multiplier")
				fs.Float64("offset", 0, "addend")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				dt, err := grid.ParseDataType(r.stringOpt("type"))
				if err != nil {
					return nil, err
				}
				scale, offset := r.floatOpt("scale"), r.floatOpt("offset")
				return func(g *grid.Grid) (*grid.Grid, error) {
					return grid.Convert(g, dt, scale, offset)
				}, nil
			},
		},
		{
			name:  "autoscale",
			short: "Change the cell type, stretching [min, max] onto [lo, hi]",
			flags: func(fs *pflag.FlagSet) {
				fs.String("type", "float32", "target cell type")
				fs.Float64("lo", 0, "image of the minimum")
				fs.Float64("hi", 1, "image of the maximum")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				dt, err := grid.ParseDataType(r.stringOpt("type"))
				if err != nil {
					return nil, err
				}
				lo, hi := r.floatOpt("lo"), r.floatOpt("hi")
				return func(g *grid.Grid) (*grid.Grid, error) {
					return grid.ConvertAutoscale(g, dt, lo, hi)
				}, nil
			},
		},
		{
			name:  "blank",
			short: "Set every cell to one value",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("value", 0, "fill value")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				v := r.floatOpt("value")
				return func(g *grid.Grid) (*grid.Grid, error) {
					return grid.Blank(g, v)
				}, nil
			},
		},
		{
			name:  "sobel",
			short: "Sobel gradient along one axis",
			flags: func(fs *pflag.FlagSet) {
				fs.String("axis", "x", "x (west to east) or y (north to south)")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				var k grid.Kernel3
				switch axis := r.stringOpt("axis"); axis {
				case "x":
					k = grid.SobelX
				case "y":
					k = grid.SobelY
				default:
					return nil, fmt.Errorf("%w: axis %q", errSetting, axis)
				}
				return func(g *grid.Grid) (*grid.Grid, error) {
					return grid.Convolve3x3(g, k, false)
				}, nil
			},
		},
	}
}

// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/pflag"

	"github.com/katalvlaran/rasterops/grid"
	"github.com/katalvlaran/rasterops/label"
)

// window is the 3×3 neighbourhood mask of conn, origin at its centre.
func window(conn grid.Connectivity) (*grid.Grid, error) {
	rows := [][]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}
	if conn == grid.Conn4 {
		rows = [][]float64{{0, 1, 0}, {1, 1, 1}, {0, 1, 0}}
	}
	return grid.FromRows(rows, grid.Uint8)
}

// lattice seeds every stride-th cell of every stride-th row.
func lattice(like *grid.Grid, stride int) (*grid.Grid, error) {
	seeds, err := grid.Like(like, grid.Uint8)
	if err != nil {
		return nil, err
	}
	stride = max(stride, 1)
	for y := 0; y < like.Rows(); y += stride {
		for x := 0; x < like.Cols(); x += stride {
			seeds.Set(x, y, 1)
		}
	}
	return seeds, nil
}

func labelOperations() []operation {
	return []operation{
		{
			name:  "alpha",
			short: "Alpha-connected components",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("alpha", 8, "largest difference between connected neighbours")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				alpha := r.floatOpt("alpha")
				return func(g *grid.Grid) (*grid.Grid, error) {
					return label.DissimToAlphaCCs(g, alpha, label.WithConnectivity(r.conn))
				}, nil
			},
		},
		{
			name:  "flatzones",
			short: "Connected zones of equal value",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					return label.FlatZones(g, label.WithConnectivity(r.conn))
				}, nil
			},
		},
		{
			name:  "seeded",
			short: "Flat zones grown from a lattice of seeds",
			flags: func(fs *pflag.FlagSet) {
				fs.Int("stride", 8, "spacing of the seed lattice")
			},
			build: func(r *run, in *grid.Grid) (engine, error) {
				ngb, err := window(r.conn)
				if err != nil {
					return nil, err
				}
				seeds, err := lattice(in, r.intOpt("stride"))
				if err != nil {
					return nil, err
				}
				return func(g *grid.Grid) (*grid.Grid, error) {
					return label.FlatZonesSeeded(g, ngb, seeds, 1, 1, 0)
				}, nil
			},
		},
		{
			name:  "variance",
			short: "Regions bounded by local range, global range and variance",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("local", 8, "largest step between neighbours")
				fs.Float64("global", 32, "largest max−min of a region")
				fs.Float64("variance", 64, "largest population variance of a region")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				ngb, err := window(r.conn)
				if err != nil {
					return nil, err
				}
				local, global, variance := r.floatOpt("local"), r.floatOpt("global"), r.floatOpt("variance")
				return func(g *grid.Grid) (*grid.Grid, error) {
					return label.ConstrainedCCsVariance(g, local, global, 1, 1, 0, variance, ngb)
				}, nil
			},
		},
		{
			name:  "components",
			short: "Connected components of the foreground",
			flags: func(fs *pflag.FlagSet) {
				fs.Bool("sizes", false, "log the cell count of every component")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				sizes := r.boolOpt("sizes")
				return func(g *grid.Grid) (*grid.Grid, error) {
					fg, err := r.binary(g, 1)
					if err != nil {
						return nil, err
					}
					out, err := label.Components(fg, label.WithConnectivity(r.conn))
					if err != nil || !sizes {
						return out, err
					}
					counts, err := label.Sizes(out)
					if err != nil {
						return nil, err
					}
					r.log.Info("component sizes", "background", counts[0], "sizes", counts[1:])
					return out, nil
				}, nil
			},
		},
		{
			name:  "pixels",
			short: "One label per foreground cell",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					fg, err := r.binary(g, 1)
					if err != nil {
						return nil, err
					}
					return label.Pixels(fg)
				}, nil
			},
		},
	}
}

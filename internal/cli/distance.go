// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/pflag"

	"github.com/katalvlaran/rasterops/distance"
	"github.com/katalvlaran/rasterops/grid"
	"github.com/katalvlaran/rasterops/label"
)

// binary maps the cells of g at or above the shared level to fg and every
// other cell to 0, keeping the cell type.
func (r *run) binary(g *grid.Grid, fg float64) (*grid.Grid, error) {
	return grid.SimpleThreshold(g, r.level(), g.DataType().Max(), 0, fg)
}

// centred returns a Uint16 marker holding 1 at the centre cell of g and the
// binary mask of g with that cell forced into the foreground.
func (r *run) centred(g *grid.Grid) (marker, mask *grid.Grid, err error) {
	if mask, err = r.binary(g, 1); err != nil {
		return nil, nil, err
	}
	if marker, err = grid.Like(g, grid.Uint16); err != nil {
		return nil, nil, err
	}
	x, y := g.Cols()/2, g.Rows()/2
	marker.Set(x, y, 1)
	mask.Set(x, y, 1)
	return marker, mask, nil
}

func distanceOperations() []operation {
	return []operation{
		{
			name:  "sqeuclidean",
			short: "Squared Euclidean distance of foreground cells to the background",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					b, err := r.binary(g, 1)
					if err != nil {
						return nil, err
					}
					return distance.SquaredEuclidean(b, r.passes()...)
				}, nil
			},
		},
		{
			name:  "d4",
			short: "City-block distance of foreground cells to the background",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					b, err := r.binary(g, 1)
					if err != nil {
						return nil, err
					}
					return distance.Distance4(b, r.passes()...)
				}, nil
			},
		},
		{
			name:  "chamfer",
			short: "Chamfer distance with an integer weight set",
			flags: func(fs *pflag.FlagSet) {
				fs.Int("weights", distance.Chamfer34, "weight set: 11, 12, 34 or 5711")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				weights := r.intOpt("weights")
				return func(g *grid.Grid) (*grid.Grid, error) {
					b, err := r.binary(g, g.DataType().Max())
					if err != nil {
						return nil, err
					}
					return distance.Chamfer(b, weights, r.passes()...)
				}, nil
			},
		},
		{
			name:  "geodesic",
			short: "Step count from the centre cell through the foreground",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					marker, mask, err := r.centred(g)
					if err != nil {
						return nil, err
					}
					return distance.Geodesic(marker, mask, r.conn, r.passes()...)
				}, nil
			},
		},
		{
			name:  "constrained",
			short: "Euclidean path length from the centre cell through the foreground",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					marker, mask, err := r.centred(g)
					if err != nil {
						return nil, err
					}
					return distance.EuclideanConstrained(marker, mask, r.passes()...)
				}, nil
			},
		},
		{
			name:  "influence",
			short: "Zones of influence of the cells at or above a seed level",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("seed-level", 250, "cells at or above this value become seeds")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				lvl := r.floatOpt("seed-level")
				return func(g *grid.Grid) (*grid.Grid, error) {
					fg, err := grid.SimpleThreshold(g, lvl, g.DataType().Max(), 0, 1)
					if err != nil {
						return nil, err
					}
					seeds, err := label.Pixels(fg)
					if err != nil {
						return nil, err
					}
					return distance.InfluenceZones(seeds, r.passes()...)
				}, nil
			},
		},
	}
}

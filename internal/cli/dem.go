// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/rasterops/dem"
	"github.com/katalvlaran/rasterops/grid"
	"github.com/katalvlaran/rasterops/label"
)

// errSetting indicates a setting value no engine parameter maps to.
var errSetting = errors.New("cli: invalid setting")

func parseMode(name string) (dem.Mode, error) {
	switch name {
	case "energy":
		return dem.ModeEnergy, nil
	case "area":
		return dem.ModeArea, nil
	}
	return 0, fmt.Errorf("%w: mode %q", errSetting, name)
}

// directions is the D8 field behind the accumulation commands: the flood
// direction of g under the configured connectivity.
func (r *run) directions(g *grid.Grid) (*grid.Grid, error) {
	return dem.FloodDirection(g, r.conn, r.stages())
}

// flats marks the flat cells of the D8 field of g.
func flats(g *grid.Grid) (*grid.Grid, error) {
	dir, err := dem.FlowDirectionD8(g)
	if err != nil {
		return nil, err
	}
	return dem.MarkFlats(dir, g)
}

// lowest labels the cells of g at its global minimum.
func lowest(g *grid.Grid) (*grid.Grid, error) {
	st := g.Stats(0)
	return grid.SimpleThreshold(g, st.Min, st.Min, 0, 1)
}

// network derives the river network of g: cells whose drainage area
// exceeds threshold and every cell downstream of them. river keeps the
// D8 code on the network and 0 elsewhere.
func (r *run) network(g *grid.Grid, threshold float64) (dir, river *grid.Grid, err error) {
	if dir, err = r.directions(g); err != nil {
		return nil, nil, err
	}
	cda, err := dem.ContribDrainArea(dir, r.conn, r.stages())
	if err != nil {
		return nil, nil, err
	}
	thr, err := grid.Blank(cda, threshold)
	if err != nil {
		return nil, nil, err
	}
	strat, err := dem.ContribDrainAreaStrat(cda, thr, dir)
	if err != nil {
		return nil, nil, err
	}
	mask, err := grid.Convert(strat, grid.Uint8, math.MaxUint8, 0)
	if err != nil {
		return nil, nil, err
	}
	if river, err = grid.Bitwise(dir, mask, grid.And); err != nil {
		return nil, nil, err
	}
	return dir, river, nil
}

// confluenceNet marks the outlets of a river network with 1 and its other
// cells with 2. An outlet is a river cell draining off the grid or onto a
// cell outside the network.
func confluenceNet(river *grid.Grid) (*grid.Grid, error) {
	net, err := grid.Like(river, grid.Uint8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < river.Rows(); y++ {
		for x := 0; x < river.Cols(); x++ {
			code := int(river.At(x, y))
			if code == dem.None {
				continue
			}
			dx, dy, _ := dem.Offset(code)
			nx, ny := x+dx, y+dy
			if !river.InBounds(nx, ny) || river.At(nx, ny) == dem.None {
				net.Set(x, y, 1)
			} else {
				net.Set(x, y, 2)
			}
		}
	}
	return net, nil
}

// sun wraps one zenith/azimuth pair as the 1×1 grids HillShade broadcasts.
func sun(zenith, azimuth float64) (zen, az *grid.Grid, err error) {
	if zen, err = grid.FromRows([][]float64{{zenith}}, grid.Float32); err != nil {
		return nil, nil, err
	}
	if az, err = grid.FromRows([][]float64{{azimuth}}, grid.Float32); err != nil {
		return nil, nil, err
	}
	return zen, az, nil
}

func demOperations() []operation {
	return []operation{
		{
			name:  "d8",
			short: "D8 steepest-descent directions",
			build: func(*run, *grid.Grid) (engine, error) { return dem.FlowDirectionD8, nil },
		},
		{
			name:  "dinf",
			short: "D-infinity flow angles",
			build: func(*run, *grid.Grid) (engine, error) { return dem.FlowDirectionDInf, nil },
		},
		{
			name:  "flood",
			short: "Flow directions by immersion simulation",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					return dem.FloodDirection(g, r.conn, r.stages())
				}, nil
			},
		},
		{
			name:  "flats",
			short: "D8 directions with flat cells marked",
			build: func(*run, *grid.Grid) (engine, error) { return flats, nil },
		},
		{
			name:  "resolve",
			short: "D8 directions with flats drained toward their outlets",
			flags: func(fs *pflag.FlagSet) {
				fs.Bool("geodesic", false, "also drain away from higher ground")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				resolve := dem.FlowDirectionFlat
				if r.boolOpt("geodesic") {
					resolve = dem.FlowDirectionFlatGeodesic
				}
				return func(g *grid.Grid) (*grid.Grid, error) {
					flat, err := flats(g)
					if err != nil {
						return nil, err
					}
					return resolve(flat, g, r.conn, r.stages())
				}, nil
			},
		},
		{
			name:  "flow",
			short: "Drainage area of the flood directions",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					dir, err := r.directions(g)
					if err != nil {
						return nil, err
					}
					return dem.Flow(dir, r.conn, r.stages())
				}, nil
			},
		},
		{
			name:  "flownew",
			short: "Drainage area by elevation order (8-connectivity only)",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					dir, err := r.directions(g)
					if err != nil {
						return nil, err
					}
					return dem.FlowNew(g, dir, r.conn, r.stages())
				}, nil
			},
		},
		{
			name:  "cda",
			short: "Contributing drainage area by recursive upstream summation",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					dir, err := r.directions(g)
					if err != nil {
						return nil, err
					}
					return dem.ContribDrainArea(dir, r.conn, r.stages())
				}, nil
			},
		},
		{
			name:  "cdainf",
			short: "Contributing drainage area of the D-infinity field",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					dir, err := dem.FlowDirectionDInf(g)
					if err != nil {
						return nil, err
					}
					return dem.ContribDrainAreaInf(dir, r.stages())
				}, nil
			},
		},
		{
			name:  "strat",
			short: "Drainage network above an area threshold",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("threshold", 16, "minimum drainage area of a channel head")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				threshold := r.floatOpt("threshold")
				return func(g *grid.Grid) (*grid.Grid, error) {
					dir, err := r.directions(g)
					if err != nil {
						return nil, err
					}
					cda, err := dem.ContribDrainArea(dir, r.conn, r.stages())
					if err != nil {
						return nil, err
					}
					thr, err := grid.Blank(cda, threshold)
					if err != nil {
						return nil, err
					}
					return dem.ContribDrainAreaStrat(cda, thr, dir)
				}, nil
			},
		},
		{
			name:  "carve",
			short: "Remove pits by carving toward the global minimum",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("max-flood", math.Inf(1), "cells above this elevation are barriers")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				maxfl := r.floatOpt("max-flood")
				return func(g *grid.Grid) (*grid.Grid, error) {
					labels, err := lowest(g)
					if err != nil {
						return nil, err
					}
					return dem.PitRemovalCarve(labels, g, r.conn, maxfl, r.stages())
				}, nil
			},
		},
		{
			name:  "optimal",
			short: "Remove pits by the cheaper of filling and carving",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("max-flood", math.Inf(1), "cells above this elevation are barriers")
				fs.String("mode", "energy", "cost to minimise: energy or area")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				mode, err := parseMode(r.stringOpt("mode"))
				if err != nil {
					return nil, err
				}
				maxfl := r.floatOpt("max-flood")
				return func(g *grid.Grid) (*grid.Grid, error) {
					labels, err := lowest(g)
					if err != nil {
						return nil, err
					}
					return dem.PitRemovalOptimal(labels, g, r.conn, maxfl, mode, r.stages())
				}, nil
			},
		},
		{
			name:  "minima",
			short: "Label the regional minima",
			build: func(r *run, _ *grid.Grid) (engine, error) {
				return func(g *grid.Grid) (*grid.Grid, error) {
					return dem.RegionalMinima(g, r.conn)
				}, nil
			},
		},
		{
			name:  "slope",
			short: "Horn slope in degrees or percent",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("scale", 1, "horizontal units per cell")
				fs.Float64("zscale", 1, "vertical exaggeration")
				fs.Bool("percent", false, "report percent rise instead of degrees")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				scale, zscale, percent := r.floatOpt("scale"), r.floatOpt("zscale"), r.boolOpt("percent")
				return func(g *grid.Grid) (*grid.Grid, error) {
					return dem.Slope(g, scale, zscale, percent)
				}, nil
			},
		},
		{
			name:  "slope-d8",
			short: "Steepest D8 descent gradient",
			build: func(*run, *grid.Grid) (engine, error) { return dem.SlopeD8, nil },
		},
		{
			name:  "slope-dinf",
			short: "Steepest D-infinity facet gradient",
			build: func(*run, *grid.Grid) (engine, error) { return dem.SlopeDInf, nil },
		},
		{
			name:  "hillshade",
			short: "Cast-shadow mask for one sun position",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("zenith", 45, "sun zenith angle in degrees")
				fs.Float64("azimuth", 315, "direction of the light, degrees clockwise from north")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				zen, az, err := sun(r.floatOpt("zenith"), r.floatOpt("azimuth"))
				if err != nil {
					return nil, err
				}
				return func(g *grid.Grid) (*grid.Grid, error) {
					return dem.HillShade(g, zen, az)
				}, nil
			},
		},
		{
			name:  "strahler",
			short: "Strahler order of the drainage network",
			flags: func(fs *pflag.FlagSet) {
				fs.Float64("threshold", 16, "minimum drainage area of a channel head")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				threshold := r.floatOpt("threshold")
				return func(g *grid.Grid) (*grid.Grid, error) {
					_, river, err := r.network(g, threshold)
					if err != nil {
						return nil, err
					}
					return dem.Strahler(river, r.stages())
				}, nil
			},
		},
		{
			name:  "catchment",
			short: "Catchment basins of the outlets or of the network confluences",
			flags: func(fs *pflag.FlagSet) {
				fs.Bool("confluence", false, "split the drainage network at confluences")
				fs.Float64("threshold", 16, "minimum drainage area of a channel head")
			},
			build: func(r *run, _ *grid.Grid) (engine, error) {
				confluence, threshold := r.boolOpt("confluence"), r.floatOpt("threshold")
				return func(g *grid.Grid) (*grid.Grid, error) {
					if confluence {
						dir, river, err := r.network(g, threshold)
						if err != nil {
							return nil, err
						}
						net, err := confluenceNet(river)
						if err != nil {
							return nil, err
						}
						return dem.CatchmentBasinConfluence(net, dir)
					}
					dir, err := r.directions(g)
					if err != nil {
						return nil, err
					}
					sinks, err := grid.SimpleThreshold(dir, dem.None, dem.None, 0, 1)
					if err != nil {
						return nil, err
					}
					outlets, err := label.Pixels(sinks)
					if err != nil {
						return nil, err
					}
					return dem.CatchmentBasinOutlet(outlets, dir)
				}, nil
			},
		},
	}
}

// SPDX-License-Identifier: MIT

package label

import (
	"errors"
	"math"

	"github.com/katalvlaran/rasterops/grid"
)

var (
	// ErrAlpha indicates a negative or NaN dissimilarity threshold.
	ErrAlpha = errors.New("label: alpha must be a non-negative number")

	// ErrConstraint indicates a negative or NaN range or variance bound.
	ErrConstraint = errors.New("label: constraints must be non-negative numbers")
)

// Options configures the connectivity-driven labellers.
type Options struct {
	// Conn is the planar connectivity; on multi-plane grids Conn4 becomes
	// the 6-neighbourhood and Conn8 the 26-neighbourhood.
	Conn grid.Connectivity
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Options with 4-connectivity.
func DefaultOptions() Options { return Options{Conn: grid.Conn4} }

// WithConnectivity selects the neighbourhood. Values other than Conn4 and
// Conn8 are reported as grid.ErrConnectivity by the labeller.
func WithConnectivity(c grid.Connectivity) Option {
	return func(o *Options) { o.Conn = c }
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// valid reports whether cell i of band 0 takes part in labelling.
func valid(g *grid.Grid, i int) bool {
	v := g.Data()[i]
	return !g.IsNoData(0, v) && !math.IsNaN(v)
}

// neighbours calls fn with the index of every in-grid cell reached from i
// by one of offs.
func neighbours(g *grid.Grid, offs []grid.Offset, i int, fn func(j int)) {
	x, y, z := g.Coordinate(i)
	for _, o := range offs {
		nx, ny, nz := x+o.DX, y+o.DY, z+o.DZ
		if g.InBounds3(nx, ny, nz) {
			fn(g.Index(nx, ny, nz))
		}
	}
}

// labelGrid writes labels into a fresh Uint32 grid shaped like g.
func labelGrid(g *grid.Grid, labels []float64) (*grid.Grid, error) {
	out, err := grid.Like(g, grid.Uint32)
	if err != nil {
		return nil, err
	}
	copy(out.Data(), labels)
	return out, nil
}

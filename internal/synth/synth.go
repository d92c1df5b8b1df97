// SPDX-License-Identifier: MIT

// Package synth builds deterministic synthetic grids for tests, benchmarks
// and the command-line tool.
package synth

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/rasterops/grid"
)

// ErrSource indicates an unknown generator name.
var ErrSource = errors.New("synth: unknown source")

// Source names accepted by Generate.
const (
	SourceUniform = "uniform"
	SourceCone    = "cone"
	SourceBowl    = "bowl"
	SourceRamp    = "ramp"
	SourceFrame   = "frame"
)

// Sources lists every generator name in a stable order.
func Sources() []string {
	return []string{SourceUniform, SourceCone, SourceBowl, SourceRamp, SourceFrame}
}

// Uniform fills a cols×rows grid of type dt with integers drawn uniformly
// from [lo, hi] by a generator seeded with seed.
func Uniform(cols, rows int, dt grid.DataType, lo, hi int, seed int64) (*grid.Grid, error) {
	g, err := grid.New(cols, rows, dt)
	if err != nil {
		return nil, err
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	rng := rand.New(rand.NewSource(seed))
	data := g.Data()
	for i := range data {
		data[i] = dt.Coerce(float64(lo + rng.Intn(hi-lo+1)))
	}
	return g, nil
}

// Cone is a single peak of height peak at the centre, falling linearly with
// Euclidean distance to 0 at the farthest corner.
func Cone(cols, rows int, dt grid.DataType, peak float64) (*grid.Grid, error) {
	return radial(cols, rows, dt, func(r, rmax float64) float64 {
		return peak * (1 - r/rmax)
	})
}

// Bowl is the inverted Cone: a single pit of depth 0 at the centre rising to
// height at the farthest corner.
func Bowl(cols, rows int, dt grid.DataType, height float64) (*grid.Grid, error) {
	return radial(cols, rows, dt, func(r, rmax float64) float64 {
		return height * r / rmax
	})
}

func radial(cols, rows int, dt grid.DataType, f func(r, rmax float64) float64) (*grid.Grid, error) {
	g, err := grid.New(cols, rows, dt)
	if err != nil {
		return nil, err
	}
	cx, cy := float64(cols-1)/2, float64(rows-1)/2
	rmax := math.Hypot(cx, cy)
	if rmax == 0 {
		rmax = 1
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			g.Set(x, y, f(math.Hypot(float64(x)-cx, float64(y)-cy), rmax))
		}
	}
	return g, nil
}

// Ramp is a plane falling by step per column towards the east and by step
// per row towards the south, lowest at the south-east corner.
func Ramp(cols, rows int, dt grid.DataType, step float64) (*grid.Grid, error) {
	g, err := grid.New(cols, rows, dt)
	if err != nil {
		return nil, err
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			g.Set(x, y, step*float64((cols-1-x)+(rows-1-y)))
		}
	}
	return g, nil
}

// Frame is value everywhere except a one-pixel border of zeros.
func Frame(cols, rows int, dt grid.DataType, value float64) (*grid.Grid, error) {
	g, err := grid.New(cols, rows, dt)
	if err != nil {
		return nil, err
	}
	for y := 1; y < rows-1; y++ {
		for x := 1; x < cols-1; x++ {
			g.Set(x, y, value)
		}
	}
	return g, nil
}

// Generate dispatches on a source name with the defaults used by the
// command-line tool: Uniform draws [0, 255], Cone and Bowl span 100, Ramp
// steps by 1 and Frame fills with 1. The result is Uint8 except for Ramp,
// which is Uint16 so large grids do not saturate.
func Generate(source string, cols, rows int, seed int64) (*grid.Grid, error) {
	switch source {
	case SourceUniform:
		return Uniform(cols, rows, grid.Uint8, 0, 255, seed)
	case SourceCone:
		return Cone(cols, rows, grid.Uint8, 100)
	case SourceBowl:
		return Bowl(cols, rows, grid.Uint8, 100)
	case SourceRamp:
		return Ramp(cols, rows, grid.Uint16, 1)
	case SourceFrame:
		return Frame(cols, rows, grid.Uint8, 1)
	}
	return nil, fmt.Errorf("%w: %q", ErrSource, source)
}

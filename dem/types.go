// SPDX-License-Identifier: MIT

package dem

import (
	"errors"
	"math"
)

// Sentinel errors for the flow and drainage engine.
var (
	// ErrDirectionCode indicates a direction value that is not a D8 code
	// (or is a diagonal code under Conn4), or a D-infinity angle outside
	// [0, 2π) other than -1.
	ErrDirectionCode = errors.New("dem: invalid direction code")

	// ErrCyclicFlow indicates a direction field whose flow paths loop, so
	// upstream areas are undefined.
	ErrCyclicFlow = errors.New("dem: direction field contains a cycle")

	// ErrNoSeeds indicates a label grid without any labelled pixel.
	ErrNoSeeds = errors.New("dem: label grid has no labelled minimum")

	// ErrIrrelevantMinimum indicates that no labelled pixel lies at the
	// global minimum of the elevation grid.
	ErrIrrelevantMinimum = errors.New("dem: global minimum is not labelled")

	// ErrScale indicates a non-positive scale or zscale.
	ErrScale = errors.New("dem: scale and zscale must be positive")
)

// D8 direction codes. Rows grow southwards.
const (
	None = 0
	W    = 1
	E    = 2
	N    = 3
	S    = 4
	NW   = 5
	SW   = 6
	NE   = 7
	SE   = 8
)

// Flat sentinels written by MarkFlats and read by the flat resolvers.
const (
	FlatUint16 = math.MaxUint16 - 2 // 65533
	FlatInt32  = math.MaxInt32 - 2
)

// DInfNone is the D-infinity value of a pixel without a downslope facet.
const DInfNone = -1

// Mode selects the cost minimised by PitRemovalOptimal.
type Mode int

const (
	// ModeEnergy minimises the summed absolute elevation change.
	ModeEnergy Mode = iota
	// ModeArea minimises the number of modified pixels.
	ModeArea
)

// String returns "energy" or "area".
func (m Mode) String() string {
	if m == ModeArea {
		return "area"
	}
	return "energy"
}

// Stage names reported through WithOnStage. The pit removals report
// StageModified once the adjusted elevations are written to the output.
const (
	StageSeed     = "seed"
	StageFlood    = "flood"
	StageOrder    = "order"
	StageAccum    = "accumulate"
	StageResolve  = "resolve"
	StageModified = "modified"
)

// Options configures the multi-stage operations.
type Options struct {
	// OnStage, if set, is called when a stage completes.
	OnStage func(stage string)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Options without hooks.
func DefaultOptions() Options { return Options{} }

// WithOnStage installs a stage hook.
func WithOnStage(fn func(stage string)) Option {
	return func(o *Options) { o.OnStage = fn }
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (o Options) stage(name string) {
	if o.OnStage != nil {
		o.OnStage(name)
	}
}

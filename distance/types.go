// SPDX-License-Identifier: MIT

package distance

import "errors"

// Sentinel errors for distance transforms.
var (
	// ErrWeightSet indicates a chamfer weight-set id that is not defined.
	ErrWeightSet = errors.New("distance: unknown chamfer weight set")

	// ErrNoSeeds indicates a seed grid without any non-zero pixel.
	ErrNoSeeds = errors.New("distance: seed grid has no seed")
)

// Pass names reported through WithOnPass.
const (
	PassColumns  = "columns"
	PassRows     = "rows"
	PassForward  = "forward"
	PassBackward = "backward"
	PassFlood    = "flood"
)

// Options configures a transform.
type Options struct {
	// Workers bounds the goroutines of parallel passes; ≤ 0 means GOMAXPROCS.
	Workers int
	// OnPass, if set, is called after each completed pass.
	OnPass func(pass string)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns GOMAXPROCS workers and no hook.
func DefaultOptions() Options {
	return Options{}
}

// WithWorkers bounds parallel passes to n goroutines.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithOnPass installs a hook called after each pass.
func WithOnPass(fn func(pass string)) Option {
	return func(o *Options) { o.OnPass = fn }
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (o Options) pass(name string) {
	if o.OnPass != nil {
		o.OnPass(name)
	}
}

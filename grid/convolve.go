// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Kernel3 is a 3×3 filter, Kernel3[dy+1][dx+1] weighting the tap at (x+dx, y+dy).
type Kernel3 [3][3]float64

// Sobel kernels: SobelX responds to west→east increase, SobelY to north→south.
var (
	SobelX = Kernel3{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	SobelY = Kernel3{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// Parallel splits [0, n) into contiguous chunks and runs fn on each chunk
// with at most workers goroutines (≤ 0 means GOMAXPROCS). Chunks never
// overlap, so fn may write its own range of a shared slice without locking.
// The first error returned by fn is returned.
func Parallel(n, workers int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	if workers == 1 {
		return fn(0, n)
	}
	chunk := (n + workers - 1) / workers
	var eg errgroup.Group
	eg.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		eg.Go(func() error { return fn(lo, hi) })
	}
	return eg.Wait()
}

// Convolve3x3 filters band 0 of a single-plane grid with k.
//
// No-data policy:
//   - taps falling outside the grid mirror back inside (symmetric boundary);
//   - taps on no-data cells take the centre value;
//   - a no-data centre yields the first no-data sentinel of the input.
//
// With norm the sum is divided by Σ|k|. The result is Float64 for Float64
// input and Float32 otherwise, carrying the input's no-data sentinels.
// Rows are filtered in parallel; the output does not depend on scheduling.
func Convolve3x3(g *Grid, k Kernel3, norm bool) (*Grid, error) {
	if err := ValidatePlanar(g); err != nil {
		return nil, fmt.Errorf("Convolve3x3: %w", err)
	}
	dt := Float32
	if g.dtype == Float64 {
		dt = Float64
	}
	out, err := Like(g, dt, WithNoData(g.noData[0]...))
	if err != nil {
		return nil, err
	}
	div := 1.0
	if norm {
		s := 0.0
		for _, row := range k {
			for _, w := range row {
				s += math.Abs(w)
			}
		}
		if s > 0 {
			div = s
		}
	}
	src, dst := g.bands[0], out.bands[0]
	cols, rows := g.cols, g.rows
	fill := 0.0
	if len(g.noData[0]) > 0 {
		fill = dt.Coerce(g.noData[0][0])
	}

	err = Parallel(rows, 0, func(lo, hi int) error {
		for y := lo; y < hi; y++ {
			for x := 0; x < cols; x++ {
				c := src[y*cols+x]
				if g.IsNoData(0, c) {
					dst[y*cols+x] = fill
					continue
				}
				sum := 0.0
				for dy := -1; dy <= 1; dy++ {
					yy := mirror(y+dy, rows)
					for dx := -1; dx <= 1; dx++ {
						w := k[dy+1][dx+1]
						if w == 0 {
							continue
						}
						v := src[yy*cols+mirror(x+dx, cols)]
						if g.IsNoData(0, v) {
							v = c
						}
						sum += w * v
					}
				}
				dst[y*cols+x] = dt.Coerce(sum / div)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// mirror reflects i into [0, n) the way a symmetric boundary does: -1 → 0, n → n-1.
func mirror(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

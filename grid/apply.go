// SPDX-License-Identifier: MIT

package grid

// Apply is the destructive adapter over a pure operation: it runs op(g) and,
// on success, makes g adopt the result's shape, type, bands, no-data and
// cell size. On error g is left untouched and the error is returned as is.
//
// Every engine function is pure, so
//
//	out, err := op(g)        // functional shape
//	err = grid.Apply(g, op)  // destructive shape
//
// leave bit-identical grids behind.
func Apply(g *Grid, op func(*Grid) (*Grid, error)) error {
	if g == nil {
		return ErrNilGrid
	}
	out, err := op(g)
	if err != nil {
		return err
	}
	if out == g {
		return nil
	}
	*g = *out

	return nil
}

// SPDX-License-Identifier: MIT

package grid

import "fmt"

// Validators return plain sentinels (wrapped with the validator tag only);
// engines wrap them once more with the operation name.

func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateConnectivity accepts Conn4 and Conn8.
func ValidateConnectivity(c Connectivity) error {
	if c != Conn4 && c != Conn8 {
		return validatorErrorf("ValidateConnectivity", fmt.Errorf("%w: %d", ErrConnectivity, int(c)))
	}
	return nil
}

// ValidateSameShape ensures every grid is non-nil and shares the shape of the first.
// Bands and cell types may differ.
func ValidateSameShape(grids ...*Grid) error {
	if len(grids) == 0 {
		return nil
	}
	for _, g := range grids {
		if g == nil {
			return validatorErrorf("ValidateSameShape", ErrNilGrid)
		}
	}
	a := grids[0]
	for _, b := range grids[1:] {
		if a.cols != b.cols || a.rows != b.rows || a.planes != b.planes {
			return validatorErrorf("ValidateSameShape", fmt.Errorf("%w: %dx%dx%d vs %dx%dx%d",
				ErrDimensionMismatch, a.cols, a.rows, a.planes, b.cols, b.rows, b.planes))
		}
	}
	return nil
}

// ValidatePlanar ensures every grid is non-nil, single-plane and single-band.
func ValidatePlanar(grids ...*Grid) error {
	for _, g := range grids {
		if g == nil {
			return validatorErrorf("ValidatePlanar", ErrNilGrid)
		}
		if g.planes != 1 {
			return validatorErrorf("ValidatePlanar", ErrNot2D)
		}
		if len(g.bands) != 1 {
			return validatorErrorf("ValidatePlanar", ErrMultiBand)
		}
	}
	return nil
}

// ValidateSingleBand ensures every grid is non-nil and has exactly one band.
func ValidateSingleBand(grids ...*Grid) error {
	for _, g := range grids {
		if g == nil {
			return validatorErrorf("ValidateSingleBand", ErrNilGrid)
		}
		if len(g.bands) != 1 {
			return validatorErrorf("ValidateSingleBand", ErrMultiBand)
		}
	}
	return nil
}

// ValidateDataType ensures g has one of the allowed cell types.
func ValidateDataType(g *Grid, allowed ...DataType) error {
	for _, dt := range allowed {
		if g.dtype == dt {
			return nil
		}
	}
	return validatorErrorf("ValidateDataType", fmt.Errorf("%w: %v", ErrDataType, g.dtype))
}

// SPDX-License-Identifier: MIT

package grid

import "errors"

// Sentinel errors for grid construction and validation. Engines wrap them
// with the operation name; callers match with errors.Is.
var (
	// ErrEmptyGrid indicates a grid with no rows, columns, planes or bands.
	ErrEmptyGrid = errors.New("grid: grid must have at least one cell")

	// ErrNonRectangular indicates rows of differing lengths in FromRows.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")

	// ErrOutOfRange indicates coordinates or a band index outside the grid.
	ErrOutOfRange = errors.New("grid: index out of range")

	// ErrDimensionMismatch indicates grids of one operation differ in shape.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")

	// ErrDataType indicates a cell type the operation cannot work with.
	ErrDataType = errors.New("grid: unsupported data type")

	// ErrConnectivity indicates a connectivity outside {4, 8}, or one the
	// operation does not accept.
	ErrConnectivity = errors.New("grid: unsupported connectivity")

	// ErrNot2D indicates a multi-plane grid passed to a 2-D operation.
	ErrNot2D = errors.New("grid: operation requires a single plane")

	// ErrMultiBand indicates a multi-band grid passed to a single-band operation.
	ErrMultiBand = errors.New("grid: operation requires a single band")

	// ErrBitOp indicates an unknown bitwise operation.
	ErrBitOp = errors.New("grid: unknown bitwise operation")

	// ErrNeighborhood indicates a structuring element without any neighbour
	// or with an origin outside its mask.
	ErrNeighborhood = errors.New("grid: invalid neighborhood")

	// ErrNilGrid indicates a nil *Grid argument.
	ErrNilGrid = errors.New("grid: grid is nil")
)

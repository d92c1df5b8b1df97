// SPDX-License-Identifier: MIT

// Package grid is the sample-grid abstraction shared by every raster engine
// in rasterops.
//
// What:
//
//   - Grid stores Cols×Rows×Planes cells for one or more bands in row-major
//     flat buffers (offset = z*Rows*Cols + y*Cols + x).
//   - Every cell has a DataType (Uint8 … Float64). Writes are coerced to that
//     type, so a Grid holds exactly what a typed raster would hold.
//   - Bands carry zero or more no-data sentinels; statistics and the 3×3
//     convolution skip them.
//   - Connectivity (Conn4, Conn8) and Neighborhood describe pixel adjacency,
//     with offsets enumerated in a fixed priority order.
//
// Why:
//
//   - Engines (distance, dem, label) need one deterministic, typed container
//     with explicit shape checks instead of ad-hoc [][]int inputs.
//   - Apply gives every pure engine function a destructive (in-place) shape
//     with bit-identical results and no partial mutation on error.
//
// Complexity:
//
//   - New/Like/Clone: O(cells·bands). At/Set: O(1).
//   - Convolve3x3: O(cells), row-parallel.
//   - Stats/Equal and the point operations: O(cells).
//
// Errors:
//
//   - ErrEmptyGrid, ErrNonRectangular: bad constructor input.
//   - ErrOutOfRange: coordinates or band index outside the grid.
//   - ErrDimensionMismatch: grids of one operation differ in shape.
//   - ErrDataType: cell type not supported by an operation.
//   - ErrConnectivity: connectivity outside {4, 8} or not allowed by an operation.
//   - ErrNot2D, ErrMultiBand: engine requires a single-plane, single-band grid.
//   - ErrBitOp: unknown bitwise operation.
package grid

// SPDX-License-Identifier: MIT

// Package distance implements distance transforms on single-band, single-plane
// grids.
//
// What:
//
//   - SquaredEuclidean: exact squared Euclidean distance of every non-zero
//     pixel to the nearest zero pixel (separable two-pass transform).
//   - Distance4: city-block distance to the nearest zero pixel.
//   - Chamfer: grey-level propagation with an integer weight kernel
//     selected by a weight-set id (11, 12, 34, 5711).
//   - EuclideanConstrained: shortest 8-connected path length (steps 1 and √2)
//     from marker pixels, travelling only through mask pixels.
//   - Geodesic: breadth-first step count from marker pixels inside a mask.
//   - InfluenceZones: every pixel takes the label of its nearest seed.
//
// Why:
//
//   - Distance maps drive buffering, skeletons, watershed markers and the
//     flat-resolution stage of the dem package.
//
// Determinism:
//
//   - Every function is pure and returns a fresh grid. Row- and column-parallel
//     passes write disjoint ranges, so the output does not depend on WithWorkers.
//   - Ties in InfluenceZones go to the seed with the smaller row within a
//     column, then to the smaller column within a row.
//
// Complexity:
//
//   - SquaredEuclidean, InfluenceZones: O(cells), parallel over rows/columns.
//   - Distance4, Chamfer, Geodesic: O(cells·k), k = kernel size.
//   - EuclideanConstrained: O(cells·log cells).
//
// Errors:
//
//   - grid.ErrNot2D, grid.ErrMultiBand, grid.ErrNilGrid: input shape.
//   - grid.ErrDimensionMismatch: marker/mask shapes differ.
//   - grid.ErrConnectivity: connectivity outside {4, 8}.
//   - ErrWeightSet: unknown chamfer weight set.
//   - ErrNoSeeds: InfluenceZones without any seed.
package distance

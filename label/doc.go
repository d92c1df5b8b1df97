// SPDX-License-Identifier: MIT

// Package label assigns connected-component labels to grids.
//
// What:
//
//   - DissimToAlphaCCs: alpha-connected components (neighbours differing by
//     at most alpha), FlatZones being the alpha = 0 case.
//   - ConstrainedCCsVariance: region growing bounded by a local range, a
//     global range and the region variance, over an explicit neighbourhood.
//   - FlatZonesSeeded: flat zones grown from seed cells over an explicit
//     neighbourhood.
//   - Components, Pixels, Sizes: foreground islands, per-pixel labels and
//     label histograms.
//
// Labels are 1, 2, … in scan order of the first cell of each region, 0 is
// background, and the output type is Uint32. Multi-plane grids are
// labelled in 3-D: WithConnectivity(Conn4) means 6 neighbours across
// planes, Conn8 means 26.
//
// Neighbourhood masks are read with grid.NewNeighborhood: every non-zero
// mask cell except the origin is an offset. They are not symmetrised.
//
// Complexity:
//
//   - DissimToAlphaCCs, FlatZones: O(cells·d·α(cells)) with union-find.
//   - Region growing: O(cells·d).
//
// Errors:
//
//   - ErrAlpha, ErrConstraint: invalid thresholds.
//   - grid.ErrNeighborhood: unusable neighbourhood mask.
//   - grid.ErrConnectivity, grid.ErrMultiBand, grid.ErrDimensionMismatch.
package label

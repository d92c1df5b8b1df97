// SPDX-License-Identifier: MIT

// Package dem routes flow over digital elevation models and derives
// drainage, terrain and stream-network grids from them.
//
// What:
//
//   - Directions: FlowDirectionD8, FlowDirectionDInf, FloodDirection and
//     the flat resolvers MarkFlats, FlowDirectionFlat and
//     FlowDirectionFlatGeodesic.
//   - Accumulation: Flow, FlowNew, ContribDrainArea, ContribDrainAreaInf
//     and the network mask ContribDrainAreaStrat.
//   - Conditioning: PitRemovalCarve, PitRemovalOptimal, RegionalMinima.
//   - Terrain: SlopeD8, SlopeDInf, Slope, HillShade.
//   - Networks: Strahler, CatchmentBasinOutlet, CatchmentBasinConfluence.
//
// Conventions:
//
//   - D8 codes: 0 none, 1 W, 2 E, 3 N, 4 S, 5 NW, 6 SW, 7 NE, 8 SE; rows
//     grow southwards. Under 4-connectivity only codes 0..4 are legal.
//   - D-infinity angles are radians in [0, 2π), counter-clockwise from
//     east; DInfNone (-1) marks pixels without a downslope facet.
//   - Neighbours are visited in the order NW, N, NE, W, E, SW, S, SE and
//     the first strict optimum wins, so every result is deterministic.
//   - Elevation no-data pixels (and NaN) are absent neighbours.
//
// Complexity:
//
//   - Directions, accumulation, Strahler, catchments: O(cells).
//   - FloodDirection, PitRemovalCarve: O(cells·log cells).
//   - PitRemovalOptimal: O(cells·log cells) plus O(|D|·levels) per
//     depression D.
//   - HillShade: O(cells·ray length).
//
// Errors:
//
//   - grid.ErrNot2D, grid.ErrMultiBand, grid.ErrDimensionMismatch,
//     grid.ErrConnectivity, grid.ErrDataType: input shape and type.
//   - ErrDirectionCode, ErrCyclicFlow: malformed direction fields.
//   - ErrNoSeeds, ErrIrrelevantMinimum: pit-removal labels.
//   - ErrScale: Slope scale factors.
package dem

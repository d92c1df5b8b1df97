// SPDX-License-Identifier: MIT

// Package rasterops is a library of raster analysis engines over typed,
// multi-band, optionally 3-D grids: distance transforms, drainage and
// terrain analysis on elevation models, and connected-component labelling.
//
// 🚀 What is inside?
//
//	• grid:     the Grid type: cell types, bands, planes, no-data, neighbours,
//	             point operations, 3×3 convolution, statistics
//	• distance: squared Euclidean, city-block and chamfer transforms,
//	             geodesic and constrained distances, zones of influence
//	• dem:      D8 / D-infinity / flood directions, flat resolution, drainage
//	             accumulation, pit removal, slope, cast shadows, stream order
//	             and catchments
//	• label:    alpha-connected components, flat zones, seeded and
//	             variance-constrained region growing
//
// ✨ Conventions
//
//   - Every engine is a pure function returning a new grid; grid.Apply turns
//     it into the destructive form that replaces its input on success only.
//   - Results are deterministic: ties break in a documented priority order
//     and labels follow raster scan order.
//   - Errors are sentinels wrapped with the operation name; match them with
//     errors.Is.
//   - Long-running engines report progress through hooks (WithOnPass,
//     WithOnStage) instead of logging.
//
// Quick example:
//
//	elev, _ := grid.FromRows([][]float64{{9, 8, 7}, {8, 7, 6}, {7, 6, 5}}, grid.Uint8)
//	dir, _ := dem.FlowDirectionD8(elev)  // 8 8 4 / 8 8 4 / 2 2 0
//	area, _ := dem.Flow(dir, grid.Conn8) // 1 1 1 / 1 2 3 / 1 3 9
//
// The rasterops command (cmd/rasterops) runs every operation on generated
// grids from the shell.
package rasterops

// SPDX-License-Identifier: MIT

// Command rasterops runs the raster engines from the command line.
//
// Usage:
//
//	rasterops [--config file] [--source uniform|cone|bowl|ramp|frame] [--cols N] [--rows N]
//	          [--seed S] [--conn 4|8] [--level L] [--dump] [--in-place] [-v]
//	          distance|dem|label|pixops <operation> [operation flags]
//
// Run "rasterops <group> --help" for the operations of a group.
package main

import "github.com/katalvlaran/rasterops/internal/cli"

func main() {
	cli.Execute()
}

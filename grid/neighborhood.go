// SPDX-License-Identifier: MIT

package grid

import "fmt"

// Neighborhood is an explicit structuring element: the set of offsets taken
// from the non-zero cells of a mask grid, relative to an origin inside it.
// Unlike Connectivity it may be asymmetric or sparse, so moving the origin
// changes which cells are neighbours.
type Neighborhood struct {
	offsets []Offset
}

// NewNeighborhood reads band 0 of mask: every non-zero cell other than the
// origin (ox, oy, oz) contributes the offset (x-ox, y-oy, z-oz). Offsets
// are listed in raster order of the mask.
// Returns ErrNeighborhood if the origin is outside the mask or no offset remains.
func NewNeighborhood(mask *Grid, ox, oy, oz int) (Neighborhood, error) {
	if mask == nil {
		return Neighborhood{}, ErrNilGrid
	}
	if !mask.InBounds3(ox, oy, oz) {
		return Neighborhood{}, fmt.Errorf("NewNeighborhood: origin (%d,%d,%d): %w", ox, oy, oz, ErrNeighborhood)
	}
	var offs []Offset
	data := mask.bands[0]
	for z := 0; z < mask.planes; z++ {
		for y := 0; y < mask.rows; y++ {
			for x := 0; x < mask.cols; x++ {
				if x == ox && y == oy && z == oz {
					continue
				}
				if data[mask.Index(x, y, z)] != 0 {
					offs = append(offs, Offset{x - ox, y - oy, z - oz})
				}
			}
		}
	}
	if len(offs) == 0 {
		return Neighborhood{}, fmt.Errorf("NewNeighborhood: empty mask: %w", ErrNeighborhood)
	}
	return Neighborhood{offsets: offs}, nil
}

// ConnNeighborhood wraps a Connectivity (3-D when planes > 1) as a Neighborhood.
func ConnNeighborhood(conn Connectivity, planes int) Neighborhood {
	return Neighborhood{offsets: Neighbors3(conn, planes)}
}

// Offsets returns a copy of the neighbour offsets.
func (n Neighborhood) Offsets() []Offset {
	return append([]Offset(nil), n.offsets...)
}

// Len returns the number of neighbours.
func (n Neighborhood) Len() int { return len(n.offsets) }

// Package hex provides the axial coordinate system, directions and metrics
// of the hex grid. Cells are pointy-top hexagons laid out in offset rows.
package hex

import (
	"fmt"
	"math"
)

// Coord is a cell position in axial coordinates.
// The third cube coordinate y is derived: y = -x - z.
type Coord struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// NewCoord builds a coordinate, normalizing X when wrapSize > 0 so that the
// virtual column X + Z/2 lies in [0, wrapSize).
func NewCoord(x, z, wrapSize int) Coord {
	if wrapSize > 0 {
		ox := x + z/2
		if ox < 0 {
			x += wrapSize
		} else if ox >= wrapSize {
			x -= wrapSize
		}
	}
	return Coord{X: x, Z: z}
}

// Y returns the implicit third cube coordinate.
func (c Coord) Y() int {
	return -c.X - c.Z
}

// FromOffset converts a (column, row) offset position to axial coordinates.
func FromOffset(col, row, wrapSize int) Coord {
	return NewCoord(col-row/2, row, wrapSize)
}

// Offset returns the (column, row) of the coordinate.
func (c Coord) Offset() (col, row int) {
	return c.X + c.Z/2, c.Z
}

// FromPosition converts a grid-local world position to the coordinate of the
// cell containing it, using cube rounding.
func FromPosition(pos Vec3, wrapSize int) Coord {
	x := pos.X / (InnerRadius * 2)
	y := -x
	offset := pos.Z / (OuterRadius * 3)
	x -= offset
	y -= offset

	ix := int(math.Round(x))
	iy := int(math.Round(y))
	iz := int(math.Round(-x - y))

	if ix+iy+iz != 0 {
		dx := math.Abs(x - float64(ix))
		dy := math.Abs(y - float64(iy))
		dz := math.Abs(-x - y - float64(iz))

		if dx > dy && dx > dz {
			ix = -iy - iz
		} else if dz > dy {
			iz = -ix - iy
		}
	}
	return NewCoord(ix, iz, wrapSize)
}

// DistanceTo returns the hex distance to other, ignoring wraparound.
func (c Coord) DistanceTo(other Coord) int {
	return (abs(c.X-other.X) + abs(c.Y()-other.Y()) + abs(c.Z-other.Z)) / 2
}

// WrappedDistance returns the hex distance to other on a map that wraps
// horizontally every wrapSize columns. A wrapSize of 0 disables wrapping.
func (c Coord) WrappedDistance(other Coord, wrapSize int) int {
	d := c.DistanceTo(other)
	if wrapSize <= 0 {
		return d
	}
	if w := c.DistanceTo(Coord{X: other.X + wrapSize, Z: other.Z}); w < d {
		d = w
	}
	if w := c.DistanceTo(Coord{X: other.X - wrapSize, Z: other.Z}); w < d {
		d = w
	}
	return d
}

// Step returns the coordinate one cell away in direction d.
func (c Coord) Step(d Direction) Coord {
	o := axialOffsets[d]
	return Coord{X: c.X + o.X, Z: c.Z + o.Z}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y(), c.Z)
}

// axialOffsets holds the axial delta of each direction, indexed by Direction.
var axialOffsets = [6]Coord{
	NE: {X: 0, Z: 1},
	E:  {X: 1, Z: 0},
	SE: {X: 1, Z: -1},
	SW: {X: 0, Z: -1},
	W:  {X: -1, Z: 0},
	NW: {X: -1, Z: 1},
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

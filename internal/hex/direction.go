package hex

import (
	"fmt"
	"strings"
)

// Direction identifies one of the six edges of a cell.
type Direction uint8

const (
	NE Direction = iota
	E
	SE
	SW
	W
	NW
)

// Directions lists every direction in order, NE through NW.
var Directions = [6]Direction{NE, E, SE, SW, W, NW}

// Opposite returns the direction pointing back across the same edge.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

// Next returns the direction clockwise of d.
func (d Direction) Next() Direction {
	return (d + 1) % 6
}

// Previous returns the direction counter-clockwise of d.
func (d Direction) Previous() Direction {
	return (d + 5) % 6
}

// Next2 returns the direction two steps clockwise of d.
func (d Direction) Next2() Direction {
	return (d + 2) % 6
}

// Previous2 returns the direction two steps counter-clockwise of d.
func (d Direction) Previous2() Direction {
	return (d + 4) % 6
}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d < 6
}

func (d Direction) String() string {
	switch d {
	case NE:
		return "NE"
	case E:
		return "E"
	case SE:
		return "SE"
	case SW:
		return "SW"
	case W:
		return "W"
	case NW:
		return "NW"
	default:
		return "Invalid"
	}
}

// MarshalText encodes d by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts a direction name such as "NW", in any case.
func (d *Direction) UnmarshalText(text []byte) error {
	name := strings.ToUpper(strings.TrimSpace(string(text)))
	for _, dir := range Directions {
		if dir.String() == name {
			*d = dir
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", text)
}

// EdgeType classifies the elevation change across an edge.
type EdgeType uint8

const (
	Flat  EdgeType = iota // Same elevation
	Slope                 // One level apart
	Cliff                 // Two or more levels apart
)

// GetEdgeType classifies the edge between two elevations.
func GetEdgeType(elevation1, elevation2 int) EdgeType {
	if elevation1 == elevation2 {
		return Flat
	}
	if delta := elevation2 - elevation1; delta == 1 || delta == -1 {
		return Slope
	}
	return Cliff
}

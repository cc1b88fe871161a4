package world

import (
	"github.com/google/uuid"

	"github.com/talgya/hexmap/internal/hex"
)

// noCell marks an absent neighbour, parent or queue link.
const noCell int32 = -1

// Terrain type indices assigned by the generator and read by renderers.
const (
	TerrainSand  = 0
	TerrainGrass = 1
	TerrainMud   = 2
	TerrainStone = 3
	TerrainSnow  = 4
)

// TerrainName returns a human-readable name for a terrain type index.
func TerrainName(t int) string {
	switch t {
	case TerrainSand:
		return "Sand"
	case TerrainGrass:
		return "Grass"
	case TerrainMud:
		return "Mud"
	case TerrainStone:
		return "Stone"
	case TerrainSnow:
		return "Snow"
	default:
		return "Unknown"
	}
}

// Cell is one hex of the grid. Cells live in the grid's flat array and refer
// to their neighbours by index. Mutations that touch neighbours go through
// Grid methods so that paired river and road edges stay consistent.
type Cell struct {
	index int
	coord hex.Coord
	chunk int

	elevation  int
	waterLevel int
	terrain    int

	hasIncoming, hasOutgoing bool
	incoming, outgoing       hex.Direction
	roads                    [6]bool

	urban, farm, plant int
	special            int
	walled             bool

	neighbors [6]int32

	explorable bool
	explored   bool
	visibility int

	unit uuid.UUID

	// Transient search state, valid only for cells stamped with the
	// current search phase.
	SearchPhase     int
	Distance        int
	SearchHeuristic int

	pathFrom             int32
	nextWithSamePriority int32
}

// Index returns the cell's position in the grid's flat array.
func (c *Cell) Index() int { return c.index }

// Coord returns the cell's axial coordinates.
func (c *Cell) Coord() hex.Coord { return c.coord }

// Chunk returns the index of the rendering chunk holding the cell.
func (c *Cell) Chunk() int { return c.chunk }

func (c *Cell) Elevation() int  { return c.elevation }
func (c *Cell) WaterLevel() int { return c.waterLevel }

// IsUnderwater reports whether the water surface is above the cell.
func (c *Cell) IsUnderwater() bool { return c.waterLevel > c.elevation }

// ViewElevation is the height an observer on this cell sees from: the water
// surface for submerged cells, the ground otherwise.
func (c *Cell) ViewElevation() int {
	if c.elevation >= c.waterLevel {
		return c.elevation
	}
	return c.waterLevel
}

// TerrainType returns the biome/texture index.
func (c *Cell) TerrainType() int { return c.terrain }

func (c *Cell) UrbanLevel() int { return c.urban }
func (c *Cell) FarmLevel() int  { return c.farm }
func (c *Cell) PlantLevel() int { return c.plant }

// SpecialIndex returns the special feature index, 0 for none.
func (c *Cell) SpecialIndex() int { return c.special }

// IsSpecial reports whether the cell holds a special feature.
func (c *Cell) IsSpecial() bool { return c.special > 0 }

func (c *Cell) Walled() bool { return c.walled }

func (c *Cell) HasIncomingRiver() bool       { return c.hasIncoming }
func (c *Cell) HasOutgoingRiver() bool       { return c.hasOutgoing }
func (c *Cell) IncomingRiver() hex.Direction { return c.incoming }
func (c *Cell) OutgoingRiver() hex.Direction { return c.outgoing }
func (c *Cell) HasRiver() bool               { return c.hasIncoming || c.hasOutgoing }
func (c *Cell) HasRiverBeginOrEnd() bool     { return c.hasIncoming != c.hasOutgoing }

// HasRoadThroughEdge reports whether a road crosses edge d.
func (c *Cell) HasRoadThroughEdge(d hex.Direction) bool { return c.roads[d] }

// RiverBeginOrEndDirection returns the single river edge of a river source or mouth.
func (c *Cell) RiverBeginOrEndDirection() hex.Direction {
	if c.hasIncoming {
		return c.incoming
	}
	return c.outgoing
}

// HasRiverThroughEdge reports whether a river crosses edge d.
func (c *Cell) HasRiverThroughEdge(d hex.Direction) bool {
	return c.hasIncoming && c.incoming == d || c.hasOutgoing && c.outgoing == d
}

// HasRoads reports whether any edge carries a road.
func (c *Cell) HasRoads() bool {
	for _, r := range c.roads {
		if r {
			return true
		}
	}
	return false
}

// RoadMask returns the road edges as a 6-bit mask, bit d set for direction d.
func (c *Cell) RoadMask() uint8 {
	var mask uint8
	for i, r := range c.roads {
		if r {
			mask |= 1 << i
		}
	}
	return mask
}

// IsVisible reports whether at least one observer currently sees the cell.
func (c *Cell) IsVisible() bool { return c.visibility > 0 }

// Visibility returns the number of observers currently seeing the cell.
func (c *Cell) Visibility() int { return c.visibility }

// IsExplored reports whether the cell has been seen and lies inside the
// playable border.
func (c *Cell) IsExplored() bool { return c.explored && c.explorable }

// IsExplorable reports whether the cell lies inside the playable border.
func (c *Cell) IsExplorable() bool { return c.explorable }

// Unit returns the occupying unit, uuid.Nil when the cell is free.
func (c *Cell) Unit() uuid.UUID { return c.unit }

// SearchPriority is the queue key: distance plus heuristic.
func (c *Cell) SearchPriority() int { return c.Distance + c.SearchHeuristic }

// Position returns the grid-local world position of the cell centre.
func (c *Cell) Position() hex.Vec3 {
	col, row := c.coord.Offset()
	p := hex.Position(col, row)
	p.Y = float64(c.elevation) * hex.ElevationStep
	return p
}

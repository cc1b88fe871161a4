package world

import "github.com/talgya/hexmap/internal/hex"

// SetElevation changes a cell's elevation, dropping rivers that would flow
// uphill and roads that became too steep.
func (g *Grid) SetElevation(c *Cell, elevation int) {
	if c.elevation == elevation {
		return
	}
	view := c.ViewElevation()
	c.elevation = elevation
	if c.ViewElevation() != view {
		g.needsVisibilityReset = true
	}
	g.validateRivers(c)

	for _, d := range hex.Directions {
		if c.roads[d] && g.ElevationDifference(c, d) > hex.MaxRoadElevationDifference {
			g.setRoad(c, d, false)
		}
	}
	g.refresh(c)
}

// SetWaterLevel changes a cell's water surface level.
func (g *Grid) SetWaterLevel(c *Cell, level int) {
	if c.waterLevel == level {
		return
	}
	view := c.ViewElevation()
	c.waterLevel = level
	if c.ViewElevation() != view {
		g.needsVisibilityReset = true
	}
	g.validateRivers(c)
	g.refresh(c)
}

// SetTerrainType changes the biome/texture index.
func (g *Grid) SetTerrainType(c *Cell, terrain int) {
	if c.terrain == terrain {
		return
	}
	c.terrain = terrain
	if g.observer != nil {
		g.observer.TerrainChanged(c)
	}
}

func (g *Grid) SetUrbanLevel(c *Cell, level int) {
	if c.urban != level {
		c.urban = level
		g.refreshSelf(c)
	}
}

func (g *Grid) SetFarmLevel(c *Cell, level int) {
	if c.farm != level {
		c.farm = level
		g.refreshSelf(c)
	}
}

func (g *Grid) SetPlantLevel(c *Cell, level int) {
	if c.plant != level {
		c.plant = level
		g.refreshSelf(c)
	}
}

// SetWalled toggles the wall around a cell.
func (g *Grid) SetWalled(c *Cell, walled bool) {
	if c.walled != walled {
		c.walled = walled
		g.refresh(c)
	}
}

// SetSpecialIndex places a special feature on a cell. Cells with rivers
// cannot hold one, and placing one removes all roads of the cell.
func (g *Grid) SetSpecialIndex(c *Cell, index int) {
	if c.special == index || c.HasRiver() {
		return
	}
	c.special = index
	g.RemoveRoads(c)
	g.refreshSelf(c)
}

// AddRoad adds a road across edge d if the edge allows one. It reports
// whether the road exists afterwards.
func (g *Grid) AddRoad(c *Cell, d hex.Direction) bool {
	if c.roads[d] {
		return true
	}
	n := g.Neighbor(c, d)
	if n == nil || c.HasRiverThroughEdge(d) || c.IsSpecial() || n.IsSpecial() ||
		g.ElevationDifference(c, d) > hex.MaxRoadElevationDifference {
		return false
	}
	g.setRoad(c, d, true)
	return true
}

// RemoveRoads removes every road of c, on both sides of each edge.
func (g *Grid) RemoveRoads(c *Cell) {
	for _, d := range hex.Directions {
		if c.roads[d] {
			g.setRoad(c, d, false)
		}
	}
}

func (g *Grid) setRoad(c *Cell, d hex.Direction, state bool) {
	n := g.Neighbor(c, d)
	if n == nil {
		return
	}
	c.roads[d] = state
	n.roads[d.Opposite()] = state
	g.refreshSelf(n)
	g.refreshSelf(c)
}

// isValidRiverDestination reports whether water may flow from c into n.
func isValidRiverDestination(c, n *Cell) bool {
	return n != nil && (c.elevation >= n.elevation || c.waterLevel == n.elevation)
}

// SetOutgoingRiver makes a river leave c through edge d, replacing any
// previous outgoing river of c and incoming river of the neighbour. It
// reports whether the river was placed.
func (g *Grid) SetOutgoingRiver(c *Cell, d hex.Direction) bool {
	if c.hasOutgoing && c.outgoing == d {
		return true
	}
	n := g.Neighbor(c, d)
	if !isValidRiverDestination(c, n) {
		return false
	}

	g.RemoveOutgoingRiver(c)
	if c.hasIncoming && c.incoming == d {
		g.RemoveIncomingRiver(c)
	}
	c.hasOutgoing = true
	c.outgoing = d
	c.special = 0

	g.RemoveIncomingRiver(n)
	n.hasIncoming = true
	n.incoming = d.Opposite()
	n.special = 0

	g.setRoad(c, d, false)
	return true
}

// RemoveOutgoingRiver removes the river leaving c and its incoming end on
// the neighbour.
func (g *Grid) RemoveOutgoingRiver(c *Cell) {
	if !c.hasOutgoing {
		return
	}
	c.hasOutgoing = false
	g.refreshSelf(c)

	n := g.Neighbor(c, c.outgoing)
	n.hasIncoming = false
	g.refreshSelf(n)
}

// RemoveIncomingRiver removes the river entering c and its outgoing end on
// the neighbour.
func (g *Grid) RemoveIncomingRiver(c *Cell) {
	if !c.hasIncoming {
		return
	}
	c.hasIncoming = false
	g.refreshSelf(c)

	n := g.Neighbor(c, c.incoming)
	n.hasOutgoing = false
	g.refreshSelf(n)
}

// RemoveRiver removes both river ends of c.
func (g *Grid) RemoveRiver(c *Cell) {
	g.RemoveOutgoingRiver(c)
	g.RemoveIncomingRiver(c)
}

func (g *Grid) validateRivers(c *Cell) {
	if c.hasOutgoing && !isValidRiverDestination(c, g.Neighbor(c, c.outgoing)) {
		g.RemoveOutgoingRiver(c)
	}
	if c.hasIncoming && !isValidRiverDestination(g.Neighbor(c, c.incoming), c) {
		g.RemoveIncomingRiver(c)
	}
}

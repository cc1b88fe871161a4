package world

import (
	"github.com/google/uuid"

	"github.com/talgya/hexmap/internal/hex"
)

// Move costs per edge.
const (
	roadMoveCost  = 1
	flatMoveCost  = 5
	slopeMoveCost = 10
)

// MoveCost returns the cost of stepping from one cell to its neighbour to
// across edge d, or -1 when the edge is impassable.
func (g *Grid) MoveCost(from, to *Cell, d hex.Direction) int {
	edge := hex.GetEdgeType(from.elevation, to.elevation)
	if edge == hex.Cliff {
		return -1
	}
	if from.walled != to.walled {
		return -1
	}
	if from.roads[d] {
		return roadMoveCost
	}
	cost := flatMoveCost
	if edge == hex.Slope {
		cost = slopeMoveCost
	}
	return cost + to.urban + to.farm + to.plant
}

// IsValidDestination reports whether a unit may enter c: it must be
// explored, dry and free.
func (g *Grid) IsValidDestination(c *Cell) bool {
	return c.IsExplored() && !c.IsUnderwater() && c.unit == uuid.Nil
}

// FindPath searches for the cheapest route from one cell to another for a
// unit moving speed points per turn. The result replaces the current path.
func (g *Grid) FindPath(from, to *Cell, speed int) bool {
	g.ClearPath()
	g.pathFromCell = int32(from.index)
	g.pathToCell = int32(to.index)
	g.hasPath = g.search(from, to, speed)
	return g.hasPath
}

func (g *Grid) search(from, to *Cell, speed int) bool {
	if speed <= 0 {
		return false
	}
	g.searchPhase += 2
	g.frontier.Clear()

	from.SearchPhase = g.searchPhase
	from.Distance = 0
	from.SearchHeuristic = 0
	from.pathFrom = noCell
	g.frontier.Enqueue(from)

	for g.frontier.Len() > 0 {
		current := g.frontier.Dequeue()
		current.SearchPhase++

		if current == to {
			return true
		}

		currentTurn := (current.Distance - 1) / speed
		for _, d := range hex.Directions {
			neighbor := g.Neighbor(current, d)
			if neighbor == nil || neighbor.SearchPhase > g.searchPhase {
				continue
			}
			if !g.IsValidDestination(neighbor) {
				continue
			}
			moveCost := g.MoveCost(current, neighbor, d)
			if moveCost < 0 {
				continue
			}

			// Movement left over at the end of a turn is lost.
			distance := current.Distance + moveCost
			turn := (distance - 1) / speed
			if turn > currentTurn {
				distance = turn*speed + moveCost
			}

			if neighbor.SearchPhase < g.searchPhase {
				neighbor.SearchPhase = g.searchPhase
				neighbor.Distance = distance
				neighbor.pathFrom = int32(current.index)
				neighbor.SearchHeuristic = neighbor.coord.WrappedDistance(to.coord, g.wrapSize)
				g.frontier.Enqueue(neighbor)
			} else if distance < neighbor.Distance {
				oldPriority := neighbor.SearchPriority()
				neighbor.Distance = distance
				neighbor.pathFrom = int32(current.index)
				g.frontier.Change(neighbor, oldPriority)
			}
		}
	}
	return false
}

// HasPath reports whether the last FindPath succeeded.
func (g *Grid) HasPath() bool { return g.hasPath }

// Path returns the cells of the current path from start to destination, or
// nil when there is none.
func (g *Grid) Path() []*Cell {
	if !g.hasPath {
		return nil
	}
	var path []*Cell
	for i := g.pathToCell; i != g.pathFromCell; i = g.cells[i].pathFrom {
		path = append(path, &g.cells[i])
	}
	path = append(path, &g.cells[g.pathFromCell])
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathCost returns the total movement cost of the current path, -1 if none.
func (g *Grid) PathCost() int {
	if !g.hasPath {
		return -1
	}
	return g.cells[g.pathToCell].Distance
}

// Turn returns the turn in which a cell on the current path is reached by a
// unit moving speed points per turn.
func Turn(c *Cell, speed int) int {
	return (c.Distance - 1) / speed
}

// ClearPath forgets the current path.
func (g *Grid) ClearPath() {
	g.hasPath = false
	g.pathFromCell = noCell
	g.pathToCell = noCell
}

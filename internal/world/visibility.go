package world

import "github.com/talgya/hexmap/internal/hex"

// VisibleCells returns the cells an observer on from can see with the given
// vision range. The range grows with the observer's view elevation and each
// candidate must fit its own view elevation inside it. The step distance to
// a cell may not exceed its straight hex distance from the observer.
func (g *Grid) VisibleCells(from *Cell, visionRange int) []*Cell {
	visible := make([]*Cell, 0, 32)

	g.searchPhase += 2
	g.frontier.Clear()

	visionRange += from.ViewElevation()
	from.SearchPhase = g.searchPhase
	from.Distance = 0
	from.SearchHeuristic = 0
	g.frontier.Enqueue(from)
	origin := from.coord

	for g.frontier.Len() > 0 {
		current := g.frontier.Dequeue()
		current.SearchPhase++
		visible = append(visible, current)

		for _, d := range hex.Directions {
			neighbor := g.Neighbor(current, d)
			if neighbor == nil || neighbor.SearchPhase > g.searchPhase || !neighbor.explorable {
				continue
			}

			distance := current.Distance + 1
			if distance+neighbor.ViewElevation() > visionRange ||
				distance > origin.WrappedDistance(neighbor.coord, g.wrapSize) {
				continue
			}

			if neighbor.SearchPhase < g.searchPhase {
				neighbor.SearchPhase = g.searchPhase
				neighbor.Distance = distance
				neighbor.SearchHeuristic = 0
				g.frontier.Enqueue(neighbor)
			} else if distance < neighbor.Distance {
				oldPriority := neighbor.SearchPriority()
				neighbor.Distance = distance
				g.frontier.Change(neighbor, oldPriority)
			}
		}
	}
	return visible
}

// IncreaseVisibility adds one observer with the given range on from. Every
// cell it sees becomes explored.
func (g *Grid) IncreaseVisibility(from *Cell, visionRange int) {
	for _, c := range g.VisibleCells(from, visionRange) {
		c.visibility++
		if c.visibility == 1 || !c.explored {
			c.explored = true
			g.notifyVisibility(c)
		}
	}
}

// DecreaseVisibility removes one observer with the given range from from.
func (g *Grid) DecreaseVisibility(from *Cell, visionRange int) {
	for _, c := range g.VisibleCells(from, visionRange) {
		if c.visibility == 0 {
			continue
		}
		c.visibility--
		if c.visibility == 0 {
			g.notifyVisibility(c)
		}
	}
}

// ResetVisibility drops every visibility counter to zero. Observers must be
// re-applied afterwards.
func (g *Grid) ResetVisibility() {
	for i := range g.cells {
		c := &g.cells[i]
		if c.visibility > 0 {
			c.visibility = 0
			g.notifyVisibility(c)
		}
	}
	g.needsVisibilityReset = false
}

// SetExplored marks a cell explored or unexplored.
func (g *Grid) SetExplored(c *Cell, explored bool) {
	if c.explored != explored {
		c.explored = explored
		g.notifyVisibility(c)
	}
}

func (g *Grid) notifyVisibility(c *Cell) {
	if g.observer != nil {
		g.observer.VisibilityChanged(c)
	}
}

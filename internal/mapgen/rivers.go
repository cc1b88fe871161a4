package mapgen

import (
	"log/slog"
	"math"

	"github.com/talgya/hexmap/internal/hex"
	"github.com/talgya/hexmap/internal/world"
)

func (g *Generator) createRivers() {
	var origins []*world.Cell
	for i := 0; i < g.cellCount; i++ {
		cell := g.grid.Cell(i)
		if cell.IsUnderwater() {
			continue
		}
		weight := g.climate[i].moisture * float64(cell.Elevation()-g.cfg.WaterLevel) /
			float64(g.cfg.ElevationMaximum-g.cfg.WaterLevel)
		// Duplicate entries bias the uniform pick toward wet highlands.
		if weight > 0.75 {
			origins = append(origins, cell, cell)
		}
		if weight > 0.5 {
			origins = append(origins, cell)
		}
		if weight > 0.25 {
			origins = append(origins, cell)
		}
	}

	budget := int(math.Round(float64(g.landCells) * float64(g.cfg.RiverPercentage) * 0.01))
	g.result.RiverBudget = budget
	for budget > 0 && len(origins) > 0 {
		i := g.rng.Intn(len(origins))
		last := len(origins) - 1
		origin := origins[i]
		origins[i] = origins[last]
		origins = origins[:last]

		if g.isValidRiverOrigin(origin) {
			if length := g.createRiver(origin); length > 0 {
				budget -= length
				g.result.Rivers++
			}
		}
	}

	if budget > 0 {
		slog.Warn("river budget not used up", "remaining", budget, "budget", g.result.RiverBudget)
		g.result.RiverShortfall = budget
	}
}

// isValidRiverOrigin rejects cells that touch water or an existing river.
func (g *Generator) isValidRiverOrigin(origin *world.Cell) bool {
	if origin.HasRiver() {
		return false
	}
	for _, d := range hex.Directions {
		if n := g.grid.Neighbor(origin, d); n != nil && (n.HasRiver() || n.IsUnderwater()) {
			return false
		}
	}
	return true
}

// createRiver traces a river downhill from origin until it reaches water,
// joins another river or ends in a lake. It returns the river's length, 0
// when origin has nowhere to flow.
func (g *Generator) createRiver(origin *world.Cell) int {
	length := 1
	cell := origin
	direction := hex.NE

	for !cell.IsUnderwater() {
		flow := g.flowDirections(cell, origin, direction, length)
		if flow.merge {
			g.grid.SetOutgoingRiver(cell, flow.mergeDirection)
			return length
		}

		if len(flow.choices) == 0 {
			if length == 1 {
				return 0
			}
			if flow.minNeighborElevation >= cell.Elevation() {
				g.grid.SetWaterLevel(cell, flow.minNeighborElevation)
				if flow.minNeighborElevation == cell.Elevation() {
					g.grid.SetElevation(cell, flow.minNeighborElevation-1)
				}
				g.result.Lakes++
			}
			break
		}

		direction = flow.choices[g.rng.Intn(len(flow.choices))]
		g.grid.SetOutgoingRiver(cell, direction)
		length++

		if flow.minNeighborElevation >= cell.Elevation() && g.rng.Float64() < g.cfg.ExtraLakeProbability {
			g.grid.SetWaterLevel(cell, cell.Elevation())
			g.grid.SetElevation(cell, cell.Elevation()-1)
			g.result.Lakes++
		}
		cell = g.grid.Neighbor(cell, direction)
	}
	return length
}

// riverFlow describes where a river on a cell may continue.
type riverFlow struct {
	// choices holds candidate directions, repeated by preference.
	choices []hex.Direction

	merge          bool
	mergeDirection hex.Direction

	minNeighborElevation int
}

// flowDirections weighs the neighbours of cell as the next river step.
// Downhill edges count four times and level edges twice, except that after
// the first step the two edges sharp-turning back from the previous
// direction count only once. A neighbour already carrying an outgoing river
// ends the search with a merge.
func (g *Generator) flowDirections(cell, origin *world.Cell, direction hex.Direction, length int) riverFlow {
	flow := riverFlow{
		choices:              make([]hex.Direction, 0, 24),
		minNeighborElevation: math.MaxInt,
	}
	for _, d := range hex.Directions {
		neighbor := g.grid.Neighbor(cell, d)
		if neighbor == nil {
			continue
		}
		if neighbor.Elevation() < flow.minNeighborElevation {
			flow.minNeighborElevation = neighbor.Elevation()
		}
		if neighbor == origin || neighbor.HasIncomingRiver() {
			continue
		}

		delta := neighbor.Elevation() - cell.Elevation()
		if delta > 0 {
			continue
		}
		if neighbor.HasOutgoingRiver() {
			flow.merge = true
			flow.mergeDirection = d
			return flow
		}

		if delta < 0 {
			flow.choices = append(flow.choices, d, d, d)
		}
		if length == 1 || (d != direction.Next2() && d != direction.Previous2()) {
			flow.choices = append(flow.choices, d)
		}
		flow.choices = append(flow.choices, d)
	}
	return flow
}

package mapgen

import (
	"log/slog"
	"math"

	"github.com/talgya/hexmap/internal/hex"
	"github.com/talgya/hexmap/internal/world"
)

// landGuard bounds the number of chunk rounds spent on the land budget.
const landGuard = 10000

func (g *Generator) createLand() {
	budget := int(math.Round(float64(g.cellCount) * float64(g.cfg.LandPercentage) * 0.01))
	g.landCells = budget

	for guard := 0; guard < landGuard; guard++ {
		sink := g.rng.Float64() < g.cfg.SinkProbability
		for _, r := range g.regions {
			chunkSize := g.randomRange(g.cfg.ChunkSizeMin, g.cfg.ChunkSizeMax-1)
			if sink {
				budget = g.sinkTerrain(chunkSize, budget, r)
				continue
			}
			budget = g.raiseTerrain(chunkSize, budget, r)
			if budget == 0 {
				g.result.LandCells = g.landCells
				return
			}
		}
	}

	if budget > 0 {
		slog.Warn("land budget not used up", "remaining", budget, "guard", landGuard)
		g.landCells -= budget
		g.result.LandShortfall = budget
	}
	g.result.LandCells = g.landCells
}

// raiseTerrain lifts a roughly round chunk of up to chunkSize cells around a
// random cell of r and returns the land budget left. It stops as soon as
// the budget runs out.
func (g *Generator) raiseTerrain(chunkSize, budget int, r region) int {
	first := g.beginChunk(r)
	center := first.Coord()

	rise := 1
	if g.rng.Float64() < g.cfg.HighRiseProbability {
		rise = 2
	}
	for size := 0; size < chunkSize && g.frontier.Len() > 0; {
		current := g.frontier.Dequeue()
		original := current.Elevation()
		elevation := original + rise
		if elevation > g.cfg.ElevationMaximum {
			continue
		}
		g.grid.SetElevation(current, elevation)

		if original < g.cfg.WaterLevel && elevation >= g.cfg.WaterLevel {
			budget--
			if budget == 0 {
				break
			}
		}
		size++
		g.growChunk(current, center)
	}

	g.frontier.Clear()
	return budget
}

// sinkTerrain lowers a chunk like raiseTerrain and returns the land budget,
// which grows for every cell that drops below water.
func (g *Generator) sinkTerrain(chunkSize, budget int, r region) int {
	first := g.beginChunk(r)
	center := first.Coord()

	sink := 1
	if g.rng.Float64() < g.cfg.HighRiseProbability {
		sink = 2
	}
	for size := 0; size < chunkSize && g.frontier.Len() > 0; {
		current := g.frontier.Dequeue()
		original := current.Elevation()
		elevation := original - sink
		if elevation < g.cfg.ElevationMinimum {
			continue
		}
		g.grid.SetElevation(current, elevation)

		if original >= g.cfg.WaterLevel && elevation < g.cfg.WaterLevel {
			budget++
		}
		size++
		g.growChunk(current, center)
	}

	g.frontier.Clear()
	return budget
}

// beginChunk starts a new flood phase from a random cell of r.
func (g *Generator) beginChunk(r region) *world.Cell {
	g.phase++
	first := g.randomCell(r)
	first.SearchPhase = g.phase
	first.Distance = 0
	first.SearchHeuristic = 0
	g.frontier.Enqueue(first)
	return first
}

// growChunk queues the unvisited neighbours of current, ordered by distance
// to the chunk centre plus a random jitter.
func (g *Generator) growChunk(current *world.Cell, center hex.Coord) {
	for _, d := range hex.Directions {
		neighbor := g.grid.Neighbor(current, d)
		if neighbor == nil || neighbor.SearchPhase >= g.phase {
			continue
		}
		neighbor.SearchPhase = g.phase
		neighbor.Distance = neighbor.Coord().WrappedDistance(center, g.grid.WrapSize())
		neighbor.SearchHeuristic = 0
		if g.rng.Float64() < g.cfg.JitterProbability {
			neighbor.SearchHeuristic = 1
		}
		g.frontier.Enqueue(neighbor)
	}
}

package mapgen

import "github.com/talgya/hexmap/internal/world"

// Stats summarises the cells of a generated grid.
type Stats struct {
	Land       int
	Underwater int
	RiverCells int
	Terrain    map[int]int // Land cells per terrain type
	Highest    int
	Lowest     int
}

// TerrainCounts tallies the grid's current cells.
func TerrainCounts(g *world.Grid) Stats {
	s := Stats{Terrain: make(map[int]int)}
	for i := 0; i < g.Len(); i++ {
		c := g.Cell(i)
		if i == 0 || c.Elevation() > s.Highest {
			s.Highest = c.Elevation()
		}
		if i == 0 || c.Elevation() < s.Lowest {
			s.Lowest = c.Elevation()
		}
		if c.HasRiver() {
			s.RiverCells++
		}
		if c.IsUnderwater() {
			s.Underwater++
			continue
		}
		s.Land++
		s.Terrain[c.TerrainType()]++
	}
	return s
}

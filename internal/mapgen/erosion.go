package mapgen

import (
	"github.com/talgya/hexmap/internal/hex"
	"github.com/talgya/hexmap/internal/world"
)

// cellSet is an unordered set of grid cells with O(1) add, remove and
// membership, and random access for sampling.
type cellSet struct {
	cells []*world.Cell
	pos   []int32 // Index into cells per grid index, -1 when absent
}

func newCellSet(n int) *cellSet {
	s := &cellSet{pos: make([]int32, n)}
	for i := range s.pos {
		s.pos[i] = -1
	}
	return s
}

func (s *cellSet) Len() int { return len(s.cells) }

func (s *cellSet) Contains(c *world.Cell) bool { return s.pos[c.Index()] >= 0 }

func (s *cellSet) Add(c *world.Cell) {
	if s.Contains(c) {
		return
	}
	s.pos[c.Index()] = int32(len(s.cells))
	s.cells = append(s.cells, c)
}

// Remove swaps the last element into c's slot.
func (s *cellSet) Remove(c *world.Cell) {
	i := s.pos[c.Index()]
	if i < 0 {
		return
	}
	last := s.cells[len(s.cells)-1]
	s.cells[i] = last
	s.pos[last.Index()] = i
	s.cells = s.cells[:len(s.cells)-1]
	s.pos[c.Index()] = -1
}

func (g *Generator) erodeLand() {
	erodible := newCellSet(g.cellCount)
	for i := 0; i < g.cellCount; i++ {
		if c := g.grid.Cell(i); g.isErodible(c) {
			erodible.Add(c)
		}
	}
	g.result.ErodibleBefore = erodible.Len()

	target := erodible.Len() * (100 - g.cfg.ErosionPercentage) / 100
	for erodible.Len() > target {
		cell := erodible.cells[g.rng.Intn(erodible.Len())]
		low := g.erosionTarget(cell)

		g.grid.SetElevation(cell, cell.Elevation()-1)
		g.grid.SetElevation(low, low.Elevation()+1)

		if !g.isErodible(cell) {
			erodible.Remove(cell)
		}
		for _, d := range hex.Directions {
			neighbor := g.grid.Neighbor(cell, d)
			if neighbor != nil && neighbor.Elevation() == cell.Elevation()+2 {
				erodible.Add(neighbor)
			}
		}

		if g.isErodible(low) {
			erodible.Add(low)
		}
		for _, d := range hex.Directions {
			neighbor := g.grid.Neighbor(low, d)
			if neighbor != nil && neighbor != cell &&
				neighbor.Elevation() == low.Elevation()+1 && !g.isErodible(neighbor) {
				erodible.Remove(neighbor)
			}
		}
	}
	g.result.ErodibleAfter = erodible.Len()
}

// isErodible reports whether some neighbour sits two or more levels below c.
func (g *Generator) isErodible(c *world.Cell) bool {
	limit := c.Elevation() - 2
	for _, d := range hex.Directions {
		if n := g.grid.Neighbor(c, d); n != nil && n.Elevation() <= limit {
			return true
		}
	}
	return false
}

// erosionTarget picks one of the low neighbours that make c erodible.
func (g *Generator) erosionTarget(c *world.Cell) *world.Cell {
	limit := c.Elevation() - 2
	var candidates [6]*world.Cell
	n := 0
	for _, d := range hex.Directions {
		if neighbor := g.grid.Neighbor(c, d); neighbor != nil && neighbor.Elevation() <= limit {
			candidates[n] = neighbor
			n++
		}
	}
	return candidates[g.rng.Intn(n)]
}

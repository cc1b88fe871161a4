// Package world holds the hex cell grid: cell state, neighbour topology,
// river and road editing, and the searches run over it.
package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/hexmap/internal/hex"
)

// ErrInvalidMapSize is returned by CreateMap for non-positive dimensions or
// dimensions that are not a multiple of the chunk size.
var ErrInvalidMapSize = errors.New("invalid map size")

// Observer receives synchronous notifications about per-cell data that a
// renderer mirrors outside the grid.
type Observer interface {
	// Initialize is called whenever the grid is (re)created.
	Initialize(cellCountX, cellCountZ int)
	// TerrainChanged fires when a cell's terrain type index changes.
	TerrainChanged(c *Cell)
	// VisibilityChanged fires when a cell becomes visible, hidden or explored.
	VisibilityChanged(c *Cell)
}

// Grid owns every cell of the map and their adjacency.
type Grid struct {
	cellCountX, cellCountZ   int
	chunkCountX, chunkCountZ int
	wrapSize                 int
	origin                   hex.Vec3

	cells []Cell

	dirty      []bool
	dirtyCount int
	observer   Observer
	onCreate   []func()

	needsVisibilityReset bool

	frontier    *Queue
	searchPhase int

	hasPath      bool
	pathFromCell int32
	pathToCell   int32
}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithObserver registers an observer for terrain and visibility changes.
func WithObserver(o Observer) Option {
	return func(g *Grid) { g.observer = o }
}

// WithOrigin places the grid's local origin at the given world position.
func WithOrigin(origin hex.Vec3) Option {
	return func(g *Grid) { g.origin = origin }
}

// New returns an empty grid. Call CreateMap before use.
func New(opts ...Option) *Grid {
	g := &Grid{
		pathFromCell: noCell,
		pathToCell:   noCell,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.frontier = NewQueue(g)
	return g
}

// CreateMap discards the current cells and builds a fresh x by z map.
// When wrap is set the map wraps around horizontally.
func (g *Grid) CreateMap(x, z int, wrap bool) error {
	if err := ValidateMapSize(x, z); err != nil {
		slog.Warn("unsupported map size",
			"width", x, "height", z,
			"chunk_x", hex.ChunkSizeX, "chunk_z", hex.ChunkSizeZ)
		return err
	}

	for _, fn := range g.onCreate {
		fn()
	}
	g.ClearPath()
	g.cellCountX = x
	g.cellCountZ = z
	g.wrapSize = 0
	if wrap {
		g.wrapSize = x
	}
	g.chunkCountX = x / hex.ChunkSizeX
	g.chunkCountZ = z / hex.ChunkSizeZ
	g.dirty = make([]bool, g.chunkCountX*g.chunkCountZ)
	g.dirtyCount = 0
	g.needsVisibilityReset = false
	g.searchPhase = 0
	g.frontier.Clear()

	if g.observer != nil {
		g.observer.Initialize(x, z)
	}

	g.cells = make([]Cell, x*z)
	for row, i := 0, 0; row < z; row++ {
		for col := 0; col < x; col++ {
			g.createCell(col, row, i)
			i++
		}
	}
	for i := range g.dirty {
		g.markChunk(i)
	}

	slog.Debug("map created", "width", x, "height", z, "wrap", wrap, "chunks", len(g.dirty))
	return nil
}

// ValidateMapSize reports whether CreateMap accepts an x by z map.
func ValidateMapSize(x, z int) error {
	if x <= 0 || x%hex.ChunkSizeX != 0 || z <= 0 || z%hex.ChunkSizeZ != 0 {
		return fmt.Errorf("%w: %dx%d must be positive multiples of %dx%d",
			ErrInvalidMapSize, x, z, hex.ChunkSizeX, hex.ChunkSizeZ)
	}
	return nil
}

// OnCreateMap registers fn to run at the start of every successful
// CreateMap, while the old cells are still in place. Anything holding
// cell pointers must drop them there.
func (g *Grid) OnCreateMap(fn func()) {
	g.onCreate = append(g.onCreate, fn)
}

func (g *Grid) createCell(col, row, i int) {
	c := &g.cells[i]
	c.index = i
	c.coord = hex.FromOffset(col, row, g.wrapSize)
	c.chunk = col/hex.ChunkSizeX + (row/hex.ChunkSizeZ)*g.chunkCountX
	c.neighbors = [6]int32{noCell, noCell, noCell, noCell, noCell, noCell}
	c.pathFrom = noCell
	c.nextWithSamePriority = noCell

	if g.wrapSize > 0 {
		c.explorable = row > 0 && row < g.cellCountZ-1
	} else {
		c.explorable = col > 0 && row > 0 && col < g.cellCountX-1 && row < g.cellCountZ-1
	}

	if col > 0 {
		g.setNeighbor(i, hex.W, i-1)
		if g.wrapSize > 0 && col == g.cellCountX-1 {
			g.setNeighbor(i, hex.E, i-col)
		}
	}
	if row > 0 {
		if row&1 == 0 {
			g.setNeighbor(i, hex.SE, i-g.cellCountX)
			if col > 0 {
				g.setNeighbor(i, hex.SW, i-g.cellCountX-1)
			} else if g.wrapSize > 0 {
				g.setNeighbor(i, hex.SW, i-1)
			}
		} else {
			g.setNeighbor(i, hex.SW, i-g.cellCountX)
			if col < g.cellCountX-1 {
				g.setNeighbor(i, hex.SE, i-g.cellCountX+1)
			} else if g.wrapSize > 0 {
				g.setNeighbor(i, hex.SE, i-g.cellCountX*2+1)
			}
		}
	}
}

// setNeighbor links cell i to cell j in direction d and j back to i.
func (g *Grid) setNeighbor(i int, d hex.Direction, j int) {
	g.cells[i].neighbors[d] = int32(j)
	g.cells[j].neighbors[d.Opposite()] = int32(i)
}

// CellCountX returns the map width in cells.
func (g *Grid) CellCountX() int { return g.cellCountX }

// CellCountZ returns the map height in cells.
func (g *Grid) CellCountZ() int { return g.cellCountZ }

// ChunkCount returns the number of rendering chunks along each axis.
func (g *Grid) ChunkCount() (x, z int) { return g.chunkCountX, g.chunkCountZ }

// WrapSize returns the wrap width, 0 when the map does not wrap.
func (g *Grid) WrapSize() int { return g.wrapSize }

// Wrapping reports whether the map wraps horizontally.
func (g *Grid) Wrapping() bool { return g.wrapSize > 0 }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Cell returns the cell at flat index i.
func (g *Grid) Cell(i int) *Cell {
	return &g.cells[i]
}

// CellAtOffset returns the cell at the given column and row, or nil.
func (g *Grid) CellAtOffset(col, row int) *Cell {
	if col < 0 || col >= g.cellCountX || row < 0 || row >= g.cellCountZ {
		return nil
	}
	return &g.cells[col+row*g.cellCountX]
}

// CellAt returns the cell with the given coordinates, or nil when outside the map.
func (g *Grid) CellAt(coord hex.Coord) *Cell {
	if g.wrapSize > 0 {
		coord = hex.NewCoord(coord.X, coord.Z, g.wrapSize)
	}
	col, row := coord.Offset()
	return g.CellAtOffset(col, row)
}

// CellAtPosition returns the cell under a world position, or nil.
func (g *Grid) CellAtPosition(pos hex.Vec3) *Cell {
	return g.CellAt(hex.FromPosition(pos.Sub(g.origin), g.wrapSize))
}

// Neighbor returns the adjacent cell in direction d, or nil at the map edge.
func (g *Grid) Neighbor(c *Cell, d hex.Direction) *Cell {
	i := c.neighbors[d]
	if i == noCell {
		return nil
	}
	return &g.cells[i]
}

// EdgeType classifies the edge between c and its neighbour in direction d.
// It panics if there is no neighbour.
func (g *Grid) EdgeType(c *Cell, d hex.Direction) hex.EdgeType {
	return hex.GetEdgeType(c.elevation, g.Neighbor(c, d).elevation)
}

// ElevationDifference returns the absolute elevation change across edge d.
func (g *Grid) ElevationDifference(c *Cell, d hex.Direction) int {
	diff := c.elevation - g.Neighbor(c, d).elevation
	if diff < 0 {
		return -diff
	}
	return diff
}

// Occupy records unit id as standing on c.
func (g *Grid) Occupy(c *Cell, id uuid.UUID) {
	c.unit = id
}

// Vacate clears the unit standing on c.
func (g *Grid) Vacate(c *Cell) {
	c.unit = uuid.Nil
}

// ResetSearchPhases zeroes every cell's search phase so a new search
// counter starting from zero sees all cells as unvisited.
func (g *Grid) ResetSearchPhases() {
	for i := range g.cells {
		g.cells[i].SearchPhase = 0
	}
	g.searchPhase = 0
}

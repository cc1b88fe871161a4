// Package unit places movable units on a grid. Units occupy one cell each
// and reveal the cells around them through the grid's visibility counters.
package unit

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/hexmap/internal/hex"
	"github.com/talgya/hexmap/internal/world"
)

// Default movement and sight of a unit.
const (
	DefaultSpeed       = 24
	DefaultVisionRange = 3
)

var (
	ErrCellOccupied = errors.New("cell already occupied")
	ErrNoCell       = errors.New("no cell")
	ErrUnknownUnit  = errors.New("unit not in roster")
	ErrInvalidPath  = errors.New("invalid path")
)

// Unit is a single piece on the map.
type Unit struct {
	ID          uuid.UUID
	Speed       int     // Movement points per turn
	VisionRange int     // Cells seen from flat ground
	Orientation float64 // Facing in degrees, clockwise from +Z

	location *world.Cell
}

// Location returns the cell the unit stands on.
func (u *Unit) Location() *world.Cell { return u.location }

// Roster tracks every unit on a grid and keeps cell occupancy and
// visibility in step with their positions.
type Roster struct {
	grid  *world.Grid
	units []*Unit
}

// NewRoster returns an empty roster for g. The roster empties itself
// whenever the grid's map is recreated.
func NewRoster(g *world.Grid) *Roster {
	r := &Roster{grid: g}
	g.OnCreateMap(r.Clear)
	return r
}

// Units returns the units in the order they were added.
func (r *Roster) Units() []*Unit { return r.units }

// Len returns the number of units.
func (r *Roster) Len() int { return len(r.units) }

// Add places a new unit with default speed and vision on cell.
func (r *Roster) Add(cell *world.Cell, orientation float64) (*Unit, error) {
	if cell == nil {
		return nil, ErrNoCell
	}
	if cell.Unit() != uuid.Nil {
		return nil, fmt.Errorf("add unit at %v: %w", cell.Coord(), ErrCellOccupied)
	}
	u := &Unit{
		ID:          uuid.New(),
		Speed:       DefaultSpeed,
		VisionRange: DefaultVisionRange,
		Orientation: orientation,
	}
	r.setLocation(u, cell)
	r.units = append(r.units, u)
	slog.Debug("unit added", "unit", u.ID, "cell", cell.Coord())
	return u, nil
}

// Remove takes u off the map.
func (r *Roster) Remove(u *Unit) error {
	i := r.index(u)
	if i < 0 {
		return ErrUnknownUnit
	}
	r.setLocation(u, nil)
	r.units = append(r.units[:i], r.units[i+1:]...)
	return nil
}

// Clear removes every unit.
func (r *Roster) Clear() {
	for _, u := range r.units {
		r.setLocation(u, nil)
	}
	r.units = r.units[:0]
}

// IsValidDestination reports whether u may end a move on c.
func (r *Roster) IsValidDestination(c *world.Cell) bool {
	return r.grid.IsValidDestination(c)
}

// MoveCost returns the cost for a unit to cross edge d from one cell to the
// next, -1 when impassable.
func (r *Roster) MoveCost(from, to *world.Cell, d hex.Direction) int {
	return r.grid.MoveCost(from, to, d)
}

// Travel moves u along path, which must start at its location and consist
// of adjacent cells. Vision is withdrawn from the start and granted at the
// destination, and the unit turns to face along the final step.
func (r *Roster) Travel(u *Unit, path []*world.Cell) error {
	if r.index(u) < 0 {
		return ErrUnknownUnit
	}
	if len(path) < 2 || path[0] != u.location {
		return fmt.Errorf("%w: must start at the unit and take a step", ErrInvalidPath)
	}
	for i := 1; i < len(path); i++ {
		if !adjacent(r.grid, path[i-1], path[i]) {
			return fmt.Errorf("%w: %v is not next to %v", ErrInvalidPath, path[i].Coord(), path[i-1].Coord())
		}
	}
	dest := path[len(path)-1]
	if !r.IsValidDestination(dest) {
		return fmt.Errorf("%w: destination %v", ErrInvalidPath, dest.Coord())
	}

	u.Orientation = facing(r.grid, path[len(path)-2], dest)
	r.setLocation(u, dest)
	return nil
}

// ResetVisibility re-applies every unit's vision. Call it after
// Grid.ResetVisibility.
func (r *Roster) ResetVisibility() {
	for _, u := range r.units {
		r.grid.IncreaseVisibility(u.location, u.VisionRange)
	}
}

func (r *Roster) setLocation(u *Unit, cell *world.Cell) {
	if u.location != nil {
		r.grid.DecreaseVisibility(u.location, u.VisionRange)
		r.grid.Vacate(u.location)
	}
	u.location = cell
	if cell != nil {
		r.grid.Occupy(cell, u.ID)
		r.grid.IncreaseVisibility(cell, u.VisionRange)
	}
}

func (r *Roster) index(u *Unit) int {
	for i, x := range r.units {
		if x == u {
			return i
		}
	}
	return -1
}

func adjacent(g *world.Grid, a, b *world.Cell) bool {
	for _, d := range hex.Directions {
		if g.Neighbor(a, d) == b {
			return true
		}
	}
	return false
}

// facing returns the heading in degrees from one cell toward a neighbour,
// taking the short way across a wrap seam.
func facing(g *world.Grid, from, to *world.Cell) float64 {
	delta := to.Position().Sub(from.Position())
	if g.Wrapping() {
		width := float64(g.WrapSize()) * 2 * hex.InnerRadius
		switch {
		case delta.X > width/2:
			delta.X -= width
		case delta.X < -width/2:
			delta.X += width
		}
	}
	deg := math.Atan2(delta.X, delta.Z) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

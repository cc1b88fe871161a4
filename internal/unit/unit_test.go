package unit

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/hexmap/internal/hex"
	"github.com/talgya/hexmap/internal/world"
)

func newGrid(t *testing.T, wrap bool) *world.Grid {
	t.Helper()
	g := world.New()
	if err := g.CreateMap(20, 10, wrap); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < g.Len(); i++ {
		g.SetExplored(g.Cell(i), true)
	}
	return g
}

func TestAddOccupiesAndReveals(t *testing.T) {
	g := newGrid(t, false)
	r := NewRoster(g)
	cell := g.CellAtOffset(5, 5)

	u, err := r.Add(cell, 90)
	if err != nil {
		t.Fatal(err)
	}
	if u.ID == uuid.Nil || u.Speed != DefaultSpeed || u.VisionRange != DefaultVisionRange {
		t.Errorf("unit = %+v", u)
	}
	if cell.Unit() != u.ID || u.Location() != cell {
		t.Error("unit not placed on its cell")
	}
	if !cell.IsVisible() || !g.CellAtOffset(8, 5).IsVisible() {
		t.Error("unit vision not applied")
	}
	if g.CellAtOffset(9, 5).IsVisible() {
		t.Error("cell beyond vision range visible")
	}

	if _, err := r.Add(cell, 0); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("second unit on the same cell: err = %v", err)
	}
	if _, err := r.Add(nil, 0); !errors.Is(err, ErrNoCell) {
		t.Errorf("nil cell: err = %v", err)
	}
}

func TestRemoveRestoresCell(t *testing.T) {
	g := newGrid(t, false)
	r := NewRoster(g)
	cell := g.CellAtOffset(5, 5)
	u, _ := r.Add(cell, 0)

	if err := r.Remove(u); err != nil {
		t.Fatal(err)
	}
	if cell.Unit() != uuid.Nil || cell.IsVisible() || r.Len() != 0 {
		t.Error("removed unit left state behind")
	}
	if err := r.Remove(u); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("double remove: err = %v", err)
	}
}

func TestTravelHandsOverVisibility(t *testing.T) {
	g := newGrid(t, false)
	r := NewRoster(g)
	start, dest := g.CellAtOffset(3, 5), g.CellAtOffset(12, 5)
	u, _ := r.Add(start, 0)

	if !g.FindPath(start, dest, u.Speed) {
		t.Fatal("no path")
	}
	if err := r.Travel(u, g.Path()); err != nil {
		t.Fatal(err)
	}
	if u.Location() != dest || dest.Unit() != u.ID || start.Unit() != uuid.Nil {
		t.Error("occupancy not moved")
	}
	if start.IsVisible() {
		t.Error("start still visible after leaving")
	}
	if !dest.IsVisible() || !g.CellAtOffset(15, 5).IsVisible() {
		t.Error("destination surroundings not revealed")
	}
	if !start.IsExplored() {
		t.Error("start forgot it was explored")
	}
	if math.Abs(u.Orientation-90) > 1e-9 {
		t.Errorf("orientation = %g, want 90 after moving east", u.Orientation)
	}
}

func TestTravelRejectsBadPaths(t *testing.T) {
	g := newGrid(t, false)
	r := NewRoster(g)
	start := g.CellAtOffset(5, 5)
	u, _ := r.Add(start, 0)
	other, _ := r.Add(g.Neighbor(start, hex.E), 0)

	tests := []struct {
		name string
		path []*world.Cell
	}{
		{"empty", nil},
		{"wrong start", []*world.Cell{g.CellAtOffset(1, 1), g.CellAtOffset(2, 1)}},
		{"gap", []*world.Cell{start, g.CellAtOffset(8, 5)}},
		{"occupied destination", []*world.Cell{start, other.Location()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Travel(u, tt.path); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("err = %v, want ErrInvalidPath", err)
			}
			if u.Location() != start {
				t.Error("unit moved on a rejected path")
			}
		})
	}
}

func TestFacingAcrossSeam(t *testing.T) {
	g := newGrid(t, true)
	from := g.CellAtOffset(19, 4)
	to := g.Neighbor(from, hex.E)
	if got := facing(g, from, to); math.Abs(got-90) > 1e-9 {
		t.Errorf("facing across the seam = %g, want 90", got)
	}
	if got := facing(g, to, from); math.Abs(got-270) > 1e-9 {
		t.Errorf("facing back = %g, want 270", got)
	}
}

func TestResetVisibility(t *testing.T) {
	g := newGrid(t, false)
	r := NewRoster(g)
	a, _ := r.Add(g.CellAtOffset(5, 5), 0)
	r.Add(g.CellAtOffset(7, 5), 0)

	g.SetElevation(g.CellAtOffset(6, 5), 1)
	g.ResetVisibility()
	r.ResetVisibility()
	if got := a.Location().Visibility(); got != 2 {
		t.Errorf("visibility under first unit = %d, want 2", got)
	}

	r.Clear()
	for i := 0; i < g.Len(); i++ {
		if g.Cell(i).IsVisible() || g.Cell(i).Unit() != uuid.Nil {
			t.Fatalf("cell %v still visible or occupied after Clear", g.Cell(i).Coord())
		}
	}
}

func TestRecreatingMapDropsUnits(t *testing.T) {
	g := newGrid(t, false)
	r := NewRoster(g)
	u, _ := r.Add(g.CellAtOffset(5, 5), 0)

	if err := g.CreateMap(10, 10, false); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 0 || u.Location() != nil {
		t.Fatalf("roster kept %d units, location %v", r.Len(), u.Location())
	}
	for i := 0; i < g.Len(); i++ {
		if g.Cell(i).Unit() != uuid.Nil || g.Cell(i).IsVisible() {
			t.Fatalf("cell %v occupied or visible on a fresh map", g.Cell(i).Coord())
		}
	}

	cell := g.CellAtOffset(5, 5)
	if _, err := r.Add(cell, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Add(cell, 0); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("second unit on the same cell: err = %v", err)
	}
	if err := r.Travel(u, []*world.Cell{cell, g.CellAtOffset(6, 5)}); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("travel with a dropped unit: err = %v, want ErrUnknownUnit", err)
	}
	if err := r.Remove(u); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("remove a dropped unit: err = %v, want ErrUnknownUnit", err)
	}
}

func TestFailedCreateMapKeepsUnits(t *testing.T) {
	g := newGrid(t, false)
	r := NewRoster(g)
	u, _ := r.Add(g.CellAtOffset(5, 5), 0)

	if err := g.CreateMap(7, 10, false); err == nil {
		t.Fatal("CreateMap accepted 7x10")
	}
	if r.Len() != 1 || u.Location() != g.CellAtOffset(5, 5) || u.Location().Unit() != u.ID {
		t.Error("rejected map size dropped the roster")
	}
}

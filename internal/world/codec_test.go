package world

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/talgya/hexmap/internal/hex"
)

func TestCellSaveLayout(t *testing.T) {
	g := newExploredGrid(t, 5, 5, false)
	c := g.CellAtOffset(2, 2)
	g.SetElevation(c, -2)
	g.SetWaterLevel(c, 3)
	g.SetTerrainType(c, TerrainMud)
	g.SetUrbanLevel(c, 1)
	g.SetFarmLevel(c, 2)
	g.SetPlantLevel(c, 3)
	g.SetWalled(c, true)
	g.SetOutgoingRiver(g.Neighbor(c, hex.W), hex.E)

	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		t.Fatal(err)
	}
	want := []byte{
		TerrainMud,
		0xfe, // -2
		3,
		1, 2, 3,
		0,
		1,
		0x80 | byte(hex.W),
		0,
		0,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("record = % x, want % x", buf.Bytes(), want)
	}
}

func TestCellsRoundTrip(t *testing.T) {
	src := newExploredGrid(t, 10, 5, true)
	a := src.CellAtOffset(3, 2)
	src.SetElevation(a, 4)
	src.SetWaterLevel(a, 5)
	src.SetTerrainType(a, TerrainStone)
	src.SetSpecialIndex(src.CellAtOffset(7, 3), 2)

	b := src.CellAtOffset(0, 2)
	src.SetElevation(b, -1)
	src.SetOutgoingRiver(src.CellAtOffset(9, 2), hex.E)
	src.AddRoad(src.CellAtOffset(5, 1), hex.NE)
	src.AddRoad(src.CellAtOffset(5, 1), hex.W)

	var buf bytes.Buffer
	if err := src.SaveCells(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != src.Len()*CellRecordSize {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), src.Len()*CellRecordSize)
	}

	obs := &recordingObserver{}
	dst := New(WithObserver(obs))
	if err := dst.CreateMap(10, 5, true); err != nil {
		t.Fatal(err)
	}
	dst.FlushPendingRefreshes(nil)
	if err := dst.LoadCells(&buf); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < src.Len(); i++ {
		s, d := src.Cell(i), dst.Cell(i)
		if s.Elevation() != d.Elevation() || s.WaterLevel() != d.WaterLevel() ||
			s.TerrainType() != d.TerrainType() || s.SpecialIndex() != d.SpecialIndex() ||
			s.RoadMask() != d.RoadMask() ||
			s.HasIncomingRiver() != d.HasIncomingRiver() || s.HasOutgoingRiver() != d.HasOutgoingRiver() ||
			s.HasIncomingRiver() && s.IncomingRiver() != d.IncomingRiver() ||
			s.HasOutgoingRiver() && s.OutgoingRiver() != d.OutgoingRiver() {
			t.Errorf("cell %v differs after round trip", s.Coord())
		}
	}
	if !dst.CellAtOffset(0, 2).HasIncomingRiver() {
		t.Error("river across the wrap seam lost")
	}
	if len(obs.terrain) != dst.Len() {
		t.Errorf("terrain notifications = %d, want %d", len(obs.terrain), dst.Len())
	}
	cx, cz := dst.ChunkCount()
	if dst.PendingRefreshes() != cx*cz {
		t.Errorf("pending refreshes = %d, want all %d", dst.PendingRefreshes(), cx*cz)
	}
}

func TestLoadCellsTruncated(t *testing.T) {
	g := newExploredGrid(t, 5, 5, false)
	err := g.LoadCells(bytes.NewReader(make([]byte, CellRecordSize*3+4)))
	if !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want EOF", err)
	}
}

func TestSaveRejectsValuesOutsideTheirByte(t *testing.T) {
	tests := []struct {
		name string
		set  func(g *Grid, c *Cell)
		ok   bool
	}{
		{"lowest elevation", func(g *Grid, c *Cell) { g.SetElevation(c, -128) }, true},
		{"elevation too high", func(g *Grid, c *Cell) { g.SetElevation(c, 200) }, false},
		{"elevation too low", func(g *Grid, c *Cell) { g.SetElevation(c, -129) }, false},
		{"water too high", func(g *Grid, c *Cell) { g.SetWaterLevel(c, 128) }, false},
		{"terrain negative", func(g *Grid, c *Cell) { g.SetTerrainType(c, -1) }, false},
		{"full urban level", func(g *Grid, c *Cell) { g.SetUrbanLevel(c, 255) }, true},
		{"urban too high", func(g *Grid, c *Cell) { g.SetUrbanLevel(c, 256) }, false},
		{"farm negative", func(g *Grid, c *Cell) { g.SetFarmLevel(c, -1) }, false},
		{"plant too high", func(g *Grid, c *Cell) { g.SetPlantLevel(c, 1000) }, false},
		{"special too high", func(g *Grid, c *Cell) { g.SetSpecialIndex(c, 300) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newExploredGrid(t, 5, 5, false)
			c := g.CellAtOffset(2, 2)
			tt.set(g, c)

			var buf bytes.Buffer
			err := c.Save(&buf)
			if tt.ok {
				if err != nil {
					t.Fatalf("Save: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValueRange) {
				t.Fatalf("Save err = %v, want ErrValueRange", err)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes of a rejected record", buf.Len())
			}
			if err := g.SaveCells(&buf); !errors.Is(err, ErrValueRange) {
				t.Errorf("SaveCells err = %v, want ErrValueRange", err)
			}
		})
	}
}

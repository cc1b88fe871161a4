package world

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/talgya/hexmap/internal/hex"
)

// riverPresent flags a stored river byte that carries a direction.
const riverPresent = 0x80

// CellRecordSize is the number of bytes Save writes per cell.
const CellRecordSize = 11

// ErrValueRange is returned by Save for a field that does not fit its byte.
var ErrValueRange = errors.New("cell value out of range")

// Save writes the cell's persistent fields in their fixed order: terrain,
// elevation, water level, urban, farm, plant, special, walled, incoming
// river, outgoing river, road mask. Elevation and water level are signed.
func (c *Cell) Save(w io.ByteWriter) error {
	if err := c.checkRange(); err != nil {
		return err
	}
	var walled byte
	if c.walled {
		walled = 1
	}
	var in, out byte
	if c.hasIncoming {
		in = riverPresent | byte(c.incoming)
	}
	if c.hasOutgoing {
		out = riverPresent | byte(c.outgoing)
	}
	record := [CellRecordSize]byte{
		byte(c.terrain),
		byte(int8(c.elevation)),
		byte(int8(c.waterLevel)),
		byte(c.urban),
		byte(c.farm),
		byte(c.plant),
		byte(c.special),
		walled,
		in,
		out,
		c.RoadMask(),
	}
	for _, b := range record {
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// checkRange reports the first field that Save would truncate.
func (c *Cell) checkRange() error {
	signed := []struct {
		name  string
		value int
	}{
		{"elevation", c.elevation},
		{"water level", c.waterLevel},
	}
	for _, f := range signed {
		if f.value < math.MinInt8 || f.value > math.MaxInt8 {
			return fmt.Errorf("%w: cell %v %s %d", ErrValueRange, c.coord, f.name, f.value)
		}
	}
	unsigned := []struct {
		name  string
		value int
	}{
		{"terrain", c.terrain},
		{"urban level", c.urban},
		{"farm level", c.farm},
		{"plant level", c.plant},
		{"special index", c.special},
	}
	for _, f := range unsigned {
		if f.value < 0 || f.value > math.MaxUint8 {
			return fmt.Errorf("%w: cell %v %s %d", ErrValueRange, c.coord, f.name, f.value)
		}
	}
	return nil
}

// load reads a record written by Save directly into the cell, bypassing
// the edit rules; the stream is trusted to be consistent.
func (c *Cell) load(r io.ByteReader) error {
	var record [CellRecordSize]byte
	for i := range record {
		b, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("cell %d byte %d: %w", c.index, i, err)
		}
		record[i] = b
	}

	c.terrain = int(record[0])
	c.elevation = int(int8(record[1]))
	c.waterLevel = int(int8(record[2]))
	c.urban = int(record[3])
	c.farm = int(record[4])
	c.plant = int(record[5])
	c.special = int(record[6])
	c.walled = record[7] != 0

	c.hasIncoming = record[8]&riverPresent != 0
	c.incoming = hex.Direction(record[8] &^ riverPresent % 6)
	c.hasOutgoing = record[9]&riverPresent != 0
	c.outgoing = hex.Direction(record[9] &^ riverPresent % 6)

	for i := range c.roads {
		c.roads[i] = record[10]&(1<<i) != 0
	}
	return nil
}

// SaveCells writes every cell in index order.
func (g *Grid) SaveCells(w io.ByteWriter) error {
	for i := range g.cells {
		if err := g.cells[i].Save(w); err != nil {
			return fmt.Errorf("save cell %d: %w", i, err)
		}
	}
	return nil
}

// LoadCells reads every cell in index order, then clears visibility and
// marks the whole map for rebuild.
func (g *Grid) LoadCells(r io.ByteReader) error {
	for i := range g.cells {
		c := &g.cells[i]
		if err := c.load(r); err != nil {
			return err
		}
		c.visibility = 0
		if g.observer != nil {
			g.observer.TerrainChanged(c)
		}
	}
	g.needsVisibilityReset = true
	g.RefreshAll()
	return nil
}

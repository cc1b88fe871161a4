package persistence

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/talgya/hexmap/internal/hex"
	"github.com/talgya/hexmap/internal/unit"
	"github.com/talgya/hexmap/internal/world"
)

// Map file versions. Each version adds to the layout of the one before.
const (
	VersionCells = 0 // cells only, fixed 20x15 map
	VersionSize  = 1 // width and height
	VersionUnits = 2 // unit list after the cells
	VersionWrap  = 3 // wrap flag after the size

	CurrentVersion = VersionWrap
)

// Map size assumed by files that predate the size header.
const (
	legacyWidth  = 20
	legacyHeight = 15
)

// ErrUnsupportedVersion is returned for map files written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported map version")

var byteOrder = binary.LittleEndian

// WriteMap encodes the grid and the units standing on it at CurrentVersion.
// roster may be nil.
func WriteMap(w io.Writer, g *world.Grid, roster *unit.Roster) error {
	bw := bufio.NewWriter(w)

	header := []int32{CurrentVersion, int32(g.CellCountX()), int32(g.CellCountZ())}
	if err := binary.Write(bw, byteOrder, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := bw.WriteByte(boolByte(g.Wrapping())); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := g.SaveCells(bw); err != nil {
		return err
	}

	var units []*unit.Unit
	if roster != nil {
		units = roster.Units()
	}
	if err := binary.Write(bw, byteOrder, int32(len(units))); err != nil {
		return fmt.Errorf("write units: %w", err)
	}
	for _, u := range units {
		if err := writeUnit(bw, u); err != nil {
			return fmt.Errorf("write unit %s: %w", u.ID, err)
		}
	}
	return bw.Flush()
}

// unitRecord is the on-disk form of a unit.
type unitRecord struct {
	X, Z        int32
	Orientation float32
}

func writeUnit(w io.Writer, u *unit.Unit) error {
	coord := u.Location().Coord()
	return binary.Write(w, byteOrder, unitRecord{
		X:           int32(coord.X),
		Z:           int32(coord.Z),
		Orientation: float32(u.Orientation),
	})
}

// ReadMap replaces the grid contents and the roster with a map file. Files
// from any version up to CurrentVersion are accepted. A newer version is
// rejected with ErrUnsupportedVersion, and a bad map size with
// world.ErrInvalidMapSize, before the grid or roster is touched.
func ReadMap(r io.Reader, g *world.Grid, roster *unit.Roster) error {
	br := bufio.NewReader(r)

	var version int32
	if err := binary.Read(br, byteOrder, &version); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if version < 0 || version > CurrentVersion {
		slog.Error("map file rejected", "version", version, "supported", CurrentVersion)
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	width, height := int32(legacyWidth), int32(legacyHeight)
	if version >= VersionSize {
		if err := binary.Read(br, byteOrder, &width); err != nil {
			return fmt.Errorf("read width: %w", err)
		}
		if err := binary.Read(br, byteOrder, &height); err != nil {
			return fmt.Errorf("read height: %w", err)
		}
	}
	wrap := false
	if version >= VersionWrap {
		b, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("read wrap flag: %w", err)
		}
		wrap = b != 0
	}

	if err := world.ValidateMapSize(int(width), int(height)); err != nil {
		return fmt.Errorf("read map: %w", err)
	}
	if roster != nil {
		roster.Clear()
	}
	if err := g.CreateMap(int(width), int(height), wrap); err != nil {
		return fmt.Errorf("read map: %w", err)
	}
	if err := g.LoadCells(br); err != nil {
		return fmt.Errorf("read cells: %w", err)
	}
	g.ResetVisibility()

	if version >= VersionUnits {
		if err := readUnits(br, g, roster); err != nil {
			return err
		}
	}

	slog.Info("map loaded",
		"version", version,
		"width", width,
		"height", height,
		"wrap", wrap,
	)
	return nil
}

func readUnits(r io.Reader, g *world.Grid, roster *unit.Roster) error {
	var count int32
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return fmt.Errorf("read unit count: %w", err)
	}
	if count < 0 || int(count) > g.Len() {
		return fmt.Errorf("read units: bad count %d", count)
	}
	for i := 0; i < int(count); i++ {
		var rec unitRecord
		if err := binary.Read(r, byteOrder, &rec); err != nil {
			return fmt.Errorf("read unit %d: %w", i, err)
		}
		if roster == nil {
			continue
		}
		if math.IsNaN(float64(rec.Orientation)) {
			rec.Orientation = 0
		}
		cell := g.CellAt(hex.NewCoord(int(rec.X), int(rec.Z), g.WrapSize()))
		if _, err := roster.Add(cell, float64(rec.Orientation)); err != nil {
			return fmt.Errorf("read unit %d at (%d, %d): %w", i, rec.X, rec.Z, err)
		}
	}
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

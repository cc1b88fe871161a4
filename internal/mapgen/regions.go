package mapgen

import (
	"log/slog"

	"golang.org/x/exp/constraints"

	"github.com/talgya/hexmap/internal/world"
)

// region is a rectangle of offset coordinates, max exclusive, in which land
// chunks are seeded.
type region struct {
	xMin, xMax int
	zMin, zMax int
}

func (g *Generator) createRegions() {
	g.regions = g.regions[:0]
	countX, countZ := g.grid.CellCountX(), g.grid.CellCountZ()
	border := g.cfg.RegionBorder

	borderX := g.cfg.MapBorderX
	if g.grid.Wrapping() {
		borderX = border
	}

	switch g.cfg.RegionCount {
	default:
		if g.grid.Wrapping() {
			borderX = 0
		}
		g.addRegion(region{borderX, countX - borderX, g.cfg.MapBorderZ, countZ - g.cfg.MapBorderZ})
	case 2:
		if g.rng.Float64() < 0.5 {
			g.addRegion(region{borderX, countX/2 - border, g.cfg.MapBorderZ, countZ - g.cfg.MapBorderZ})
			g.addRegion(region{countX/2 + border, countX - borderX, g.cfg.MapBorderZ, countZ - g.cfg.MapBorderZ})
		} else {
			if g.grid.Wrapping() {
				borderX = 0
			}
			g.addRegion(region{borderX, countX - borderX, g.cfg.MapBorderZ, countZ/2 - border})
			g.addRegion(region{borderX, countX - borderX, countZ/2 + border, countZ - g.cfg.MapBorderZ})
		}
	case 3:
		g.addRegion(region{borderX, countX/3 - border, g.cfg.MapBorderZ, countZ - g.cfg.MapBorderZ})
		g.addRegion(region{countX/3 + border, countX*2/3 - border, g.cfg.MapBorderZ, countZ - g.cfg.MapBorderZ})
		g.addRegion(region{countX*2/3 + border, countX - borderX, g.cfg.MapBorderZ, countZ - g.cfg.MapBorderZ})
	case 4:
		g.addRegion(region{borderX, countX/2 - border, g.cfg.MapBorderZ, countZ/2 - border})
		g.addRegion(region{countX/2 + border, countX - borderX, g.cfg.MapBorderZ, countZ/2 - border})
		g.addRegion(region{countX/2 + border, countX - borderX, countZ/2 + border, countZ - g.cfg.MapBorderZ})
		g.addRegion(region{borderX, countX/2 - border, countZ/2 + border, countZ - g.cfg.MapBorderZ})
	}
}

// addRegion clamps r into the map, keeping at least one cell per axis, so
// that borders too wide for a small map degrade instead of failing.
func (g *Generator) addRegion(r region) {
	countX, countZ := g.grid.CellCountX(), g.grid.CellCountZ()
	clamped := region{
		xMin: clamp(r.xMin, 0, countX-1),
		zMin: clamp(r.zMin, 0, countZ-1),
	}
	clamped.xMax = clamp(r.xMax, clamped.xMin+1, countX)
	clamped.zMax = clamp(r.zMax, clamped.zMin+1, countZ)
	if clamped != r {
		slog.Debug("region clamped to map", "requested", r, "clamped", clamped)
	}
	g.regions = append(g.regions, clamped)
}

// randomCell picks a cell inside r.
func (g *Generator) randomCell(r region) *world.Cell {
	return g.grid.CellAtOffset(g.randomRange(r.xMin, r.xMax), g.randomRange(r.zMin, r.zMax))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

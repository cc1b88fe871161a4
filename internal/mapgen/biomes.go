package mapgen

import (
	"github.com/talgya/hexmap/internal/hex"
	"github.com/talgya/hexmap/internal/world"
)

// biome pairs a terrain type with a plant level.
type biome struct {
	terrain, plant int
}

// Band thresholds; a value falls into the first band whose threshold it is
// below, or the last band.
var (
	temperatureBands = [3]float64{0.1, 0.3, 0.6}
	moistureBands    = [3]float64{0.12, 0.28, 0.85}
)

// biomes is indexed by temperature band then moisture band, coldest and
// driest first.
var biomes = [4][4]biome{
	{{world.TerrainSand, 0}, {world.TerrainSnow, 0}, {world.TerrainSnow, 0}, {world.TerrainSnow, 0}},
	{{world.TerrainSand, 0}, {world.TerrainMud, 0}, {world.TerrainMud, 1}, {world.TerrainMud, 2}},
	{{world.TerrainSand, 0}, {world.TerrainGrass, 0}, {world.TerrainGrass, 1}, {world.TerrainGrass, 2}},
	{{world.TerrainSand, 0}, {world.TerrainGrass, 1}, {world.TerrainGrass, 2}, {world.TerrainGrass, 3}},
}

func band(v float64, thresholds [3]float64) int {
	i := 0
	for ; i < len(thresholds); i++ {
		if v < thresholds[i] {
			break
		}
	}
	return i
}

func (g *Generator) setTerrainType() {
	g.jitter = newNoiseField(g.result.Seed, g.rng.Intn(noiseChannels))
	rockDesertElevation := g.cfg.ElevationMaximum - (g.cfg.ElevationMaximum-g.cfg.WaterLevel)/2

	for i := 0; i < g.cellCount; i++ {
		cell := g.grid.Cell(i)
		temperature := g.temperature(cell)
		if cell.IsUnderwater() {
			g.grid.SetTerrainType(cell, g.underwaterTerrain(cell, temperature))
			continue
		}

		b := biomes[band(temperature, temperatureBands)][band(g.climate[i].moisture, moistureBands)]
		if b.terrain == world.TerrainSand {
			if cell.Elevation() >= rockDesertElevation {
				b.terrain = world.TerrainStone
			}
		} else if cell.Elevation() == g.cfg.ElevationMaximum {
			b.terrain = world.TerrainSnow
		}

		if b.terrain == world.TerrainSnow {
			b.plant = 0
		} else if b.plant < 3 && cell.HasRiver() {
			b.plant++
		}
		g.grid.SetTerrainType(cell, b.terrain)
		g.grid.SetPlantLevel(cell, b.plant)
	}
}

// underwaterTerrain picks the lake or sea floor: shallow cells next to the
// shore become beach, rock or grass depending on the coast's steepness,
// deeper ones mud, and the deepest rock.
func (g *Generator) underwaterTerrain(cell *world.Cell, temperature float64) int {
	var terrain int
	switch {
	case cell.Elevation() == g.cfg.WaterLevel-1:
		cliffs, slopes := 0, 0
		for _, d := range hex.Directions {
			neighbor := g.grid.Neighbor(cell, d)
			if neighbor == nil {
				continue
			}
			delta := neighbor.Elevation() - cell.WaterLevel()
			if delta == 0 {
				slopes++
			} else if delta > 0 {
				cliffs++
			}
		}
		switch {
		case cliffs+slopes > 3:
			terrain = world.TerrainGrass
		case cliffs > 0:
			terrain = world.TerrainStone
		case slopes > 0:
			terrain = world.TerrainSand
		default:
			terrain = world.TerrainGrass
		}
	case cell.Elevation() >= g.cfg.WaterLevel:
		terrain = world.TerrainGrass
	case cell.Elevation() < 0:
		terrain = world.TerrainStone
	default:
		terrain = world.TerrainMud
	}

	if terrain == world.TerrainGrass && temperature < temperatureBands[0] {
		terrain = world.TerrainMud
	}
	return terrain
}

// temperature combines latitude, height above water and noise jitter.
func (g *Generator) temperature(cell *world.Cell) float64 {
	latitude := float64(cell.Coord().Z) / float64(g.grid.CellCountZ())
	switch g.cfg.Hemisphere {
	case HemisphereBoth:
		latitude *= 2
		if latitude > 1 {
			latitude = 2 - latitude
		}
	case HemisphereNorth:
		latitude = 1 - latitude
	}

	t := g.cfg.LowTemperature + (g.cfg.HighTemperature-g.cfg.LowTemperature)*latitude
	t *= 1 - float64(cell.ViewElevation()-g.cfg.WaterLevel)/float64(g.cfg.ElevationMaximum-g.cfg.WaterLevel+1)
	t += (g.jitter.Sample(cell.Position())*2 - 1) * g.cfg.TemperatureJitter
	return t
}

package mapgen

import "github.com/talgya/hexmap/internal/hex"

// climateCycles is the number of simulation steps run per map.
const climateCycles = 40

type climateData struct {
	clouds, moisture float64
}

// createClimate runs the cloud and moisture simulation. Every cycle reads
// only the previous cycle's state, then the buffers are swapped.
func (g *Generator) createClimate() {
	g.climate = resize(g.climate, g.cellCount)
	g.nextClimate = resize(g.nextClimate, g.cellCount)
	for i := range g.climate {
		g.climate[i] = climateData{moisture: g.cfg.StartingMoisture}
		g.nextClimate[i] = climateData{}
	}

	for cycle := 0; cycle < climateCycles; cycle++ {
		for i := 0; i < g.cellCount; i++ {
			g.evolveClimate(i)
		}
		g.climate, g.nextClimate = g.nextClimate, g.climate
	}
}

func (g *Generator) evolveClimate(i int) {
	cell := g.grid.Cell(i)
	state := g.climate[i]

	if cell.IsUnderwater() {
		state.moisture = 1
		state.clouds += g.cfg.EvaporationFactor
	} else {
		evaporation := state.moisture * g.cfg.EvaporationFactor
		state.moisture -= evaporation
		state.clouds += evaporation
	}

	precipitation := state.clouds * g.cfg.PrecipitationFactor
	state.clouds -= precipitation
	state.moisture += precipitation

	// Higher ground holds fewer clouds.
	cloudMaximum := 1 - float64(cell.ViewElevation())/float64(g.cfg.ElevationMaximum+1)
	if state.clouds > cloudMaximum {
		state.moisture += state.clouds - cloudMaximum
		state.clouds = cloudMaximum
	}

	downwind := g.cfg.WindDirection.Opposite()
	dispersal := state.clouds / (5 + g.cfg.WindStrength)
	runoff := state.moisture * g.cfg.RunoffFactor / 6
	seepage := state.moisture * g.cfg.SeepageFactor / 6

	for _, d := range hex.Directions {
		neighbor := g.grid.Neighbor(cell, d)
		if neighbor == nil {
			continue
		}
		next := &g.nextClimate[neighbor.Index()]
		if d == downwind {
			next.clouds += dispersal * g.cfg.WindStrength
		} else {
			next.clouds += dispersal
		}

		switch delta := neighbor.ViewElevation() - cell.ViewElevation(); {
		case delta < 0:
			state.moisture -= runoff
			next.moisture += runoff
		case delta == 0:
			state.moisture -= seepage
			next.moisture += seepage
		}
	}

	next := &g.nextClimate[i]
	next.moisture = clamp(next.moisture+state.moisture, 0, 1)
	g.climate[i] = climateData{}
}

// resize returns s with length n, reusing its storage when possible.
func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}

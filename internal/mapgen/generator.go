// Package mapgen procedurally generates continents on a world.Grid.
//
// A map is built in strictly ordered stages: regions are carved out of the
// playable rectangle, land chunks are raised and sunk inside them, steep
// terrain is eroded, a moisture/cloud climate is simulated, rivers are
// traced downhill from wet highlands, and finally every cell is classified
// into a biome. All randomness comes from one generator-owned source seeded
// per map, so a fixed seed reproduces the same map.
package mapgen

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/talgya/hexmap/internal/entropy"
	"github.com/talgya/hexmap/internal/world"
)

// Result summarises one generated map.
type Result struct {
	Seed           int64
	LandCells      int // Cells above water after land carving
	LandShortfall  int // Unspent land budget
	ErodibleBefore int
	ErodibleAfter  int
	RiverBudget    int
	RiverShortfall int // Unspent river budget
	Rivers         int
	Lakes          int
}

// Generator builds maps on a grid.
type Generator struct {
	grid *world.Grid
	cfg  Config

	rng      *rand.Rand
	frontier *world.Queue
	phase    int

	cellCount int
	landCells int
	regions   []region

	climate, nextClimate []climateData

	jitter *noiseField

	result Result
}

// New returns a generator that writes into grid.
func New(grid *world.Grid, cfg Config) *Generator {
	return &Generator{
		grid:     grid,
		cfg:      cfg,
		frontier: world.NewQueue(grid),
	}
}

// Config returns the generator's parameters.
func (g *Generator) Config() Config { return g.cfg }

// GenerateMap recreates the grid at x by z cells and fills it with a new
// continent. Budget shortfalls are logged and reported in the result; only
// invalid parameters or map sizes fail.
func (g *Generator) GenerateMap(x, z int, wrap bool) (Result, error) {
	if err := g.cfg.Validate(); err != nil {
		return Result{}, err
	}

	seed := g.cfg.Seed
	if !g.cfg.UseFixedSeed {
		seed = entropy.Seed() & math.MaxInt32
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.result = Result{Seed: seed}

	if err := g.grid.CreateMap(x, z, wrap); err != nil {
		return Result{}, fmt.Errorf("generate map: %w", err)
	}
	g.cellCount = x * z
	g.phase = 0
	g.frontier.Clear()

	for i := 0; i < g.cellCount; i++ {
		g.grid.SetWaterLevel(g.grid.Cell(i), g.cfg.WaterLevel)
	}

	g.createRegions()
	g.createLand()
	g.erodeLand()
	g.createClimate()
	g.createRivers()
	g.setTerrainType()

	g.grid.ResetSearchPhases()
	g.grid.ResetVisibility()

	slog.Info("map generated",
		"width", x, "height", z, "wrap", wrap, "seed", seed,
		"land", g.result.LandCells, "rivers", g.result.Rivers, "lakes", g.result.Lakes)
	return g.result, nil
}

// randomRange returns an int in [lo, hi), or lo when the range is empty.
func (g *Generator) randomRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo)
}

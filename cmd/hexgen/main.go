// Command hexgen generates a hex terrain map, places a scout on it, walks
// the scout across the land and stores the result in the map database.
package main

import (
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/hexmap/internal/celldata"
	"github.com/talgya/hexmap/internal/config"
	"github.com/talgya/hexmap/internal/entropy"
	"github.com/talgya/hexmap/internal/mapgen"
	"github.com/talgya/hexmap/internal/persistence"
	"github.com/talgya/hexmap/internal/unit"
	"github.com/talgya/hexmap/internal/world"
)

func main() {
	cfg := loadConfig()
	setupLogging(cfg)

	// ── Map generation ───────────────────────────────────────────────
	tex := celldata.NewTexture()
	grid := world.New(world.WithObserver(tex))
	gen := mapgen.New(grid, cfg.Generator)

	slog.Info("generating map...",
		"width", cfg.Map.Width,
		"height", cfg.Map.Height,
		"wrap", cfg.Map.Wrap,
	)
	start := time.Now()
	res, err := gen.GenerateMap(cfg.Map.Width, cfg.Map.Height, cfg.Map.Wrap)
	if err != nil {
		slog.Error("map generation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("generation finished",
		"took", time.Since(start).Round(time.Millisecond),
		"land_shortfall", res.LandShortfall,
		"river_shortfall", res.RiverShortfall,
	)

	stats := mapgen.TerrainCounts(grid)
	slog.Info("cells",
		"land", humanize.Comma(int64(stats.Land)),
		"underwater", humanize.Comma(int64(stats.Underwater)),
		"river", humanize.Comma(int64(stats.RiverCells)),
		"elevation", [2]int{stats.Lowest, stats.Highest},
	)
	for t := world.TerrainSand; t <= world.TerrainSnow; t++ {
		slog.Info("terrain", "type", world.TerrainName(t), "count", humanize.Comma(int64(stats.Terrain[t])))
	}

	// ── Scout ────────────────────────────────────────────────────────
	for i := 0; i < grid.Len(); i++ {
		grid.SetExplored(grid.Cell(i), true)
	}
	roster := unit.NewRoster(grid)
	rng := rand.New(rand.NewSource(res.Seed))
	land := landCells(grid)
	if len(land) >= 2 {
		from := land[rng.Intn(len(land))]
		scout, err := roster.Add(from, entropy.CryptoFloat()*360)
		if err != nil {
			slog.Error("failed to place scout", "error", err)
			os.Exit(1)
		}
		to := land[rng.Intn(len(land))]
		travel(grid, roster, scout, to)
	} else {
		slog.Warn("not enough land for a scout", "land", len(land))
	}

	for tex.Update(100 * time.Millisecond) {
	}
	chunks := grid.FlushPendingRefreshes(nil)
	slog.Info("chunks refreshed", "count", chunks)

	// ── Database ─────────────────────────────────────────────────────
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	id, err := db.SaveMap(cfg.Map.Name, res.Seed, grid, roster)
	if err != nil {
		slog.Error("failed to save map", "error", err)
		os.Exit(1)
	}

	if path := os.Getenv("MAP_FILE"); path != "" {
		if err := writeMapFile(path, grid, roster); err != nil {
			slog.Error("failed to write map file", "path", path, "error", err)
			os.Exit(1)
		}
		slog.Info("map file written", "path", path)
	}

	slog.Info("done", "map", id, "database", cfg.Database.Path)
}

func loadConfig() *config.Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("failed to load config", "path", path, "error", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	level, _ := cfg.LogLevel()
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Log.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			handler = slog.NewTextHandler(os.Stdout, opts)
		} else {
			handler = slog.NewJSONHandler(os.Stdout, opts)
		}
	}
	slog.SetDefault(slog.New(handler))
}

func landCells(g *world.Grid) []*world.Cell {
	var land []*world.Cell
	for i := 0; i < g.Len(); i++ {
		if c := g.Cell(i); g.IsValidDestination(c) {
			land = append(land, c)
		}
	}
	return land
}

// travel walks the scout to dest if a path exists.
func travel(g *world.Grid, roster *unit.Roster, scout *unit.Unit, dest *world.Cell) {
	from := scout.Location()
	if !g.FindPath(from, dest, scout.Speed) {
		slog.Info("scout has no route", "from", from.Coord(), "to", dest.Coord())
		return
	}
	path := g.Path()
	turns := world.Turn(dest, scout.Speed) + 1
	if len(path) < 2 {
		slog.Info("scout stays put", "at", from.Coord())
		return
	}
	if err := roster.Travel(scout, path); err != nil {
		slog.Error("scout travel failed", "error", err)
		return
	}
	slog.Info("scout travelled",
		"from", from.Coord(),
		"to", dest.Coord(),
		"steps", len(path)-1,
		"cost", g.PathCost(),
		"turns", turns,
		"facing", humanize.FtoaWithDigits(scout.Orientation, 1),
	)
	g.ClearPath()
}

func writeMapFile(path string, g *world.Grid, roster *unit.Roster) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := persistence.WriteMap(f, g, roster); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package mapgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/talgya/hexmap/internal/hex"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid generator config")

// Hemisphere selects how latitude maps to temperature.
type Hemisphere uint8

const (
	HemisphereBoth  Hemisphere = iota // Equator across the middle row
	HemisphereNorth                   // Equator along the bottom row
	HemisphereSouth                   // Equator along the top row
)

func (h Hemisphere) String() string {
	switch h {
	case HemisphereBoth:
		return "both"
	case HemisphereNorth:
		return "north"
	case HemisphereSouth:
		return "south"
	default:
		return "unknown"
	}
}

// MarshalText encodes h by name.
func (h Hemisphere) MarshalText() ([]byte, error) {
	if h > HemisphereSouth {
		return nil, fmt.Errorf("invalid hemisphere %d", uint8(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText accepts "both", "north" or "south".
func (h *Hemisphere) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "both":
		*h = HemisphereBoth
	case "north":
		*h = HemisphereNorth
	case "south":
		*h = HemisphereSouth
	default:
		return fmt.Errorf("unknown hemisphere %q", text)
	}
	return nil
}

// Config holds map generation parameters.
type Config struct {
	Seed         int64 `yaml:"seed"`           // Used only when UseFixedSeed is set
	UseFixedSeed bool  `yaml:"use_fixed_seed"` // Otherwise a fresh seed is drawn per map

	JitterProbability   float64 `yaml:"jitter_probability"`    // Raggedness of land chunks (0.0–0.5)
	ChunkSizeMin        int     `yaml:"chunk_size_min"`        // Cells per raised/sunk chunk
	ChunkSizeMax        int     `yaml:"chunk_size_max"`        // Upper bound for chunk sizes
	LandPercentage      int     `yaml:"land_percentage"`       // Share of cells above water (5–95)
	WaterLevel          int     `yaml:"water_level"`           // Initial water surface of every cell
	HighRiseProbability float64 `yaml:"high_rise_probability"` // Chance a chunk moves two levels
	SinkProbability     float64 `yaml:"sink_probability"`      // Chance a chunk sinks instead of rising
	ElevationMinimum    int     `yaml:"elevation_minimum"`     // Lowest elevation land can sink to
	ElevationMaximum    int     `yaml:"elevation_maximum"`     // Highest elevation land can rise to

	MapBorderX   int `yaml:"map_border_x"`  // Cells kept free of land along the X edges
	MapBorderZ   int `yaml:"map_border_z"`  // Cells kept free of land along the Z edges
	RegionBorder int `yaml:"region_border"` // Gap between regions
	RegionCount  int `yaml:"region_count"`  // Separate land regions (1–4)

	ErosionPercentage int `yaml:"erosion_percentage"` // Share of erodible cells to wear down

	EvaporationFactor   float64       `yaml:"evaporation_factor"`
	PrecipitationFactor float64       `yaml:"precipitation_factor"`
	RunoffFactor        float64       `yaml:"runoff_factor"`
	SeepageFactor       float64       `yaml:"seepage_factor"`
	WindDirection       hex.Direction `yaml:"wind_direction"` // Direction the wind blows from
	WindStrength        float64       `yaml:"wind_strength"`  // 1–10
	StartingMoisture    float64       `yaml:"starting_moisture"`

	RiverPercentage      int     `yaml:"river_percentage"` // River length budget as a share of land cells
	ExtraLakeProbability float64 `yaml:"extra_lake_probability"`

	LowTemperature    float64    `yaml:"low_temperature"`
	HighTemperature   float64    `yaml:"high_temperature"`
	Hemisphere        Hemisphere `yaml:"hemisphere"`
	TemperatureJitter float64    `yaml:"temperature_jitter"`
}

// DefaultConfig returns the standard continent settings.
func DefaultConfig() Config {
	return Config{
		JitterProbability:   0.25,
		ChunkSizeMin:        30,
		ChunkSizeMax:        100,
		LandPercentage:      50,
		WaterLevel:          3,
		HighRiseProbability: 0.25,
		SinkProbability:     0.2,
		ElevationMinimum:    -2,
		ElevationMaximum:    8,

		MapBorderX:   5,
		MapBorderZ:   5,
		RegionBorder: 5,
		RegionCount:  1,

		ErosionPercentage: 50,

		EvaporationFactor:   0.5,
		PrecipitationFactor: 0.25,
		RunoffFactor:        0.25,
		SeepageFactor:       0.125,
		WindDirection:       hex.NW,
		WindStrength:        4,
		StartingMoisture:    0.1,

		RiverPercentage:      10,
		ExtraLakeProbability: 0.25,

		LowTemperature:    0,
		HighTemperature:   1,
		Hemisphere:        HemisphereBoth,
		TemperatureJitter: 0.1,
	}
}

// SmallTestConfig returns settings scaled for tiny maps with a fixed seed.
func SmallTestConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.UseFixedSeed = true
	cfg.ChunkSizeMin = 8
	cfg.ChunkSizeMax = 24
	cfg.MapBorderX = 2
	cfg.MapBorderZ = 2
	cfg.RegionBorder = 2
	return cfg
}

// Validate checks that the parameters describe a usable generator.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.ChunkSizeMin > 0 && c.ChunkSizeMin <= c.ChunkSizeMax,
		"chunk sizes %d..%d", c.ChunkSizeMin, c.ChunkSizeMax)
	check(c.LandPercentage >= 0 && c.LandPercentage <= 100, "land percentage %d", c.LandPercentage)
	check(c.ElevationMinimum < c.WaterLevel && c.WaterLevel < c.ElevationMaximum,
		"water level %d outside elevation range %d..%d", c.WaterLevel, c.ElevationMinimum, c.ElevationMaximum)
	check(c.ElevationMinimum >= -128 && c.ElevationMaximum <= 127,
		"elevation range %d..%d does not fit a byte", c.ElevationMinimum, c.ElevationMaximum)
	check(c.RegionCount >= 1 && c.RegionCount <= 4, "region count %d", c.RegionCount)
	check(c.MapBorderX >= 0 && c.MapBorderZ >= 0 && c.RegionBorder >= 0,
		"negative border %d/%d/%d", c.MapBorderX, c.MapBorderZ, c.RegionBorder)
	check(c.ErosionPercentage >= 0 && c.ErosionPercentage <= 100, "erosion percentage %d", c.ErosionPercentage)
	check(c.RiverPercentage >= 0 && c.RiverPercentage <= 100, "river percentage %d", c.RiverPercentage)
	check(c.WindDirection.Valid(), "wind direction %d", c.WindDirection)
	check(c.WindStrength >= 1, "wind strength %g", c.WindStrength)
	check(c.Hemisphere <= HemisphereSouth, "hemisphere %d", c.Hemisphere)
	for _, p := range []float64{c.JitterProbability, c.HighRiseProbability, c.SinkProbability, c.ExtraLakeProbability} {
		check(p >= 0 && p <= 1, "probability %g", p)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

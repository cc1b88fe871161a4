package mapgen

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexmap/internal/hex"
)

// noiseChannels is the number of independent jitter fields a map can pick from.
const noiseChannels = 4

// noiseScale converts world positions into noise space.
const noiseScale = 0.03

// noiseField samples smooth noise in [0, 1] over the map plane.
type noiseField struct {
	noise opensimplex.Noise
}

// newNoiseField returns channel ch of the noise fields derived from seed.
func newNoiseField(seed int64, ch int) *noiseField {
	return &noiseField{noise: opensimplex.NewNormalized(seed + int64(ch))}
}

// Sample returns the field value under pos, ignoring height.
func (f *noiseField) Sample(pos hex.Vec3) float64 {
	return octaveNoise(f.noise, pos.X*noiseScale, pos.Z*noiseScale, 3, 1, 0.5)
}

// octaveNoise layers octaves of noise, each at twice the frequency and
// persistence times the amplitude of the previous one.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

package terrain

import (
	"fmt"
	"math"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Primitive names the single-octave coherent noise behind a NoiseField.
type Primitive string

const (
	PrimitiveOpenSimplex Primitive = "opensimplex"
	PrimitivePerlin      Primitive = "perlin"
)

// ParsePrimitive maps a name to a Primitive. The empty string selects OpenSimplex.
func ParsePrimitive(name string) (Primitive, error) {
	switch Primitive(strings.ToLower(strings.TrimSpace(name))) {
	case "", PrimitiveOpenSimplex:
		return PrimitiveOpenSimplex, nil
	case PrimitivePerlin:
		return PrimitivePerlin, nil
	default:
		return "", fmt.Errorf("%w: unknown noise primitive %q", ErrInvalidConfig, name)
	}
}

// Source is one layer of coherent noise in roughly [-1, 1].
type Source interface {
	Eval2(x, y float64) float64
}

// perlinSource adapts go-perlin to Source. alpha and beta are irrelevant with n=1.
type perlinSource struct {
	noise *perlin.Perlin
}

func (p perlinSource) Eval2(x, y float64) float64 {
	return p.noise.Noise2D(x, y)
}

// NewSource builds the seeded base primitive.
func NewSource(primitive Primitive, seed uint32) (Source, error) {
	p, err := ParsePrimitive(string(primitive))
	if err != nil {
		return nil, err
	}
	switch p {
	case PrimitivePerlin:
		return perlinSource{noise: perlin.NewPerlin(2, 2, 1, int64(seed))}, nil
	default:
		return opensimplex.New(int64(seed)), nil
	}
}

// NoiseField is a fractal (fBm) sum of octaves, one Source per octave.
// It holds no mutable state and is safe for concurrent use.
type NoiseField struct {
	sources     []Source
	octaves     int
	frequency   float64
	lacunarity  float64
	persistence float64
	norm        float64
}

// NewNoiseField returns the field described by cfg. Octave i is seeded with
// Seed+i, wrapping at 2^32.
func NewNoiseField(cfg *GenerationConfig) (*NoiseField, error) {
	if cfg.Octaves <= 0 {
		return nil, fmt.Errorf("%w: octaves must be positive, got %d", ErrInvalidConfig, cfg.Octaves)
	}
	sources := make([]Source, cfg.Octaves)
	for i := range sources {
		source, err := NewSource(cfg.Primitive, cfg.Seed+uint32(i))
		if err != nil {
			return nil, err
		}
		sources[i] = source
	}
	return newNoiseField(sources, cfg.Frequency, cfg.Lacunarity, cfg.Persistence), nil
}

// NewNoiseFieldFromSource layers the same Source in every octave.
func NewNoiseFieldFromSource(source Source, octaves int, frequency, lacunarity, persistence float64) *NoiseField {
	sources := make([]Source, octaves)
	for i := range sources {
		sources[i] = source
	}
	return newNoiseField(sources, frequency, lacunarity, persistence)
}

func newNoiseField(sources []Source, frequency, lacunarity, persistence float64) *NoiseField {
	octaves := len(sources)
	return &NoiseField{
		sources:     sources,
		octaves:     octaves,
		frequency:   frequency,
		lacunarity:  lacunarity,
		persistence: persistence,
		norm:        amplitudeSum(octaves, persistence),
	}
}

// amplitudeSum is Σ|persistence^i| for i in [0, octaves). It is never below 1.
func amplitudeSum(octaves int, persistence float64) float64 {
	p := math.Abs(persistence)
	if p == 1 {
		return float64(octaves)
	}
	return (1 - math.Pow(p, float64(octaves))) / (1 - p)
}

// Sample returns the field value at world coordinate (x, y), roughly in [-1, 1].
func (f *NoiseField) Sample(x, y float64) float64 {
	var total float64
	frequency := f.frequency
	amplitude := 1.0

	for _, source := range f.sources {
		total += source.Eval2(x*frequency, y*frequency) * amplitude
		frequency *= f.lacunarity
		amplitude *= f.persistence
	}
	return total / f.norm
}

// Octaves returns the number of layers summed per sample.
func (f *NoiseField) Octaves() int {
	return f.octaves
}

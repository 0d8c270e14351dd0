package terrain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearSource returns x + 10*y so octave arithmetic can be checked exactly.
type linearSource struct{}

func (linearSource) Eval2(x, y float64) float64 {
	return x + 10*y
}

func TestParsePrimitive(t *testing.T) {
	tests := []struct {
		input    string
		expected Primitive
		wantErr  bool
	}{
		{input: "", expected: PrimitiveOpenSimplex},
		{input: "opensimplex", expected: PrimitiveOpenSimplex},
		{input: " Perlin ", expected: PrimitivePerlin},
		{input: "worley", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePrimitive(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAmplitudeSum(t *testing.T) {
	tests := []struct {
		name        string
		octaves     int
		persistence float64
		expected    float64
	}{
		{name: "single octave", octaves: 1, persistence: 0.6, expected: 1},
		{name: "zero persistence", octaves: 5, persistence: 0, expected: 1},
		{name: "unit persistence", octaves: 4, persistence: 1, expected: 4},
		{name: "negative unit persistence", octaves: 4, persistence: -1, expected: 4},
		{name: "half persistence", octaves: 3, persistence: 0.5, expected: 1.75},
		{name: "negative half persistence", octaves: 3, persistence: -0.5, expected: 1.75},
		{name: "growing persistence", octaves: 3, persistence: 2, expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, amplitudeSum(tt.octaves, tt.persistence), 1e-12)
		})
	}
}

func TestNoiseField_OctaveWeighting(t *testing.T) {
	field := NewNoiseFieldFromSource(linearSource{}, 3, 2, 3, 0.5)

	// Layers: f=2 a=1, f=6 a=0.5, f=18 a=0.25, normalised by 1.75.
	expected := (1*2*1.0 + 1*6*0.5 + 1*18*0.25) / 1.75
	assert.InDelta(t, expected, field.Sample(1, 0), 1e-12)

	expected = (10*2*1.0 + 10*6*0.5 + 10*18*0.25) / 1.75
	assert.InDelta(t, expected, field.Sample(0, 1), 1e-12)
	assert.Equal(t, 3, field.Octaves())
}

func TestNoiseField_RejectsZeroOctaves(t *testing.T) {
	cfg := smallConfig()
	cfg.Octaves = 0

	field, err := NewNoiseField(&cfg)
	assert.Nil(t, field)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNoiseField_Determinism(t *testing.T) {
	coords := []struct{ x, y float64 }{
		{0.0, 0.0},
		{0.25, 0.75},
		{-4.3, 9.1},
		{10.5, -20.7},
		{1000.125, 2000.5},
	}

	for _, primitive := range []Primitive{PrimitiveOpenSimplex, PrimitivePerlin} {
		t.Run(string(primitive), func(t *testing.T) {
			cfg := DefaultGenerationConfig()
			cfg.Primitive = primitive
			cfg.Seed = 1234

			first, err := NewNoiseField(&cfg)
			require.NoError(t, err)

			for iteration := 0; iteration < 3; iteration++ {
				again, err := NewNoiseField(&cfg)
				require.NoError(t, err)
				for _, c := range coords {
					assert.Equal(t,
						math.Float64bits(first.Sample(c.x, c.y)),
						math.Float64bits(again.Sample(c.x, c.y)),
						"sample at (%g, %g) must be bit-identical", c.x, c.y)
				}
			}
		})
	}
}

func TestNoiseField_Range(t *testing.T) {
	for _, primitive := range []Primitive{PrimitiveOpenSimplex, PrimitivePerlin} {
		t.Run(string(primitive), func(t *testing.T) {
			cfg := DefaultGenerationConfig()
			cfg.Primitive = primitive

			field, err := NewNoiseField(&cfg)
			require.NoError(t, err)

			for i := 0; i < 500; i++ {
				x := -5 + float64(i)*0.031
				y := 10 - float64(i)*0.027
				v := field.Sample(x, y)
				assert.False(t, math.IsNaN(v), "sample should not be NaN")
				assert.GreaterOrEqual(t, v, -1.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		})
	}
}

func TestNoiseField_SeedsDiffer(t *testing.T) {
	seeds := []uint32{0, 1, 42, 9999}
	coords := []struct{ x, y float64 }{{1.3, 2.7}, {-3.1, 4.4}, {7.7, -0.9}, {0.55, 0.45}}

	samples := make(map[uint32][]float64)
	for _, seed := range seeds {
		cfg := DefaultGenerationConfig()
		cfg.Seed = seed
		field, err := NewNoiseField(&cfg)
		require.NoError(t, err)
		for _, c := range coords {
			samples[seed] = append(samples[seed], field.Sample(c.x, c.y))
		}
	}

	for i, a := range seeds {
		for _, b := range seeds[i+1:] {
			assert.NotEqual(t, samples[a], samples[b], "seeds %d and %d should produce different fields", a, b)
		}
	}
}

func BenchmarkNoiseField_Sample(b *testing.B) {
	cfg := DefaultGenerationConfig()
	field, err := NewNoiseField(&cfg)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		field.Sample(float64(i%1000)*0.01, float64(i%777)*0.01)
	}
}

func TestNoiseField_OctaveSeeds(t *testing.T) {
	tests := []struct {
		name string
		seed uint32
	}{
		{name: "zero seed", seed: 0},
		{name: "wraps past max", seed: math.MaxUint32 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			cfg.Seed = tt.seed

			field, err := NewNoiseField(&cfg)
			require.NoError(t, err)
			require.Len(t, field.sources, cfg.Octaves)

			for i, source := range field.sources {
				want, err := NewSource(cfg.Primitive, tt.seed+uint32(i))
				require.NoError(t, err)
				assert.Equal(t, want.Eval2(0.37, -1.9), source.Eval2(0.37, -1.9), "octave %d", i)
			}
			assert.NotEqual(t, field.sources[0].Eval2(0.37, -1.9), field.sources[1].Eval2(0.37, -1.9))
		})
	}
}

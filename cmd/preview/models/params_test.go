package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/terrain"
)

func paramByLabel(t *testing.T, label string) Param {
	t.Helper()
	for _, p := range DefaultParams() {
		if p.Label == label {
			return p
		}
	}
	require.Failf(t, "missing param", "no param %q", label)
	return Param{}
}

func TestParamAdjust(t *testing.T) {
	tests := []struct {
		label string
		steps int
		check func(t *testing.T, cfg terrain.GenerationConfig)
	}{
		{label: "Frequency", steps: 2, check: func(t *testing.T, cfg terrain.GenerationConfig) {
			assert.Equal(t, 0.4, cfg.Frequency)
		}},
		{label: "Octaves", steps: -3, check: func(t *testing.T, cfg terrain.GenerationConfig) {
			assert.Equal(t, 8, cfg.Octaves)
		}},
		{label: "Persistence", steps: -1, check: func(t *testing.T, cfg terrain.GenerationConfig) {
			assert.Equal(t, 0.55, cfg.Persistence)
		}},
		{label: "Lacunarity", steps: 1, check: func(t *testing.T, cfg terrain.GenerationConfig) {
			assert.Equal(t, 2.6, cfg.Lacunarity)
		}},
		{label: "Seed", steps: 10, check: func(t *testing.T, cfg terrain.GenerationConfig) {
			assert.Equal(t, uint32(10), cfg.Seed)
		}},
		{label: "Falloff", steps: 1, check: func(t *testing.T, cfg terrain.GenerationConfig) {
			assert.Equal(t, terrain.FalloffCircular, cfg.Falloff)
		}},
		{label: "Noise", steps: 1, check: func(t *testing.T, cfg terrain.GenerationConfig) {
			assert.Equal(t, terrain.PrimitivePerlin, cfg.Primitive)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			cfg := terrain.DefaultGenerationConfig()
			changed := paramByLabel(t, tt.label).Adjust(&cfg, tt.steps)
			assert.True(t, changed)
			tt.check(t, cfg)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestParamAdjustClamps(t *testing.T) {
	cfg := terrain.DefaultGenerationConfig()
	octaves := paramByLabel(t, "Octaves")

	assert.True(t, octaves.Adjust(&cfg, -100))
	assert.Equal(t, 1, cfg.Octaves)
	assert.False(t, octaves.Adjust(&cfg, -1), "already at minimum")

	seed := paramByLabel(t, "Seed")
	assert.False(t, seed.Adjust(&cfg, -1), "seed cannot go below zero")
	cfg.Seed = math.MaxUint32
	assert.False(t, seed.Adjust(&cfg, 1))
}

func TestParamChoicesWrap(t *testing.T) {
	cfg := terrain.DefaultGenerationConfig()
	falloff := paramByLabel(t, "Falloff")

	assert.True(t, falloff.Adjust(&cfg, -1))
	assert.Equal(t, terrain.FalloffCircular, cfg.Falloff)
	assert.Equal(t, "circular", falloff.Format(&cfg))
	assert.Equal(t, 1.0, falloff.Fraction(&cfg))

	assert.True(t, falloff.Adjust(&cfg, 1))
	assert.Equal(t, terrain.FalloffSquare, cfg.Falloff)
	assert.False(t, falloff.Adjust(&cfg, 2), "full cycle lands on the same choice")
}

func TestParamFormat(t *testing.T) {
	cfg := terrain.DefaultGenerationConfig()

	assert.Equal(t, "0.30", paramByLabel(t, "Frequency").Format(&cfg))
	assert.Equal(t, "11", paramByLabel(t, "Octaves").Format(&cfg))
	assert.Equal(t, "opensimplex", paramByLabel(t, "Noise").Format(&cfg))
}

func TestRepeatedStepsDoNotDrift(t *testing.T) {
	cfg := terrain.DefaultGenerationConfig()
	freq := paramByLabel(t, "Frequency")

	for i := 0; i < 20; i++ {
		freq.Adjust(&cfg, 1)
	}
	for i := 0; i < 20; i++ {
		freq.Adjust(&cfg, -1)
	}
	assert.Equal(t, 0.3, cfg.Frequency)
}

package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VoidMesh/worldgen/internal/terrain"
)

func TestRenderRaster(t *testing.T) {
	r := &terrain.Raster{
		Width:  2,
		Height: 3,
		Pix:    make([]byte, 18),
	}

	out := RenderRaster(r)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2, "three rows fold into two terminal lines")
	for _, line := range lines {
		assert.Equal(t, 2, strings.Count(line, HalfBlock))
	}

	assert.Empty(t, RenderRaster(nil))
	assert.Empty(t, RenderRaster(&terrain.Raster{}))
}

func TestLegend(t *testing.T) {
	r := &terrain.Raster{
		Width:  2,
		Height: 1,
		Stats:  terrain.Stats{terrain.BiomeSnow: 1, terrain.BiomeDeepWater: 1},
	}

	out := Legend(terrain.DefaultLadder(), r)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 8)
	assert.Contains(t, lines[0], "snow")
	assert.Contains(t, lines[0], "50.0%")
	assert.Contains(t, lines[7], "deep_water")

	assert.NotContains(t, Legend(terrain.DefaultLadder(), nil), "%")
}

package terrain

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	stages []Stage
	passes []error
	cells  []int
}

func (o *recordingObserver) ObserveStage(stage Stage, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stages = append(o.stages, stage)
}

func (o *recordingObserver) ObservePass(cells int, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cells = append(o.cells, cells)
	o.passes = append(o.passes, err)
}

func tinyConfig() GenerationConfig {
	return GenerationConfig{
		Width:       4,
		Height:      4,
		Octaves:     1,
		Frequency:   0.3,
		Lacunarity:  2.5,
		Persistence: 0.6,
		Seed:        0,
		Domain:      Domain{XMin: 0, XMax: 1, YMin: 0, YMax: 1},
	}
}

func TestGenerate_SmallDeterministicCase(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := tinyConfig()

	first, err := NewGenerator().Generate(&cfg)
	require.NoError(t, err)
	second, err := NewGenerator(WithWorkers(3)).Generate(&cfg)
	require.NoError(t, err)

	require.Len(t, first.Pix, 48)
	assert.True(t, bytes.Equal(first.Pix, second.Pix), "independent runs must be byte-identical")
	assert.Equal(t, 4, first.Width)
	assert.Equal(t, 4, first.Height)
}

func TestGenerate_BufferLength(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	sizes := []struct{ w, h uint32 }{{1, 1}, {2, 9}, {17, 3}, {64, 48}}
	for _, size := range sizes {
		cfg := smallConfig()
		cfg.Width, cfg.Height = size.w, size.h

		raster, err := Generate(&cfg)
		require.NoError(t, err)
		assert.Len(t, raster.Pix, int(3*size.w*size.h), "%dx%d", size.w, size.h)

		counted := 0
		for _, n := range raster.Stats {
			counted += n
		}
		assert.Equal(t, int(size.w*size.h), counted)
	}
}

func TestGenerate_InvalidConfigFailsFast(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	observer := &recordingObserver{}
	gen := NewGenerator(WithObserver(observer))

	cfg := tinyConfig()
	cfg.Octaves = 0

	raster, err := gen.Generate(&cfg)
	assert.Nil(t, raster)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Empty(t, observer.stages, "no stage may run for an invalid config")
	require.Len(t, observer.passes, 1)
	assert.ErrorIs(t, observer.passes[0], ErrInvalidConfig)
}

func TestGenerate_ReportsEveryStage(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	observer := &recordingObserver{}
	cfg := tinyConfig()

	_, err := NewGenerator(WithObserver(observer)).Generate(&cfg)
	require.NoError(t, err)

	assert.Equal(t, []Stage{StageSample, StageErode, StageClassify, StageAssemble}, observer.stages)
	assert.Equal(t, []int{16}, observer.cells)
	assert.Equal(t, []error{nil}, observer.passes)
}

func TestGenerator_HeightMapAppliesSelectedFalloff(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	for _, policy := range []Falloff{FalloffSquare, FalloffCircular} {
		t.Run(string(policy), func(t *testing.T) {
			cfg := smallConfig()
			cfg.Falloff = policy

			field, err := NewNoiseField(&cfg)
			require.NoError(t, err)

			grid, err := NewGenerator().HeightMap(&cfg)
			require.NoError(t, err)

			w, h := int(cfg.Width), int(cfg.Height)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					wx, wy := WorldCoord(&cfg, x, y)
					expected := field.Sample(wx, wy) - policy.At(x, y, w, h)
					assert.Equal(t, expected, grid.At(x, y), "(%d,%d)", x, y)
				}
			}
		})
	}
}

func TestGenerate_ClassifiesErodedHeights(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := smallConfig()
	gen := NewGenerator()

	grid, err := gen.HeightMap(&cfg)
	require.NoError(t, err)
	raster, err := gen.Generate(&cfg)
	require.NoError(t, err)

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			assert.Equal(t, Classify(grid.At(x, y)), raster.RGBAt(x, y))
		}
	}

	// Square falloff subtracts 1.0 at the origin corner, so that cell is never land.
	assert.LessOrEqual(t, grid.At(0, 0), 0.0)
}

func TestGenerate_ConcurrentPassesAgree(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := smallConfig()
	gen := NewGenerator()
	reference, err := gen.Generate(&cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := gen.Generate(&cfg)
			if err == nil {
				results[i] = r.Pix
			}
		}(i)
	}
	wg.Wait()

	for i, pix := range results {
		assert.Equal(t, reference.Pix, pix, "pass %d", i)
	}
}

func BenchmarkGenerate_256(b *testing.B) {
	cleanup := testutil.SetupTest(b, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := DefaultGenerationConfig()
	cfg.Width, cfg.Height = 256, 256
	gen := NewGenerator()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gen.Generate(&cfg); err != nil {
			b.Fatal(err)
		}
	}
}

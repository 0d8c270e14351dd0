package terrain

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/internal/logging"
)

// Stage names one step of a generation pass.
type Stage string

const (
	StageSample   Stage = "sample"
	StageErode    Stage = "erode"
	StageClassify Stage = "classify"
	StageAssemble Stage = "assemble"
)

// StageObserver receives timings for every stage and for the whole pass.
type StageObserver interface {
	ObserveStage(stage Stage, d time.Duration)
	ObservePass(cells int, d time.Duration, err error)
}

// Generator runs the sample → erode → classify → assemble pipeline.
// A Generator is stateless between passes and safe for concurrent use.
type Generator struct {
	workers  int
	ladder   *Ladder
	observer StageObserver
	logger   *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers bounds the goroutines used per stage (0 picks the default).
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithObserver reports stage timings to o.
func WithObserver(o StageObserver) Option {
	return func(g *Generator) {
		g.observer = o
	}
}

// WithLogger replaces the component logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithLadder classifies with a custom ladder instead of DefaultLadder().
func WithLadder(l *Ladder) Option {
	return func(g *Generator) {
		if l != nil {
			g.ladder = l
		}
	}
}

// NewGenerator creates a generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		ladder: &defaultLadder,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.WithComponent("generator")
	}
	return g
}

// Ladder returns a copy of the classification ladder in use.
func (g *Generator) Ladder() *Ladder {
	return g.ladder.Clone()
}

// Generate runs one full pass with a default generator.
func Generate(cfg *GenerationConfig) (*Raster, error) {
	return NewGenerator().Generate(cfg)
}

// HeightMap samples and erodes cfg's grid without classifying it.
func (g *Generator) HeightMap(cfg *GenerationConfig) (*HeightGrid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	field, err := NewNoiseField(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	grid := NewSampler(g.workers).SampleField(field, cfg)
	g.observe(StageSample, start)

	start = time.Now()
	if err := NewEroder(g.workers).Apply(cfg.Falloff, grid.Values, grid.Width, grid.Height); err != nil {
		return nil, err
	}
	g.observe(StageErode, start)

	return grid, nil
}

// Generate validates cfg and produces its finished raster. An invalid
// config fails before any sampling.
func (g *Generator) Generate(cfg *GenerationConfig) (*Raster, error) {
	passStart := time.Now()
	logger := g.logger.With("seed", cfg.Seed, "width", cfg.Width, "height", cfg.Height)

	grid, err := g.HeightMap(cfg)
	if err != nil {
		logger.Debug("Generation rejected", "error", err)
		g.observePass(cfg, passStart, err)
		return nil, err
	}

	start := time.Now()
	colors, stats := NewClassifier(g.ladder, g.workers).ClassifyGrid(grid)
	g.observe(StageClassify, start)

	start = time.Now()
	pix := Assemble(colors)
	g.observe(StageAssemble, start)

	g.observePass(cfg, passStart, nil)
	logger.Debug("Generation complete",
		"octaves", cfg.Octaves,
		"falloff", cfg.Falloff,
		"primitive", cfg.Primitive,
		"duration", time.Since(passStart),
	)

	return &Raster{
		Width:  grid.Width,
		Height: grid.Height,
		Pix:    pix,
		Stats:  stats,
	}, nil
}

func (g *Generator) observe(stage Stage, start time.Time) {
	if g.observer != nil {
		g.observer.ObserveStage(stage, time.Since(start))
	}
}

func (g *Generator) observePass(cfg *GenerationConfig, start time.Time, err error) {
	if g.observer != nil {
		g.observer.ObservePass(cfg.Cells(), time.Since(start), err)
	}
}

package terrain

// HeightGrid is a dense row-major grid of heights; Values[y*Width+x].
type HeightGrid struct {
	Width  int
	Height int
	Values []float64
}

// NewHeightGrid allocates a zeroed width*height grid.
func NewHeightGrid(width, height int) *HeightGrid {
	return &HeightGrid{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the height at cell (x, y).
func (g *HeightGrid) At(x, y int) float64 {
	return g.Values[y*g.Width+x]
}

// Len returns the number of cells.
func (g *HeightGrid) Len() int {
	return len(g.Values)
}

// Sampler materialises HeightGrids from a NoiseField.
type Sampler struct {
	runner rowRunner
}

// NewSampler returns a sampler using up to workers goroutines (0 picks the default).
func NewSampler(workers int) *Sampler {
	return &Sampler{runner: rowRunner{workers: workers}}
}

// SampleGrid validates cfg and samples its noise field over the whole domain.
func SampleGrid(cfg *GenerationConfig) (*HeightGrid, error) {
	return NewSampler(0).SampleGrid(cfg)
}

// SampleGrid validates cfg and samples its noise field over the whole domain.
func (s *Sampler) SampleGrid(cfg *GenerationConfig) (*HeightGrid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	field, err := NewNoiseField(cfg)
	if err != nil {
		return nil, err
	}
	return s.SampleField(field, cfg), nil
}

// SampleField fills a grid from field. cfg must already be valid.
//
// The step is extent/dimension, not extent/(dimension-1): the upper edge of
// the domain is never sampled.
func (s *Sampler) SampleField(field *NoiseField, cfg *GenerationConfig) *HeightGrid {
	width := int(cfg.Width)
	height := int(cfg.Height)
	grid := NewHeightGrid(width, height)

	xStep := (cfg.Domain.XMax - cfg.Domain.XMin) / float64(width)
	yStep := (cfg.Domain.YMax - cfg.Domain.YMin) / float64(height)
	xMin := cfg.Domain.XMin
	yMin := cfg.Domain.YMin

	s.runner.forEachCell(width, height, func(x, y, idx int) {
		grid.Values[idx] = field.Sample(xMin+float64(x)*xStep, yMin+float64(y)*yStep)
	})
	return grid
}

// WorldCoord returns the world-space coordinate sampled for cell (x, y).
func WorldCoord(cfg *GenerationConfig, x, y int) (float64, float64) {
	xStep := (cfg.Domain.XMax - cfg.Domain.XMin) / float64(cfg.Width)
	yStep := (cfg.Domain.YMax - cfg.Domain.YMin) / float64(cfg.Height)
	return cfg.Domain.XMin + float64(x)*xStep, cfg.Domain.YMin + float64(y)*yStep
}

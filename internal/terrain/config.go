package terrain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned (wrapped) when a GenerationConfig fails validation.
var ErrInvalidConfig = errors.New("invalid generation config")

// Domain is the world-space rectangle sampled by the grid.
type Domain struct {
	XMin float64 `json:"x_min" yaml:"x_min"`
	XMax float64 `json:"x_max" yaml:"x_max"`
	YMin float64 `json:"y_min" yaml:"y_min"`
	YMax float64 `json:"y_max" yaml:"y_max"`
}

// GenerationConfig holds every parameter of one generation pass.
type GenerationConfig struct {
	Width       uint32    `json:"width" yaml:"width"`
	Height      uint32    `json:"height" yaml:"height"`
	Octaves     int       `json:"octaves" yaml:"octaves"`
	Frequency   float64   `json:"frequency" yaml:"frequency"`
	Lacunarity  float64   `json:"lacunarity" yaml:"lacunarity"`
	Persistence float64   `json:"persistence" yaml:"persistence"`
	Seed        uint32    `json:"seed" yaml:"seed"`
	Domain      Domain    `json:"domain" yaml:"domain"`
	Falloff     Falloff   `json:"falloff" yaml:"falloff"`
	Primitive   Primitive `json:"primitive" yaml:"primitive"`
}

// DefaultGenerationConfig returns the parameters of the stock island map.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Width:       1024,
		Height:      1024,
		Octaves:     11,
		Frequency:   0.3,
		Lacunarity:  2.5,
		Persistence: 0.6,
		Seed:        0,
		Domain: Domain{
			XMin: -5.0,
			XMax: 10.0,
			YMin: -5.0,
			YMax: 10.0,
		},
		Falloff:   FalloffSquare,
		Primitive: PrimitiveOpenSimplex,
	}
}

// Cells returns width*height.
func (c *GenerationConfig) Cells() int {
	return int(c.Width) * int(c.Height)
}

// Validate checks the invariants a pass relies on. It never mutates the config.
func (c *GenerationConfig) Validate() error {
	if c.Width == 0 {
		return fmt.Errorf("%w: width must be positive", ErrInvalidConfig)
	}
	if c.Height == 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalidConfig)
	}
	if c.Octaves <= 0 {
		return fmt.Errorf("%w: octaves must be positive, got %d", ErrInvalidConfig, c.Octaves)
	}

	finite := []struct {
		name  string
		value float64
	}{
		{"frequency", c.Frequency},
		{"lacunarity", c.Lacunarity},
		{"persistence", c.Persistence},
		{"x_min", c.Domain.XMin},
		{"x_max", c.Domain.XMax},
		{"y_min", c.Domain.YMin},
		{"y_max", c.Domain.YMax},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, f.name)
		}
	}

	if !(c.Domain.XMax > c.Domain.XMin) {
		return fmt.Errorf("%w: x_max (%g) must be greater than x_min (%g)", ErrInvalidConfig, c.Domain.XMax, c.Domain.XMin)
	}
	if !(c.Domain.YMax > c.Domain.YMin) {
		return fmt.Errorf("%w: y_max (%g) must be greater than y_min (%g)", ErrInvalidConfig, c.Domain.YMax, c.Domain.YMin)
	}

	if _, err := ParseFalloff(string(c.Falloff)); err != nil {
		return err
	}
	if _, err := ParsePrimitive(string(c.Primitive)); err != nil {
		return err
	}
	return nil
}

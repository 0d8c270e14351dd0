package models

import (
	"fmt"
	"math"

	"github.com/VoidMesh/worldgen/internal/terrain"
)

// Param is one adjustable generation parameter shown as a slider.
type Param struct {
	Label string
	Step  float64
	Min   float64
	Max   float64
	// Choices turns the slider into a cycling selector.
	Choices []string

	get func(*terrain.GenerationConfig) float64
	set func(*terrain.GenerationConfig, float64)
}

// Value returns the parameter's current value in cfg.
func (p Param) Value(cfg *terrain.GenerationConfig) float64 {
	return p.get(cfg)
}

// Adjust moves the parameter by steps increments, clamped to its range.
// Choice parameters wrap. It reports whether cfg changed.
func (p Param) Adjust(cfg *terrain.GenerationConfig, steps int) bool {
	old := p.get(cfg)

	var next float64
	if n := len(p.Choices); n > 0 {
		i := (int(old) + steps) % n
		if i < 0 {
			i += n
		}
		next = float64(i)
	} else {
		next = old + float64(steps)*p.Step
		// Keep decimal steps from accumulating float error.
		next = math.Round(next*1e6) / 1e6
		next = math.Max(p.Min, math.Min(p.Max, next))
	}

	if next == old {
		return false
	}
	p.set(cfg, next)
	return true
}

// Format renders the current value for display.
func (p Param) Format(cfg *terrain.GenerationConfig) string {
	v := p.get(cfg)
	switch {
	case len(p.Choices) > 0:
		return p.Choices[int(v)]
	case p.Step >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// Fraction returns the value's position in [0, 1] for drawing a bar.
func (p Param) Fraction(cfg *terrain.GenerationConfig) float64 {
	if n := len(p.Choices); n > 1 {
		return p.get(cfg) / float64(n-1)
	}
	if p.Max <= p.Min {
		return 0
	}
	return (p.get(cfg) - p.Min) / (p.Max - p.Min)
}

var falloffChoices = []terrain.Falloff{terrain.FalloffSquare, terrain.FalloffCircular}
var primitiveChoices = []terrain.Primitive{terrain.PrimitiveOpenSimplex, terrain.PrimitivePerlin}

// DefaultParams returns the sliders shown in the map view.
func DefaultParams() []Param {
	return []Param{
		{
			Label: "Frequency", Step: 0.05, Min: 0.01, Max: 5,
			get: func(c *terrain.GenerationConfig) float64 { return c.Frequency },
			set: func(c *terrain.GenerationConfig, v float64) { c.Frequency = v },
		},
		{
			Label: "Octaves", Step: 1, Min: 1, Max: 16,
			get: func(c *terrain.GenerationConfig) float64 { return float64(c.Octaves) },
			set: func(c *terrain.GenerationConfig, v float64) { c.Octaves = int(v) },
		},
		{
			Label: "Persistence", Step: 0.05, Min: 0.05, Max: 1,
			get: func(c *terrain.GenerationConfig) float64 { return c.Persistence },
			set: func(c *terrain.GenerationConfig, v float64) { c.Persistence = v },
		},
		{
			Label: "Lacunarity", Step: 0.1, Min: 1, Max: 4,
			get: func(c *terrain.GenerationConfig) float64 { return c.Lacunarity },
			set: func(c *terrain.GenerationConfig, v float64) { c.Lacunarity = v },
		},
		{
			Label: "Seed", Step: 1, Min: 0, Max: math.MaxUint32,
			get: func(c *terrain.GenerationConfig) float64 { return float64(c.Seed) },
			set: func(c *terrain.GenerationConfig, v float64) { c.Seed = uint32(v) },
		},
		{
			Label:   "Falloff",
			Choices: []string{string(terrain.FalloffSquare), string(terrain.FalloffCircular)},
			get: func(c *terrain.GenerationConfig) float64 {
				for i, f := range falloffChoices {
					if f == c.Falloff {
						return float64(i)
					}
				}
				return 0
			},
			set: func(c *terrain.GenerationConfig, v float64) { c.Falloff = falloffChoices[int(v)] },
		},
		{
			Label:   "Noise",
			Choices: []string{string(terrain.PrimitiveOpenSimplex), string(terrain.PrimitivePerlin)},
			get: func(c *terrain.GenerationConfig) float64 {
				for i, p := range primitiveChoices {
					if p == c.Primitive {
						return float64(i)
					}
				}
				return 0
			},
			set: func(c *terrain.GenerationConfig, v float64) { c.Primitive = primitiveChoices[int(v)] },
		},
	}
}

package terrain

import (
	"fmt"
	"math"
	"strings"
)

// Falloff selects the shaping policy applied to a sampled grid.
type Falloff string

const (
	// FalloffSquare leaves a square plateau around the centre and ramps
	// linearly down towards the edges. It is the default.
	FalloffSquare Falloff = "square"
	// FalloffCircular subtracts the Euclidean distance to the centre,
	// normalised by the grid height, without clamping.
	FalloffCircular Falloff = "circular"
)

// plateau is the normalised distance inside which square falloff is zero.
const plateau = 0.5

// ParseFalloff maps a name to a Falloff. The empty string selects square.
func ParseFalloff(name string) (Falloff, error) {
	switch Falloff(strings.ToLower(strings.TrimSpace(name))) {
	case "", FalloffSquare:
		return FalloffSquare, nil
	case FalloffCircular:
		return FalloffCircular, nil
	default:
		return "", fmt.Errorf("%w: unknown falloff %q", ErrInvalidConfig, name)
	}
}

// Eroder applies a Falloff across a grid with a shared row runner.
type Eroder struct {
	runner rowRunner
}

// NewEroder returns an eroder using up to workers goroutines (0 picks the default).
func NewEroder(workers int) *Eroder {
	return &Eroder{runner: rowRunner{workers: workers}}
}

// Apply subtracts policy's falloff from every cell of values in place.
// values is row-major with the given width and height.
func (e *Eroder) Apply(policy Falloff, values []float64, width, height int) error {
	if len(values) != width*height {
		return fmt.Errorf("%w: grid has %d cells, expected %dx%d", ErrInvalidConfig, len(values), width, height)
	}
	fn, err := policy.amount(width, height)
	if err != nil {
		return err
	}
	e.runner.forEachCell(width, height, func(x, y, idx int) {
		values[idx] -= fn(x, y)
	})
	return nil
}

// Apply erodes values in place with the default worker count.
func (f Falloff) Apply(values []float64, width, height int) error {
	return NewEroder(0).Apply(f, values, width, height)
}

// At returns the amount this policy subtracts at cell (x, y).
func (f Falloff) At(x, y, width, height int) float64 {
	fn, err := f.amount(width, height)
	if err != nil {
		return 0
	}
	return fn(x, y)
}

func (f Falloff) amount(width, height int) (func(x, y int) float64, error) {
	policy, err := ParseFalloff(string(f))
	if err != nil {
		return nil, err
	}
	switch policy {
	case FalloffCircular:
		return circularFalloff(width, height), nil
	default:
		return squareFalloff(width, height), nil
	}
}

func squareFalloff(width, height int) func(x, y int) float64 {
	w := float64(width)
	h := float64(height)
	return func(x, y int) float64 {
		dx := math.Abs(float64(x)*2-w) / w
		dy := math.Abs(float64(y)*2-h) / h
		return clamp(math.Max(dx, dy)-plateau, 0, 1) * 2
	}
}

// circularFalloff centres on (width/2-1, height/2-1) in integer grid coordinates.
func circularFalloff(width, height int) func(x, y int) float64 {
	cx := width/2 - 1
	cy := height/2 - 1
	h := float64(height)
	return func(x, y int) float64 {
		ddx := float64(cx - x)
		ddy := float64(cy - y)
		return math.Sqrt(ddx*ddx+ddy*ddy) / h
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

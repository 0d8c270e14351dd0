package terrain

import (
	"fmt"
	"math"
)

// RGB is one 8-bit colour.
type RGB [3]uint8

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

var (
	White       = RGB{255, 255, 255}
	DarkGrey    = RGB{169, 169, 169}
	Grey        = RGB{127, 131, 134}
	ForestGreen = RGB{34, 139, 34}
	GrassGreen  = RGB{98, 125, 75}
	Sand        = RGB{194, 178, 128}
	LightBlue   = RGB{173, 216, 230}
	NavyBlue    = RGB{0, 0, 128}
)

// Biome is a colour band of the threshold ladder.
type Biome int

const (
	BiomeSnow Biome = iota
	BiomeHighRock
	BiomeRock
	BiomeForest
	BiomeGrassland
	BiomeShoreline
	BiomeShallowWater
	BiomeDeepWater

	biomeCount
)

var biomeNames = [biomeCount]string{
	BiomeSnow:         "snow",
	BiomeHighRock:     "high_rock",
	BiomeRock:         "rock",
	BiomeForest:       "forest",
	BiomeGrassland:    "grassland",
	BiomeShoreline:    "shoreline",
	BiomeShallowWater: "shallow_water",
	BiomeDeepWater:    "deep_water",
}

var biomeColors = [biomeCount]RGB{
	BiomeSnow:         White,
	BiomeHighRock:     DarkGrey,
	BiomeRock:         Grey,
	BiomeForest:       ForestGreen,
	BiomeGrassland:    GrassGreen,
	BiomeShoreline:    Sand,
	BiomeShallowWater: LightBlue,
	BiomeDeepWater:    NavyBlue,
}

func (b Biome) String() string {
	if b < 0 || b >= biomeCount {
		return fmt.Sprintf("biome(%d)", int(b))
	}
	return biomeNames[b]
}

// Color returns the fixed colour of b.
func (b Biome) Color() RGB {
	if b < 0 || b >= biomeCount {
		return NavyBlue
	}
	return biomeColors[b]
}

// Biomes lists every biome in ladder order.
func Biomes() []Biome {
	out := make([]Biome, biomeCount)
	for i := range out {
		out[i] = Biome(i)
	}
	return out
}

// Threshold matches heights in an interval. A nil bound is open on that side.
type Threshold struct {
	Biome        Biome
	Lower        *float64
	LowerInclude bool
	Upper        *float64
	UpperInclude bool
}

// Match reports whether h falls inside the threshold's interval.
// NaN never matches.
func (t Threshold) Match(h float64) bool {
	if math.IsNaN(h) {
		return false
	}
	if t.Lower != nil {
		if t.LowerInclude && !(h >= *t.Lower) {
			return false
		}
		if !t.LowerInclude && !(h > *t.Lower) {
			return false
		}
	}
	if t.Upper != nil {
		if t.UpperInclude && !(h <= *t.Upper) {
			return false
		}
		if !t.UpperInclude && !(h < *t.Upper) {
			return false
		}
	}
	return true
}

// String renders the interval, e.g. "0.6 < h <= 0.7".
func (t Threshold) String() string {
	s := ""
	if t.Lower != nil {
		op := "<"
		if t.LowerInclude {
			op = "<="
		}
		s = fmt.Sprintf("%g %s ", *t.Lower, op)
	}
	s += "h"
	if t.Upper != nil {
		op := "<"
		if t.UpperInclude {
			op = "<="
		}
		s += fmt.Sprintf(" %s %g", op, *t.Upper)
	}
	if t.Lower == nil && t.Upper == nil {
		s = "any h"
	}
	return s
}

// Ladder is an ordered threshold table evaluated top-down; the first match
// wins and Fallback covers everything else.
type Ladder struct {
	Thresholds []Threshold
	Fallback   Biome
}

func bound(v float64) *float64 {
	return &v
}

// defaultLadder is the island colour table. It is never handed out directly;
// DefaultLadder returns copies.
//
// The shallow-water rule is "h >= -0.15" with no upper bound. Everything
// above -0.05 is already claimed by earlier rules, so it only ever sees
// [-0.15, -0.05], but it is kept literally.
var defaultLadder = Ladder{
	Thresholds: []Threshold{
		{Biome: BiomeSnow, Lower: bound(0.7)},
		{Biome: BiomeHighRock, Lower: bound(0.6), Upper: bound(0.7), UpperInclude: true},
		{Biome: BiomeRock, Lower: bound(0.5), Upper: bound(0.6), UpperInclude: true},
		{Biome: BiomeForest, Lower: bound(0.25), Upper: bound(0.5), UpperInclude: true},
		{Biome: BiomeGrassland, Lower: bound(0.0), Upper: bound(0.25), UpperInclude: true},
		{Biome: BiomeShoreline, Lower: bound(-0.05), Upper: bound(0.0), UpperInclude: true},
		{Biome: BiomeShallowWater, Lower: bound(-0.15), LowerInclude: true},
	},
	Fallback: BiomeDeepWater,
}

// DefaultLadder returns a copy of the island colour table. Changing the copy
// does not affect Classify or generators built without WithLadder.
func DefaultLadder() *Ladder {
	return defaultLadder.Clone()
}

// Clone returns a deep copy of l.
func (l *Ladder) Clone() *Ladder {
	out := &Ladder{
		Thresholds: make([]Threshold, len(l.Thresholds)),
		Fallback:   l.Fallback,
	}
	for i, t := range l.Thresholds {
		if t.Lower != nil {
			t.Lower = bound(*t.Lower)
		}
		if t.Upper != nil {
			t.Upper = bound(*t.Upper)
		}
		out.Thresholds[i] = t
	}
	return out
}

// Biome returns the first matching biome for h. Non-finite heights always
// take the fallback.
func (l *Ladder) Biome(h float64) Biome {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return l.Fallback
	}
	for _, t := range l.Thresholds {
		if t.Match(h) {
			return t.Biome
		}
	}
	return l.Fallback
}

// Classify maps a height to its biome colour using the default table.
func Classify(h float64) RGB {
	return defaultLadder.Biome(h).Color()
}

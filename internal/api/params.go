package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/VoidMesh/worldgen/internal/terrain"
)

// configFromQuery overlays recognised query parameters onto base.
func configFromQuery(base terrain.GenerationConfig, q url.Values) (terrain.GenerationConfig, error) {
	cfg := base

	uints := map[string]*uint32{
		"width":  &cfg.Width,
		"height": &cfg.Height,
		"seed":   &cfg.Seed,
	}
	for key, dst := range uints {
		if v := q.Get(key); v != "" {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return cfg, fmt.Errorf("%w: %s must be an unsigned integer", terrain.ErrInvalidConfig, key)
			}
			*dst = uint32(n)
		}
	}

	if v := q.Get("octaves"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: octaves must be an integer", terrain.ErrInvalidConfig)
		}
		cfg.Octaves = n
	}

	floats := map[string]*float64{
		"frequency":   &cfg.Frequency,
		"lacunarity":  &cfg.Lacunarity,
		"persistence": &cfg.Persistence,
		"x_min":       &cfg.Domain.XMin,
		"x_max":       &cfg.Domain.XMax,
		"y_min":       &cfg.Domain.YMin,
		"y_max":       &cfg.Domain.YMax,
	}
	for key, dst := range floats {
		if v := q.Get(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return cfg, fmt.Errorf("%w: %s must be a number", terrain.ErrInvalidConfig, key)
			}
			*dst = f
		}
	}

	if v := q.Get("falloff"); v != "" {
		f, err := terrain.ParseFalloff(v)
		if err != nil {
			return cfg, err
		}
		cfg.Falloff = f
	}
	if v := q.Get("primitive"); v != "" {
		p, err := terrain.ParsePrimitive(v)
		if err != nil {
			return cfg, err
		}
		cfg.Primitive = p
	}

	return cfg, nil
}

// checkDimensions enforces the render size cap. A zero limit disables it.
func checkDimensions(cfg terrain.GenerationConfig, limit uint32) error {
	if limit == 0 {
		return nil
	}
	if cfg.Width > limit || cfg.Height > limit {
		return fmt.Errorf("%w: %dx%d exceeds the %d pixel limit", terrain.ErrInvalidConfig, cfg.Width, cfg.Height, limit)
	}
	return nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/VoidMesh/worldgen/internal/config"
	"github.com/VoidMesh/worldgen/internal/encoder"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/preset"
	"github.com/VoidMesh/worldgen/internal/terrain"
)

// options is the parsed command line.
type options struct {
	out      string
	workers  int
	logLevel string
	cfg      terrain.GenerationConfig
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "worldgen:", err)
		os.Exit(2)
	}

	logging.Configure(os.Stderr, logging.ParseLevel(opts.logLevel), logging.TextFormat)
	cfg := opts.cfg

	start := time.Now()
	raster, err := terrain.NewGenerator(terrain.WithWorkers(opts.workers)).Generate(&cfg)
	if err != nil {
		log.Fatal("Generation failed", "error", err)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		log.Fatal("Failed to create output file", "error", err, "path", opts.out)
	}
	if err := encoder.EncodePNG(f, raster.Width, raster.Height, raster.Pix); err != nil {
		f.Close()
		log.Fatal("Failed to write PNG", "error", err, "path", opts.out)
	}
	if err := f.Close(); err != nil {
		log.Fatal("Failed to close output file", "error", err, "path", opts.out)
	}

	logging.WithDuration("generate", time.Since(start)).Info("Terrain written",
		"path", opts.out,
		"width", raster.Width,
		"height", raster.Height,
		"seed", cfg.Seed,
		"land", fmt.Sprintf("%.1f%%", 100*(1-raster.Coverage(terrain.BiomeDeepWater)-raster.Coverage(terrain.BiomeShallowWater))),
	)
}

// loadConfigFile reads either a bare GenerationConfig or a preset.Document
// as written by the presets export.
func loadConfigFile(path, name string, cfg *terrain.GenerationConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc preset.Document
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Presets) > 0 {
		if name == "" {
			*cfg = doc.Presets[0].Config
			return nil
		}
		for _, p := range doc.Presets {
			if p.Name == name {
				*cfg = p.Config
				return nil
			}
		}
		return fmt.Errorf("%w: %s in %s", preset.ErrPresetNotFound, name, path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// parseArgs reads flags into a generation config. A -preset-file is loaded
// first and only flags set explicitly override it.
func parseArgs(args []string) (*options, error) {
	defaults := terrain.DefaultGenerationConfig()
	fs := flag.NewFlagSet("worldgen", flag.ContinueOnError)

	presetFile := fs.String("preset-file", "", "YAML file with a generation config or an exported preset list; explicit flags override it")
	presetName := fs.String("preset", "", "Preset to use from an exported preset list (default: the first)")
	out := fs.String("out", "terrain.png", "Output PNG path")
	workers := fs.Int("workers", 0, "Goroutines per stage (0 = GOMAXPROCS)")
	logLevel := fs.String("log", "info", "Log level (debug, info, warn, error)")

	width := config.Uint32Flag(defaults.Width)
	height := config.Uint32Flag(defaults.Height)
	seed := config.Uint32Flag(defaults.Seed)
	fs.Var(&width, "width", "Grid width in cells")
	fs.Var(&height, "height", "Grid height in cells")
	fs.Var(&seed, "seed", "Noise seed")
	octaves := fs.Int("octaves", defaults.Octaves, "Number of noise octaves")
	frequency := fs.Float64("frequency", defaults.Frequency, "Base frequency")
	lacunarity := fs.Float64("lacunarity", defaults.Lacunarity, "Frequency multiplier per octave")
	persistence := fs.Float64("persistence", defaults.Persistence, "Amplitude multiplier per octave")
	xMin := fs.Float64("x-min", defaults.Domain.XMin, "Domain x minimum")
	xMax := fs.Float64("x-max", defaults.Domain.XMax, "Domain x maximum")
	yMin := fs.Float64("y-min", defaults.Domain.YMin, "Domain y minimum")
	yMax := fs.Float64("y-max", defaults.Domain.YMax, "Domain y maximum")
	falloff := fs.String("falloff", string(defaults.Falloff), "Falloff policy (square, circular)")
	primitive := fs.String("primitive", string(defaults.Primitive), "Base noise (opensimplex, perlin)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := defaults
	if *presetFile != "" {
		if err := loadConfigFile(*presetFile, *presetName, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load preset file: %w", err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = uint32(width)
		case "height":
			cfg.Height = uint32(height)
		case "octaves":
			cfg.Octaves = *octaves
		case "frequency":
			cfg.Frequency = *frequency
		case "lacunarity":
			cfg.Lacunarity = *lacunarity
		case "persistence":
			cfg.Persistence = *persistence
		case "seed":
			cfg.Seed = uint32(seed)
		case "x-min":
			cfg.Domain.XMin = *xMin
		case "x-max":
			cfg.Domain.XMax = *xMax
		case "y-min":
			cfg.Domain.YMin = *yMin
		case "y-max":
			cfg.Domain.YMax = *yMax
		case "falloff":
			cfg.Falloff = terrain.Falloff(*falloff)
		case "primitive":
			cfg.Primitive = terrain.Primitive(*primitive)
		}
	})

	return &options{
		out:      *out,
		workers:  *workers,
		logLevel: *logLevel,
		cfg:      cfg,
	}, nil
}

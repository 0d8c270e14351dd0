package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/VoidMesh/worldgen/internal/terrain"
)

type Config struct {
	Server     ServerConfig             `yaml:"server"`
	Database   DatabaseConfig           `yaml:"database"`
	Logging    LoggingConfig            `yaml:"logging"`
	Render     RenderConfig             `yaml:"render"`
	Generation terrain.GenerationConfig `yaml:"generation"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Path            string        `yaml:"path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	SeedPresets     bool          `yaml:"seed_presets"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type RenderConfig struct {
	// Workers bounds goroutines per pipeline stage; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`
	// MaxDimension caps width and height of on-demand renders.
	MaxDimension uint32 `yaml:"max_dimension"`
	// Preview starts the background preview worker.
	Preview bool `yaml:"preview"`
}

// Load reads configuration from the environment.
func Load() *Config {
	gen := terrain.DefaultGenerationConfig()

	return &Config{
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
			AllowedOrigins:  []string{getEnvStr("CORS_ORIGIN", "*")},
		},
		Database: DatabaseConfig{
			Path:            getEnvStr("DB_PATH", "./worldgen.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			SeedPresets:     getEnvBool("DB_SEED_PRESETS", true),
		},
		Logging: LoggingConfig{
			Level:  getEnvStr("LOG_LEVEL", "info"),
			Format: getEnvStr("LOG_FORMAT", "text"),
		},
		Render: RenderConfig{
			Workers:      getEnvInt("RENDER_WORKERS", 0),
			MaxDimension: uint32(getEnvInt("MAX_DIMENSION", 4096)),
			Preview:      getEnvBool("PREVIEW_ENABLED", true),
		},
		Generation: terrain.GenerationConfig{
			Width:       uint32(getEnvInt("GEN_WIDTH", int(gen.Width))),
			Height:      uint32(getEnvInt("GEN_HEIGHT", int(gen.Height))),
			Octaves:     getEnvInt("GEN_OCTAVES", gen.Octaves),
			Frequency:   getEnvFloat("GEN_FREQUENCY", gen.Frequency),
			Lacunarity:  getEnvFloat("GEN_LACUNARITY", gen.Lacunarity),
			Persistence: getEnvFloat("GEN_PERSISTENCE", gen.Persistence),
			Seed:        uint32(getEnvInt("GEN_SEED", int(gen.Seed))),
			Domain:      gen.Domain,
			Falloff:     terrain.Falloff(getEnvStr("GEN_FALLOFF", string(gen.Falloff))),
			Primitive:   terrain.Primitive(getEnvStr("GEN_PRIMITIVE", string(gen.Primitive))),
		},
	}
}

// LoadFile reads the environment, then overlays the YAML file at path.
// An empty path falls back to WORLDGEN_CONFIG; with neither set only the
// environment is used. Fields missing from the file keep their values.
func LoadFile(path string) (*Config, error) {
	cfg := Load()

	if path == "" {
		path = os.Getenv("WORLDGEN_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Generation.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

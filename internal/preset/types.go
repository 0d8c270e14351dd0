package preset

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/VoidMesh/worldgen/internal/terrain"
)

var (
	// ErrPresetNotFound is returned when no preset has the requested name.
	ErrPresetNotFound = errors.New("preset not found")
	// ErrInvalidPresetName is returned for names outside [a-z0-9_-]{1,64}.
	ErrInvalidPresetName = errors.New("invalid preset name")
)

var namePattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// Preset is a named, stored generation config.
type Preset struct {
	Name        string                   `json:"name" yaml:"name"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`
	Config      terrain.GenerationConfig `json:"config" yaml:"config"`
	CreatedAt   time.Time                `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time                `json:"updated_at" yaml:"-"`
}

// SavePresetRequest is the body accepted when creating or replacing a preset.
type SavePresetRequest struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description,omitempty"`
	Config      *terrain.GenerationConfig `json:"config"`
}

// Document is the YAML layout used by ImportYAML and ExportYAML.
type Document struct {
	Presets []Preset `yaml:"presets"`
}

// ValidateName checks a preset name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q must be 1-64 characters of a-z, 0-9, '_' or '-'", ErrInvalidPresetName, name)
	}
	return nil
}

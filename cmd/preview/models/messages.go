package models

import (
	"time"

	"github.com/VoidMesh/worldgen/internal/preset"
	"github.com/VoidMesh/worldgen/internal/terrain"
)

// ViewType represents the different views in the preview tool
type ViewType int

const (
	MapView ViewType = iota
	PresetsView
)

// SwitchViewMsg is a message to switch views
type SwitchViewMsg struct {
	View ViewType
}

// renderedMsg carries a finished preview pass. seq identifies the request so
// results that arrive after a newer request are dropped.
type renderedMsg struct {
	seq      int
	raster   *terrain.Raster
	duration time.Duration
	err      error
}

// exportedMsg reports a PNG export.
type exportedMsg struct {
	path string
	err  error
}

// presetsLoadedMsg carries the stored presets.
type presetsLoadedMsg struct {
	presets []preset.Preset
	err     error
}

// presetSavedMsg reports a preset written from the map view.
type presetSavedMsg struct {
	name string
	err  error
}

// LoadPresetMsg asks the map view to adopt a preset's config.
type LoadPresetMsg struct {
	Preset preset.Preset
}

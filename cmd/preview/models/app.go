package models

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/cmd/preview/components"
	"github.com/VoidMesh/worldgen/internal/preset"
	"github.com/VoidMesh/worldgen/internal/terrain"
)

// App is the main application model
type App struct {
	// Current state
	currentView ViewType
	width       int
	height      int

	// View models
	mapView MapModel
	presets PresetsModel

	// UI state
	showHelp bool
}

// NewApp creates a new application instance. presets may be nil.
func NewApp(generator *terrain.Generator, presets *preset.Manager, cfg terrain.GenerationConfig, outDir string) *App {
	return &App{
		currentView: MapView,
		mapView:     NewMapModel(generator, presets, cfg, outDir),
		presets:     NewPresetsModel(presets),
	}
}

// Init initializes the application
func (m *App) Init() tea.Cmd {
	log.Debug("Initializing preview tool")
	return tea.Batch(m.mapView.Init(), m.presets.Init())
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.mapView.SetSize(msg.Width, msg.Height)
		m.presets.SetSize(msg.Width, msg.Height)

		// The map is sized to the terminal, so a resize needs a new pass.
		return m, m.mapView.regenerate()

	case tea.KeyMsg:
		// Global key bindings
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
			if m.currentView == MapView {
				return m, tea.Quit
			}
			m.currentView = MapView
			return m, nil

		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab", "p":
			if m.currentView == MapView {
				m.currentView = PresetsView
				return m, m.presets.Init()
			}
			m.currentView = MapView
			return m, nil
		}

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, nil

	case renderedMsg, exportedMsg, LoadPresetMsg:
		_, cmd := m.mapView.Update(msg)
		return m, cmd

	case presetSavedMsg:
		_, cmd := m.mapView.Update(msg)
		return m, tea.Batch(cmd, m.presets.Init())

	case presetsLoadedMsg:
		_, cmd := m.presets.Update(msg)
		return m, cmd
	}

	// Handle help view
	if m.showHelp {
		return m, nil
	}

	// Route message to current view
	var cmd tea.Cmd
	switch m.currentView {
	case MapView:
		_, cmd = m.mapView.Update(msg)
	case PresetsView:
		_, cmd = m.presets.Update(msg)
	}
	return m, cmd
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.currentView {
	case MapView:
		return m.mapView.View()
	case PresetsView:
		return m.presets.View()
	}

	return "Unknown view"
}

// renderHelp renders the help screen
func (m *App) renderHelp() string {
	help := `Global Keys:
  q, Ctrl+C    Quit (from map) / back to map
  ?            Toggle this help
  Tab, p       Switch between map and presets

Map:
  ↑/↓, j/k     Select parameter
  ←/→, h/l     Adjust parameter
  H/L          Adjust by ten steps
  n            Random seed
  r            Regenerate
  s            Export PNG at the configured size
  w            Store current parameters as a preset

Presets:
  ↑/↓, j/k     Select preset
  Enter        Load into the map
  r            Refresh list

Press ? again to close this help`

	return components.BorderStyle.Padding(1, 2).Render(
		components.TitleStyle.Render("Worldgen Preview - Help") + "\n\n" + help,
	)
}

package models

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/worldgen/cmd/preview/components"
	"github.com/VoidMesh/worldgen/internal/preset"
)

// PresetsModel lists stored presets and loads one into the map view.
type PresetsModel struct {
	manager *preset.Manager
	presets []preset.Preset
	cursor  int
	err     error
	width   int
	height  int
}

// NewPresetsModel creates a new presets model. manager may be nil.
func NewPresetsModel(manager *preset.Manager) PresetsModel {
	return PresetsModel{manager: manager}
}

// Init loads the preset list
func (m *PresetsModel) Init() tea.Cmd {
	if m.manager == nil {
		return nil
	}
	return loadPresetsCmd(m.manager)
}

func loadPresetsCmd(manager *preset.Manager) tea.Cmd {
	return func() tea.Msg {
		presets, err := manager.List(context.Background())
		return presetsLoadedMsg{presets: presets, err: err}
	}
}

// Update handles preset list messages
func (m *PresetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case presetsLoadedMsg:
		m.presets = msg.presets
		m.err = msg.err
		if m.cursor >= len(m.presets) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if len(m.presets) == 0 {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			m.cursor = (m.cursor - 1 + len(m.presets)) % len(m.presets)
		case "down", "j":
			m.cursor = (m.cursor + 1) % len(m.presets)
		case "enter", " ":
			selected := m.presets[m.cursor]
			return m, tea.Batch(
				func() tea.Msg { return LoadPresetMsg{Preset: selected} },
				func() tea.Msg { return SwitchViewMsg{View: MapView} },
			)
		case "r":
			return m, m.Init()
		}
	}

	return m, nil
}

// Selected returns the highlighted preset, if any.
func (m *PresetsModel) Selected() (preset.Preset, bool) {
	if len(m.presets) == 0 {
		return preset.Preset{}, false
	}
	return m.presets[m.cursor], true
}

// View renders the preset list
func (m *PresetsModel) View() string {
	var s strings.Builder
	s.WriteString(components.TitleStyle.Render("Presets") + "\n\n")

	switch {
	case m.manager == nil:
		s.WriteString(components.HelpStyle.Render("Start with -db to browse stored presets."))
	case m.err != nil:
		s.WriteString(components.ErrorStyle.Render(m.err.Error()))
	case len(m.presets) == 0:
		s.WriteString(components.HelpStyle.Render("No presets stored yet. Press w in the map view to add one."))
	default:
		var rows []string
		for i, p := range m.presets {
			line := fmt.Sprintf("%-24s seed %-10d %-9s %s", p.Name, p.Config.Seed, p.Config.Falloff, p.Description)
			if i == m.cursor {
				rows = append(rows, components.SelectedParamStyle.Render(line))
			} else {
				rows = append(rows, components.ParamStyle.Render(line))
			}
		}
		s.WriteString(components.BorderStyle.Render(strings.Join(rows, "\n")))
	}

	s.WriteString("\n\n")
	s.WriteString(components.StatusBarStyle.Width(m.width).Render("↑/↓ select • Enter load • r refresh • q back"))
	return s.String()
}

// SetSize updates the preset list size
func (m *PresetsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

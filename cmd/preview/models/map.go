package models

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/cmd/preview/components"
	"github.com/VoidMesh/worldgen/internal/encoder"
	"github.com/VoidMesh/worldgen/internal/preset"
	"github.com/VoidMesh/worldgen/internal/terrain"
)

const (
	minMapCols = 8
	minMapRows = 4
)

// MapModel shows the terrain next to its parameter sliders.
type MapModel struct {
	generator *terrain.Generator
	presets   *preset.Manager
	outDir    string

	// cfg is the export config; previews reuse it at terminal size.
	cfg    terrain.GenerationConfig
	params []Param
	cursor int

	raster    *terrain.Raster
	seq       int
	rendering bool
	duration  time.Duration
	status    string
	err       error

	width  int
	height int
}

// NewMapModel creates a new map model
func NewMapModel(generator *terrain.Generator, presets *preset.Manager, cfg terrain.GenerationConfig, outDir string) MapModel {
	return MapModel{
		generator: generator,
		presets:   presets,
		outDir:    outDir,
		cfg:       cfg,
		params:    DefaultParams(),
	}
}

// Init starts the first render
func (m *MapModel) Init() tea.Cmd {
	return m.regenerate()
}

// Update handles map messages
func (m *MapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderedMsg:
		if msg.seq != m.seq {
			log.Debug("Dropping stale render", "seq", msg.seq, "current", m.seq)
			return m, nil
		}
		m.rendering = false
		m.err = msg.err
		if msg.err == nil {
			m.raster = msg.raster
			m.duration = msg.duration
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "saved " + msg.path
		}
		return m, nil

	case presetSavedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "stored preset " + msg.name
		}
		return m, nil

	case LoadPresetMsg:
		m.cfg = msg.Preset.Config
		m.status = "loaded preset " + msg.Preset.Name
		return m, m.regenerate()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.cursor = (m.cursor - 1 + len(m.params)) % len(m.params)
		case "down", "j":
			m.cursor = (m.cursor + 1) % len(m.params)
		case "left", "h":
			return m, m.adjust(-1)
		case "right", "l":
			return m, m.adjust(1)
		case "H", "shift+left":
			return m, m.adjust(-10)
		case "L", "shift+right":
			return m, m.adjust(10)
		case "n":
			m.cfg.Seed = rand.Uint32()
			return m, m.regenerate()
		case "r":
			return m, m.regenerate()
		case "s":
			m.status = "exporting..."
			return m, exportCmd(m.generator, m.cfg, m.outDir)
		case "w":
			if m.presets == nil {
				m.status = "no preset database (-db)"
				return m, nil
			}
			return m, savePresetCmd(m.presets, m.cfg)
		}
	}

	return m, nil
}

// adjust moves the selected slider and rerenders if the config changed.
func (m *MapModel) adjust(steps int) tea.Cmd {
	if !m.params[m.cursor].Adjust(&m.cfg, steps) {
		return nil
	}
	return m.regenerate()
}

// regenerate starts an async render sized to the map area.
func (m *MapModel) regenerate() tea.Cmd {
	cols, rows := m.mapSize()
	if cols == 0 {
		return nil
	}

	m.seq++
	m.rendering = true
	m.err = nil

	cfg := m.cfg
	cfg.Width = uint32(cols)
	cfg.Height = uint32(rows * 2)
	return renderCmd(m.generator, cfg, m.seq)
}

// mapSize returns the map area in terminal cells, or zeros before the
// terminal size is known.
func (m *MapModel) mapSize() (cols, rows int) {
	if m.width == 0 || m.height == 0 {
		return 0, 0
	}
	cols = m.width - components.SidebarWidth - 2
	rows = m.height - 3
	if cols < minMapCols {
		cols = minMapCols
	}
	if rows < minMapRows {
		rows = minMapRows
	}
	return cols, rows
}

func renderCmd(gen *terrain.Generator, cfg terrain.GenerationConfig, seq int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		raster, err := gen.Generate(&cfg)
		return renderedMsg{seq: seq, raster: raster, duration: time.Since(start), err: err}
	}
}

func exportCmd(gen *terrain.Generator, cfg terrain.GenerationConfig, dir string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, fmt.Sprintf("worldgen-%d-%dx%d.png", cfg.Seed, cfg.Width, cfg.Height))
		return exportedMsg{path: path, err: exportPNG(gen, cfg, path)}
	}
}

func exportPNG(gen *terrain.Generator, cfg terrain.GenerationConfig, path string) error {
	raster, err := gen.Generate(&cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := encoder.EncodePNG(f, raster.Width, raster.Height, raster.Pix); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func savePresetCmd(presets *preset.Manager, cfg terrain.GenerationConfig) tea.Cmd {
	return func() tea.Msg {
		name := fmt.Sprintf("preview-%d", cfg.Seed)
		_, err := presets.Save(context.Background(), preset.Preset{
			Name:        name,
			Description: "Saved from the terminal preview",
			Config:      cfg,
		})
		return presetSavedMsg{name: name, err: err}
	}
}

// View renders the map and sidebar side by side
func (m *MapModel) View() string {
	sidebar := m.renderSidebar()

	var mapArea string
	switch {
	case m.raster != nil:
		mapArea = components.RenderRaster(m.raster)
	case m.err != nil:
		mapArea = components.ErrorStyle.Render(m.err.Error())
	default:
		mapArea = components.HelpStyle.Render("generating...")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapArea)
	return body + "\n" + m.renderStatusBar()
}

func (m *MapModel) renderSidebar() string {
	var s strings.Builder
	s.WriteString(components.TitleStyle.Render("Worldgen Preview") + "\n")

	const barWidth = 10
	var rows []string
	for i, p := range m.params {
		filled := int(p.Fraction(&m.cfg)*barWidth + 0.5)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		line := fmt.Sprintf("%-11s %s %s", p.Label, bar, p.Format(&m.cfg))
		if i == m.cursor {
			rows = append(rows, components.SelectedParamStyle.Render(line))
		} else {
			rows = append(rows, components.ParamStyle.Render(line))
		}
	}
	s.WriteString(components.InfoPanelStyle.Render(strings.Join(rows, "\n")) + "\n")

	s.WriteString(components.SubtitleStyle.Render("Biomes") + "\n")
	s.WriteString(components.InfoPanelStyle.Render(components.Legend(m.generator.Ladder(), m.raster)))

	return lipgloss.NewStyle().Width(components.SidebarWidth).Render(s.String())
}

func (m *MapModel) renderStatusBar() string {
	state := fmt.Sprintf("%dx%d export • seed %d", m.cfg.Width, m.cfg.Height, m.cfg.Seed)
	if m.rendering {
		state += " • rendering"
	} else if m.duration > 0 {
		state += fmt.Sprintf(" • %s", m.duration.Round(time.Millisecond))
	}
	if m.err != nil {
		state += " • " + components.ErrorStyle.Render(m.err.Error())
	} else if m.status != "" {
		state += " • " + m.status
	}
	state += " • ←/→ adjust • s save png • w store preset • ? help"
	return components.StatusBarStyle.Width(m.width).Render(state)
}

// SetSize updates the map size
func (m *MapModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

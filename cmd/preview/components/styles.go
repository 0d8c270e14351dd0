package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/worldgen/internal/terrain"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")
)

// Base styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	// Border styles
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray)

	// Parameter list styles
	ParamStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	SelectedParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	// Info panel styles
	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1).
			Width(SidebarWidth - 2)

	// Status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor).
			Bold(true)

	// Help styles
	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(0, 1)
)

// SidebarWidth is the column count reserved for the parameter panel.
const SidebarWidth = 36

// HalfBlock draws two vertically stacked cells in one terminal cell.
const HalfBlock = "▀"

// Swatch renders a two-cell colour sample.
func Swatch(c terrain.RGB) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

// RenderRaster draws r with half blocks: each terminal row shows two raster
// rows, the upper as foreground and the lower as background. An odd last row
// is drawn against the terminal background.
func RenderRaster(r *terrain.Raster) string {
	if r == nil || r.Width == 0 || r.Height == 0 {
		return ""
	}

	var b strings.Builder
	for y := 0; y < r.Height; y += 2 {
		for x := 0; x < r.Width; x++ {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(r.RGBAt(x, y).Hex()))
			if y+1 < r.Height {
				style = style.Background(lipgloss.Color(r.RGBAt(x, y+1).Hex()))
			}
			b.WriteString(style.Render(HalfBlock))
		}
		if y+2 < r.Height {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Legend lists every biome with its swatch and, when stats are present,
// its share of the map.
func Legend(ladder *terrain.Ladder, r *terrain.Raster) string {
	lines := make([]string, 0, len(ladder.Thresholds)+1)
	row := func(b terrain.Biome) string {
		line := fmt.Sprintf("%s %-13s", Swatch(b.Color()), b.String())
		if r != nil {
			line += fmt.Sprintf(" %5.1f%%", 100*r.Coverage(b))
		}
		return line
	}
	for _, t := range ladder.Thresholds {
		lines = append(lines, row(t.Biome))
	}
	lines = append(lines, row(ladder.Fallback))
	return strings.Join(lines, "\n")
}

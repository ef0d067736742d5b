package terminal

import "github.com/charmbracelet/lipgloss"

// Prairie palette
var (
	Wheat = lipgloss.Color("#E8C872")
	Sky   = lipgloss.Color("#7FB3D5")
	Soil  = lipgloss.Color("#5D4037")
	Dusk  = lipgloss.Color("#9E9E9E")
)

// Styles holds the lipgloss styles used to render the slideshow.
type Styles struct {
	Frame     lipgloss.Style
	Title     lipgloss.Style
	Caption   lipgloss.Style
	Image     lipgloss.Style
	DotActive lipgloss.Style
	DotIdle   lipgloss.Style
	Counter   lipgloss.Style
	BarFilled lipgloss.Style
	BarEmpty  lipgloss.Style
	Help      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Frame:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Soil).Padding(1, 2),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(Wheat),
		Caption:   lipgloss.NewStyle().Italic(true),
		Image:     lipgloss.NewStyle().Foreground(Dusk),
		DotActive: lipgloss.NewStyle().Foreground(Wheat),
		DotIdle:   lipgloss.NewStyle().Foreground(Dusk),
		Counter:   lipgloss.NewStyle().Foreground(Sky),
		BarFilled: lipgloss.NewStyle().Foreground(Wheat),
		BarEmpty:  lipgloss.NewStyle().Foreground(Dusk),
		Help:      lipgloss.NewStyle().Foreground(Dusk).Faint(true),
	}
}

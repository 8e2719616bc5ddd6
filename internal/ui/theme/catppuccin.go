package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(1, 2)

	PaneActive = Pane.BorderForeground(Lavender)

	Title  = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Subtext0)
	Hot    = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Button = lipgloss.NewStyle().Foreground(Base).Background(Lavender).Padding(0, 2)
)

var zoneColors = map[string]lipgloss.Color{
	"Out of Range": Subtext0,
	"Fat Burn":     Green,
	"Cardio":       Yellow,
	"Peak":         Red,
}

// Zone styles a reading in the colour of its heart-rate zone.
func Zone(name string) lipgloss.Style {
	c, ok := zoneColors[name]
	if !ok {
		c = Text
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

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
	Blue     = lipgloss.Color("#89b4fa")
	Green    = lipgloss.Color("#a6e3a1")
	Teal     = lipgloss.Color("#94e2d5")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Overlay0 = lipgloss.Color("#6c7086")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Warn  = lipgloss.NewStyle().Foreground(Red).Bold(true)
)

// Zone colours follow the quadrant palette of the board: quick wins green,
// major projects blue, fill-ins amber, ignore grey.
var zoneColors = map[string]lipgloss.Color{
	"QUICK_WINS":     Green,
	"MAJOR_PROJECTS": Blue,
	"FILL_INS":       Yellow,
	"IGNORE":         Overlay0,
}

func ZoneStyle(zone string) lipgloss.Style {
	c, ok := zoneColors[zone]
	if !ok {
		c = Subtext0
	}
	return lipgloss.NewStyle().Foreground(c)
}

var statusColors = map[string]lipgloss.Color{
	"not-started": Subtext0,
	"trial":       Green,
	"focus":       Lavender,
	"sustain":     Sapphire,
	"drop":        Red,
	"completed":   Overlay0,
}

func StatusStyle(status string) lipgloss.Style {
	c, ok := statusColors[status]
	if !ok {
		c = Subtext0
	}
	return lipgloss.NewStyle().Foreground(c)
}

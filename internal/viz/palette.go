package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/markovsim/internal/markov"
)

// Look holds the presentation attributes of one state.
type Look struct {
	Strong lipgloss.Color
	Light  lipgloss.Color
	Icon   string
}

var palette = map[markov.State]Look{
	markov.Sunny:  {Strong: "#FFB300", Light: "#FFE082", Icon: "☀️"},
	markov.Cloudy: {Strong: "#546E7A", Light: "#CFD8DC", Icon: "☁️"},
	markov.Rainy:  {Strong: "#1976D2", Light: "#90CAF9", Icon: "🌧️"},
}

func LookOf(s markov.State) Look {
	if l, ok := palette[s]; ok {
		return l
	}
	return Look{Strong: "#888899", Light: "#cccccc", Icon: "?"}
}

func (l Look) Style() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(l.Strong).Bold(true)
}

// StateLabel renders the icon and coloured name of s.
func StateLabel(s markov.State) string {
	l := LookOf(s)
	return l.Icon + " " + l.Style().Render(s.String())
}

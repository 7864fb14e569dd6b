package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/markovsim/internal/markov"
	"github.com/san-kum/markovsim/internal/stats"
)

const (
	cellWidth  = 10
	labelWidth = 10
	barWidth   = 30
)

// RenderMatrix draws m as a table labelled by state, with decimals digits
// per cell. A cell at (selRow, selCol) is highlighted; pass -1 to disable.
func RenderMatrix(m markov.Matrix, decimals, selRow, selCol int) string {
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Right)
	label := lipgloss.NewStyle().Width(labelWidth)

	var b strings.Builder
	b.WriteString(label.Render(""))
	for _, s := range markov.States() {
		b.WriteString(cell.Inherit(LookOf(s).Style()).Render(s.String()))
	}
	b.WriteByte('\n')

	for _, from := range markov.States() {
		b.WriteString(label.Inherit(LookOf(from).Style()).Render(from.String()))
		for _, to := range markov.States() {
			text := fmt.Sprintf("%.*f", decimals, m[from][to])
			if int(from) == selRow && int(to) == selCol {
				b.WriteString(cell.Inherit(Selected).Render(text))
			} else {
				b.WriteString(cell.Render(text))
			}
		}
		if from != markov.Rainy {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderDistribution lists each state's probability with a bar.
func RenderDistribution(d markov.Distribution) string {
	lines := make([]string, 0, len(d))
	for _, p := range d {
		l := LookOf(p.State)
		lines = append(lines, fmt.Sprintf("%s %-9s %s %s",
			l.Icon,
			p.State.String(),
			ProgressBar(p.P, barWidth, l.Style()),
			MetricValue.Render(fmt.Sprintf("%8.4f%%", p.P*100)),
		))
	}
	return strings.Join(lines, "\n")
}

// RenderMostLikely phrases the mode of the day-n distribution.
func RenderMostLikely(days int, s markov.State, p float64) string {
	return fmt.Sprintf("%s %s: %s (%s)",
		MetricLabel.Render("most likely on day"),
		MetricValue.Render(fmt.Sprint(days)),
		StateLabel(s),
		MetricValue.Render(fmt.Sprintf("%.2f%%", p*100)),
	)
}

// RenderHistory draws the first upto days as icons, upto < 0 draws all.
func RenderHistory(h markov.History, upto int) string {
	if len(h) == 0 {
		return Subtle.Render("no history")
	}
	if upto < 0 || upto > len(h) {
		upto = len(h)
	}
	var b strings.Builder
	for i := 0; i < upto; i++ {
		if i > 0 && i%20 == 0 {
			b.WriteByte('\n')
		}
		b.WriteString(LookOf(h[i]).Icon)
		b.WriteByte(' ')
	}
	return strings.TrimRight(b.String(), " ")
}

// RenderStats shows visit counts and shares per state.
func RenderStats(s stats.Summary) string {
	lines := make([]string, 0, len(s.States)+1)
	for _, st := range s.States {
		l := LookOf(st.State)
		lines = append(lines, fmt.Sprintf("%s %-9s %4d (%6.2f%%) %s  %s",
			l.Icon,
			st.State.String(),
			st.Count,
			st.Percent,
			ProgressBar(st.Percent/100, barWidth, l.Style()),
			MetricLabel.Render(fmt.Sprintf("longest run %d", st.LongestRun)),
		))
	}
	return strings.Join(lines, "\n")
}

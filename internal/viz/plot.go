package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/markovsim/internal/markov"
)

// MarginalSeries returns, per state, P(state on day k | initial) for
// k = 0..days.
func MarginalSeries(e *markov.Engine, initial markov.State, days int) ([][]float64, error) {
	series := make([][]float64, markov.NumStates)
	for k := 0; k <= days; k++ {
		d, err := e.ExpectedDistribution(k, initial)
		if err != nil {
			return nil, err
		}
		for _, p := range d {
			series[p.State] = append(series[p.State], p.P)
		}
	}
	return series, nil
}

// PlotMarginals charts how the marginal distribution evolves towards the
// long-run one.
func PlotMarginals(e *markov.Engine, initial markov.State, days int) (string, error) {
	series, err := MarginalSeries(e, initial, days)
	if err != nil {
		return "", err
	}
	width := days + 1
	if width < 40 {
		width = 40
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Goldenrod, asciigraph.SlateGray, asciigraph.DodgerBlue),
		asciigraph.SeriesLegends(markov.Labels()...),
		asciigraph.Caption("P(state on day k | "+initial.String()+")"),
	), nil
}

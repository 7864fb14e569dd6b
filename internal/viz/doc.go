// Package viz renders chain results for the terminal.
//
// Everything here returns strings styled with lipgloss:
//
//   - [RenderMatrix]: a transition matrix labelled by state
//   - [RenderDistribution]: per-state probabilities with bars
//   - [RenderHistory]: a simulated history as weather icons
//   - [RenderStats]: visit counts and shares of a history
//   - [PlotMarginals]: asciigraph chart of P(state on day k)
//
// Colours and icons per state come from [LookOf].
package viz

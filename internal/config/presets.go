package config

import (
	"sort"

	"github.com/san-kum/markovsim/internal/markov"
)

// Presets are named weather regimes; rows and columns follow the state
// enumeration (sunny, cloudy, rainy).
var Presets = map[string]markov.Matrix{
	"default": markov.Default(),
	"dry_season": {
		{0.85, 0.10, 0.05},
		{0.50, 0.35, 0.15},
		{0.40, 0.40, 0.20},
	},
	"rainy_season": {
		{0.40, 0.30, 0.30},
		{0.15, 0.40, 0.45},
		{0.10, 0.25, 0.65},
	},
	"uniform": {
		{1.0 / 3, 1.0 / 3, 1.0 / 3},
		{1.0 / 3, 1.0 / 3, 1.0 / 3},
		{1.0 / 3, 1.0 / 3, 1.0 / 3},
	},
	"sticky": {
		{0.90, 0.05, 0.05},
		{0.05, 0.90, 0.05},
		{0.05, 0.05, 0.90},
	},
}

func GetPreset(name string) (markov.Matrix, bool) {
	m, ok := Presets[name]
	return m, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

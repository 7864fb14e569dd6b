// Package stats summarises simulated histories.
package stats

import "github.com/san-kum/markovsim/internal/markov"

type StateSummary struct {
	State      markov.State `json:"state"`
	Count      int          `json:"count"`
	Percent    float64      `json:"percent"`
	LongestRun int          `json:"longest_run"`
}

type Summary struct {
	Days         int            `json:"days"`
	States       []StateSummary `json:"states"`
	MostFrequent markov.State   `json:"most_frequent"`
}

// Summarize counts visits per state. Percentages are zero for an empty
// history; ties for most frequent go to the earliest state.
func Summarize(h markov.History) Summary {
	s := Summary{
		Days:   h.Len(),
		States: make([]StateSummary, markov.NumStates),
	}
	for _, st := range markov.States() {
		s.States[st].State = st
	}

	run := 0
	for i, st := range h {
		s.States[st].Count++
		if i > 0 && h[i-1] == st {
			run++
		} else {
			run = 1
		}
		if run > s.States[st].LongestRun {
			s.States[st].LongestRun = run
		}
	}

	best := -1
	for i := range s.States {
		if s.Days > 0 {
			s.States[i].Percent = float64(s.States[i].Count) / float64(s.Days) * 100
		}
		if s.States[i].Count > best {
			best = s.States[i].Count
			s.MostFrequent = s.States[i].State
		}
	}
	return s
}

func (s Summary) Count(st markov.State) int { return s.States[st].Count }

func (s Summary) Percent(st markov.State) float64 { return s.States[st].Percent }

// Empirical estimates a transition matrix from consecutive days. Rows of
// states never left stay zero, so the result is not necessarily stochastic.
func Empirical(h markov.History) markov.Matrix {
	var counts markov.Matrix
	for i := 1; i < len(h); i++ {
		counts[h[i-1]][h[i]]++
	}
	for i := 0; i < markov.NumStates; i++ {
		total := counts.RowSum(i)
		if total == 0 {
			continue
		}
		for j := 0; j < markov.NumStates; j++ {
			counts[i][j] /= total
		}
	}
	return counts
}

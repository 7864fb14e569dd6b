// Package diagram describes the chain as a state automaton.
package diagram

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/markovsim/internal/markov"
	"github.com/san-kum/markovsim/internal/stats"
	"github.com/san-kum/markovsim/internal/viz"
)

// Edge is one non-zero transition.
type Edge struct {
	From markov.State
	To   markov.State
	P    float64
}

func (e Edge) SelfLoop() bool { return e.From == e.To }

// Edges lists the non-zero transitions of m in row-major order.
func Edges(m markov.Matrix) []Edge {
	var edges []Edge
	for _, from := range markov.States() {
		for _, to := range markov.States() {
			if p := m[from][to]; p > 0 {
				edges = append(edges, Edge{From: from, To: to, P: p})
			}
		}
	}
	return edges
}

// DOT renders m as a Graphviz digraph. When h is non-empty each node also
// carries its visit count and share.
func DOT(m markov.Matrix, h markov.History) string {
	var sb strings.Builder

	sb.WriteString("digraph weather {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica-Bold\"];\n")
	sb.WriteString("\n")

	var summary stats.Summary
	if len(h) > 0 {
		summary = stats.Summarize(h)
	}

	for _, s := range markov.States() {
		look := viz.LookOf(s)
		label := s.String()
		if len(h) > 0 {
			label = fmt.Sprintf("%s\\n%d (%.1f%%)", s, summary.Count(s), summary.Percent(s))
		}
		fmt.Fprintf(&sb, "  %q [label=\"%s\", fillcolor=%q, fontcolor=%q];\n",
			s.String(), label, string(look.Light), string(look.Strong))
	}
	sb.WriteString("\n")

	for _, e := range Edges(m) {
		fmt.Fprintf(&sb, "  %q -> %q [label=\"%.4f\", color=%q];\n",
			e.From.String(), e.To.String(), e.P, string(viz.LookOf(e.From).Strong))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func SaveDOT(path string, m markov.Matrix, h markov.History) error {
	return os.WriteFile(path, []byte(DOT(m, h)), 0644)
}

// Text lists the transitions for terminals without Graphviz.
func Text(m markov.Matrix) string {
	var sb strings.Builder
	for _, e := range Edges(m) {
		arrow := "──▶"
		if e.SelfLoop() {
			arrow = "──↺"
		}
		fmt.Fprintf(&sb, "%s %s %s  %.4f\n", viz.StateLabel(e.From), arrow, viz.StateLabel(e.To), e.P)
	}
	return sb.String()
}

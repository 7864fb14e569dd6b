package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/san-kum/markovsim/internal/app"
	"github.com/san-kum/markovsim/internal/config"
	"github.com/san-kum/markovsim/internal/diagram"
	"github.com/san-kum/markovsim/internal/markov"
	"github.com/san-kum/markovsim/internal/matrixio"
	"github.com/san-kum/markovsim/internal/stats"
	"github.com/san-kum/markovsim/internal/tui"
	"github.com/san-kum/markovsim/internal/viz"
)

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if stdoutIsTerminal() {
		return runTUI(cmd, args)
	}
	return runCalc(cmd, args)
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	return tui.Run(s.ctrl, s.initial, s.cfg.Days)
}

func runCalc(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	calc, err := s.calculate()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(calc)
	}

	printCalculation(out, calc)

	if stationary {
		fmt.Fprintln(out)
		if calc.Stationary == nil {
			fmt.Fprintln(out, viz.Subtle.Render("long run: the chain does not settle (periodic)"))
		} else {
			fmt.Fprintln(out, viz.BoxWithTitle("long run", viz.RenderDistribution(calc.Stationary)))
		}
	}

	if plot {
		graph, err := viz.PlotMarginals(s.ctrl.Engine(), calc.Initial, calc.Days)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
	return nil
}

func printCalculation(w io.Writer, calc *app.Calculation) {
	fmt.Fprintln(w, viz.BoxWithTitle("transition matrix P", viz.RenderMatrix(calc.Matrix, 2, -1, -1)))
	fmt.Fprintln(w, viz.BoxWithTitle(fmt.Sprintf("P^%d", calc.Days), viz.RenderMatrix(calc.Power, 4, -1, -1)))
	fmt.Fprintln(w, viz.BoxWithTitle(fmt.Sprintf("day %d from %s", calc.Days, calc.Initial), viz.RenderDistribution(calc.Marginal)))
	fmt.Fprintln(w, viz.RenderMostLikely(calc.Days, calc.MostLikely.State, calc.MostLikely.Probability))
	fmt.Fprintln(w)
	fmt.Fprintln(w, viz.BoxWithTitle("simulated history", viz.RenderHistory(calc.History, -1)))
	fmt.Fprintln(w, viz.RenderStats(calc.Stats))
}

func runValidate(cmd *cobra.Command, args []string) error {
	tm, err := matrixio.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.OKText.Render("valid transition matrix"))
	fmt.Fprintln(out, viz.RenderMatrix(tm.Matrix(), 4, -1, -1))
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	h, err := s.ctrl.Simulate(app.Request{Days: s.cfg.Days, Initial: s.initial.String()})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tSTATE")
	for i, st := range h {
		fmt.Fprintf(w, "%d\t%s\n", i+1, st)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.RenderStats(stats.Summarize(h)))
	return nil
}

func runDiagram(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	m := s.ctrl.Matrix()

	var h markov.History
	if cmd.Flags().Changed("days") {
		if h, err = s.ctrl.Simulate(app.Request{Days: s.cfg.Days, Initial: s.initial.String()}); err != nil {
			return err
		}
	}

	var text string
	switch strings.ToLower(diagramFormat) {
	case "dot":
		text = diagram.DOT(m, h)
	case "text":
		text = diagram.Text(m)
	default:
		return fmt.Errorf("unknown diagram format: %s", diagramFormat)
	}

	if diagramOut != "" {
		if diagramFormat == "dot" {
			return diagram.SaveDOT(diagramOut, m, h)
		}
		return os.WriteFile(diagramOut, []byte(text), 0644)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if len(separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", separator)
	}
	if err := matrixio.WriteFile(args[0], s.ctrl.Matrix(), rune(separator[0])); err != nil {
		return err
	}
	s.logger.Info("matrix exported", "path", args[0])
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range config.ListPresets() {
		m, _ := config.GetPreset(name)
		fmt.Fprintln(out, viz.BoxWithTitle(name, viz.RenderMatrix(m, 2, -1, -1)))
	}
	return nil
}

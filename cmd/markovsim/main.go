package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	seed       int64
	preset     string
	matrixFile string

	days       int
	initial    string
	asJSON     bool
	plot       bool
	stationary bool

	diagramOut    string
	diagramFormat string
	separator     string
)

// main registers the commands and runs the root command, which opens the
// terminal UI when no subcommand is given.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "markovsim",
		Short:        "three-state weather markov chain simulator",
		SilenceUsage: true,
		RunE:         runRoot,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: text or json")
	pf.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for the simulated history")
	pf.StringVar(&preset, "preset", "", "start from a named matrix (see presets)")
	pf.StringVarP(&matrixFile, "matrix", "m", "", "import the transition matrix from a delimited file")
	pf.IntVarP(&days, "days", "n", 0, "number of days (steps)")
	pf.StringVarP(&initial, "initial", "s", "", "initial state (Soleado, Nublado, Lluvioso)")

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "compute P^n, the day-n distribution and a simulated history",
		Args:  cobra.NoArgs,
		RunE:  runCalc,
	}
	calcCmd.Flags().BoolVar(&asJSON, "json", false, "print the calculation as JSON")
	calcCmd.Flags().BoolVar(&plot, "plot", false, "plot the marginal distribution for days 0..n")
	calcCmd.Flags().BoolVar(&stationary, "stationary", false, "show the long-run distribution")

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "check a matrix file",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "print a simulated history and its statistics",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}

	diagramCmd := &cobra.Command{
		Use:   "diagram",
		Short: "draw the chain as an automaton",
		Args:  cobra.NoArgs,
		RunE:  runDiagram,
	}
	diagramCmd.Flags().StringVarP(&diagramOut, "out", "o", "", "write to file instead of stdout")
	diagramCmd.Flags().StringVar(&diagramFormat, "format", "dot", "output format: dot or text")

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "write the active matrix as a delimited file",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&separator, "sep", ",", "cell separator: ',' or ';'")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list the named matrices",
		Args:  cobra.NoArgs,
		RunE:  runPresets,
	}

	guideCmd := &cobra.Command{
		Use:   "guide",
		Short: "show the user guide",
		Args:  cobra.NoArgs,
		RunE:  runGuide,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive matrix editor and animated simulation",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	rootCmd.AddCommand(calcCmd, validateCmd, simulateCmd, diagramCmd, exportCmd, presetsCmd, guideCmd, tuiCmd)
	return rootCmd
}

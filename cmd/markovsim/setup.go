package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/markovsim/internal/app"
	"github.com/san-kum/markovsim/internal/config"
	"github.com/san-kum/markovsim/internal/markov"
)

// session is what every command works from once flags and config agree.
type session struct {
	cfg     *config.Config
	ctrl    *app.Controller
	logger  *slog.Logger
	initial markov.State
}

// loadConfig reads the config file if given, then lets flags that were set
// explicitly override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("days") {
		cfg.Days = days
	}
	if flags.Changed("initial") {
		cfg.InitialState = initial
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
		cfg.Matrix = nil
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

	ctrl := app.New(
		app.WithLogger(logger),
		app.WithSeed(cfg.Seed),
		app.WithMaxDays(cfg.MaxDays),
	)

	tm, err := cfg.TransitionMatrix()
	if err != nil {
		return nil, err
	}
	ctrl.Engine().Replace(tm)

	if matrixFile != "" {
		if err := ctrl.Import(matrixFile); err != nil {
			return nil, err
		}
	}

	s, err := cfg.Initial()
	if err != nil {
		return nil, err
	}

	logger.Debug("session ready", "initial", s.String(), "days", cfg.Days, "seed", cfg.Seed)
	return &session{cfg: cfg, ctrl: ctrl, logger: logger, initial: s}, nil
}

func (s *session) calculate() (*app.Calculation, error) {
	return s.ctrl.Calculate(app.Request{Days: s.cfg.Days, Initial: s.initial.String()})
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func stdoutIsTerminal() bool {
	return isTerminal(os.Stdout.Fd())
}

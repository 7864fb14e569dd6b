// Package app coordinates the engine for the command line and terminal
// front ends: candidate matrices go through validation before they replace
// the active one, and a calculation bundles everything a view renders.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/san-kum/markovsim/internal/markov"
	"github.com/san-kum/markovsim/internal/matrixio"
	"github.com/san-kum/markovsim/internal/stats"
)

const (
	DefaultMaxDays = 100

	stationaryTol  = 1e-12
	stationaryIter = 10000
)

// Request asks for a calculation of Days steps from Initial.
type Request struct {
	Days    int    `validate:"gte=1"`
	Initial string `validate:"required"`
}

type Outcome struct {
	State       markov.State `json:"state"`
	Probability float64      `json:"probability"`
}

type Calculation struct {
	ID         uuid.UUID           `json:"id"`
	Days       int                 `json:"days"`
	Initial    markov.State        `json:"initial"`
	Matrix     markov.Matrix       `json:"matrix"`
	Power      markov.Matrix       `json:"power"`
	Marginal   markov.Distribution `json:"marginal"`
	MostLikely Outcome             `json:"most_likely"`
	History    markov.History      `json:"history"`
	Stats      stats.Summary       `json:"stats"`
	Stationary markov.Distribution `json:"stationary,omitempty"`
}

// Controller is not safe for concurrent use: it owns a single random source.
type Controller struct {
	engine   *markov.Engine
	logger   *slog.Logger
	rng      markov.Source
	maxDays  int
	validate *validator.Validate
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithSource(rng markov.Source) Option {
	return func(c *Controller) { c.rng = rng }
}

func WithSeed(seed int64) Option {
	return func(c *Controller) { c.rng = markov.NewSource(seed) }
}

func WithMaxDays(n int) Option {
	return func(c *Controller) { c.maxDays = n }
}

func WithEngine(e *markov.Engine) Option {
	return func(c *Controller) { c.engine = e }
}

func New(opts ...Option) *Controller {
	c := &Controller{maxDays: DefaultMaxDays}
	for _, opt := range opts {
		opt(c)
	}
	if c.engine == nil {
		c.engine = markov.NewEngine()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.rng == nil {
		c.rng = markov.NewSource(time.Now().UnixNano())
	}
	c.validate = validator.New()
	return c
}

func (c *Controller) Engine() *markov.Engine { return c.engine }

func (c *Controller) Matrix() markov.Matrix { return c.engine.Matrix() }

func (c *Controller) MaxDays() int { return c.maxDays }

// Apply validates candidate and makes it the active matrix. On failure the
// previous matrix stays in place.
func (c *Controller) Apply(candidate [][]float64) error {
	tm, err := markov.Validate(candidate)
	if err != nil {
		c.logger.Warn("matrix rejected", "error", err)
		return err
	}
	c.engine.Replace(tm)
	c.logger.Info("matrix replaced", "matrix", tm.Matrix())
	return nil
}

func (c *Controller) ApplyMatrix(m markov.Matrix) error {
	return c.Apply(m.Rows())
}

// Import loads a delimited matrix file and activates it.
func (c *Controller) Import(path string) error {
	tm, err := matrixio.Load(path)
	if err != nil {
		c.logger.Warn("import failed", "path", path, "error", err)
		return err
	}
	c.engine.Replace(tm)
	c.logger.Info("matrix imported", "path", path)
	return nil
}

func (c *Controller) Reset() {
	c.engine.Reset()
	c.logger.Info("matrix reset to default")
}

// Calculate runs every derived quantity for req against one snapshot of the
// active matrix.
func (c *Controller) Calculate(req Request) (*Calculation, error) {
	initial, err := c.checkRequest(req)
	if err != nil {
		return nil, err
	}

	// a private engine pins the snapshot for the whole calculation
	tm := c.engine.Snapshot()
	eng := markov.NewEngine(markov.WithMatrix(tm))

	calc := &Calculation{
		ID:      uuid.New(),
		Days:    req.Days,
		Initial: initial,
		Matrix:  tm.Matrix(),
		Power:   eng.Power(req.Days),
	}
	log := c.logger.With("calc", calc.ID.String())

	if calc.Marginal, err = eng.Marginal(calc.Power, initial); err != nil {
		return nil, err
	}
	state, p, err := eng.MostLikely(req.Days, initial)
	if err != nil {
		return nil, err
	}
	calc.MostLikely = Outcome{State: state, Probability: p}

	if calc.History, err = eng.Simulate(req.Days, initial, c.rng); err != nil {
		return nil, err
	}
	calc.Stats = stats.Summarize(calc.History)

	if dist, err := eng.Stationary(stationaryTol, stationaryIter); err == nil {
		calc.Stationary = dist
	} else {
		log.Debug("no stationary distribution", "error", err)
	}

	log.Debug("calculated",
		"days", req.Days,
		"initial", initial.String(),
		"most_likely", state.String(),
		"probability", p,
	)
	return calc, nil
}

// Simulate draws a history only, under the same bounds as Calculate.
func (c *Controller) Simulate(req Request) (markov.History, error) {
	initial, err := c.checkRequest(req)
	if err != nil {
		return nil, err
	}
	h, err := c.engine.Simulate(req.Days, initial, c.rng)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("simulated", "days", req.Days, "initial", initial.String())
	return h, nil
}

func (c *Controller) checkRequest(req Request) (markov.State, error) {
	if err := c.validate.Struct(req); err != nil {
		c.logger.Warn("request rejected", "error", err)
		return 0, fmt.Errorf("invalid request: %w", err)
	}
	if req.Days > c.maxDays {
		c.logger.Warn("request rejected", "days", req.Days, "max_days", c.maxDays)
		return 0, fmt.Errorf("invalid request: days must be at most %d, got %d", c.maxDays, req.Days)
	}
	return markov.ParseState(req.Initial)
}

package markov

import (
	"errors"
	"math"
	"sync"
	"time"
)

// ErrNotConverged indicates the stationary iteration hit its limit, as it
// does for periodic chains.
var ErrNotConverged = errors.New("markov: stationary distribution did not converge")

// Engine owns the active transition matrix. Replace and Reset are the only
// mutations; every read works on a snapshot so concurrent callers never
// observe a partially replaced matrix.
type Engine struct {
	mu     sync.RWMutex
	active TransitionMatrix
}

type Option func(*Engine)

// WithMatrix starts the engine on t instead of the default matrix.
func WithMatrix(t TransitionMatrix) Option {
	return func(e *Engine) { e.active = t }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{active: DefaultTransitionMatrix()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Replace swaps in a validated matrix wholesale.
func (e *Engine) Replace(t TransitionMatrix) {
	e.mu.Lock()
	e.active = t
	e.mu.Unlock()
}

// Reset restores the built-in default matrix.
func (e *Engine) Reset() {
	e.Replace(DefaultTransitionMatrix())
}

// Matrix returns a snapshot of the active matrix.
func (e *Engine) Matrix() Matrix {
	return e.Snapshot().Matrix()
}

// Snapshot returns the active validated matrix.
func (e *Engine) Snapshot() TransitionMatrix {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active
}

// Power returns P^n, the identity for n < 1.
func (e *Engine) Power(n int) Matrix {
	return Power(e.Matrix(), n)
}

// Marginal selects the row of pn belonging to initial.
func (e *Engine) Marginal(pn Matrix, initial State) (Distribution, error) {
	if err := checkState(initial); err != nil {
		return nil, err
	}
	row := pn[initial.Index()]
	dist := make(Distribution, NumStates)
	for _, s := range States() {
		dist[s] = Probability{State: s, P: row[s]}
	}
	return dist, nil
}

// ExpectedDistribution is the marginal distribution after n steps.
func (e *Engine) ExpectedDistribution(n int, initial State) (Distribution, error) {
	return e.Marginal(e.Power(n), initial)
}

// MostLikely returns the mode of the day-n distribution together with its
// probability. Zero steps cannot leave the initial state, so n < 1 yields
// (initial, 1). Near-equal maxima resolve to the earliest state in
// enumeration order.
func (e *Engine) MostLikely(n int, initial State) (State, float64, error) {
	if err := checkState(initial); err != nil {
		return 0, 0, err
	}
	if n < 1 {
		return initial, 1.0, nil
	}
	dist, err := e.ExpectedDistribution(n, initial)
	if err != nil {
		return 0, 0, err
	}
	s, p := dist.Mode()
	return s, p, nil
}

// Simulate walks the chain for n days starting at initial. Each day records
// the current state before drawing the next one from its row. A nil rng
// falls back to a time-seeded source.
func (e *Engine) Simulate(n int, initial State, rng Source) (History, error) {
	if err := checkState(initial); err != nil {
		return nil, err
	}
	if n < 1 {
		return History{}, nil
	}
	if rng == nil {
		rng = NewSource(time.Now().UnixNano())
	}

	p := e.Matrix()
	history := make(History, 0, n)
	current := initial
	for i := 0; i < n; i++ {
		history = append(history, current)
		next := Categorical(rng, p[current][:])
		if next < 0 {
			// unreachable for a validated matrix; stay put
			next = current.Index()
		}
		current = State(next)
	}
	return history, nil
}

// Stationary approximates the long-run distribution by iterating π ← πP
// from the uniform distribution until successive iterates differ by less
// than tol in L1 norm.
func (e *Engine) Stationary(tol float64, maxIter int) (Distribution, error) {
	p := e.Matrix()
	var pi [NumStates]float64
	for i := range pi {
		pi[i] = 1.0 / NumStates
	}

	for iter := 0; iter < maxIter; iter++ {
		var next [NumStates]float64
		for j := 0; j < NumStates; j++ {
			for k := 0; k < NumStates; k++ {
				next[j] += pi[k] * p[k][j]
			}
		}
		delta := 0.0
		for j := range next {
			delta += math.Abs(next[j] - pi[j])
		}
		pi = next
		if delta < tol {
			dist := make(Distribution, NumStates)
			for _, s := range States() {
				dist[s] = Probability{State: s, P: pi[s]}
			}
			return dist, nil
		}
	}
	return nil, ErrNotConverged
}

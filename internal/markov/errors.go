package markov

import (
	"errors"
	"fmt"
)

// Domain errors for validation and engine operations.
var (
	// ErrShape indicates a candidate matrix that is not exactly 3x3.
	ErrShape = errors.New("markov: matrix must be 3x3")

	// ErrRange indicates a probability outside [0, 1].
	ErrRange = errors.New("markov: probabilities must lie in [0, 1]")

	// ErrRowSum indicates a row that does not sum to 1.
	ErrRowSum = errors.New("markov: row does not sum to 1")

	// ErrUnknownState indicates a label outside the state enumeration.
	ErrUnknownState = errors.New("markov: unknown state")
)

type ShapeError struct {
	Rows int
	Cols int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("markov: matrix must be 3x3, got %dx%d", e.Rows, e.Cols)
}

func (e *ShapeError) Unwrap() error { return ErrShape }

type RangeError struct {
	Row   int
	Col   int
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("markov: probability at (%d,%d) is %g, must lie in [0, 1]", e.Row+1, e.Col+1, e.Value)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// RowSumError names the first row whose sum deviates from 1.
type RowSumError struct {
	State State
	Sum   float64
}

func (e *RowSumError) Error() string {
	return fmt.Sprintf("markov: row '%s' does not sum to 1.0, sum: %.4f", e.State, e.Sum)
}

func (e *RowSumError) Unwrap() error { return ErrRowSum }

type UnknownStateError struct {
	Label string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("markov: unknown state %q", e.Label)
}

func (e *UnknownStateError) Unwrap() error { return ErrUnknownState }

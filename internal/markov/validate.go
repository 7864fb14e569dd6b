package markov

import "math"

// RowSumTolerance is the largest accepted deviation of a row sum from 1.
const RowSumTolerance = 1e-4

// TransitionMatrix is a Matrix that has passed Validate. The zero value is
// not valid; obtain one from Validate or DefaultTransitionMatrix.
type TransitionMatrix struct {
	m Matrix
}

func DefaultTransitionMatrix() TransitionMatrix {
	return TransitionMatrix{m: Default()}
}

// Matrix returns a copy of the validated cells.
func (t TransitionMatrix) Matrix() Matrix { return t.m }

// Validate checks shape, range and row-stochasticity, in that order, and
// returns the first violation. The candidate is never modified.
func Validate(candidate [][]float64) (TransitionMatrix, error) {
	if len(candidate) != NumStates {
		cols := 0
		if len(candidate) > 0 {
			cols = len(candidate[0])
		}
		return TransitionMatrix{}, &ShapeError{Rows: len(candidate), Cols: cols}
	}
	for _, row := range candidate {
		if len(row) != NumStates {
			return TransitionMatrix{}, &ShapeError{Rows: len(candidate), Cols: len(row)}
		}
	}

	var m Matrix
	for i, row := range candidate {
		for j, v := range row {
			if math.IsNaN(v) || v < 0 || v > 1 {
				return TransitionMatrix{}, &RangeError{Row: i, Col: j, Value: v}
			}
			m[i][j] = v
		}
	}

	for i := 0; i < NumStates; i++ {
		if sum := m.RowSum(i); math.Abs(sum-1) > RowSumTolerance {
			return TransitionMatrix{}, &RowSumError{State: State(i), Sum: sum}
		}
	}

	return TransitionMatrix{m: m}, nil
}

// ValidateMatrix is Validate for an already shaped Matrix.
func ValidateMatrix(m Matrix) (TransitionMatrix, error) {
	return Validate(m.Rows())
}

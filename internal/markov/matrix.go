package markov

import "math"

// Matrix is a dense 3x3 matrix in row-major order. It has value semantics,
// so assigning it takes a full copy.
type Matrix [NumStates][NumStates]float64

func Identity() Matrix {
	var m Matrix
	for i := 0; i < NumStates; i++ {
		m[i][i] = 1
	}
	return m
}

// Default is the built-in weather chain.
func Default() Matrix {
	return Matrix{
		{0.70, 0.20, 0.10},
		{0.30, 0.40, 0.30},
		{0.20, 0.40, 0.40},
	}
}

// Mul returns a·b with result[i][j] = Σ_k a[i][k]·b[k][j].
func Mul(a, b Matrix) Matrix {
	var out Matrix
	for i := 0; i < NumStates; i++ {
		for j := 0; j < NumStates; j++ {
			sum := 0.0
			for k := 0; k < NumStates; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Power raises p to the n-th power by repeated squaring. n < 1 yields the
// identity, the zero-step transition.
func Power(p Matrix, n int) Matrix {
	result := Identity()
	if n < 1 {
		return result
	}
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = Mul(result, base)
		}
		n >>= 1
		if n > 0 {
			base = Mul(base, base)
		}
	}
	return result
}

func (m Matrix) Row(i int) []float64 {
	row := make([]float64, NumStates)
	copy(row, m[i][:])
	return row
}

func (m Matrix) RowSum(i int) float64 {
	sum := 0.0
	for _, v := range m[i] {
		sum += v
	}
	return sum
}

// Rows converts m into a slice-of-slices, the shape accepted by Validate.
func (m Matrix) Rows() [][]float64 {
	out := make([][]float64, NumStates)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// Equal reports whether every cell of m and other differs by at most tol.
func (m Matrix) Equal(other Matrix, tol float64) bool {
	for i := 0; i < NumStates; i++ {
		for j := 0; j < NumStates; j++ {
			if math.Abs(m[i][j]-other[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

package functions

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// flatAt reads element i of a matrix in row-major order.
func flatAt(m mat.Matrix, i, cols int) float64 {
	return m.At(i/cols, i%cols)
}

// gradData returns the backing slice of a gradient buffer for row-major
// writes. Optimizers allocate gradient buffers contiguously.
func gradData(grad *mat.Dense) []float64 {
	rm := grad.RawMatrix()
	if rm.Stride != rm.Cols {
		panic("functions: gradient matrix is a non-contiguous view")
	}
	return rm.Data
}

func sigmoid(s float64) float64 {
	return 1 / (1 + math.Exp(-s))
}

// log1pExp computes log(1 + exp(s)) without overflowing for large s.
func log1pExp(s float64) float64 {
	if s > 35 {
		return s
	}
	return math.Log1p(math.Exp(s))
}

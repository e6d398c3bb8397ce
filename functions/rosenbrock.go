package functions

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Rosenbrock is the generalized n-dimensional Rosenbrock function,
//
//	f(x) = Σ_{i=0}^{n-2} 100 (x_{i+1} - x_i²)² + (1 - x_i)²,
//
// with its global minimum 0 at x = (1, ..., 1). The narrow curved valley
// makes it the standard stress test for full-batch optimizers. It is
// differentiable and decomposable into n-1 parts.
//
// The parameter matrix must hold exactly n elements.
type Rosenbrock struct {
	n     int
	order []int
}

// NewRosenbrock creates an n-dimensional Rosenbrock function, n >= 2.
func NewRosenbrock(n int) *Rosenbrock {
	if n < 2 {
		panic("functions: Rosenbrock needs at least 2 dimensions")
	}
	order := make([]int, n-1)
	for i := range order {
		order[i] = i
	}
	return &Rosenbrock{n: n, order: order}
}

// Evaluate returns the full objective.
func (r *Rosenbrock) Evaluate(params mat.Matrix) float64 {
	_, cols := params.Dims()
	sum := 0.0
	for i := 0; i < r.n-1; i++ {
		xi := flatAt(params, i, cols)
		t0 := flatAt(params, i+1, cols) - xi*xi
		t1 := 1 - xi
		sum += 100*t0*t0 + t1*t1
	}
	return sum
}

// Gradient writes the full gradient into grad.
func (r *Rosenbrock) Gradient(params mat.Matrix, grad *mat.Dense) {
	grad.Zero()
	r.accumulate(params, grad, r.order)
}

// NumFunctions returns the number of separable terms, n-1.
func (r *Rosenbrock) NumFunctions() int { return r.n - 1 }

// EvaluatePartial returns the objective of batchSize terms starting at begin
// in the current visitation order.
func (r *Rosenbrock) EvaluatePartial(params mat.Matrix, begin, batchSize int) float64 {
	_, cols := params.Dims()
	sum := 0.0
	for k := begin; k < begin+batchSize; k++ {
		i := r.order[k]
		xi := flatAt(params, i, cols)
		t0 := flatAt(params, i+1, cols) - xi*xi
		t1 := 1 - xi
		sum += 100*t0*t0 + t1*t1
	}
	return sum
}

// GradientPartial writes the gradient of batchSize terms starting at begin
// into grad, overwriting it.
func (r *Rosenbrock) GradientPartial(params mat.Matrix, begin, batchSize int, grad *mat.Dense) {
	grad.Zero()
	r.accumulate(params, grad, r.order[begin:begin+batchSize])
}

// accumulate adds the gradient contributions of the given terms. Adjacent
// terms share variables, so contributions add rather than overwrite.
func (r *Rosenbrock) accumulate(params mat.Matrix, grad *mat.Dense, terms []int) {
	_, cols := params.Dims()
	g := gradData(grad)
	for _, i := range terms {
		xi := flatAt(params, i, cols)
		t0 := flatAt(params, i+1, cols) - xi*xi
		g[i] += -400*xi*t0 - 2*(1-xi)
		g[i+1] += 200 * t0
	}
}

// Shuffle reorders the visitation order of the terms.
func (r *Rosenbrock) Shuffle() {
	rand.Shuffle(len(r.order), func(i, j int) {
		r.order[i], r.order[j] = r.order[j], r.order[i]
	})
}

package functions

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Sphere is the n-dimensional sphere function f(x) = Σ x_i², with its global
// minimum 0 at the origin. It implements every optimization interface:
// differentiable, decomposable into n parts, and resolvable per feature,
// which makes it the baseline test for all optimizers.
//
// The parameter matrix must hold exactly n elements.
type Sphere struct {
	n     int
	order []int
}

// NewSphere creates an n-dimensional sphere function.
func NewSphere(n int) *Sphere {
	if n < 1 {
		panic("functions: Sphere needs at least 1 dimension")
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return &Sphere{n: n, order: order}
}

// Evaluate returns the full objective.
func (s *Sphere) Evaluate(params mat.Matrix) float64 {
	_, cols := params.Dims()
	sum := 0.0
	for i := 0; i < s.n; i++ {
		x := flatAt(params, i, cols)
		sum += x * x
	}
	return sum
}

// Gradient writes the full gradient 2x into grad.
func (s *Sphere) Gradient(params mat.Matrix, grad *mat.Dense) {
	_, cols := params.Dims()
	g := gradData(grad)
	for i := 0; i < s.n; i++ {
		g[i] = 2 * flatAt(params, i, cols)
	}
}

// NumFunctions returns n.
func (s *Sphere) NumFunctions() int { return s.n }

// EvaluatePartial returns the objective of batchSize squared terms starting
// at begin in the current visitation order.
func (s *Sphere) EvaluatePartial(params mat.Matrix, begin, batchSize int) float64 {
	_, cols := params.Dims()
	sum := 0.0
	for k := begin; k < begin+batchSize; k++ {
		x := flatAt(params, s.order[k], cols)
		sum += x * x
	}
	return sum
}

// GradientPartial writes the gradient of batchSize terms starting at begin
// into grad, overwriting it.
func (s *Sphere) GradientPartial(params mat.Matrix, begin, batchSize int, grad *mat.Dense) {
	_, cols := params.Dims()
	grad.Zero()
	g := gradData(grad)
	for k := begin; k < begin+batchSize; k++ {
		i := s.order[k]
		g[i] = 2 * flatAt(params, i, cols)
	}
}

// Shuffle reorders the visitation order of the terms.
func (s *Sphere) Shuffle() {
	rand.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
}

// NumFeatures returns n.
func (s *Sphere) NumFeatures() int { return s.n }

// PartialGradient writes the gradient with respect to feature j into grad,
// overwriting it; only element j is nonzero.
func (s *Sphere) PartialGradient(params mat.Matrix, j int, grad *mat.Dense) {
	_, cols := params.Dims()
	grad.Zero()
	gradData(grad)[j] = 2 * flatAt(params, j, cols)
}

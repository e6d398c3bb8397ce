package functions

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// SumOfParabolas is a separable objective of k independent parabolas,
//
//	f(x) = Σ_i (x_i - c_i)² + v_i,
//
// with its global minimum Σ_i v_i at x_i = c_i. It is differentiable and
// decomposable with NumFunctions() = k, which makes it the canonical smoke
// test for the stochastic optimizers: after optimization the objective should
// sit close to the sum of the parabola vertex values.
//
// The parameter matrix must hold exactly k elements; a 1×k row vector is the
// usual shape.
type SumOfParabolas struct {
	centers  []float64
	vertices []float64
	order    []int
}

// NewSumOfParabolas creates the objective from parabola centers c and vertex
// values v. The slices must have equal, nonzero length.
func NewSumOfParabolas(centers, vertices []float64) *SumOfParabolas {
	if len(centers) == 0 || len(centers) != len(vertices) {
		panic("functions: centers and vertices must have equal nonzero length")
	}
	order := make([]int, len(centers))
	for i := range order {
		order[i] = i
	}
	return &SumOfParabolas{
		centers:  append([]float64(nil), centers...),
		vertices: append([]float64(nil), vertices...),
		order:    order,
	}
}

// DefaultSumOfParabolas returns the four-parabola instance used throughout
// the documentation and tests. Its minimum value is 4.5.
func DefaultSumOfParabolas() *SumOfParabolas {
	return NewSumOfParabolas(
		[]float64{-2, 1, 3, 5},
		[]float64{0.5, -1, 2, 3},
	)
}

// Optimum returns the global minimum value, the sum of the vertex values.
func (s *SumOfParabolas) Optimum() float64 {
	sum := 0.0
	for _, v := range s.vertices {
		sum += v
	}
	return sum
}

// Evaluate returns the full objective.
func (s *SumOfParabolas) Evaluate(params mat.Matrix) float64 {
	_, cols := params.Dims()
	sum := 0.0
	for i, c := range s.centers {
		d := flatAt(params, i, cols) - c
		sum += d*d + s.vertices[i]
	}
	return sum
}

// Gradient writes the full gradient into grad.
func (s *SumOfParabolas) Gradient(params mat.Matrix, grad *mat.Dense) {
	_, cols := params.Dims()
	g := gradData(grad)
	for i, c := range s.centers {
		g[i] = 2 * (flatAt(params, i, cols) - c)
	}
}

// NumFunctions returns the number of parabolas.
func (s *SumOfParabolas) NumFunctions() int { return len(s.centers) }

// EvaluatePartial returns the objective summed over batchSize parabolas
// starting at begin in the current visitation order.
func (s *SumOfParabolas) EvaluatePartial(params mat.Matrix, begin, batchSize int) float64 {
	_, cols := params.Dims()
	sum := 0.0
	for k := begin; k < begin+batchSize; k++ {
		i := s.order[k]
		d := flatAt(params, i, cols) - s.centers[i]
		sum += d*d + s.vertices[i]
	}
	return sum
}

// GradientPartial writes the gradient of batchSize parabolas starting at
// begin into grad, overwriting it.
func (s *SumOfParabolas) GradientPartial(params mat.Matrix, begin, batchSize int, grad *mat.Dense) {
	_, cols := params.Dims()
	grad.Zero()
	g := gradData(grad)
	for k := begin; k < begin+batchSize; k++ {
		i := s.order[k]
		g[i] = 2 * (flatAt(params, i, cols) - s.centers[i])
	}
}

// Shuffle reorders the visitation order of the parabolas.
func (s *SumOfParabolas) Shuffle() {
	rand.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
}

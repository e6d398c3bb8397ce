package functions_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/wangxindsb/mlpack/functions"
	"github.com/wangxindsb/mlpack/internal/optimize"
)

// Interface compliance for every objective in the package.
var (
	_ optimize.DifferentiableFunction = (*functions.SumOfParabolas)(nil)
	_ optimize.DecomposableFunction   = (*functions.SumOfParabolas)(nil)
	_ optimize.DifferentiableFunction = (*functions.Rosenbrock)(nil)
	_ optimize.DecomposableFunction   = (*functions.Rosenbrock)(nil)
	_ optimize.DifferentiableFunction = (*functions.Sphere)(nil)
	_ optimize.DecomposableFunction   = (*functions.Sphere)(nil)
	_ optimize.ResolvableFunction     = (*functions.Sphere)(nil)
	_ optimize.DifferentiableFunction = (*functions.LogisticRegression)(nil)
	_ optimize.DecomposableFunction   = (*functions.LogisticRegression)(nil)
	_ optimize.ResolvableFunction     = (*functions.LogisticRegression)(nil)
)

// numericalGradient estimates the gradient by central differences.
func numericalGradient(f optimize.Function, params *mat.Dense) *mat.Dense {
	const h = 1e-6
	rows, cols := params.Dims()
	grad := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			orig := params.At(r, c)
			params.Set(r, c, orig+h)
			fp := f.Evaluate(params)
			params.Set(r, c, orig-h)
			fm := f.Evaluate(params)
			params.Set(r, c, orig)
			grad.Set(r, c, (fp-fm)/(2*h))
		}
	}
	return grad
}

func assertGradientMatches(t *testing.T, f optimize.DifferentiableFunction, params *mat.Dense) {
	t.Helper()
	rows, cols := params.Dims()
	analytic := mat.NewDense(rows, cols, nil)
	f.Gradient(params, analytic)
	numeric := numericalGradient(f, params)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			assert.InDelta(t, numeric.At(r, c), analytic.At(r, c), 1e-4,
				"gradient element (%d,%d)", r, c)
		}
	}
}

// decomposableDifferentiable combines the two capabilities exercised by
// assertPartialsSumToFull: batch partials and the full gradient.
type decomposableDifferentiable interface {
	optimize.DifferentiableFunction
	optimize.DecomposableFunction
}

// assertPartialsSumToFull checks the decomposability contract: partial
// objectives and gradients over disjoint batches sum to the full ones.
func assertPartialsSumToFull(t *testing.T, f decomposableDifferentiable, params *mat.Dense, batchSize int) {
	t.Helper()
	n := f.NumFunctions()
	rows, cols := params.Dims()

	sum := 0.0
	gradSum := mat.NewDense(rows, cols, nil)
	part := mat.NewDense(rows, cols, nil)
	for begin := 0; begin < n; begin += batchSize {
		batch := min(batchSize, n-begin)
		sum += f.EvaluatePartial(params, begin, batch)
		f.GradientPartial(params, begin, batch, part)
		gradSum.Add(gradSum, part)
	}

	assert.InDelta(t, f.Evaluate(params), sum, 1e-10)

	full := mat.NewDense(rows, cols, nil)
	f.Gradient(params, full)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			assert.InDelta(t, full.At(r, c), gradSum.At(r, c), 1e-10)
		}
	}
}

func TestSumOfParabolas(t *testing.T) {
	f := functions.DefaultSumOfParabolas()
	assert.Equal(t, 4, f.NumFunctions())
	assert.InDelta(t, 4.5, f.Optimum(), 1e-12)

	// Objective at the vertices equals the optimum.
	atMin := mat.NewDense(1, 4, []float64{-2, 1, 3, 5})
	assert.InDelta(t, f.Optimum(), f.Evaluate(atMin), 1e-12)

	params := mat.NewDense(1, 4, []float64{0.5, -1, 2, 7})
	assertGradientMatches(t, f, params)
	assertPartialsSumToFull(t, f, params, 1)
	assertPartialsSumToFull(t, f, params, 3)

	// The contract survives reshuffling the visitation order.
	f.Shuffle()
	assertPartialsSumToFull(t, f, params, 2)
}

func TestRosenbrock(t *testing.T) {
	f := functions.NewRosenbrock(5)
	assert.Equal(t, 4, f.NumFunctions())

	// Global minimum at (1, ..., 1).
	atMin := mat.NewDense(1, 5, []float64{1, 1, 1, 1, 1})
	assert.InDelta(t, 0, f.Evaluate(atMin), 1e-12)

	params := mat.NewDense(1, 5, []float64{-1.2, 1, 0.5, -0.3, 2})
	assertGradientMatches(t, f, params)
	assertPartialsSumToFull(t, f, params, 2)

	f.Shuffle()
	assertPartialsSumToFull(t, f, params, 3)
}

func TestSphere(t *testing.T) {
	f := functions.NewSphere(4)
	params := mat.NewDense(1, 4, []float64{1, -2, 0.5, 3})

	assert.InDelta(t, 1+4+0.25+9, f.Evaluate(params), 1e-12)
	assertGradientMatches(t, f, params)
	assertPartialsSumToFull(t, f, params, 3)

	// Feature-resolved gradients: only element j is nonzero.
	grad := mat.NewDense(1, 4, nil)
	f.PartialGradient(params, 1, grad)
	assert.InDelta(t, -4, grad.At(0, 1), 1e-12)
	assert.InDelta(t, 0, grad.At(0, 0), 1e-12)
	assert.InDelta(t, 0, grad.At(0, 2), 1e-12)
}

func TestLogisticRegression(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const m, d = 20, 3
	data := mat.NewDense(m, d, nil)
	labels := make([]float64, m)
	for i := 0; i < m; i++ {
		mean := -1.0
		if i%2 == 0 {
			labels[i] = 1
			mean = 1.0
		}
		for j := 0; j < d; j++ {
			data.Set(i, j, mean+rng.NormFloat64())
		}
	}

	f := functions.NewLogisticRegression(data, labels, 0.5)
	assert.Equal(t, m, f.NumFunctions())
	assert.Equal(t, d, f.NumFeatures())

	params := mat.NewDense(d, 1, []float64{0.3, -0.7, 1.1})
	assertGradientMatches(t, f, params)
	assertPartialsSumToFull(t, f, params, 7)

	// Feature-resolved gradients match the full gradient column-wise.
	full := mat.NewDense(d, 1, nil)
	f.Gradient(params, full)
	part := mat.NewDense(d, 1, nil)
	for j := 0; j < d; j++ {
		f.PartialGradient(params, j, part)
		assert.InDelta(t, full.At(j, 0), part.At(j, 0), 1e-10, "feature %d", j)
	}
}

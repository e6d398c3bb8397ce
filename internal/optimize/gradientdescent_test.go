package optimize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/wangxindsb/mlpack/functions"
	"github.com/wangxindsb/mlpack/internal/optimize"
)

// TestGradientDescentSphere checks full-batch descent on the sphere.
func TestGradientDescentSphere(t *testing.T) {
	f := functions.NewSphere(3)
	params := mat.NewDense(1, 3, []float64{3, -4, 5})

	opt := optimize.NewGradientDescent(optimize.GradientDescentConfig{
		StepSize:  0.1,
		Tolerance: 1e-12,
	})
	objective, err := opt.Optimize(f, params)
	require.NoError(t, err)

	assert.Less(t, objective, 1e-8)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, params.At(0, i), 1e-4)
	}
}

// TestGradientDescentRequiresGradient checks the capability probe.
func TestGradientDescentRequiresGradient(t *testing.T) {
	f := evaluateOnly{f: functions.NewSphere(2)}
	params := mat.NewDense(1, 2, []float64{1, 1})

	opt := optimize.NewGradientDescent(optimize.GradientDescentConfig{})
	_, err := opt.Optimize(f, params)
	assert.ErrorIs(t, err, optimize.ErrNotDifferentiable)
}

// TestGradientDescentEmptyParams checks the parameter validation.
func TestGradientDescentEmptyParams(t *testing.T) {
	opt := optimize.NewGradientDescent(optimize.GradientDescentConfig{})
	_, err := opt.Optimize(functions.NewSphere(2), &mat.Dense{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty parameter matrix")
}

// TestGradientDescentSingleStep checks one exact descent step.
func TestGradientDescentSingleStep(t *testing.T) {
	f := functions.NewSphere(1)
	params := mat.NewDense(1, 1, []float64{2})

	opt := optimize.NewGradientDescent(optimize.GradientDescentConfig{
		StepSize:      0.1,
		MaxIterations: 1,
		Tolerance:     1e-300,
	})
	_, err := opt.Optimize(f, params)
	require.NoError(t, err)

	// x_1 = 2 - 0.1 * (2 * 2) = 1.6
	assert.InDelta(t, 1.6, params.At(0, 0), 1e-12)
}

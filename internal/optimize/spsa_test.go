package optimize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/wangxindsb/mlpack/functions"
	"github.com/wangxindsb/mlpack/internal/optimize"
)

// TestSPSASphere checks the two-evaluation gradient estimate on the sphere.
// Only Evaluate is required of the function.
func TestSPSASphere(t *testing.T) {
	f := evaluateOnly{f: functions.NewSphere(2)}
	params := mat.NewDense(1, 2, []float64{1.5, -1.5})

	opt := optimize.NewSPSA(optimize.SPSAConfig{
		MaxIterations: 20000,
		Tolerance:     1e-12,
		Seed:          3,
	})
	objective, err := opt.Optimize(f, params)
	require.NoError(t, err)
	assert.Less(t, objective, 0.01)
}

// TestSPSASumOfParabolas checks SPSA against the separable toy objective.
func TestSPSASumOfParabolas(t *testing.T) {
	f := functions.DefaultSumOfParabolas()
	params := mat.NewDense(1, f.NumFunctions(), nil)

	opt := optimize.NewSPSA(optimize.SPSAConfig{
		StepSize:      0.3,
		MaxIterations: 50000,
		Tolerance:     1e-12,
		Seed:          5,
	})
	objective, err := opt.Optimize(f, params)
	require.NoError(t, err)
	assert.InDelta(t, f.Optimum(), objective, 0.1)
}

// TestSPSARejectsNegativeStepSize checks the gain validation.
func TestSPSARejectsNegativeStepSize(t *testing.T) {
	opt := optimize.NewSPSA(optimize.SPSAConfig{StepSize: -0.1})
	_, err := opt.Optimize(functions.NewSphere(2), mat.NewDense(1, 2, []float64{1, 1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step size")
}

package optimize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/wangxindsb/mlpack/functions"
	"github.com/wangxindsb/mlpack/internal/optimize"
)

// TestCMAESSphere checks the evolution strategy on the sphere. CMA-ES only
// needs Evaluate, so the function is wrapped to hide its gradient.
func TestCMAESSphere(t *testing.T) {
	f := evaluateOnly{f: functions.NewSphere(4)}
	params := mat.NewDense(1, 4, []float64{3, 3, 3, 3})

	opt := optimize.NewCMAES(optimize.CMAESConfig{
		Sigma:         1.0,
		MaxIterations: 2000,
		Tolerance:     1e-14,
		Seed:          42,
	})
	objective, err := opt.Optimize(f, params)
	require.NoError(t, err)

	assert.Less(t, objective, 1e-3)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 0, params.At(0, i), 0.1)
	}
}

// TestCMAESSumOfParabolas checks the gradient-free path on the separable toy
// objective and its known minimum.
func TestCMAESSumOfParabolas(t *testing.T) {
	f := functions.DefaultSumOfParabolas()
	params := mat.NewDense(1, f.NumFunctions(), nil)

	opt := optimize.NewCMAES(optimize.CMAESConfig{
		Sigma:         2.0,
		MaxIterations: 2000,
		Tolerance:     1e-14,
		Seed:          1,
	})
	objective, err := opt.Optimize(f, params)
	require.NoError(t, err)
	assert.InDelta(t, f.Optimum(), objective, 0.01)
}

// TestCMAESDeterministicSeed checks that equal seeds reproduce runs.
func TestCMAESDeterministicSeed(t *testing.T) {
	run := func() float64 {
		f := evaluateOnly{f: functions.NewSphere(3)}
		params := mat.NewDense(1, 3, []float64{2, 2, 2})
		opt := optimize.NewCMAES(optimize.CMAESConfig{
			MaxIterations: 50,
			Seed:          99,
		})
		objective, err := opt.Optimize(f, params)
		require.NoError(t, err)
		return objective
	}
	assert.Equal(t, run(), run())
}

// TestCMAESRejectsNegativeSigma checks the sigma validation.
func TestCMAESRejectsNegativeSigma(t *testing.T) {
	opt := optimize.NewCMAES(optimize.CMAESConfig{Sigma: -1})
	_, err := opt.Optimize(functions.NewSphere(2), mat.NewDense(1, 2, []float64{1, 1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sigma")
}

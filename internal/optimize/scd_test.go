package optimize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/wangxindsb/mlpack/functions"
	"github.com/wangxindsb/mlpack/internal/optimize"
)

// TestSCDSphereCyclic checks cyclic coordinate descent on the sphere.
func TestSCDSphereCyclic(t *testing.T) {
	f := functions.NewSphere(4)
	params := mat.NewDense(1, 4, []float64{2, -3, 4, -1})

	opt := optimize.NewSCD(optimize.SCDConfig{
		StepSize:      0.2,
		MaxIterations: 5000,
		Tolerance:     1e-12,
		Cyclic:        true,
	})
	objective, err := opt.Optimize(f, params)
	require.NoError(t, err)
	assert.Less(t, objective, 1e-6)
}

// TestSCDSphereRandom checks randomized coordinate selection with a fixed
// seed.
func TestSCDSphereRandom(t *testing.T) {
	f := functions.NewSphere(4)
	params := mat.NewDense(1, 4, []float64{2, -3, 4, -1})

	opt := optimize.NewSCD(optimize.SCDConfig{
		StepSize:      0.2,
		MaxIterations: 20000,
		Tolerance:     1e-12,
		Seed:          7,
	})
	objective, err := opt.Optimize(f, params)
	require.NoError(t, err)
	assert.Less(t, objective, 1e-4)
}

// TestSCDLogisticRegression checks per-feature resolution on the logistic
// loss.
func TestSCDLogisticRegression(t *testing.T) {
	data := mat.NewDense(6, 2, []float64{
		2.0, 1.0,
		1.0, 1.5,
		1.5, 2.0,
		-2.0, -1.5,
		-1.0, -1.0,
		-1.5, -2.0,
	})
	labels := []float64{1, 1, 1, 0, 0, 0}
	f := functions.NewLogisticRegression(data, labels, 0.01)
	params := mat.NewDense(2, 1, nil)

	initial := f.Evaluate(params)
	opt := optimize.NewSCD(optimize.SCDConfig{
		StepSize:      0.1,
		MaxIterations: 10000,
		Tolerance:     1e-10,
		Cyclic:        true,
	})
	objective, err := opt.Optimize(f, params)
	require.NoError(t, err)
	assert.Less(t, objective, initial/2)
}

// TestSCDRequiresResolvable checks the capability probe.
func TestSCDRequiresResolvable(t *testing.T) {
	f := functions.DefaultSumOfParabolas() // decomposable, but not resolvable
	params := mat.NewDense(1, 4, nil)

	opt := optimize.NewSCD(optimize.SCDConfig{})
	_, err := opt.Optimize(f, params)
	assert.ErrorIs(t, err, optimize.ErrNotResolvable)
}

package optimize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/wangxindsb/mlpack/internal/optimize"
)

func step(p optimize.UpdatePolicy, params, grad *mat.Dense, stepSize float64) {
	p.Update(params, stepSize, grad)
}

// TestVanillaUpdate checks the plain descent rule.
func TestVanillaUpdate(t *testing.T) {
	params := mat.NewDense(1, 1, []float64{2.0})
	grad := mat.NewDense(1, 1, []float64{1.0})

	var policy optimize.VanillaUpdate
	policy.Initialize(1, 1)
	step(policy, params, grad, 0.1)

	// x_new = x - stepSize * grad = 2.0 - 0.1 * 1.0 = 1.9
	assert.InDelta(t, 1.9, params.At(0, 0), 1e-12)
}

// TestMomentumUpdate checks two steps of the velocity rule.
func TestMomentumUpdate(t *testing.T) {
	params := mat.NewDense(1, 1, []float64{1.0})
	grad := mat.NewDense(1, 1, []float64{1.0})

	policy := &optimize.MomentumUpdate{Momentum: 0.9}
	policy.Initialize(1, 1)

	// v_1 = 0.9 * 0 + 1.0 = 1.0
	// x_1 = 1.0 - 0.1 * 1.0 = 0.9
	step(policy, params, grad, 0.1)
	assert.InDelta(t, 0.9, params.At(0, 0), 1e-12)

	// v_2 = 0.9 * 1.0 + 1.0 = 1.9
	// x_2 = 0.9 - 0.1 * 1.9 = 0.71
	step(policy, params, grad, 0.1)
	assert.InDelta(t, 0.71, params.At(0, 0), 1e-12)
}

// TestAdamUpdate checks the bias-corrected first step.
func TestAdamUpdate(t *testing.T) {
	params := mat.NewDense(1, 1, []float64{1.0})
	grad := mat.NewDense(1, 1, []float64{1.0})

	policy := &optimize.AdamUpdate{}
	policy.Initialize(1, 1)

	// m_1 = 0.1, v_1 = 0.001; after bias correction m_hat = v_hat = 1, so
	// x_1 = 1.0 - 0.001 * 1 / (1 + eps) ≈ 0.999.
	step(policy, params, grad, 0.001)
	assert.InDelta(t, 0.999, params.At(0, 0), 1e-6)
}

// TestAdaGradUpdate checks the accumulated-squared-gradient scaling.
func TestAdaGradUpdate(t *testing.T) {
	params := mat.NewDense(1, 1, []float64{1.0})
	grad := mat.NewDense(1, 1, []float64{2.0})

	policy := &optimize.AdaGradUpdate{}
	policy.Initialize(1, 1)

	// sum = 4, x_1 = 1.0 - 0.5 * 2 / (2 + eps) = 0.5
	step(policy, params, grad, 0.5)
	assert.InDelta(t, 0.5, params.At(0, 0), 1e-6)
}

// TestRMSPropUpdate checks the decayed-squared-gradient scaling.
func TestRMSPropUpdate(t *testing.T) {
	params := mat.NewDense(1, 1, []float64{10.0})
	grad := mat.NewDense(1, 1, []float64{2.0})

	policy := &optimize.RMSPropUpdate{Alpha: 0.99}
	policy.Initialize(1, 1)

	// mean = 0.01 * 4 = 0.04, x_1 = 10 - 0.1 * 2 / (0.2 + eps) ≈ 9.0
	step(policy, params, grad, 0.1)
	assert.InDelta(t, 9.0, params.At(0, 0), 1e-6)
}

// TestAMSGradUpdateMonotoneDenominator checks that a shrinking gradient does
// not shrink the AMSGrad denominator below its running maximum.
func TestAMSGradUpdateMonotoneDenominator(t *testing.T) {
	params := mat.NewDense(1, 1, []float64{1.0})

	policy := &optimize.AMSGradUpdate{}
	policy.Initialize(1, 1)

	big := mat.NewDense(1, 1, []float64{10.0})
	small := mat.NewDense(1, 1, []float64{0.1})

	step(policy, params, big, 0.01)
	firstStep := 1.0 - params.At(0, 0)
	afterBig := params.At(0, 0)

	// With vMax pinned by the large gradient, the small-gradient step must be
	// smaller than the first step even though the bias correction grows.
	step(policy, params, small, 0.01)
	assert.Less(t, afterBig-params.At(0, 0), firstStep)
}

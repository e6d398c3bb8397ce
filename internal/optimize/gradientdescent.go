package optimize

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// GradientDescentConfig holds configuration for full-batch gradient descent.
type GradientDescentConfig struct {
	StepSize      float64 // default 0.01
	MaxIterations int     // default 100000
	Tolerance     float64 // objective change, default 1e-5
	Callbacks     []Callback
}

// GradientDescent is plain full-batch descent: every iteration evaluates the
// whole objective and its gradient and takes a fixed-size step. It needs a
// DifferentiableFunction.
type GradientDescent struct {
	stepSize      float64
	maxIterations int
	tolerance     float64
	callbacks     []Callback
}

// NewGradientDescent creates a gradient descent optimizer.
func NewGradientDescent(config GradientDescentConfig) *GradientDescent {
	if config.StepSize == 0 {
		config.StepSize = 0.01
	}
	if config.MaxIterations == 0 {
		config.MaxIterations = 100000
	}
	if config.Tolerance == 0 {
		config.Tolerance = 1e-5
	}
	return &GradientDescent{
		stepSize:      config.StepSize,
		maxIterations: config.MaxIterations,
		tolerance:     config.Tolerance,
		callbacks:     config.Callbacks,
	}
}

// StepSize returns the configured step size.
func (g *GradientDescent) StepSize() float64 { return g.stepSize }

// SetStepSize updates the step size.
func (g *GradientDescent) SetStepSize(stepSize float64) { g.stepSize = stepSize }

// Optimize runs descent until the objective change drops below Tolerance or
// the iteration limit is reached.
func (g *GradientDescent) Optimize(f Function, params *mat.Dense) (float64, error) {
	if err := validateParams(params); err != nil {
		return math.NaN(), err
	}
	if err := validateStepSize(g.stepSize); err != nil {
		return math.NaN(), err
	}
	df, err := differentiable(f)
	if err != nil {
		return math.NaN(), err
	}

	rows, cols := params.Dims()
	grad := mat.NewDense(rows, cols, nil)

	objective := math.Inf(1)
	for i := 1; i <= g.maxIterations; i++ {
		last := objective
		objective = f.Evaluate(params)
		if math.Abs(last-objective) < g.tolerance {
			return objective, nil
		}

		df.Gradient(params, grad)
		axpyInPlace(-g.stepSize, grad, params)

		if stepTaken(g.callbacks, i, objective, params) {
			break
		}
	}

	return f.Evaluate(params), nil
}

package optimize

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SVRGConfig holds configuration for SVRG.
type SVRGConfig struct {
	StepSize  float64 // default 0.01
	BatchSize int     // default 32, clamped to NumFunctions at run time

	// MaxIterations bounds the number of outer epochs (default 1000).
	// InnerIterations is the number of corrected stochastic steps per epoch;
	// 0 means NumFunctions / BatchSize.
	MaxIterations   int
	InnerIterations int

	Tolerance float64 // objective change per epoch, default 1e-5
	NoShuffle bool
	Callbacks []Callback
}

// SVRG is the stochastic variance-reduced gradient optimizer. Each outer
// epoch snapshots the parameters and computes the full gradient there; the
// inner loop then takes stochastic steps whose batch gradients are corrected
// by the snapshot, removing most of the variance of plain SGD:
//
//	g = (n/b) * (grad_B(x) - grad_B(x0)) + fullGrad(x0)
//
// Reference: Johnson & Zhang, "Accelerating Stochastic Gradient Descent
// using Predictive Variance Reduction", 2013.
type SVRG struct {
	stepSize        float64
	batchSize       int
	maxIterations   int
	innerIterations int
	tolerance       float64
	noShuffle       bool
	callbacks       []Callback
}

// NewSVRG creates an SVRG optimizer.
func NewSVRG(config SVRGConfig) *SVRG {
	if config.StepSize == 0 {
		config.StepSize = 0.01
	}
	if config.BatchSize == 0 {
		config.BatchSize = 32
	}
	if config.MaxIterations == 0 {
		config.MaxIterations = 1000
	}
	if config.Tolerance == 0 {
		config.Tolerance = 1e-5
	}
	return &SVRG{
		stepSize:        config.StepSize,
		batchSize:       config.BatchSize,
		maxIterations:   config.MaxIterations,
		innerIterations: config.InnerIterations,
		tolerance:       config.Tolerance,
		noShuffle:       config.NoShuffle,
		callbacks:       config.Callbacks,
	}
}

// StepSize returns the configured step size.
func (s *SVRG) StepSize() float64 { return s.stepSize }

// Optimize runs SVRG. f must be a DecomposableFunction.
func (s *SVRG) Optimize(f Function, params *mat.Dense) (float64, error) {
	if err := validateParams(params); err != nil {
		return math.NaN(), err
	}
	if err := validateStepSize(s.stepSize); err != nil {
		return math.NaN(), err
	}
	df, err := decomposable(f)
	if err != nil {
		return math.NaN(), err
	}
	numFunctions := df.NumFunctions()
	batchSize, err := clampBatchSize(s.batchSize, numFunctions)
	if err != nil {
		return math.NaN(), err
	}

	inner := s.innerIterations
	if inner == 0 {
		inner = (numFunctions + batchSize - 1) / batchSize
	}

	rows, cols := params.Dims()
	snapshot := mat.DenseCopyOf(params)
	fullGrad := mat.NewDense(rows, cols, nil)
	batchGrad := mat.NewDense(rows, cols, nil)
	snapGrad := mat.NewDense(rows, cols, nil)
	part := mat.NewDense(rows, cols, nil)

	p := rawData(params)
	bg := rawData(batchGrad)
	sg := rawData(snapGrad)
	fg := rawData(fullGrad)

	lastObjective := math.Inf(1)
	step := 0
	for epoch := 1; epoch <= s.maxIterations; epoch++ {
		snapshot.Copy(params)
		s.fullGradient(df, snapshot, fullGrad, part, numFunctions, batchSize)
		objective := f.Evaluate(params)

		if math.Abs(lastObjective-objective) < s.tolerance {
			return objective, nil
		}
		lastObjective = objective

		if !s.noShuffle {
			df.Shuffle()
		}

		current := 0
		stop := false
		for i := 0; i < inner; i++ {
			batch := min(batchSize, numFunctions-current)
			scale := float64(numFunctions) / float64(batch)

			df.GradientPartial(params, current, batch, batchGrad)
			df.GradientPartial(snapshot, current, batch, snapGrad)
			for j := range p {
				p[j] -= s.stepSize * (scale*(bg[j]-sg[j]) + fg[j])
			}

			step++
			if len(s.callbacks) > 0 {
				batchObjective := df.EvaluatePartial(params, current, batch)
				if stepTaken(s.callbacks, step, batchObjective, params) {
					stop = true
					break
				}
			}

			current += batch
			if current >= numFunctions {
				current = 0
			}
		}
		if stop {
			break
		}
	}

	return f.Evaluate(params), nil
}

// fullGradient accumulates the gradient over all parts at the snapshot.
func (s *SVRG) fullGradient(df DecomposableFunction, at, dst, part *mat.Dense, numFunctions, batchSize int) {
	dst.Zero()
	for begin := 0; begin < numFunctions; begin += batchSize {
		batch := min(batchSize, numFunctions-begin)
		df.GradientPartial(at, begin, batch, part)
		axpyInPlace(1, part, dst)
	}
}

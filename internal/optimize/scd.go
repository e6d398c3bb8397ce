package optimize

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// SCDConfig holds configuration for stochastic coordinate descent.
type SCDConfig struct {
	StepSize      float64 // default 0.01
	MaxIterations int     // coordinate updates, default 100000

	// UpdateInterval controls how often the full objective is evaluated for
	// the convergence check (default NumFeatures updates).
	UpdateInterval int

	Tolerance float64 // objective change, default 1e-5

	// Cyclic visits features in order instead of sampling them uniformly.
	Cyclic bool
	Seed   int64

	Callbacks []Callback
}

// SCD is stochastic coordinate descent: each iteration resolves the gradient
// with respect to a single feature and updates only that parameter column.
// It needs a ResolvableFunction.
type SCD struct {
	stepSize       float64
	maxIterations  int
	updateInterval int
	tolerance      float64
	cyclic         bool
	seed           int64
	callbacks      []Callback
}

// NewSCD creates a stochastic coordinate descent optimizer.
func NewSCD(config SCDConfig) *SCD {
	if config.StepSize == 0 {
		config.StepSize = 0.01
	}
	if config.MaxIterations == 0 {
		config.MaxIterations = 100000
	}
	if config.Tolerance == 0 {
		config.Tolerance = 1e-5
	}
	return &SCD{
		stepSize:       config.StepSize,
		maxIterations:  config.MaxIterations,
		updateInterval: config.UpdateInterval,
		tolerance:      config.Tolerance,
		cyclic:         config.Cyclic,
		seed:           config.Seed,
		callbacks:      config.Callbacks,
	}
}

// StepSize returns the configured step size.
func (s *SCD) StepSize() float64 { return s.stepSize }

// Optimize runs coordinate descent. f must be a ResolvableFunction.
func (s *SCD) Optimize(f Function, params *mat.Dense) (float64, error) {
	if err := validateParams(params); err != nil {
		return math.NaN(), err
	}
	if err := validateStepSize(s.stepSize); err != nil {
		return math.NaN(), err
	}
	rf, err := resolvable(f)
	if err != nil {
		return math.NaN(), err
	}

	numFeatures := rf.NumFeatures()
	interval := s.updateInterval
	if interval == 0 {
		interval = numFeatures
	}

	rows, cols := params.Dims()
	grad := mat.NewDense(rows, cols, nil)
	rng := rand.New(rand.NewSource(s.seed))

	lastObjective := math.Inf(1)
	for i := 1; i <= s.maxIterations; i++ {
		j := (i - 1) % numFeatures
		if !s.cyclic {
			j = rng.Intn(numFeatures)
		}

		rf.PartialGradient(params, j, grad)
		axpyInPlace(-s.stepSize, grad, params)

		if i%interval == 0 {
			objective := f.Evaluate(params)
			if stepTaken(s.callbacks, i, objective, params) {
				break
			}
			if math.Abs(lastObjective-objective) < s.tolerance {
				return objective, nil
			}
			lastObjective = objective
		}
	}

	return f.Evaluate(params), nil
}

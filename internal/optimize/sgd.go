package optimize

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SGDConfig holds configuration for the SGD family of optimizers.
type SGDConfig struct {
	StepSize      float64 // default 0.01
	BatchSize     int     // default 32, clamped to NumFunctions at run time
	MaxIterations int     // batches processed, default 100000
	Tolerance     float64 // objective change per epoch, default 1e-5

	// NoShuffle disables reshuffling the visitation order between epochs.
	NoShuffle bool

	// UpdatePolicy selects the step rule (default VanillaUpdate). The Adam,
	// AdaGrad and RMSProp optimizers are SGD with their respective policies.
	UpdatePolicy UpdatePolicy

	Callbacks []Callback
}

func (c *SGDConfig) applyDefaults() {
	if c.StepSize == 0 {
		c.StepSize = 0.01
	}
	if c.BatchSize == 0 {
		c.BatchSize = 32
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 100000
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-5
	}
	if c.UpdatePolicy == nil {
		c.UpdatePolicy = VanillaUpdate{}
	}
}

// SGD is mini-batch stochastic gradient descent over a decomposable
// function. Each iteration evaluates and differentiates one batch of the
// function's separable parts and applies the update policy; the visitation
// order is reshuffled at every epoch boundary unless disabled.
//
// Convergence is declared when the summed objective of an epoch changes by
// less than Tolerance from the previous epoch.
type SGD struct {
	stepSize      float64
	batchSize     int
	maxIterations int
	tolerance     float64
	noShuffle     bool
	updatePolicy  UpdatePolicy
	callbacks     []Callback
}

// NewSGD creates an SGD optimizer, filling zero config fields with defaults.
func NewSGD(config SGDConfig) *SGD {
	config.applyDefaults()
	return &SGD{
		stepSize:      config.StepSize,
		batchSize:     config.BatchSize,
		maxIterations: config.MaxIterations,
		tolerance:     config.Tolerance,
		noShuffle:     config.NoShuffle,
		updatePolicy:  config.UpdatePolicy,
		callbacks:     config.Callbacks,
	}
}

// StepSize returns the configured step size.
func (s *SGD) StepSize() float64 { return s.stepSize }

// SetStepSize updates the step size, for schedules driven by the caller.
func (s *SGD) SetStepSize(stepSize float64) { s.stepSize = stepSize }

// BatchSize returns the configured batch size.
func (s *SGD) BatchSize() int { return s.batchSize }

// MaxIterations returns the iteration limit.
func (s *SGD) MaxIterations() int { return s.maxIterations }

// Optimize runs SGD until convergence or the iteration limit and returns the
// final full objective. f must be a DecomposableFunction.
func (s *SGD) Optimize(f Function, params *mat.Dense) (float64, error) {
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

	rows, cols := params.Dims()
	grad := mat.NewDense(rows, cols, nil)
	s.updatePolicy.Initialize(rows, cols)

	if !s.noShuffle {
		df.Shuffle()
	}

	// Objective summed over the batches of the current epoch, compared to the
	// previous epoch's sum for convergence.
	epochObjective := 0.0
	lastEpochObjective := math.Inf(1)
	current := 0

	for i := 1; i <= s.maxIterations; i++ {
		batch := min(batchSize, numFunctions-current)

		batchObjective := df.EvaluatePartial(params, current, batch)
		epochObjective += batchObjective
		df.GradientPartial(params, current, batch, grad)
		s.updatePolicy.Update(params, s.stepSize, grad)

		if stepTaken(s.callbacks, i, batchObjective, params) {
			break
		}

		current += batch
		if current >= numFunctions {
			if math.IsNaN(epochObjective) || math.IsInf(epochObjective, 0) {
				// Diverged; stop with what we have.
				break
			}
			if math.Abs(lastEpochObjective-epochObjective) < s.tolerance {
				break
			}
			lastEpochObjective = epochObjective
			epochObjective = 0
			current = 0
			if !s.noShuffle {
				df.Shuffle()
			}
		}
	}

	return f.Evaluate(params), nil
}

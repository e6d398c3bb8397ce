package optimize

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// SPSAConfig holds configuration for SPSA.
type SPSAConfig struct {
	// Alpha and Gamma are the decay exponents of the gain sequences
	// (defaults 0.602 and 0.101, the values recommended by Spall).
	Alpha float64
	Gamma float64

	// StepSize is the numerator of the update gain a_k (default 0.16);
	// EvaluationStepSize is the numerator of the perturbation gain c_k
	// (default 0.3).
	StepSize           float64
	EvaluationStepSize float64

	MaxIterations int     // default 100000
	Tolerance     float64 // objective change, default 1e-5
	Seed          int64

	Callbacks []Callback
}

// SPSA is simultaneous perturbation stochastic approximation: a gradient-free
// optimizer that estimates the full gradient from two evaluations at a random
// Rademacher perturbation of the parameters,
//
//	ghat_i = (f(x + c_k d) - f(x - c_k d)) / (2 c_k d_i),  d_i ∈ {-1, +1}
//
// and descends with decaying gains a_k = a/(A+k+1)^alpha, c_k = c/(k+1)^gamma.
//
// Reference: Spall, "Multivariate Stochastic Approximation Using a
// Simultaneous Perturbation Gradient Approximation", 1992.
type SPSA struct {
	alpha         float64
	gamma         float64
	stepSize      float64
	evalStepSize  float64
	maxIterations int
	tolerance     float64
	seed          int64
	callbacks     []Callback
}

// NewSPSA creates an SPSA optimizer.
func NewSPSA(config SPSAConfig) *SPSA {
	if config.Alpha == 0 {
		config.Alpha = 0.602
	}
	if config.Gamma == 0 {
		config.Gamma = 0.101
	}
	if config.StepSize == 0 {
		config.StepSize = 0.16
	}
	if config.EvaluationStepSize == 0 {
		config.EvaluationStepSize = 0.3
	}
	if config.MaxIterations == 0 {
		config.MaxIterations = 100000
	}
	if config.Tolerance == 0 {
		config.Tolerance = 1e-5
	}
	return &SPSA{
		alpha:         config.Alpha,
		gamma:         config.Gamma,
		stepSize:      config.StepSize,
		evalStepSize:  config.EvaluationStepSize,
		maxIterations: config.MaxIterations,
		tolerance:     config.Tolerance,
		seed:          config.Seed,
		callbacks:     config.Callbacks,
	}
}

// StepSize returns the configured gain numerator a.
func (s *SPSA) StepSize() float64 { return s.stepSize }

// Optimize runs SPSA. Only Evaluate is required of f.
func (s *SPSA) Optimize(f Function, params *mat.Dense) (float64, error) {
	if err := validateParams(params); err != nil {
		return math.NaN(), err
	}
	if err := validateStepSize(s.stepSize); err != nil {
		return math.NaN(), err
	}

	rows, cols := params.Dims()
	p := rawData(params)
	n := len(p)

	rng := rand.New(rand.NewSource(s.seed))
	delta := make([]float64, n)
	probe := mat.NewDense(rows, cols, nil)
	pd := rawData(probe)

	// Stability constant of the update gain sequence, proportional to the
	// iteration horizon.
	bigA := 0.001 * float64(s.maxIterations)

	lastObjective := math.Inf(1)
	for k := 0; k < s.maxIterations; k++ {
		ak := s.stepSize / math.Pow(bigA+float64(k)+1, s.alpha)
		ck := s.evalStepSize / math.Pow(float64(k)+1, s.gamma)

		// Rademacher perturbation direction.
		for i := range delta {
			if rng.Intn(2) == 0 {
				delta[i] = 1
			} else {
				delta[i] = -1
			}
		}

		for i := range pd {
			pd[i] = p[i] + ck*delta[i]
		}
		fPlus := f.Evaluate(probe)
		for i := range pd {
			pd[i] = p[i] - ck*delta[i]
		}
		fMinus := f.Evaluate(probe)

		scale := (fPlus - fMinus) / (2 * ck)
		for i := range p {
			p[i] -= ak * scale / delta[i]
		}

		objective := f.Evaluate(params)
		if stepTaken(s.callbacks, k+1, objective, params) {
			break
		}
		if math.Abs(lastObjective-objective) < s.tolerance {
			return objective, nil
		}
		lastObjective = objective
	}

	return f.Evaluate(params), nil
}

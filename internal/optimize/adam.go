package optimize

// AdamConfig holds configuration shared by Adam and its AdaMax and AMSGrad
// variants.
type AdamConfig struct {
	StepSize      float64 // default 0.001
	Beta1         float64 // default 0.9
	Beta2         float64 // default 0.999
	Epsilon       float64 // default 1e-8
	BatchSize     int     // default 32
	MaxIterations int     // default 100000
	Tolerance     float64 // default 1e-5
	NoShuffle     bool
	Callbacks     []Callback
}

func (c AdamConfig) sgdConfig(policy UpdatePolicy) SGDConfig {
	stepSize := c.StepSize
	if stepSize == 0 {
		stepSize = 0.001
	}
	return SGDConfig{
		StepSize:      stepSize,
		BatchSize:     c.BatchSize,
		MaxIterations: c.MaxIterations,
		Tolerance:     c.Tolerance,
		NoShuffle:     c.NoShuffle,
		UpdatePolicy:  policy,
		Callbacks:     c.Callbacks,
	}
}

// Adam is SGD with the AdamUpdate policy: adaptive per-coordinate step sizes
// from bias-corrected first and second gradient moments.
type Adam struct {
	SGD
}

// NewAdam creates an Adam optimizer with the usual defaults
// (step size 0.001, betas 0.9/0.999, epsilon 1e-8).
func NewAdam(config AdamConfig) *Adam {
	policy := &AdamUpdate{Beta1: config.Beta1, Beta2: config.Beta2, Epsilon: config.Epsilon}
	return &Adam{SGD: *NewSGD(config.sgdConfig(policy))}
}

// AdaMax is the infinity-norm variant of Adam.
type AdaMax struct {
	SGD
}

// NewAdaMax creates an AdaMax optimizer.
func NewAdaMax(config AdamConfig) *AdaMax {
	policy := &AdaMaxUpdate{Beta1: config.Beta1, Beta2: config.Beta2, Epsilon: config.Epsilon}
	return &AdaMax{SGD: *NewSGD(config.sgdConfig(policy))}
}

// AMSGrad is the non-decreasing second-moment variant of Adam.
type AMSGrad struct {
	SGD
}

// NewAMSGrad creates an AMSGrad optimizer.
func NewAMSGrad(config AdamConfig) *AMSGrad {
	policy := &AMSGradUpdate{Beta1: config.Beta1, Beta2: config.Beta2, Epsilon: config.Epsilon}
	return &AMSGrad{SGD: *NewSGD(config.sgdConfig(policy))}
}

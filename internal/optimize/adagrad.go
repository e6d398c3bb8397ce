package optimize

// AdaGradConfig holds configuration for AdaGrad.
type AdaGradConfig struct {
	StepSize      float64 // default 0.01
	Epsilon       float64 // default 1e-8
	BatchSize     int     // default 32
	MaxIterations int     // default 100000
	Tolerance     float64 // default 1e-5
	NoShuffle     bool
	Callbacks     []Callback
}

// AdaGrad is SGD with the AdaGradUpdate policy: per-coordinate step sizes
// shrink with the accumulated squared gradients, which suits sparse problems
// where some coordinates are touched rarely.
type AdaGrad struct {
	SGD
}

// NewAdaGrad creates an AdaGrad optimizer.
func NewAdaGrad(config AdaGradConfig) *AdaGrad {
	sgd := NewSGD(SGDConfig{
		StepSize:      config.StepSize,
		BatchSize:     config.BatchSize,
		MaxIterations: config.MaxIterations,
		Tolerance:     config.Tolerance,
		NoShuffle:     config.NoShuffle,
		UpdatePolicy:  &AdaGradUpdate{Epsilon: config.Epsilon},
		Callbacks:     config.Callbacks,
	})
	return &AdaGrad{SGD: *sgd}
}

package optimize

// RMSPropConfig holds configuration for RMSProp.
type RMSPropConfig struct {
	StepSize      float64 // default 0.01
	Alpha         float64 // squared-gradient decay, default 0.99
	Epsilon       float64 // default 1e-8
	BatchSize     int     // default 32
	MaxIterations int     // default 100000
	Tolerance     float64 // default 1e-5
	NoShuffle     bool
	Callbacks     []Callback
}

// RMSProp is SGD with the RMSPropUpdate policy: per-coordinate step sizes
// from an exponentially decayed average of squared gradients.
type RMSProp struct {
	SGD
}

// NewRMSProp creates an RMSProp optimizer.
func NewRMSProp(config RMSPropConfig) *RMSProp {
	sgd := NewSGD(SGDConfig{
		StepSize:      config.StepSize,
		BatchSize:     config.BatchSize,
		MaxIterations: config.MaxIterations,
		Tolerance:     config.Tolerance,
		NoShuffle:     config.NoShuffle,
		UpdatePolicy:  &RMSPropUpdate{Alpha: config.Alpha, Epsilon: config.Epsilon},
		Callbacks:     config.Callbacks,
	})
	return &RMSProp{SGD: *sgd}
}

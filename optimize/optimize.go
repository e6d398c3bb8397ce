// Copyright 2025 The mlpack-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optimize

import (
	"github.com/wangxindsb/mlpack/internal/optimize"
)

// Function API

// Function is the minimal objective: score a parameter matrix, lower is
// better.
type Function = optimize.Function

// DifferentiableFunction is an objective that can compute its gradient.
type DifferentiableFunction = optimize.DifferentiableFunction

// DecomposableFunction is a separable objective evaluated over batches of
// its parts.
type DecomposableFunction = optimize.DecomposableFunction

// ResolvableFunction is an objective resolvable one feature at a time.
type ResolvableFunction = optimize.ResolvableFunction

// Capability errors returned when a function cannot serve an optimizer.
var (
	ErrNotDifferentiable = optimize.ErrNotDifferentiable
	ErrNotDecomposable   = optimize.ErrNotDecomposable
	ErrNotResolvable     = optimize.ErrNotResolvable
)

// Optimizer API

// Optimizer is the interface every optimization algorithm implements.
type Optimizer = optimize.Optimizer

// Callbacks

// Callback observes optimizer progress and can request an early stop.
type Callback = optimize.Callback

// CallbackFunc adapts a plain function to the Callback interface.
type CallbackFunc = optimize.CallbackFunc

// EarlyStopAtMinLoss stops after a patience of non-improving steps.
type EarlyStopAtMinLoss = optimize.EarlyStopAtMinLoss

// TimeLimit stops once a wall-clock budget has elapsed.
type TimeLimit = optimize.TimeLimit

// ProgressLogger periodically logs the objective through logrus.
type ProgressLogger = optimize.ProgressLogger

// SGD family

// UpdatePolicy is the pluggable step rule of the SGD family.
type UpdatePolicy = optimize.UpdatePolicy

// VanillaUpdate is plain gradient descent.
type VanillaUpdate = optimize.VanillaUpdate

// MomentumUpdate adds a velocity buffer to the descent.
type MomentumUpdate = optimize.MomentumUpdate

// NesterovMomentumUpdate applies Nesterov's accelerated gradient.
type NesterovMomentumUpdate = optimize.NesterovMomentumUpdate

// SGD is mini-batch stochastic gradient descent.
type SGD = optimize.SGD

// SGDConfig contains configuration for SGD.
type SGDConfig = optimize.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	opt := optimize.NewSGD(optimize.SGDConfig{
//	    StepSize:  0.01,
//	    BatchSize: 32,
//	    UpdatePolicy: &optimize.MomentumUpdate{Momentum: 0.9},
//	})
func NewSGD(config SGDConfig) *SGD {
	return optimize.NewSGD(config)
}

// GradientDescent is plain full-batch descent.
type GradientDescent = optimize.GradientDescent

// GradientDescentConfig contains configuration for GradientDescent.
type GradientDescentConfig = optimize.GradientDescentConfig

// NewGradientDescent creates a new full-batch gradient descent optimizer.
func NewGradientDescent(config GradientDescentConfig) *GradientDescent {
	return optimize.NewGradientDescent(config)
}

// Adam family

// Adam is SGD with adaptive per-coordinate step sizes from bias-corrected
// gradient moments.
type Adam = optimize.Adam

// AdamConfig contains configuration for Adam, AdaMax and AMSGrad.
type AdamConfig = optimize.AdamConfig

// NewAdam creates a new Adam optimizer.
//
// Example:
//
//	opt := optimize.NewAdam(optimize.AdamConfig{
//	    StepSize: 0.001,
//	    Beta1:    0.9,
//	    Beta2:    0.999,
//	})
func NewAdam(config AdamConfig) *Adam {
	return optimize.NewAdam(config)
}

// AdaMax is the infinity-norm variant of Adam.
type AdaMax = optimize.AdaMax

// NewAdaMax creates a new AdaMax optimizer.
func NewAdaMax(config AdamConfig) *AdaMax {
	return optimize.NewAdaMax(config)
}

// AMSGrad is the non-decreasing second-moment variant of Adam.
type AMSGrad = optimize.AMSGrad

// NewAMSGrad creates a new AMSGrad optimizer.
func NewAMSGrad(config AdamConfig) *AMSGrad {
	return optimize.NewAMSGrad(config)
}

// AdaGrad scales steps by accumulated squared gradients.
type AdaGrad = optimize.AdaGrad

// AdaGradConfig contains configuration for AdaGrad.
type AdaGradConfig = optimize.AdaGradConfig

// NewAdaGrad creates a new AdaGrad optimizer.
func NewAdaGrad(config AdaGradConfig) *AdaGrad {
	return optimize.NewAdaGrad(config)
}

// RMSProp scales steps by decayed average squared gradients.
type RMSProp = optimize.RMSProp

// RMSPropConfig contains configuration for RMSProp.
type RMSPropConfig = optimize.RMSPropConfig

// NewRMSProp creates a new RMSProp optimizer.
func NewRMSProp(config RMSPropConfig) *RMSProp {
	return optimize.NewRMSProp(config)
}

// Variance reduction and coordinate descent

// SVRG is the stochastic variance-reduced gradient optimizer.
type SVRG = optimize.SVRG

// SVRGConfig contains configuration for SVRG.
type SVRGConfig = optimize.SVRGConfig

// NewSVRG creates a new SVRG optimizer.
func NewSVRG(config SVRGConfig) *SVRG {
	return optimize.NewSVRG(config)
}

// SCD is stochastic coordinate descent over resolvable functions.
type SCD = optimize.SCD

// SCDConfig contains configuration for SCD.
type SCDConfig = optimize.SCDConfig

// NewSCD creates a new stochastic coordinate descent optimizer.
func NewSCD(config SCDConfig) *SCD {
	return optimize.NewSCD(config)
}

// Quasi-Newton

// LBFGS is the limited-memory BFGS optimizer.
type LBFGS = optimize.LBFGS

// LBFGSConfig contains configuration for LBFGS.
type LBFGSConfig = optimize.LBFGSConfig

// NewLBFGS creates a new L-BFGS optimizer.
//
// Example:
//
//	opt := optimize.NewLBFGS(optimize.LBFGSConfig{Memory: 10})
//	objective, err := opt.Optimize(functions.NewRosenbrock(10), params)
func NewLBFGS(config LBFGSConfig) *LBFGS {
	return optimize.NewLBFGS(config)
}

// Gradient-free

// CMAES is the covariance matrix adaptation evolution strategy.
type CMAES = optimize.CMAES

// CMAESConfig contains configuration for CMAES.
type CMAESConfig = optimize.CMAESConfig

// NewCMAES creates a new CMA-ES optimizer.
func NewCMAES(config CMAESConfig) *CMAES {
	return optimize.NewCMAES(config)
}

// SPSA is simultaneous perturbation stochastic approximation.
type SPSA = optimize.SPSA

// SPSAConfig contains configuration for SPSA.
type SPSAConfig = optimize.SPSAConfig

// NewSPSA creates a new SPSA optimizer.
func NewSPSA(config SPSAConfig) *SPSA {
	return optimize.NewSPSA(config)
}

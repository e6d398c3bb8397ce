// Copyright 2025 The mlpack-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optimize provides numerical optimizers and the interfaces objective
// functions implement to work with them.
//
// # Overview
//
// This package contains:
//   - the Function API: Function, DifferentiableFunction,
//     DecomposableFunction, ResolvableFunction
//   - the Optimizer API: a single Optimize(function, params) entry point
//     shared by every optimizer
//   - gradient optimizers: GradientDescent, SGD (with vanilla, momentum and
//     Nesterov update policies), Adam, AdaMax, AMSGrad, AdaGrad, RMSProp,
//     SVRG, SCD, LBFGS
//   - gradient-free optimizers: CMAES, SPSA
//   - callbacks: ProgressLogger, EarlyStopAtMinLoss, TimeLimit
//
// # Basic Usage
//
//	import (
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/wangxindsb/mlpack/functions"
//	    "github.com/wangxindsb/mlpack/optimize"
//	)
//
//	func main() {
//	    f := functions.DefaultSumOfParabolas()
//	    params := mat.NewDense(1, 4, nil)
//
//	    opt := optimize.NewSGD(optimize.SGDConfig{
//	        StepSize:  0.05,
//	        BatchSize: 1,
//	    })
//	    objective, err := opt.Optimize(f, params)
//	    ...
//	}
//
// # Implementing an objective function
//
// A function exposes its capabilities through methods; optimizers probe for
// the interfaces they need. The minimal differentiable objective is:
//
//	type Quadratic struct{}
//
//	func (Quadratic) Evaluate(params mat.Matrix) float64 {
//	    x := params.At(0, 0)
//	    return x * x
//	}
//
//	func (Quadratic) Gradient(params mat.Matrix, grad *mat.Dense) {
//	    grad.Set(0, 0, 2*params.At(0, 0))
//	}
//
// Separable objectives additionally implement NumFunctions, EvaluatePartial,
// GradientPartial and Shuffle so the stochastic optimizers can work on
// batches of their parts; see functions.SumOfParabolas for a full example.
//
// # Implementing an optimizer
//
// An optimizer is anything with
//
//	Optimize(f optimize.Function, params *mat.Dense) (float64, error)
//
// that mutates params in place toward a minimizer and returns the final
// objective. Optimizers validate what they need from the function up front
// (gradients, separability, batch sizes) and return an error rather than
// proceed on an unsupported function.
package optimize

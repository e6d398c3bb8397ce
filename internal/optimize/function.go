// Package optimize implements the optimization core: the Function API that
// objective functions expose, the Optimizer API that every optimizer
// implements, and the optimizers themselves.
//
// Parameters and gradients are gonum dense matrices. An optimizer reads and
// mutates the parameter matrix in place and returns the final objective value.
//
// Objective functions advertise capabilities through interfaces. Every
// function can at least be evaluated; differentiable functions additionally
// produce a gradient; decomposable (separable) functions can be evaluated
// over a batch of their parts; resolvable functions can produce the gradient
// with respect to a single feature. Optimizers probe for the interfaces they
// need and fail fast with an error when a function cannot serve them.
package optimize

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Function is the minimal objective: score a parameter matrix. Lower is
// better by convention.
type Function interface {
	Evaluate(params mat.Matrix) float64
}

// DifferentiableFunction is an objective that can compute its gradient.
//
// Gradient writes the gradient at params into grad. The buffer is allocated
// by the caller with the same shape as params; the function overwrites it.
type DifferentiableFunction interface {
	Function

	Gradient(params mat.Matrix, grad *mat.Dense)
}

// DecomposableFunction is a separable objective: a sum of NumFunctions
// indexed parts that can be evaluated and differentiated over batches.
//
// Partial results over disjoint batches covering [0, NumFunctions) must sum
// to the full objective and gradient. Shuffle reorders which part each index
// refers to, without changing the total.
type DecomposableFunction interface {
	Function

	// NumFunctions returns the number of separable parts.
	NumFunctions() int

	// EvaluatePartial returns the summed objective of batchSize parts
	// starting at begin.
	EvaluatePartial(params mat.Matrix, begin, batchSize int) float64

	// GradientPartial writes the summed gradient of batchSize parts starting
	// at begin into grad, overwriting it.
	GradientPartial(params mat.Matrix, begin, batchSize int, grad *mat.Dense)

	// Shuffle reorders the visitation order of the parts.
	Shuffle()
}

// ResolvableFunction is an objective whose gradient can be resolved one
// feature (parameter column) at a time, for coordinate descent optimizers.
type ResolvableFunction interface {
	Function

	// NumFeatures returns the number of parameter columns.
	NumFeatures() int

	// PartialGradient writes the gradient with respect to feature j into
	// grad, overwriting it. Columns other than j are zero.
	PartialGradient(params mat.Matrix, j int, grad *mat.Dense)
}

// Capability errors returned when a function cannot serve an optimizer.
var (
	ErrNotDifferentiable = errors.New("optimize: function does not implement Gradient")
	ErrNotDecomposable   = errors.New("optimize: function does not implement NumFunctions/EvaluatePartial/GradientPartial/Shuffle")
	ErrNotResolvable     = errors.New("optimize: function does not implement NumFeatures/PartialGradient")
)

func differentiable(f Function) (DifferentiableFunction, error) {
	df, ok := f.(DifferentiableFunction)
	if !ok {
		return nil, errors.Wrapf(ErrNotDifferentiable, "%T", f)
	}
	return df, nil
}

func decomposable(f Function) (DecomposableFunction, error) {
	df, ok := f.(DecomposableFunction)
	if !ok {
		return nil, errors.Wrapf(ErrNotDecomposable, "%T", f)
	}
	return df, nil
}

func resolvable(f Function) (ResolvableFunction, error) {
	rf, ok := f.(ResolvableFunction)
	if !ok {
		return nil, errors.Wrapf(ErrNotResolvable, "%T", f)
	}
	return rf, nil
}

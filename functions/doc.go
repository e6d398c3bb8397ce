// Copyright 2025 The mlpack-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package functions provides standard objective functions for exercising and
// benchmarking the optimizers: a separable sum of parabolas, the sphere, the
// generalized Rosenbrock function, and a logistic regression loss over a
// dataset matrix.
//
// Each function documents the parameter matrix shape it expects and which of
// the optimization interfaces (differentiable, decomposable, resolvable) it
// implements.
package functions

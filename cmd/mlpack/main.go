// Copyright 2025 The mlpack-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package main provides the mlpack optimization CLI: run any optimizer in
// the module against one of the standard test functions.
package main

import (
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/wangxindsb/mlpack/functions"
	"github.com/wangxindsb/mlpack/optimize"
)

const version = "v0.1.0"

type options struct {
	function      string
	optimizer     string
	dim           int
	maxIterations int
	stepSize      float64
	batchSize     int
	seed          int64
	verbose       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Fatal("mlpack")
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mlpack",
		Short:         "Numerical optimization toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newOptimizeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("mlpack %s\n", version)
		},
	}
}

func newOptimizeCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Minimize a test function with the chosen optimizer",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVar(&opts.function, "function", "sphere",
		"objective: sphere, rosenbrock, parabolas, logistic")
	cmd.Flags().StringVar(&opts.optimizer, "optimizer", "lbfgs",
		"optimizer: gd, sgd, momentum, nesterov, adam, adamax, amsgrad, adagrad, rmsprop, svrg, scd, lbfgs, cmaes, spsa")
	cmd.Flags().IntVar(&opts.dim, "dim", 10, "problem dimensionality")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "iteration limit (0 = optimizer default)")
	cmd.Flags().Float64Var(&opts.stepSize, "step-size", 0, "step size (0 = optimizer default)")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0, "batch size for stochastic optimizers (0 = default)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "random seed for sampling optimizers and synthetic data")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "log progress during the run")
	return cmd
}

func run(opts options) error {
	f, params, err := buildFunction(opts)
	if err != nil {
		return err
	}
	opt, err := buildOptimizer(opts)
	if err != nil {
		return err
	}

	initial := f.Evaluate(params)
	start := time.Now()
	final, err := opt.Optimize(f, params)
	if err != nil {
		return errors.Wrap(err, "optimization failed")
	}

	logrus.WithFields(logrus.Fields{
		"function":  opts.function,
		"optimizer": opts.optimizer,
		"initial":   initial,
		"final":     final,
		"elapsed":   time.Since(start).String(),
	}).Info("optimization finished")
	return nil
}

func buildFunction(opts options) (optimize.Function, *mat.Dense, error) {
	switch strings.ToLower(opts.function) {
	case "sphere":
		params := mat.NewDense(1, opts.dim, nil)
		for i := 0; i < opts.dim; i++ {
			params.Set(0, i, 5)
		}
		return functions.NewSphere(opts.dim), params, nil
	case "rosenbrock":
		params := mat.NewDense(1, opts.dim, nil)
		params.Set(0, 0, -1.2)
		for i := 1; i < opts.dim; i++ {
			params.Set(0, i, 1)
		}
		return functions.NewRosenbrock(opts.dim), params, nil
	case "parabolas":
		f := functions.DefaultSumOfParabolas()
		return f, mat.NewDense(1, f.NumFunctions(), nil), nil
	case "logistic":
		data, labels := syntheticClassification(500, opts.dim, opts.seed)
		params := mat.NewDense(opts.dim, 1, nil)
		return functions.NewLogisticRegression(data, labels, 0.01), params, nil
	default:
		return nil, nil, errors.Errorf("unknown function %q", opts.function)
	}
}

func buildOptimizer(opts options) (optimize.Optimizer, error) {
	var callbacks []optimize.Callback
	if opts.verbose {
		callbacks = append(callbacks, &optimize.ProgressLogger{})
	}

	switch strings.ToLower(opts.optimizer) {
	case "gd":
		return optimize.NewGradientDescent(optimize.GradientDescentConfig{
			StepSize: opts.stepSize, MaxIterations: opts.maxIterations, Callbacks: callbacks,
		}), nil
	case "sgd":
		return optimize.NewSGD(optimize.SGDConfig{
			StepSize: opts.stepSize, BatchSize: opts.batchSize,
			MaxIterations: opts.maxIterations, Callbacks: callbacks,
		}), nil
	case "momentum":
		return optimize.NewSGD(optimize.SGDConfig{
			StepSize: opts.stepSize, BatchSize: opts.batchSize,
			MaxIterations: opts.maxIterations, Callbacks: callbacks,
			UpdatePolicy: &optimize.MomentumUpdate{},
		}), nil
	case "nesterov":
		return optimize.NewSGD(optimize.SGDConfig{
			StepSize: opts.stepSize, BatchSize: opts.batchSize,
			MaxIterations: opts.maxIterations, Callbacks: callbacks,
			UpdatePolicy: &optimize.NesterovMomentumUpdate{},
		}), nil
	case "adam":
		return optimize.NewAdam(adamConfig(opts, callbacks)), nil
	case "adamax":
		return optimize.NewAdaMax(adamConfig(opts, callbacks)), nil
	case "amsgrad":
		return optimize.NewAMSGrad(adamConfig(opts, callbacks)), nil
	case "adagrad":
		return optimize.NewAdaGrad(optimize.AdaGradConfig{
			StepSize: opts.stepSize, BatchSize: opts.batchSize,
			MaxIterations: opts.maxIterations, Callbacks: callbacks,
		}), nil
	case "rmsprop":
		return optimize.NewRMSProp(optimize.RMSPropConfig{
			StepSize: opts.stepSize, BatchSize: opts.batchSize,
			MaxIterations: opts.maxIterations, Callbacks: callbacks,
		}), nil
	case "svrg":
		return optimize.NewSVRG(optimize.SVRGConfig{
			StepSize: opts.stepSize, BatchSize: opts.batchSize,
			MaxIterations: opts.maxIterations, Callbacks: callbacks,
		}), nil
	case "scd":
		return optimize.NewSCD(optimize.SCDConfig{
			StepSize: opts.stepSize, MaxIterations: opts.maxIterations,
			Seed: opts.seed, Callbacks: callbacks,
		}), nil
	case "lbfgs":
		return optimize.NewLBFGS(optimize.LBFGSConfig{
			MaxIterations: opts.maxIterations, Callbacks: callbacks,
		}), nil
	case "cmaes":
		return optimize.NewCMAES(optimize.CMAESConfig{
			MaxIterations: opts.maxIterations, Seed: opts.seed, Callbacks: callbacks,
		}), nil
	case "spsa":
		return optimize.NewSPSA(optimize.SPSAConfig{
			StepSize: opts.stepSize, MaxIterations: opts.maxIterations,
			Seed: opts.seed, Callbacks: callbacks,
		}), nil
	default:
		return nil, errors.Errorf("unknown optimizer %q", opts.optimizer)
	}
}

func adamConfig(opts options, callbacks []optimize.Callback) optimize.AdamConfig {
	return optimize.AdamConfig{
		StepSize: opts.stepSize, BatchSize: opts.batchSize,
		MaxIterations: opts.maxIterations, Callbacks: callbacks,
	}
}

// syntheticClassification draws a linearly separable binary dataset: points
// from two Gaussian clouds with opposite means.
func syntheticClassification(m, d int, seed int64) (*mat.Dense, []float64) {
	rng := rand.New(rand.NewSource(seed))
	data := mat.NewDense(m, d, nil)
	labels := make([]float64, m)
	for i := 0; i < m; i++ {
		mean := -1.0
		if i%2 == 0 {
			labels[i] = 1
			mean = 1.0
		}
		for j := 0; j < d; j++ {
			data.Set(i, j, mean+rng.NormFloat64())
		}
	}
	return data, labels
}

package optimize

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// lineSearchConfig bundles the backtracking parameters shared with LBFGS.
type lineSearchConfig struct {
	armijoConstant float64
	wolfe          float64
	maxTrials      int
	minStep        float64
	maxStep        float64
}

var errLineSearchFail = errors.New("optimize: line search failed to find an acceptable step")

// wolfeLineSearch backtracks along dir from the current point until the
// Armijo condition and the weak Wolfe curvature condition both hold.
//
// On entry params holds the current point, obj its objective, and dg the
// directional derivative dot(grad, dir), which must be negative. On success
// params and grad hold the accepted point and the new objective is returned.
// On failure params is restored to the starting point.
func wolfeLineSearch(f Function, df DifferentiableFunction, params, grad *mat.Dense,
	dir []float64, obj, dg, step float64, cfg lineSearchConfig) (float64, float64, error) {
	const (
		expand   = 2.1
		contract = 0.5
	)

	x := rawData(params)
	g := rawData(grad)
	x0 := make([]float64, len(x))
	copy(x0, x)

	for trial := 0; trial < cfg.maxTrials; trial++ {
		if step < cfg.minStep || step > cfg.maxStep {
			break
		}

		for i := range x {
			x[i] = x0[i] + step*dir[i]
		}
		newObj := f.Evaluate(params)

		width := contract
		if newObj <= obj+cfg.armijoConstant*step*dg {
			df.Gradient(params, grad)
			dgNew := floats.Dot(g, dir)
			if dgNew >= cfg.wolfe*dg {
				return newObj, step, nil
			}
			// Sufficient decrease but curvature too steep; the step is too
			// short.
			width = expand
		}
		step *= width
	}

	copy(x, x0)
	return obj, 0, errLineSearchFail
}

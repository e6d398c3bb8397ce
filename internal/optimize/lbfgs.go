package optimize

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LBFGSConfig holds configuration for L-BFGS.
type LBFGSConfig struct {
	// Memory is the number of (s, y) correction pairs kept (default 10).
	Memory int

	MaxIterations int // default 10000

	// ArmijoConstant and Wolfe are the sufficient-decrease and curvature
	// constants of the line search (defaults 1e-4 and 0.9).
	ArmijoConstant float64
	Wolfe          float64

	// MinGradientNorm stops when the gradient norm relative to the parameter
	// norm falls below it (default 1e-6). Factr stops on relative objective
	// decrease (default 1e-15).
	MinGradientNorm float64
	Factr           float64

	MaxLineSearchTrials int     // default 50
	MinStep             float64 // default 1e-20
	MaxStep             float64 // default 1e20

	Callbacks []Callback
}

// LBFGS is the limited-memory BFGS quasi-Newton optimizer for full-batch
// differentiable functions. It approximates the inverse Hessian from the last
// Memory gradient differences via the two-loop recursion and chooses step
// lengths by backtracking Wolfe line search.
//
// A failed line search or a non-descent direction is not an error: the
// optimizer keeps the best point found and returns its objective.
type LBFGS struct {
	memory          int
	maxIterations   int
	minGradientNorm float64
	factr           float64
	lineSearch      lineSearchConfig
	callbacks       []Callback
}

// NewLBFGS creates an L-BFGS optimizer, filling zero config fields with
// defaults.
func NewLBFGS(config LBFGSConfig) *LBFGS {
	if config.Memory == 0 {
		config.Memory = 10
	}
	if config.MaxIterations == 0 {
		config.MaxIterations = 10000
	}
	if config.ArmijoConstant == 0 {
		config.ArmijoConstant = 1e-4
	}
	if config.Wolfe == 0 {
		config.Wolfe = 0.9
	}
	if config.MinGradientNorm == 0 {
		config.MinGradientNorm = 1e-6
	}
	if config.Factr == 0 {
		config.Factr = 1e-15
	}
	if config.MaxLineSearchTrials == 0 {
		config.MaxLineSearchTrials = 50
	}
	if config.MinStep == 0 {
		config.MinStep = 1e-20
	}
	if config.MaxStep == 0 {
		config.MaxStep = 1e20
	}
	return &LBFGS{
		memory:          config.Memory,
		maxIterations:   config.MaxIterations,
		minGradientNorm: config.MinGradientNorm,
		factr:           config.Factr,
		lineSearch: lineSearchConfig{
			armijoConstant: config.ArmijoConstant,
			wolfe:          config.Wolfe,
			maxTrials:      config.MaxLineSearchTrials,
			minStep:        config.MinStep,
			maxStep:        config.MaxStep,
		},
		callbacks: config.Callbacks,
	}
}

// Memory returns the number of correction pairs kept.
func (l *LBFGS) Memory() int { return l.memory }

// MaxIterations returns the iteration limit.
func (l *LBFGS) MaxIterations() int { return l.maxIterations }

// Optimize minimizes f from params. f must be a DifferentiableFunction.
func (l *LBFGS) Optimize(f Function, params *mat.Dense) (float64, error) {
	if err := validateParams(params); err != nil {
		return math.NaN(), err
	}
	df, err := differentiable(f)
	if err != nil {
		return math.NaN(), err
	}

	rows, cols := params.Dims()
	n := rows * cols
	x := rawData(params)

	grad := mat.NewDense(rows, cols, nil)
	g := rawData(grad)

	obj := f.Evaluate(params)
	df.Gradient(params, grad)

	var (
		sList [][]float64
		yList [][]float64
		rho   []float64
	)
	dir := make([]float64, n)
	xOld := make([]float64, n)
	gOld := make([]float64, n)

	for it := 1; it <= l.maxIterations; it++ {
		gradNorm := floats.Norm(g, 2)
		if gradNorm/math.Max(floats.Norm(x, 2), 1) < l.minGradientNorm {
			break
		}

		l.computeDirection(dir, g, sList, yList, rho)
		dg := floats.Dot(dir, g)
		if dg >= 0 {
			// The approximation produced an ascent direction; drop the
			// memory and fall back to steepest descent.
			sList, yList, rho = nil, nil, nil
			for i := range dir {
				dir[i] = -g[i]
			}
			dg = -gradNorm * gradNorm
			if dg == 0 {
				break
			}
		}

		copy(xOld, x)
		copy(gOld, g)

		step := 1.0
		if it == 1 {
			step = math.Min(1, 1/gradNorm)
		}
		newObj, _, lsErr := wolfeLineSearch(f, df, params, grad, dir, obj, dg, step, l.lineSearch)
		if lsErr != nil {
			// No acceptable step along this direction; params was restored.
			copy(g, gOld)
			break
		}

		s := make([]float64, n)
		y := make([]float64, n)
		for i := range s {
			s[i] = x[i] - xOld[i]
			y[i] = g[i] - gOld[i]
		}
		if sy := floats.Dot(s, y); sy > 1e-10 {
			sList = append(sList, s)
			yList = append(yList, y)
			rho = append(rho, 1/sy)
			if len(sList) > l.memory {
				sList = sList[1:]
				yList = yList[1:]
				rho = rho[1:]
			}
		}

		improvement := (obj - newObj) / math.Max(math.Max(math.Abs(obj), math.Abs(newObj)), 1)
		obj = newObj
		if stepTaken(l.callbacks, it, obj, params) {
			break
		}
		if improvement < l.factr {
			break
		}
	}

	return obj, nil
}

// computeDirection runs the two-loop recursion, writing the search direction
// -H*g into dir.
func (l *LBFGS) computeDirection(dir, g []float64, sList, yList [][]float64, rho []float64) {
	k := len(sList)
	copy(dir, g)

	alpha := make([]float64, k)
	for i := k - 1; i >= 0; i-- {
		alpha[i] = rho[i] * floats.Dot(sList[i], dir)
		floats.AddScaled(dir, -alpha[i], yList[i])
	}

	// Initial Hessian scaling gamma = s'y / y'y from the newest pair.
	if k > 0 {
		y := yList[k-1]
		gamma := 1 / (rho[k-1] * floats.Dot(y, y))
		floats.Scale(gamma, dir)
	}

	for i := 0; i < k; i++ {
		beta := rho[i] * floats.Dot(yList[i], dir)
		floats.AddScaled(dir, alpha[i]-beta, sList[i])
	}

	floats.Scale(-1, dir)
}

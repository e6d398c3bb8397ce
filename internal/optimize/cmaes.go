package optimize

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CMAESConfig holds configuration for CMA-ES.
type CMAESConfig struct {
	// PopulationSize is lambda; 0 means the standard 4 + floor(3 ln n).
	PopulationSize int

	// Sigma is the initial step size (coordinate-wise standard deviation),
	// default 0.5.
	Sigma float64

	// MaxIterations bounds the number of generations (default 1000).
	MaxIterations int

	// Tolerance stops when the best objective improves by less than this
	// over a generation (default 1e-10).
	Tolerance float64

	Seed int64

	Callbacks []Callback
}

// CMAES is the covariance matrix adaptation evolution strategy, a
// gradient-free optimizer that needs only Evaluate. Each generation samples
// a population from N(mean, sigma² C), ranks it by objective, and adapts the
// mean, the covariance C (rank-one and rank-mu updates) and the step size
// (cumulative path length control).
//
// Reference: Hansen, "The CMA Evolution Strategy: A Tutorial", 2016.
type CMAES struct {
	populationSize int
	sigma          float64
	maxIterations  int
	tolerance      float64
	seed           int64
	callbacks      []Callback
}

// NewCMAES creates a CMA-ES optimizer.
func NewCMAES(config CMAESConfig) *CMAES {
	if config.Sigma == 0 {
		config.Sigma = 0.5
	}
	if config.MaxIterations == 0 {
		config.MaxIterations = 1000
	}
	if config.Tolerance == 0 {
		config.Tolerance = 1e-10
	}
	return &CMAES{
		populationSize: config.PopulationSize,
		sigma:          config.Sigma,
		maxIterations:  config.MaxIterations,
		tolerance:      config.Tolerance,
		seed:           config.Seed,
		callbacks:      config.Callbacks,
	}
}

// Sigma returns the configured initial step size.
func (c *CMAES) Sigma() float64 { return c.sigma }

// Optimize runs CMA-ES from params as the initial mean. The best sampled
// point is written back into params.
func (c *CMAES) Optimize(f Function, params *mat.Dense) (float64, error) {
	if err := validateParams(params); err != nil {
		return math.NaN(), err
	}
	if c.sigma <= 0 {
		return math.NaN(), errors.Errorf("optimize: sigma %v, must be positive", c.sigma)
	}

	rows, cols := params.Dims()
	n := rows * cols
	rng := rand.New(rand.NewSource(c.seed))

	lambda := c.populationSize
	if lambda == 0 {
		lambda = 4 + int(3*math.Log(float64(n)))
	}
	if lambda < 4 {
		lambda = 4
	}
	mu := lambda / 2

	// Log-linear recombination weights.
	weights := make([]float64, mu)
	sum := 0.0
	for i := range weights {
		weights[i] = math.Log(float64(mu)+0.5) - math.Log(float64(i+1))
		sum += weights[i]
	}
	sumSq := 0.0
	for i := range weights {
		weights[i] /= sum
		sumSq += weights[i] * weights[i]
	}
	muEff := 1 / sumSq

	nf := float64(n)
	cc := (4 + muEff/nf) / (nf + 4 + 2*muEff/nf)
	cs := (muEff + 2) / (nf + muEff + 5)
	c1 := 2 / ((nf+1.3)*(nf+1.3) + muEff)
	cmu := math.Min(1-c1, 2*(muEff-2+1/muEff)/((nf+2)*(nf+2)+muEff))
	damps := 1 + 2*math.Max(0, math.Sqrt((muEff-1)/(nf+1))-1) + cs
	chiN := math.Sqrt(nf) * (1 - 1/(4*nf) + 1/(21*nf*nf))

	mean := make([]float64, n)
	copy(mean, rawData(params))

	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		cov.SetSym(i, i, 1)
	}
	b := mat.NewDense(n, n, nil)
	d := make([]float64, n)
	// The eigendecomposition is refreshed lazily, every eigenInterval
	// generations, as in Hansen's reference implementation.
	eigenInterval := max(1, int(1/((c1+cmu)*nf*10)))

	ps := make([]float64, n)
	pc := make([]float64, n)

	type candidate struct {
		z, y []float64
		obj  float64
	}
	pop := make([]candidate, lambda)
	for k := range pop {
		pop[k].z = make([]float64, n)
		pop[k].y = make([]float64, n)
	}
	scratch := mat.NewDense(rows, cols, nil)
	sd := rawData(scratch)

	sigma := c.sigma
	bestObj := f.Evaluate(params)
	best := make([]float64, n)
	copy(best, mean)
	lastBest := math.Inf(1)

	for gen := 1; gen <= c.maxIterations; gen++ {
		if (gen-1)%eigenInterval == 0 {
			if err := factorize(cov, b, d); err != nil {
				return bestObj, err
			}
		}

		// Sample and evaluate the population: y = B (d ∘ z), x = m + sigma*y.
		for k := range pop {
			z := pop[k].z
			y := pop[k].y
			for i := range z {
				z[i] = rng.NormFloat64()
			}
			for r := 0; r < n; r++ {
				yr := 0.0
				for cI := 0; cI < n; cI++ {
					yr += b.At(r, cI) * d[cI] * z[cI]
				}
				y[r] = yr
			}
			for i := range sd {
				sd[i] = mean[i] + sigma*y[i]
			}
			pop[k].obj = f.Evaluate(scratch)

			if pop[k].obj < bestObj {
				bestObj = pop[k].obj
				copy(best, sd)
			}
		}
		sort.Slice(pop, func(i, j int) bool { return pop[i].obj < pop[j].obj })

		// Recombine the mu best into the new mean.
		yBar := make([]float64, n)
		zBar := make([]float64, n)
		for i := 0; i < mu; i++ {
			w := weights[i]
			for j := 0; j < n; j++ {
				yBar[j] += w * pop[i].y[j]
				zBar[j] += w * pop[i].z[j]
			}
		}
		for j := 0; j < n; j++ {
			mean[j] += sigma * yBar[j]
		}

		// Step-size path: ps = (1-cs) ps + sqrt(cs(2-cs) muEff) B zBar.
		csc := math.Sqrt(cs * (2 - cs) * muEff)
		psNorm := 0.0
		for r := 0; r < n; r++ {
			bz := 0.0
			for cI := 0; cI < n; cI++ {
				bz += b.At(r, cI) * zBar[cI]
			}
			ps[r] = (1-cs)*ps[r] + csc*bz
			psNorm += ps[r] * ps[r]
		}
		psNorm = math.Sqrt(psNorm)

		expected := math.Sqrt(1 - math.Pow(1-cs, 2*float64(gen)))
		hsig := 0.0
		if psNorm/expected/chiN < 1.4+2/(nf+1) {
			hsig = 1
		}

		// Covariance path and rank-one/rank-mu covariance update.
		ccc := math.Sqrt(cc * (2 - cc) * muEff)
		for j := 0; j < n; j++ {
			pc[j] = (1-cc)*pc[j] + hsig*ccc*yBar[j]
		}
		oldScale := 1 - c1 - cmu + (1-hsig)*c1*cc*(2-cc)
		for r := 0; r < n; r++ {
			for cI := r; cI < n; cI++ {
				v := oldScale*cov.At(r, cI) + c1*pc[r]*pc[cI]
				for i := 0; i < mu; i++ {
					v += cmu * weights[i] * pop[i].y[r] * pop[i].y[cI]
				}
				cov.SetSym(r, cI, v)
			}
		}

		sigma *= math.Exp((cs / damps) * (psNorm/chiN - 1))
		if math.IsInf(sigma, 0) || math.IsNaN(sigma) {
			break
		}

		copy(sd, best)
		if stepTaken(c.callbacks, gen, bestObj, scratch) {
			break
		}

		// Convergence is judged on the per-generation best, which keeps
		// fluctuating while the search is alive; the all-time best can stall
		// for several generations without meaning convergence.
		genBest := pop[0].obj
		if math.Abs(lastBest-genBest) < c.tolerance {
			break
		}
		lastBest = genBest
	}

	copy(rawData(params), best)
	return bestObj, nil
}

// factorize eigendecomposes the covariance into b (eigenvector columns) and
// d (square roots of the eigenvalues, clamped away from zero).
func factorize(cov *mat.SymDense, b *mat.Dense, d []float64) error {
	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return errors.New("optimize: covariance eigendecomposition failed")
	}
	eig.VectorsTo(b)
	eig.Values(d)
	for i, v := range d {
		if v < 1e-20 {
			v = 1e-20
		}
		d[i] = math.Sqrt(v)
	}
	return nil
}

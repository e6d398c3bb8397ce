package optimize

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// UpdatePolicy is the pluggable step rule of the SGD family. Initialize runs
// once before the first step with the parameter shape; Update applies one
// step of the rule, mutating params in place.
type UpdatePolicy interface {
	Initialize(rows, cols int)
	Update(params *mat.Dense, stepSize float64, grad *mat.Dense)
}

// VanillaUpdate is plain gradient descent: params -= stepSize * grad.
type VanillaUpdate struct{}

func (VanillaUpdate) Initialize(rows, cols int) {}

func (VanillaUpdate) Update(params *mat.Dense, stepSize float64, grad *mat.Dense) {
	p := rawData(params)
	g := rawData(grad)
	for i := range p {
		p[i] -= stepSize * g[i]
	}
}

// MomentumUpdate accelerates descent with a velocity buffer:
//
//	velocity = momentum * velocity + grad
//	params  -= stepSize * velocity
type MomentumUpdate struct {
	Momentum float64 // default 0.9

	velocity []float64
}

func (m *MomentumUpdate) Initialize(rows, cols int) {
	if m.Momentum == 0 {
		m.Momentum = 0.9
	}
	m.velocity = make([]float64, rows*cols)
}

func (m *MomentumUpdate) Update(params *mat.Dense, stepSize float64, grad *mat.Dense) {
	p := rawData(params)
	g := rawData(grad)
	for i := range p {
		m.velocity[i] = m.Momentum*m.velocity[i] + g[i]
		p[i] -= stepSize * m.velocity[i]
	}
}

// NesterovMomentumUpdate applies Nesterov's accelerated gradient in its
// momentum formulation:
//
//	velocity = momentum * velocity + grad
//	params  -= stepSize * (grad + momentum * velocity)
type NesterovMomentumUpdate struct {
	Momentum float64 // default 0.9

	velocity []float64
}

func (n *NesterovMomentumUpdate) Initialize(rows, cols int) {
	if n.Momentum == 0 {
		n.Momentum = 0.9
	}
	n.velocity = make([]float64, rows*cols)
}

func (n *NesterovMomentumUpdate) Update(params *mat.Dense, stepSize float64, grad *mat.Dense) {
	p := rawData(params)
	g := rawData(grad)
	for i := range p {
		n.velocity[i] = n.Momentum*n.velocity[i] + g[i]
		p[i] -= stepSize * (g[i] + n.Momentum*n.velocity[i])
	}
}

// AdamUpdate maintains exponential moving averages of the gradient and its
// square, with bias correction.
//
//	m_t = beta1 * m + (1-beta1) * grad
//	v_t = beta2 * v + (1-beta2) * grad²
//	params -= stepSize * (m_t / (1-beta1^t)) / (sqrt(v_t / (1-beta2^t)) + eps)
//
// Reference: Kingma & Ba, "Adam: A Method for Stochastic Optimization", 2014.
type AdamUpdate struct {
	Beta1   float64 // default 0.9
	Beta2   float64 // default 0.999
	Epsilon float64 // default 1e-8

	m, v []float64
	t    int
}

func (a *AdamUpdate) Initialize(rows, cols int) {
	a.applyDefaults()
	a.m = make([]float64, rows*cols)
	a.v = make([]float64, rows*cols)
	a.t = 0
}

func (a *AdamUpdate) applyDefaults() {
	if a.Beta1 == 0 {
		a.Beta1 = 0.9
	}
	if a.Beta2 == 0 {
		a.Beta2 = 0.999
	}
	if a.Epsilon == 0 {
		a.Epsilon = 1e-8
	}
}

func (a *AdamUpdate) Update(params *mat.Dense, stepSize float64, grad *mat.Dense) {
	a.t++
	bc1 := 1 - math.Pow(a.Beta1, float64(a.t))
	bc2 := 1 - math.Pow(a.Beta2, float64(a.t))

	p := rawData(params)
	g := rawData(grad)
	for i := range p {
		a.m[i] = a.Beta1*a.m[i] + (1-a.Beta1)*g[i]
		a.v[i] = a.Beta2*a.v[i] + (1-a.Beta2)*g[i]*g[i]
		p[i] -= stepSize * (a.m[i] / bc1) / (math.Sqrt(a.v[i]/bc2) + a.Epsilon)
	}
}

// AdaMaxUpdate is the infinity-norm variant of Adam: the second moment is
// replaced by an exponentially weighted maximum of past gradient magnitudes.
type AdaMaxUpdate struct {
	Beta1   float64 // default 0.9
	Beta2   float64 // default 0.999
	Epsilon float64 // default 1e-8

	m, u []float64
	t    int
}

func (a *AdaMaxUpdate) Initialize(rows, cols int) {
	if a.Beta1 == 0 {
		a.Beta1 = 0.9
	}
	if a.Beta2 == 0 {
		a.Beta2 = 0.999
	}
	if a.Epsilon == 0 {
		a.Epsilon = 1e-8
	}
	a.m = make([]float64, rows*cols)
	a.u = make([]float64, rows*cols)
	a.t = 0
}

func (a *AdaMaxUpdate) Update(params *mat.Dense, stepSize float64, grad *mat.Dense) {
	a.t++
	bc1 := 1 - math.Pow(a.Beta1, float64(a.t))

	p := rawData(params)
	g := rawData(grad)
	for i := range p {
		a.m[i] = a.Beta1*a.m[i] + (1-a.Beta1)*g[i]
		a.u[i] = math.Max(a.Beta2*a.u[i], math.Abs(g[i]))
		p[i] -= stepSize * (a.m[i] / bc1) / (a.u[i] + a.Epsilon)
	}
}

// AMSGradUpdate is Adam with a non-decreasing second moment: the denominator
// uses the running maximum of v, which restores a convergence guarantee Adam
// lacks on some problems.
type AMSGradUpdate struct {
	Beta1   float64 // default 0.9
	Beta2   float64 // default 0.999
	Epsilon float64 // default 1e-8

	m, v, vMax []float64
	t          int
}

func (a *AMSGradUpdate) Initialize(rows, cols int) {
	if a.Beta1 == 0 {
		a.Beta1 = 0.9
	}
	if a.Beta2 == 0 {
		a.Beta2 = 0.999
	}
	if a.Epsilon == 0 {
		a.Epsilon = 1e-8
	}
	n := rows * cols
	a.m = make([]float64, n)
	a.v = make([]float64, n)
	a.vMax = make([]float64, n)
	a.t = 0
}

func (a *AMSGradUpdate) Update(params *mat.Dense, stepSize float64, grad *mat.Dense) {
	a.t++
	bc1 := 1 - math.Pow(a.Beta1, float64(a.t))
	bc2 := 1 - math.Pow(a.Beta2, float64(a.t))

	p := rawData(params)
	g := rawData(grad)
	for i := range p {
		a.m[i] = a.Beta1*a.m[i] + (1-a.Beta1)*g[i]
		a.v[i] = a.Beta2*a.v[i] + (1-a.Beta2)*g[i]*g[i]
		if a.v[i] > a.vMax[i] {
			a.vMax[i] = a.v[i]
		}
		p[i] -= stepSize * (a.m[i] / bc1) / (math.Sqrt(a.vMax[i]/bc2) + a.Epsilon)
	}
}

// AdaGradUpdate scales each coordinate by the accumulated squared gradients,
// giving rarely-updated coordinates larger effective step sizes.
type AdaGradUpdate struct {
	Epsilon float64 // default 1e-8

	sum []float64
}

func (a *AdaGradUpdate) Initialize(rows, cols int) {
	if a.Epsilon == 0 {
		a.Epsilon = 1e-8
	}
	a.sum = make([]float64, rows*cols)
}

func (a *AdaGradUpdate) Update(params *mat.Dense, stepSize float64, grad *mat.Dense) {
	p := rawData(params)
	g := rawData(grad)
	for i := range p {
		a.sum[i] += g[i] * g[i]
		p[i] -= stepSize * g[i] / (math.Sqrt(a.sum[i]) + a.Epsilon)
	}
}

// RMSPropUpdate scales each coordinate by an exponentially decayed average of
// squared gradients.
type RMSPropUpdate struct {
	Alpha   float64 // decay rate, default 0.99
	Epsilon float64 // default 1e-8

	mean []float64
}

func (r *RMSPropUpdate) Initialize(rows, cols int) {
	if r.Alpha == 0 {
		r.Alpha = 0.99
	}
	if r.Epsilon == 0 {
		r.Epsilon = 1e-8
	}
	r.mean = make([]float64, rows*cols)
}

func (r *RMSPropUpdate) Update(params *mat.Dense, stepSize float64, grad *mat.Dense) {
	p := rawData(params)
	g := rawData(grad)
	for i := range p {
		r.mean[i] = r.Alpha*r.mean[i] + (1-r.Alpha)*g[i]*g[i]
		p[i] -= stepSize * g[i] / (math.Sqrt(r.mean[i]) + r.Epsilon)
	}
}

package functions

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is the L2-regularized negative log-likelihood of binary
// logistic regression over a dataset,
//
//	f(w) = Σ_i [ log(1 + e^{-s_i}) + (1 - y_i) s_i ] + (λ/2) ||w||²,
//
// where s_i = x_i · w. It is differentiable, decomposable with one part per
// data point, and resolvable with one feature per weight, so it exercises
// every optimizer in the module on a realistic machine-learning loss.
//
// The parameter matrix is a d×1 column of weights; data is m×d with one
// point per row; labels are 0 or 1.
type LogisticRegression struct {
	data   *mat.Dense
	labels []float64
	lambda float64
	order  []int
}

// NewLogisticRegression creates the loss for the given dataset. lambda is
// the L2 regularization strength; 0 disables regularization.
func NewLogisticRegression(data *mat.Dense, labels []float64, lambda float64) *LogisticRegression {
	m, _ := data.Dims()
	if m != len(labels) {
		panic("functions: data rows and labels must have equal length")
	}
	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	return &LogisticRegression{data: data, labels: labels, lambda: lambda, order: order}
}

func (l *LogisticRegression) score(params mat.Matrix, i int) float64 {
	_, d := l.data.Dims()
	s := 0.0
	for j := 0; j < d; j++ {
		s += l.data.At(i, j) * params.At(j, 0)
	}
	return s
}

// regularizer returns the L2 penalty of a single part, so that the parts sum
// to the full (λ/2)||w||².
func (l *LogisticRegression) regularizer(params mat.Matrix) float64 {
	if l.lambda == 0 {
		return 0
	}
	_, d := l.data.Dims()
	sum := 0.0
	for j := 0; j < d; j++ {
		w := params.At(j, 0)
		sum += w * w
	}
	return l.lambda / 2 * sum / float64(len(l.labels))
}

func (l *LogisticRegression) pointLoss(params mat.Matrix, i int) float64 {
	s := l.score(params, i)
	return log1pExp(-s) + (1-l.labels[i])*s + l.regularizer(params)
}

// Evaluate returns the full loss.
func (l *LogisticRegression) Evaluate(params mat.Matrix) float64 {
	sum := 0.0
	for i := range l.labels {
		sum += l.pointLoss(params, i)
	}
	return sum
}

// Gradient writes the full gradient into grad.
func (l *LogisticRegression) Gradient(params mat.Matrix, grad *mat.Dense) {
	grad.Zero()
	l.accumulate(params, grad, l.order)
}

// NumFunctions returns the number of data points.
func (l *LogisticRegression) NumFunctions() int { return len(l.labels) }

// EvaluatePartial returns the loss of batchSize points starting at begin in
// the current visitation order.
func (l *LogisticRegression) EvaluatePartial(params mat.Matrix, begin, batchSize int) float64 {
	sum := 0.0
	for k := begin; k < begin+batchSize; k++ {
		sum += l.pointLoss(params, l.order[k])
	}
	return sum
}

// GradientPartial writes the gradient of batchSize points starting at begin
// into grad, overwriting it.
func (l *LogisticRegression) GradientPartial(params mat.Matrix, begin, batchSize int, grad *mat.Dense) {
	grad.Zero()
	l.accumulate(params, grad, l.order[begin:begin+batchSize])
}

// accumulate adds the gradient contributions of the given points:
// (σ(s_i) - y_i) x_i plus the per-point share of the regularizer.
func (l *LogisticRegression) accumulate(params mat.Matrix, grad *mat.Dense, points []int) {
	_, d := l.data.Dims()
	g := gradData(grad)
	m := float64(len(l.labels))
	for _, i := range points {
		err := sigmoid(l.score(params, i)) - l.labels[i]
		for j := 0; j < d; j++ {
			g[j] += err*l.data.At(i, j) + l.lambda*params.At(j, 0)/m
		}
	}
}

// Shuffle reorders the visitation order of the points.
func (l *LogisticRegression) Shuffle() {
	rand.Shuffle(len(l.order), func(i, j int) {
		l.order[i], l.order[j] = l.order[j], l.order[i]
	})
}

// NumFeatures returns the number of weights.
func (l *LogisticRegression) NumFeatures() int {
	_, d := l.data.Dims()
	return d
}

// PartialGradient writes the gradient with respect to weight j into grad,
// overwriting it; only element j is nonzero.
func (l *LogisticRegression) PartialGradient(params mat.Matrix, j int, grad *mat.Dense) {
	grad.Zero()
	g := gradData(grad)
	sum := 0.0
	for i := range l.labels {
		sum += (sigmoid(l.score(params, i)) - l.labels[i]) * l.data.At(i, j)
	}
	g[j] = sum + l.lambda*params.At(j, 0)
}

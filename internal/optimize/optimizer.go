package optimize

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Optimizer is the interface every optimization algorithm implements.
//
// Optimize minimizes f starting from params, mutating params in place toward
// the minimizer it found, and returns the final objective value. params keeps
// its best known value even when an error is returned mid-run.
type Optimizer interface {
	Optimize(f Function, params *mat.Dense) (float64, error)
}

// clampBatchSize validates a batch size and clamps it to the number of
// separable parts, so the default batch size works on small problems.
func clampBatchSize(batchSize, numFunctions int) (int, error) {
	if batchSize < 1 {
		return 0, errors.Errorf("optimize: batch size %d, must be at least 1", batchSize)
	}
	return min(batchSize, numFunctions), nil
}

func validateStepSize(stepSize float64) error {
	if stepSize <= 0 || math.IsNaN(stepSize) {
		return errors.Errorf("optimize: step size %v, must be positive", stepSize)
	}
	return nil
}

func validateParams(params *mat.Dense) error {
	if params == nil || params.IsEmpty() {
		return errors.New("optimize: empty parameter matrix")
	}
	return nil
}

// rawData returns the backing slice of a dense matrix for elementwise update
// loops. Matrices allocated with mat.NewDense are contiguous; views are not
// and must not be passed to optimizers.
func rawData(m *mat.Dense) []float64 {
	rm := m.RawMatrix()
	if rm.Stride != rm.Cols {
		panic("optimize: parameter matrix is a non-contiguous view")
	}
	return rm.Data
}

// axpyInPlace computes dst += alpha * x elementwise over the raw data.
func axpyInPlace(alpha float64, x, dst *mat.Dense) {
	xd := rawData(x)
	dd := rawData(dst)
	for i, v := range xd {
		dd[i] += alpha * v
	}
}

package optimize_test

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/wangxindsb/mlpack/functions"
	"github.com/wangxindsb/mlpack/internal/optimize"
)

// TestCallbackFuncStopsSGD checks that a stop request from a callback ends
// the run early.
func TestCallbackFuncStopsSGD(t *testing.T) {
	steps := 0
	stopAfter := optimize.CallbackFunc(func(iteration int, _ float64, _ mat.Matrix) bool {
		steps = iteration
		return iteration >= 5
	})

	f := functions.DefaultSumOfParabolas()
	params := mat.NewDense(1, 4, nil)
	opt := optimize.NewSGD(optimize.SGDConfig{
		BatchSize:     1,
		MaxIterations: 100000,
		Tolerance:     1e-300,
		Callbacks:     []optimize.Callback{stopAfter},
	})

	_, err := opt.Optimize(f, params)
	require.NoError(t, err)
	assert.Equal(t, 5, steps)
}

// TestEarlyStopAtMinLoss checks the patience counter.
func TestEarlyStopAtMinLoss(t *testing.T) {
	cb := &optimize.EarlyStopAtMinLoss{Patience: 3}
	params := mat.NewDense(1, 1, nil)

	assert.False(t, cb.StepTaken(1, 10, params)) // baseline
	assert.False(t, cb.StepTaken(2, 9, params))  // improvement
	assert.False(t, cb.StepTaken(3, 9.5, params))
	assert.False(t, cb.StepTaken(4, 9.5, params))
	assert.True(t, cb.StepTaken(5, 9.5, params)) // third bad step
}

// TestTimeLimit checks the wall-clock stop.
func TestTimeLimit(t *testing.T) {
	cb := &optimize.TimeLimit{Limit: time.Millisecond}
	params := mat.NewDense(1, 1, nil)

	assert.False(t, cb.StepTaken(1, 0, params)) // starts the clock
	time.Sleep(5 * time.Millisecond)
	assert.True(t, cb.StepTaken(2, 0, params))
}

// TestProgressLoggerNeverStops checks that logging is observational only.
func TestProgressLoggerNeverStops(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	cb := &optimize.ProgressLogger{Logger: logger, Every: 1}
	params := mat.NewDense(1, 1, nil)

	for i := 1; i <= 10; i++ {
		assert.False(t, cb.StepTaken(i, float64(i), params))
	}
}

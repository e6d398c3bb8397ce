package optimize

import (
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Callback observes the progress of an iterative optimizer. StepTaken runs
// after each parameter update with the most recent objective the optimizer
// computed: the current batch objective for stochastic optimizers, the full
// objective otherwise. Returning true asks the optimizer to stop early.
// Optimizers that stop this way still return the current objective with a
// nil error.
type Callback interface {
	StepTaken(iteration int, objective float64, params mat.Matrix) bool
}

// CallbackFunc adapts a plain function to the Callback interface.
type CallbackFunc func(iteration int, objective float64, params mat.Matrix) bool

func (f CallbackFunc) StepTaken(iteration int, objective float64, params mat.Matrix) bool {
	return f(iteration, objective, params)
}

// stepTaken runs every callback and reports whether any requested a stop.
func stepTaken(cbs []Callback, iteration int, objective float64, params mat.Matrix) bool {
	stop := false
	for _, cb := range cbs {
		if cb.StepTaken(iteration, objective, params) {
			stop = true
		}
	}
	return stop
}

// EarlyStopAtMinLoss stops optimization after Patience consecutive steps
// without an improvement of the objective.
type EarlyStopAtMinLoss struct {
	Patience int // steps without improvement before stopping (default 10)

	best    float64
	bad     int
	started bool
}

func (e *EarlyStopAtMinLoss) StepTaken(_ int, objective float64, _ mat.Matrix) bool {
	if !e.started {
		e.started = true
		e.best = objective
		return false
	}
	if objective < e.best {
		e.best = objective
		e.bad = 0
		return false
	}
	e.bad++
	patience := e.Patience
	if patience == 0 {
		patience = 10
	}
	return e.bad >= patience
}

// TimeLimit stops optimization once Limit of wall-clock time has elapsed,
// counted from the first step.
type TimeLimit struct {
	Limit time.Duration

	start time.Time
}

func (t *TimeLimit) StepTaken(_ int, _ float64, _ mat.Matrix) bool {
	if t.start.IsZero() {
		t.start = time.Now()
		return false
	}
	return time.Since(t.start) >= t.Limit
}

// ProgressLogger logs the objective every Every steps. The library core is
// otherwise silent; attach this callback to watch a run.
type ProgressLogger struct {
	Logger *logrus.Logger
	Every  int // default 100
}

func (p *ProgressLogger) StepTaken(iteration int, objective float64, _ mat.Matrix) bool {
	every := p.Every
	if every == 0 {
		every = 100
	}
	if iteration%every != 0 {
		return false
	}
	logger := p.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithFields(logrus.Fields{
		"iteration": iteration,
		"objective": objective,
	}).Info("optimization progress")
	return false
}

// Package startup runs the one-shot dependency checks that gate the liveness
// server. Steps run in order and the first failure ends the run; nothing is
// retried.
package startup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrStepFailed is matched by every error returned from Pipeline.Run.
	ErrStepFailed = errors.New("startup step failed")
	// ErrNoRun is reported for a step registered without a Run func.
	ErrNoRun = errors.New("step has no run func")
)

// State is the readiness of a single step.
type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
	StateFailed  State = "failed"
	StateSkipped State = "skipped"
)

// Step is one dependency connection attempt.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// StepResult records how a step ended.
type StepResult struct {
	Name     string
	State    State
	Err      error
	Duration time.Duration
}

// StepError wraps the failure of a named step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("startup step %q: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{ErrStepFailed, e.Err}
}

// Report holds one result per step, in pipeline order.
type Report struct {
	Results []StepResult
}

// Ready reports whether every step completed successfully.
func (r *Report) Ready() bool {
	if r == nil {
		return true
	}
	for _, res := range r.Results {
		if res.State != StateReady {
			return false
		}
	}
	return true
}

// Result returns the result for the named step.
func (r *Report) Result(name string) (StepResult, bool) {
	if r == nil {
		return StepResult{}, false
	}
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return StepResult{}, false
}

// Pipeline is an ordered list of steps.
type Pipeline struct {
	steps   []Step
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStepTimeout bounds each step's context. Zero means no bound.
func WithStepTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// WithLogger sets the logger used for step progress.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// New creates a pipeline that runs steps in the given order.
func New(steps []Step, opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:  append([]Step(nil), steps...),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Steps returns the step names in run order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Run executes the steps in order and stops at the first failure. Later
// steps are reported as skipped. The returned error is a *StepError.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{Results: make([]StepResult, len(p.steps))}
	for i, s := range p.steps {
		report.Results[i] = StepResult{Name: s.Name, State: StatePending}
	}

	for i, s := range p.steps {
		if err := ctx.Err(); err != nil {
			report.Results[i].State = StateFailed
			report.Results[i].Err = err
			markSkipped(report, i+1)
			return report, &StepError{Step: s.Name, Err: err}
		}

		p.logger.Info("connecting", "step", s.Name)
		start := time.Now()
		err := p.runStep(ctx, s)
		res := &report.Results[i]
		res.Duration = time.Since(start)

		if err != nil {
			res.State = StateFailed
			res.Err = err
			p.logger.Error("startup step failed",
				"step", s.Name,
				"error", err,
				"duration_ms", res.Duration.Milliseconds(),
			)
			markSkipped(report, i+1)
			return report, &StepError{Step: s.Name, Err: err}
		}

		res.State = StateReady
		p.logger.Info("connected", "step", s.Name, "duration_ms", res.Duration.Milliseconds())
	}
	return report, nil
}

func (p *Pipeline) runStep(ctx context.Context, s Step) error {
	if s.Run == nil {
		return ErrNoRun
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return s.Run(ctx)
}

func markSkipped(r *Report, from int) {
	for i := from; i < len(r.Results); i++ {
		r.Results[i].State = StateSkipped
	}
}

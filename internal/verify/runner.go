// Package verify runs the lobby accessibility verification script.
//
// The script is an ordered list of named steps executed once against one page.
// Advisory checks print PASS/FAIL lines and never change control flow; any
// other failure (navigation, click targets, waits) ends the run.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/themizzi/uxverify/internal/browser"
	"github.com/themizzi/uxverify/internal/config"
	"github.com/themizzi/uxverify/internal/models"
)

// Exit codes reported for a run
const (
	ExitPassed  = 0
	ExitFailed  = 1
	ExitAborted = 2
)

// ErrAborted matches every run-terminating error returned by Runner.Run
var ErrAborted = errors.New("verification run aborted")

// StepError is a run-terminating failure of a single step
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrAborted) match any step failure
func (e *StepError) Is(target error) bool {
	return target == ErrAborted
}

// Runner executes the verification steps with one browser session
type Runner struct {
	driver browser.Driver
	config config.RunnerConfig
	out    io.Writer
	logger *zap.Logger
	steps  []Step
}

// NewRunner creates a runner printing its report to out
func NewRunner(driver browser.Driver, cfg config.RunnerConfig, out io.Writer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		driver: driver,
		config: cfg,
		out:    out,
		logger: logger,
		steps:  Steps(),
	}
}

// WithSteps replaces the step list, mainly for tests
func (r *Runner) WithSteps(steps []Step) *Runner {
	r.steps = steps
	return r
}

// Run executes every step in order. The returned run always carries the checks
// recorded so far; err is a *StepError when a step could not complete.
func (r *Runner) Run(ctx context.Context) (*models.Run, error) {
	run, err := models.NewRun(r.config.BaseURL, r.driver.Name())
	if err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}
	logger := r.logger.With(zap.String("run_id", run.ID), zap.String("driver", run.Driver))

	if err := os.MkdirAll(r.config.ScreenshotDir, 0o755); err != nil {
		return run, r.abort(run, logger, "prepare-screenshots", err)
	}

	logger.Debug("opening browser",
		zap.Int("width", r.config.ViewportWidth),
		zap.Int("height", r.config.ViewportHeight),
		zap.Bool("headless", r.config.Headless))

	session, err := r.driver.Open(ctx, browser.Options{
		Width:    r.config.ViewportWidth,
		Height:   r.config.ViewportHeight,
		Headless: r.config.Headless,
		Timeout:  r.config.Timeout,
	})
	if err != nil {
		return run, r.abort(run, logger, "open-browser", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close browser", zap.Error(err))
			return
		}
		logger.Debug("browser closed")
	}()

	state := &State{
		Session:       session,
		Run:           run,
		BaseURL:       r.config.BaseURL,
		ScreenshotDir: r.config.ScreenshotDir,
		out:           r.out,
	}

	for _, step := range r.steps {
		if err := ctx.Err(); err != nil {
			return run, r.abort(run, logger, step.Name, err)
		}

		start := time.Now()
		err := step.Run(state)
		logger.Debug("step finished", zap.String("step", step.Name), zap.Duration("elapsed", time.Since(start)))
		if err != nil {
			return run, r.abort(run, logger, step.Name, err)
		}
	}

	if err := run.Finish(nil); err != nil {
		return run, err
	}
	logger.Info("verification finished",
		zap.String("summary", run.Summary()),
		zap.Duration("duration", run.Duration()))
	return run, nil
}

// abort closes the run with a step failure and prints it after the partial report
func (r *Runner) abort(run *models.Run, logger *zap.Logger, step string, cause error) error {
	stepErr := &StepError{Step: step, Err: cause}
	_ = run.Finish(stepErr)
	fmt.Fprintf(r.out, "ERROR: %v\n", stepErr)
	logger.Error("verification aborted", zap.String("step", step), zap.Error(cause))
	return stepErr
}

// ExitCode maps a run outcome to the process exit code
func ExitCode(run *models.Run, err error) int {
	if err != nil || run == nil || run.Aborted() {
		return ExitAborted
	}
	if !run.Passed() {
		return ExitFailed
	}
	return ExitPassed
}

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CheckStatus represents the outcome of a single verification check
type CheckStatus string

// Check statuses
const (
	CheckStatusPass CheckStatus = "pass"
	CheckStatusFail CheckStatus = "fail"
)

// CheckResult is the structured outcome of one advisory check
type CheckResult struct {
	Step    string
	Status  CheckStatus
	Message string
}

// Line renders the check the way it is printed on the console
func (c CheckResult) Line() string {
	if c.Status == CheckStatusPass {
		return "PASS: " + c.Message
	}
	return "FAIL: " + c.Message
}

// Passed returns true if the check passed
func (c CheckResult) Passed() bool {
	return c.Status == CheckStatusPass
}

// Run represents one execution of the verification script against a target
type Run struct {
	ID          string
	Target      string
	Driver      string
	StartedAt   time.Time
	FinishedAt  time.Time
	Checks      []CheckResult
	Screenshots []string
	AbortError  string
}

// Domain errors
var (
	ErrEmptyTarget      = errors.New("run target cannot be empty")
	ErrEmptyDriver      = errors.New("run driver cannot be empty")
	ErrRunAlreadyClosed = errors.New("run is already finished")
)

// NewRun creates a new run with validation
func NewRun(target, driver string) (*Run, error) {
	if target == "" {
		return nil, ErrEmptyTarget
	}
	if driver == "" {
		return nil, ErrEmptyDriver
	}

	return &Run{
		ID:        uuid.New().String(),
		Target:    target,
		Driver:    driver,
		StartedAt: time.Now(),
	}, nil
}

// Record appends a check result to the run
func (r *Run) Record(step string, passed bool, message string) CheckResult {
	status := CheckStatusFail
	if passed {
		status = CheckStatusPass
	}
	check := CheckResult{Step: step, Status: status, Message: message}
	r.Checks = append(r.Checks, check)
	return check
}

// AddScreenshot remembers the path of a captured screenshot
func (r *Run) AddScreenshot(path string) {
	r.Screenshots = append(r.Screenshots, path)
}

// Finish closes the run, marking it aborted when err is non-nil
func (r *Run) Finish(err error) error {
	if !r.FinishedAt.IsZero() {
		return ErrRunAlreadyClosed
	}
	if err != nil {
		r.AbortError = err.Error()
	}
	r.FinishedAt = time.Now()
	return nil
}

// Aborted returns true if a run-terminating error stopped the run
func (r *Run) Aborted() bool {
	return r.AbortError != ""
}

// Failures returns the checks that failed
func (r *Run) Failures() []CheckResult {
	var failed []CheckResult
	for _, c := range r.Checks {
		if !c.Passed() {
			failed = append(failed, c)
		}
	}
	return failed
}

// Passed returns true if the run completed and every check passed
func (r *Run) Passed() bool {
	return !r.Aborted() && len(r.Failures()) == 0
}

// Duration returns how long the run took, or zero while it is still open
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary returns a one-line description of the run outcome
func (r *Run) Summary() string {
	failed := len(r.Failures())
	passed := len(r.Checks) - failed
	if r.Aborted() {
		return fmt.Sprintf("aborted after %d passed, %d failed: %s", passed, failed, r.AbortError)
	}
	return fmt.Sprintf("%d passed, %d failed", passed, failed)
}

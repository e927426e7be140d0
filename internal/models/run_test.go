package models

import (
	"errors"
	"strings"
	"testing"
)

func TestNewRun(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		driver  string
		wantErr error
	}{
		{
			name:    "valid run",
			target:  "http://localhost:3000",
			driver:  "playwright",
			wantErr: nil,
		},
		{
			name:    "empty target",
			target:  "",
			driver:  "playwright",
			wantErr: ErrEmptyTarget,
		},
		{
			name:    "empty driver",
			target:  "http://localhost:3000",
			driver:  "",
			wantErr: ErrEmptyDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewRun(tt.target, tt.driver)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("NewRun() error = %v, wantErr %v", err, tt.wantErr)
				}
				if run != nil {
					t.Error("Expected run to be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewRun() unexpected error = %v", err)
			}
			if run.ID == "" {
				t.Error("Run ID should not be empty")
			}
			if run.StartedAt.IsZero() {
				t.Error("StartedAt should be set")
			}
			if !run.FinishedAt.IsZero() {
				t.Error("FinishedAt should not be set on a new run")
			}
		})
	}
}

func TestCheckResult_Line(t *testing.T) {
	tests := []struct {
		name  string
		check CheckResult
		want  string
	}{
		{
			name:  "pass",
			check: CheckResult{Status: CheckStatusPass, Message: "Modal has correct ARIA attributes"},
			want:  "PASS: Modal has correct ARIA attributes",
		},
		{
			name:  "fail",
			check: CheckResult{Status: CheckStatusFail, Message: "Modal missing ARIA attributes"},
			want:  "FAIL: Modal missing ARIA attributes",
		},
		{
			name:  "unknown status renders as failure",
			check: CheckResult{Status: "", Message: "x"},
			want:  "FAIL: x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check.Line(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_RecordAndOutcome(t *testing.T) {
	// GIVEN
	run, err := NewRun("http://localhost:3000", "playwright")
	if err != nil {
		t.Fatal(err)
	}

	// WHEN
	run.Record("refresh-label", true, "Refresh button has aria-label='Refresh list'")
	run.Record("modal-aria", false, "Modal missing ARIA attributes")

	// THEN
	if len(run.Checks) != 2 {
		t.Fatalf("Expected 2 checks, got %d", len(run.Checks))
	}
	if run.Passed() {
		t.Error("Run with a failed check should not pass")
	}
	failures := run.Failures()
	if len(failures) != 1 || failures[0].Step != "modal-aria" {
		t.Errorf("Unexpected failures: %+v", failures)
	}
	if got := run.Summary(); got != "1 passed, 1 failed" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestRun_AllPassing(t *testing.T) {
	run, _ := NewRun("http://localhost:3000", "rod")
	run.Record("a", true, "one")
	run.Record("b", true, "two")

	if err := run.Finish(nil); err != nil {
		t.Fatalf("Finish() unexpected error: %v", err)
	}
	if !run.Passed() {
		t.Error("Expected run to pass")
	}
	if run.Aborted() {
		t.Error("Run should not be aborted")
	}
	if run.Duration() < 0 {
		t.Error("Duration should not be negative")
	}
}

func TestRun_Finish(t *testing.T) {
	t.Run("abort error is recorded", func(t *testing.T) {
		run, _ := NewRun("http://localhost:3000", "playwright")
		run.Record("refresh-label", true, "ok")

		if err := run.Finish(errors.New("click MULTIPLAYER: timeout")); err != nil {
			t.Fatalf("Finish() unexpected error: %v", err)
		}

		if !run.Aborted() {
			t.Error("Expected run to be aborted")
		}
		if run.Passed() {
			t.Error("Aborted run should not pass")
		}
		if !strings.HasPrefix(run.Summary(), "aborted after 1 passed, 0 failed") {
			t.Errorf("Unexpected summary: %s", run.Summary())
		}
	})

	t.Run("second finish is rejected", func(t *testing.T) {
		run, _ := NewRun("http://localhost:3000", "playwright")
		if err := run.Finish(nil); err != nil {
			t.Fatal(err)
		}
		if err := run.Finish(nil); err != ErrRunAlreadyClosed {
			t.Errorf("Expected ErrRunAlreadyClosed, got %v", err)
		}
	})

	t.Run("duration is zero while open", func(t *testing.T) {
		run, _ := NewRun("http://localhost:3000", "playwright")
		if run.Duration() != 0 {
			t.Errorf("Expected zero duration, got %v", run.Duration())
		}
	})
}

func TestRun_AddScreenshot(t *testing.T) {
	run, _ := NewRun("http://localhost:3000", "playwright")
	run.AddScreenshot("verification/1_empty_state.png")
	run.AddScreenshot("verification/2_modal_open.png")

	if len(run.Screenshots) != 2 {
		t.Fatalf("Expected 2 screenshots, got %d", len(run.Screenshots))
	}
	if run.Screenshots[1] != "verification/2_modal_open.png" {
		t.Errorf("Unexpected screenshot path %s", run.Screenshots[1])
	}
}

package cli

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/themizzi/uxverify/internal/browser"
	"github.com/themizzi/uxverify/internal/config"
	"github.com/themizzi/uxverify/internal/services"
	"github.com/themizzi/uxverify/internal/verify"
)

// RunDependencies holds everything a verification run needs
type RunDependencies struct {
	Config config.RunnerConfig
	Driver browser.Driver
	// Reports is nil unless the run should be recorded
	Reports services.ReportService
	Out     io.Writer
	Logger  *zap.Logger
}

// RunVerification executes one verification run and returns the process exit code.
// A failure to record the report is logged and does not change the exit code.
func RunVerification(ctx context.Context, deps RunDependencies) int {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	run, err := verify.NewRunner(deps.Driver, deps.Config, deps.Out, logger).Run(ctx)
	code := verify.ExitCode(run, err)

	if deps.Reports != nil && run != nil {
		// Record even when the run context was cancelled
		if recErr := deps.Reports.Record(context.WithoutCancel(ctx), run); recErr != nil {
			logger.Error("failed to record run", zap.String("run_id", run.ID), zap.Error(recErr))
		} else {
			logger.Info("run recorded", zap.String("run_id", run.ID))
		}
	}

	return code
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/themizzi/uxverify/internal/models"
)

// Recent history limits
const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

// ErrRunNotFinished is returned when recording a run that is still open
var ErrRunNotFinished = errors.New("run is not finished")

// RunRepository defines the interface for run persistence
type RunRepository interface {
	CreateRun(ctx context.Context, run *models.Run) error
	GetRun(ctx context.Context, id string) (*models.Run, error)
	ListRecentRuns(ctx context.Context, limit int) ([]*models.Run, error)
}

// ReportService stores and reads back verification run reports
type ReportService interface {
	Record(ctx context.Context, run *models.Run) error
	Get(ctx context.Context, id string) (*models.Run, error)
	Recent(ctx context.Context, limit int) ([]*models.Run, error)
}

// ReportServiceImpl implements ReportService
type ReportServiceImpl struct {
	runRepo RunRepository
}

// NewReportService creates a new report service
func NewReportService(runRepo RunRepository) ReportService {
	return &ReportServiceImpl{
		runRepo: runRepo,
	}
}

// Record persists a finished run
func (s *ReportServiceImpl) Record(ctx context.Context, run *models.Run) error {
	if run == nil || run.FinishedAt.IsZero() {
		return ErrRunNotFinished
	}
	if err := s.runRepo.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Get retrieves a run by id
func (s *ReportServiceImpl) Get(ctx context.Context, id string) (*models.Run, error) {
	run, err := s.runRepo.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// Recent returns the newest runs; limit <= 0 means the default and large
// values are capped
func (s *ReportServiceImpl) Recent(ctx context.Context, limit int) ([]*models.Run, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}
	runs, err := s.runRepo.ListRecentRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

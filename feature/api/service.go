package api

import (
	"context"
	"errors"

	"tablediff/core/compare"
	"tablediff/core/diff"
	"tablediff/feature/sheetsource"
	"tablediff/feature/sqlsource"

	"go.uber.org/zap"
)

// Service runs comparisons for the handlers.
type Service struct {
	scheduler   *compare.Scheduler
	excluded    []string
	parallelism int
	logger      *zap.Logger
}

// NewService creates a service. parallelism is the default for batch requests.
func NewService(scheduler *compare.Scheduler, excluded []string, parallelism int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		scheduler:   scheduler,
		excluded:    excluded,
		parallelism: parallelism,
		logger:      logger,
	}
}

// Tables lists the source tables that are not excluded.
func (s *Service) Tables(ctx context.Context) ([]string, error) {
	return compare.SelectTables(ctx, s.scheduler.Source, s.excluded)
}

// CompareTable returns the detailed result of one table.
func (s *Service) CompareTable(ctx context.Context, table string) (*diff.TableResult, error) {
	return s.scheduler.CompareOne(ctx, table)
}

// CompareTables summarizes tables, or every listed table when tables is empty.
// Per-table failures are returned alongside the summaries that succeeded.
func (s *Service) CompareTables(ctx context.Context, tables []string, parallelism int) ([]diff.Summary, []error, error) {
	if len(tables) == 0 {
		listed, err := s.Tables(ctx)
		if err != nil {
			return nil, nil, err
		}
		tables = listed
	}
	if parallelism <= 0 {
		parallelism = s.parallelism
	}

	summaries, err := s.scheduler.CompareManySummary(ctx, tables, parallelism, nil)
	return summaries, splitErrors(err), nil
}

func splitErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

var notFoundErrors = []error{sqlsource.ErrTableNotFound, sheetsource.ErrNoSheet}

func isNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

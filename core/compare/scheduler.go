package compare

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"tablediff/core/dataset"
	"tablediff/core/diff"
	"tablediff/core/keys"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Progress is reported after each table of a batch completes.
type Progress struct {
	Processed int
	Total     int
	Table     string
}

// ProgressFunc receives progress reports. Calls are serialized and Processed strictly
// increases from one call to the next.
type ProgressFunc func(Progress)

// Scheduler compares tables of Source against Target.
type Scheduler struct {
	Source Provider
	Target Provider

	// CustomKeys maps table names, case-insensitively, to user-chosen key columns.
	CustomKeys map[string][]string

	Logger *zap.Logger
}

// New creates a scheduler.
func New(source, target Provider, customKeys map[string][]string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{Source: source, Target: target, CustomKeys: customKeys, Logger: logger}
}

// Parallelism returns the worker count for a requested maximum.
func Parallelism(limit int) int {
	cpus := runtime.NumCPU()
	n := limit
	if n <= 0 {
		n = min(cpus, 4)
	}
	if n > 2*cpus {
		n = 2 * cpus
	}
	if n < 1 {
		n = 1
	}
	return n
}

// SelectTables lists the tables of p that are not excluded. Exclusions ignore case.
func SelectTables(ctx context.Context, p Provider, excluded []string) ([]string, error) {
	tables, err := p.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	skip := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		skip[strings.ToLower(name)] = struct{}{}
	}

	selected := make([]string, 0, len(tables))
	for _, table := range tables {
		if _, ok := skip[strings.ToLower(table)]; !ok {
			selected = append(selected, table)
		}
	}
	return selected, nil
}

// CompareOne loads both sides of table, resolves a key pairwise and returns the detailed
// result.
func (s *Scheduler) CompareOne(ctx context.Context, table string) (*diff.TableResult, error) {
	s.begin(ctx)
	defer s.end(ctx)

	result, err := s.compareFull(ctx, table)
	if err != nil {
		return nil, &TableError{Table: table, Err: err}
	}
	return result, nil
}

// CompareManySummary compares tables on a bounded worker pool and returns one summary
// per completed table, sorted by table name ignoring case.
//
// Failed tables are reported as *TableError values joined into the returned error; the
// summaries of the other tables are still returned. When ctx is cancelled, tables not
// yet started are skipped and the error wraps ErrCancelled.
func (s *Scheduler) CompareManySummary(ctx context.Context, tables []string, maxParallelism int, progress ProgressFunc) ([]diff.Summary, error) {
	s.begin(ctx)
	defer s.end(ctx)

	var (
		mu        sync.Mutex
		summaries = make([]diff.Summary, 0, len(tables))
		failures  []error
		skipped   atomic.Int64

		progressMu sync.Mutex
		processed  int
	)

	workers := Parallelism(maxParallelism)
	s.Logger.Debug("Starting batch comparison",
		zap.Int("tables", len(tables)),
		zap.Int("workers", workers))

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for _, table := range tables {
		g.Go(func() error {
			defer func() {
				progressMu.Lock()
				defer progressMu.Unlock()
				processed++
				if progress != nil {
					progress(Progress{Processed: processed, Total: len(tables), Table: table})
				}
			}()

			if ctx.Err() != nil {
				skipped.Add(1)
				return nil
			}

			summary, err := s.summarize(context.WithoutCancel(ctx), table)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.Logger.Warn("Table comparison failed", zap.String("table", table), zap.Error(err))
				failures = append(failures, &TableError{Table: table, Err: err})
				return nil
			}
			summaries = append(summaries, summary)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].Table) < strings.ToLower(summaries[j].Table)
	})

	if n := skipped.Load(); n > 0 {
		s.Logger.Info("Batch comparison cancelled",
			zap.Int64("skipped", n),
			zap.Int("completed", len(summaries)))
		failures = append([]error{cancelled(ctx.Err())}, failures...)
	}
	return summaries, errors.Join(failures...)
}

func (s *Scheduler) summarize(ctx context.Context, table string) (diff.Summary, error) {
	if s.Source.ID() == s.Target.ID() {
		return diff.Summary{Table: table, Path: diff.PathIdentical}, nil
	}

	summary, ok, err := s.fingerprintSummary(ctx, table)
	if err != nil {
		return diff.Summary{}, err
	}
	if ok {
		return summary, nil
	}

	result, err := s.compareFull(ctx, table)
	if err != nil {
		return diff.Summary{}, err
	}
	summary = diff.Summarize(result)
	summary.Table = table
	return summary, nil
}

// fingerprintSummary compares key to fingerprint maps. ok is false when a side cannot
// fingerprint or the key resolved from the source schema is missing on either side.
func (s *Scheduler) fingerprintSummary(ctx context.Context, table string) (diff.Summary, bool, error) {
	sourceFP, ok := s.Source.(Fingerprinter)
	if !ok {
		return diff.Summary{}, false, nil
	}
	targetFP, ok := s.Target.(Fingerprinter)
	if !ok {
		return diff.Summary{}, false, nil
	}

	var (
		sourceColumns, targetColumns []dataset.Column
		declared                     []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if sourceColumns, err = sourceFP.Columns(gctx, table); err != nil {
			return fmt.Errorf("source columns: %w", err)
		}
		if declared, err = s.Source.DeclaredKey(gctx, table); err != nil {
			return fmt.Errorf("source key: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if targetColumns, err = targetFP.Columns(gctx, table); err != nil {
			return fmt.Errorf("target columns: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return diff.Summary{}, false, err
	}

	res := keys.ResolveSingle(sourceColumns, declared, s.customKey(table))
	for _, col := range res.Columns {
		if dataset.IndexOf(sourceColumns, col) < 0 || dataset.IndexOf(targetColumns, col) < 0 {
			s.Logger.Debug("Key column missing, using full comparison",
				zap.String("table", table),
				zap.String("column", col))
			return diff.Summary{}, false, nil
		}
	}

	var sourceMap, targetMap map[string]uint64
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if sourceMap, err = sourceFP.KeyFingerprints(gctx, table, res.Columns, sourceColumns); err != nil {
			return fmt.Errorf("source fingerprints: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if targetMap, err = targetFP.KeyFingerprints(gctx, table, res.Columns, sourceColumns); err != nil {
			return fmt.Errorf("target fingerprints: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return diff.Summary{}, false, err
	}

	summary := classify(sourceMap, targetMap)
	summary.Table = table
	return summary, true, nil
}

func classify(source, target map[string]uint64) diff.Summary {
	s := diff.Summary{Path: diff.PathFingerprint}
	matched := 0
	for key, tfp := range target {
		sfp, ok := source[key]
		switch {
		case !ok:
			s.OnlyInTarget++
		case sfp != tfp:
			matched++
			s.Different++
		default:
			matched++
		}
	}
	s.OnlyInSource = len(source) - matched
	s.Total = s.OnlyInSource + s.OnlyInTarget + s.Different
	return s
}

func (s *Scheduler) compareFull(ctx context.Context, table string) (*diff.TableResult, error) {
	var (
		source, target                 *dataset.Dataset
		sourceDeclared, targetDeclared []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if source, err = s.Source.LoadTable(gctx, table); err != nil {
			return fmt.Errorf("load source: %w", err)
		}
		if sourceDeclared, err = s.Source.DeclaredKey(gctx, table); err != nil {
			return fmt.Errorf("source key: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if target, err = s.Target.LoadTable(gctx, table); err != nil {
			return fmt.Errorf("load target: %w", err)
		}
		if targetDeclared, err = s.Target.DeclaredKey(gctx, table); err != nil {
			return fmt.Errorf("target key: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res, err := keys.ResolvePair(source, target, sourceDeclared, targetDeclared, s.customKey(table))
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("Resolved key",
		zap.String("table", table),
		zap.Strings("columns", res.Columns),
		zap.String("tier", string(res.Tier)))

	return diff.BuildResult(table, res.Source, res.Target, res.Columns, string(res.Tier))
}

func (s *Scheduler) customKey(table string) []string {
	if key, ok := s.CustomKeys[table]; ok {
		return key
	}
	for name, key := range s.CustomKeys {
		if strings.EqualFold(name, table) {
			return key
		}
	}
	return nil
}

// lifecycles returns the distinct providers supporting BatchLifecycle.
func (s *Scheduler) lifecycles() []BatchLifecycle {
	var out []BatchLifecycle
	if lc, ok := s.Source.(BatchLifecycle); ok {
		out = append(out, lc)
	}
	if s.Target.ID() == s.Source.ID() {
		return out
	}
	if lc, ok := s.Target.(BatchLifecycle); ok {
		out = append(out, lc)
	}
	return out
}

func (s *Scheduler) begin(ctx context.Context) {
	for _, lc := range s.lifecycles() {
		if err := lc.BeginBatch(ctx); err != nil {
			s.Logger.Warn("Failed to begin batch", zap.Error(err))
		}
	}
}

func (s *Scheduler) end(ctx context.Context) {
	for _, lc := range s.lifecycles() {
		if err := lc.EndBatch(context.WithoutCancel(ctx)); err != nil {
			s.Logger.Warn("Failed to end batch", zap.Error(err))
		}
	}
}

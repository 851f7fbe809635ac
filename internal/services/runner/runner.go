// Package runner drives the batch: enumeration order, per-file retry, and
// statistics accumulation.
package runner

import (
	"context"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pixpress/internal/models"
	"pixpress/internal/services/processor"
	"pixpress/internal/services/scanner"
)

type Runner struct {
	cfg    *models.JobConfig
	proc   *processor.ImageProcessor
	logger *zap.Logger
}

func New(cfg *models.JobConfig, logger *zap.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		proc:   processor.NewImageProcessor(logger),
		logger: logger,
	}
}

// Run enumerates the input root and processes every task. With Workers == 1
// (the default) tasks run strictly in enumeration order; with more workers
// the processing order is non-deterministic, though the summary is not.
//
// A single file's failure never aborts the batch. Cancellation is checked
// between tasks, never mid-file, and the stats collected so far are always
// returned.
func (r *Runner) Run(ctx context.Context) (models.RunStats, error) {
	start := time.Now()
	runID := uuid.NewString()[:8]
	logger := r.logger.With(zap.String("run_id", runID))

	listing, err := scanner.Enumerate(r.cfg.InputDir, r.cfg.Recursive)
	if err != nil {
		return models.RunStats{RunID: runID}, err
	}

	tasks := make([]models.FileTask, 0, len(listing.Paths))
	for _, path := range listing.Paths {
		out, err := scanner.DeriveOutputPath(path, r.cfg.InputDir, r.cfg.OutputDir, r.cfg.Format)
		if err != nil {
			return models.RunStats{RunID: runID}, err
		}
		rel, relErr := filepath.Rel(r.cfg.InputDir, path)
		if relErr != nil {
			rel = path
		}
		tasks = append(tasks, models.FileTask{InputPath: path, OutputPath: out, RelPath: rel})
	}

	logger.Info("starting batch",
		zap.String("input", r.cfg.InputDir),
		zap.String("output", r.cfg.OutputDir),
		zap.Int("files", len(tasks)),
		zap.Int("skipped", listing.Skipped),
		zap.Int("workers", r.cfg.Workers))

	acc := newAccumulator(runID, listing.Skipped)

	if r.cfg.Workers <= 1 {
		err = r.runSequential(ctx, tasks, acc, logger)
	} else {
		err = r.runParallel(ctx, tasks, acc, logger)
	}

	return acc.snapshot(time.Since(start)), err
}

func (r *Runner) runSequential(ctx context.Context, tasks []models.FileTask, acc *accumulator, logger *zap.Logger) error {
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled, flushing stats", zap.Error(err))
			return err
		}
		acc.record(r.runTask(task, logger))
	}
	return nil
}

func (r *Runner) runParallel(ctx context.Context, tasks []models.FileTask, acc *accumulator, logger *zap.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			acc.record(r.runTask(task, logger))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// runTask processes one file with bounded retries. Unsupported-format
// failures are terminal immediately: the bytes will not change on retry.
func (r *Runner) runTask(task models.FileTask, logger *zap.Logger) models.TransformResult {
	var res models.TransformResult
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		if err := scanner.EnsureDir(filepath.Dir(task.OutputPath)); err != nil {
			res = models.TransformResult{Path: task.InputPath, OutputPath: task.OutputPath, Kind: models.ErrIO, Err: err}
		} else {
			res = r.proc.Process(task, r.cfg)
		}
		res.Attempts = attempt
		if res.OK() {
			logger.Info("processed",
				zap.String("file", task.RelPath),
				zap.String("before", humanize.Bytes(uint64(res.OriginalSize))),
				zap.String("after", humanize.Bytes(uint64(res.NewSize))),
				zap.Int("width", res.Width),
				zap.Int("height", res.Height))
			return res
		}
		if res.Kind == models.ErrUnsupported {
			break
		}
		if attempt < r.cfg.MaxAttempts {
			logger.Warn("retrying",
				zap.String("file", task.RelPath),
				zap.Int("attempt", attempt),
				zap.String("kind", string(res.Kind)),
				zap.Error(res.Err))
		}
	}
	logger.Error("failed",
		zap.String("file", task.RelPath),
		zap.Int("attempts", res.Attempts),
		zap.String("kind", string(res.Kind)),
		zap.Error(res.Err))
	return res
}

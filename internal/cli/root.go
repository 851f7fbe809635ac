// Package cli wires flags, environment defaults and the batch runner into
// the pixpress command.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pixpress/internal/config"
	"pixpress/internal/models"
	"pixpress/internal/services/runner"
)

func Execute() {
	defaults := config.Load()
	if err := newRootCmd(defaults).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(defaults *config.Config) *cobra.Command {
	var (
		quality   int
		maxSize   int
		exact     []int
		noAspect  bool
		format    string
		recursive bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "pixpress [flags] <input_dir> <output_dir>",
		Short: "Batch image resizer, converter and compressor",
		Long: `pixpress processes a directory of images in one pass: resizing,
format conversion and recompression, mirroring the directory structure into
the output root. Individual file failures are retried, recorded and never
abort the batch.`,
		Example: `  pixpress ./photos ./out -q 75
  pixpress ./photos ./out -s 1920 -f webp
  pixpress ./photos ./out -e 800,600 --no-aspect
  pixpress ./photos ./out -r -q 85`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := buildJobConfig(jobParams{
				inputDir:    args[0],
				outputDir:   args[1],
				quality:     quality,
				maxSize:     maxSize,
				exact:       exact,
				keepAspect:  !noAspect,
				format:      format,
				recursive:   recursive,
				workers:     workers,
				maxAttempts: defaults.MaxAttempts,
			})
			if err != nil {
				return err
			}

			logger, err := buildLogger(defaults.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stats, runErr := runner.New(job, logger).Run(ctx)
			printSummary(cmd.OutOrStdout(), stats)
			return runErr
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&quality, "quality", "q", defaults.Quality, "quality 1-100: lossy fidelity for JPEG/WebP, compression effort for PNG")
	flags.IntVarP(&maxSize, "max-size", "s", 0, "resize so max(width, height) <= N, aspect ratio preserved, never upscales")
	flags.IntSliceVarP(&exact, "exact", "e", nil, "resize to exact W,H")
	flags.BoolVar(&noAspect, "no-aspect", false, "with --exact, stretch instead of letterboxing")
	flags.StringVarP(&format, "format", "f", "", "convert output to jpg, png or webp (default: keep original format)")
	flags.BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	flags.IntVarP(&workers, "workers", "w", defaults.Workers, "parallel workers; 1 keeps deterministic processing order")
	cmd.MarkFlagsMutuallyExclusive("max-size", "exact")

	return cmd
}

type jobParams struct {
	inputDir    string
	outputDir   string
	quality     int
	maxSize     int
	exact       []int
	keepAspect  bool
	format      string
	recursive   bool
	workers     int
	maxAttempts int
}

func buildJobConfig(p jobParams) (*models.JobConfig, error) {
	format, err := models.ParseFormat(p.format)
	if err != nil {
		return nil, err
	}

	job := &models.JobConfig{
		InputDir:    p.inputDir,
		OutputDir:   p.outputDir,
		Format:      format,
		Quality:     p.quality,
		KeepAspect:  p.keepAspect,
		Recursive:   p.recursive,
		Workers:     p.workers,
		MaxAttempts: p.maxAttempts,
	}

	switch {
	case len(p.exact) > 0:
		if len(p.exact) != 2 {
			return nil, fmt.Errorf("--exact wants two values W,H, got %d", len(p.exact))
		}
		job.ResizeMode = models.ResizeExact
		job.Width, job.Height = p.exact[0], p.exact[1]
	case p.maxSize > 0:
		job.ResizeMode = models.ResizeMaxDim
		job.MaxDimension = p.maxSize
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg.Build()
}

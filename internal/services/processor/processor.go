// Package processor transforms a single image: decode, resize policy,
// re-encode. Multi-frame inputs (animated WebP/GIF) are a known limitation:
// only the primary frame is decoded, the remaining frames are discarded.
package processor

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"go.uber.org/zap"

	"pixpress/internal/models"
	"pixpress/pkg/imgutil"
)

type ImageProcessor struct {
	logger *zap.Logger
}

func NewImageProcessor(logger *zap.Logger) *ImageProcessor {
	return &ImageProcessor{logger: logger}
}

// Process runs one FileTask through decode, resize and encode. All failures
// are returned as a typed TransformResult; Process never panics on bad
// input and never leaves a partial output file behind.
func (p *ImageProcessor) Process(task models.FileTask, cfg *models.JobConfig) models.TransformResult {
	res := models.TransformResult{Path: task.InputPath, OutputPath: task.OutputPath}

	src, err := os.Open(task.InputPath)
	if err != nil {
		return fail(res, models.ErrIO, fmt.Errorf("open %s: %w", task.InputPath, err))
	}
	info, err := src.Stat()
	if err != nil {
		src.Close()
		return fail(res, models.ErrIO, fmt.Errorf("stat %s: %w", task.InputPath, err))
	}
	res.OriginalSize = info.Size()

	img, _, err := image.Decode(src)
	src.Close()
	if err != nil {
		kind := models.ErrDecode
		if errors.Is(err, image.ErrFormat) {
			kind = models.ErrUnsupported
		}
		return fail(res, kind, fmt.Errorf("decode %s: %w", task.InputPath, err))
	}

	img = applyResize(img, cfg)

	formatName, ok := imgutil.EncodeFormatForExt(filepath.Ext(task.OutputPath))
	if !ok {
		return fail(res, models.ErrUnsupported,
			fmt.Errorf("no encoder for extension %q", filepath.Ext(task.OutputPath)))
	}
	if formatName == "jpeg" {
		// JPEG has no alpha channel; flatten translucent sources first.
		img = flatten(img)
	}

	// Encode into a temp file in the destination directory, rename on
	// success. A failed encode must not leave a truncated output behind.
	destDir := filepath.Dir(task.OutputPath)
	tmp, err := os.CreateTemp(destDir, ".pixpress-*")
	if err != nil {
		return fail(res, models.ErrIO, fmt.Errorf("create temp file in %s: %w", destDir, err))
	}
	if err := encodeImage(tmp, img, formatName, cfg.Quality); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fail(res, models.ErrEncode, fmt.Errorf("encode %s: %w", task.OutputPath, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fail(res, models.ErrIO, fmt.Errorf("close %s: %w", tmp.Name(), err))
	}
	if err := os.Rename(tmp.Name(), task.OutputPath); err != nil {
		os.Remove(tmp.Name())
		return fail(res, models.ErrIO, fmt.Errorf("rename to %s: %w", task.OutputPath, err))
	}

	out, err := os.Stat(task.OutputPath)
	if err != nil {
		return fail(res, models.ErrIO, fmt.Errorf("stat %s: %w", task.OutputPath, err))
	}
	res.NewSize = out.Size()

	bounds := img.Bounds()
	res.Width = bounds.Dx()
	res.Height = bounds.Dy()

	p.logger.Debug("transformed",
		zap.String("input", task.InputPath),
		zap.String("output", task.OutputPath),
		zap.Int64("bytes_in", res.OriginalSize),
		zap.Int64("bytes_out", res.NewSize))
	return res
}

func fail(res models.TransformResult, kind models.ErrorKind, err error) models.TransformResult {
	res.Kind = kind
	res.Err = err
	return res
}

package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the requested output format for a run. FormatKeep re-encodes
// every image in its original format.
type Format string

const (
	FormatKeep Format = "keep"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ParseFormat maps a CLI format argument to a Format. The empty string
// means "keep the original format".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return FormatKeep, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("unknown format %q (want jpg, png or webp)", s)
	}
}

// Ext returns the file extension used for output files of this format.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatWebP:
		return ".webp"
	default:
		return ""
	}
}

type ResizeMode int

const (
	ResizeNone ResizeMode = iota
	// ResizeMaxDim scales down so the larger dimension equals MaxDimension.
	// Never upscales.
	ResizeMaxDim
	// ResizeExact forces the output to Width x Height.
	ResizeExact
)

// JobConfig is the immutable configuration of one batch run, resolved once
// from flags and environment defaults before any file is touched.
type JobConfig struct {
	InputDir  string
	OutputDir string

	Format  Format
	Quality int

	ResizeMode   ResizeMode
	MaxDimension int
	Width        int
	Height       int
	KeepAspect   bool

	Recursive   bool
	Workers     int
	MaxAttempts int
}

func (c *JobConfig) Validate() error {
	if c.InputDir == "" || c.OutputDir == "" {
		return fmt.Errorf("input and output directories are required")
	}
	if filepath.Clean(c.InputDir) == filepath.Clean(c.OutputDir) {
		return fmt.Errorf("output directory must differ from input directory")
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality %d out of range [1, 100]", c.Quality)
	}
	switch c.ResizeMode {
	case ResizeNone:
	case ResizeMaxDim:
		if c.MaxDimension < 1 {
			return fmt.Errorf("max dimension must be a positive integer, got %d", c.MaxDimension)
		}
	case ResizeExact:
		if c.Width < 1 || c.Height < 1 {
			return fmt.Errorf("exact dimensions must be positive integers, got %dx%d", c.Width, c.Height)
		}
	default:
		return fmt.Errorf("unknown resize mode %d", c.ResizeMode)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	return nil
}

// FileTask is one unit of work: an input image and the output path derived
// for it. Created during enumeration, consumed exactly once by the runner.
type FileTask struct {
	InputPath  string
	OutputPath string
	// RelPath is the path relative to the input root, used for display.
	RelPath string
}

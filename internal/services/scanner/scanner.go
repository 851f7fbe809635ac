// Package scanner enumerates input images and derives their output paths,
// mirroring the input directory structure under the output root.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pixpress/internal/models"
	"pixpress/pkg/imgutil"
)

// PathError reports a problem with the input root itself. It is fatal to
// the run, unlike per-file errors.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("input path %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Listing is the result of enumerating an input root.
type Listing struct {
	// Paths holds recognized image files, sorted lexicographically so a run
	// processes them in a deterministic order.
	Paths []string
	// Skipped counts regular files seen but not recognized as images.
	Skipped int
}

// Enumerate walks inputRoot and collects recognized image files. In
// non-recursive mode only the top-level directory is considered.
func Enumerate(inputRoot string, recursive bool) (*Listing, error) {
	info, err := os.Stat(inputRoot)
	if err != nil {
		return nil, &PathError{Path: inputRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, &PathError{Path: inputRoot, Err: fmt.Errorf("not a directory")}
	}

	listing := &Listing{}

	if !recursive {
		entries, err := os.ReadDir(inputRoot)
		if err != nil {
			return nil, &PathError{Path: inputRoot, Err: err}
		}
		for _, entry := range entries {
			if entry.IsDir() || !entry.Type().IsRegular() {
				continue
			}
			listing.add(filepath.Join(inputRoot, entry.Name()))
		}
	} else {
		err := filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			listing.add(path)
			return nil
		})
		if err != nil {
			return nil, &PathError{Path: inputRoot, Err: err}
		}
	}

	sort.Strings(listing.Paths)
	return listing, nil
}

func (l *Listing) add(path string) {
	if imgutil.IsSupported(path) {
		l.Paths = append(l.Paths, path)
	} else {
		l.Skipped++
	}
}

// DeriveOutputPath mirrors inputPath's position under inputRoot into
// outputRoot, substituting the extension when a format conversion is
// requested.
func DeriveOutputPath(inputPath, inputRoot, outputRoot string, format models.Format) (string, error) {
	rel, err := filepath.Rel(inputRoot, inputPath)
	if err != nil {
		return "", fmt.Errorf("derive output path for %s: %w", inputPath, err)
	}
	out := filepath.Join(outputRoot, rel)
	if ext := format.Ext(); ext != "" {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + ext
	}
	return out, nil
}

// EnsureDir creates path and any missing parents. Safe to call repeatedly
// and from concurrent workers.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

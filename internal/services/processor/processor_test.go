package processor

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"pixpress/internal/models"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func decodeDims(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode config %s: %v", path, err)
	}
	return cfg.Width, cfg.Height
}

func newTask(t *testing.T, in, out string) models.FileTask {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return models.FileTask{InputPath: in, OutputPath: out, RelPath: filepath.Base(in)}
}

func TestProcessMaxDimensionDownscales(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "b.jpg")
	out := filepath.Join(dir, "out", "b.jpg")
	writeJPEG(t, in, 1000, 1000)

	cfg := &models.JobConfig{Quality: 70, ResizeMode: models.ResizeMaxDim, MaxDimension: 500, KeepAspect: true}
	res := NewImageProcessor(zap.NewNop()).Process(newTask(t, in, out), cfg)
	if !res.OK() {
		t.Fatalf("process: %v", res.Err)
	}
	if w, h := decodeDims(t, out); w != 500 || h != 500 {
		t.Errorf("output %dx%d, want 500x500", w, h)
	}
	if res.OriginalSize <= 0 || res.NewSize <= 0 {
		t.Errorf("sizes not recorded: %d -> %d", res.OriginalSize, res.NewSize)
	}
}

func TestProcessMaxDimensionNeverUpscales(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.png")
	out := filepath.Join(dir, "out", "a.png")
	writePNG(t, in, 500, 300, color.NRGBA{R: 200, A: 255})

	cfg := &models.JobConfig{Quality: 70, ResizeMode: models.ResizeMaxDim, MaxDimension: 500, KeepAspect: true}
	res := NewImageProcessor(zap.NewNop()).Process(newTask(t, in, out), cfg)
	if !res.OK() {
		t.Fatalf("process: %v", res.Err)
	}
	if w, h := decodeDims(t, out); w != 500 || h != 300 {
		t.Errorf("output %dx%d, want unchanged 500x300", w, h)
	}
}

func TestProcessExactStretch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.png")
	out := filepath.Join(dir, "out", "a.png")
	writePNG(t, in, 400, 400, color.NRGBA{G: 200, A: 255})

	cfg := &models.JobConfig{Quality: 85, ResizeMode: models.ResizeExact, Width: 300, Height: 200, KeepAspect: false}
	res := NewImageProcessor(zap.NewNop()).Process(newTask(t, in, out), cfg)
	if !res.OK() {
		t.Fatalf("process: %v", res.Err)
	}
	if w, h := decodeDims(t, out); w != 300 || h != 200 {
		t.Errorf("output %dx%d, want exactly 300x200", w, h)
	}
}

func TestProcessExactLetterbox(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.png")
	out := filepath.Join(dir, "out", "a.png")
	writePNG(t, in, 400, 400, color.NRGBA{B: 200, A: 255})

	cfg := &models.JobConfig{Quality: 85, ResizeMode: models.ResizeExact, Width: 300, Height: 200, KeepAspect: true}
	res := NewImageProcessor(zap.NewNop()).Process(newTask(t, in, out), cfg)
	if !res.OK() {
		t.Fatalf("process: %v", res.Err)
	}
	// Letterboxed output still has the exact canvas size.
	if w, h := decodeDims(t, out); w != 300 || h != 200 {
		t.Errorf("output %dx%d, want canvas 300x200", w, h)
	}
}

func TestProcessLetterboxFillMatchesBars(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.png")
	out := filepath.Join(dir, "out", "a.png")
	// Fully transparent source: after letterboxing, the interior must carry
	// the same fill as the bars.
	writePNG(t, in, 100, 100, color.NRGBA{})

	cfg := &models.JobConfig{Quality: 85, ResizeMode: models.ResizeExact, Width: 300, Height: 200, KeepAspect: true}
	res := NewImageProcessor(zap.NewNop()).Process(newTask(t, in, out), cfg)
	if !res.OK() {
		t.Fatalf("process: %v", res.Err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open %s: %v", out, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", out, err)
	}

	// The 100x100 source is centered, so x=10 is bar and x=150 is interior.
	br, bg, bb, ba := img.At(10, 100).RGBA()
	ir, ig, ib, ia := img.At(150, 100).RGBA()
	if br != ir || bg != ig || bb != ib || ba != ia {
		t.Errorf("bar (%d,%d,%d,%d) and interior (%d,%d,%d,%d) fills differ",
			br, bg, bb, ba, ir, ig, ib, ia)
	}
}

func TestProcessTranslucentPNGToJPEG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.png")
	out := filepath.Join(dir, "out", "a.jpg")
	writePNG(t, in, 100, 100, color.NRGBA{R: 255, A: 128})

	cfg := &models.JobConfig{Quality: 85, KeepAspect: true}
	res := NewImageProcessor(zap.NewNop()).Process(newTask(t, in, out), cfg)
	if !res.OK() {
		t.Fatalf("process: %v", res.Err)
	}
	if w, h := decodeDims(t, out); w != 100 || h != 100 {
		t.Errorf("output %dx%d, want 100x100", w, h)
	}
}

func TestProcessGarbageInputIsUnsupported(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "x.jpg")
	out := filepath.Join(dir, "out", "x.jpg")
	if err := os.WriteFile(in, []byte("this is not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &models.JobConfig{Quality: 85, KeepAspect: true}
	res := NewImageProcessor(zap.NewNop()).Process(newTask(t, in, out), cfg)
	if res.OK() {
		t.Fatal("expected failure for garbage input")
	}
	if res.Kind != models.ErrUnsupported {
		t.Errorf("kind = %s, want %s", res.Kind, models.ErrUnsupported)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("no output file should exist, stat err = %v", err)
	}
}

func TestProcessTruncatedPNGIsDecodeError(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "full.png")
	writePNG(t, full, 50, 50, color.NRGBA{R: 10, A: 255})
	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatal(err)
	}

	in := filepath.Join(dir, "trunc.png")
	out := filepath.Join(dir, "out", "trunc.png")
	if err := os.WriteFile(in, data[:12], 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &models.JobConfig{Quality: 85, KeepAspect: true}
	res := NewImageProcessor(zap.NewNop()).Process(newTask(t, in, out), cfg)
	if res.OK() {
		t.Fatal("expected failure for truncated input")
	}
	if res.Kind != models.ErrDecode {
		t.Errorf("kind = %s, want %s", res.Kind, models.ErrDecode)
	}
}

func TestProcessMissingInputIsIOError(t *testing.T) {
	dir := t.TempDir()
	cfg := &models.JobConfig{Quality: 85, KeepAspect: true}
	task := newTask(t, filepath.Join(dir, "missing.png"), filepath.Join(dir, "out", "missing.png"))
	res := NewImageProcessor(zap.NewNop()).Process(task, cfg)
	if res.OK() || res.Kind != models.ErrIO {
		t.Errorf("kind = %s, err = %v, want %s", res.Kind, res.Err, models.ErrIO)
	}
}

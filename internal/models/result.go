package models

// ErrorKind classifies a per-file failure. Per-file errors never abort the
// batch; they are recorded and surfaced in the final summary.
type ErrorKind string

const (
	ErrDecode      ErrorKind = "decode"
	ErrUnsupported ErrorKind = "unsupported"
	ErrEncode      ErrorKind = "encode"
	ErrIO          ErrorKind = "io"
)

// TransformResult is the outcome of processing a single FileTask.
type TransformResult struct {
	Path       string
	OutputPath string

	// Err is nil on success. Kind is set whenever Err is non-nil.
	Err  error
	Kind ErrorKind

	OriginalSize int64
	NewSize      int64
	Width        int
	Height       int

	// Attempts is the number of attempts consumed, including the final one.
	Attempts int
}

func (r TransformResult) OK() bool { return r.Err == nil }

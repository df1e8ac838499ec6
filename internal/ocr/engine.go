package ocr

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Result carries recognized text and the wall-clock time the engine took.
type Result struct {
	Text    string
	Elapsed time.Duration
}

// Engine converts a file-backed raster image into text. Implementations must
// attempt the call exactly once; retries are the caller's business (there are
// none).
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (Result, error)
}

// ErrTimeout is returned when the engine call exceeds its deadline.
var ErrTimeout = errors.New("recognition timed out")

// RecognitionError means the engine produced no usable text.
type RecognitionError struct {
	Stderr string
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognition failed: %s", e.Stderr)
}

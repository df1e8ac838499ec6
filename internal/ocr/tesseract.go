package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/textextract/internal/config"
	"github.com/local/textextract/internal/metrics"
)

// Tesseract invokes the tesseract binary on a file-backed image.
type Tesseract struct {
	cfg    config.EngineConfig
	runner Runner
}

// NewTesseract builds the process-backed engine. Zero-value config fields fall
// back to tesseract defaults.
func NewTesseract(cfg config.EngineConfig) *Tesseract {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Tesseract{cfg: cfg, runner: execRunner{}}
}

// WithRunner swaps the command runner; used by tests.
func (t *Tesseract) WithRunner(r Runner) *Tesseract {
	t.runner = r
	return t
}

// Recognize runs tesseract on imagePath and returns trimmed stdout as text.
// A non-zero exit code still counts as success as long as any text came back;
// the engine emits warnings on stderr for plenty of benign conditions.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (Result, error) {
	args := []string{imagePath, "stdout"}
	if t.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", t.cfg.OEM))
	}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", t.cfg.PSM))
	}
	args = append(args, "-l", t.cfg.Language)

	start := time.Now()
	stdout, stderr, err := t.runner.Run(ctx, t.cfg.Binary, args...)
	elapsed := time.Since(start)

	text := strings.TrimSpace(string(stdout))

	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		metrics.ObserveEngine("timeout", elapsed)
		return Result{Elapsed: elapsed}, fmt.Errorf("%w after %s", ErrTimeout, elapsed.Round(time.Millisecond))
	}

	if err != nil && text == "" {
		metrics.ObserveEngine("failure", elapsed)
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = err.Error()
		}
		return Result{Elapsed: elapsed}, &RecognitionError{Stderr: msg}
	}

	if err != nil {
		// Partial success: exit code non-zero but output present. Keep the
		// stderr visible so real failures are not masked entirely.
		log.Debug().Err(err).Str("stderr", truncate(strings.TrimSpace(string(stderr)), 2<<10)).
			Msg("engine exited non-zero but produced text")
	}

	metrics.ObserveEngine("success", elapsed)
	return Result{Text: text, Elapsed: elapsed}, nil
}

package statuscheck

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/local/textextract/internal/document"
)

// Status represents the readiness of a subsystem.
type Status struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Summary bundles all subsystem statuses.
type Summary struct {
	Engine     Status `json:"engine"`
	PDFToolkit Status `json:"pdf_toolkit"`
	TempDir    Status `json:"temp_dir"`
}

// Options configures the Checker.
type Options struct {
	EngineBinary string
	Timeout      time.Duration
}

// Checker aggregates health checks for the external pieces an invocation
// depends on: the OCR binary, the PDF toolkit and temp storage.
type Checker struct {
	engineBinary string
	timeout      time.Duration
}

// New creates a new Checker with the provided options.
func New(opts Options) *Checker {
	binary := opts.EngineBinary
	if binary == "" {
		binary = "tesseract"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{engineBinary: binary, timeout: timeout}
}

// Check runs all subsystem checks.
func (c *Checker) Check(ctx context.Context) Summary {
	return Summary{
		Engine:     c.checkEngine(ctx),
		PDFToolkit: c.checkPDFToolkit(),
		TempDir:    c.checkTempDir(),
	}
}

func (c *Checker) checkEngine(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, c.engineBinary, "--version").CombinedOutput()
	if err != nil {
		return Status{OK: false, Message: fmt.Sprintf("%s not available: %v", c.engineBinary, err)}
	}
	version := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0]
	return Status{OK: true, Message: version}
}

// checkPDFToolkit round-trips a generated one-page PDF through pdfcpu.
func (c *Checker) checkPDFToolkit() Status {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("statuscheck-%s.pdf", uuid.NewString()))
	if err := os.WriteFile(path, samplePDF(), 0o600); err != nil {
		return Status{OK: false, Message: fmt.Sprintf("write probe pdf: %v", err)}
	}
	defer os.Remove(path)

	n, err := document.PageCountFile(path)
	if err != nil {
		return Status{OK: false, Message: fmt.Sprintf("page count probe failed: %v", err)}
	}
	if n != 1 {
		return Status{OK: false, Message: fmt.Sprintf("page count probe returned %d pages", n)}
	}
	return Status{OK: true, Message: "ok"}
}

func (c *Checker) checkTempDir() Status {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("statuscheck-%s", uuid.NewString()))
	if err := os.WriteFile(path, []byte("probe"), 0o600); err != nil {
		return Status{OK: false, Message: fmt.Sprintf("temp dir not writable: %v", err)}
	}
	_ = os.Remove(path)
	return Status{OK: true, Message: os.TempDir()}
}

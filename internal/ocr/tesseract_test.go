package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/local/textextract/internal/config"
)

type fakeRunner struct {
	stdout string
	stderr string
	err    error
	wait   time.Duration

	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.gotName = name
	f.gotArgs = args
	if f.wait > 0 {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(f.wait):
		}
	}
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func newEngine(r Runner) *Tesseract {
	return NewTesseract(config.EngineConfig{OEM: 1, PSM: 3}).WithRunner(r)
}

func TestRecognizeTrimsOutput(t *testing.T) {
	eng := newEngine(&fakeRunner{stdout: "  Hello World  \n"})

	res, err := eng.Recognize(context.Background(), "/tmp/test.png")
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if res.Text != "Hello World" {
		t.Fatalf("text = %q, want trimmed output", res.Text)
	}
}

func TestRecognizeCommandLine(t *testing.T) {
	runner := &fakeRunner{stdout: "x"}
	eng := newEngine(runner)

	if _, err := eng.Recognize(context.Background(), "/tmp/in.png"); err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if runner.gotName != "tesseract" {
		t.Fatalf("binary = %q, want tesseract", runner.gotName)
	}
	want := []string{"/tmp/in.png", "stdout", "--oem", "1", "--psm", "3", "-l", "eng"}
	if strings.Join(runner.gotArgs, " ") != strings.Join(want, " ") {
		t.Fatalf("args = %v, want %v", runner.gotArgs, want)
	}
}

func TestRecognizeFailureWithEmptyOutput(t *testing.T) {
	eng := newEngine(&fakeRunner{stderr: "Error: bad image", err: errors.New("exit status 1")})

	_, err := eng.Recognize(context.Background(), "/tmp/bad.png")

	var recErr *RecognitionError
	if !errors.As(err, &recErr) {
		t.Fatalf("err = %v, want *RecognitionError", err)
	}
	if !strings.Contains(recErr.Stderr, "bad image") {
		t.Fatalf("stderr = %q, want diagnostic preserved", recErr.Stderr)
	}
}

func TestRecognizeNonZeroExitWithOutputSucceeds(t *testing.T) {
	// Warnings on stderr with a non-zero exit still count as success as long
	// as text came back.
	eng := newEngine(&fakeRunner{stdout: "partial text", stderr: "warning", err: errors.New("exit status 1")})

	res, err := eng.Recognize(context.Background(), "/tmp/warn.png")
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if res.Text != "partial text" {
		t.Fatalf("text = %q", res.Text)
	}
}

func TestRecognizeTimeout(t *testing.T) {
	eng := newEngine(&fakeRunner{wait: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := eng.Recognize(ctx, "/tmp/slow.png")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestRecognizeReportsElapsed(t *testing.T) {
	eng := newEngine(&fakeRunner{stdout: "x", wait: 20 * time.Millisecond})

	res, err := eng.Recognize(context.Background(), "/tmp/test.png")
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if res.Elapsed < 20*time.Millisecond {
		t.Fatalf("elapsed = %v, want at least the runner wait", res.Elapsed)
	}
}

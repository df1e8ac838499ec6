package extract

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/local/textextract/internal/config"
	"github.com/local/textextract/internal/document"
	"github.com/local/textextract/internal/ocr"
)

// stubDoc is an in-memory paged document: one entry in texts per page.
type stubDoc struct {
	texts    []string
	textErr  error
	imageErr error
	closed   bool
}

func (d *stubDoc) NumPage() int { return len(d.texts) }

func (d *stubDoc) PageText(i int) (string, error) {
	if d.textErr != nil {
		return "", d.textErr
	}
	return d.texts[i], nil
}

func (d *stubDoc) PageImage(i int, dpi float64) (image.Image, error) {
	if d.imageErr != nil {
		return nil, d.imageErr
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (d *stubDoc) Close() error {
	d.closed = true
	return nil
}

type stubOpener struct {
	doc document.Document
	err error
}

func (o stubOpener) Open(path string) (document.Document, error) {
	if o.err != nil {
		return nil, o.err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("document path missing: %w", err)
	}
	return o.doc, nil
}

// stubEngine returns canned text per call and can fail at a given call index.
type stubEngine struct {
	text    string
	perCall []string
	failAt  int // 1-based call index, 0 = never
	err     error
	calls   int
	paths   []string
	onCall  func(path string) // observed mid-call, e.g. to assert temp file exists
}

func (e *stubEngine) Recognize(ctx context.Context, imagePath string) (ocr.Result, error) {
	e.calls++
	e.paths = append(e.paths, imagePath)
	if e.onCall != nil {
		e.onCall(imagePath)
	}
	if e.failAt > 0 && e.calls == e.failAt {
		err := e.err
		if err == nil {
			err = errors.New("engine failed")
		}
		return ocr.Result{}, err
	}
	if e.perCall != nil {
		return ocr.Result{Text: e.perCall[e.calls-1]}, nil
	}
	return ocr.Result{Text: e.text}, nil
}

func newTestService(opener document.Opener, engine ocr.Engine) *Service {
	cfg := config.FromEnv()
	return New(opener, engine, cfg)
}

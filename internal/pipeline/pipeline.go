package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/textextract/internal/document"
	"github.com/local/textextract/internal/filetype"
	"github.com/local/textextract/internal/metrics"
	"github.com/local/textextract/internal/ocr"
	"github.com/local/textextract/internal/render"
	"github.com/local/textextract/internal/tempfile"
	"github.com/local/textextract/internal/textstats"
)

// PageRecord is the outcome of one page's render+recognize pass.
type PageRecord struct {
	Page       int // 1-based
	Text       string
	WordCount  int
	CharCount  int
	RenderTime time.Duration
	OCRTime    time.Duration
	TotalTime  time.Duration // render start through temp cleanup
	ImageBytes int
}

// Result aggregates all pages of one run, in document order.
type Result struct {
	Pages       []PageRecord
	TotalRender time.Duration
	TotalOCR    time.Duration
}

// Pipeline drives the per-page render → persist → recognize → cleanup → record
// sequence. Pages are processed strictly in order, one temp image alive at a
// time.
type Pipeline struct {
	Engine      ocr.Engine
	DPI         float64
	PageTimeout time.Duration
}

// Run processes every page of doc. Any page failure aborts the whole run; the
// returned error names the offending 1-based page.
func (p *Pipeline) Run(ctx context.Context, doc document.Document) (*Result, error) {
	res := &Result{Pages: make([]PageRecord, 0, doc.NumPage())}

	for i := 0; i < doc.NumPage(); i++ {
		rec, err := p.runPage(ctx, doc, i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		res.Pages = append(res.Pages, rec)
		res.TotalRender += rec.RenderTime
		res.TotalOCR += rec.OCRTime
		metrics.AddPages("ocr", 1)
	}

	return res, nil
}

func (p *Pipeline) runPage(ctx context.Context, doc document.Document, i int) (PageRecord, error) {
	pageStart := time.Now()

	png, renderTime, err := render.PagePNG(doc, i, p.DPI)
	if err != nil {
		return PageRecord{}, err
	}

	// The engine needs file-backed input; the temp image must not outlive
	// this page's processing window.
	imgPath, cleanup, err := tempfile.Write(png, filetype.DefaultImageSuffix)
	if err != nil {
		return PageRecord{}, err
	}

	octx := ctx
	if p.PageTimeout > 0 {
		var cancel context.CancelFunc
		octx, cancel = context.WithTimeout(ctx, p.PageTimeout)
		defer cancel()
	}
	ocrRes, err := p.Engine.Recognize(octx, imgPath)
	cleanup()
	if err != nil {
		return PageRecord{}, err
	}

	rec := PageRecord{
		Page:       i + 1,
		Text:       ocrRes.Text,
		WordCount:  textstats.Words(ocrRes.Text),
		CharCount:  textstats.Chars(ocrRes.Text),
		RenderTime: renderTime,
		OCRTime:    ocrRes.Elapsed,
		TotalTime:  time.Since(pageStart),
		ImageBytes: len(png),
	}

	log.Debug().
		Int("page", rec.Page).
		Int("words", rec.WordCount).
		Int("image_bytes", rec.ImageBytes).
		Int64("render_ms", rec.RenderTime.Milliseconds()).
		Int64("ocr_ms", rec.OCRTime.Milliseconds()).
		Msg("page pipeline complete")

	return rec, nil
}

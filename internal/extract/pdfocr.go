package extract

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/textextract/internal/metrics"
	"github.com/local/textextract/internal/pipeline"
	"github.com/local/textextract/internal/tempfile"
)

type ocrPage struct {
	Page           int     `json:"page"`
	Text           string  `json:"text"`
	WordCount      int     `json:"word_count"`
	CharCount      int     `json:"char_count"`
	ImageExtractMS float64 `json:"image_extract_ms"`
	OCRMS          float64 `json:"ocr_ms"`
	PageTotalMS    float64 `json:"page_total_ms"`
	ImageSizeBytes int     `json:"image_size_bytes"`
}

type ocrTiming struct {
	PipelineMS          float64 `json:"pipeline_ms"`
	TotalImageExtractMS float64 `json:"total_image_extract_ms"`
	TotalOCRMS          float64 `json:"total_ocr_ms"`
	AvgExtractPerPageMS float64 `json:"avg_extract_per_page_ms"`
	AvgOCRPerPageMS     float64 `json:"avg_ocr_per_page_ms"`
}

type ocrResponse struct {
	Text           string    `json:"text"`
	Filename       string    `json:"filename"`
	PageCount      int       `json:"page_count"`
	TotalWordCount int       `json:"total_word_count"`
	TotalCharCount int       `json:"total_char_count"`
	Timing         ocrTiming `json:"timing"`
	PDFSizeBytes   int       `json:"pdf_size_bytes"`
	DPI            int       `json:"dpi"`
	Pages          []ocrPage `json:"pages"`
}

// RenderAndRecognize rasterizes every page and runs OCR over each render.
// The whole invocation is all-or-nothing: a failed page yields a single
// error naming it, never a partial page list.
func (s *Service) RenderAndRecognize(ctx context.Context, payload []byte) any {
	start := time.Now()

	raw, err := Unwrap(payload)
	if err != nil {
		return errResp(err.Error())
	}
	var req pdfRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return errResp("invalid request: " + err.Error())
	}
	if req.Filename == "" {
		req.Filename = "unknown.pdf"
	}
	dpi := req.DPI
	if dpi <= 0 {
		dpi = s.defaultDPI
	}

	if req.PDF == "" && req.PDFURL == "" {
		metrics.ObserveInvocation("pdf-ocr", "validation_error", time.Since(start))
		return errResp("No PDF data provided")
	}

	data, err := s.resolvePDF(ctx, req)
	if err != nil {
		metrics.ObserveInvocation("pdf-ocr", "decode_error", time.Since(start))
		return errResp(err.Error())
	}

	pdfPath, cleanup, err := tempfile.Write(data, ".pdf")
	if err != nil {
		metrics.ObserveInvocation("pdf-ocr", "error", time.Since(start))
		return errResp(err.Error())
	}
	defer cleanup()

	doc, err := s.opener.Open(pdfPath)
	if err != nil {
		metrics.ObserveInvocation("pdf-ocr", "decode_error", time.Since(start))
		return errResp(err.Error())
	}
	defer doc.Close()

	pageCount := doc.NumPage()

	pipe := &pipeline.Pipeline{
		Engine:      s.engine,
		DPI:         float64(dpi),
		PageTimeout: s.engineCfg.PageTimeout,
	}
	res, err := pipe.Run(ctx, doc)
	if err != nil {
		log.Warn().Err(err).Str("filename", req.Filename).Msg("render+recognize failed")
		metrics.ObserveInvocation("pdf-ocr", "engine_error", time.Since(start))
		return errResp(err.Error())
	}

	pages := make([]ocrPage, 0, pageCount)
	texts := make([]string, 0, pageCount)
	totalWords, totalChars := 0, 0
	for _, rec := range res.Pages {
		totalWords += rec.WordCount
		totalChars += rec.CharCount
		texts = append(texts, rec.Text)
		pages = append(pages, ocrPage{
			Page:           rec.Page,
			Text:           rec.Text,
			WordCount:      rec.WordCount,
			CharCount:      rec.CharCount,
			ImageExtractMS: ms(rec.RenderTime),
			OCRMS:          ms(rec.OCRTime),
			PageTotalMS:    ms(rec.TotalTime),
			ImageSizeBytes: rec.ImageBytes,
		})
	}

	// Averaging guard only: a zero-page document still reports page_count 0.
	avgDiv := pageCount
	if avgDiv == 0 {
		avgDiv = 1
	}
	totalExtract := ms(res.TotalRender)
	totalOCR := ms(res.TotalOCR)

	metrics.ObserveInvocation("pdf-ocr", "success", time.Since(start))
	log.Info().
		Str("filename", req.Filename).
		Int("pages", pageCount).
		Int("dpi", dpi).
		Int("words", totalWords).
		Int64("pipeline_ms", time.Since(start).Milliseconds()).
		Msg("render+recognize complete")

	return ocrResponse{
		Text:           strings.Join(texts, "\n\n"),
		Filename:       req.Filename,
		PageCount:      pageCount,
		TotalWordCount: totalWords,
		TotalCharCount: totalChars,
		Timing: ocrTiming{
			PipelineMS:          ms(time.Since(start)),
			TotalImageExtractMS: totalExtract,
			TotalOCRMS:          totalOCR,
			AvgExtractPerPageMS: round2(totalExtract / float64(avgDiv)),
			AvgOCRPerPageMS:     round2(totalOCR / float64(avgDiv)),
		},
		PDFSizeBytes: len(data),
		DPI:          dpi,
		Pages:        pages,
	}
}

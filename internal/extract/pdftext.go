package extract

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/textextract/internal/metrics"
	"github.com/local/textextract/internal/tempfile"
	"github.com/local/textextract/internal/textstats"
)

type pdfRequest struct {
	PDF      string `json:"pdf"`
	PDFURL   string `json:"pdf_url"`
	Filename string `json:"filename"`
	DPI      int    `json:"dpi"`
}

// resolvePDF returns the raw document bytes: inline base64 wins, otherwise
// the pdf_url reference (s3://, http(s)://, filesystem) is fetched.
func (s *Service) resolvePDF(ctx context.Context, req pdfRequest) ([]byte, error) {
	if req.PDF != "" {
		return decodePayload(req.PDF)
	}
	return s.fetchBytes(ctx, req.PDFURL)
}

type textPage struct {
	Page             int     `json:"page"`
	Text             string  `json:"text"`
	WordCount        int     `json:"word_count"`
	CharCount        int     `json:"char_count"`
	ExtractionTimeMS float64 `json:"extraction_time_ms"`
}

type textResponse struct {
	Text             string     `json:"text"`
	Filename         string     `json:"filename"`
	PageCount        int        `json:"page_count"`
	TotalWordCount   int        `json:"total_word_count"`
	TotalCharCount   int        `json:"total_char_count"`
	ProcessingTimeMS float64    `json:"processing_time_ms"`
	FileSizeBytes    int        `json:"file_size_bytes"`
	Pages            []textPage `json:"pages"`
}

// ExtractText pulls the embedded text layer of every page, in order. The
// recognition engine is never involved; this is the fast path for documents
// whose text is already machine-readable.
func (s *Service) ExtractText(ctx context.Context, payload []byte) any {
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

	if req.PDF == "" && req.PDFURL == "" {
		metrics.ObserveInvocation("pdf-text", "validation_error", time.Since(start))
		return errResp("No PDF data provided")
	}

	data, err := s.resolvePDF(ctx, req)
	if err != nil {
		metrics.ObserveInvocation("pdf-text", "decode_error", time.Since(start))
		return errResp(err.Error())
	}

	pdfPath, cleanup, err := tempfile.Write(data, ".pdf")
	if err != nil {
		metrics.ObserveInvocation("pdf-text", "error", time.Since(start))
		return errResp(err.Error())
	}
	defer cleanup()

	doc, err := s.opener.Open(pdfPath)
	if err != nil {
		metrics.ObserveInvocation("pdf-text", "decode_error", time.Since(start))
		return errResp(err.Error())
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	pages := make([]textPage, 0, pageCount)
	texts := make([]string, 0, pageCount)
	totalWords, totalChars := 0, 0

	for i := 0; i < pageCount; i++ {
		pageStart := time.Now()
		text, err := doc.PageText(i)
		if err != nil {
			metrics.ObserveInvocation("pdf-text", "error", time.Since(start))
			return errResp(err.Error())
		}
		text = strings.TrimSpace(text)

		words := textstats.Words(text)
		chars := textstats.Chars(text)
		totalWords += words
		totalChars += chars
		texts = append(texts, text)
		pages = append(pages, textPage{
			Page:             i + 1,
			Text:             text,
			WordCount:        words,
			CharCount:        chars,
			ExtractionTimeMS: ms(time.Since(pageStart)),
		})
		metrics.AddPages("text", 1)
	}

	metrics.ObserveInvocation("pdf-text", "success", time.Since(start))
	log.Info().
		Str("filename", req.Filename).
		Int("pages", pageCount).
		Int("words", totalWords).
		Int64("total_ms", time.Since(start).Milliseconds()).
		Msg("text layer extracted")

	return textResponse{
		Text:             strings.Join(texts, "\n\n"),
		Filename:         req.Filename,
		PageCount:        pageCount,
		TotalWordCount:   totalWords,
		TotalCharCount:   totalChars,
		ProcessingTimeMS: ms(time.Since(start)),
		FileSizeBytes:    len(data),
		Pages:            pages,
	}
}

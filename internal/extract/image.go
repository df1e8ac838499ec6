package extract

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/textextract/internal/filetype"
	"github.com/local/textextract/internal/metrics"
	"github.com/local/textextract/internal/tempfile"
	"github.com/local/textextract/internal/textstats"
)

type imageRequest struct {
	Image    string `json:"image"`
	Filename string `json:"filename"`
}

type imageResponse struct {
	Text             string  `json:"text"`
	ProcessingTimeMS float64 `json:"processing_time_ms"`
	Filename         string  `json:"filename"`
	TextLength       int     `json:"text_length"`
	WordCount        int     `json:"word_count"`
}

// RecognizeImage runs OCR over a single base64-encoded raster image.
func (s *Service) RecognizeImage(ctx context.Context, payload []byte) any {
	start := time.Now()

	raw, err := Unwrap(payload)
	if err != nil {
		return errResp(err.Error())
	}
	var req imageRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return errResp("invalid request: " + err.Error())
	}
	if req.Filename == "" {
		req.Filename = "unknown"
	}

	if req.Image == "" {
		metrics.ObserveInvocation("image-ocr", "validation_error", time.Since(start))
		return errResp("No image data provided")
	}

	data, err := decodePayload(req.Image)
	if err != nil {
		metrics.ObserveInvocation("image-ocr", "decode_error", time.Since(start))
		return errResp(err.Error())
	}

	imgPath, cleanup, err := tempfile.Write(data, filetype.Suffix(req.Filename, data))
	if err != nil {
		metrics.ObserveInvocation("image-ocr", "error", time.Since(start))
		return errResp(err.Error())
	}

	octx, cancel := context.WithTimeout(ctx, s.engineCfg.ImageTimeout)
	res, ocrErr := s.engine.Recognize(octx, imgPath)
	cancel()
	cleanup()

	if ocrErr != nil {
		log.Warn().Err(ocrErr).Str("filename", req.Filename).Msg("image recognition failed")
		metrics.ObserveInvocation("image-ocr", "engine_error", time.Since(start))
		return errRespTimed(ocrErr.Error(), res.Elapsed)
	}

	metrics.ObserveInvocation("image-ocr", "success", time.Since(start))
	log.Info().
		Str("filename", req.Filename).
		Int("text_length", textstats.Chars(res.Text)).
		Int64("ocr_ms", res.Elapsed.Milliseconds()).
		Msg("image recognized")

	return imageResponse{
		Text:             res.Text,
		ProcessingTimeMS: ms(res.Elapsed),
		Filename:         req.Filename,
		TextLength:       textstats.Chars(res.Text),
		WordCount:        textstats.Words(res.Text),
	}
}

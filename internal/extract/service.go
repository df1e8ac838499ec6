package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/local/textextract/internal/config"
	"github.com/local/textextract/internal/document"
	"github.com/local/textextract/internal/fetch"
	"github.com/local/textextract/internal/ocr"
)

// Service implements the three extraction variants. Every invocation is
// independent: no state survives a call and no temp resource outlives it.
type Service struct {
	opener     document.Opener
	engine     ocr.Engine
	engineCfg  config.EngineConfig
	defaultDPI int

	// swapped in tests
	fetchBytes func(ctx context.Context, ref string) ([]byte, error)
}

// New wires the service with its document opener and recognition engine.
func New(opener document.Opener, engine ocr.Engine, cfg config.Config) *Service {
	dpi := cfg.Render.DefaultDPI
	if dpi <= 0 {
		dpi = 300
	}
	return &Service{
		opener:     opener,
		engine:     engine,
		engineCfg:  cfg.Engine,
		defaultDPI: dpi,
		fetchBytes: fetch.Bytes,
	}
}

// errorResponse is the uniform failure shape. Timing is only present where a
// variant accumulated some before failing.
type errorResponse struct {
	Error            string   `json:"error"`
	ProcessingTimeMS *float64 `json:"processing_time_ms,omitempty"`
}

func errResp(msg string) errorResponse { return errorResponse{Error: msg} }

func errRespTimed(msg string, d time.Duration) errorResponse {
	v := ms(d)
	return errorResponse{Error: msg, ProcessingTimeMS: &v}
}

// decodePayload strips an optional data-URI prefix (everything through the
// first comma) and base64-decodes the rest.
func decodePayload(s string) ([]byte, error) {
	if i := strings.Index(s, ","); i >= 0 {
		s = s[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return data, nil
}

// ms converts a duration to milliseconds rounded to two decimals, the wire
// format's timing unit.
func ms(d time.Duration) float64 {
	return round2(float64(d.Nanoseconds()) / 1e6)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

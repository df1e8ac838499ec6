package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/textextract/internal/document"
)

// ErrRenderFailed marks a page that could not be rasterized.
var ErrRenderFailed = errors.New("render failed")

// PagePNG renders one page (0-based) of an open document to PNG bytes at the
// given DPI and reports the elapsed render time.
func PagePNG(doc document.Document, page int, dpi float64) ([]byte, time.Duration, error) {
	start := time.Now()

	img, err := doc.PageImage(page, dpi)
	if err != nil {
		return nil, time.Since(start), fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, time.Since(start), fmt.Errorf("%w: encode: %v", ErrRenderFailed, err)
	}

	elapsed := time.Since(start)
	bounds := img.Bounds()
	log.Debug().
		Int("page", page+1).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Int("png_size", buf.Len()).
		Float64("dpi", dpi).
		Msg("rendered page to PNG")

	return buf.Bytes(), elapsed, nil
}

package filetype

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultImageSuffix is used when neither the filename nor the payload gives
// a usable extension.
const DefaultImageSuffix = ".png"

// Suffix infers a file suffix for a decoded payload. The original filename
// wins; otherwise the payload's magic bytes are sniffed.
func Suffix(filename string, data []byte) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	if len(data) > 0 {
		if ext := mimetype.Detect(data).Extension(); ext != "" {
			return ext
		}
	}
	return DefaultImageSuffix
}

package document

import "image"

// Document abstracts an open paged document.
type Document interface {
	// NumPage returns the total page count.
	NumPage() int
	// PageText returns the embedded text layer of page i (0-based).
	PageText(i int) (string, error)
	// PageImage renders page i (0-based) at the given DPI.
	PageImage(i int, dpi float64) (image.Image, error)
	Close() error
}

// Opener opens a paged document from a filesystem path.
type Opener interface {
	Open(path string) (Document, error)
}

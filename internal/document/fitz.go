package document

import (
	"image"

	fitz "github.com/gen2brain/go-fitz"
)

// FitzOpener implements Opener using github.com/gen2brain/go-fitz.
type FitzOpener struct{}

func (FitzOpener) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return fitzDoc{doc}, nil
}

type fitzDoc struct{ *fitz.Document }

func (d fitzDoc) PageText(i int) (string, error) {
	return d.Document.Text(i)
}

func (d fitzDoc) PageImage(i int, dpi float64) (image.Image, error) {
	// go-fitz applies the dpi/72 scale matrix internally
	return d.Document.ImageDPI(i, dpi)
}

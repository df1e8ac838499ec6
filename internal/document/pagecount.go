package document

import "github.com/pdfcpu/pdfcpu/pkg/api"

// PageCountFile reports the page count of a PDF via pdfcpu, independently of
// the MuPDF-backed opener. Used as a cross-check and by health probes.
func PageCountFile(path string) (int, error) {
	return api.PageCountFile(path)
}

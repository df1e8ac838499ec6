package statuscheck

import (
	"bytes"
	"fmt"
	"testing"
)

func TestSamplePDFStructure(t *testing.T) {
	pdf := samplePDF()

	if !bytes.HasPrefix(pdf, []byte("%PDF-1.4\n")) {
		t.Fatalf("missing PDF header: %q", pdf[:16])
	}
	if !bytes.HasSuffix(pdf, []byte("%%EOF\n")) {
		t.Fatal("missing EOF marker")
	}
	for _, want := range []string{"/Type /Catalog", "/Type /Pages", "/Type /Page", "/Count 1", "xref", "trailer"} {
		if !bytes.Contains(pdf, []byte(want)) {
			t.Fatalf("sample PDF missing %q", want)
		}
	}
}

func TestSamplePDFXrefOffsets(t *testing.T) {
	pdf := samplePDF()

	// Each xref entry must point at the start of its object.
	for i := 1; i <= 3; i++ {
		marker := []byte(fmt.Sprintf("%d 0 obj\n", i))
		off := bytes.Index(pdf, marker)
		if off < 0 {
			t.Fatalf("object %d not found", i)
		}
		entry := []byte(fmt.Sprintf("%010d 00000 n \n", off))
		if !bytes.Contains(pdf, entry) {
			t.Fatalf("xref entry for object %d at offset %d not found", i, off)
		}
	}
}

func TestSamplePDFDeterministic(t *testing.T) {
	if !bytes.Equal(samplePDF(), samplePDF()) {
		t.Fatal("sample PDF should be byte stable")
	}
}

package filetype

import "testing"

func TestSuffixFromFilename(t *testing.T) {
	for _, tc := range []struct {
		filename string
		want     string
	}{
		{"scan.png", ".png"},
		{"photo.JPG", ".jpg"},
		{"doc.tiff", ".tiff"},
	} {
		if got := Suffix(tc.filename, nil); got != tc.want {
			t.Errorf("Suffix(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestSuffixSniffsMagicBytes(t *testing.T) {
	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	if got := Suffix("noext", pngHeader); got != ".png" {
		t.Fatalf("Suffix = %q, want .png from magic bytes", got)
	}
}

func TestSuffixDefault(t *testing.T) {
	if got := Suffix("", nil); got != DefaultImageSuffix {
		t.Fatalf("Suffix = %q, want default %q", got, DefaultImageSuffix)
	}
}

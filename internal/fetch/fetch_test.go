package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestBytesPlainPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	want := []byte("%PDF-1.4 fake")
	if err := os.WriteFile(path, want, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Bytes(context.Background(), path)
	if err != nil {
		t.Fatalf("read plain path: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBytesFileURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	want := []byte("payload")
	if err := os.WriteFile(path, want, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Bytes(context.Background(), "file://"+path)
	if err != nil {
		t.Fatalf("read file url: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBytesHTTP(t *testing.T) {
	want := []byte("remote document")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(want)
	}))
	defer srv.Close()

	got, err := Bytes(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch http: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBytesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := Bytes(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestBytesMissingFile(t *testing.T) {
	if _, err := Bytes(context.Background(), filepath.Join(t.TempDir(), "nope.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/local/textextract/internal/statuscheck"
)

func newTestRouter(handlers map[string]Handler) *http.ServeMux {
	rt := New(handlers, statuscheck.New(statuscheck.Options{}))
	mux := http.NewServeMux()
	rt.RegisterRoutes(mux)
	return mux
}

func TestInvokeDispatchesByFunctionName(t *testing.T) {
	var got []byte
	mux := newTestRouter(map[string]Handler{
		"pdf-text": func(ctx context.Context, payload []byte) any {
			got = payload
			return map[string]string{"text": "ok"}
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/2015-03-31/functions/pdf-text/invocations", strings.NewReader(`{"pdf": "QUFBQQ=="}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if string(got) != `{"pdf": "QUFBQQ=="}` {
		t.Fatalf("handler payload = %s", got)
	}
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["text"] != "ok" {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestInvokeUnknownFunction(t *testing.T) {
	mux := newTestRouter(map[string]Handler{})

	req := httptest.NewRequest(http.MethodPost, "/2015-03-31/functions/nope/invocations", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown function") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestInvokeRejectsGet(t *testing.T) {
	mux := newTestRouter(map[string]Handler{
		"pdf-text": func(ctx context.Context, payload []byte) any { return nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/2015-03-31/functions/pdf-text/invocations", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestInvokePanicBecomesErrorResponse(t *testing.T) {
	mux := newTestRouter(map[string]Handler{
		"boom": func(ctx context.Context, payload []byte) any { panic("unexpected") },
	})

	req := httptest.NewRequest(http.MethodPost, "/2015-03-31/functions/boom/invocations", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["error"] == "" {
		t.Fatalf("body = %s, want structured error", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	mux := newTestRouter(map[string]Handler{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["status"] != "ok" {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

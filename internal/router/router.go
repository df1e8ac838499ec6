package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/local/textextract/internal/metrics"
	"github.com/local/textextract/internal/statuscheck"
)

// invokePrefix mirrors the cloud function Invoke API so existing clients and
// proxy configs keep working unchanged.
const invokePrefix = "/2015-03-31/functions/"

// Handler processes one unwrapped invocation payload and returns the response
// object. Handlers report their own failures as {error} objects; they never
// panic on bad input.
type Handler func(ctx context.Context, payload []byte) any

// Router maps function names to extraction handlers. The mapping is fixed at
// construction; there is no global registry.
type Router struct {
	handlers map[string]Handler
	checker  *statuscheck.Checker
	maxBody  int64
}

// New creates a Router over an explicit name → handler map.
func New(handlers map[string]Handler, checker *statuscheck.Checker) *Router {
	return &Router{
		handlers: handlers,
		checker:  checker,
		maxBody:  64 << 20,
	}
}

func (rt *Router) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(invokePrefix, rt.handleInvoke)
	mux.HandleFunc("/health", rt.handleHealth)
	mux.HandleFunc("/status", rt.handleStatus)
	mux.Handle("/metrics", metrics.Handler())
}

func (rt *Router) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	name := strings.TrimPrefix(r.URL.Path, invokePrefix)
	name = strings.TrimSuffix(name, "/invocations")
	handler, ok := rt.handlers[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown function: %s", name)})
		return
	}

	defer r.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(r.Body, rt.maxBody))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read request body"})
		return
	}

	reqID := uuid.NewString()
	start := time.Now()
	log.Info().Str("request_id", reqID).Str("function", name).Int("payload_bytes", len(payload)).Msg("invocation received")

	// Anything a handler did not catch itself still comes back to the
	// caller as a structured error, never as a dropped connection.
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("request_id", reqID).Str("function", name).Interface("panic", rec).Msg("handler panicked")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("%v", rec)})
		}
	}()

	result := handler(r.Context(), payload)

	log.Info().Str("request_id", reqID).Str("function", name).
		Int64("duration_ms", time.Since(start).Milliseconds()).Msg("invocation finished")
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "textextract"})
}

func (rt *Router) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.checker.Check(r.Context()))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

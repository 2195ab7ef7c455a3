package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"opsdesk/internal/adapters/ai"
	"opsdesk/internal/domain/task"
	"opsdesk/internal/domain/teammember"
	"opsdesk/internal/idgen"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts markdown to HTML, falling back to the raw
// text when conversion fails.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

// generateID creates a fresh entity ID.
func generateID() string {
	return idgen.New()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	apiError(w, http.StatusInternalServerError, "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode_response", "error", err.Error())
	}
}

// apiError writes a JSON error body with the given status.
func apiError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// methodNotAllowed rejects a request with 405.
func methodNotAllowed(w http.ResponseWriter) {
	apiError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// confirmedDelete enforces the destructive-intent flag on entity deletes.
// Without confirm=true the delete is rejected with 409 and nothing is touched.
func confirmedDelete(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("confirm") != "true" {
		apiError(w, http.StatusConflict, "delete requires confirm=true")
		return false
	}
	return true
}

// respondError maps an orchestrator or store error onto an HTTP status.
// Missing rows become 404, state conflicts 409, drafting problems 502/503,
// and everything else is treated as a rejected input.
func respondError(w http.ResponseWriter, err error) {
	var decodeErr *ai.DecodeError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		apiError(w, http.StatusNotFound, "not found")
	case errors.Is(err, task.ErrAlreadyCompleted),
		errors.Is(err, teammember.ErrAlreadyApproved),
		errors.Is(err, teammember.ErrNotPending):
		apiError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ai.ErrNotConfigured):
		apiError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &decodeErr):
		apiError(w, http.StatusBadGateway, err.Error())
	default:
		apiError(w, http.StatusBadRequest, err.Error())
	}
}

// queryInt parses an integer query parameter, returning 0 when absent
// or malformed.
func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

// queryDate parses a date query parameter, accepting RFC 3339 or a bare
// 2006-01-02 day. Returns the zero time when absent or malformed.
func queryDate(r *http.Request, name string) time.Time {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// handleCSRFToken hands the SPA a token for form submissions.
func handleCSRFToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"csrf_token": csrf.Token(r)})
}

// handlePerf exposes the timing collector for the perf panel.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	if perfCollector == nil {
		apiError(w, http.StatusServiceUnavailable, "perf collection is disabled")
		return
	}
	window := time.Duration(queryInt(r, "minutes")) * time.Minute
	if window <= 0 {
		window = time.Hour
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(timeNow().Add(-window), 10))
}

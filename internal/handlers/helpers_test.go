package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, map[string]string{"hello": "world"})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var envelope map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope["success"] != true {
		t.Error("expected success=true")
	}
	if envelope["timestamp"] == nil {
		t.Error("expected timestamp")
	}
}

func TestRespondJSONError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSONError(w, http.StatusBadRequest, "Bad Request", "something was off")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	var envelope map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope["success"] != false {
		t.Error("expected success=false")
	}
	if envelope["error"] != "Bad Request" {
		t.Errorf("unexpected error type: %v", envelope["error"])
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 250)
	got := sanitizeErrorMessage(long)
	if len(got) != 203 {
		t.Errorf("expected truncation to 200 chars plus ellipsis, got len %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("expected ellipsis suffix")
	}

	if got := sanitizeErrorMessage("short"); got != "short" {
		t.Errorf("short message should pass through, got %q", got)
	}
}

package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sbecerek/CatalogAPI/pkg/httpx"
)

func TestJSON_setsHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %q", ct)
	}
	if xct := w.Header().Get("X-Content-Type-Options"); xct != "nosniff" {
		t.Errorf("expected nosniff, got %q", xct)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSONError(w, http.StatusBadRequest, "something went wrong")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["error"] != "something went wrong" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestStatus_EmptyBody(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.Status(w, http.StatusNotFound)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestCreated_SetsLocation(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.Created(w, "/items/abc", map[string]string{"id": "abc"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/items/abc" {
		t.Errorf("unexpected Location %q", loc)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestSafeError(t *testing.T) {
	err := errors.New("dial tcp 10.0.0.5:5432: connection refused")

	if got := httpx.SafeError(err, http.StatusServiceUnavailable, true); got != "Service Unavailable" {
		t.Errorf("production 5xx must be generic, got %q", got)
	}
	if got := httpx.SafeError(err, http.StatusServiceUnavailable, false); got != err.Error() {
		t.Errorf("development 5xx keeps detail, got %q", got)
	}
	if got := httpx.SafeError(err, http.StatusBadRequest, true); got != err.Error() {
		t.Errorf("4xx keeps detail, got %q", got)
	}
}

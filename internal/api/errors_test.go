package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecorank/internal/errors"
)

func TestMapCodeToStatus(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ProductNotFound, http.StatusNotFound},
		{errors.ProfileNotFound, http.StatusNotFound},
		{errors.SourceNotFound, http.StatusNotFound},
		{errors.RunNotFound, http.StatusNotFound},
		{errors.MetricInvalid, http.StatusBadRequest},
		{errors.WeightInvalid, http.StatusBadRequest},
		{errors.RequestInvalid, http.StatusBadRequest},
		{errors.ProfileInvalid, http.StatusUnprocessableEntity},
		{errors.SourceInvalid, http.StatusUnprocessableEntity},
		{errors.CatalogInvalid, http.StatusUnprocessableEntity},
		{errors.CatalogUnreadable, http.StatusServiceUnavailable},
		{errors.StorageUnavailable, http.StatusServiceUnavailable},
		{errors.Unauthorized, http.StatusUnauthorized},
		{errors.InternalError, http.StatusInternalServerError},
		{errors.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := MapCodeToStatus(tt.code); got != tt.want {
			t.Errorf("MapCodeToStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestWriteCodedError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteCodedError(w, errors.New(errors.ProductNotFound, "Material not found"))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if response.Success {
		t.Error("Expected success false")
	}
	if response.Error != "Material not found" {
		t.Errorf("Expected error 'Material not found', got %q", response.Error)
	}
	if response.Code != "PRODUCT_NOT_FOUND" {
		t.Errorf("Expected code PRODUCT_NOT_FOUND, got %q", response.Code)
	}
}

func TestWriteCodedErrorDefaultHint(t *testing.T) {
	w := httptest.NewRecorder()
	WriteCodedError(w, errors.New(errors.Unauthorized, "missing API key"))

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if response.Hint == "" {
		t.Error("Expected the default hint for UNAUTHORIZED")
	}
}

func TestWriteErrorPlain(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("something broke"), http.StatusInternalServerError)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if response.Code != "INTERNAL_ERROR" {
		t.Errorf("Expected code INTERNAL_ERROR, got %q", response.Code)
	}
	if response.Error != "something broke" {
		t.Errorf("Expected error 'something broke', got %q", response.Error)
	}
}

func TestWriteJSONContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, map[string]string{"ok": "yes"}, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestGetPathParam(t *testing.T) {
	tests := []struct {
		path   string
		prefix string
		want   string
	}{
		{"/api/material/42", "/api/material/", "42"},
		{"/api/material/42/extra", "/api/material/", "42"},
		{"/api/material/", "/api/material/", ""},
		{"/api/runs/abc-def", "/api/runs/", "abc-def"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if got := GetPathParam(req, tt.prefix); got != tt.want {
			t.Errorf("GetPathParam(%q, %q) = %q, want %q", tt.path, tt.prefix, got, tt.want)
		}
	}
}

func TestQueryParamInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/runs?limit=5", nil)
	if got := QueryParamInt(req, "limit", 20); got != 5 {
		t.Errorf("Expected 5, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	if got := QueryParamInt(req, "limit", 20); got != 20 {
		t.Errorf("Expected default 20, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/runs?limit=lots", nil)
	if got := QueryParamInt(req, "limit", 20); got != 20 {
		t.Errorf("Expected default 20 for bad input, got %d", got)
	}
}

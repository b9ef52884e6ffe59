package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSAndSecurityHeaders(t *testing.T) {
	h := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected X-Content-Type-Options=nosniff, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS to be on by default, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodOptions, "/api/download-model", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code >= 300 {
		t.Fatalf("preflight status=%d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("preflight missing Access-Control-Allow-Origin")
	}
}

func TestCORSDisabled(t *testing.T) {
	SetCORSOptions(false, nil, nil, nil)
	defer SetCORSOptions(true, nil, nil, nil)
	h := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header, got %q", got)
	}
}

func TestCORSRestrictedOrigin(t *testing.T) {
	SetCORSOptions(true, []string{"http://allowed.local"}, nil, nil)
	defer SetCORSOptions(true, nil, nil, nil)
	h := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://other.local")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("disallowed origin got %q", got)
	}
}
